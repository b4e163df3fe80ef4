package engine

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/abekenov/taskdep/internal/models"
)

// Engine is the task dependency and blocking core. It owns every validated
// mutation of the task graph: dependency edges, parent links, status
// transitions, and the bulk operation protocol. It holds no state beyond
// the database handle and never mutates anything during validation.
type Engine struct {
	db *gorm.DB
}

// New creates an engine over the given database.
func New(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// ValidateAndCreateDependency adds the edge blockingID -> blockedID after
// running the full validation chain (existence, project scope, self
// reference, duplicate, parent-subtask deadlock, cycle). On success the
// edge and its audit event are committed together.
func (e *Engine) ValidateAndCreateDependency(actorID, blockingID, blockedID uint) (*models.TaskDependency, error) {
	var created *models.TaskDependency
	err := e.db.Transaction(func(tx *gorm.DB) error {
		ctx, err := loadDepContext(tx, actorID, [][2]uint{{blockingID, blockedID}})
		if err != nil {
			return err
		}
		if err := validateDependency(tx, actorID, blockingID, blockedID, nil, ctx); err != nil {
			return err
		}

		edge := models.TaskDependency{BlockingTaskID: blockingID, BlockedTaskID: blockedID}
		if err := tx.Create(&edge).Error; err != nil {
			return err
		}
		if err := recordEvent(tx, blockedID, models.EventDependencyAdded, actorID,
			"", fmt.Sprintf("blocked by task #%d", blockingID)); err != nil {
			return err
		}

		created = &edge
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RemoveDependency deletes the edge blockingID -> blockedID.
func (e *Engine) RemoveDependency(actorID, blockingID, blockedID uint) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		var edge models.TaskDependency
		err := tx.Where("blocking_task_id = ? AND blocked_task_id = ?", blockingID, blockedID).
			First(&edge).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return itemError(blockedID, CodeNotFound,
				"no dependency from task #%d to task #%d", blockingID, blockedID)
		}
		if err != nil {
			return err
		}

		if err := checkProjectAccess(tx, actorID, blockedID); err != nil {
			return err
		}

		if err := tx.Delete(&edge).Error; err != nil {
			return err
		}
		return recordEvent(tx, blockedID, models.EventDependencyRemoved, actorID,
			fmt.Sprintf("blocked by task #%d", blockingID), "")
	})
}

// ValidateAndReparent moves taskID under newParentID (nil detaches it to
// the root of its project). The subtask tree must stay a forest, so the
// proposed parent may not be the task itself or any of its descendants.
func (e *Engine) ValidateAndReparent(actorID, taskID uint, newParentID *uint) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		tasks, err := loadTasksByID(tx, []uint{taskID})
		if err != nil {
			return err
		}
		task, ok := tasks[taskID]
		if !ok {
			return itemError(taskID, CodeNotFound, "task not found")
		}

		if err := checkMembership(tx, actorID, task.ProjectID, taskID); err != nil {
			return err
		}

		oldParent := formatParent(task.ParentTaskID)

		if newParentID != nil {
			parents, err := loadTasksByID(tx, []uint{*newParentID})
			if err != nil {
				return err
			}
			parent, ok := parents[*newParentID]
			if !ok {
				return itemError(taskID, CodeInvalidParentID, "parent task #%d not found", *newParentID)
			}
			if parent.ProjectID != task.ProjectID {
				return itemError(taskID, CodeDifferentProject,
					"parent task #%d belongs to a different project", *newParentID)
			}

			cyclic, err := wouldCreateSubtaskCycle(tx, taskID, *newParentID)
			if err != nil {
				return err
			}
			if cyclic {
				return itemError(taskID, CodeCircularSubtask,
					"task #%d is the task itself or one of its subtasks", *newParentID)
			}

			deadlock, err := reparentCreatesDeadlock(tx, taskID, *newParentID, nil)
			if err != nil {
				return err
			}
			if deadlock {
				return itemError(taskID, CodeDeadlock,
					"a new ancestor of task #%d blocks it or one of its subtasks", taskID)
			}
		}

		if err := tx.Model(&models.Task{}).Where("id = ?", taskID).
			Update("parent_task_id", newParentID).Error; err != nil {
			return err
		}
		return recordEvent(tx, taskID, models.EventReparented, actorID,
			oldParent, formatParent(newParentID))
	})
}

// depContext carries rows loaded once for a set of proposed edges, so a
// batch of edge validations costs a fixed number of queries instead of
// one round of lookups per edge.
type depContext struct {
	tasks    map[uint]*models.Task
	member   map[uint]bool
	existing map[[2]uint]bool
}

// loadDepContext batch-loads the tasks referenced by the proposed
// (blocking, blocked) pairs, the actor's memberships in their projects,
// and the already persisted edges among the same blocking tasks.
func loadDepContext(tx *gorm.DB, actorID uint, pairs [][2]uint) (*depContext, error) {
	idSet := make(map[uint]bool, len(pairs)*2)
	blockingSet := make(map[uint]bool, len(pairs))
	for _, pair := range pairs {
		idSet[pair[0]] = true
		idSet[pair[1]] = true
		blockingSet[pair[0]] = true
	}
	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	tasks, err := loadTasksByID(tx, ids)
	if err != nil {
		return nil, err
	}

	projectSet := make(map[uint]bool)
	for _, task := range tasks {
		projectSet[task.ProjectID] = true
	}
	projects := make([]uint, 0, len(projectSet))
	for id := range projectSet {
		projects = append(projects, id)
	}
	member, err := loadMemberships(tx, actorID, projects)
	if err != nil {
		return nil, err
	}

	blocking := make([]uint, 0, len(blockingSet))
	for id := range blockingSet {
		blocking = append(blocking, id)
	}
	edges, err := loadEdgesFromBlocking(tx, blocking)
	if err != nil {
		return nil, err
	}
	existing := make(map[[2]uint]bool, len(edges))
	for _, edge := range edges {
		existing[[2]uint{edge.BlockingTaskID, edge.BlockedTaskID}] = true
	}

	return &depContext{tasks: tasks, member: member, existing: existing}, nil
}

// validateDependency runs every check for one proposed edge against a
// preloaded context. extraEdges overlays edges proposed earlier in the
// same batch (keyed by blocking task) so cycle detection sees the
// combined graph. Checks never write.
func validateDependency(tx *gorm.DB, actorID, blockingID, blockedID uint, extraEdges map[uint][]uint, ctx *depContext) error {
	blocking, ok := ctx.tasks[blockingID]
	if !ok {
		return itemError(blockedID, CodeNotFound, "blocking task #%d not found", blockingID)
	}
	blocked, ok := ctx.tasks[blockedID]
	if !ok {
		return itemError(blockedID, CodeNotFound, "blocked task #%d not found", blockedID)
	}

	if blocking.ProjectID != blocked.ProjectID {
		return itemError(blockedID, CodeDifferentProject,
			"tasks #%d and #%d belong to different projects", blockingID, blockedID)
	}

	if !ctx.member[blocked.ProjectID] {
		return itemError(blockedID, CodePermissionDenied,
			"user #%d is not a member of project #%d", actorID, blocked.ProjectID)
	}

	if blockingID == blockedID {
		return itemError(blockedID, CodeSelfBlocking, "a task cannot block itself")
	}

	if ctx.existing[[2]uint{blockingID, blockedID}] {
		return itemError(blockedID, CodeDuplicate,
			"task #%d already blocks task #%d", blockingID, blockedID)
	}

	// An ancestor blocking its own descendant deadlocks both: the subtask
	// cannot complete before the ancestor is terminal, and the ancestor
	// cannot complete while a subtask is open.
	ancestor, err := isAncestorInSubtaskTree(tx, blockingID, blockedID, nil)
	if err != nil {
		return err
	}
	if ancestor {
		return itemError(blockedID, CodeDeadlock,
			"task #%d is an ancestor of task #%d in the subtask tree", blockingID, blockedID)
	}

	cyclic, err := wouldCreateDependencyCycle(tx, blockingID, blockedID, extraEdges)
	if err != nil {
		return err
	}
	if cyclic {
		return itemError(blockedID, CodeCircularDependency,
			"task #%d already depends on task #%d", blockingID, blockedID)
	}

	return nil
}

// checkMembership rejects the mutation when the actor is not a member of
// the task's project.
func checkMembership(tx *gorm.DB, actorID, projectID, taskID uint) error {
	member, err := loadMemberships(tx, actorID, []uint{projectID})
	if err != nil {
		return err
	}
	if !member[projectID] {
		return itemError(taskID, CodePermissionDenied,
			"user #%d is not a member of project #%d", actorID, projectID)
	}
	return nil
}

// checkProjectAccess resolves the task and checks membership in one step.
func checkProjectAccess(tx *gorm.DB, actorID, taskID uint) error {
	tasks, err := loadTasksByID(tx, []uint{taskID})
	if err != nil {
		return err
	}
	task, ok := tasks[taskID]
	if !ok {
		return itemError(taskID, CodeNotFound, "task not found")
	}
	return checkMembership(tx, actorID, task.ProjectID, taskID)
}

func formatParent(parentID *uint) string {
	if parentID == nil {
		return ""
	}
	return fmt.Sprintf("parent #%d", *parentID)
}

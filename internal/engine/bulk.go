package engine

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/abekenov/taskdep/internal/models"
)

// BulkKind selects what a bulk operation does to its items.
type BulkKind string

const (
	BulkCreate        BulkKind = "create"
	BulkUpdate        BulkKind = "update"
	BulkDelete        BulkKind = "delete"
	BulkMarkDone      BulkKind = "mark_done"
	BulkTakeOwnership BulkKind = "take_ownership"
	BulkAddDependency BulkKind = "add_dependency"
)

// TaskDraft is the payload of one BulkCreate item.
type TaskDraft struct {
	Title        string
	ProjectID    uint
	Status       string
	OwnerID      *uint
	ParentTaskID *uint
	Due          *time.Time
	Note         string
}

// TaskPatch is the payload of one BulkUpdate item. Nil fields are left
// untouched; ClearParent detaches the task from its parent.
type TaskPatch struct {
	Title       *string
	Status      *string
	Due         *time.Time
	Note        *string
	NewParentID *uint
	ClearParent bool
}

// EdgeSpec is the payload of one BulkAddDependency item.
type EdgeSpec struct {
	BlockingTaskID uint
	BlockedTaskID  uint
}

// BulkItem is one unit of a bulk request. TaskID addresses the target for
// update/delete/mark_done/take_ownership; Create and Edge carry the
// payloads for the other kinds.
type BulkItem struct {
	TaskID uint
	Create *TaskDraft
	Patch  *TaskPatch
	Edge   *EdgeSpec
}

// BulkError is one rejected item of a failed bulk operation. TaskID is nil
// for errors that do not belong to a single item.
type BulkError struct {
	TaskID  *uint     `json:"task_id"`
	Code    ErrorCode `json:"error_code"`
	Message string    `json:"message"`
}

// BulkResult reports the outcome of a bulk operation. On failure no item
// was applied and Errors lists every violation found; on success
// ProcessedCount and TaskIDs cover all items. AffectedTaskIDs is filled by
// BulkDelete with the tasks that went from blocked to unblocked because a
// blocker was deleted.
type BulkResult struct {
	Success         bool        `json:"success"`
	ProcessedCount  int         `json:"processed_count"`
	TaskIDs         []uint      `json:"task_ids"`
	AffectedTaskIDs []uint      `json:"affected_task_ids,omitempty"`
	Errors          []BulkError `json:"errors,omitempty"`
}

// errValidationFailed forces the surrounding transaction to roll back when
// the validate phase found item errors. Validation never writes, so there
// is nothing to undo; the sentinel only stops the apply phase from running.
var errValidationFailed = errors.New("bulk validation failed")

// bulkRun is one execution of the three-phase protocol. The validate phase
// fills errs (and caches for apply); the apply phase assumes validation
// passed and fills result. Both phases run on one transaction with a
// single commit point.
type bulkRun struct {
	kind    BulkKind
	actorID uint
	items   []BulkItem

	ids   []uint                // de-duplicated item IDs in input order
	tasks map[uint]*models.Task // resolved targets for ID-addressed kinds

	errs   []BulkError
	result BulkResult
}

// RunBulkOperation executes a batch of task mutations with all-or-nothing
// semantics: every item is validated before any write, and all writes plus
// their audit events commit once or not at all. A failed result lists
// every violation; since validation has no side effects the caller can fix
// the reported items and retry safely.
func (e *Engine) RunBulkOperation(kind BulkKind, items []BulkItem, actorID uint) (*BulkResult, error) {
	if len(items) == 0 {
		return &BulkResult{Success: true}, nil
	}
	if len(items) > MaxBatchSize {
		return nil, fmt.Errorf("batch has %d items, maximum is %d", len(items), MaxBatchSize)
	}

	run := &bulkRun{kind: kind, actorID: actorID, items: items}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := run.validate(tx); err != nil {
			return err
		}
		if len(run.errs) > 0 {
			run.result = BulkResult{Success: false, Errors: run.errs}
			return errValidationFailed
		}
		return run.apply(tx)
	})
	if err != nil && !errors.Is(err, errValidationFailed) {
		return nil, err
	}
	return &run.result, nil
}

// validate dispatches to the kind's validator. Infrastructure errors are
// returned directly; violations accumulate in run.errs.
func (r *bulkRun) validate(tx *gorm.DB) error {
	switch r.kind {
	case BulkCreate:
		return r.validateCreate(tx)
	case BulkUpdate:
		return r.validateUpdate(tx)
	case BulkDelete:
		return r.validateDelete(tx)
	case BulkMarkDone:
		return r.validateMarkDone(tx)
	case BulkTakeOwnership:
		return r.validateTakeOwnership(tx)
	case BulkAddDependency:
		return r.validateAddDependency(tx)
	default:
		return fmt.Errorf("unknown bulk operation kind %q", r.kind)
	}
}

// apply dispatches to the kind's applier. By now every item has passed
// validation; any error here is an infrastructure failure and rolls back
// the whole transaction, audit events included.
func (r *bulkRun) apply(tx *gorm.DB) error {
	switch r.kind {
	case BulkCreate:
		return r.applyCreate(tx)
	case BulkUpdate:
		return r.applyUpdate(tx)
	case BulkDelete:
		return r.applyDelete(tx)
	case BulkMarkDone:
		return r.applyMarkDone(tx)
	case BulkTakeOwnership:
		return r.applyTakeOwnership(tx)
	case BulkAddDependency:
		return r.applyAddDependency(tx)
	default:
		return fmt.Errorf("unknown bulk operation kind %q", r.kind)
	}
}

// addError records one violation.
func (r *bulkRun) addError(err *ValidationError) {
	r.errs = append(r.errs, BulkError{TaskID: err.TaskID, Code: err.Code, Message: err.Message})
}

// collectError routes an error from a shared validator: violations go to
// the error list, infrastructure failures bubble up.
func (r *bulkRun) collectError(err error) error {
	if err == nil {
		return nil
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		r.addError(verr)
		return nil
	}
	return err
}

// resolveTargets de-duplicates item IDs preserving input order, loads the
// targets, and reports NOT_FOUND and PERMISSION_DENIED per item. Used by
// every ID-addressed kind.
func (r *bulkRun) resolveTargets(tx *gorm.DB) error {
	seen := make(map[uint]bool, len(r.items))
	for _, item := range r.items {
		if seen[item.TaskID] {
			continue
		}
		seen[item.TaskID] = true
		r.ids = append(r.ids, item.TaskID)
	}

	tasks, err := loadTasksByID(tx, r.ids)
	if err != nil {
		return err
	}
	r.tasks = tasks

	projectSet := make(map[uint]bool)
	var projectIDs []uint
	for _, task := range tasks {
		if !projectSet[task.ProjectID] {
			projectSet[task.ProjectID] = true
			projectIDs = append(projectIDs, task.ProjectID)
		}
	}
	member, err := loadMemberships(tx, r.actorID, projectIDs)
	if err != nil {
		return err
	}

	for _, id := range r.ids {
		task, ok := tasks[id]
		if !ok {
			r.addError(itemError(id, CodeNotFound, "task not found"))
			continue
		}
		if !member[task.ProjectID] {
			r.addError(itemError(id, CodePermissionDenied,
				"user #%d is not a member of project #%d", r.actorID, task.ProjectID))
		}
	}
	return nil
}

// --- mark done ---

func (r *bulkRun) validateMarkDone(tx *gorm.DB) error {
	if err := r.resolveTargets(tx); err != nil {
		return err
	}

	batch := make(map[uint]bool, len(r.ids))
	for _, id := range r.ids {
		batch[id] = true
	}

	// A subtask still open is only acceptable when it completes in the
	// same batch as its parent.
	children, err := loadChildren(tx, r.ids)
	if err != nil {
		return err
	}
	for _, child := range children {
		if child.IsComplete() || batch[child.ID] {
			continue
		}
		if child.ParentTaskID == nil {
			continue
		}
		parentID := *child.ParentTaskID
		if _, ok := r.tasks[parentID]; !ok {
			continue
		}
		r.addError(itemError(parentID, CodeIncompleteSubtasks,
			"subtask #%d is not complete", child.ID))
	}

	// Blockers completing in this batch count as terminal, so mutually
	// dependent tasks can finish together.
	blocked, err := bulkIsBlocked(tx, r.ids, batch)
	if err != nil {
		return err
	}
	for _, id := range r.ids {
		if _, ok := r.tasks[id]; !ok {
			continue
		}
		if blocked[id] {
			r.addError(itemError(id, CodeBlocked, "task is blocked by incomplete dependencies"))
		}
	}
	return nil
}

func (r *bulkRun) applyMarkDone(tx *gorm.DB) error {
	now := time.Now()
	for _, id := range r.ids {
		task := r.tasks[id]
		if task.IsComplete() {
			// Accepted as a no-op; counts as processed, emits nothing.
			continue
		}
		oldStatus := task.Status
		if err := tx.Model(&models.Task{}).Where("id = ?", id).
			Updates(map[string]any{"status": models.StatusDone, "done_at": now}).Error; err != nil {
			return err
		}
		if err := recordEvent(tx, id, models.EventStatusChanged, r.actorID,
			oldStatus, models.StatusDone); err != nil {
			return err
		}
	}
	r.result = BulkResult{Success: true, ProcessedCount: len(r.ids), TaskIDs: r.ids}
	return nil
}

// --- take ownership ---

func (r *bulkRun) validateTakeOwnership(tx *gorm.DB) error {
	if err := r.resolveTargets(tx); err != nil {
		return err
	}
	for _, id := range r.ids {
		task, ok := r.tasks[id]
		if !ok {
			continue
		}
		if task.OwnerID != nil && *task.OwnerID == r.actorID {
			r.addError(itemError(id, CodeAlreadyOwned, "task is already owned by user #%d", r.actorID))
		}
	}
	return nil
}

func (r *bulkRun) applyTakeOwnership(tx *gorm.DB) error {
	for _, id := range r.ids {
		task := r.tasks[id]
		oldOwner := ""
		if task.OwnerID != nil {
			oldOwner = fmt.Sprintf("user #%d", *task.OwnerID)
		}
		if err := tx.Model(&models.Task{}).Where("id = ?", id).
			Update("owner_id", r.actorID).Error; err != nil {
			return err
		}
		if err := recordEvent(tx, id, models.EventOwnerChanged, r.actorID,
			oldOwner, fmt.Sprintf("user #%d", r.actorID)); err != nil {
			return err
		}
	}
	r.result = BulkResult{Success: true, ProcessedCount: len(r.ids), TaskIDs: r.ids}
	return nil
}

// --- delete ---

func (r *bulkRun) validateDelete(tx *gorm.DB) error {
	return r.resolveTargets(tx)
}

func (r *bulkRun) applyDelete(tx *gorm.DB) error {
	// Expand each target to its whole subtask subtree.
	deleteSet := make(map[uint]bool, len(r.ids))
	var deleteIDs []uint
	for _, id := range r.ids {
		deleteSet[id] = true
		deleteIDs = append(deleteIDs, id)
	}
	frontier := append([]uint(nil), r.ids...)
	for len(frontier) > 0 {
		children, err := loadChildren(tx, frontier)
		if err != nil {
			return err
		}
		var next []uint
		for _, child := range children {
			if deleteSet[child.ID] {
				continue
			}
			deleteSet[child.ID] = true
			deleteIDs = append(deleteIDs, child.ID)
			next = append(next, child.ID)
		}
		frontier = next
	}

	// Surviving tasks that depend on something being deleted. Their
	// blocked state is snapshotted before and after so the result reports
	// exactly the blocked -> unblocked transitions, not every touched task.
	edges, err := loadEdgesFromBlocking(tx, deleteIDs)
	if err != nil {
		return err
	}
	dependentSet := make(map[uint]bool)
	var dependentIDs []uint
	for _, edge := range edges {
		if deleteSet[edge.BlockedTaskID] || dependentSet[edge.BlockedTaskID] {
			continue
		}
		dependentSet[edge.BlockedTaskID] = true
		dependentIDs = append(dependentIDs, edge.BlockedTaskID)
	}

	before, err := bulkIsBlocked(tx, dependentIDs, nil)
	if err != nil {
		return err
	}

	for _, chunk := range chunkIDs(deleteIDs, loadChunkSize) {
		if err := tx.Where("blocking_task_id IN ? OR blocked_task_id IN ?", chunk, chunk).
			Delete(&models.TaskDependency{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id IN ?", chunk).Delete(&models.TaskEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", chunk).Delete(&models.Task{}).Error; err != nil {
			return err
		}
	}

	after, err := bulkIsBlocked(tx, dependentIDs, nil)
	if err != nil {
		return err
	}

	var affected []uint
	for _, id := range dependentIDs {
		if before[id] && !after[id] {
			affected = append(affected, id)
		}
	}
	sort.Slice(affected, func(i, j int) bool { return affected[i] < affected[j] })

	r.result = BulkResult{
		Success:         true,
		ProcessedCount:  len(r.ids),
		TaskIDs:         r.ids,
		AffectedTaskIDs: affected,
	}
	return nil
}

// --- create ---

func (r *bulkRun) validateCreate(tx *gorm.DB) error {
	projectSet := make(map[uint]bool)
	var projectIDs []uint
	var parentIDs []uint
	var ownerIDs []uint
	for i, item := range r.items {
		if item.Create == nil {
			return fmt.Errorf("create item %d has no payload", i)
		}
		if item.Create.Title == "" {
			return fmt.Errorf("create item %d has no title", i)
		}
		if item.Create.Status != "" && !models.IsKnownStatus(item.Create.Status) {
			return fmt.Errorf("create item %d has unknown status %q", i, item.Create.Status)
		}
		if !projectSet[item.Create.ProjectID] {
			projectSet[item.Create.ProjectID] = true
			projectIDs = append(projectIDs, item.Create.ProjectID)
		}
		if item.Create.ParentTaskID != nil {
			parentIDs = append(parentIDs, *item.Create.ParentTaskID)
		}
		if item.Create.OwnerID != nil {
			ownerIDs = append(ownerIDs, *item.Create.OwnerID)
		}
	}

	projects := make(map[uint]bool, len(projectIDs))
	for _, chunk := range chunkIDs(projectIDs, loadChunkSize) {
		var rows []models.Project
		if err := tx.Where("id IN ?", chunk).Find(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			projects[row.ID] = true
		}
	}

	member, err := loadMemberships(tx, r.actorID, projectIDs)
	if err != nil {
		return err
	}

	parents, err := loadTasksByID(tx, parentIDs)
	if err != nil {
		return err
	}

	users := make(map[uint]bool, len(ownerIDs))
	for _, chunk := range chunkIDs(ownerIDs, loadChunkSize) {
		var rows []models.User
		if err := tx.Where("id IN ?", chunk).Find(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			users[row.ID] = true
		}
	}

	for _, item := range r.items {
		draft := item.Create
		if !projects[draft.ProjectID] {
			r.addError(batchError(CodeNotFound, "project #%d not found", draft.ProjectID))
			continue
		}
		if !member[draft.ProjectID] {
			r.addError(batchError(CodePermissionDenied,
				"user #%d is not a member of project #%d", r.actorID, draft.ProjectID))
			continue
		}
		if draft.ParentTaskID != nil {
			parent, ok := parents[*draft.ParentTaskID]
			if !ok {
				r.addError(batchError(CodeInvalidParentID, "parent task #%d not found", *draft.ParentTaskID))
				continue
			}
			if parent.ProjectID != draft.ProjectID {
				r.addError(batchError(CodeDifferentProject,
					"parent task #%d belongs to a different project", *draft.ParentTaskID))
				continue
			}
		}
		if draft.OwnerID != nil && !users[*draft.OwnerID] {
			r.addError(batchError(CodeNotFound, "user #%d not found", *draft.OwnerID))
		}
	}
	return nil
}

func (r *bulkRun) applyCreate(tx *gorm.DB) error {
	var created []uint
	for _, item := range r.items {
		draft := item.Create
		status := draft.Status
		if status == "" {
			status = models.StatusBacklog
		}
		task := models.Task{
			Title:        draft.Title,
			ProjectID:    draft.ProjectID,
			Status:       status,
			OwnerID:      draft.OwnerID,
			ParentTaskID: draft.ParentTaskID,
			Due:          draft.Due,
			Note:         draft.Note,
		}
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		if err := recordEvent(tx, task.ID, models.EventCreated, r.actorID, "", task.Title); err != nil {
			return err
		}
		created = append(created, task.ID)
	}
	r.result = BulkResult{Success: true, ProcessedCount: len(created), TaskIDs: created}
	return nil
}

// --- update ---

func (r *bulkRun) validateUpdate(tx *gorm.DB) error {
	for i, item := range r.items {
		if item.Patch == nil {
			return fmt.Errorf("update item %d has no payload", i)
		}
		if item.Patch.Status != nil && !models.IsKnownStatus(*item.Patch.Status) {
			return fmt.Errorf("update item %d has unknown status %q", i, *item.Patch.Status)
		}
	}

	if err := r.resolveTargets(tx); err != nil {
		return err
	}

	patches := r.patchesByID()

	// Tasks whose patch makes them terminal unblock each other, exactly
	// as in mark done.
	terminal := make(map[uint]bool)
	for id, patch := range patches {
		if patch.Status != nil && models.IsTerminalStatus(*patch.Status) {
			terminal[id] = true
		}
	}

	// Union of persisted parent links and the batch's reparentings; the
	// ancestor walks below see both, so two items cannot reparent a pair
	// of tasks into a mutual cycle.
	overrides := make(map[uint]*uint)
	for id, patch := range patches {
		if patch.ClearParent {
			overrides[id] = nil
		} else if patch.NewParentID != nil {
			overrides[id] = patch.NewParentID
		}
	}

	var terminalIDs []uint
	for _, id := range r.ids {
		if terminal[id] {
			terminalIDs = append(terminalIDs, id)
		}
	}
	var blocked map[uint]bool
	if len(terminalIDs) > 0 {
		var err error
		blocked, err = bulkIsBlocked(tx, terminalIDs, terminal)
		if err != nil {
			return err
		}
	}

	children, err := loadChildren(tx, terminalIDs)
	if err != nil {
		return err
	}
	incomplete := make(map[uint][]uint)
	for _, child := range children {
		if child.IsComplete() || terminal[child.ID] || child.ParentTaskID == nil {
			continue
		}
		incomplete[*child.ParentTaskID] = append(incomplete[*child.ParentTaskID], child.ID)
	}

	for _, id := range r.ids {
		task, ok := r.tasks[id]
		if !ok {
			continue
		}
		patch := patches[id]
		if patch == nil {
			continue
		}

		if terminal[id] {
			if subtasks := incomplete[id]; len(subtasks) > 0 {
				r.addError(itemError(id, CodeIncompleteSubtasks,
					"subtask #%d is not complete", subtasks[0]))
				continue
			}
			if blocked[id] {
				r.addError(itemError(id, CodeBlocked, "task is blocked by incomplete dependencies"))
				continue
			}
		}

		if patch.NewParentID != nil && !patch.ClearParent {
			parentID := *patch.NewParentID
			if parentID == id {
				r.addError(itemError(id, CodeCircularSubtask, "a task cannot be its own parent"))
				continue
			}
			parent := r.tasks[parentID]
			if parent == nil {
				loaded, err := loadTasksByID(tx, []uint{parentID})
				if err != nil {
					return err
				}
				parent = loaded[parentID]
			}
			if parent == nil {
				r.addError(itemError(id, CodeInvalidParentID, "parent task #%d not found", parentID))
				continue
			}
			if parent.ProjectID != task.ProjectID {
				r.addError(itemError(id, CodeDifferentProject,
					"parent task #%d belongs to a different project", parentID))
				continue
			}
			cyclic, err := isAncestorInSubtaskTree(tx, id, parentID, overrides)
			if err != nil {
				return err
			}
			if cyclic {
				r.addError(itemError(id, CodeCircularSubtask,
					"task #%d is the task itself or one of its subtasks", parentID))
				continue
			}

			deadlock, err := reparentCreatesDeadlock(tx, id, parentID, overrides)
			if err != nil {
				return err
			}
			if deadlock {
				r.addError(itemError(id, CodeDeadlock,
					"a new ancestor of task #%d blocks it or one of its subtasks", id))
			}
		}
	}
	return nil
}

func (r *bulkRun) applyUpdate(tx *gorm.DB) error {
	now := time.Now()
	patches := r.patchesByID()
	for _, id := range r.ids {
		task := r.tasks[id]
		patch := patches[id]

		updates := make(map[string]any)
		if patch.Title != nil {
			updates["title"] = *patch.Title
		}
		if patch.Note != nil {
			updates["note"] = *patch.Note
		}
		if patch.Due != nil {
			updates["due"] = *patch.Due
		}
		if patch.Status != nil && *patch.Status != task.Status {
			updates["status"] = *patch.Status
			if models.IsTerminalStatus(*patch.Status) {
				updates["done_at"] = now
			} else {
				updates["done_at"] = nil
			}
		}
		if patch.ClearParent {
			updates["parent_task_id"] = nil
		} else if patch.NewParentID != nil {
			updates["parent_task_id"] = *patch.NewParentID
		}

		if len(updates) > 0 {
			if err := tx.Model(&models.Task{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		if patch.Status != nil && *patch.Status != task.Status {
			if err := recordEvent(tx, id, models.EventStatusChanged, r.actorID,
				task.Status, *patch.Status); err != nil {
				return err
			}
		}
		if patch.ClearParent || patch.NewParentID != nil {
			newParent := patch.NewParentID
			if patch.ClearParent {
				newParent = nil
			}
			if err := recordEvent(tx, id, models.EventReparented, r.actorID,
				formatParent(task.ParentTaskID), formatParent(newParent)); err != nil {
				return err
			}
		}
		if patch.Title != nil || patch.Note != nil || patch.Due != nil {
			if err := recordEvent(tx, id, models.EventUpdated, r.actorID, "", ""); err != nil {
				return err
			}
		}
	}
	r.result = BulkResult{Success: true, ProcessedCount: len(r.ids), TaskIDs: r.ids}
	return nil
}

// patchesByID maps task ID to its patch; the first occurrence wins for
// duplicated IDs, matching the de-duplication of resolveTargets.
func (r *bulkRun) patchesByID() map[uint]*TaskPatch {
	patches := make(map[uint]*TaskPatch, len(r.items))
	for _, item := range r.items {
		if _, ok := patches[item.TaskID]; ok {
			continue
		}
		patches[item.TaskID] = item.Patch
	}
	return patches
}

// --- add dependency ---

func (r *bulkRun) validateAddDependency(tx *gorm.DB) error {
	pairs := make(map[EdgeSpec]bool, len(r.items))
	var edges [][2]uint
	extra := make(map[uint][]uint, len(r.items))

	for i, item := range r.items {
		if item.Edge == nil {
			return fmt.Errorf("add-dependency item %d has no payload", i)
		}
		edge := *item.Edge
		if pairs[edge] {
			r.addError(itemError(edge.BlockedTaskID, CodeDuplicate,
				"duplicate edge #%d -> #%d in batch", edge.BlockingTaskID, edge.BlockedTaskID))
			continue
		}
		pairs[edge] = true
		edges = append(edges, [2]uint{edge.BlockingTaskID, edge.BlockedTaskID})
		extra[edge.BlockingTaskID] = append(extra[edge.BlockingTaskID], edge.BlockedTaskID)
	}

	// Cycles formed purely inside the batch are reported once, before the
	// persisted graph is consulted at all.
	if batchEdgesContainCycle(edges) {
		r.addError(batchError(CodeCircularDependency, "dependency cycle within the batch"))
		return nil
	}

	ctx, err := loadDepContext(tx, r.actorID, edges)
	if err != nil {
		return err
	}
	for _, edge := range edges {
		err := validateDependency(tx, r.actorID, edge[0], edge[1], extra, ctx)
		if err := r.collectError(err); err != nil {
			return err
		}
	}
	return nil
}

func (r *bulkRun) applyAddDependency(tx *gorm.DB) error {
	var blockedIDs []uint
	for _, item := range r.items {
		pair := *item.Edge
		dep := models.TaskDependency{
			BlockingTaskID: pair.BlockingTaskID,
			BlockedTaskID:  pair.BlockedTaskID,
		}
		if err := tx.Create(&dep).Error; err != nil {
			return err
		}
		if err := recordEvent(tx, pair.BlockedTaskID, models.EventDependencyAdded, r.actorID,
			"", fmt.Sprintf("blocked by task #%d", pair.BlockingTaskID)); err != nil {
			return err
		}
		blockedIDs = append(blockedIDs, pair.BlockedTaskID)
	}
	r.result = BulkResult{Success: true, ProcessedCount: len(r.items), TaskIDs: blockedIDs}
	return nil
}

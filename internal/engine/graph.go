package engine

import (
	"gorm.io/gorm"

	"github.com/abekenov/taskdep/internal/models"
)

const (
	// MaxBatchSize bounds the number of items in one bulk operation.
	MaxBatchSize = 500

	// loadChunkSize bounds the number of IDs per IN clause so that graph
	// traversals never issue one query per row and never build unbounded
	// statements.
	loadChunkSize = 500
)

// chunkIDs splits ids into slices of at most size elements.
func chunkIDs(ids []uint, size int) [][]uint {
	if len(ids) == 0 {
		return nil
	}
	var chunks [][]uint
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// loadTasksByID fetches the given tasks into a map. Missing IDs are simply
// absent from the result; callers decide whether that is an error.
func loadTasksByID(tx *gorm.DB, ids []uint) (map[uint]*models.Task, error) {
	tasks := make(map[uint]*models.Task, len(ids))
	for _, chunk := range chunkIDs(ids, loadChunkSize) {
		var rows []models.Task
		if err := tx.Where("id IN ?", chunk).Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			tasks[rows[i].ID] = &rows[i]
		}
	}
	return tasks, nil
}

// loadStatuses fetches id -> status for the given tasks.
func loadStatuses(tx *gorm.DB, ids []uint) (map[uint]string, error) {
	statuses := make(map[uint]string, len(ids))
	for _, chunk := range chunkIDs(ids, loadChunkSize) {
		var rows []models.Task
		if err := tx.Select("id", "status").Where("id IN ?", chunk).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			statuses[row.ID] = row.Status
		}
	}
	return statuses, nil
}

// loadChildren fetches all direct subtasks of the given parents.
func loadChildren(tx *gorm.DB, parentIDs []uint) ([]models.Task, error) {
	var out []models.Task
	for _, chunk := range chunkIDs(parentIDs, loadChunkSize) {
		var rows []models.Task
		if err := tx.Where("parent_task_id IN ?", chunk).Find(&rows).Error; err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	return out, nil
}

// loadEdgesFromBlocking fetches edges whose blocking side is in ids, i.e.
// "the tasks these ids block".
func loadEdgesFromBlocking(tx *gorm.DB, ids []uint) ([]models.TaskDependency, error) {
	var out []models.TaskDependency
	for _, chunk := range chunkIDs(ids, loadChunkSize) {
		var rows []models.TaskDependency
		if err := tx.Where("blocking_task_id IN ?", chunk).Find(&rows).Error; err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	return out, nil
}

// loadEdgesToBlocked fetches edges whose blocked side is in ids, i.e.
// "the dependencies standing in front of these ids".
func loadEdgesToBlocked(tx *gorm.DB, ids []uint) ([]models.TaskDependency, error) {
	var out []models.TaskDependency
	for _, chunk := range chunkIDs(ids, loadChunkSize) {
		var rows []models.TaskDependency
		if err := tx.Where("blocked_task_id IN ?", chunk).Find(&rows).Error; err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	return out, nil
}

// loadMemberships returns which of the given projects the user belongs to.
func loadMemberships(tx *gorm.DB, userID uint, projectIDs []uint) (map[uint]bool, error) {
	member := make(map[uint]bool, len(projectIDs))
	for _, chunk := range chunkIDs(projectIDs, loadChunkSize) {
		var rows []models.ProjectMember
		if err := tx.Where("user_id = ? AND project_id IN ?", userID, chunk).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			member[row.ProjectID] = true
		}
	}
	return member, nil
}

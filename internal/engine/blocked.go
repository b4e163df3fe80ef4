package engine

import (
	"gorm.io/gorm"

	"github.com/abekenov/taskdep/internal/models"
)

// ComputeIsBlocked reports whether the task has at least one dependency
// whose blocking task is not in a terminal status.
func (e *Engine) ComputeIsBlocked(taskID uint) (bool, error) {
	result, err := bulkIsBlocked(e.db, []uint{taskID}, nil)
	if err != nil {
		return false, err
	}
	return result[taskID], nil
}

// ComputeIsBlockedBulk computes the blocked state for a set of tasks in a
// bounded number of queries. overrideTerminal lists task IDs to treat as
// terminal regardless of their stored status; a batch marking N tasks done
// validates against the state where all N are complete at once, so tasks
// completing together unblock each other.
func (e *Engine) ComputeIsBlockedBulk(taskIDs []uint, overrideTerminal map[uint]bool) (map[uint]bool, error) {
	return bulkIsBlocked(e.db, taskIDs, overrideTerminal)
}

// bulkIsBlocked is the shared implementation, usable inside a transaction.
// Every requested ID is present in the result; a task with no incoming
// edges is not blocked.
func bulkIsBlocked(tx *gorm.DB, taskIDs []uint, overrideTerminal map[uint]bool) (map[uint]bool, error) {
	result := make(map[uint]bool, len(taskIDs))
	for _, id := range taskIDs {
		result[id] = false
	}
	if len(taskIDs) == 0 {
		return result, nil
	}

	edges, err := loadEdgesToBlocked(tx, taskIDs)
	if err != nil {
		return nil, err
	}
	if len(edges) == 0 {
		return result, nil
	}

	seen := make(map[uint]bool, len(edges))
	var blockerIDs []uint
	for _, edge := range edges {
		if overrideTerminal[edge.BlockingTaskID] || seen[edge.BlockingTaskID] {
			continue
		}
		seen[edge.BlockingTaskID] = true
		blockerIDs = append(blockerIDs, edge.BlockingTaskID)
	}

	statuses, err := loadStatuses(tx, blockerIDs)
	if err != nil {
		return nil, err
	}

	for _, edge := range edges {
		if overrideTerminal[edge.BlockingTaskID] {
			continue
		}
		status, ok := statuses[edge.BlockingTaskID]
		if !ok {
			// Dangling edge; a missing blocker cannot block anything.
			continue
		}
		if !models.IsTerminalStatus(status) {
			result[edge.BlockedTaskID] = true
		}
	}

	return result, nil
}

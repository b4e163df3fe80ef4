package models

import (
	"time"
)

// Task statuses
const (
	StatusBacklog    = "backlog"
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusInReview   = "in_review"
	StatusDone       = "done"
	StatusNotNeeded  = "not_needed"
)

// TerminalStatuses is the set of statuses that count as "complete".
// Every blocking/completion check in the engine goes through this set;
// "done" and "not_needed" are never distinguished.
var TerminalStatuses = map[string]bool{
	StatusDone:      true,
	StatusNotNeeded: true,
}

// IsTerminalStatus reports whether status counts as complete.
func IsTerminalStatus(status string) bool {
	return TerminalStatuses[status]
}

// IsKnownStatus reports whether status is one of the defined task statuses.
func IsKnownStatus(status string) bool {
	switch status {
	case StatusBacklog, StatusTodo, StatusInProgress, StatusInReview, StatusDone, StatusNotNeeded:
		return true
	default:
		return false
	}
}

// Task represents a unit of work inside a project. Tasks form a forest via
// ParentTaskID; blocking relationships live in TaskDependency.
type Task struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title        string     `gorm:"not null" json:"title"`
	ProjectID    uint       `gorm:"not null;index" json:"project_id"`
	Status       string     `gorm:"default:backlog" json:"status"`
	ParentTaskID *uint      `gorm:"index" json:"parent_task_id"`
	OwnerID      *uint      `json:"owner_id"`
	Due          *time.Time `json:"due"`
	DoneAt       *time.Time `json:"done_at"`
	Note         string     `json:"note"`

	// Relationships
	Project  Project `gorm:"foreignKey:ProjectID" json:"-"`
	Subtasks []Task  `gorm:"foreignKey:ParentTaskID" json:"-"`
}

// IsComplete reports whether the task's status is terminal.
func (t *Task) IsComplete() bool {
	return IsTerminalStatus(t.Status)
}

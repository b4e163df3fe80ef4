package models

import (
	"time"
)

// TaskDependency is a directed blocking edge: BlockedTask cannot be marked
// complete while BlockingTask's status is not terminal. The graph of all
// edges must stay acyclic; the validated mutation paths in the engine are
// the only way edges are created or removed.
type TaskDependency struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	BlockingTaskID uint `gorm:"not null;index;uniqueIndex:idx_blocking_blocked" json:"blocking_task_id"`
	BlockedTaskID  uint `gorm:"not null;index;uniqueIndex:idx_blocking_blocked" json:"blocked_task_id"`

	// Relationships
	BlockingTask Task `gorm:"foreignKey:BlockingTaskID" json:"-"`
	BlockedTask  Task `gorm:"foreignKey:BlockedTaskID" json:"-"`
}

// TableName keeps the historical table name.
func (TaskDependency) TableName() string {
	return "task_dependencies"
}

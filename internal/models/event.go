package models

import (
	"time"
)

// EventType tags an audit event. It is stored as a plain string so that
// future operation kinds can be recorded without a schema change; the
// constants below are the types this engine emits.
type EventType string

const (
	EventCreated           EventType = "created"
	EventUpdated           EventType = "updated"
	EventStatusChanged     EventType = "status_changed"
	EventReparented        EventType = "reparented"
	EventOwnerChanged      EventType = "owner_changed"
	EventDependencyAdded   EventType = "dependency_added"
	EventDependencyRemoved EventType = "dependency_removed"
)

// IsKnown reports whether the event type is one this engine emits.
func (t EventType) IsKnown() bool {
	switch t {
	case EventCreated, EventUpdated, EventStatusChanged, EventReparented,
		EventOwnerChanged, EventDependencyAdded, EventDependencyRemoved:
		return true
	default:
		return false
	}
}

// TaskEvent is one immutable audit record for a task. Events are written
// only inside the apply phase of a validated mutation, so a rolled-back
// operation leaves no events behind.
type TaskEvent struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	TaskID    uint   `gorm:"not null;index" json:"task_id"`
	EventType string `gorm:"not null" json:"event_type"`
	ActorID   uint   `gorm:"not null" json:"actor_id"`
	OldValue  string `json:"old_value"`
	NewValue  string `json:"new_value"`
}

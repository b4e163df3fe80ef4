package engine

import (
	"gorm.io/gorm"

	"github.com/abekenov/taskdep/internal/models"
)

// recordEvent appends one audit row inside the caller's transaction, so a
// rollback takes the event with it. Unknown event types are stored as-is;
// the known set is validated where events enter from outside this engine.
func recordEvent(tx *gorm.DB, taskID uint, eventType models.EventType, actorID uint, oldValue, newValue string) error {
	event := models.TaskEvent{
		TaskID:    taskID,
		EventType: string(eventType),
		ActorID:   actorID,
		OldValue:  oldValue,
		NewValue:  newValue,
	}
	return tx.Create(&event).Error
}

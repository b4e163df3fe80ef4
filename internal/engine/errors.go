package engine

import (
	"fmt"
)

// ErrorCode is a stable machine-readable reason for a rejected mutation.
// Callers match on these, not on messages.
type ErrorCode string

const (
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodePermissionDenied   ErrorCode = "PERMISSION_DENIED"
	CodeCircularSubtask    ErrorCode = "CIRCULAR_SUBTASK"
	CodeCircularDependency ErrorCode = "CIRCULAR_DEPENDENCY"
	CodeDeadlock           ErrorCode = "DEADLOCK"
	CodeDifferentProject   ErrorCode = "DIFFERENT_PROJECT"
	CodeIncompleteSubtasks ErrorCode = "INCOMPLETE_SUBTASKS"
	CodeBlocked            ErrorCode = "BLOCKED"
	CodeAlreadyOwned       ErrorCode = "ALREADY_OWNED"
	CodeDuplicate          ErrorCode = "DUPLICATE"
	CodeSelfBlocking       ErrorCode = "SELF_BLOCKING"
	CodeInvalidParentID    ErrorCode = "INVALID_PARENT_ID"
)

// ValidationError is a structural or state violation found during the
// validate phase, before any write happened. TaskID is nil when the error
// is not tied to a single input item (e.g. a cycle formed by several items
// of one batch).
type ValidationError struct {
	TaskID  *uint
	Code    ErrorCode
	Message string
}

func (e *ValidationError) Error() string {
	if e.TaskID != nil {
		return fmt.Sprintf("%s: task #%d: %s", e.Code, *e.TaskID, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// itemError builds a ValidationError bound to one task.
func itemError(taskID uint, code ErrorCode, format string, args ...any) *ValidationError {
	id := taskID
	return &ValidationError{TaskID: &id, Code: code, Message: fmt.Sprintf(format, args...)}
}

// batchError builds a ValidationError not tied to a single item.
func batchError(code ErrorCode, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

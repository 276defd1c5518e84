package schedule

import "errors"

var (
	// ErrStopped is returned when attempting to schedule work against a scheduler which has been stopped.
	ErrStopped = errors.New("scheduler is stopped")

	// ErrTaskNotPending is returned by 'Cancel' when the given task is not pending execution, either because it has
	// already been dispatched, or because it was already cancelled.
	ErrTaskNotPending = errors.New("task is not pending")
)

package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MarkZuber/zubenet-common/pq"
)

// TaskFunc is the unit of work executed by the scheduler, where possible, the function should honor the cancellation
// of the given context and return as quickly/cleanly as possible.
type TaskFunc func(ctx context.Context) error

// Task represents a single scheduled unit of work, it's returned by 'Schedule'/'After' and may be presented back to
// the scheduler to cancel the work before it's dispatched.
type Task struct {
	id    uuid.UUID
	runAt time.Time
	fn    TaskFunc

	// item is the task's handle into the scheduler's queue, only valid whilst the task is pending.
	item *pq.Item[*Task]
}

// ID returns the unique identifier assigned to the task when it was scheduled.
func (t *Task) ID() uuid.UUID {
	return t.id
}

// RunAt returns the time the task is due to be dispatched.
func (t *Task) RunAt() time.Time {
	return t.runAt
}

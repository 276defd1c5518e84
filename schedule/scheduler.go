// Package schedule exposes an in-memory deadline scheduler; tasks are ordered by their run time in a priority queue
// and handed to a worker pool as they become due. Pending tasks may be cancelled in O(log n) via the queue handle
// issued at scheduling time.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MarkZuber/zubenet-common/hofp"
	"github.com/MarkZuber/zubenet-common/log"
	"github.com/MarkZuber/zubenet-common/pq"
	"github.com/MarkZuber/zubenet-common/retry"
	"github.com/MarkZuber/zubenet-common/timeprovider"
)

// Scheduler dispatches tasks at their scheduled run time using a configurable number of workers.
type Scheduler struct {
	opts   Options
	logger log.WrappedLogger

	pool   *hofp.Pool
	ticker timeprovider.Ticker

	// lock guards the queue, which is single-threaded by design; all queue access is funneled through it.
	lock  sync.Mutex
	queue *pq.PriorityQueue[*Task]

	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	cleanup sync.Once
}

// NewScheduler returns a new scheduler with the provided options, the dispatch loop is started immediately.
func NewScheduler(opts Options) *Scheduler {
	// Fill out any missing fields with the sane defaults
	opts.defaults()

	ctx, cancel := context.WithCancel(opts.Context)

	scheduler := &Scheduler{
		opts:   opts,
		logger: log.NewWrappedLogger(opts.Logger),
		queue:  pq.NewPriorityQueue[*Task](func(a, b *Task) int { return a.runAt.Compare(b.runAt) }, opts.Workers),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	scheduler.pool = hofp.NewPool(hofp.Options{
		Context:          ctx,
		Size:             opts.Workers,
		BufferMultiplier: opts.BufferMultiplier,
		LogPrefix:        opts.LogPrefix,
		Logger:           opts.Logger,
	})

	scheduler.ticker = opts.TimeProvider.Ticker()
	scheduler.ticker.Start(opts.Resolution)

	go scheduler.run()

	return scheduler
}

// Schedule queues the given function for execution at the given time, returning a task which may be used to cancel it
// whilst it remains pending. Times in the past are dispatched on the next tick.
func (s *Scheduler) Schedule(at time.Time, fn TaskFunc) (*Task, error) {
	if s.ctx.Err() != nil {
		return nil, ErrStopped
	}

	task := &Task{id: uuid.New(), runAt: at, fn: fn}

	s.lock.Lock()
	task.item = s.queue.Add(task)
	s.lock.Unlock()

	return task, nil
}

// After queues the given function for execution once the given duration has elapsed.
func (s *Scheduler) After(d time.Duration, fn TaskFunc) (*Task, error) {
	return s.Schedule(s.opts.TimeProvider.Now().Add(d), fn)
}

// Cancel removes a pending task from the scheduler.
//
// Returns 'ErrTaskNotPending' when the task has already been dispatched or cancelled; dispatch and cancellation race
// by nature, callers should treat that error as "too late", not as a failure.
func (s *Scheduler) Cancel(task *Task) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.queue.Remove(task.item); err != nil {
		return fmt.Errorf("%w: %s", ErrTaskNotPending, err)
	}

	return nil
}

// Pending returns the number of tasks which are scheduled but not yet dispatched.
func (s *Scheduler) Pending() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.queue.Len()
}

// Stop the scheduler; pending tasks are discarded, tasks already handed to the workers are allowed to complete.
// Returns the error which caused the worker pool to tear down (if there was one).
func (s *Scheduler) Stop() error {
	s.cleanup.Do(func() {
		s.cancel()
		s.ticker.Stop()
		<-s.done
	})

	return s.pool.Stop()
}

// run is the dispatch loop, it wakes on every tick and hands all due tasks to the worker pool.
func (s *Scheduler) run() {
	defer close(s.done)

	for {
		select {
		case <-s.ctx.Done():
			return
		case now := <-s.ticker.Channel():
			s.dispatch(now)
		}
	}
}

// dispatch polls and queues due tasks, in run time order, until the front of the queue is in the future.
func (s *Scheduler) dispatch(now time.Time) {
	for {
		task, ok := s.poll(now)
		if !ok {
			return
		}

		if s.opts.Limiter != nil {
			if err := s.opts.Limiter.Wait(s.ctx); err != nil {
				return
			}
		}

		err := s.pool.Queue(func(ctx context.Context) error { s.execute(ctx, task); return nil })
		if err != nil {
			s.logger.Errorf("%s Failed to queue task %s: %v", s.opts.LogPrefix, task.id, err)
			return
		}
	}
}

// poll removes and returns the front of the queue if it's due, the item handle is detached by the removal meaning a
// concurrent 'Cancel' for the same task will cleanly fail.
func (s *Scheduler) poll(now time.Time) (*Task, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	item, ok := s.queue.Peek()
	if !ok || item.Value().runAt.After(now) {
		return nil, false
	}

	item, _ = s.queue.Poll()

	return item.Value(), true
}

// execute runs the given task, retrying with back-off when configured. Task failures are logged rather than returned,
// a failing task must not tear down the scheduler's worker pool.
func (s *Scheduler) execute(ctx context.Context, task *Task) {
	run := func() error { return task.fn(ctx) }

	if s.opts.Retry != nil {
		retryer := retry.NewRetryer[struct{}](*s.opts.Retry)

		run = func() error {
			_, err := retryer.DoWithContext(ctx, func(ctx *retry.Context) (struct{}, error) {
				return struct{}{}, task.fn(ctx)
			})

			return err
		}
	}

	if err := run(); err != nil {
		s.logger.Errorf("%s Task %s failed: %v", s.opts.LogPrefix, task.id, err)
	}
}

package schedule

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/MarkZuber/zubenet-common/log"
	"github.com/MarkZuber/zubenet-common/retry"
	"github.com/MarkZuber/zubenet-common/system"
	"github.com/MarkZuber/zubenet-common/timeprovider"
)

// Options encapsulates the available options which can be used when creating a scheduler.
type Options struct {
	// Context used by the scheduler, if omitted a background context will be used.
	Context context.Context

	// TimeProvider is the clock used to decide when tasks are due. Defaults to the system clock; tests supply a
	// 'timeprovider.FakeTimeProvider' to drive the scheduler deterministically.
	TimeProvider timeprovider.TimeProvider

	// Resolution is the period of the ticker which drives dispatch; a task becomes eligible on the first tick at, or
	// after its run time. Defaults to 25ms.
	Resolution time.Duration

	// Workers dictates the number of goroutines used to execute due tasks. Defaults to the number of vCPUs.
	Workers int

	// BufferMultiplier mirrors the worker pool option of the same name.
	BufferMultiplier int

	// Limiter optionally rate limits dispatch, when supplied, the scheduler waits for the limiter before handing each
	// due task to the workers.
	Limiter *rate.Limiter

	// Retry optionally enables retrying failed tasks with back-off.
	//
	// NOTE: Back-off sleeps use the real clock, not 'TimeProvider'.
	Retry *retry.RetryerOptions[struct{}]

	// Logger is the logger used by the scheduler and its worker pool, if omitted logging is a no-op.
	Logger log.Logger

	// LogPrefix is the prefix used when logging. Defaults to '(schedule)'.
	LogPrefix string
}

// defaults fills any missing attributes to a sane default.
func (o *Options) defaults() {
	if o.Context == nil {
		o.Context = context.Background()
	}

	if o.TimeProvider == nil {
		o.TimeProvider = timeprovider.CurrentTimeProvider{}
	}

	if o.Resolution == 0 {
		o.Resolution = 25 * time.Millisecond
	}

	if o.Workers == 0 {
		o.Workers = system.NumCPU()
	}

	o.BufferMultiplier = max(1, o.BufferMultiplier)

	if o.LogPrefix == "" {
		o.LogPrefix = "(schedule)"
	}
}

// Package timeprovider exposes an injectable clock abstraction allowing time driven components to be tested
// deterministically.
package timeprovider

import "time"

// TimeProvider is the clock used by time driven components; production code uses 'CurrentTimeProvider', tests use
// 'FakeTimeProvider'.
type TimeProvider interface {
	Now() time.Time
	Ticker() Ticker
}

// CurrentTimeProvider implements 'TimeProvider' using the real system clock.
type CurrentTimeProvider struct{}

var _ TimeProvider = (*CurrentTimeProvider)(nil)

func (tp CurrentTimeProvider) Now() time.Time {
	return time.Now()
}

func (tp CurrentTimeProvider) Ticker() Ticker {
	return NewRealTicker()
}

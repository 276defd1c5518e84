package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MarkZuber/zubenet-common/system"
	"github.com/MarkZuber/zubenet-common/timeprovider"
)

func TestOptionsDefaults(t *testing.T) {
	var opts Options

	opts.defaults()

	expected := Options{
		Context:          context.Background(),
		TimeProvider:     timeprovider.CurrentTimeProvider{},
		Resolution:       25 * time.Millisecond,
		Workers:          system.NumCPU(),
		BufferMultiplier: 1,
		LogPrefix:        "(schedule)",
	}

	require.Equal(t, expected, opts)
}

func TestOptionsDefaultsSuppliedValuesRetained(t *testing.T) {
	provider := timeprovider.NewFakeTimeProvider(time.Now())

	opts := Options{
		TimeProvider: provider,
		Resolution:   time.Second,
		Workers:      2,
		LogPrefix:    "(custom)",
	}

	opts.defaults()

	require.Same(t, provider, opts.TimeProvider)
	require.Equal(t, time.Second, opts.Resolution)
	require.Equal(t, 2, opts.Workers)
	require.Equal(t, "(custom)", opts.LogPrefix)
}

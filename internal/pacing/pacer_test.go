package pacing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstantDoesNotWait(t *testing.T) {
	start := time.Now()
	require.NoError(t, Instant().Wait(context.Background(), 5*time.Second))
	assert.Less(t, time.Since(start), time.Second)
}

func TestScaledWaitsScaledDuration(t *testing.T) {
	p := NewScaled(0.01)
	assert.Equal(t, 20*time.Millisecond, p.Scale(2*time.Second))

	start := time.Now()
	require.NoError(t, p.Wait(context.Background(), 2*time.Second))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestWaitHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewScaled(1).Wait(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNegativeFactorClamped(t *testing.T) {
	assert.Equal(t, 0.0, NewScaled(-3).Factor)
}

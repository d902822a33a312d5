// Package pacing performs the fixed artificial waits that stand in for
// model latency throughout the demo.
package pacing

import (
	"context"
	"time"
)

// Pacer blocks for a simulated delay.
type Pacer interface {
	Wait(ctx context.Context, d time.Duration) error
}

// Scaled multiplies every delay by Factor. A zero factor returns at once,
// which is what tests and scripted demos use.
type Scaled struct {
	Factor float64
}

// NewScaled returns a pacer with the given factor; negative factors are treated as 0.
func NewScaled(factor float64) *Scaled {
	if factor < 0 {
		factor = 0
	}
	return &Scaled{Factor: factor}
}

// Instant never waits.
func Instant() *Scaled {
	return &Scaled{}
}

func (s *Scaled) Scale(d time.Duration) time.Duration {
	return time.Duration(float64(d) * s.Factor)
}

// Wait sleeps for the scaled delay or until ctx is done.
func (s *Scaled) Wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	scaled := s.Scale(d)
	if scaled <= 0 {
		return nil
	}

	timer := time.NewTimer(scaled)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

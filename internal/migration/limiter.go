package migration

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultCallInterval = 500 * time.Millisecond
	DefaultBurst        = 1
)

// Limiter paces provider calls. Wait blocks until a call may proceed.
type Limiter interface {
	Wait(ctx context.Context) error
}

// NewIntervalLimiter allows one call per interval with the given burst. Non
// positive values fall back to the defaults.
func NewIntervalLimiter(interval time.Duration, burst int) Limiter {
	if interval <= 0 {
		interval = DefaultCallInterval
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return rate.NewLimiter(rate.Every(interval), burst)
}

type unlimited struct{}

func (unlimited) Wait(context.Context) error { return nil }

// Unlimited never blocks.
func Unlimited() Limiter {
	return unlimited{}
}

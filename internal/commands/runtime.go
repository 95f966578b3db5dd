package commands

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// DefaultCommandTimeout bounds commands that do not set their own timeout.
// Migration commands disable it since a run has no overall deadline.
const DefaultCommandTimeout = 30 * time.Second

// withDeadline returns a non-nil context bounded by timeout when it is positive.
func withDeadline(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// classify maps the handler result onto a telemetry status and the error
// returned to the caller. A migration stopped by cancellation reports the
// context error itself, so it is treated as a context outcome rather than a
// failure.
func classify(ctx context.Context, err error) (TelemetryStatus, error) {
	switch {
	case err != nil && isContextErr(err):
		return TelemetryStatusContextError, WrapContextError(err)
	case err != nil:
		return TelemetryStatusFailed, WrapExecuteError(err)
	case ctx.Err() != nil:
		return TelemetryStatusContextError, WrapContextError(ctx.Err())
	default:
		return TelemetryStatusSuccess, nil
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// EnsureLogger returns a usable logger, defaulting to a no-op logger.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}

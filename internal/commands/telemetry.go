package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo is handed to Telemetry once a command returns.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs the outcome with its duration. Cancelled commands are
// logged as warnings since callers stop long migrations on purpose.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	logger = EnsureLogger(logger)
	return func(ctx context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, info.Fields).WithContext(ctx)
		logOutcome(entry, info.Status, info.Error, "duration_ms", info.Duration.Milliseconds())
	}
}

func logOutcome(logger interfaces.Logger, status TelemetryStatus, err error, args ...any) {
	switch status {
	case TelemetryStatusSuccess:
		logger.Info("command.completed", args...)
	case TelemetryStatusContextError:
		logger.Warn("command.cancelled", append(args, "error", err)...)
	default:
		logger.Error("command.failed", append(args, "error", err)...)
	}
}

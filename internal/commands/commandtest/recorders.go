// Package commandtest provides registry and cron recorders for command wiring tests.
package commandtest

import (
	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-storefront/internal/commands"
)

// RecordingRegistry captures registered command handlers in order.
type RecordingRegistry struct {
	Handlers []any
	Err      error
}

var _ commands.CommandRegistry = (*RecordingRegistry)(nil)

// NewRecordingRegistry constructs an empty registry recorder.
func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{Handlers: make([]any, 0)}
}

// RegisterCommand records handler, or returns Err when set.
func (r *RecordingRegistry) RegisterCommand(handler any) error {
	if r.Err != nil {
		return r.Err
	}
	r.Handlers = append(r.Handlers, handler)
	return nil
}

// CronRegistration captures a single cron wiring invocation.
type CronRegistration struct {
	Config  command.HandlerConfig
	Handler any
}

// CronRecorder records calls to a CronRegistrar function.
type CronRecorder struct {
	Registrations []CronRegistration
	err           error
}

// NewCronRecorder constructs an empty cron recorder.
func NewCronRecorder() *CronRecorder {
	return &CronRecorder{Registrations: make([]CronRegistration, 0)}
}

// Fail makes every following registration return err.
func (c *CronRecorder) Fail(err error) {
	c.err = err
}

// Registrar returns a commands.CronRegistrar that records invocations.
func (c *CronRecorder) Registrar() commands.CronRegistrar {
	return func(cfg command.HandlerConfig, handler any) error {
		if c.err != nil {
			return c.err
		}
		c.Registrations = append(c.Registrations, CronRegistration{
			Config:  cfg,
			Handler: handler,
		})
		return nil
	}
}

// Run invokes the recorded cron handler at index i when it is a func() error.
func (c *CronRecorder) Run(i int) error {
	fn, ok := c.Registrations[i].Handler.(func() error)
	if !ok {
		return nil
	}
	return fn()
}

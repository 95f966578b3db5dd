package commands

import command "github.com/goliatone/go-command"

// CommandRegistry is the minimal registration contract used when wiring
// command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

package migrationcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-storefront/internal/commands"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// HandlerSet groups the migration handlers built by RegisterMigrationCommands.
type HandlerSet struct {
	Collection  *MigrateCollectionHandler
	Entity      *MigrateEntityHandler
	Retranslate *RetranslateHandler
	All         *MigrateAllHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	observer        StatsObserver
	collectionOpts  []commands.HandlerOption[MigrateCollectionCommand]
	entityOpts      []commands.HandlerOption[MigrateEntityCommand]
	retranslateOpts []commands.HandlerOption[RetranslateCommand]
	allOpts         []commands.HandlerOption[MigrateAllCommand]
}

// WithStatsObserver receives the stats of every run executed by the handlers.
func WithStatsObserver(fn StatsObserver) Option {
	return func(cfg *options) {
		cfg.observer = fn
	}
}

// WithCollectionHandlerOptions forwards options to the MigrateCollectionHandler.
func WithCollectionHandlerOptions(opts ...commands.HandlerOption[MigrateCollectionCommand]) Option {
	return func(cfg *options) {
		cfg.collectionOpts = append(cfg.collectionOpts, opts...)
	}
}

// WithEntityHandlerOptions forwards options to the MigrateEntityHandler.
func WithEntityHandlerOptions(opts ...commands.HandlerOption[MigrateEntityCommand]) Option {
	return func(cfg *options) {
		cfg.entityOpts = append(cfg.entityOpts, opts...)
	}
}

// WithRetranslateHandlerOptions forwards options to the RetranslateHandler.
func WithRetranslateHandlerOptions(opts ...commands.HandlerOption[RetranslateCommand]) Option {
	return func(cfg *options) {
		cfg.retranslateOpts = append(cfg.retranslateOpts, opts...)
	}
}

// WithAllHandlerOptions forwards options to the MigrateAllHandler.
func WithAllHandlerOptions(opts ...commands.HandlerOption[MigrateAllCommand]) Option {
	return func(cfg *options) {
		cfg.allOpts = append(cfg.allOpts, opts...)
	}
}

// RegisterMigrationCommands builds the migration handlers and registers them
// with reg when it is non-nil. The handler set is returned so callers can wire
// a dispatcher or cron job.
func RegisterMigrationCommands(reg commands.CommandRegistry, migrator Migrator, defaults Defaults, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if migrator == nil {
		return nil, errors.New("migration command registration: migrator is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := logging.MigrationCommandsLogger(provider)

	set := &HandlerSet{
		Collection:  NewMigrateCollectionHandler(migrator, defaults, logger, cfg.observer, cfg.collectionOpts...),
		Entity:      NewMigrateEntityHandler(migrator, defaults, logger, cfg.observer, cfg.entityOpts...),
		Retranslate: NewRetranslateHandler(migrator, defaults, logger, cfg.observer, cfg.retranslateOpts...),
		All:         NewMigrateAllHandler(migrator, defaults, logger, cfg.observer, cfg.allOpts...),
	}

	if reg != nil {
		for _, handler := range []any{set.Collection, set.Entity, set.Retranslate, set.All} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

// RegisterMigrationCron schedules handler with msg using cfg.Expression. The
// job runs with a background context.
func RegisterMigrationCron(reg commands.CronRegistrar, handler *MigrateAllHandler, cfg command.HandlerConfig, msg MigrateAllCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}

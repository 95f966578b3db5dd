package migrationcmd

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/goliatone/go-storefront/internal/commands"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/internal/migration"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

const (
	migrateCollectionOperation = "migration.migrate_collection"
	migrateEntityOperation     = "migration.migrate_entity"
	retranslateOperation       = "migration.retranslate"
	migrateAllOperation        = "migration.migrate_all"
)

var (
	_ command.Commander[MigrateCollectionCommand] = (*MigrateCollectionHandler)(nil)
	_ command.Commander[MigrateEntityCommand]     = (*MigrateEntityHandler)(nil)
	_ command.Commander[RetranslateCommand]       = (*RetranslateHandler)(nil)
	_ command.Commander[MigrateAllCommand]        = (*MigrateAllHandler)(nil)
)

// Migrator is the subset of migration.Engine used by the command handlers.
type Migrator interface {
	MigrateCollection(ctx context.Context, req migration.Request) (*migration.RunStats, error)
	Retranslate(ctx context.Context, req migration.Request) (*migration.RunStats, error)
	MigrateEntity(ctx context.Context, req migration.Request, id uuid.UUID) (*migration.RunStats, error)
}

// Defaults fill the fields and languages a message leaves empty.
type Defaults struct {
	// Presets maps a collection to its translatable fields.
	Presets map[string][]string
	// Languages lists the target languages, primary first.
	Languages []string
}

func (d Defaults) request(collection string, fields, languages []string, force bool) migration.Request {
	collection = strings.TrimSpace(collection)
	if len(fields) == 0 {
		fields = slices.Clone(d.Presets[collection])
	}
	if len(languages) == 0 {
		languages = slices.Clone(d.Languages)
	}
	return migration.Request{
		Collection: collection,
		Fields:     fields,
		Languages:  languages,
		Force:      force,
	}
}

func (d Defaults) collections() []string {
	return slices.Sorted(maps.Keys(d.Presets))
}

// StatsObserver receives the stats of every run, including partial stats of
// a cancelled run.
type StatsObserver func(ctx context.Context, stats *migration.RunStats)

// MigrateCollectionHandler runs MigrateCollectionCommand through the shared
// command handler.
type MigrateCollectionHandler struct {
	inner *commands.Handler[MigrateCollectionCommand]
}

// NewMigrateCollectionHandler builds the handler. Runs are not bounded by a
// command timeout unless one is passed in opts.
func NewMigrateCollectionHandler(migrator Migrator, defaults Defaults, logger interfaces.Logger, observe StatsObserver, opts ...commands.HandlerOption[MigrateCollectionCommand]) *MigrateCollectionHandler {
	logger = commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg MigrateCollectionCommand) error {
		req := defaults.request(msg.Collection, msg.Fields, msg.Languages, msg.Force)
		stats, err := migrator.MigrateCollection(ctx, req)
		report(ctx, logger, observe, migrateCollectionOperation, stats)
		return err
	}

	handlerOpts := []commands.HandlerOption[MigrateCollectionCommand]{
		commands.WithLogger[MigrateCollectionCommand](logger),
		commands.WithOperation[MigrateCollectionCommand](migrateCollectionOperation),
		commands.WithTimeout[MigrateCollectionCommand](0),
		commands.WithMessageFields(func(msg MigrateCollectionCommand) map[string]any {
			fields := map[string]any{"collection": msg.Collection}
			if msg.Force {
				fields["force"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[MigrateCollectionCommand](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &MigrateCollectionHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[MigrateCollectionCommand].
func (h *MigrateCollectionHandler) Execute(ctx context.Context, msg MigrateCollectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RetranslateHandler runs RetranslateCommand.
type RetranslateHandler struct {
	inner *commands.Handler[RetranslateCommand]
}

// NewRetranslateHandler builds the handler.
func NewRetranslateHandler(migrator Migrator, defaults Defaults, logger interfaces.Logger, observe StatsObserver, opts ...commands.HandlerOption[RetranslateCommand]) *RetranslateHandler {
	logger = commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg RetranslateCommand) error {
		req := defaults.request(msg.Collection, msg.Fields, msg.Languages, true)
		stats, err := migrator.Retranslate(ctx, req)
		report(ctx, logger, observe, retranslateOperation, stats)
		return err
	}

	handlerOpts := []commands.HandlerOption[RetranslateCommand]{
		commands.WithLogger[RetranslateCommand](logger),
		commands.WithOperation[RetranslateCommand](retranslateOperation),
		commands.WithTimeout[RetranslateCommand](0),
		commands.WithMessageFields(func(msg RetranslateCommand) map[string]any {
			return map[string]any{"collection": msg.Collection}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RetranslateCommand](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RetranslateHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[RetranslateCommand].
func (h *RetranslateHandler) Execute(ctx context.Context, msg RetranslateCommand) error {
	return h.inner.Execute(ctx, msg)
}

// MigrateEntityHandler runs MigrateEntityCommand.
type MigrateEntityHandler struct {
	inner *commands.Handler[MigrateEntityCommand]
}

// NewMigrateEntityHandler builds the handler. A missing entity surfaces as an
// error matching migration.ErrEntityNotFound.
func NewMigrateEntityHandler(migrator Migrator, defaults Defaults, logger interfaces.Logger, observe StatsObserver, opts ...commands.HandlerOption[MigrateEntityCommand]) *MigrateEntityHandler {
	logger = commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg MigrateEntityCommand) error {
		req := defaults.request(msg.Collection, msg.Fields, msg.Languages, msg.Force)
		stats, err := migrator.MigrateEntity(ctx, req, msg.EntityID)
		report(ctx, logger, observe, migrateEntityOperation, stats)
		return err
	}

	handlerOpts := []commands.HandlerOption[MigrateEntityCommand]{
		commands.WithLogger[MigrateEntityCommand](logger),
		commands.WithOperation[MigrateEntityCommand](migrateEntityOperation),
		commands.WithTimeout[MigrateEntityCommand](0),
		commands.WithMessageFields(func(msg MigrateEntityCommand) map[string]any {
			fields := map[string]any{
				"collection": msg.Collection,
				"entity_id":  msg.EntityID.String(),
			}
			if msg.Force {
				fields["force"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[MigrateEntityCommand](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &MigrateEntityHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[MigrateEntityCommand].
func (h *MigrateEntityHandler) Execute(ctx context.Context, msg MigrateEntityCommand) error {
	return h.inner.Execute(ctx, msg)
}

// MigrateAllHandler runs MigrateAllCommand. A failing collection does not stop
// the remaining ones; cancellation does.
type MigrateAllHandler struct {
	inner *commands.Handler[MigrateAllCommand]
}

// NewMigrateAllHandler builds the handler.
func NewMigrateAllHandler(migrator Migrator, defaults Defaults, logger interfaces.Logger, observe StatsObserver, opts ...commands.HandlerOption[MigrateAllCommand]) *MigrateAllHandler {
	logger = commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg MigrateAllCommand) error {
		collections := msg.Collections
		if len(collections) == 0 {
			collections = defaults.collections()
		}
		var errs []error
		for _, collection := range collections {
			if err := ctx.Err(); err != nil {
				errs = append(errs, err)
				break
			}
			req := defaults.request(collection, nil, nil, msg.Force)
			stats, err := migrator.MigrateCollection(ctx, req)
			report(ctx, logger, observe, migrateAllOperation, stats)
			if err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	handlerOpts := []commands.HandlerOption[MigrateAllCommand]{
		commands.WithLogger[MigrateAllCommand](logger),
		commands.WithOperation[MigrateAllCommand](migrateAllOperation),
		commands.WithTimeout[MigrateAllCommand](0),
		commands.WithMessageFields(func(msg MigrateAllCommand) map[string]any {
			fields := map[string]any{}
			if len(msg.Collections) > 0 {
				fields["collections"] = strings.Join(msg.Collections, ",")
			}
			if msg.Force {
				fields["force"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[MigrateAllCommand](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &MigrateAllHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[MigrateAllCommand].
func (h *MigrateAllHandler) Execute(ctx context.Context, msg MigrateAllCommand) error {
	return h.inner.Execute(ctx, msg)
}

func report(ctx context.Context, logger interfaces.Logger, observe StatsObserver, operation string, stats *migration.RunStats) {
	if stats == nil {
		return
	}
	logging.WithFields(logger, map[string]any{
		"run_id":     stats.RunID,
		"collection": stats.Collection,
		"total":      stats.Total,
		"success":    stats.Success,
		"failed":     stats.Failed,
		"skipped":    stats.Skipped,
		"cancelled":  stats.Cancelled,
	}).Info(operation + ".completed")
	if observe != nil {
		observe(ctx, stats)
	}
}

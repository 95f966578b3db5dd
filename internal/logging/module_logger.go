package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-storefront/pkg/interfaces"
)

const (
	rootModule       = "storefront"
	migrationModule  = "storefront.migration"
	translatorModule = "storefront.translator"
	localeModule     = "storefront.locale"
	fixturesModule   = "storefront.fixtures"

	migrationCommandsModule = "storefront.commands.migration"
)

const (
	fieldCollection = "collection"
	fieldEntityID   = "entity_id"
	fieldRunID      = "run_id"
)

// ModuleLogger returns a logger scoped to module. A nil provider yields a
// no-op logger. The module name is attached as the "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = rootModule
	}

	var logger interfaces.Logger = NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

// MigrationLogger returns the logger used by the translation migration engine.
func MigrationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, migrationModule)
}

// TranslatorLogger returns the logger used by translation provider adapters.
func TranslatorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, translatorModule)
}

// LocaleLogger returns the logger used by the locale selector.
func LocaleLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, localeModule)
}

// FixturesLogger returns the logger used by fixture loading and seeding.
func FixturesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, fixturesModule)
}

// MigrationCommandsLogger returns the logger shared by the migration command
// handlers. Entries carry component=command so they can be told apart from
// the engine's own run logs.
func MigrationCommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return WithFields(ModuleLogger(provider, migrationCommandsModule), map[string]any{
		"component": "command",
	})
}

// WithRunContext attaches the run identifier, collection and entity to logger.
// Blank values are skipped.
func WithRunContext(logger interfaces.Logger, runID, collection, entityID string) interfaces.Logger {
	fields := map[string]any{}
	if v := strings.TrimSpace(runID); v != "" {
		fields[fieldRunID] = v
	}
	if v := strings.TrimSpace(collection); v != "" {
		fields[fieldCollection] = v
	}
	if v := strings.TrimSpace(entityID); v != "" {
		fields[fieldEntityID] = v
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that discards every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-storefront"
	"github.com/goliatone/go-storefront/cmd/storefront/internal/bootstrap"
	"github.com/goliatone/go-storefront/internal/di"
	"github.com/goliatone/go-storefront/internal/migration"
)

type app struct {
	out  io.Writer
	opts bootstrap.Options
}

func newApp(out io.Writer) *app {
	return &app{out: out}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront content localization and pricing tools",
		Long: `storefront manages the localized storefront catalog.

Commands:
  seed            Load fixture documents into the content store
  migrate         Fill missing translations of a collection
  migrate-all     Fill missing translations of every configured collection
  migrate-entity  Translate a single entity
  retranslate     Re-translate a collection, replacing existing translations
  resolve         Print the localized fields of an entity
  price           Resolve the effective price of a product
  languages       List the configured languages
  set-language    Persist the active language`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.ConfigPath, "config", "", "YAML configuration file")
	flags.StringVar(&a.opts.Storage, "storage", "", "Storage driver: memory, sqlite, postgres")
	flags.StringVar(&a.opts.DSN, "dsn", "", "Storage DSN for sqlite or postgres")
	flags.StringVar(&a.opts.Translator, "translator", "", "Translation provider: mymemory, identity")
	flags.StringVar(&a.opts.LogLevel, "log-level", "", "Log level override")
	flags.StringVar(&a.opts.FixturesDir, "fixtures", "", "Fixtures directory seeded into the memory store")

	root.AddCommand(
		a.newSeedCmd(),
		a.newMigrateCmd(),
		a.newMigrateAllCmd(),
		a.newMigrateEntityCmd(),
		a.newRetranslateCmd(),
		a.newResolveCmd(),
		a.newPriceCmd(),
		a.newLanguagesCmd(),
		a.newSetLanguageCmd(),
	)
	return root
}

func (a *app) module(cmd *cobra.Command, extra ...di.Option) (*storefront.Module, error) {
	opts := a.opts
	opts.DIOptions = append(append([]di.Option{}, a.opts.DIOptions...), extra...)
	return bootstrap.BuildModule(commandContext(cmd), opts)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) printStats(_ context.Context, stats *migration.RunStats) {
	a.printf("%s: %d total, %d succeeded, %d failed, %d skipped",
		stats.Collection, stats.Total, stats.Success, stats.Failed, stats.Skipped)
	if stats.Cancelled {
		a.printf(" (cancelled after %d)", stats.Processed())
	}
	a.printf("\n")
	for _, outcome := range stats.Outcomes {
		if outcome.State == migration.StateFailed {
			a.printf("  failed %s: %s\n", outcome.Slug, outcome.Err)
		}
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

package main

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-storefront/cmd/storefront/internal/bootstrap"
	migrationcmd "github.com/goliatone/go-storefront/internal/commands/migration"
	"github.com/goliatone/go-storefront/internal/di"
	"github.com/goliatone/go-storefront/internal/localization"
	"github.com/goliatone/go-storefront/internal/pricing"
)

// ---------------------------------------------------------------------------
// seed
// ---------------------------------------------------------------------------

func (a *app) newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [dir]",
		Short: "Load fixture documents into the content store",
		Long: `Load Markdown and YAML fixture documents into the content store.

Documents whose collection and slug already exist are left untouched, so the
command can be repeated safely. Defaults to the configured fixtures directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.opts.SkipSeed = true
			module, err := a.module(cmd)
			if err != nil {
				return err
			}
			defer module.Close()

			dir := module.Container().Config.Fixtures.Dir
			if len(args) == 1 {
				dir = args[0]
			}
			result, err := module.Seed(commandContext(cmd), os.DirFS(dir), ".")
			if err != nil {
				return err
			}
			a.printf("seeded %s: %d created, %d existing\n", dir, result.Created, result.Existing)
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// migrate, migrate-all, migrate-entity, retranslate
// ---------------------------------------------------------------------------

type selectionFlags struct {
	fields string
	langs  string
	force  bool
	dryRun bool
}

func (s *selectionFlags) register(cmd *cobra.Command, withForce bool) {
	cmd.Flags().StringVar(&s.fields, "fields", "", "Fields to translate (comma-separated, default: collection preset)")
	cmd.Flags().StringVar(&s.langs, "lang", "", "Target languages (comma-separated, default: all but the source)")
	cmd.Flags().BoolVar(&s.dryRun, "dry-run", false, "Use the identity translator instead of calling the provider")
	if withForce {
		cmd.Flags().BoolVar(&s.force, "force", false, "Translate entities that already have translations")
	}
}

func (a *app) applyDryRun(s *selectionFlags) {
	if s.dryRun {
		a.opts.Translator = "identity"
	}
}

func (a *app) newMigrateCmd() *cobra.Command {
	var sel selectionFlags
	cmd := &cobra.Command{
		Use:   "migrate <collection>",
		Short: "Fill missing translations of a collection",
		Long: `Translate every entity of a collection that is missing a translation of
its primary field in the primary target language. Provider calls are rate
limited; failed calls keep the source text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.applyDryRun(&sel)
			module, err := a.module(cmd, di.WithStatsObserver(a.printStats))
			if err != nil {
				return err
			}
			defer module.Close()

			return module.Container().MigrationCommands().Collection.Execute(commandContext(cmd), migrationcmd.MigrateCollectionCommand{
				Collection: args[0],
				Fields:     bootstrap.SplitList(sel.fields),
				Languages:  bootstrap.SplitList(sel.langs),
				Force:      sel.force,
			})
		},
	}
	sel.register(cmd, true)
	return cmd
}

func (a *app) newMigrateAllCmd() *cobra.Command {
	var (
		sel         selectionFlags
		collections string
	)
	cmd := &cobra.Command{
		Use:   "migrate-all",
		Short: "Fill missing translations of every configured collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.applyDryRun(&sel)
			module, err := a.module(cmd, di.WithStatsObserver(a.printStats))
			if err != nil {
				return err
			}
			defer module.Close()

			return module.Container().MigrationCommands().All.Execute(commandContext(cmd), migrationcmd.MigrateAllCommand{
				Collections: bootstrap.SplitList(collections),
				Force:       sel.force,
			})
		},
	}
	cmd.Flags().StringVar(&collections, "collections", "", "Collections to migrate (comma-separated, default: all presets)")
	cmd.Flags().BoolVar(&sel.force, "force", false, "Translate entities that already have translations")
	cmd.Flags().BoolVar(&sel.dryRun, "dry-run", false, "Use the identity translator instead of calling the provider")
	return cmd
}

func (a *app) newMigrateEntityCmd() *cobra.Command {
	var sel selectionFlags
	cmd := &cobra.Command{
		Use:   "migrate-entity <collection> <slug|id>",
		Short: "Translate a single entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.applyDryRun(&sel)
			module, err := a.module(cmd, di.WithStatsObserver(a.printStats))
			if err != nil {
				return err
			}
			defer module.Close()

			ctx := commandContext(cmd)
			entity, err := bootstrap.FindEntity(ctx, module.Store(), args[0], args[1])
			if err != nil {
				return err
			}
			return module.Container().MigrationCommands().Entity.Execute(ctx, migrationcmd.MigrateEntityCommand{
				Collection: args[0],
				EntityID:   entity.ID,
				Fields:     bootstrap.SplitList(sel.fields),
				Languages:  bootstrap.SplitList(sel.langs),
				Force:      sel.force,
			})
		},
	}
	sel.register(cmd, true)
	return cmd
}

func (a *app) newRetranslateCmd() *cobra.Command {
	var sel selectionFlags
	cmd := &cobra.Command{
		Use:   "retranslate <collection>",
		Short: "Re-translate a collection, replacing existing translations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.applyDryRun(&sel)
			module, err := a.module(cmd, di.WithStatsObserver(a.printStats))
			if err != nil {
				return err
			}
			defer module.Close()

			return module.Container().MigrationCommands().Retranslate.Execute(commandContext(cmd), migrationcmd.RetranslateCommand{
				Collection: args[0],
				Fields:     bootstrap.SplitList(sel.fields),
				Languages:  bootstrap.SplitList(sel.langs),
			})
		},
	}
	sel.register(cmd, false)
	return cmd
}

// ---------------------------------------------------------------------------
// resolve
// ---------------------------------------------------------------------------

func (a *app) newResolveCmd() *cobra.Command {
	var lang, accept string
	cmd := &cobra.Command{
		Use:   "resolve <collection> <slug|id>",
		Short: "Print the localized fields of an entity",
		Long: `Print every field of an entity as it would be displayed. The language is
taken from --lang, negotiated from --accept (an Accept-Language value), or
defaults to the active language.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := a.module(cmd)
			if err != nil {
				return err
			}
			defer module.Close()

			current := module.Locale()
			catalog := module.Locales().Catalog()
			switch {
			case strings.TrimSpace(lang) != "":
				l, ok := catalog.Lookup(lang)
				if !ok {
					return fmt.Errorf("language %q is not configured", lang)
				}
				current = current.With(l.Code)
			case strings.TrimSpace(accept) != "":
				current = current.With(localization.Negotiate(accept, catalog.Codes(), catalog.Default()))
			}

			entity, err := bootstrap.FindEntity(commandContext(cmd), module.Store(), args[0], args[1])
			if err != nil {
				return err
			}
			a.printf("%s/%s [%s]\n", entity.Collection, entity.Slug, current.Current)
			for _, name := range slices.Sorted(maps.Keys(entity.Fields)) {
				a.printf("  %s: %s\n", name, current.ResolveField(entity.Fields[name]))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "Language to resolve")
	cmd.Flags().StringVar(&accept, "accept", "", "Accept-Language header to negotiate")
	return cmd
}

// ---------------------------------------------------------------------------
// price
// ---------------------------------------------------------------------------

func (a *app) newPriceCmd() *cobra.Command {
	var (
		userID   string
		tier     string
		discount float64
	)
	cmd := &cobra.Command{
		Use:   "price <collection> <slug|id>",
		Short: "Resolve the effective price of a product",
		Long: `Resolve the price of an entity from the pricing profile stored in its
metadata. Without --user, --tier or --discount the visitor is anonymous.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := userContext(userID, tier, discount)
			if err != nil {
				return err
			}

			module, err := a.module(cmd)
			if err != nil {
				return err
			}
			defer module.Close()

			entity, err := bootstrap.FindEntity(commandContext(cmd), module.Store(), args[0], args[1])
			if err != nil {
				return err
			}
			profile, ok, err := pricing.ProfileFromMetadata(entity.Metadata)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s/%s has no pricing profile", entity.Collection, entity.Slug)
			}

			result := module.Price(profile, user)
			a.printf("price: %.2f\n", result.Price)
			if result.TierLabel != "" {
				a.printf("label: %s\n", result.TierLabel)
			}
			if result.OriginalPrice != nil {
				a.printf("original: %.2f\n", *result.OriginalPrice)
			}
			if result.DiscountAmount != nil {
				a.printf("discount: %.2f (%d%%)\n", *result.DiscountAmount, pricing.DiscountPercentage(result))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User id, matched against per-user overrides")
	cmd.Flags().StringVar(&tier, "tier", "", "Pricing tier: standard, premium, vip, custom")
	cmd.Flags().Float64Var(&discount, "discount", 0, "Discount percent for the custom tier")
	return cmd
}

func userContext(userID, tier string, discount float64) (*pricing.UserContext, error) {
	if strings.TrimSpace(userID) == "" && strings.TrimSpace(tier) == "" && discount == 0 {
		return nil, nil
	}
	parsed, err := pricing.ParseTier(tier)
	if err != nil {
		return nil, err
	}
	user := &pricing.UserContext{
		UserID:          strings.TrimSpace(userID),
		Tier:            parsed,
		DiscountPercent: discount,
	}
	if user.UserID == "" {
		user.UserID = "cli"
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// ---------------------------------------------------------------------------
// languages, set-language
// ---------------------------------------------------------------------------

func (a *app) newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the configured languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.opts.SkipSeed = true
			module, err := a.module(cmd)
			if err != nil {
				return err
			}
			defer module.Close()

			current := module.Locale().Current
			for _, lang := range module.Locales().Catalog().Languages() {
				marker := " "
				if lang.Code == current {
					marker = "*"
				}
				a.printf("%s %-3s %-3s %s\n", marker, lang.Code, lang.Label, lang.Name)
			}
			return nil
		},
	}
}

func (a *app) newSetLanguageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-language <code>",
		Short: "Persist the active language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.opts.SkipSeed = true
			module, err := a.module(cmd)
			if err != nil {
				return err
			}
			defer module.Close()

			locale, err := module.SetLanguage(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			a.printf("active language: %s\n", locale.Current)
			if module.Container().BunDB() == nil {
				a.printf("note: the memory driver does not keep the language between runs\n")
			}
			return nil
		},
	}
}

package migrationcmd

import (
	"errors"
	"testing"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-storefront/internal/commands"
	"github.com/goliatone/go-storefront/internal/commands/commandtest"
)

func TestRegisterMigrationCommandsRegistersHandlers(t *testing.T) {
	reg := commandtest.NewRecordingRegistry()

	set, err := RegisterMigrationCommands(reg, &stubMigrator{}, testDefaults(), nil)
	if err != nil {
		t.Fatalf("register migration commands: %v", err)
	}
	if set == nil || set.Collection == nil || set.Entity == nil || set.Retranslate == nil || set.All == nil {
		t.Fatalf("expected every handler built, got %#v", set)
	}
	if len(reg.Handlers) != 4 {
		t.Fatalf("expected four handlers registered, got %d", len(reg.Handlers))
	}
	if reg.Handlers[0] != set.Collection || reg.Handlers[3] != set.All {
		t.Fatalf("unexpected registration order %#v", reg.Handlers)
	}
}

func TestRegisterMigrationCommandsHandlerOptionsApplied(t *testing.T) {
	applied := map[string]bool{}
	_, err := RegisterMigrationCommands(nil, &stubMigrator{}, testDefaults(), nil,
		WithCollectionHandlerOptions(func(*commands.Handler[MigrateCollectionCommand]) { applied["collection"] = true }),
		WithEntityHandlerOptions(func(*commands.Handler[MigrateEntityCommand]) { applied["entity"] = true }),
		WithRetranslateHandlerOptions(func(*commands.Handler[RetranslateCommand]) { applied["retranslate"] = true }),
		WithAllHandlerOptions(func(*commands.Handler[MigrateAllCommand]) { applied["all"] = true }),
	)
	if err != nil {
		t.Fatalf("register migration commands: %v", err)
	}
	for _, name := range []string{"collection", "entity", "retranslate", "all"} {
		if !applied[name] {
			t.Fatalf("expected %s handler options applied", name)
		}
	}
}

func TestRegisterMigrationCommandsErrors(t *testing.T) {
	if _, err := RegisterMigrationCommands(nil, nil, testDefaults(), nil); err == nil {
		t.Fatal("expected error for nil migrator")
	}

	reg := commandtest.NewRecordingRegistry()
	reg.Err = errors.New("registry closed")
	if _, err := RegisterMigrationCommands(reg, &stubMigrator{}, testDefaults(), nil); !errors.Is(err, reg.Err) {
		t.Fatalf("expected registry error, got %v", err)
	}
}

func TestRegisterMigrationCronRunsMigrateAll(t *testing.T) {
	migrator := &stubMigrator{}
	set, err := RegisterMigrationCommands(nil, migrator, testDefaults(), nil)
	if err != nil {
		t.Fatalf("register migration commands: %v", err)
	}

	cron := commandtest.NewCronRecorder()
	cfg := command.HandlerConfig{Expression: "@daily"}
	if err := RegisterMigrationCron(cron.Registrar(), set.All, cfg, MigrateAllCommand{Collections: []string{"products"}}); err != nil {
		t.Fatalf("register cron: %v", err)
	}
	if len(cron.Registrations) != 1 || cron.Registrations[0].Config.Expression != "@daily" {
		t.Fatalf("unexpected cron registrations %#v", cron.Registrations)
	}
	if err := cron.Run(0); err != nil {
		t.Fatalf("run cron job: %v", err)
	}
	if len(migrator.requests) != 1 || migrator.requests[0].Collection != "products" {
		t.Fatalf("expected cron job to migrate products, got %+v", migrator.requests)
	}

	if err := RegisterMigrationCron(nil, set.All, cfg, MigrateAllCommand{}); err != nil {
		t.Fatalf("expected nil registrar to be ignored, got %v", err)
	}
}

package di

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"

	"github.com/goliatone/go-storefront/internal/runtimeconfig"
)

// configureStorage opens the configured SQL database unless one was injected
// or the memory driver is selected.
func (c *Container) configureStorage() error {
	if c.bunDB != nil || c.store != nil {
		return nil
	}
	driver := c.Config.Storage.Driver
	if driver == runtimeconfig.StorageMemory {
		return nil
	}

	db, err := OpenDB(driver, c.Config.Storage.DSN)
	if err != nil {
		return err
	}
	c.bunDB = db
	c.ownsDB = true
	c.logger.Info("storage.configured", "driver", driver)
	return nil
}

// OpenDB opens a bun handle for the sqlite or postgres driver.
func OpenDB(driver, dsn string) (*bun.DB, error) {
	var (
		sqlDriver string
		dialect   schema.Dialect
	)
	switch driver {
	case runtimeconfig.StorageSQLite:
		sqlDriver, dialect = "sqlite3", sqlitedialect.New()
	case runtimeconfig.StoragePostgres:
		sqlDriver, dialect = "postgres", pgdialect.New()
	default:
		return nil, fmt.Errorf("%w: %q", runtimeconfig.ErrStorageDriverUnknown, driver)
	}

	sqlDB, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == runtimeconfig.StorageSQLite {
		sqlDB.SetMaxOpenConns(1)
	}
	return bun.NewDB(sqlDB, dialect), nil
}

package database

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed migrations/000001_init.up.sql
var initMigrationUp string

//go:embed migrations/000001_init.down.sql
var initMigrationDown string

// MigrateUp creates the catalog schema. Statements are idempotent.
func MigrateUp(ctx context.Context, db Querier) error {
	if _, err := db.Exec(ctx, initMigrationUp); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// MigrateDown drops every table created by MigrateUp.
func MigrateDown(ctx context.Context, db Querier) error {
	if _, err := db.Exec(ctx, initMigrationDown); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

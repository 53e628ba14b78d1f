package explorer

// In this file: the sample parcels database used by "explorer init".

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Provision creates the sample parcels database at path, creating the file
// if needed and bringing the schema and sample rows up to date.
func Provision(ctx context.Context, path string, verbose bool) error {
	db, err := sql.Open(DialectSQLite.Driver(), path)
	if err != nil {
		return fmt.Errorf("provision %s: %w", path, err)
	}
	defer db.Close()
	if err := Migrate(ctx, db, verbose); err != nil {
		return fmt.Errorf("provision %s: %w", path, err)
	}
	return nil
}

// Migrate brings the sample database schema up to date.
func Migrate(ctx context.Context, db *sql.DB, verbose bool) error {
	// goose state is process-global and the knowledge base migrations use a
	// different dialect, so it is reconfigured on every call.
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	if !verbose {
		goose.SetLogger(goose.NopLogger())
	} else {
		goose.SetLogger(log.Default())
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

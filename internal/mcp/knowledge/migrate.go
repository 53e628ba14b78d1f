package knowledge

// In this file: database schema management.

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

// Migrate brings the knowledge base schema up to date.  The database user
// must be allowed to create the pgvector extension.
func Migrate(ctx context.Context, db *sql.DB, verbose bool) error {
	// goose state is process-global and the explorer migrations use a
	// different dialect, so it is reconfigured on every call.
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
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

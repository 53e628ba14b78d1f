package explorer

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mcpost/mcpost/cmd/mcpost/internal/cfg"
	"github.com/mcpost/mcpost/cmd/mcpost/internal/golang/base"
	"github.com/mcpost/mcpost/internal/mcp"
	explorersrv "github.com/mcpost/mcpost/internal/mcp/explorer"
)

var cmdServe = &base.Command{
	UsageLine: "mcpost explorer serve [flags]",
	Short:     "start the SQL explorer MCP server",
	Long: `
# Explorer Serve Command

Starts the read-only SQL explorer MCP server on the database selected with
the -driver and -dsn flags.  When -dsn is empty, the sqlite driver uses the
sample database created by 'mcpost explorer init', and the postgres driver
assembles the DSN from the POSTGRES_* environment variables.
`,
	FlagMask:   cfg.OmitAll &^ cfg.OmitConfigFlag &^ cfg.OmitTransportFlags &^ cfg.OmitDriverFlag &^ cfg.OmitDSNFlag,
	PrintFlags: true,
	Run:        runServe,
}

func runServe(ctx context.Context, cmd *base.Command, args []string) error {
	lg := cfg.Log

	t, err := mcp.ParseTransport(cfg.Transport)
	if err != nil {
		base.SetExitStatus(base.SInvalidParameters)
		return err
	}
	dialect, err := explorersrv.ParseDialect(cfg.Driver)
	if err != nil {
		base.SetExitStatus(base.SInvalidParameters)
		return err
	}

	db, err := sqlx.Open(dialect.Driver(), databaseDSN(dialect))
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return fmt.Errorf("explorer: open database: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		base.SetExitStatus(base.SInitializationError)
		return fmt.Errorf("explorer: database connection: %w", err)
	}
	lg.InfoContext(ctx, "database connected", "dialect", dialect)

	srv := explorersrv.New(db, dialect, explorersrv.WithLogger(lg))
	return srv.Serve(ctx, t, cfg.Listen)
}

// databaseDSN returns the DSN for the dialect.  An explicit -dsn value wins.
func databaseDSN(d explorersrv.Dialect) string {
	if d == explorersrv.DialectPostgres {
		return cfg.PostgresDSN()
	}
	if cfg.DSN == "" {
		return defSQLiteFile
	}
	return cfg.DSN
}

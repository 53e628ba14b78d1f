// Package explorer implements the read-only SQL explorer MCP server.  It
// serves three tools (list_tables, describe_table, run_query) over a SQLite
// or Postgres database.
package explorer

// In this file: MCP server construction and transport selection.

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	mcpsrv "github.com/mark3labs/mcp-go/server"
	_ "modernc.org/sqlite"

	"github.com/mcpost/mcpost/internal/mcp"
)

const (
	serverName    = "mcpost-explorer"
	serverVersion = "1.0.0"
)

// defMaxRows caps the run_query output unless overridden with WithMaxRows.
const defMaxRows = 100

// Dialect identifies the SQL dialect of the connected database.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect converts a user supplied dialect name to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pg":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("unknown dialect %q", s)
	}
}

// Driver returns the database/sql driver name for the dialect.
func (d Dialect) Driver() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

// Server wraps an MCP server and the database it explores.
type Server struct {
	mcp     *mcpsrv.MCPServer
	db      *sqlx.DB
	dialect Dialect
	maxRows int
	logger  *slog.Logger
}

// Option is a functional option for New.
type Option func(*Server)

// WithLogger sets the logger.  A nil logger falls back to slog.Default().
func WithLogger(lg *slog.Logger) Option {
	return func(s *Server) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// WithMaxRows caps the number of rows run_query returns.
func WithMaxRows(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxRows = n
		}
	}
}

// New creates a SQL explorer MCP server over db.  The caller owns the
// connection; the server never closes it.
func New(db *sqlx.DB, dialect Dialect, opt ...Option) *Server {
	s := &Server{
		db:      db,
		dialect: dialect,
		maxRows: defMaxRows,
		logger:  slog.Default(),
	}
	for _, o := range opt {
		o(s)
	}

	m := mcpsrv.NewMCPServer(
		serverName,
		serverVersion,
		mcpsrv.WithInstructions(instructions(dialect)),
		mcpsrv.WithToolCapabilities(true),
		mcpsrv.WithRecovery(),
	)
	for _, t := range s.tools() {
		m.AddTool(t.Tool, t.Handler)
	}
	s.mcp = m
	return s
}

// instructions returns the server instructions that describe the database to
// the connecting agent.
func instructions(d Dialect) string {
	return fmt.Sprintf(`You are connected to a read-only SQL explorer MCP server backed by a %s database.

Available tools allow you to:
- List all tables in the database
- Describe the columns of a table, with types and nullability
- Run a SELECT query and get the rows back as text

Only SELECT statements are accepted, everything else is rejected.  Large
results are truncated, so narrow queries with WHERE clauses where possible.
`, d)
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.logger, s.mcp)
}

// ServeHTTP runs the MCP server as a Streamable HTTP server on addr until ctx
// is cancelled.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.logger, s.mcp, addr)
}

// Serve runs the MCP server on the given transport.  addr is only used by
// the HTTP transport.
func (s *Server) Serve(ctx context.Context, t mcp.Transport, addr string) error {
	return mcp.Serve(ctx, s.logger, s.mcp, t, addr)
}

// tools returns all MCP tools that this server exposes.
func (s *Server) tools() []mcpsrv.ServerTool {
	return []mcpsrv.ServerTool{
		s.toolListTables(),
		s.toolDescribeTable(),
		s.toolRunQuery(),
	}
}

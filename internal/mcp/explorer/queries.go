package explorer

// In this file: dialect-specific introspection and query plumbing.

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// column describes one table column as reported by the database.
type column struct {
	Name     string
	Type     string
	Nullable bool
}

// tableNames returns the names of the user tables, sorted.
func (s *Server) tableNames(ctx context.Context) ([]string, error) {
	var q string
	switch s.dialect {
	case DialectPostgres:
		q = `SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' ORDER BY table_name`
	default:
		q = `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
	}
	var names []string
	if err := s.db.SelectContext(ctx, &names, q); err != nil {
		return nil, err
	}
	return names, nil
}

// tableColumns returns the columns of table in definition order.  The caller
// must have validated the table name against tableNames, the SQLite branch
// interpolates it into a PRAGMA statement.
func (s *Server) tableColumns(ctx context.Context, table string) ([]column, error) {
	switch s.dialect {
	case DialectPostgres:
		return s.pgColumns(ctx, table)
	default:
		return s.sqliteColumns(ctx, table)
	}
}

func (s *Server) pgColumns(ctx context.Context, table string) ([]column, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
		ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []column
	for rows.Next() {
		var name, typ, nullable string
		if err := rows.Scan(&name, &typ, &nullable); err != nil {
			return nil, err
		}
		cols = append(cols, column{Name: name, Type: typ, Nullable: nullable == "YES"})
	}
	return cols, rows.Err()
}

func (s *Server) sqliteColumns(ctx context.Context, table string) ([]column, error) {
	rows, err := s.db.QueryContext(ctx, "PRAGMA table_info("+quoteIdent(table)+")")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []column
	for rows.Next() {
		var (
			cid, notnull, pk int
			name, typ        string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, column{Name: name, Type: typ, Nullable: notnull == 0})
	}
	return cols, rows.Err()
}

// selectRows executes a query and returns the result rows with a cleanup
// function.  On Postgres the query runs inside a read-only transaction.
func (s *Server) selectRows(ctx context.Context, query string) (*sqlx.Rows, func(), error) {
	if s.dialect == DialectPostgres {
		tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
		if err != nil {
			return nil, nil, err
		}
		rows, err := tx.QueryxContext(ctx, query)
		if err != nil {
			tx.Rollback()
			return nil, nil, err
		}
		return rows, func() { rows.Close(); tx.Rollback() }, nil
	}
	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	return rows, func() { rows.Close() }, nil
}

// quoteIdent quotes an identifier for statements that cannot take bind
// parameters.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// renderValue converts a scanned cell value to its text representation.
func renderValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.DateTime)
	default:
		return fmt.Sprint(v)
	}
}

package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpost/mcpost/internal/testutil"
)

// ─── list_tables ──────────────────────────────────────────────────────────────

func TestHandleListTables(t *testing.T) {
	srv := newTestServer(t)
	res, err := srv.handleListTables(t.Context(), toolReq(nil))
	require.NoError(t, err)
	require.False(t, isErrorResult(res))
	assert.Equal(t, "Tables in database: couriers, packages", firstText(t, res))
}

func TestHandleListTables_empty(t *testing.T) {
	srv := New(testutil.TestDB(t), DialectSQLite)
	res, err := srv.handleListTables(t.Context(), toolReq(nil))
	require.NoError(t, err)
	assert.Equal(t, "Tables in database: ", firstText(t, res))
}

// ─── describe_table ───────────────────────────────────────────────────────────

func TestHandleDescribeTable(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name        string
		args        map[string]any
		wantIsError bool
		wantText    string
	}{
		{
			name: "couriers",
			args: map[string]any{"table_name": "couriers"},
			wantText: `Schema for table 'couriers':
- id (INTEGER)
- name (TEXT)
- nickname (TEXT) [NULLABLE]
`,
		},
		{
			name: "packages",
			args: map[string]any{"table_name": "packages"},
			wantText: `Schema for table 'packages':
- id (TEXT)
- courier_id (INTEGER)
- weight_kg (REAL)
- note (TEXT) [NULLABLE]
`,
		},
		{
			name:     "unknown table",
			args:     map[string]any{"table_name": "ghost"},
			wantText: "Table 'ghost' not found or has no columns.",
		},
		{
			name:     "hostile table name never reaches the database",
			args:     map[string]any{"table_name": `couriers"; DROP TABLE couriers; --`},
			wantText: "not found or has no columns.",
		},
		{
			name:        "missing argument",
			args:        nil,
			wantIsError: true,
			wantText:    "table_name is required",
		},
		{
			name:        "empty argument",
			args:        map[string]any{"table_name": ""},
			wantIsError: true,
			wantText:    "table_name is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := srv.handleDescribeTable(t.Context(), toolReq(tt.args))
			require.NoError(t, err)
			assert.Equal(t, tt.wantIsError, isErrorResult(res))
			assert.Contains(t, firstText(t, res), tt.wantText)
		})
	}

	// The hostile name from the table above must not have dropped anything.
	res, err := srv.handleListTables(t.Context(), toolReq(nil))
	require.NoError(t, err)
	assert.Equal(t, "Tables in database: couriers, packages", firstText(t, res))
}

// ─── run_query ────────────────────────────────────────────────────────────────

func TestHandleRunQuery(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name        string
		args        map[string]any
		wantIsError bool
		wantText    string
	}{
		{
			name: "select rows",
			args: map[string]any{"query": "SELECT id, name FROM couriers ORDER BY id"},
			wantText: `Query returned 2 rows:
id | name
---------
1 | Dace
2 | Imants
`,
		},
		{
			name: "null renders as NULL",
			args: map[string]any{"query": "SELECT id, note FROM packages ORDER BY id"},
			wantText: `Query returned 2 rows:
id | note
---------
PKG001 | NULL
PKG002 | leave at door
`,
		},
		{
			name: "lowercase select",
			args: map[string]any{"query": "select weight_kg from packages where id = 'PKG001'"},
			wantText: `Query returned 1 rows:
weight_kg
---------
2.5
`,
		},
		{
			name:     "no results",
			args:     map[string]any{"query": "SELECT * FROM couriers WHERE id = 99"},
			wantText: "Query returned no results.",
		},
		{
			name:     "delete rejected",
			args:     map[string]any{"query": "DELETE FROM couriers"},
			wantText: "Error: Only SELECT queries are allowed for safety.",
		},
		{
			name:     "update rejected",
			args:     map[string]any{"query": "  update couriers set name = 'x'"},
			wantText: "Error: Only SELECT queries are allowed for safety.",
		},
		{
			name:     "syntax error",
			args:     map[string]any{"query": "SELECT FROM WHERE"},
			wantText: "Query execution error:",
		},
		{
			name:        "missing argument",
			args:        nil,
			wantIsError: true,
			wantText:    "run_query: query is required",
		},
		{
			name:        "blank argument",
			args:        map[string]any{"query": "   "},
			wantIsError: true,
			wantText:    "run_query: query is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := srv.handleRunQuery(t.Context(), toolReq(tt.args))
			require.NoError(t, err)
			assert.Equal(t, tt.wantIsError, isErrorResult(res))
			assert.Contains(t, firstText(t, res), tt.wantText)
		})
	}

	// The rejected DELETE/UPDATE must not have touched the data.
	res, err := srv.handleRunQuery(t.Context(), toolReq(map[string]any{
		"query": "SELECT count(*) FROM couriers",
	}))
	require.NoError(t, err)
	assert.Contains(t, firstText(t, res), "Query returned 1 rows:")
	assert.Contains(t, firstText(t, res), "\n2\n")
}

func TestHandleRunQuery_truncated(t *testing.T) {
	srv := newTestServer(t, WithMaxRows(1))
	res, err := srv.handleRunQuery(t.Context(), toolReq(map[string]any{
		"query": "SELECT id FROM packages ORDER BY id",
	}))
	require.NoError(t, err)
	require.False(t, isErrorResult(res))
	assert.Equal(t, `Query returned 1 rows:
id
--
PKG001
(truncated at 1 rows)
`, firstText(t, res))
}

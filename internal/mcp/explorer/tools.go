package explorer

// In this file: MCP tool definitions and handler implementations.

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/mcpost/mcpost/internal/mcp"
)

// ─── list_tables ──────────────────────────────────────────────────────────────

func (s *Server) toolListTables() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_tables",
		mcplib.WithDescription("List all tables in the database."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListTables}
}

func (s *Server) handleListTables(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	names, err := s.tableNames(ctx)
	if err != nil {
		return mcp.ResultErr(fmt.Errorf("list_tables: %w", err)), nil
	}
	return mcp.ResultText("Tables in database: " + strings.Join(names, ", ")), nil
}

// ─── describe_table ───────────────────────────────────────────────────────────

func (s *Server) toolDescribeTable() mcpsrv.ServerTool {
	tool := mcplib.NewTool("describe_table",
		mcplib.WithDescription("Get the schema of a specific table: column names, types and nullability."),
		mcplib.WithString("table_name",
			mcplib.Description("Name of the table to describe."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleDescribeTable}
}

func (s *Server) handleDescribeTable(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	table, ok := mcp.StringArg(req, "table_name")
	if !ok || table == "" {
		return mcp.ResultErr(errors.New("describe_table: table_name is required")), nil
	}

	// The table name is checked against the real table list before any
	// introspection statement sees it.
	names, err := s.tableNames(ctx)
	if err != nil {
		return mcp.ResultErr(fmt.Errorf("describe_table: %w", err)), nil
	}
	if !slices.Contains(names, table) {
		return mcp.ResultText(fmt.Sprintf("Table '%s' not found or has no columns.", table)), nil
	}

	cols, err := s.tableColumns(ctx, table)
	if err != nil {
		return mcp.ResultErr(fmt.Errorf("describe_table: %w", err)), nil
	}
	if len(cols) == 0 {
		return mcp.ResultText(fmt.Sprintf("Table '%s' not found or has no columns.", table)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Schema for table '%s':\n", table)
	for _, c := range cols {
		fmt.Fprintf(&sb, "- %s (%s)", c.Name, c.Type)
		if c.Nullable {
			sb.WriteString(" [NULLABLE]")
		}
		sb.WriteByte('\n')
	}
	return mcp.ResultText(sb.String()), nil
}

// ─── run_query ────────────────────────────────────────────────────────────────

func (s *Server) toolRunQuery() mcpsrv.ServerTool {
	tool := mcplib.NewTool("run_query",
		mcplib.WithDescription("Execute a read-only SQL query. Only SELECT statements are accepted; the result is returned as a text table."),
		mcplib.WithString("query",
			mcplib.Description("The SELECT statement to execute."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleRunQuery}
}

func (s *Server) handleRunQuery(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	query, ok := mcp.StringArg(req, "query")
	if !ok || strings.TrimSpace(query) == "" {
		return mcp.ResultErr(errors.New("run_query: query is required")), nil
	}
	if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "SELECT") {
		return mcp.ResultText("Error: Only SELECT queries are allowed for safety."), nil
	}

	rows, cleanup, err := s.selectRows(ctx, query)
	if err != nil {
		return mcp.ResultText("Query execution error: " + err.Error()), nil
	}
	defer cleanup()

	headers, err := rows.Columns()
	if err != nil {
		return mcp.ResultText("Query execution error: " + err.Error()), nil
	}

	var table [][]string
	truncated := false
	for rows.Next() {
		if len(table) == s.maxRows {
			truncated = true
			break
		}
		vals, err := rows.SliceScan()
		if err != nil {
			return mcp.ResultText("Query execution error: " + err.Error()), nil
		}
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = renderValue(v)
		}
		table = append(table, row)
	}
	if err := rows.Err(); err != nil {
		return mcp.ResultText("Query execution error: " + err.Error()), nil
	}
	if len(table) == 0 {
		return mcp.ResultText("Query returned no results."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Query returned %d rows:\n", len(table))
	head := strings.Join(headers, " | ")
	sb.WriteString(head + "\n")
	sb.WriteString(strings.Repeat("-", len(head)) + "\n")
	for _, row := range table {
		sb.WriteString(strings.Join(row, " | ") + "\n")
	}
	if truncated {
		fmt.Fprintf(&sb, "(truncated at %d rows)\n", s.maxRows)
	}
	return mcp.ResultText(sb.String()), nil
}

package tracking

import (
	"io"
	"log/slog"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpost/mcpost/internal/fixtures"
	"github.com/mcpost/mcpost/postoffice"
)

// newTestServer creates a Server over a store loaded from content in a
// temporary directory.
func newTestServer(t *testing.T, content string) *Server {
	t.Helper()
	st, err := postoffice.Open(fixtures.WriteFile(t, "packages.csv", content))
	require.NoError(t, err)
	srv := New(st, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NotNil(t, srv)
	return srv
}

// toolReq builds a CallToolRequest with the given argument map.
func toolReq(args map[string]any) mcplib.CallToolRequest {
	req := mcplib.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// isErrorResult returns true when the result carries IsError=true.
func isErrorResult(r *mcplib.CallToolResult) bool {
	return r != nil && r.IsError
}

// firstText returns the text of the first TextContent in the result.
func firstText(t *testing.T, r *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, r.Content, "result has no content")
	txt, ok := r.Content[0].(mcplib.TextContent)
	require.True(t, ok, "first content item is not TextContent")
	return txt.Text
}

// ─── New / options ────────────────────────────────────────────────────────────

func TestNew(t *testing.T) {
	srv := newTestServer(t, fixtures.TestPackagesCSV)
	assert.NotNil(t, srv.mcp)
	assert.NotNil(t, srv.store)
	assert.NotNil(t, srv.logger)
}

func TestNew_nilLogger(t *testing.T) {
	// A nil logger must not panic and must fall back to slog.Default().
	st, err := postoffice.Open(fixtures.WriteFile(t, "packages.csv", fixtures.TestPackagesCSV))
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		srv := New(st, WithLogger(nil))
		assert.NotNil(t, srv.logger)
	})
}

func TestServer_tools(t *testing.T) {
	srv := newTestServer(t, fixtures.TestPackagesCSV)
	tools := srv.tools()
	require.Len(t, tools, 10)

	seen := make(map[string]bool)
	for _, tool := range tools {
		assert.False(t, seen[tool.Tool.Name], "duplicate tool name %q", tool.Tool.Name)
		assert.NotNil(t, tool.Handler, "tool %q has no handler", tool.Tool.Name)
		seen[tool.Tool.Name] = true
	}
	for _, name := range []string{
		"get_packages_for_courier", "get_package_details", "get_courier_stats",
		"list_couriers", "search_packages_by_label", "get_packages_by_status",
		"update_package_status", "add_package", "delete_package", "delete_packages",
	} {
		assert.True(t, seen[name], "missing tool %q", name)
	}
}

func TestInstructions(t *testing.T) {
	st, err := postoffice.Open(fixtures.WriteFile(t, "packages.csv", fixtures.TestPackagesCSV))
	require.NoError(t, err)
	got := instructions(st)
	assert.Contains(t, got, "packages.csv")
	assert.Contains(t, got, "3 package records")
	assert.Contains(t, got, "delivery status")
}

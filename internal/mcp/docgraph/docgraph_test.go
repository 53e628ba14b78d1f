package docgraph

import (
	"context"
	"io"
	"log/slog"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner scripts Run responses and records the queries it sees.
type fakeRunner struct {
	fn    func(cypher string, params map[string]any) ([]map[string]any, error)
	calls []runnerCall
}

type runnerCall struct {
	cypher string
	params map[string]any
}

func (f *fakeRunner) Run(_ context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	f.calls = append(f.calls, runnerCall{cypher: cypher, params: params})
	if f.fn == nil {
		return nil, nil
	}
	return f.fn(cypher, params)
}

// newTestServer creates a Server over the given fake runner.
func newTestServer(t *testing.T, run Runner) *Server {
	t.Helper()
	srv := New(run, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
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

func TestNew(t *testing.T) {
	srv := newTestServer(t, &fakeRunner{})
	assert.NotNil(t, srv.mcp)
	assert.NotNil(t, srv.graph)
}

func TestNew_nilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		srv := New(&fakeRunner{}, WithLogger(nil))
		assert.NotNil(t, srv.logger)
	})
}

func TestServer_tools(t *testing.T) {
	srv := newTestServer(t, &fakeRunner{})
	tools := srv.tools()
	require.Len(t, tools, 6)

	seen := make(map[string]bool)
	for _, tool := range tools {
		assert.False(t, seen[tool.Tool.Name], "duplicate tool name %q", tool.Tool.Name)
		assert.NotNil(t, tool.Handler, "tool %q has no handler", tool.Tool.Name)
		seen[tool.Tool.Name] = true
	}
	for _, name := range []string{
		"get_all_documents", "search_chunks", "get_document_chunks",
		"get_database_stats", "search_by_keywords", "get_embeddings_info",
	} {
		assert.True(t, seen[name], "missing tool %q", name)
	}
}

func TestInstructions(t *testing.T) {
	got := instructions()
	assert.Contains(t, got, "Neo4j")
	assert.Contains(t, got, "read-only")
}

// Package docgraph implements the document graph MCP server.
//
// The server exposes read-only tools over a Neo4j graph of Document and
// Chunk nodes connected by CONTAINS relationships: document listing,
// substring and keyword search over chunk text, per-document chunk
// listing and graph statistics.
package docgraph

// In this file: MCP server construction and transport selection.

import (
	"context"
	"log/slog"

	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/mcpost/mcpost/internal/mcp"
)

const (
	serverName    = "mcpost-docgraph"
	serverVersion = "1.0.0"
)

// Default row limits for the search tools.
const (
	defSearchLimit = 5
	defChunksLimit = 10
)

// Snippet lengths in runes for chunk text in tool output.
const (
	searchSnippetLen = 150
	chunkSnippetLen  = 100
)

// Server wraps an MCP server and the graph it queries.
type Server struct {
	mcp    *mcpsrv.MCPServer
	graph  Runner
	logger *slog.Logger
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

// New creates a document graph MCP server over the given Cypher runner.
func New(run Runner, opt ...Option) *Server {
	s := &Server{
		graph:  run,
		logger: slog.Default(),
	}
	for _, o := range opt {
		o(s)
	}

	m := mcpsrv.NewMCPServer(
		serverName,
		serverVersion,
		mcpsrv.WithInstructions(instructions()),
		mcpsrv.WithToolCapabilities(true),
		mcpsrv.WithRecovery(),
	)
	for _, t := range s.tools() {
		m.AddTool(t.Tool, t.Handler)
	}
	s.mcp = m
	return s
}

// instructions returns the server instructions for the connecting agent.
func instructions() string {
	return `You are connected to a document graph MCP server backed by Neo4j.

The graph holds Document nodes connected to their text Chunk nodes by
CONTAINS relationships; chunks may carry embedding vectors.

Available tools allow you to:
- List all documents in the graph
- Search chunk text for a substring or for any of several keywords
- List the chunks of a single document by title
- Get node and relationship counts and embedding coverage

All tools are read-only.
`
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
		s.toolGetAllDocuments(),
		s.toolSearchChunks(),
		s.toolGetDocumentChunks(),
		s.toolGetDatabaseStats(),
		s.toolSearchByKeywords(),
		s.toolGetEmbeddingsInfo(),
	}
}

package knowledge

// In this file: MCP server construction and transport selection.

import (
	"context"
	"log/slog"

	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/mcpost/mcpost/internal/embedding"
	"github.com/mcpost/mcpost/internal/mcp"
)

const (
	serverName    = "mcpost-knowledge"
	serverVersion = "1.0.0"
)

// Default row limits for the read tools.
const (
	defReadingsLimit = 10
	defSearchLimit   = 5
)

// Server wraps an MCP server, the depot store and the embedder it uses.
type Server struct {
	mcp    *mcpsrv.MCPServer
	store  Storer
	emb    embedding.Embedder
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

// New creates a depot knowledge base MCP server.  Notes and search queries
// are embedded with emb before they reach the store.
func New(st Storer, emb embedding.Embedder, opt ...Option) *Server {
	s := &Server{
		store:  st,
		emb:    emb,
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
	return `You are connected to a depot knowledge base MCP server backed by PostgreSQL with pgvector.

The knowledge base tracks sorting depots, their load readings and free-form
notes.  Notes are embedded into vectors, so search_notes finds notes by
meaning rather than by exact words.

Available tools allow you to:
- Register a depot and list all registered depots
- Record load readings and fetch the most recent ones for a depot
- Attach free-form notes (manuals, incident logs, descriptions) to a depot
- Search all notes semantically

Mutating tools write to the database immediately.
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
		s.toolAddDepot(),
		s.toolRecordReading(),
		s.toolAddNote(),
		s.toolGetReadings(),
		s.toolListDepots(),
		s.toolSearchNotes(),
	}
}

package tracking

// In this file: MCP server construction and transport selection.

import (
	"context"
	"fmt"
	"log/slog"

	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/mcpost/mcpost/internal/mcp"
	"github.com/mcpost/mcpost/postoffice"
)

const (
	serverName    = "mcpost-tracking"
	serverVersion = "1.0.0"
)

// Server wraps an MCP server and the package store it serves.
type Server struct {
	mcp    *mcpsrv.MCPServer
	store  *postoffice.Store
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

// New creates a new package tracking MCP server backed by the given store.
// The server is populated with all available tools but does not start
// listening until one of the Serve methods is called.
func New(st *postoffice.Store, opt ...Option) *Server {
	s := &Server{
		store:  st,
		logger: slog.Default(),
	}
	for _, o := range opt {
		o(s)
	}

	m := mcpsrv.NewMCPServer(
		serverName,
		serverVersion,
		mcpsrv.WithInstructions(instructions(st)),
		mcpsrv.WithToolCapabilities(true),
		mcpsrv.WithRecovery(),
	)
	for _, t := range s.tools() {
		m.AddTool(t.Tool, t.Handler)
	}
	s.mcp = m
	return s
}

// instructions returns the server instructions that describe the package
// store to the connecting agent.
func instructions(st *postoffice.Store) string {
	return fmt.Sprintf(`You are connected to a post office package tracking MCP server.

The package file %q holds %d package records assigned to couriers.

Available tools allow you to:
- List all packages assigned to a courier
- Get details of a single package
- Get delivery statistics for a courier
- List all couriers
- Search packages by label (FRAGILE, STANDARD, URGENT) or by delivery status
- Update the delivery status of a package
- Add new packages and delete existing ones

Mutating tools rewrite the package file on success.
`, st.Path(), st.Len())
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
		s.toolGetPackagesForCourier(),
		s.toolGetPackageDetails(),
		s.toolGetCourierStats(),
		s.toolListCouriers(),
		s.toolSearchPackagesByLabel(),
		s.toolGetPackagesByStatus(),
		s.toolUpdatePackageStatus(),
		s.toolAddPackage(),
		s.toolDeletePackage(),
		s.toolDeletePackages(),
	}
}

package mcp

// In this file: transport selection and the server lifecycle.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	mcpsrv "github.com/mark3labs/mcp-go/server"
)

// Transport selects how an MCP server communicates with its client.
type Transport string

const (
	// TransportStdio uses stdin/stdout for communication (default, suitable
	// for local agent integrations such as Claude Desktop).
	TransportStdio Transport = "stdio"
	// TransportHTTP uses Streamable HTTP transport (suitable for remote
	// agents or when multiple concurrent clients are needed).
	TransportHTTP Transport = "http"
)

// DefaultAddr is the address the Streamable HTTP transport listens on unless
// overridden.
const DefaultAddr = "127.0.0.1:8000"

// endpointPath is the path the Streamable HTTP transport serves the MCP
// endpoint on.
const endpointPath = "/mcp"

// ParseTransport converts a transport name to a Transport value.
func ParseTransport(s string) (Transport, error) {
	switch t := Transport(strings.ToLower(strings.TrimSpace(s))); t {
	case TransportStdio, TransportHTTP:
		return t, nil
	default:
		return "", fmt.Errorf("unknown transport %q (supported: %q, %q)", s, TransportStdio, TransportHTTP)
	}
}

// ServeStdio runs m over stdin/stdout until ctx is cancelled.  This is the
// standard transport used by local agent integrations.
func ServeStdio(ctx context.Context, lg *slog.Logger, m *mcpsrv.MCPServer) error {
	if lg == nil {
		lg = slog.Default()
	}
	srv := mcpsrv.NewStdioServer(m)
	lg.InfoContext(ctx, "mcp server listening on stdio")
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// ServeHTTP runs m as a stateless Streamable HTTP server on addr until ctx is
// cancelled.  The MCP endpoint is served on /mcp, next to a trivial
// /healthcheck endpoint.  addr should be a host:port string such as
// "127.0.0.1:8000".
func ServeHTTP(ctx context.Context, lg *slog.Logger, m *mcpsrv.MCPServer, addr string) error {
	if lg == nil {
		lg = slog.Default()
	}
	if addr == "" {
		addr = DefaultAddr
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Get("/healthcheck", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("OK\n"))
	})
	httpSrv := &http.Server{Addr: addr, Handler: r}
	streamSrv := mcpsrv.NewStreamableHTTPServer(m,
		mcpsrv.WithStreamableHTTPServer(httpSrv),
		mcpsrv.WithEndpointPath(endpointPath),
		mcpsrv.WithStateLess(true),
	)
	r.Handle(endpointPath, streamSrv)

	lg.InfoContext(ctx, "mcp server listening on http", "addr", addr, "endpoint", endpointPath)

	errCh := make(chan error, 1)
	go func() {
		if err := streamSrv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		lg.InfoContext(ctx, "mcp server shutting down")
		if err := streamSrv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

// Serve runs m on the given transport.  addr is only used by the HTTP
// transport.
func Serve(ctx context.Context, lg *slog.Logger, m *mcpsrv.MCPServer, t Transport, addr string) error {
	switch t {
	case TransportHTTP:
		return ServeHTTP(ctx, lg, m, addr)
	default:
		return ServeStdio(ctx, lg, m)
	}
}

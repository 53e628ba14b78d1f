// Package demo implements a minimal MCP server that exercises all three MCP
// primitives: a tool (greet), a prompt (greet_user) and a resource
// (example://test).  It serves as a smoke test target for client
// integrations and as the smallest possible example of a server in this
// repository.
package demo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/mcpost/mcpost/internal/mcp"
)

const (
	serverName    = "mcpost-demo"
	serverVersion = "1.0.0"

	testResourceURI = "example://test"
)

// Server is the demo MCP server.
type Server struct {
	mcp    *mcpsrv.MCPServer
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

// New creates the demo MCP server.
func New(opt ...Option) *Server {
	s := &Server{
		logger: slog.Default(),
	}
	for _, o := range opt {
		o(s)
	}

	m := mcpsrv.NewMCPServer(
		serverName,
		serverVersion,
		mcpsrv.WithInstructions("A demo server with a greeting tool, a greeting prompt and a test resource."),
		mcpsrv.WithToolCapabilities(true),
		mcpsrv.WithPromptCapabilities(true),
		mcpsrv.WithResourceCapabilities(false, true),
		mcpsrv.WithRecovery(),
	)
	m.AddTool(s.toolGreet())
	m.AddPrompt(s.promptGreetUser())
	m.AddResource(s.testResource())
	s.mcp = m
	return s
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

// Serve runs the MCP server on the given transport.
func (s *Server) Serve(ctx context.Context, t mcp.Transport, addr string) error {
	return mcp.Serve(ctx, s.logger, s.mcp, t, addr)
}

// ─── greet ────────────────────────────────────────────────────────────────────

func (s *Server) toolGreet() (mcplib.Tool, mcpsrv.ToolHandlerFunc) {
	tool := mcplib.NewTool("greet",
		mcplib.WithDescription("Greet someone by name."),
		mcplib.WithString("name",
			mcplib.Description("The name to greet. Defaults to \"World\"."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return tool, s.handleGreet
}

func (s *Server) handleGreet(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	name, ok := mcp.StringArg(req, "name")
	if !ok || name == "" {
		name = "World"
	}
	return mcp.ResultText(fmt.Sprintf("Hello, %s!", name)), nil
}

// ─── greet_user ───────────────────────────────────────────────────────────────

// greetStyles maps a prompt style to its instruction.  Unknown styles fall
// back to friendly.
var greetStyles = map[string]string{
	"friendly": "Please write a warm, friendly greeting",
	"formal":   "Please write a formal, professional greeting",
	"casual":   "Please write a casual, relaxed greeting",
}

func (s *Server) promptGreetUser() (mcplib.Prompt, mcpsrv.PromptHandlerFunc) {
	prompt := mcplib.NewPrompt("greet_user",
		mcplib.WithPromptDescription("Generate a greeting prompt for a person, in one of three styles."),
		mcplib.WithArgument("name",
			mcplib.ArgumentDescription("The name of the person to greet."),
			mcplib.RequiredArgument(),
		),
		mcplib.WithArgument("style",
			mcplib.ArgumentDescription("The greeting style: friendly, formal or casual. Defaults to friendly."),
		),
	)
	return prompt, s.handleGreetUser
}

func (s *Server) handleGreetUser(ctx context.Context, req mcplib.GetPromptRequest) (*mcplib.GetPromptResult, error) {
	name := req.Params.Arguments["name"]
	if name == "" {
		return nil, errors.New("greet_user: name is required")
	}
	style, ok := greetStyles[req.Params.Arguments["style"]]
	if !ok {
		style = greetStyles["friendly"]
	}
	return mcplib.NewGetPromptResult(
		"A greeting prompt",
		[]mcplib.PromptMessage{
			mcplib.NewPromptMessage(mcplib.RoleUser,
				mcplib.NewTextContent(fmt.Sprintf("%s for someone named %s.", style, name))),
		},
	), nil
}

// ─── example://test ───────────────────────────────────────────────────────────

func (s *Server) testResource() (mcplib.Resource, mcpsrv.ResourceHandlerFunc) {
	res := mcplib.NewResource(testResourceURI, "test",
		mcplib.WithResourceDescription("A static test resource."),
		mcplib.WithMIMEType("text/plain"),
	)
	return res, s.handleTestResource
}

func (s *Server) handleTestResource(ctx context.Context, req mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      testResourceURI,
			MIMEType: "text/plain",
			Text:     "This is a test resource",
		},
	}, nil
}

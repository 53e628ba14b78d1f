// Package docgraph contains the document graph MCP server command.
package docgraph

import (
	"context"
	// embed for the long help message.
	_ "embed"

	"github.com/mcpost/mcpost/cmd/mcpost/internal/cfg"
	"github.com/mcpost/mcpost/cmd/mcpost/internal/golang/base"
	"github.com/mcpost/mcpost/internal/mcp"
	docgraphsrv "github.com/mcpost/mcpost/internal/mcp/docgraph"
)

//go:embed assets/docgraph.md
var mdDocgraph string

// CmdDocgraph is the command to start the document graph MCP server.
var CmdDocgraph = &base.Command{
	UsageLine:  "mcpost docgraph [flags]",
	Short:      "run the document graph MCP server",
	Long:       mdDocgraph,
	FlagMask:   cfg.OmitAll &^ cfg.OmitConfigFlag &^ cfg.OmitTransportFlags &^ cfg.OmitNeo4jFlags,
	PrintFlags: true,
	Run:        runDocgraph,
}

func runDocgraph(ctx context.Context, cmd *base.Command, args []string) error {
	lg := cfg.Log

	t, err := mcp.ParseTransport(cfg.Transport)
	if err != nil {
		base.SetExitStatus(base.SInvalidParameters)
		return err
	}

	uri := cfg.Neo4jAddr()
	g, err := docgraphsrv.Connect(ctx, uri, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return err
	}
	defer g.Close(ctx)
	lg.InfoContext(ctx, "graph database connected", "uri", uri)

	srv := docgraphsrv.New(g, docgraphsrv.WithLogger(lg))
	return srv.Serve(ctx, t, cfg.Listen)
}

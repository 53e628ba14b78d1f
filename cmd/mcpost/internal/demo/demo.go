// Package demo contains the hello-world MCP server command.
package demo

import (
	"context"
	// embed for the long help message.
	_ "embed"

	"github.com/mcpost/mcpost/cmd/mcpost/internal/cfg"
	"github.com/mcpost/mcpost/cmd/mcpost/internal/golang/base"
	"github.com/mcpost/mcpost/internal/mcp"
	demosrv "github.com/mcpost/mcpost/internal/mcp/demo"
)

//go:embed assets/demo.md
var mdDemo string

// CmdDemo is the command to start the demo MCP server.
var CmdDemo = &base.Command{
	UsageLine:  "mcpost demo [flags]",
	Short:      "run the minimal demo MCP server",
	Long:       mdDemo,
	FlagMask:   cfg.OmitAll &^ cfg.OmitConfigFlag &^ cfg.OmitTransportFlags,
	PrintFlags: true,
	Run:        runDemo,
}

func runDemo(ctx context.Context, cmd *base.Command, args []string) error {
	t, err := mcp.ParseTransport(cfg.Transport)
	if err != nil {
		base.SetExitStatus(base.SInvalidParameters)
		return err
	}
	srv := demosrv.New(demosrv.WithLogger(cfg.Log))
	return srv.Serve(ctx, t, cfg.Listen)
}

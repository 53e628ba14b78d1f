// Package tracking contains the package tracking MCP server command.
package tracking

import (
	"context"
	// embed for the long help message.
	_ "embed"
	"fmt"

	"github.com/mcpost/mcpost/cmd/mcpost/internal/cfg"
	"github.com/mcpost/mcpost/cmd/mcpost/internal/golang/base"
	"github.com/mcpost/mcpost/internal/mcp"
	trackingsrv "github.com/mcpost/mcpost/internal/mcp/tracking"
	"github.com/mcpost/mcpost/postoffice"
)

//go:embed assets/tracking.md
var mdTracking string

// CmdTracking is the command to start the package tracking MCP server.
var CmdTracking = &base.Command{
	UsageLine:  "mcpost tracking [flags]",
	Short:      "run the package tracking MCP server",
	Long:       mdTracking,
	FlagMask:   cfg.OmitAll &^ cfg.OmitConfigFlag &^ cfg.OmitTransportFlags &^ cfg.OmitCSVFlag,
	PrintFlags: true,
	Run:        runTracking,
}

func runTracking(ctx context.Context, cmd *base.Command, args []string) error {
	lg := cfg.Log

	t, err := mcp.ParseTransport(cfg.Transport)
	if err != nil {
		base.SetExitStatus(base.SInvalidParameters)
		return err
	}

	st, err := postoffice.Open(cfg.CSVFile)
	if err != nil {
		base.SetExitStatus(base.SUserError)
		return fmt.Errorf("tracking: open package store: %w", err)
	}
	lg.InfoContext(ctx, "package store loaded", "file", cfg.CSVFile, "packages", st.Len())

	srv := trackingsrv.New(st, trackingsrv.WithLogger(lg))
	return srv.Serve(ctx, t, cfg.Listen)
}

// Package explorer contains the read-only SQL explorer MCP server commands.
package explorer

import (
	// embed for the long help message.
	_ "embed"

	"github.com/mcpost/mcpost/cmd/mcpost/internal/golang/base"
)

//go:embed assets/explorer.md
var mdExplorer string

// defSQLiteFile is the sqlite database file used when no -dsn is given.
const defSQLiteFile = "explorer.db"

// CmdExplorer is the explorer command group.
var CmdExplorer = &base.Command{
	UsageLine: "mcpost explorer",
	Short:     "read-only SQL explorer MCP server",
	Long:      mdExplorer,
	Commands: []*base.Command{
		cmdServe,
		cmdInit,
	},
}

// Package config contains the server parameters file commands.
package config

import (
	"github.com/mcpost/mcpost/cmd/mcpost/internal/golang/base"
)

// CmdConfig is the parameters file command group.
var CmdConfig = &base.Command{
	UsageLine: "mcpost config",
	Short:     "server parameters file",
	Long: `
# Config Command

Config command allows to perform different operations on the server
parameters file.
`,
	Commands: []*base.Command{
		CmdConfigNew,
		CmdConfigCheck,
	},
}

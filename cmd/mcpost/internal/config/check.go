package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/mcpost/mcpost/cmd/mcpost/internal/golang/base"
	"github.com/mcpost/mcpost/internal/appconfig"
)

var CmdConfigCheck = &base.Command{
	UsageLine: "mcpost config check",
	Short:     "validate the existing parameters file for errors",
	Long: `
# Config Check Command

Allows to check the parameters file for errors and invalid values.

Example:

    mcpost config check myconfig.toml

It will check for unknown keys, and also ensure that values are within the
allowed boundaries.
`,
}

func init() {
	CmdConfigCheck.Run = runConfigCheck
}

func runConfigCheck(ctx context.Context, cmd *base.Command, args []string) error {
	if len(args) == 0 || args[0] == "" {
		base.SetExitStatus(base.SInvalidParameters)
		return errors.New("config filename must be specified")
	}
	filename := args[0]
	if _, err := appconfig.Load(filename); err != nil {
		base.SetExitStatus(base.SUserError)
		return fmt.Errorf("config file %q not OK: %s", filename, err)
	}
	fmt.Printf("Config file %q: OK\n", filename)
	return nil
}

package explorer

import (
	"context"
	"fmt"
	"os"

	"github.com/mcpost/mcpost/cmd/mcpost/internal/cfg"
	"github.com/mcpost/mcpost/cmd/mcpost/internal/golang/base"
	explorersrv "github.com/mcpost/mcpost/internal/mcp/explorer"
)

var cmdInit = &base.Command{
	UsageLine: "mcpost explorer init [flags] [filename]",
	Short:     "create the sample sqlite database",
	Long: `
# Explorer Init Command

Creates a sqlite database populated with the sample logistics dataset:
couriers, packages and delivery attempts.  The default filename is
"explorer.db" unless one is given on the command line.

An existing file is overwritten after confirmation, or unconditionally with
the -y flag.
`,
	FlagMask:   cfg.OmitAll &^ cfg.OmitConfigFlag,
	PrintFlags: true,
}

var fInitOverride = cmdInit.Flag.Bool("y", false, "answer yes to the overwrite prompt")

func init() {
	cmdInit.Run = runInit
}

func runInit(ctx context.Context, cmd *base.Command, args []string) error {
	filename := defSQLiteFile
	if len(args) > 0 {
		filename = args[0]
	}
	if _, err := os.Stat(filename); err == nil {
		if !*fInitOverride && !base.YesNo(fmt.Sprintf("File %q exists, overwrite", filename)) {
			base.SetExitStatus(base.SUserError)
			return base.ErrOpCancelled
		}
		if err := os.Remove(filename); err != nil {
			base.SetExitStatus(base.SApplicationError)
			return fmt.Errorf("explorer: remove %q: %w", filename, err)
		}
	}

	if err := explorersrv.Provision(ctx, filename, cfg.Verbose); err != nil {
		base.SetExitStatus(base.SApplicationError)
		return fmt.Errorf("explorer: provision sample database: %w", err)
	}

	fmt.Printf("Sample database is ready: %q\n", filename)
	fmt.Printf("Serve it with:  mcpost explorer serve -driver sqlite -dsn %s\n", filename)
	return nil
}

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/trace"

	"github.com/mcpost/mcpost/cmd/mcpost/internal/cfg"
	"github.com/mcpost/mcpost/cmd/mcpost/internal/golang/base"
	"github.com/mcpost/mcpost/internal/appconfig"
)

var CmdConfigNew = &base.Command{
	UsageLine: "mcpost config new",
	Short:     "creates a new parameters file with the default values",
	Long: `
# Config New Command

Creates a new server parameters file containing default values. You will need
to specify the filename, for example:

    mcpost config new myconfig.toml

If the extension is omitted, ".toml" is automatically appended to the filename.
`,
	FlagMask:   cfg.OmitAll,
	PrintFlags: true,
}

var (
	fNewOverride = CmdConfigNew.Flag.Bool("y", false, "confirm the overwrite of the existing file")
)

func init() {
	CmdConfigNew.Run = runConfigNew
}

func runConfigNew(ctx context.Context, cmd *base.Command, args []string) error {
	_, task := trace.NewTask(ctx, "runConfigNew")
	defer task.End()

	if len(args) == 0 {
		base.SetExitStatus(base.SInvalidParameters)
		return errors.New("config file name must be specified")
	}

	filename := maybeFixExt(args[0])

	if !shouldOverwrite(filename, *fNewOverride) {
		base.SetExitStatus(base.SUserError)
		return fmt.Errorf("file or directory exists: %q, use -y flag to overwrite (will not overwrite directory)", filename)
	}

	if err := appconfig.Save(filename, &appconfig.Defaults); err != nil {
		base.SetExitStatus(base.SApplicationError)
		return fmt.Errorf("error writing the parameters file %q: %w", filename, err)
	}

	fmt.Printf("Your new parameters file is ready: %q\n", filename)
	return nil
}

// shouldOverwrite returns true if the file can be overwritten.  If override
// is true and the file exists and not a directory, it will return true.
func shouldOverwrite(filename string, override bool) bool {
	fi, err := os.Stat(filename)
	if fi != nil && fi.IsDir() {
		return false
	}
	return err != nil || override
}

// maybeFixExt checks if the extension is one of .toml or .tml, and if not
// appends it to the file.
func maybeFixExt(filename string) string {
	if ext := filepath.Ext(filename); !(ext == ".toml" || ext == ".tml") {
		return maybeAppendExt(filename, ".toml")
	}
	return filename
}

// maybeAppendExt adds a filename extension ext if the filename has missing, or
// a different extension.
func maybeAppendExt(filename string, ext string) string {
	if len(ext) == 0 {
		return filename
	}
	if ext[0] != '.' {
		ext = "." + ext
	}
	if filepath.Ext(filename) == ext {
		return filename
	}
	return filename + ext
}

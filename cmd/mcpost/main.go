// Command mcpost is a collection of MCP servers for exploring postal package
// data: a CSV-backed package tracking server, a read-only SQL explorer, a
// pgvector knowledge base and a Neo4j document graph explorer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/trace"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mcpost/mcpost/cmd/mcpost/internal/cfg"
	configcmd "github.com/mcpost/mcpost/cmd/mcpost/internal/config"
	democmd "github.com/mcpost/mcpost/cmd/mcpost/internal/demo"
	docgraphcmd "github.com/mcpost/mcpost/cmd/mcpost/internal/docgraph"
	explorercmd "github.com/mcpost/mcpost/cmd/mcpost/internal/explorer"
	"github.com/mcpost/mcpost/cmd/mcpost/internal/golang/base"
	"github.com/mcpost/mcpost/cmd/mcpost/internal/golang/help"
	kbcmd "github.com/mcpost/mcpost/cmd/mcpost/internal/kb"
	trackingcmd "github.com/mcpost/mcpost/cmd/mcpost/internal/tracking"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// secrets defines the names of the supported secret files that we load our
// secrets from.  Inexperienced windows users might have bad experience trying
// to create .env file with the notepad as it will battle for having the
// "txt" extension.  Let it have it.
var secrets = []string{".env", ".env.txt", "secrets.txt"}

func init() {
	base.Mcpost.Commands = []*base.Command{
		trackingcmd.CmdTracking,
		democmd.CmdDemo,
		explorercmd.CmdExplorer,
		kbcmd.CmdKB,
		docgraphcmd.CmdDocgraph,
		configcmd.CmdConfig,
		CmdVersion,
	}
}

func main() {
	loadSecrets(secrets)

	base.Usage = mainUsage
	flag.Usage = base.Usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		base.Usage()
	}

	base.CmdName = args[0] // for error messages
	if args[0] == "help" {
		help.Help(os.Stdout, args[1:])
		base.Exit()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

BigCmdLoop:
	for bigCmd := base.Mcpost; ; {
		for _, cmd := range bigCmd.Commands {
			if cmd.Name() != args[0] {
				continue
			}
			if len(cmd.Commands) > 0 {
				// command has subcommands, descend into it.
				bigCmd = cmd
				args = args[1:]
				if len(args) == 0 {
					help.PrintUsage(os.Stderr, bigCmd)
					base.SetExitStatus(base.SHelpRequested)
					base.Exit()
				}
				if args[0] == "help" {
					help.Help(os.Stdout, append(strings.Split(base.CmdName, " "), args[1:]...))
					base.Exit()
					return
				}
				base.CmdName += " " + args[0]
				continue BigCmdLoop
			}
			if !cmd.Runnable() {
				continue
			}
			if err := invoke(ctx, cmd, args); err != nil {
				if errors.Is(err, base.ErrOpCancelled) {
					slog.InfoContext(ctx, "operation cancelled")
				} else {
					slog.ErrorContext(ctx, "command failed", "command", base.CmdName, "error", err)
				}
				base.SetExitStatus(base.SGenericError)
			}
			base.Exit()
			return
		}
		helpArg := ""
		if i := strings.LastIndex(base.CmdName, " "); i >= 0 {
			helpArg = " " + base.CmdName[:i]
		}
		fmt.Fprintf(os.Stderr, "mcpost %s: unknown command\nRun 'mcpost help%s' for usage.\n", base.CmdName, helpArg)
		base.SetExitStatus(base.SInvalidParameters)
		base.Exit()
	}
}

func mainUsage() {
	help.PrintUsage(os.Stderr, base.Mcpost)
	base.SetExitStatus(base.SHelpRequested)
	base.Exit()
}

// invoke parses the command flags, initialises logging and tracing, which
// depend on them, and runs the command.
func invoke(ctx context.Context, cmd *base.Command, args []string) error {
	if cmd.CustomFlags {
		args = args[1:]
	} else {
		cfg.SetBaseFlags(&cmd.Flag, cmd.FlagMask)
		cmd.Flag.Usage = cmd.Usage
		if err := cmd.Flag.Parse(args[1:]); err != nil {
			base.SetExitStatus(base.SInvalidParameters)
			return err
		}
		args = cmd.Flag.Args()
	}

	lg, err := initLog(cfg.LogFile, cfg.JSONLog, cfg.Verbose)
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return err
	}
	cfg.Log = lg
	slog.SetDefault(lg)

	stopTrace := initTrace(cfg.TraceFile)
	base.AtExit(stopTrace)
	initDebug()

	if err := cfg.FromConfig(&cmd.Flag); err != nil {
		base.SetExitStatus(base.SInvalidParameters)
		return err
	}

	trace.Log(ctx, "command", fmt.Sprint("Running ", cmd.Name(), " command"))
	return cmd.Run(ctx, cmd, args)
}

// loadSecrets load secrets from the files in secrets slice.
func loadSecrets(files []string) {
	for _, f := range files {
		godotenv.Load(f)
	}
}

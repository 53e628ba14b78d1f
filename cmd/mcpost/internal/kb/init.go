package kb

import (
	"context"
	"fmt"

	"github.com/mcpost/mcpost/cmd/mcpost/internal/cfg"
	"github.com/mcpost/mcpost/cmd/mcpost/internal/golang/base"
	"github.com/mcpost/mcpost/internal/mcp/knowledge"
)

var cmdInit = &base.Command{
	UsageLine: "mcpost kb init [flags]",
	Short:     "initialise the knowledge base schema",
	Long: `
# KB Init Command

Creates the pgvector extension and the knowledge base tables, and brings an
existing schema up to date.  Safe to run repeatedly.
`,
	FlagMask:   cfg.OmitAll &^ cfg.OmitConfigFlag &^ cfg.OmitDSNFlag,
	PrintFlags: true,
	Run:        runInit,
}

func runInit(ctx context.Context, cmd *base.Command, args []string) error {
	db, err := openDB(ctx)
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return err
	}
	defer db.Close()

	if err := knowledge.Migrate(ctx, db.DB, cfg.Verbose); err != nil {
		base.SetExitStatus(base.SApplicationError)
		return fmt.Errorf("kb: migrate: %w", err)
	}
	fmt.Println("Knowledge base schema is up to date.")
	return nil
}

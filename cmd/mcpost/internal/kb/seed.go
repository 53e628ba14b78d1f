package kb

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/mcpost/mcpost/cmd/mcpost/internal/cfg"
	"github.com/mcpost/mcpost/cmd/mcpost/internal/golang/base"
	"github.com/mcpost/mcpost/internal/mcp/knowledge"
)

var cmdSeed = &base.Command{
	UsageLine: "mcpost kb seed [flags]",
	Short:     "populate the knowledge base with generated sample data",
	Long: `
# KB Seed Command

Populates the knowledge base with generated depots, sensor readings and
maintenance notes, embedding every note through the configured embeddings
endpoint.  The schema is migrated first, so a fresh database needs no
separate 'kb init' run.

Use -clear to wipe the existing data before seeding.
`,
	FlagMask:   cfg.OmitAll &^ cfg.OmitConfigFlag &^ cfg.OmitDSNFlag &^ cfg.OmitEmbeddingsFlags,
	PrintFlags: true,
}

var (
	fSeedDepots   = cmdSeed.Flag.Int("depots", knowledge.DefSeedDepots, "number of `depots` to generate")
	fSeedReadings = cmdSeed.Flag.Int("readings", knowledge.DefSeedReadings, "sensor `readings` per depot")
	fSeedClear    = cmdSeed.Flag.Bool("clear", false, "delete the existing data before seeding")
)

func init() {
	cmdSeed.Run = runSeed
}

func runSeed(ctx context.Context, cmd *base.Command, args []string) error {
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

	opts := knowledge.SeedOptions{
		Depots:   *fSeedDepots,
		Readings: *fSeedReadings,
		Clear:    *fSeedClear,
	}
	progress, closer := statusReporter()
	defer closer.Close()
	if err := knowledge.Seed(ctx, knowledge.NewStore(db), newEmbedder(), opts, progress); err != nil {
		base.SetExitStatus(base.SApplicationError)
		return fmt.Errorf("kb: seed: %w", err)
	}

	fmt.Printf("Seeded %d depots.\n", *fSeedDepots)
	return nil
}

func statusReporter() (knowledge.SeedProgressFunc, io.Closer) {
	pb := progressbar.NewOptions(0,
		progressbar.OptionSetDescription("Seeding depots"),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowCount(),
	)
	var once sync.Once
	return func(total, count int) {
		once.Do(func() {
			pb.ChangeMax(total)
		})
		pb.Add(1)
	}, pb
}

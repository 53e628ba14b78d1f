// Package kb contains the depot knowledge base MCP server commands.
package kb

import (
	"context"
	// embed for the long help message.
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mcpost/mcpost/cmd/mcpost/internal/cfg"
	"github.com/mcpost/mcpost/cmd/mcpost/internal/golang/base"
	"github.com/mcpost/mcpost/internal/embedding"
)

//go:embed assets/kb.md
var mdKB string

// CmdKB is the knowledge base command group.
var CmdKB = &base.Command{
	UsageLine: "mcpost kb",
	Short:     "depot knowledge base MCP server",
	Long:      mdKB,
	Commands: []*base.Command{
		cmdServe,
		cmdInit,
		cmdSeed,
	},
}

// openDB connects to postgres and verifies the connection.
func openDB(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("kb: open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("kb: database connection: %w", err)
	}
	return db, nil
}

// newEmbedder returns the embeddings client configured with the embeddings
// flags.
func newEmbedder() *embedding.Client {
	return embedding.NewClient(cfg.EmbeddingsURL, cfg.EmbeddingsAPIKey,
		embedding.WithModel(cfg.EmbeddingsModel),
		embedding.WithRateLimit(cfg.EmbeddingsRate, 1),
	)
}

package kb

import (
	"context"

	"github.com/mcpost/mcpost/cmd/mcpost/internal/cfg"
	"github.com/mcpost/mcpost/cmd/mcpost/internal/golang/base"
	"github.com/mcpost/mcpost/internal/mcp"
	"github.com/mcpost/mcpost/internal/mcp/knowledge"
)

var cmdServe = &base.Command{
	UsageLine: "mcpost kb serve [flags]",
	Short:     "start the knowledge base MCP server",
	Long: `
# KB Serve Command

Starts the depot knowledge base MCP server.  Requires a postgres database
with the pgvector extension (create the schema with 'mcpost kb init') and
an OpenAI-compatible embeddings endpoint.
`,
	FlagMask:   cfg.OmitAll &^ cfg.OmitConfigFlag &^ cfg.OmitTransportFlags &^ cfg.OmitDSNFlag &^ cfg.OmitEmbeddingsFlags,
	PrintFlags: true,
	Run:        runServe,
}

func runServe(ctx context.Context, cmd *base.Command, args []string) error {
	lg := cfg.Log

	t, err := mcp.ParseTransport(cfg.Transport)
	if err != nil {
		base.SetExitStatus(base.SInvalidParameters)
		return err
	}

	db, err := openDB(ctx)
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return err
	}
	defer db.Close()
	lg.InfoContext(ctx, "database connected")

	srv := knowledge.New(knowledge.NewStore(db), newEmbedder(), knowledge.WithLogger(lg))
	return srv.Serve(ctx, t, cfg.Listen)
}

package docgraph

// In this file: the Cypher runner and the graph queries the tools use.

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// database is the Neo4j database the server queries.
const database = "neo4j"

// Runner executes a Cypher query and returns one map per result record.
type Runner interface {
	Run(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error)
}

// Graph is a Runner over a live Neo4j instance.
type Graph struct {
	drv neo4j.DriverWithContext
}

var _ Runner = (*Graph)(nil)

// Connect opens a Neo4j driver for uri (bolt://host:port) and verifies
// connectivity before returning.
func Connect(ctx context.Context, uri, user, password string) (*Graph, error) {
	drv, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("neo4j driver for %s: %w", uri, err)
	}
	if err := drv.VerifyConnectivity(ctx); err != nil {
		drv.Close(ctx)
		return nil, fmt.Errorf("connect to neo4j at %s: %w", uri, err)
	}
	return &Graph{drv: drv}, nil
}

// Run executes cypher with params and collects all records eagerly.
func (g *Graph) Run(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	res, err := neo4j.ExecuteQuery(ctx, g.drv, cypher, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(database),
		neo4j.ExecuteQueryWithReadersRouting(),
	)
	if err != nil {
		return nil, fmt.Errorf("graph query: %w", err)
	}
	rows := make([]map[string]any, 0, len(res.Records))
	for _, rec := range res.Records {
		rows = append(rows, rec.AsMap())
	}
	return rows, nil
}

// Close releases the underlying driver.
func (g *Graph) Close(ctx context.Context) error {
	return g.drv.Close(ctx)
}

// graphStats is the node and relationship census of the document graph.
type graphStats struct {
	Documents     int64
	Chunks        int64
	Relationships int64
}

func documents(ctx context.Context, run Runner) ([]map[string]any, error) {
	const q = `
MATCH (d:Document)
RETURN d.id AS id, d.title AS title, d.type AS type, d.size_bytes AS size
ORDER BY d.title`
	return run.Run(ctx, q, nil)
}

func searchChunks(ctx context.Context, run Runner, text string, limit int) ([]map[string]any, error) {
	const q = `
MATCH (c:Chunk)
WHERE c.text CONTAINS $text
RETURN c.text AS text, c.position AS position
LIMIT $limit`
	return run.Run(ctx, q, map[string]any{"text": text, "limit": limit})
}

func documentChunks(ctx context.Context, run Runner, title string, limit int) ([]map[string]any, error) {
	const q = `
MATCH (d:Document)-[:CONTAINS]->(c:Chunk)
WHERE d.title = $title
RETURN c.text AS text, c.position AS position
ORDER BY c.position
LIMIT $limit`
	return run.Run(ctx, q, map[string]any{"title": title, "limit": limit})
}

// searchByKeywords matches chunks containing any of the keywords.  The
// keyword list travels as a query parameter, never spliced into the
// Cypher text.
func searchByKeywords(ctx context.Context, run Runner, keywords []string, limit int) ([]map[string]any, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	const q = `
MATCH (c:Chunk)
WHERE any(kw IN $keywords WHERE c.text CONTAINS kw)
RETURN c.text AS text, c.position AS position
LIMIT $limit`
	return run.Run(ctx, q, map[string]any{"keywords": keywords, "limit": limit})
}

func stats(ctx context.Context, run Runner) (graphStats, error) {
	var st graphStats
	for _, c := range []struct {
		q   string
		dst *int64
	}{
		{`MATCH (d:Document) RETURN COUNT(d) AS count`, &st.Documents},
		{`MATCH (c:Chunk) RETURN COUNT(c) AS count`, &st.Chunks},
		{`MATCH ()-[r:CONTAINS]->() RETURN COUNT(r) AS count`, &st.Relationships},
	} {
		rows, err := run.Run(ctx, c.q, nil)
		if err != nil {
			return graphStats{}, err
		}
		*c.dst = countOf(rows)
	}
	return st, nil
}

// embeddingCounts reports how many chunks carry an embedding property.
func embeddingCounts(ctx context.Context, run Runner) (embedded, total int64, err error) {
	rows, err := run.Run(ctx, `MATCH (c:Chunk) WHERE c.embedding IS NOT NULL RETURN COUNT(c) AS count`, nil)
	if err != nil {
		return 0, 0, err
	}
	embedded = countOf(rows)
	rows, err = run.Run(ctx, `MATCH (c:Chunk) RETURN COUNT(c) AS count`, nil)
	if err != nil {
		return 0, 0, err
	}
	return embedded, countOf(rows), nil
}

// countOf extracts the "count" column of a single-row COUNT query.
func countOf(rows []map[string]any) int64 {
	if len(rows) == 0 {
		return 0
	}
	switch n := rows[0]["count"].(type) {
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}

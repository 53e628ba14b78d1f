package docgraph

// In this file: MCP tool definitions and handler implementations.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/mcpost/mcpost/internal/mcp"
)

// ─── get_all_documents ────────────────────────────────────────────────────────

func (s *Server) toolGetAllDocuments() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_all_documents",
		mcplib.WithDescription("Get all documents in the graph database."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetAllDocuments}
}

func (s *Server) handleGetAllDocuments(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	docs, err := documents(ctx, s.graph)
	if err != nil {
		return mcp.ResultErr(fmt.Errorf("get_all_documents: %w", err)), nil
	}
	if len(docs) == 0 {
		return mcp.ResultText("No documents found in database"), nil
	}

	var sb strings.Builder
	sb.WriteString("Documents in Database:\n")
	for _, doc := range docs {
		fmt.Fprintf(&sb, "\n%s (%s)\n", str(doc["title"]), str(doc["type"]))
		fmt.Fprintf(&sb, "  ID: %s\n", str(doc["id"]))
		if nonZero(doc["size"]) {
			fmt.Fprintf(&sb, "  Size: %v bytes\n", doc["size"])
		}
	}
	return mcp.ResultText(sb.String()), nil
}

// ─── search_chunks ────────────────────────────────────────────────────────────

func (s *Server) toolSearchChunks() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_chunks",
		mcplib.WithDescription("Search for chunks containing specific text."),
		mcplib.WithString("query",
			mcplib.Description("Text to search for in chunk content."),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Maximum number of chunks to return (default 5)."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchChunks}
}

func (s *Server) handleSearchChunks(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	query, ok := mcp.StringArg(req, "query")
	if !ok || query == "" {
		return mcp.ResultErr(errors.New("search_chunks: query is required")), nil
	}
	limit := mcp.IntArg(req, "limit", defSearchLimit)

	chunks, err := searchChunks(ctx, s.graph, query, limit)
	if err != nil {
		return mcp.ResultErr(fmt.Errorf("search_chunks: %w", err)), nil
	}
	if len(chunks) == 0 {
		return mcp.ResultText(fmt.Sprintf("No chunks found containing '%s'", query)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d chunks containing '%s':\n", len(chunks), query)
	appendChunks(&sb, chunks, searchSnippetLen)
	return mcp.ResultText(sb.String()), nil
}

// ─── get_document_chunks ──────────────────────────────────────────────────────

func (s *Server) toolGetDocumentChunks() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_document_chunks",
		mcplib.WithDescription("Get all chunks from a specific document."),
		mcplib.WithString("document_title",
			mcplib.Description("Exact title of the document."),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Maximum number of chunks to return (default 10)."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetDocumentChunks}
}

func (s *Server) handleGetDocumentChunks(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	title, ok := mcp.StringArg(req, "document_title")
	if !ok || title == "" {
		return mcp.ResultErr(errors.New("get_document_chunks: document_title is required")), nil
	}
	limit := mcp.IntArg(req, "limit", defChunksLimit)

	chunks, err := documentChunks(ctx, s.graph, title, limit)
	if err != nil {
		return mcp.ResultErr(fmt.Errorf("get_document_chunks: %w", err)), nil
	}
	if len(chunks) == 0 {
		return mcp.ResultText(fmt.Sprintf("No chunks found for document '%s'", title)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Chunks from '%s' (showing %d of available):\n", title, len(chunks))
	appendChunks(&sb, chunks, chunkSnippetLen)
	return mcp.ResultText(sb.String()), nil
}

// ─── get_database_stats ───────────────────────────────────────────────────────

func (s *Server) toolGetDatabaseStats() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_database_stats",
		mcplib.WithDescription("Get statistics about the graph database."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetDatabaseStats}
}

func (s *Server) handleGetDatabaseStats(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	st, err := stats(ctx, s.graph)
	if err != nil {
		return mcp.ResultErr(fmt.Errorf("get_database_stats: %w", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("Graph Database Statistics:\n")
	fmt.Fprintf(&sb, "Total Documents: %d\n", st.Documents)
	fmt.Fprintf(&sb, "Total Chunks: %d\n", st.Chunks)
	fmt.Fprintf(&sb, "Document-Chunk Relationships: %d\n", st.Relationships)
	return mcp.ResultText(sb.String()), nil
}

// ─── search_by_keywords ───────────────────────────────────────────────────────

func (s *Server) toolSearchByKeywords() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_by_keywords",
		mcplib.WithDescription("Search chunks containing any of the provided keywords (comma-separated)."),
		mcplib.WithString("keywords",
			mcplib.Description("Comma-separated list of keywords."),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Maximum number of chunks to return (default 5)."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchByKeywords}
}

func (s *Server) handleSearchByKeywords(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	keywords, ok := mcp.StringArg(req, "keywords")
	if !ok || keywords == "" {
		return mcp.ResultErr(errors.New("search_by_keywords: keywords is required")), nil
	}
	limit := mcp.IntArg(req, "limit", defSearchLimit)

	var kws []string
	for _, kw := range strings.Split(keywords, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			kws = append(kws, kw)
		}
	}
	chunks, err := searchByKeywords(ctx, s.graph, kws, limit)
	if err != nil {
		return mcp.ResultErr(fmt.Errorf("search_by_keywords: %w", err)), nil
	}
	if len(chunks) == 0 {
		return mcp.ResultText(fmt.Sprintf("No chunks found containing any of: %s", keywords)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d chunks containing keywords:\n", len(chunks))
	appendChunks(&sb, chunks, searchSnippetLen)
	return mcp.ResultText(sb.String()), nil
}

// ─── get_embeddings_info ──────────────────────────────────────────────────────

func (s *Server) toolGetEmbeddingsInfo() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_embeddings_info",
		mcplib.WithDescription("Get information about embeddings in the database."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetEmbeddingsInfo}
}

func (s *Server) handleGetEmbeddingsInfo(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	embedded, total, err := embeddingCounts(ctx, s.graph)
	if err != nil {
		return mcp.ResultErr(fmt.Errorf("get_embeddings_info: %w", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("Embeddings Information:\n")
	fmt.Fprintf(&sb, "Chunks with embeddings: %d of %d\n", embedded, total)
	return mcp.ResultText(sb.String()), nil
}

// appendChunks renders numbered chunk snippets the way all chunk tools
// report them.
func appendChunks(sb *strings.Builder, chunks []map[string]any, maxLen int) {
	for i, c := range chunks {
		fmt.Fprintf(sb, "\n%d. Position %v:\n   %s\n", i+1, c["position"], truncate(str(c["text"]), maxLen))
	}
}

// str renders a row value: nil as empty, strings as themselves.
func str(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	}
	return fmt.Sprint(v)
}

// truncate shortens s to at most n runes, appending "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// nonZero reports whether a row value is present and not a zero number.
func nonZero(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case int64:
		return x != 0
	case float64:
		return x != 0
	}
	return true
}

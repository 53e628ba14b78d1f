package knowledge

// In this file: MCP tool definitions and handler implementations.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/mcpost/mcpost/internal/mcp"
)

// ─── add_depot ────────────────────────────────────────────────────────────────

func (s *Server) toolAddDepot() mcpsrv.ServerTool {
	tool := mcplib.NewTool("add_depot",
		mcplib.WithDescription("Register a new sorting depot in the knowledge base."),
		mcplib.WithString("depot_id",
			mcplib.Description("Unique depot identifier (e.g. d001)."),
			mcplib.Required(),
		),
		mcplib.WithString("name",
			mcplib.Description("Human readable depot name."),
			mcplib.Required(),
		),
		mcplib.WithString("kind",
			mcplib.Description("Depot kind (e.g. sorting, storage, transit, pickup)."),
			mcplib.Required(),
		),
		mcplib.WithString("location",
			mcplib.Description("Where the depot is located."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleAddDepot}
}

func (s *Server) handleAddDepot(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := mcp.StringArg(req, "depot_id")
	if !ok || id == "" {
		return mcp.ResultErr(errors.New("add_depot: depot_id is required")), nil
	}
	name, ok := mcp.StringArg(req, "name")
	if !ok || name == "" {
		return mcp.ResultErr(errors.New("add_depot: name is required")), nil
	}
	kind, ok := mcp.StringArg(req, "kind")
	if !ok || kind == "" {
		return mcp.ResultErr(errors.New("add_depot: kind is required")), nil
	}
	location, ok := mcp.StringArg(req, "location")
	if !ok || location == "" {
		return mcp.ResultErr(errors.New("add_depot: location is required")), nil
	}

	s.logger.InfoContext(ctx, "mcp: add_depot", "id", id, "name", name)

	err := s.store.AddDepot(ctx, Depot{ID: id, Name: name, Kind: kind, Location: location})
	if err != nil {
		if errors.Is(err, ErrDepotExists) {
			return mcp.ResultText(fmt.Sprintf("Error: Depot ID '%s' already exists.", id)), nil
		}
		return mcp.ResultErr(fmt.Errorf("add_depot: %w", err)), nil
	}
	return mcp.ResultText(fmt.Sprintf("Depot '%s' (%s) added successfully.", name, id)), nil
}

// ─── record_reading ───────────────────────────────────────────────────────────

func (s *Server) toolRecordReading() mcpsrv.ServerTool {
	tool := mcplib.NewTool("record_reading",
		mcplib.WithDescription("Record a new load reading for a depot."),
		mcplib.WithString("depot_id",
			mcplib.Description("Identifier of the depot the reading belongs to."),
			mcplib.Required(),
		),
		mcplib.WithNumber("value",
			mcplib.Description("The reading value."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleRecordReading}
}

func (s *Server) handleRecordReading(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := mcp.StringArg(req, "depot_id")
	if !ok || id == "" {
		return mcp.ResultErr(errors.New("record_reading: depot_id is required")), nil
	}
	value, ok := mcp.FloatArgOK(req, "value")
	if !ok {
		return mcp.ResultErr(errors.New("record_reading: value is required")), nil
	}

	s.logger.InfoContext(ctx, "mcp: record_reading", "id", id, "value", value)

	if err := s.store.RecordReading(ctx, id, value); err != nil {
		if errors.Is(err, ErrDepotNotFound) {
			return mcp.ResultText(fmt.Sprintf("Error: Depot ID '%s' not found.", id)), nil
		}
		return mcp.ResultErr(fmt.Errorf("record_reading: %w", err)), nil
	}
	return mcp.ResultText(fmt.Sprintf("Reading %v recorded for %s.", value, id)), nil
}

// ─── add_note ─────────────────────────────────────────────────────────────────

func (s *Server) toolAddNote() mcpsrv.ServerTool {
	tool := mcplib.NewTool("add_note",
		mcplib.WithDescription("Attach a free-form note (manual, incident log, description) to a depot. The note is embedded for semantic search."),
		mcplib.WithString("depot_id",
			mcplib.Description("Identifier of the depot the note belongs to."),
			mcplib.Required(),
		),
		mcplib.WithString("content",
			mcplib.Description("The note text."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleAddNote}
}

func (s *Server) handleAddNote(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := mcp.StringArg(req, "depot_id")
	if !ok || id == "" {
		return mcp.ResultErr(errors.New("add_note: depot_id is required")), nil
	}
	content, ok := mcp.StringArg(req, "content")
	if !ok || content == "" {
		return mcp.ResultErr(errors.New("add_note: content is required")), nil
	}

	s.logger.InfoContext(ctx, "mcp: add_note", "id", id, "size", len(content))

	vec, err := s.emb.Embed(ctx, content)
	if err != nil {
		return mcp.ResultErr(fmt.Errorf("add_note: %w", err)), nil
	}
	if err := s.store.AddNote(ctx, id, content, vec); err != nil {
		if errors.Is(err, ErrDepotNotFound) {
			return mcp.ResultText(fmt.Sprintf("Error: Depot ID '%s' not found.", id)), nil
		}
		return mcp.ResultErr(fmt.Errorf("add_note: %w", err)), nil
	}
	return mcp.ResultText(fmt.Sprintf("Note added for %s (Embedding size: %d)", id, len(vec))), nil
}

// ─── get_readings ─────────────────────────────────────────────────────────────

func (s *Server) toolGetReadings() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_readings",
		mcplib.WithDescription("Get the most recent load readings for a depot, newest first."),
		mcplib.WithString("depot_id",
			mcplib.Description("Identifier of the depot."),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Maximum number of readings to return (default 10)."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetReadings}
}

func (s *Server) handleGetReadings(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := mcp.StringArg(req, "depot_id")
	if !ok || id == "" {
		return mcp.ResultErr(errors.New("get_readings: depot_id is required")), nil
	}
	limit := mcp.IntArg(req, "limit", defReadingsLimit)

	rr, err := s.store.Readings(ctx, id, limit)
	if err != nil {
		return mcp.ResultErr(fmt.Errorf("get_readings: %w", err)), nil
	}
	if len(rr) == 0 {
		return mcp.ResultText(fmt.Sprintf("No readings found for %s.", id)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Recent readings for %s:\n", id)
	for _, r := range rr {
		fmt.Fprintf(&sb, "- %s: %v\n", r.RecordedAt.Format(time.DateTime), r.Value)
	}
	return mcp.ResultText(sb.String()), nil
}

// ─── list_depots ──────────────────────────────────────────────────────────────

func (s *Server) toolListDepots() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_depots",
		mcplib.WithDescription("List all registered depots."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListDepots}
}

func (s *Server) handleListDepots(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	dd, err := s.store.Depots(ctx)
	if err != nil {
		return mcp.ResultErr(fmt.Errorf("list_depots: %w", err)), nil
	}
	if len(dd) == 0 {
		return mcp.ResultText("No depots registered."), nil
	}

	var sb strings.Builder
	sb.WriteString("Registered Depots:\n")
	for _, d := range dd {
		fmt.Fprintf(&sb, "- ID: %s, Name: %s, Kind: %s, Location: %s\n", d.ID, d.Name, d.Kind, d.Location)
	}
	return mcp.ResultText(sb.String()), nil
}

// ─── search_notes ─────────────────────────────────────────────────────────────

func (s *Server) toolSearchNotes() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_notes",
		mcplib.WithDescription("Semantic search over all depot notes. Finds relevant notes based on meaning, not exact words."),
		mcplib.WithString("query",
			mcplib.Description("What to search for."),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Maximum number of matches to return (default 5)."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchNotes}
}

func (s *Server) handleSearchNotes(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	query, ok := mcp.StringArg(req, "query")
	if !ok || query == "" {
		return mcp.ResultErr(errors.New("search_notes: query is required")), nil
	}
	limit := mcp.IntArg(req, "limit", defSearchLimit)

	vec, err := s.emb.Embed(ctx, query)
	if err != nil {
		return mcp.ResultErr(fmt.Errorf("search_notes: %w", err)), nil
	}
	mm, err := s.store.SearchNotes(ctx, vec, limit)
	if err != nil {
		return mcp.ResultErr(fmt.Errorf("search_notes: %w", err)), nil
	}
	if len(mm) == 0 {
		return mcp.ResultText("No relevant knowledge found."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d relevant items:\n", len(mm))
	for _, m := range mm {
		similarity := 1 - m.Distance
		fmt.Fprintf(&sb, "\n--- [Depot: %s] (Similarity: %.2f) ---\n", m.DepotName, similarity)
		fmt.Fprintf(&sb, "%s\n", m.Content)
	}
	return mcp.ResultText(sb.String()), nil
}

package tracking

// In this file: MCP tool definitions and handler implementations.

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/mcpost/mcpost/internal/mcp"
	"github.com/mcpost/mcpost/postoffice"
)

// ─── get_packages_for_courier ─────────────────────────────────────────────────

func (s *Server) toolGetPackagesForCourier() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_packages_for_courier",
		mcplib.WithDescription("Get all packages assigned to a specific courier. Returns a formatted report with label, weight, size, sender and receiver of every package."),
		mcplib.WithNumber("courier_id",
			mcplib.Description("Numeric identifier of the courier (e.g. 1)."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetPackagesForCourier}
}

func (s *Server) handleGetPackagesForCourier(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	courier, ok := mcp.IntArgOK(req, "courier_id")
	if !ok {
		return mcp.ResultErr(errors.New("get_packages_for_courier: courier_id is required")), nil
	}

	pkgs, err := s.store.PackagesFor(courier)
	if err != nil {
		return mcp.ResultErr(fmt.Errorf("get_packages_for_courier: %w", err)), nil
	}
	if len(pkgs) == 0 {
		return mcp.ResultText(fmt.Sprintf("No packages found for courier %d", courier)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Packages for Courier %d:\n", courier)
	for _, p := range pkgs {
		fmt.Fprintf(&sb, "\nPackage %s:\n", p.ID)
		fmt.Fprintf(&sb, "  Label: %s\n", p.Label)
		fmt.Fprintf(&sb, "  Weight: %s kg\n", p.Weight)
		fmt.Fprintf(&sb, "  Size: %s\n", p.Size)
		fmt.Fprintf(&sb, "  From: %s (%s)\n", p.SenderName, p.SenderAddress)
		fmt.Fprintf(&sb, "  To: %s (%s)\n", p.ReceiverName, p.ReceiverAddress)
	}
	return mcp.ResultText(sb.String()), nil
}

// ─── get_package_details ──────────────────────────────────────────────────────

func (s *Server) toolGetPackageDetails() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_package_details",
		mcplib.WithDescription("Get detailed information for a specific package: courier assignment, label, weight, size, sender and receiver."),
		mcplib.WithString("package_id",
			mcplib.Description("The package identifier (e.g. PKG001)."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetPackageDetails}
}

func (s *Server) handleGetPackageDetails(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := mcp.StringArg(req, "package_id")
	if !ok || id == "" {
		return mcp.ResultErr(errors.New("get_package_details: package_id is required")), nil
	}

	p, err := s.store.Package(id)
	if err != nil {
		if errors.Is(err, postoffice.ErrNotFound) {
			return mcp.ResultText(fmt.Sprintf("Package %s not found", id)), nil
		}
		return mcp.ResultErr(fmt.Errorf("get_package_details: %w", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Package Details: %s\n", p.ID)
	fmt.Fprintf(&sb, "Assigned to: Courier %s\n", p.Courier)
	fmt.Fprintf(&sb, "Label: %s\n", p.Label)
	fmt.Fprintf(&sb, "Weight: %s kg\n", p.Weight)
	fmt.Fprintf(&sb, "Size: %s\n", p.Size)
	sb.WriteString("\nSender:\n")
	fmt.Fprintf(&sb, "  Name: %s\n", p.SenderName)
	fmt.Fprintf(&sb, "  Address: %s\n", p.SenderAddress)
	sb.WriteString("\nReceiver:\n")
	fmt.Fprintf(&sb, "  Name: %s\n", p.ReceiverName)
	fmt.Fprintf(&sb, "  Address: %s\n", p.ReceiverAddress)
	return mcp.ResultText(sb.String()), nil
}

// ─── get_courier_stats ────────────────────────────────────────────────────────

func (s *Server) toolGetCourierStats() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_courier_stats",
		mcplib.WithDescription("Get delivery statistics for a specific courier: package count, total weight in kg, and the number of fragile and urgent packages."),
		mcplib.WithNumber("courier_id",
			mcplib.Description("Numeric identifier of the courier (e.g. 1)."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetCourierStats}
}

func (s *Server) handleGetCourierStats(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	courier, ok := mcp.IntArgOK(req, "courier_id")
	if !ok {
		return mcp.ResultErr(errors.New("get_courier_stats: courier_id is required")), nil
	}

	stats, err := s.store.CourierStats(courier)
	if err != nil {
		return mcp.ResultErr(fmt.Errorf("get_courier_stats: %w", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Delivery Statistics - Courier %d:\n", stats.Courier)
	fmt.Fprintf(&sb, "Total Packages: %d\n", stats.TotalPackages)
	fmt.Fprintf(&sb, "Total Weight: %s kg\n", humanize.CommafWithDigits(stats.TotalWeightKG, 2))
	fmt.Fprintf(&sb, "Fragile Packages: %d\n", stats.Fragile)
	fmt.Fprintf(&sb, "Urgent Packages: %d\n", stats.Urgent)
	return mcp.ResultText(sb.String()), nil
}

// ─── list_couriers ────────────────────────────────────────────────────────────

func (s *Server) toolListCouriers() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_couriers",
		mcplib.WithDescription("Get the list of all couriers that have packages assigned."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListCouriers}
}

func (s *Server) handleListCouriers(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	couriers, err := s.store.Couriers()
	if err != nil {
		return mcp.ResultErr(fmt.Errorf("list_couriers: %w", err)), nil
	}
	ss := make([]string, len(couriers))
	for i, c := range couriers {
		ss[i] = strconv.Itoa(c)
	}
	return mcp.ResultText("Available Couriers: " + strings.Join(ss, ", ")), nil
}

// ─── search_packages_by_label ─────────────────────────────────────────────────

func (s *Server) toolSearchPackagesByLabel() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_packages_by_label",
		mcplib.WithDescription("Search packages by label type (FRAGILE, STANDARD, URGENT). The label is matched case insensitively."),
		mcplib.WithString("label",
			mcplib.Description("The label to search for (e.g. FRAGILE)."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchPackagesByLabel}
}

func (s *Server) handleSearchPackagesByLabel(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	label, ok := mcp.StringArg(req, "label")
	if !ok || label == "" {
		return mcp.ResultErr(errors.New("search_packages_by_label: label is required")), nil
	}

	matching := s.store.PackagesByLabel(label)
	if len(matching) == 0 {
		return mcp.ResultText(fmt.Sprintf("No packages found with label: %s", label)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Packages with label '%s':\n", label)
	for _, p := range matching {
		fmt.Fprintf(&sb, "\n%s - Courier %s\n", p.ID, p.Courier)
		fmt.Fprintf(&sb, "  Status: %s\n", p.Status)
		fmt.Fprintf(&sb, "  Weight: %s kg\n", p.Weight)
		fmt.Fprintf(&sb, "  To: %s\n", p.ReceiverName)
	}
	return mcp.ResultText(sb.String()), nil
}

// ─── get_packages_by_status ───────────────────────────────────────────────────

func (s *Server) toolGetPackagesByStatus() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_packages_by_status",
		mcplib.WithDescription("Get all packages with a specific delivery status (e.g. pending, in_transit, delivered). The status is matched case insensitively."),
		mcplib.WithString("status",
			mcplib.Description("The delivery status to filter by (e.g. pending)."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetPackagesByStatus}
}

func (s *Server) handleGetPackagesByStatus(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	status, ok := mcp.StringArg(req, "status")
	if !ok || status == "" {
		return mcp.ResultErr(errors.New("get_packages_by_status: status is required")), nil
	}

	matching := s.store.PackagesByStatus(status)
	if len(matching) == 0 {
		return mcp.ResultText(fmt.Sprintf("No packages found with status: %s", status)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Packages with status '%s':\n", status)
	for _, p := range matching {
		fmt.Fprintf(&sb, "\n%s - Courier %s\n", p.ID, p.Courier)
		fmt.Fprintf(&sb, "  Label: %s\n", p.Label)
		fmt.Fprintf(&sb, "  Weight: %s kg\n", p.Weight)
		fmt.Fprintf(&sb, "  To: %s\n", p.ReceiverName)
	}
	return mcp.ResultText(sb.String()), nil
}

// ─── update_package_status ────────────────────────────────────────────────────

func (s *Server) toolUpdatePackageStatus() mcpsrv.ServerTool {
	tool := mcplib.NewTool("update_package_status",
		mcplib.WithDescription("Update the delivery status of a specific package and save the package file."),
		mcplib.WithString("package_id",
			mcplib.Description("The package identifier (e.g. PKG001)."),
			mcplib.Required(),
		),
		mcplib.WithString("new_status",
			mcplib.Description("The new delivery status (e.g. pending, in_transit, delivered)."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleUpdatePackageStatus}
}

func (s *Server) handleUpdatePackageStatus(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := mcp.StringArg(req, "package_id")
	if !ok || id == "" {
		return mcp.ResultErr(errors.New("update_package_status: package_id is required")), nil
	}
	status, ok := mcp.StringArg(req, "new_status")
	if !ok || status == "" {
		return mcp.ResultErr(errors.New("update_package_status: new_status is required")), nil
	}

	s.logger.InfoContext(ctx, "mcp: update_package_status", "id", id, "status", status)

	old, err := s.store.UpdateStatus(id, status)
	if err != nil {
		if errors.Is(err, postoffice.ErrNotFound) {
			return mcp.ResultText(fmt.Sprintf("Package %s not found", id)), nil
		}
		return mcp.ResultErr(fmt.Errorf("update_package_status: %w", err)), nil
	}
	return mcp.ResultText(fmt.Sprintf("Package %s status updated from %s to %s", id, old, status)), nil
}

// ─── add_package ──────────────────────────────────────────────────────────────

func (s *Server) toolAddPackage() mcpsrv.ServerTool {
	tool := mcplib.NewTool("add_package",
		mcplib.WithDescription(`Add a new package to the package file.

The package_data object maps column names to values.  The package_id key is
mandatory and must not be in use yet.  Known columns are package_id,
delivery_guy, weight_kg, size_cm, sender_name, sender_address, receiver_name,
receiver_address, label and status; unknown keys are stored as additional
columns.`),
		mcplib.WithObject("package_data",
			mcplib.Description("Column to value mapping of the new package."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleAddPackage}
}

func (s *Server) handleAddPackage(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	data, ok := mcp.ObjectArg(req, "package_data")
	if !ok {
		return mcp.ResultErr(errors.New("add_package: package_data is required")), nil
	}

	values := make(map[string]string, len(data))
	for k, v := range data {
		switch t := v.(type) {
		case string:
			values[k] = t
		case nil:
			values[k] = ""
		default:
			values[k] = fmt.Sprint(t)
		}
	}
	rec := postoffice.NewRecord(values)

	s.logger.InfoContext(ctx, "mcp: add_package", "id", rec.ID)

	if err := s.store.Add(rec); err != nil {
		return mcp.ResultErr(fmt.Errorf("add_package: %w", err)), nil
	}
	return mcp.ResultText(fmt.Sprintf("Package %s added successfully", rec.ID)), nil
}

// ─── delete_package ───────────────────────────────────────────────────────────

func (s *Server) toolDeletePackage() mcpsrv.ServerTool {
	tool := mcplib.NewTool("delete_package",
		mcplib.WithDescription("Delete a package from the package file."),
		mcplib.WithString("package_id",
			mcplib.Description("The package identifier (e.g. PKG001)."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleDeletePackage}
}

func (s *Server) handleDeletePackage(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := mcp.StringArg(req, "package_id")
	if !ok || id == "" {
		return mcp.ResultErr(errors.New("delete_package: package_id is required")), nil
	}

	s.logger.InfoContext(ctx, "mcp: delete_package", "id", id)

	if err := s.store.Delete(id); err != nil {
		if errors.Is(err, postoffice.ErrNotFound) {
			return mcp.ResultText(fmt.Sprintf("Package %s not found", id)), nil
		}
		return mcp.ResultErr(fmt.Errorf("delete_package: %w", err)), nil
	}
	return mcp.ResultText(fmt.Sprintf("Package %s deleted successfully", id)), nil
}

// ─── delete_packages ──────────────────────────────────────────────────────────

func (s *Server) toolDeletePackages() mcpsrv.ServerTool {
	tool := mcplib.NewTool("delete_packages",
		mcplib.WithDescription("Delete multiple packages from the package file in one call. Identifiers that match no package are skipped."),
		mcplib.WithArray("package_ids",
			mcplib.Description("The identifiers of the packages to delete."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleDeletePackages}
}

func (s *Server) handleDeletePackages(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	ids, ok := mcp.StringsArg(req, "package_ids")
	if !ok {
		return mcp.ResultErr(errors.New("delete_packages: package_ids must be an array of strings")), nil
	}

	s.logger.InfoContext(ctx, "mcp: delete_packages", "ids", ids)

	n, err := s.store.DeleteMany(ids)
	if err != nil {
		return mcp.ResultErr(fmt.Errorf("delete_packages: %w", err)), nil
	}
	return mcp.ResultText(fmt.Sprintf("Deleted %d packages successfully", n)), nil
}

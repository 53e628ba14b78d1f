// Package tracking implements the post office package tracking MCP (Model
// Context Protocol) server.  It exposes the contents of a CSV package file
// through MCP tools that AI agents can call to look up packages, compute
// delivery statistics per courier, and manage the package inventory.
//
// Unlike the read-only servers in the sibling packages, the tracking server
// has mutating tools: updating a package status, adding a package and
// deleting packages rewrite the underlying package file.
//
// Transport: the server supports two transports selectable at runtime:
//   - stdio  – standard MCP stdio transport (default); suitable for local
//     agent integration (e.g. Claude Desktop, VS Code Copilot).
//   - http   – Streamable HTTP transport; suitable for remote agents or when
//     multiple concurrent clients are needed.
package tracking

// Package mcp provides the shared plumbing for the MCP (Model Context
// Protocol) servers of this repository: transport selection, the serve loop
// for each transport, and helpers for building tool results and reading tool
// call arguments.
//
// The servers themselves live in subpackages (tracking, demo, explorer,
// knowledge, docgraph), one per data source.  Each of them constructs a
// *server.MCPServer and hands it to ServeStdio or ServeHTTP.
package mcp

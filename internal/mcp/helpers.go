package mcp

// In this file: helpers shared by the tool implementations of the server
// subpackages.

import (
	mcplib "github.com/mark3labs/mcp-go/mcp"
)

// ResultText wraps text in a successful CallToolResult.
func ResultText(text string) *mcplib.CallToolResult {
	return mcplib.NewToolResultText(text)
}

// ResultErr wraps an error in a CallToolResult with IsError=true.
func ResultErr(err error) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(err.Error())},
		IsError: true,
	}
}

// ResultJSON serialises v to JSON and returns a CallToolResult.
func ResultJSON(v any) (*mcplib.CallToolResult, error) {
	return mcplib.NewToolResultJSON(v)
}

// StringArg extracts a named string argument from a tool call request.
// Returns ("", false) if the argument is absent or not a string.
func StringArg(req mcplib.CallToolRequest, name string) (string, bool) {
	args := req.GetArguments()
	if args == nil {
		return "", false
	}
	v, ok := args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// IntArg extracts a named int argument from a tool call request.  The MCP
// protocol serialises numbers as float64, so we convert accordingly.
func IntArg(req mcplib.CallToolRequest, name string, defaultVal int) int {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[name]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return defaultVal
}

// IntArgOK extracts a named int argument from a tool call request, reporting
// whether it was present and numeric.
func IntArgOK(req mcplib.CallToolRequest, name string) (int, bool) {
	args := req.GetArguments()
	if args == nil {
		return 0, false
	}
	v, ok := args[name]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}

// FloatArg extracts a named float64 argument from a tool call request.
func FloatArg(req mcplib.CallToolRequest, name string, defaultVal float64) float64 {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[name]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return defaultVal
}

// FloatArgOK extracts a named float64 argument from a tool call request,
// reporting whether it was present and numeric.
func FloatArgOK(req mcplib.CallToolRequest, name string) (float64, bool) {
	args := req.GetArguments()
	if args == nil {
		return 0, false
	}
	v, ok := args[name]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// BoolArg extracts a named bool argument from a tool call request.
func BoolArg(req mcplib.CallToolRequest, name string, defaultVal bool) bool {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[name]
	if !ok {
		return defaultVal
	}
	b, ok := v.(bool)
	if !ok {
		return defaultVal
	}
	return b
}

// ObjectArg extracts a named object argument from a tool call request.
// Returns (nil, false) if the argument is absent or not an object.
func ObjectArg(req mcplib.CallToolRequest, name string) (map[string]any, bool) {
	args := req.GetArguments()
	if args == nil {
		return nil, false
	}
	v, ok := args[name]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// StringsArg extracts a named string array argument from a tool call request.
// Returns (nil, false) if the argument is absent, not an array, or contains a
// non-string element.
func StringsArg(req mcplib.CallToolRequest, name string) ([]string, bool) {
	args := req.GetArguments()
	if args == nil {
		return nil, false
	}
	v, ok := args[name]
	if !ok {
		return nil, false
	}
	vv, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(vv))
	for _, el := range vv {
		s, ok := el.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

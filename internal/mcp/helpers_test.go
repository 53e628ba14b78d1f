package mcp

import (
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// toolReq creates a CallToolRequest with the given arguments.
func toolReq(args map[string]any) mcplib.CallToolRequest {
	var req mcplib.CallToolRequest
	req.Params.Arguments = args
	return req
}

// firstText returns the text of the first content element of the result.
func firstText(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok, "expected TextContent, got %T", res.Content[0])
	return tc.Text
}

func TestStringArg(t *testing.T) {
	tests := []struct {
		name   string
		args   map[string]any
		want   string
		wantOK bool
	}{
		{"present", map[string]any{"id": "PKG001"}, "PKG001", true},
		{"absent", map[string]any{"other": "x"}, "", false},
		{"wrong type", map[string]any{"id": 42.0}, "", false},
		{"nil args", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := StringArg(toolReq(tt.args), "id")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntArg(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want int
	}{
		{"float64", map[string]any{"n": 7.0}, 7},
		{"int", map[string]any{"n": 7}, 7},
		{"absent", map[string]any{}, 42},
		{"wrong type", map[string]any{"n": "7"}, 42},
		{"nil args", nil, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntArg(toolReq(tt.args), "n", 42))
		})
	}
}

func TestIntArgOK(t *testing.T) {
	tests := []struct {
		name   string
		args   map[string]any
		want   int
		wantOK bool
	}{
		{"float64", map[string]any{"n": 3.0}, 3, true},
		{"int", map[string]any{"n": 3}, 3, true},
		{"absent", map[string]any{}, 0, false},
		{"wrong type", map[string]any{"n": "3"}, 0, false},
		{"nil args", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := IntArgOK(toolReq(tt.args), "n")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFloatArg(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want float64
	}{
		{"float64", map[string]any{"w": 2.5}, 2.5},
		{"int", map[string]any{"w": 2}, 2.0},
		{"absent", map[string]any{}, 1.5},
		{"wrong type", map[string]any{"w": "2.5"}, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FloatArg(toolReq(tt.args), "w", 1.5))
		})
	}
}

func TestFloatArgOK(t *testing.T) {
	tests := []struct {
		name   string
		args   map[string]any
		want   float64
		wantOK bool
	}{
		{"float64", map[string]any{"w": 2.5}, 2.5, true},
		{"int", map[string]any{"w": 2}, 2.0, true},
		{"absent", map[string]any{}, 0, false},
		{"wrong type", map[string]any{"w": "2.5"}, 0, false},
		{"nil args", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FloatArgOK(toolReq(tt.args), "w")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBoolArg(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want bool
	}{
		{"true", map[string]any{"b": true}, true},
		{"false", map[string]any{"b": false}, false},
		{"absent", map[string]any{}, true},
		{"wrong type", map[string]any{"b": "yes"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BoolArg(toolReq(tt.args), "b", true))
		})
	}
}

func TestObjectArg(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		m, ok := ObjectArg(toolReq(map[string]any{"data": map[string]any{"k": "v"}}), "data")
		require.True(t, ok)
		assert.Equal(t, map[string]any{"k": "v"}, m)
	})
	t.Run("absent", func(t *testing.T) {
		_, ok := ObjectArg(toolReq(map[string]any{}), "data")
		assert.False(t, ok)
	})
	t.Run("wrong type", func(t *testing.T) {
		_, ok := ObjectArg(toolReq(map[string]any{"data": "x"}), "data")
		assert.False(t, ok)
	})
}

func TestStringsArg(t *testing.T) {
	tests := []struct {
		name   string
		args   map[string]any
		want   []string
		wantOK bool
	}{
		{"strings", map[string]any{"ids": []any{"a", "b"}}, []string{"a", "b"}, true},
		{"empty", map[string]any{"ids": []any{}}, []string{}, true},
		{"mixed", map[string]any{"ids": []any{"a", 1.0}}, nil, false},
		{"not array", map[string]any{"ids": "a"}, nil, false},
		{"absent", map[string]any{}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := StringsArg(toolReq(tt.args), "ids")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResultHelpers(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		res := ResultText("hello")
		assert.False(t, res.IsError)
		assert.Equal(t, "hello", firstText(t, res))
	})
	t.Run("error", func(t *testing.T) {
		res := ResultErr(assert.AnError)
		assert.True(t, res.IsError)
		assert.Equal(t, assert.AnError.Error(), firstText(t, res))
	})
	t.Run("json", func(t *testing.T) {
		res, err := ResultJSON(map[string]int{"count": 3})
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.JSONEq(t, `{"count":3}`, firstText(t, res))
	})
}

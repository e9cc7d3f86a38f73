package registry

import (
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/require"

	"github.com/compresr/optiflow/internal/middleware"
)

func echoTool() ToolDefinition {
	return ToolDefinition{
		Name:        "echo",
		Description: "echoes its input",
		InputSchema: &jsonschema.Schema{Type: "object"},
		Execute: func(args map[string]any) (ToolResult, error) {
			return ToolResult{Content: []ContentBlock{{Type: "text", Text: "hello"}}}, nil
		},
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	r := New(nil)
	res := r.Execute("missing", nil)
	require.True(t, res.IsError)
}

func TestExecuteRunsToolBody(t *testing.T) {
	r := New(nil)
	r.Register(echoTool())
	res := r.Execute("echo", map[string]any{"x": 1})
	require.False(t, res.IsError)
	require.Equal(t, "hello", res.Content[0].Text)
}

func TestExecuteBeforeFilterShortCircuits(t *testing.T) {
	chain := middleware.NewChain(middleware.Middleware{
		Name: "filter", Priority: 1,
		BeforeTool: func(ctx *middleware.Context) *middleware.Context { return nil },
	})
	r := New(chain)
	r.Register(echoTool())
	res := r.Execute("echo", nil)
	require.True(t, res.WasFiltered)
}

func TestExecuteRecoversFromPanic(t *testing.T) {
	r := New(nil)
	r.Register(ToolDefinition{
		Name: "boom",
		Execute: func(args map[string]any) (ToolResult, error) {
			panic("kaboom")
		},
	})
	res := r.Execute("boom", nil)
	require.True(t, res.IsError)
}

func TestListReturnsMCPTools(t *testing.T) {
	r := New(nil)
	r.Register(echoTool())
	tools := r.List()
	require.Len(t, tools, 1)
	require.Equal(t, "echo", tools[0].Name)
}

// Package registry implements the tool registry: a named map of tool
// definitions, their JSON-schema-typed input/output contracts, and the
// execute() pipeline wiring the middleware chain around a call.
package registry

import (
	"encoding/json"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/compresr/optiflow/internal/middleware"
	"github.com/compresr/optiflow/internal/tokencount"
)

// Annotations are metadata-only hints; they never affect execution.
type Annotations struct {
	Title           string
	ReadOnlyHint    bool
	DestructiveHint bool
	IdempotentHint  bool
	LongRunningHint bool
}

// ContentBlock mirrors the tool-invocation protocol's response unit.
type ContentBlock struct {
	Type string
	Text string
}

// ToolResult is the uniform shape returned by execute().
type ToolResult struct {
	Content     []ContentBlock
	IsError     bool
	WasFiltered bool
}

func (r ToolResult) text() string {
	var out string
	for _, c := range r.Content {
		out += c.Text
	}
	return out
}

// HandlerFunc is a tool's own body, given decoded args.
type HandlerFunc func(args map[string]any) (ToolResult, error)

// ToolDefinition is one registrable tool.
type ToolDefinition struct {
	Name         string
	Description  string
	InputSchema  *jsonschema.Schema
	OutputSchema *jsonschema.Schema
	Annotations  Annotations
	Execute      HandlerFunc
}

// AsMCPTool converts a ToolDefinition into an MCP-shaped listing entry.
// Only the schema/definition types are used here; no transport
// (mcp.Server.Run, mcp.StdioTransport) is wired — the registry never
// starts a server.
func (t ToolDefinition) AsMCPTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: t.InputSchema,
		OutputSchema: t.OutputSchema,
		Annotations: &mcp.ToolAnnotations{
			Title:           t.Annotations.Title,
			ReadOnlyHint:    t.Annotations.ReadOnlyHint,
			DestructiveHint: t.Annotations.DestructiveHint,
			IdempotentHint:  t.Annotations.IdempotentHint,
		},
	}
}

// Registry is a process-wide singleton map of tools, guarded by a
// mutex; only the owning component mutates it.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]ToolDefinition
	chain *middleware.Chain
}

// New builds a Registry bound to chain; chain may be nil, in which
// case before/after/onError hooks are skipped.
func New(chain *middleware.Chain) *Registry {
	return &Registry{tools: make(map[string]ToolDefinition), chain: chain}
}

// Register adds or replaces a tool definition.
func (r *Registry) Register(def ToolDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[def.Name] = def
}

// List returns every registered tool's MCP-shaped listing entry.
func (r *Registry) List() []*mcp.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*mcp.Tool, 0, len(r.tools))
	for _, def := range r.tools {
		out = append(out, def.AsMCPTool())
	}
	return out
}

func errorResult(message string) ToolResult {
	return ToolResult{Content: []ContentBlock{{Type: "text", Text: message}}, IsError: true}
}

// Execute runs the six-step invocation pipeline: unknown-tool guard,
// tokensIn accounting, the before hook (short-circuiting on nil), the
// tool body, tokensOut accounting, the after hook, and a fail-safe
// onError path.
func (r *Registry) Execute(name string, args map[string]any) ToolResult {
	r.mu.RLock()
	def, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return errorResult("unknown tool: " + name)
	}

	argsJSON, _ := json.Marshal(args)
	ctx := &middleware.Context{ToolName: name, Args: args, TokensIn: tokencount.Count(string(argsJSON))}

	if r.chain != nil {
		var proceed bool
		ctx, proceed = r.chain.Before(ctx)
		if !proceed {
			return ToolResult{WasFiltered: true}
		}
	}

	result, err := r.safeInvoke(def, ctx.Args)
	if err != nil {
		if r.chain != nil {
			if handled := r.chain.OnError(ctx, err); handled != nil {
				return ToolResult{
					Content: []ContentBlock{{Type: "text", Text: handled.Text}},
					IsError: handled.IsError,
				}
			}
		}
		return errorResult(err.Error())
	}

	ctx.TokensOut = tokencount.Count(result.text())

	if r.chain != nil {
		mres := r.chain.After(ctx, middleware.Result{
			Text:      result.text(),
			IsError:   result.IsError,
			TokensOut: ctx.TokensOut,
		})
		return ToolResult{
			Content: []ContentBlock{{Type: "text", Text: mres.Text}},
			IsError: mres.IsError,
		}
	}
	return result
}

func (r *Registry) safeInvoke(def ToolDefinition, args map[string]any) (result ToolResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = recoverToError(rec)
		}
	}()
	return def.Execute(args)
}

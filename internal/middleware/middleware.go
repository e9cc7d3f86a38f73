// Package middleware implements the tool-invocation middleware chain:
// priority-ordered before/after/onError hooks around a tool call.
package middleware

import (
	"github.com/rs/zerolog/log"
)

// Context is the mutable state threaded through one tool invocation.
type Context struct {
	ToolName          string
	Args              map[string]any
	TokensIn          int
	TokensOut         int
	WasFiltered       bool
	MiddlewareErrors  []error
	Values            map[string]any
}

// Result is a tool invocation's outcome.
type Result struct {
	Text        string
	IsError     bool
	WasFiltered bool
	TokensOut   int
}

// Middleware is one named, prioritized chain link. Lower Priority runs
// first on the before path and last on the after path.
type Middleware struct {
	Name       string
	Priority   int
	BeforeTool func(ctx *Context) *Context
	AfterTool  func(ctx *Context, result Result) Result
	OnError    func(ctx *Context, err error) *Result
}

// Chain is an ordered, priority-sorted list of Middlewares.
type Chain struct {
	middlewares []Middleware
}

// NewChain sorts middlewares by ascending priority once at
// construction time; Before/After iterate the same slice in opposite
// directions rather than re-sorting per call.
func NewChain(middlewares ...Middleware) *Chain {
	sorted := append([]Middleware{}, middlewares...)
	insertionSortByPriority(sorted)
	return &Chain{middlewares: sorted}
}

func insertionSortByPriority(m []Middleware) {
	for i := 1; i < len(m); i++ {
		j := i
		for j > 0 && m[j-1].Priority > m[j].Priority {
			m[j-1], m[j] = m[j], m[j-1]
			j--
		}
	}
}

// Before runs each middleware's BeforeTool hook in priority order
// (low to high). Any hook returning nil short-circuits the chain: the
// caller must synthesize a filtered result (wasFiltered=true,
// tokensOut=0) and skip tool execution.
func (c *Chain) Before(ctx *Context) (*Context, bool) {
	for _, m := range c.middlewares {
		if m.BeforeTool == nil {
			continue
		}
		ctx = m.BeforeTool(ctx)
		if ctx == nil {
			return nil, false
		}
	}
	return ctx, true
}

// After runs each middleware's AfterTool hook in reverse priority
// order (high to low). A panic inside one hook is recorded on
// ctx.MiddlewareErrors and does not stop the chain (fail-safe).
func (c *Chain) After(ctx *Context, result Result) Result {
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		m := c.middlewares[i]
		if m.AfterTool == nil {
			continue
		}
		result = c.safeAfter(m, ctx, result)
	}
	return result
}

func (c *Chain) safeAfter(m Middleware, ctx *Context, result Result) (out Result) {
	out = result
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("middleware", m.Name).Interface("panic", r).Msg("middleware after hook panicked")
			ctx.MiddlewareErrors = append(ctx.MiddlewareErrors, panicToError(r))
			out = result
		}
	}()
	return m.AfterTool(ctx, result)
}

// OnError calls each middleware's OnError hook in priority order,
// stopping at the first one that returns a non-nil result.
func (c *Chain) OnError(ctx *Context, err error) *Result {
	for _, m := range c.middlewares {
		if m.OnError == nil {
			continue
		}
		if res := m.OnError(ctx, err); res != nil {
			return res
		}
	}
	return nil
}

func panicToError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &panicError{r}
}

type panicError struct{ v any }

func (p *panicError) Error() string {
	return "middleware panic: " + toString(p.v)
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return "unknown panic value"
}

package middleware

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBeforeRunsLowToHighPriority(t *testing.T) {
	var order []string
	chain := NewChain(
		Middleware{Name: "b", Priority: 2, BeforeTool: func(ctx *Context) *Context {
			order = append(order, "b")
			return ctx
		}},
		Middleware{Name: "a", Priority: 1, BeforeTool: func(ctx *Context) *Context {
			order = append(order, "a")
			return ctx
		}},
	)
	_, ok := chain.Before(&Context{})
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, order)
}

func TestBeforeShortCircuitsOnNil(t *testing.T) {
	called := false
	chain := NewChain(
		Middleware{Name: "filter", Priority: 1, BeforeTool: func(ctx *Context) *Context { return nil }},
		Middleware{Name: "never", Priority: 2, BeforeTool: func(ctx *Context) *Context {
			called = true
			return ctx
		}},
	)
	ctx, ok := chain.Before(&Context{})
	require.False(t, ok)
	require.Nil(t, ctx)
	require.False(t, called)
}

func TestAfterRunsHighToLowPriority(t *testing.T) {
	var order []string
	chain := NewChain(
		Middleware{Name: "a", Priority: 1, AfterTool: func(ctx *Context, r Result) Result {
			order = append(order, "a")
			return r
		}},
		Middleware{Name: "b", Priority: 2, AfterTool: func(ctx *Context, r Result) Result {
			order = append(order, "b")
			return r
		}},
	)
	chain.After(&Context{}, Result{})
	require.Equal(t, []string{"b", "a"}, order)
}

func TestAfterPanicIsFailSafe(t *testing.T) {
	ctx := &Context{}
	chain := NewChain(
		Middleware{Name: "boom", Priority: 1, AfterTool: func(ctx *Context, r Result) Result {
			panic("kaboom")
		}},
	)
	res := chain.After(ctx, Result{Text: "ok"})
	require.Equal(t, "ok", res.Text)
	require.Len(t, ctx.MiddlewareErrors, 1)
}

func TestOnErrorStopsAtFirstNonNil(t *testing.T) {
	calledSecond := false
	chain := NewChain(
		Middleware{Name: "first", Priority: 1, OnError: func(ctx *Context, err error) *Result {
			return &Result{Text: "handled", IsError: true}
		}},
		Middleware{Name: "second", Priority: 2, OnError: func(ctx *Context, err error) *Result {
			calledSecond = true
			return nil
		}},
	)
	res := chain.OnError(&Context{}, errors.New("boom"))
	require.NotNil(t, res)
	require.Equal(t, "handled", res.Text)
	require.False(t, calledSecond)
}

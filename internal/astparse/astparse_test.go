package astparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/compresr/optiflow/internal/model"
)

func TestTSSkeletonSingleLine(t *testing.T) {
	src := `export async function foo<T extends string>(x: T, y?: number): Promise<T> { return x; }`
	p := New(model.LangTypeScript)
	out, err := p.Skeleton(src)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	require.Equal(t, `export async function foo<T extends string>(x: T, y?: number): Promise<T>`, lines[0])
	require.NotContains(t, out, "{")
	require.NotContains(t, out, "return x")
}

func TestGoParseFunctionLineRange(t *testing.T) {
	src := "package main\n\nfunc Add(a, b int) int {\n\treturn a + b\n}\n"
	p := New(model.LangGo)
	fs, err := p.Parse(src)
	require.NoError(t, err)
	require.True(t, fs.Valid())
	require.Len(t, fs.Functions, 1)
	fn := fs.Functions[0]
	require.Equal(t, "Add", fn.Name)
	require.True(t, fn.Flags.IsExported)
	require.Equal(t, 3, fn.StartLine)
	require.Equal(t, 5, fn.EndLine)
}

func TestUnknownLanguageNeverThrows(t *testing.T) {
	p := New(model.LangUnknown)
	fs, err := p.Parse("whatever\ncontent\n")
	require.NoError(t, err)
	require.Equal(t, 2, fs.TotalLines)
	require.Empty(t, fs.AllElements())
}

func TestExtractReturnsElementSource(t *testing.T) {
	src := "package main\n\nfunc Add(a, b int) int {\n\treturn a + b\n}\n"
	p := New(model.LangGo)
	res, err := p.Extract(src, ElementQuery{Kind: model.KindFunction, Name: "Add"})
	require.NoError(t, err)
	require.Contains(t, res.Source, "func Add(a, b int) int {")
	require.Contains(t, res.Source, "return a + b")
}

func TestSearchSubstringMatch(t *testing.T) {
	src := "package main\n\nfunc AddOne(a int) int { return a + 1 }\nfunc Subtract(a, b int) int { return a - b }\n"
	p := New(model.LangGo)
	els, err := p.Search(src, "Add")
	require.NoError(t, err)
	require.Len(t, els, 1)
	require.Equal(t, "AddOne", els[0].Name)
}

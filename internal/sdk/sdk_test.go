package sdk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/compresr/optiflow/internal/compress"
	"github.com/compresr/optiflow/internal/coreerr"
)

func TestValidatePathRejectsTraversal(t *testing.T) {
	res := ValidatePath("../etc/passwd", "/workspace")
	if res.Safe {
		t.Fatalf("expected traversal to be rejected")
	}
}

func TestValidatePathRejectsAbsolute(t *testing.T) {
	res := ValidatePath("/etc/passwd", "/workspace")
	if res.Safe {
		t.Fatalf("expected absolute path to be rejected")
	}
}

func TestValidatePathAcceptsRelative(t *testing.T) {
	res := ValidatePath("src/main.go", "/workspace")
	if !res.Safe {
		t.Fatalf("expected relative path within workingDir to be safe, got error: %v", res.Error)
	}
}

func TestFilesReadAndExists(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	f := Files{WorkingDir: dir}
	content, err := f.Read("a.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "hello" {
		t.Fatalf("expected hello, got %q", content)
	}
	if !f.Exists("a.txt") {
		t.Fatalf("expected a.txt to exist")
	}
	if f.Exists("missing.txt") {
		t.Fatalf("expected missing.txt to not exist")
	}
}

func TestFilesReadNotFound(t *testing.T) {
	f := Files{WorkingDir: t.TempDir()}
	_, err := f.Read("nope.txt")
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !coreerr.Is(err, coreerr.KindFileNotFound) {
		t.Fatalf("expected KindFileNotFound, got %v", err)
	}
}

func TestGitBlocksDisallowedSubcommand(t *testing.T) {
	g := Git{WorkingDir: t.TempDir()}
	_, err := g.Run(nil, "push")
	if err == nil {
		t.Fatalf("expected push to be blocked")
	}
	if !coreerr.Is(err, coreerr.KindGitBlockedCommand) {
		t.Fatalf("expected KindGitBlockedCommand, got %v", err)
	}
}

func TestGlobToRegexpMatchesDoubleStar(t *testing.T) {
	files, err := Search{}.Files("src/**/*.go", []string{"src/a/b.go", "src/a.go", "docs/readme.md"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || files[0] != "src/a/b.go" {
		t.Fatalf("expected exactly src/a/b.go, got %v", files)
	}
}

func TestSearchGrep(t *testing.T) {
	files := map[string]string{
		"a.go": "package a\nfunc Foo() {}\n",
		"b.go": "package b\nfunc Bar() {}\n",
	}
	matches, err := Search{}.Grep(`func \w+`, files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
}

func TestPipelineBasicChain(t *testing.T) {
	p := NewPipeline(Files{}).
		FromData([]any{3, 1, 2, 2}).
		Unique(func(x any) string { return intKey(x) }).
		Sort(func(a, b any) bool { return a.(int) < b.(int) }).
		Take(2)

	items, stats, err := p.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0] != 1 || items[1] != 2 {
		t.Fatalf("expected [1 2], got %v", items)
	}
	if stats.StepsExecuted != 4 {
		t.Fatalf("expected 4 steps executed, got %d", stats.StepsExecuted)
	}
}

func TestPipelineRecoverSubstitutesOnError(t *testing.T) {
	p := NewPipeline(Files{}).
		Glob("[").
		Recover(func(err error) []any { return []any{"fallback"} })

	items, stats, err := p.Build()
	if err != nil {
		t.Fatalf("expected recover to absorb the error, got %v", err)
	}
	if len(items) != 1 || items[0] != "fallback" {
		t.Fatalf("expected fallback item, got %v", items)
	}
	if len(stats.Errors) != 1 {
		t.Fatalf("expected one recorded error, got %v", stats.Errors)
	}
}

func intKey(x any) string {
	switch v := x.(type) {
	case int:
		return string(rune('0' + v))
	default:
		return ""
	}
}

func TestConversationExtractDecisions(t *testing.T) {
	msgs := []compress.Message{
		{Role: "user", Content: "We decided to use SQLite for the cache store."},
		{Role: "assistant", Content: "Sounds good, updating db.go and config.yaml."},
	}
	decisions := Conversation{}.ExtractDecisions(msgs)
	if len(decisions) != 1 {
		t.Fatalf("expected 1 decision line, got %v", decisions)
	}
	refs := Conversation{}.ExtractCodeRefs(msgs)
	if len(refs) != 2 {
		t.Fatalf("expected 2 code refs, got %v", refs)
	}
}

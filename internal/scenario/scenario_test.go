// Package scenario exercises the concrete end-to-end behaviors that
// cut across multiple packages, rather than any single package's
// internals.
package scenario

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/compresr/optiflow/internal/cache"
	"github.com/compresr/optiflow/internal/compress"
	"github.com/compresr/optiflow/internal/sandbox"
	"github.com/compresr/optiflow/internal/tokencount"
)

// Stacktrace collapse: one project frame sandwiched between 5
// internal frames above and 3 below, in normal detail, collapses each
// run into an omitted-count marker while keeping the project frame.
func TestStacktraceCollapseSandwichedProjectFrame(t *testing.T) {
	var lines []string
	lines = append(lines, "Error: boom")
	for i := 0; i < 5; i++ {
		lines = append(lines, "    at Module._compile (/app/node_modules/foo/index.js:1:1)")
	}
	lines = append(lines, "    at processRequest (/app/src/server.js:42:10)")
	for i := 0; i < 3; i++ {
		lines = append(lines, "    at Module._compile (/app/node_modules/bar/index.js:2:2)")
	}
	content := strings.Join(lines, "\n")

	res := compress.Stacktrace(content, compress.Options{Detail: compress.DetailNormal})

	if !strings.Contains(res.Compressed, "… (5 internal frames omitted)") {
		t.Fatalf("expected 5-frame omission marker, got:\n%s", res.Compressed)
	}
	if !strings.Contains(res.Compressed, "processRequest") {
		t.Fatalf("expected project frame to survive verbatim, got:\n%s", res.Compressed)
	}
	if !strings.Contains(res.Compressed, "… (3 internal frames omitted)") {
		t.Fatalf("expected 3-frame omission marker, got:\n%s", res.Compressed)
	}

	idx5 := strings.Index(res.Compressed, "(5 internal frames omitted)")
	idxProject := strings.Index(res.Compressed, "processRequest")
	idx3 := strings.Index(res.Compressed, "(3 internal frames omitted)")
	if !(idx5 < idxProject && idxProject < idx3) {
		t.Fatalf("expected ordering omitted(5) -> project -> omitted(3), got:\n%s", res.Compressed)
	}
}

// Diff semantic: a small hunk touching an error path outranks a large
// hunk renaming a variable in a test file, so a token budget sized to
// exactly the error hunk keeps it and drops the test hunk.
func TestDiffSemanticKeepsErrorHunkOverTestHunk(t *testing.T) {
	errorHunk := "diff --git a/src/handler.go b/src/handler.go\n" +
		"index 1111111..2222222 100644\n" +
		"--- a/src/handler.go\n" +
		"+++ b/src/handler.go\n" +
		"@@ -10,3 +10,3 @@\n" +
		" func handle() {\n" +
		"-\treturn nil\n" +
		"+\tthrow new Error(\"oops\")\n"

	var testHunkLines []string
	testHunkLines = append(testHunkLines, "diff --git a/src/widget.test.ts b/src/widget.test.ts")
	testHunkLines = append(testHunkLines, "index 3333333..4444444 100644")
	testHunkLines = append(testHunkLines, "--- a/src/widget.test.ts")
	testHunkLines = append(testHunkLines, "+++ b/src/widget.test.ts")
	testHunkLines = append(testHunkLines, "@@ -1,40 +1,40 @@")
	for i := 0; i < 40; i++ {
		testHunkLines = append(testHunkLines, "-const oldVariableName = describeScenario(i)")
		testHunkLines = append(testHunkLines, "+const renamedVariableName = describeScenario(i)")
	}
	testHunk := strings.Join(testHunkLines, "\n") + "\n"

	content := errorHunk + testHunk

	errorHunkBlock := "@@ -10,3 +10,3 @@\n func handle() {\n-\treturn nil\n+\tthrow new Error(\"oops\")\n"
	maxTokens := tokencount.Count(errorHunkBlock)

	res := compress.Diff(content, compress.DiffSemantic, maxTokens, compress.Options{})

	if !strings.Contains(res.Compressed, `throw new Error("oops")`) {
		t.Fatalf("expected error hunk to survive, got:\n%s", res.Compressed)
	}
	if strings.Contains(res.Compressed, "renamedVariableName") {
		t.Fatalf("expected test hunk to be omitted, got:\n%s", res.Compressed)
	}
}

// Cache file invalidation: a cached entry tied to a file path reports
// a file_changed miss once the file's mtime/size changes underneath
// it, and the miss is reflected in the cache's miss counter.
func TestCacheFileInvalidationOnModification(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := cache.New[string](cache.Options{})
	defer c.Close()

	c.Set("k", "v", cache.SetOptions{FilePath: path})

	before := c.Stats()
	if res := c.Get("k"); !res.Hit {
		t.Fatalf("expected a hit before file modification")
	}

	time.Sleep(10 * time.Millisecond)
	if err := os.WriteFile(path, []byte("a different, longer body"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := c.Get("k")
	if res.Hit {
		t.Fatalf("expected a miss after file modification")
	}
	if res.MissReason != cache.MissFileChanged {
		t.Fatalf("expected MissFileChanged, got %v", res.MissReason)
	}

	after := c.Stats()
	if after.Misses != before.Misses+1 {
		t.Fatalf("expected misses to increase by exactly 1, before=%d after=%d", before.Misses, after.Misses)
	}
}

// Sandbox timeout: a busy-loop script with a 100ms cap fails within
// 150ms with a timeout error, and the executor leaves no resources
// acquired across repeated invocations.
func TestSandboxTimeoutOnBusyLoop(t *testing.T) {
	e := sandbox.NewExecutor(t.TempDir())
	for i := 0; i < 100; i++ {
		start := time.Now()
		res := e.Run(context.Background(), "while (true) {}", sandbox.Options{MaxExecutionMs: 100})
		elapsed := time.Since(start)

		if res.OK {
			t.Fatalf("iteration %d: expected failure on timeout", i)
		}
		if !strings.Contains(strings.ToLower(res.Error), "timeout") {
			t.Fatalf("iteration %d: expected timeout error, got %q", i, res.Error)
		}
		if elapsed > 150*time.Millisecond {
			t.Fatalf("iteration %d: expected resolution within 150ms, took %s", i, elapsed)
		}
	}
}

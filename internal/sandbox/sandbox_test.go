package sandbox

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestRunSimpleExpression(t *testing.T) {
	e := NewExecutor(t.TempDir())
	res := e.Run(context.Background(), "1 + 2", Options{})
	if !res.OK {
		t.Fatalf("expected ok, got error: %s", res.Error)
	}
	if n, ok := res.Value.(int64); !ok || n != 3 {
		if f, ok2 := res.Value.(float64); !ok2 || f != 3 {
			t.Fatalf("expected 3, got %#v", res.Value)
		}
	}
}

func TestRunBlocksEvalPattern(t *testing.T) {
	e := NewExecutor(t.TempDir())
	res := e.Run(context.Background(), "eval('1')", Options{})
	if res.OK {
		t.Fatalf("expected blocked pattern to fail")
	}
	if !strings.HasPrefix(res.Error, "Blocked patterns:") {
		t.Fatalf("expected blocked-patterns error, got %q", res.Error)
	}
}

func TestRunConsoleCapture(t *testing.T) {
	e := NewExecutor(t.TempDir())
	res := e.Run(context.Background(), `console.log("hello", "world"); 1`, Options{})
	if !res.OK {
		t.Fatalf("expected ok, got error: %s", res.Error)
	}
	if len(res.Console) != 1 || res.Console[0] != "hello world" {
		t.Fatalf("expected captured console line, got %v", res.Console)
	}
}

func TestRunTimeoutOnBusyLoop(t *testing.T) {
	e := NewExecutor(t.TempDir())
	start := time.Now()
	res := e.Run(context.Background(), "while (true) {}", Options{MaxExecutionMs: 100})
	elapsed := time.Since(start)
	if res.OK {
		t.Fatalf("expected timeout failure")
	}
	if !strings.Contains(res.Error, "timeout") {
		t.Fatalf("expected timeout error, got %q", res.Error)
	}
	if elapsed > 500*time.Millisecond {
		t.Fatalf("expected timeout well within 500ms, took %s", elapsed)
	}
}

func TestRunBridgeFilesExists(t *testing.T) {
	e := NewExecutor(t.TempDir())
	res := e.Run(context.Background(), `files.exists("nope.txt")`, Options{})
	if !res.OK {
		t.Fatalf("expected ok, got error: %s", res.Error)
	}
	if exists, ok := res.Value.(bool); !ok || exists {
		t.Fatalf("expected false for a missing file, got %#v", res.Value)
	}
}

func TestInProcessBackendSharesRuntimeAcrossCalls(t *testing.T) {
	e := NewExecutor(t.TempDir())
	opts := Options{Backend: BackendInProcess}
	if res := e.Run(context.Background(), "globalThis.counter = 1", opts); !res.OK {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	res := e.Run(context.Background(), "globalThis.counter", opts)
	if !res.OK {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if n, ok := res.Value.(int64); !ok || n != 1 {
		t.Fatalf("expected shared state counter=1, got %#v", res.Value)
	}
}

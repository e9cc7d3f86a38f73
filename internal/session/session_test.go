package session

import "testing"

func TestRecordAccumulatesPerTool(t *testing.T) {
	tr := New(nil)
	tr.Record("compress", 100, 20, 80, 5, false)
	tr.Record("compress", 50, 10, 40, 3, true)

	snap := tr.Snapshot()
	s := snap.PerTool["compress"]
	if s.Invocations != 2 {
		t.Fatalf("expected 2 invocations, got %d", s.Invocations)
	}
	if s.TokensIn != 150 || s.TokensOut != 30 || s.TokensSaved != 120 {
		t.Fatalf("unexpected accumulated tokens: %+v", s)
	}
	if s.Errors != 1 {
		t.Fatalf("expected 1 error, got %d", s.Errors)
	}
}

func TestOptimizationRateComputed(t *testing.T) {
	tr := New(nil)
	tr.Record("compress", 100, 20, 80, 1, false)
	snap := tr.Snapshot()
	if snap.OptimizationRate != 0.8 {
		t.Fatalf("expected rate 0.8, got %f", snap.OptimizationRate)
	}
}

func TestOptimizationRateZeroWhenNoTokensIn(t *testing.T) {
	tr := New(nil)
	snap := tr.Snapshot()
	if snap.OptimizationRate != 0 {
		t.Fatalf("expected rate 0 with no data, got %f", snap.OptimizationRate)
	}
}

func TestResetZeroesCounters(t *testing.T) {
	tr := New(nil)
	tr.Record("compress", 100, 20, 80, 1, false)
	tr.Reset()
	snap := tr.Snapshot()
	if snap.TotalInvocations != 0 || len(snap.PerTool) != 0 {
		t.Fatalf("expected a clean tracker after reset, got %+v", snap)
	}
}

type captureReporter struct {
	calls int
}

func (c *captureReporter) Observe(string, int, int, int, bool) { c.calls++ }

func TestReporterObservesEveryRecord(t *testing.T) {
	rep := &captureReporter{}
	tr := New(rep)
	tr.Record("compress", 1, 1, 1, 1, false)
	tr.Record("compress", 1, 1, 1, 1, false)
	if rep.calls != 2 {
		t.Fatalf("expected reporter called twice, got %d", rep.calls)
	}
}

package perf

import (
	"testing"
	"time"
)

func TestComputeP95(t *testing.T) {
	samples := []time.Duration{
		1 * time.Millisecond,
		2 * time.Millisecond,
		3 * time.Millisecond,
		4 * time.Millisecond,
		5 * time.Millisecond,
	}
	if got := computeP95(samples, len(samples), true); got != 5*time.Millisecond {
		t.Fatalf("expected p95=5ms, got %s", got)
	}

	partial := []time.Duration{9 * time.Millisecond, 1 * time.Millisecond, 5 * time.Millisecond, 0}
	if got := computeP95(partial, 3, false); got != 9*time.Millisecond {
		t.Fatalf("expected p95=9ms for partial window, got %s", got)
	}
	if got := computeP95(partial, 0, false); got != 0 {
		t.Fatalf("expected 0 for empty window, got %s", got)
	}
}

func TestSnapshotAndReset(t *testing.T) {
	restore := EnableForTest()
	defer restore()

	Record("tick", 50*time.Millisecond)
	Record("tick", 150*time.Millisecond)
	Record("view", 10*time.Millisecond)
	Count("wrap", 1)
	Count("wrap", 2)

	statSnaps, counterSnaps := Snapshot()
	if len(statSnaps) != 2 || statSnaps[0].Name != "tick" || statSnaps[1].Name != "view" {
		t.Fatalf("unexpected stats: %+v", statSnaps)
	}
	tick := statSnaps[0]
	if tick.Count != 2 || tick.Avg != 100*time.Millisecond || tick.Min != 50*time.Millisecond || tick.Max != 150*time.Millisecond {
		t.Fatalf("unexpected tick stat: %+v", tick)
	}
	if len(counterSnaps) != 1 || counterSnaps[0].Value != 3 {
		t.Fatalf("unexpected counters: %+v", counterSnaps)
	}

	statSnaps, counterSnaps = Snapshot()
	if len(statSnaps) != 0 || len(counterSnaps) != 0 {
		t.Fatalf("expected reset after snapshot, got %+v %+v", statSnaps, counterSnaps)
	}
}

func TestDisabledIsNoop(t *testing.T) {
	restore := EnableForTest()
	enabled.Store(false)
	defer restore()

	Time("tick")()
	Count("wrap", 1)
	statSnaps, counterSnaps := Snapshot()
	if len(statSnaps) != 0 || len(counterSnaps) != 0 {
		t.Fatalf("expected nothing recorded while disabled")
	}
}

func TestEnvParsing(t *testing.T) {
	for _, raw := range []string{"", "0", "false", "NO"} {
		if isEnabled(raw) {
			t.Fatalf("isEnabled(%q) = true", raw)
		}
	}
	if !isEnabled("1") {
		t.Fatalf("isEnabled(1) = false")
	}
	if got := intervalFromEnv("250"); got != 250*time.Millisecond {
		t.Fatalf("intervalFromEnv(250) = %s", got)
	}
	if got := intervalFromEnv("nope"); got != defaultIntervalMs*time.Millisecond {
		t.Fatalf("intervalFromEnv(nope) = %s", got)
	}
}

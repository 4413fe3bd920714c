package sim

import (
	"reflect"
	"testing"
	"time"
)

var replayTestAnchor = time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)

func TestReplayStart_UnknownScenario(t *testing.T) {
	store := NewReplayStore()
	if _, err := store.StartAt("not-a-real-id", replayTestAnchor); err != ErrUnknownScenario {
		t.Fatalf("err = %v, want ErrUnknownScenario", err)
	}
}

func TestReplayStart_DeterministicAtFixedAnchor(t *testing.T) {
	a, err := NewReplayStore().StartAt("marketing-spike", replayTestAnchor)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewReplayStore().StartAt("marketing-spike", replayTestAnchor)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Events, b.Events) {
		t.Error("event lists differ across identical starts")
	}
	if !reflect.DeepEqual(a.Metrics, b.Metrics) {
		t.Error("metric series differ across identical starts")
	}
}

func TestReplayEvents_MonotonicAndComplete(t *testing.T) {
	store := NewReplayStore()
	state, err := store.StartAt("datacenter-outage", replayTestAnchor)
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Events) == 0 {
		t.Fatal("no events")
	}
	for i := 1; i < len(state.Events); i++ {
		if state.Events[i].OffsetMs < state.Events[i-1].OffsetMs {
			t.Fatalf("events out of order at %d", i)
		}
	}
	last := state.Events[len(state.Events)-1]
	if last.OffsetMs > int64(state.Scenario.DurationMinutes)*60000 {
		t.Errorf("last event at %dms beyond scenario duration", last.OffsetMs)
	}
}

func TestReplayMetrics_SeriesCoverDuration(t *testing.T) {
	store := NewReplayStore()
	state, err := store.StartAt("model-launch", replayTestAnchor)
	if err != nil {
		t.Fatal(err)
	}
	for name, series := range map[string][]MetricPoint{
		"utilization": state.Metrics.Utilization,
		"revenue":     state.Metrics.Revenue,
		"queue_depth": state.Metrics.QueueDepth,
		"latency":     state.Metrics.Latency,
	} {
		if len(series) != replaySamples {
			t.Errorf("%s series = %d points, want %d", name, len(series), replaySamples)
		}
	}
	first := state.Metrics.Utilization[0].Timestamp
	if first != replayTestAnchor.UTC().Format(time.RFC3339) {
		t.Errorf("series starts at %s, want anchor", first)
	}
}

func TestReplayEvents_WindowFilter(t *testing.T) {
	store := NewReplayStore()
	if _, err := store.StartAt("marketing-spike", replayTestAnchor); err != nil {
		t.Fatal(err)
	}
	from := replayTestAnchor.Add(10 * time.Minute).UTC().Format(time.RFC3339)
	to := replayTestAnchor.Add(20 * time.Minute).UTC().Format(time.RFC3339)
	events := store.Events(from, to)
	if len(events) == 0 {
		t.Fatal("window filter returned nothing")
	}
	for _, ev := range events {
		if ev.Timestamp < from || ev.Timestamp > to {
			t.Errorf("event %q at %s outside [%s, %s]", ev.Title, ev.Timestamp, from, to)
		}
	}
}

func TestReplayMetrics_IdleStore(t *testing.T) {
	store := NewReplayStore()
	if _, err := store.Metrics(); err != ErrNoActiveReplay {
		t.Fatalf("err = %v, want ErrNoActiveReplay", err)
	}
	if events := store.Events("", ""); len(events) != 0 {
		t.Errorf("idle store events = %d, want 0", len(events))
	}
}

func TestReplayStart_ReplacesSingleton(t *testing.T) {
	store := NewReplayStore()
	if _, err := store.StartAt("marketing-spike", replayTestAnchor); err != nil {
		t.Fatal(err)
	}
	if _, err := store.StartAt("billing-anomaly", replayTestAnchor); err != nil {
		t.Fatal(err)
	}
	events := store.Events("", "")
	if len(events) == 0 || events[0].Title != "Nominal spend rate" {
		t.Error("second start did not replace the active scenario")
	}
}

func TestReplayAnchor_TodayAtEight(t *testing.T) {
	now := time.Date(2026, 8, 30, 22, 41, 9, 123, time.UTC)
	anchor := replayAnchor(now)
	if anchor.Hour() != 8 || anchor.Minute() != 0 || anchor.Second() != 0 || anchor.Nanosecond() != 0 {
		t.Errorf("anchor = %v, want today 08:00:00.000", anchor)
	}
	if anchor.YearDay() != now.YearDay() {
		t.Errorf("anchor day %d, want %d", anchor.YearDay(), now.YearDay())
	}
}

func TestScenarioCurves_PureFunctions(t *testing.T) {
	for _, def := range scenarioDefs {
		for _, p := range []float64{0, 0.1, 0.5, 0.77, 1} {
			u1, r1, q1, l1 := def.curves(p)
			u2, r2, q2, l2 := def.curves(p)
			if u1 != u2 || r1 != r2 || q1 != q2 || l1 != l2 {
				t.Fatalf("scenario %s curves not pure at p=%v", def.ID, p)
			}
			if u1 < 0 || u1 > 100 {
				t.Errorf("scenario %s utilization %v at p=%v outside [0,100]", def.ID, u1, p)
			}
		}
	}
}

package sim

import (
	"testing"
)

func TestEndpoints_Catalog(t *testing.T) {
	s := testSim()
	eps := s.Endpoints()
	if len(eps) != len(endpointDefs) {
		t.Fatalf("endpoints = %d, want %d", len(eps), len(endpointDefs))
	}
	for _, ep := range eps {
		if ep.RPS < 0 {
			t.Errorf("endpoint %s rps = %v, want >= 0", ep.ID, ep.RPS)
		}
		if ep.LatencyP99Ms <= ep.LatencyP50Ms {
			t.Errorf("endpoint %s p99 %v not above p50 %v", ep.ID, ep.LatencyP99Ms, ep.LatencyP50Ms)
		}
	}
}

func TestEndpointMetrics_SeriesShape(t *testing.T) {
	s := testSim()
	series, ok := s.EndpointMetrics("ep-chat-70b")
	if !ok {
		t.Fatal("ep-chat-70b not found")
	}
	if len(series) != 24 {
		t.Fatalf("series = %d points, want 24", len(series))
	}
	for i := 1; i < len(series); i++ {
		if series[i].Timestamp <= series[i-1].Timestamp {
			t.Fatalf("series not ascending at %d", i)
		}
	}
}

func TestEndpointMetrics_UnknownID(t *testing.T) {
	s := testSim()
	if _, ok := s.EndpointMetrics("ep-nope"); ok {
		t.Error("expected ok=false for unknown endpoint")
	}
}

func TestLatencyPercentiles(t *testing.T) {
	series := []EndpointMetric{
		{LatencyP50Ms: 10}, {LatencyP50Ms: 20}, {LatencyP50Ms: 30}, {LatencyP50Ms: 40},
	}
	p50, p99 := LatencyPercentiles(series)
	if p50 != 20 {
		t.Errorf("p50 = %v, want 20", p50)
	}
	if p99 != 40 {
		t.Errorf("p99 = %v, want 40", p99)
	}
	if p50, p99 := LatencyPercentiles(nil); p50 != 0 || p99 != 0 {
		t.Error("empty series should yield zeros")
	}
}

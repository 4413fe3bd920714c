package sim

import (
	"math"
	"sort"
	"time"
)

// Endpoint is one shared inference service with live traffic figures.
type Endpoint struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Model        string  `json:"model"`
	GpuModel     string  `json:"gpu_model"`
	Region       string  `json:"region"`
	Replicas     int     `json:"replicas"`
	Status       string  `json:"status"`
	RPS          float64 `json:"rps"`
	LatencyP50Ms float64 `json:"latency_p50_ms"`
	LatencyP99Ms float64 `json:"latency_p99_ms"`
	TokensPerSec float64 `json:"tokens_per_sec"`
}

// EndpointMetric is one trailing sample for an endpoint's detail view.
type EndpointMetric struct {
	Timestamp    string  `json:"timestamp"`
	RPS          float64 `json:"rps"`
	LatencyP50Ms float64 `json:"latency_p50_ms"`
	LatencyP99Ms float64 `json:"latency_p99_ms"`
}

// endpointTraffic evaluates rps/latency for endpoint ei at time t.
// Traffic tracks the daily curve with a per-endpoint oscillation; tail
// latency grows superlinearly as traffic approaches the base rate.
func endpointTraffic(ei int, def endpointDef, t time.Time) (rps, p50, p99 float64) {
	hour := float64(t.Hour()) + float64(t.Minute())/60
	load := dailyPattern(hour)
	ms := float64(t.UnixMilli())
	osc := math.Sin(ms/240000+float64(ei)*1.1)*0.08 + math.Sin(ms/45000+float64(ei)*2.3)*0.04
	rps = def.baseRps * (load + osc) * (0.9 + smoothNoise(fieldSeed(ei, "variant"))*0.2)
	pressure := rps / def.baseRps
	p50 = def.baseP50Ms * (0.85 + 0.4*pressure)
	p99 = p50 * (2.2 + 1.6*math.Pow(pressure, 2))
	return round1(rps), round1(p50), round1(p99)
}

// Endpoints lists the inference service catalog with live figures.
func (s *Simulator) Endpoints() []Endpoint {
	now := s.now()
	nowMs := now.UnixMilli()
	out := make([]Endpoint, 0, len(endpointDefs))
	for ei, def := range endpointDefs {
		rps, p50, p99 := endpointTraffic(ei, def, now)
		status := "healthy"
		if smoothNoise(fieldSeed(ei, "status")+timeBucket(nowMs, 900000)) > 0.92 {
			status = "degraded"
		}
		out = append(out, Endpoint{
			ID: def.id, Name: def.name, Model: def.model,
			GpuModel: def.gpuModel, Region: def.region, Replicas: def.replicas,
			Status: status, RPS: rps,
			LatencyP50Ms: p50, LatencyP99Ms: p99,
			TokensPerSec: round1(rps * (14 + smoothNoise(fieldSeed(ei, "span"))*26)),
		})
	}
	return out
}

// EndpointMetrics renders a 24-point trailing series (5-minute steps)
// for one endpoint; ok is false for unknown ids.
func (s *Simulator) EndpointMetrics(id string) ([]EndpointMetric, bool) {
	ei := -1
	var def endpointDef
	for i, d := range endpointDefs {
		if d.id == id {
			ei, def = i, d
			break
		}
	}
	if ei < 0 {
		return nil, false
	}

	now := s.now()
	out := make([]EndpointMetric, 0, 24)
	for i := 23; i >= 0; i-- {
		t := now.Add(-time.Duration(i) * 5 * time.Minute)
		rps, p50, p99 := endpointTraffic(ei, def, t)
		out = append(out, EndpointMetric{
			Timestamp:    t.UTC().Format(time.RFC3339),
			RPS:          rps,
			LatencyP50Ms: p50,
			LatencyP99Ms: p99,
		})
	}
	return out, true
}

// LatencyPercentiles reduces an endpoint's trailing series to p50/p99
// over the window using the nearest-rank method.
func LatencyPercentiles(series []EndpointMetric) (p50, p99 float64) {
	if len(series) == 0 {
		return 0, 0
	}
	vals := make([]float64, len(series))
	for i, m := range series {
		vals[i] = m.LatencyP50Ms
	}
	sort.Float64s(vals)
	return percentile(vals, 50), percentile(vals, 99)
}

// percentile computes the p-th percentile from a sorted slice using the
// nearest-rank method.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := (p / 100.0) * float64(len(sorted))
	idx := int(math.Ceil(rank)) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

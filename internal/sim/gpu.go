package sim

import (
	"math"
)

// GpuSummary is the per-GPU view returned by the API.
type GpuSummary struct {
	ID           string  `json:"id"`
	Model        string  `json:"model"`
	DcID         string  `json:"dc_id"`
	ClusterID    string  `json:"cluster_id"`
	NodeID       string  `json:"node_id"`
	Status       string  `json:"status"`
	Utilization  float64 `json:"utilization"`
	TemperatureC float64 `json:"temperature_c"`
	PowerW       float64 `json:"power_w"`
	MemoryUsedGB float64 `json:"memory_used_gb"`
	MemoryGB     int     `json:"memory_gb"`
	MigCapable   bool    `json:"mig_capable"`
}

// Oscillation bands layered on the daily curve to fake multi-timescale
// jitter: (period ms, amplitude in utilization points).
var utilBands = [4]struct {
	periodMs float64
	amp      float64
	phase    float64
}{
	{3600000, 6, 0.3},
	{300000, 8, 0.7},
	{60000, 4, 1.3},
	{15000, 2, 2.1},
}

// gpuUtilization computes the instantaneous utilization for a GPU.
// Base load follows the daily curve, shifted by a fixed per-GPU offset
// in [-15, +15), plus four sinusoidal bands keyed to the clock.
func (s *Simulator) gpuUtilization(idx int) float64 {
	base := dailyPattern(s.hourFloat()) * 100
	offset := smoothNoise(float64(idx)*17)*30 - 15
	nowMs := float64(s.nowMs())
	var bands float64
	for _, b := range utilBands {
		bands += math.Sin(nowMs/b.periodMs+float64(idx)*b.phase) * b.amp
	}
	return clamp(base+offset+bands, 0, 100)
}

// gpuStatus derives the GPU state with an ordered guard chain: error
// first, then maintenance, then idle, else busy. Fault rolls are keyed
// on time buckets (10 min for error, 30 min for maintenance) so a fault
// persists for the bucket instead of flickering per poll.
func (s *Simulator) gpuStatus(idx int, util float64) string {
	nowMs := s.nowMs()
	if smoothNoise(float64(idx)*7919+timeBucket(nowMs, 600000)) > 0.97 {
		return "error"
	}
	if smoothNoise(float64(idx)*104729+timeBucket(nowMs, 1800000)) > 0.95 {
		return "maintenance"
	}
	if util < 15 {
		return "idle"
	}
	return "busy"
}

// gpuTemperature maps utilization to die temperature with a small
// time-seeded wobble. Roughly 34C idle, high 80s flat out.
func (s *Simulator) gpuTemperature(idx int, util float64) float64 {
	wobble := math.Sin(float64(s.nowMs())/45000+float64(idx)*0.9) * 1.5
	return round1(clamp(34+util*0.55+wobble, 30, 96))
}

// gpuPower interpolates idle-to-max draw slightly superlinearly in
// utilization, with per-GPU board variance and clock wobble.
func (s *Simulator) gpuPower(idx int, util float64, spec GpuModelSpec) float64 {
	span := float64(spec.MaxPowerW - spec.IdlePowerW)
	draw := float64(spec.IdlePowerW) + span*math.Pow(util/100, 1.1)
	variance := smoothNoise(fieldSeed(idx, "span"))*0.04 - 0.02
	wobble := math.Sin(float64(s.nowMs())/30000+float64(idx)*1.7) * 5
	return round1(clamp(draw*(1+variance)+wobble, float64(spec.IdlePowerW)*0.9, float64(spec.MaxPowerW)))
}

// gpuMemoryUsed synthesizes VRAM in use: a resident floor plus a share
// that tracks utilization.
func (s *Simulator) gpuMemoryUsed(idx int, util float64, spec GpuModelSpec) float64 {
	vram := float64(spec.VramGB)
	jitter := smoothNoise(fieldSeed(idx, "usage"))*0.08 - 0.04
	return round1(clamp(vram*(0.18+util/100*0.72+jitter), 0, vram))
}

// gpuSummary evaluates the full per-GPU view at the current clock.
func (s *Simulator) gpuSummary(g GpuInstance) GpuSummary {
	util := s.gpuUtilization(g.Index)
	status := s.gpuStatus(g.Index, util)
	if status == "idle" || status == "maintenance" || status == "error" {
		// A GPU that is not running work reports residual utilization only.
		util = clamp(util*0.1, 0, 8)
	}
	return GpuSummary{
		ID:           g.ID(),
		Model:        g.Model.Model,
		DcID:         g.DcID,
		ClusterID:    g.ClusterID,
		NodeID:       g.NodeID,
		Status:       status,
		Utilization:  round1(util),
		TemperatureC: s.gpuTemperature(g.Index, util),
		PowerW:       s.gpuPower(g.Index, util, g.Model),
		MemoryUsedGB: s.gpuMemoryUsed(g.Index, util, g.Model),
		MemoryGB:     g.Model.VramGB,
		MigCapable:   g.Model.MigCapable,
	}
}

// Gpus lists GPUs, optionally filtered by node and/or status. The full
// fleet is large, so callers are expected to filter; an unfiltered call
// still works and returns everything.
func (s *Simulator) Gpus(nodeID, status string) []GpuSummary {
	out := []GpuSummary{}
	for _, g := range s.gpus {
		if nodeID != "" && g.NodeID != nodeID {
			continue
		}
		sum := s.gpuSummary(g)
		if status != "" && sum.Status != status {
			continue
		}
		out = append(out, sum)
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package sim

import (
	"fmt"
	"strings"
	"time"
)

// GpuInstance is one physical GPU in the expanded topology. The flat
// Index is its only durable identity; every per-GPU noise lookup is
// keyed off it.
type GpuInstance struct {
	Index        int
	DcID         string
	DcName       string
	Region       string
	ClusterID    string
	ClusterIndex int
	NodeID       string
	NodeIndex    int
	Model        GpuModelSpec
}

// ID renders the stable external identifier, e.g. "gpu-0142".
func (g GpuInstance) ID() string {
	return fmt.Sprintf("gpu-%04d", g.Index)
}

// Simulator synthesizes all dashboard state from static catalogs,
// deterministic noise and the injected clock. All read paths are pure;
// the replay store is the only mutable member.
type Simulator struct {
	now    func() time.Time
	gpus   []GpuInstance
	Replay *ReplayStore
}

// New builds a simulator on the wall clock.
func New() *Simulator {
	return NewWithClock(time.Now)
}

// NewWithClock builds a simulator with an injectable clock. Topology
// expansion happens here, exactly once, before any traffic is served.
func NewWithClock(now func() time.Time) *Simulator {
	return &Simulator{
		now:    now,
		gpus:   expandTopology(),
		Replay: NewReplayStore(),
	}
}

// expandTopology walks the static data-center configs and lays out every
// GPU in DC-then-model-then-count order. Within each (dc, model) block,
// GPU i goes to cluster i mod clusterCount and node i/8. Deterministic:
// the same configs always produce the same flat indices.
func expandTopology() []GpuInstance {
	var gpus []GpuInstance
	idx := 0
	for _, dc := range dataCenterConfigs {
		for _, model := range gpuModelOrder {
			count, ok := dc.GpuCounts[model]
			if !ok {
				continue
			}
			spec := gpuModelByName(model)
			slug := modelSlug(model)
			for i := 0; i < count; i++ {
				clusterIdx := i % dc.ClusterCount
				nodeIdx := i / 8
				gpus = append(gpus, GpuInstance{
					Index:        idx,
					DcID:         dc.ID,
					DcName:       dc.Name,
					Region:       dc.Region,
					ClusterID:    fmt.Sprintf("%s-c%02d", dc.ID, clusterIdx),
					ClusterIndex: clusterIdx,
					NodeID:       fmt.Sprintf("%s-%s-n%03d", dc.ID, slug, nodeIdx),
					NodeIndex:    nodeIdx,
					Model:        *spec,
				})
				idx++
			}
		}
	}
	return gpus
}

// modelSlug shortens "H100-80GB" to "h100" for embedding in node IDs.
func modelSlug(model string) string {
	s := strings.ToLower(model)
	if i := strings.Index(s, "-"); i > 0 {
		return s[:i]
	}
	return s
}

// TotalGpus is the fleet size.
func (s *Simulator) TotalGpus() int { return len(s.gpus) }

// nowMs is the current clock in epoch milliseconds.
func (s *Simulator) nowMs() int64 {
	return s.now().UnixMilli()
}

// hourFloat is the local time of day as a fraction, e.g. 14.5 for 14:30.
func (s *Simulator) hourFloat() float64 {
	t := s.now()
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

package sim

import (
	"errors"
	"math"
	"sync"
	"time"
)

// ErrUnknownScenario is returned when a replay start names a scenario
// that is not in the catalog.
var ErrUnknownScenario = errors.New("unknown scenario")

// ErrNoActiveReplay is returned when replay metrics are requested while
// no scenario is loaded.
var ErrNoActiveReplay = errors.New("no active replay")

// ReplayScenario is a catalog entry for one scripted narrative.
type ReplayScenario struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	DurationMinutes int      `json:"duration_minutes"`
	Tags            []string `json:"tags"`
}

// ReplayEvent is one authored timeline entry with its absolute
// timestamp resolved against the replay base time.
type ReplayEvent struct {
	Timestamp   string `json:"timestamp"`
	OffsetMs    int64  `json:"offset_ms"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// ReplayMetrics holds the four precomputed series for the active
// scenario, covering its whole duration.
type ReplayMetrics struct {
	Utilization []MetricPoint `json:"utilization"`
	Revenue     []MetricPoint `json:"revenue"`
	QueueDepth  []MetricPoint `json:"queue_depth"`
	Latency     []MetricPoint `json:"latency"`
}

// ReplayState is the singleton produced by a start call: the full event
// list and metric series for the loaded scenario.
type ReplayState struct {
	Scenario ReplayScenario `json:"scenario"`
	BaseTime string         `json:"base_time"`
	Events   []ReplayEvent  `json:"events"`
	Metrics  ReplayMetrics  `json:"metrics"`
}

type eventDef struct {
	offsetMin   float64
	title       string
	description string
	severity    string
}

// curveFunc evaluates the four metric values at progress p in [0,1].
// Pure function of p: stateless, re-evaluable at any seek position.
type curveFunc func(p float64) (util, revenue, queueDepth, latency float64)

type scenarioDef struct {
	ReplayScenario
	events []eventDef
	curves curveFunc
}

// lerp interpolates a..b by t clamped to [0,1].
func lerp(a, b, t float64) float64 {
	t = clamp(t, 0, 1)
	return a + (b-a)*t
}

var scenarioDefs = []scenarioDef{
	{
		ReplayScenario: ReplayScenario{
			ID: "marketing-spike", Name: "Marketing Spike",
			Description: "A product launch campaign drives a sudden surge of inference traffic that saturates the shared pools before autoscaling absorbs it.",
			DurationMinutes: 30, Tags: []string{"traffic", "autoscaling"},
		},
		events: []eventDef{
			{0, "Baseline traffic", "Fleet at typical mid-morning load.", "info"},
			{3, "Campaign goes live", "Marketing email and social push begin.", "info"},
			{5, "Traffic climbing", "Inference RPS up 60% over baseline.", "info"},
			{8, "Queue depth rising", "Shared inference queue backing up.", "warning"},
			{11, "Latency SLO at risk", "P99 latency approaching SLO ceiling.", "warning"},
			{14, "Autoscaler engaged", "Inference pools scaling out across regions.", "info"},
			{18, "Peak traffic", "Request rate tops out at 2.4x baseline.", "warning"},
			{22, "Capacity caught up", "New replicas serving, queue draining.", "info"},
			{26, "Latency recovered", "P99 back inside SLO.", "info"},
			{29, "Traffic settling", "Load decaying toward a new, higher baseline.", "info"},
		},
		curves: func(p float64) (u, r, q, l float64) {
			switch {
			case p < 0.12:
				u = lerp(46, 52, p/0.12)
			case p < 0.35:
				u = lerp(52, 86, (p-0.12)/0.23)
			case p < 0.62:
				u = 86 + 5*math.Sin((p-0.35)/0.27*math.Pi)
			default:
				u = lerp(88, 58, (p-0.62)/0.38)
			}
			r = u * 9.5
			switch {
			case p < 0.2:
				q = lerp(8, 14, p/0.2)
			case p < 0.5:
				q = lerp(14, 72, (p-0.2)/0.3)
			case p < 0.72:
				q = lerp(72, 30, (p-0.5)/0.22)
			default:
				q = lerp(30, 12, (p-0.72)/0.28)
			}
			l = 110 + q*4.6
			return
		},
	},
	{
		ReplayScenario: ReplayScenario{
			ID: "datacenter-outage", Name: "Data Center Outage",
			Description: "A power event takes the Frankfurt site offline; traffic fails over to Dublin while the site is restored.",
			DurationMinutes: 45, Tags: []string{"outage", "failover"},
		},
		events: []eventDef{
			{0, "All sites nominal", "Six data centers operational.", "info"},
			{4, "Utility power dip", "Frankfurt reporting a feeder fault.", "warning"},
			{6, "Site on generators", "UPS bridged; generators carrying load.", "warning"},
			{9, "Generator trip", "Generator B tripped, partial rack loss.", "critical"},
			{11, "Frankfurt offline", "Site isolated; workloads terminated.", "critical"},
			{13, "Failover initiated", "Jobs requeued to Dublin and Ashburn.", "warning"},
			{20, "Failover complete", "Priority workloads running at fallback sites.", "info"},
			{30, "Utility power restored", "Feeder repaired; site power stable.", "info"},
			{36, "Site rejoining", "Frankfurt racks returning to the ready pool.", "info"},
			{43, "Fleet rebalanced", "Workload placement back to normal.", "info"},
		},
		curves: func(p float64) (u, r, q, l float64) {
			switch {
			case p < 0.2:
				u = lerp(62, 60, p/0.2)
			case p < 0.27:
				u = lerp(60, 38, (p-0.2)/0.07)
			case p < 0.65:
				u = lerp(38, 52, (p-0.27)/0.38)
			default:
				u = lerp(52, 61, (p-0.65)/0.35)
			}
			r = u * 8.2
			switch {
			case p < 0.2:
				q = 10
			case p < 0.45:
				q = lerp(10, 95, (p-0.2)/0.25)
			case p < 0.8:
				q = lerp(95, 25, (p-0.45)/0.35)
			default:
				q = lerp(25, 12, (p-0.8)/0.2)
			}
			l = 130 + q*5.2
			return
		},
	},
	{
		ReplayScenario: ReplayScenario{
			ID: "model-launch", Name: "Model Launch",
			Description: "A flagship model release ramps adoption over an hour, lifting training and inference load to a sustained new plateau.",
			DurationMinutes: 60, Tags: []string{"traffic", "capacity"},
		},
		events: []eventDef{
			{0, "Release published", "New flagship model available to all tiers.", "info"},
			{6, "Early adopters", "First wave of fine-tune jobs submitted.", "info"},
			{15, "Adoption accelerating", "Endpoint deployments doubling hourly.", "info"},
			{24, "H100 pool contended", "Training queue wait above target.", "warning"},
			{33, "Burst quotas granted", "Enterprise tenants approved for burst capacity.", "info"},
			{42, "Load stabilizing", "Fleet settling at elevated utilization.", "info"},
			{52, "Capacity review", "Forecast updated for sustained demand.", "info"},
			{58, "New baseline", "Utilization plateau ~20% above prior norm.", "info"},
		},
		curves: func(p float64) (u, r, q, l float64) {
			switch {
			case p < 0.4:
				u = lerp(55, 78, math.Pow(p/0.4, 1.6))
			case p < 0.7:
				u = lerp(78, 84, (p-0.4)/0.3)
			default:
				u = 84 + 2*math.Sin((p-0.7)/0.3*2*math.Pi)
			}
			r = u * 10.4
			q = lerp(12, 48, math.Pow(p, 1.3))
			l = 120 + u*1.8
			return
		},
	},
	{
		ReplayScenario: ReplayScenario{
			ID: "billing-anomaly", Name: "Billing Anomaly",
			Description: "A metering bug double-counts spot usage; spend alerts fire until the pipeline is corrected and invoices are reconciled.",
			DurationMinutes: 40, Tags: []string{"billing", "incident"},
		},
		events: []eventDef{
			{0, "Nominal spend rate", "Metering pipeline healthy.", "info"},
			{5, "Spend rate deviation", "Hourly spend 2x trailing average.", "warning"},
			{9, "Tenant reports", "Two tenants flag unexpected charges.", "warning"},
			{14, "Root cause found", "Spot usage events ingested twice after retry bug.", "info"},
			{19, "Pipeline patched", "Deduplication fix deployed to metering.", "info"},
			{26, "Backfill running", "Recomputing affected usage windows.", "info"},
			{34, "Invoices reconciled", "Credits issued to affected tenants.", "info"},
			{39, "Spend rate normal", "Monitoring confirms correct metering.", "info"},
		},
		curves: func(p float64) (u, r, q, l float64) {
			u = 58 + 3*math.Sin(p*4*math.Pi)
			switch {
			case p < 0.12:
				r = lerp(520, 540, p/0.12)
			case p < 0.35:
				r = lerp(540, 1080, (p-0.12)/0.23)
			case p < 0.65:
				r = lerp(1080, 980, (p-0.35)/0.3)
			default:
				r = lerp(980, 545, (p-0.65)/0.35)
			}
			q = 14 + 2*math.Sin(p*3*math.Pi)
			l = 140 + 8*math.Sin(p*5*math.Pi)
			return
		},
	},
}

// replaySamples is the number of points rendered per metric series.
const replaySamples = 61

// ReplayStore holds the single active replay. It is the only mutable
// state in the simulator; Start swaps the whole state under the lock so
// concurrent readers always see a complete scenario.
type ReplayStore struct {
	mu    sync.RWMutex
	state *ReplayState
}

// NewReplayStore returns an idle store.
func NewReplayStore() *ReplayStore {
	return &ReplayStore{}
}

// Scenarios lists the scenario catalog.
func (r *ReplayStore) Scenarios() []ReplayScenario {
	out := make([]ReplayScenario, len(scenarioDefs))
	for i, def := range scenarioDefs {
		out[i] = def.ReplayScenario
	}
	return out
}

// StartAt loads a scenario, precomputing its full event list and metric
// series anchored at the given base time. The previous state, if any,
// is replaced wholesale.
func (r *ReplayStore) StartAt(id string, base time.Time) (*ReplayState, error) {
	var def *scenarioDef
	for i := range scenarioDefs {
		if scenarioDefs[i].ID == id {
			def = &scenarioDefs[i]
			break
		}
	}
	if def == nil {
		return nil, ErrUnknownScenario
	}

	state := &ReplayState{
		Scenario: def.ReplayScenario,
		BaseTime: base.UTC().Format(time.RFC3339),
	}

	for _, ev := range def.events {
		offset := time.Duration(ev.offsetMin * float64(time.Minute))
		state.Events = append(state.Events, ReplayEvent{
			Timestamp:   base.Add(offset).UTC().Format(time.RFC3339),
			OffsetMs:    offset.Milliseconds(),
			Title:       ev.title,
			Description: ev.description,
			Severity:    ev.severity,
		})
	}

	total := time.Duration(def.DurationMinutes) * time.Minute
	for k := 0; k < replaySamples; k++ {
		p := float64(k) / float64(replaySamples-1)
		ts := base.Add(time.Duration(p * float64(total))).UTC().Format(time.RFC3339)
		u, rev, q, l := def.curves(p)
		state.Metrics.Utilization = append(state.Metrics.Utilization, MetricPoint{Timestamp: ts, Value: round1(u)})
		state.Metrics.Revenue = append(state.Metrics.Revenue, MetricPoint{Timestamp: ts, Value: round1(rev)})
		state.Metrics.QueueDepth = append(state.Metrics.QueueDepth, MetricPoint{Timestamp: ts, Value: round1(q)})
		state.Metrics.Latency = append(state.Metrics.Latency, MetricPoint{Timestamp: ts, Value: round1(l)})
	}

	r.mu.Lock()
	r.state = state
	r.mu.Unlock()
	return state, nil
}

// Events filters the active scenario's precomputed events to the
// optional [from, to] RFC3339 window. Idle store yields an empty list.
func (r *ReplayStore) Events(from, to string) []ReplayEvent {
	r.mu.RLock()
	state := r.state
	r.mu.RUnlock()
	if state == nil {
		return []ReplayEvent{}
	}
	out := []ReplayEvent{}
	for _, ev := range state.Events {
		if from != "" && ev.Timestamp < from {
			continue
		}
		if to != "" && ev.Timestamp > to {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// Metrics returns the whole precomputed series; the client does its own
// time-windowing for display.
func (r *ReplayStore) Metrics() (*ReplayMetrics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.state == nil {
		return nil, ErrNoActiveReplay
	}
	return &r.state.Metrics, nil
}

// replayAnchor is the base time for a replay started at now: today at
// 08:00 local. Recomputed per start, so restarting on a different day
// shifts absolute timestamps while relative offsets stay identical.
func replayAnchor(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 8, 0, 0, 0, now.Location())
}

// StartReplay loads the named scenario anchored at today 08:00.
func (s *Simulator) StartReplay(id string) (*ReplayState, error) {
	return s.Replay.StartAt(id, replayAnchor(s.now()))
}

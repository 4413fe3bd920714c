package sim

// GpuModelSpec describes one GPU SKU in the fleet catalog.
type GpuModelSpec struct {
	Model        string  `json:"model"`
	VramGB       int     `json:"vram_gb"`
	MaxPowerW    int     `json:"max_power_w"`
	IdlePowerW   int     `json:"idle_power_w"`
	PricePerHour float64 `json:"price_per_hour"`
	MigCapable   bool    `json:"mig_capable"`
}

// DataCenterConfig is the static definition of one data center.
type DataCenterConfig struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Location     string         `json:"location"`
	Region       string         `json:"region"`
	Lat          float64        `json:"lat"`
	Lng          float64        `json:"lng"`
	GpuCounts    map[string]int `json:"gpu_counts"`
	ClusterCount int            `json:"cluster_count"`
	NetworkGbps  int            `json:"network_gbps"`
}

// Tenant is one customer of the fabricated cloud. GpuUsed is recomputed
// on every read; everything else is immutable for the process lifetime.
type Tenant struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Tier     string  `json:"tier"`
	Contact  string  `json:"contact"`
	MRR      float64 `json:"mrr"`
	GpuQuota int     `json:"gpu_quota"`
	GpuUsed  int     `json:"gpu_used"`
}

var gpuModels = []GpuModelSpec{
	{Model: "H100-80GB", VramGB: 80, MaxPowerW: 700, IdlePowerW: 100, PricePerHour: 4.10, MigCapable: true},
	{Model: "A100-80GB", VramGB: 80, MaxPowerW: 400, IdlePowerW: 80, PricePerHour: 2.80, MigCapable: true},
	{Model: "L40S-48GB", VramGB: 48, MaxPowerW: 350, IdlePowerW: 60, PricePerHour: 1.90, MigCapable: false},
	{Model: "V100-32GB", VramGB: 32, MaxPowerW: 300, IdlePowerW: 50, PricePerHour: 0.95, MigCapable: false},
}

func gpuModelByName(name string) *GpuModelSpec {
	for i := range gpuModels {
		if gpuModels[i].Model == name {
			return &gpuModels[i]
		}
	}
	return nil
}

// Model iteration order within a data center must be stable across
// processes; map iteration is not, so configs are expanded in this order.
var gpuModelOrder = []string{"H100-80GB", "A100-80GB", "L40S-48GB", "V100-32GB"}

var dataCenterConfigs = []DataCenterConfig{
	{
		ID: "dc-ashburn", Name: "US East 1", Location: "Ashburn, VA", Region: "us-east",
		Lat: 39.04, Lng: -77.49,
		GpuCounts:    map[string]int{"H100-80GB": 128, "A100-80GB": 96, "L40S-48GB": 64, "V100-32GB": 32},
		ClusterCount: 4, NetworkGbps: 3200,
	},
	{
		ID: "dc-dalles", Name: "US West 2", Location: "The Dalles, OR", Region: "us-west",
		Lat: 45.59, Lng: -121.18,
		GpuCounts:    map[string]int{"H100-80GB": 96, "A100-80GB": 96, "L40S-48GB": 48},
		ClusterCount: 3, NetworkGbps: 3200,
	},
	{
		ID: "dc-dublin", Name: "EU West 1", Location: "Dublin, Ireland", Region: "eu-west",
		Lat: 53.35, Lng: -6.26,
		GpuCounts:    map[string]int{"H100-80GB": 64, "A100-80GB": 64, "L40S-48GB": 32, "V100-32GB": 32},
		ClusterCount: 3, NetworkGbps: 1600,
	},
	{
		ID: "dc-frankfurt", Name: "EU Central 1", Location: "Frankfurt, Germany", Region: "eu-central",
		Lat: 50.11, Lng: 8.68,
		GpuCounts:    map[string]int{"H100-80GB": 64, "A100-80GB": 48, "L40S-48GB": 32},
		ClusterCount: 2, NetworkGbps: 1600,
	},
	{
		ID: "dc-singapore", Name: "AP Southeast 1", Location: "Singapore", Region: "ap-southeast",
		Lat: 1.35, Lng: 103.82,
		GpuCounts:    map[string]int{"A100-80GB": 64, "L40S-48GB": 48, "V100-32GB": 32},
		ClusterCount: 2, NetworkGbps: 1600,
	},
	{
		ID: "dc-tokyo", Name: "AP Northeast 1", Location: "Tokyo, Japan", Region: "ap-northeast",
		Lat: 35.68, Lng: 139.69,
		GpuCounts:    map[string]int{"H100-80GB": 32, "A100-80GB": 48, "V100-32GB": 32},
		ClusterCount: 2, NetworkGbps: 800,
	},
}

var tenantCatalog = []Tenant{
	{ID: "tn-001", Name: "Vantage Labs", Tier: "enterprise", Contact: "ops@vantagelabs.ai", MRR: 182000, GpuQuota: 192},
	{ID: "tn-002", Name: "Helix Therapeutics", Tier: "enterprise", Contact: "compute@helixtx.com", MRR: 154000, GpuQuota: 160},
	{ID: "tn-003", Name: "Moonrise AI", Tier: "enterprise", Contact: "infra@moonrise.ai", MRR: 127500, GpuQuota: 128},
	{ID: "tn-004", Name: "Quantara", Tier: "enterprise", Contact: "platform@quantara.io", MRR: 98000, GpuQuota: 96},
	{ID: "tn-005", Name: "Delta Forge", Tier: "pro", Contact: "eng@deltaforge.dev", MRR: 46000, GpuQuota: 64},
	{ID: "tn-006", Name: "Nimbus Robotics", Tier: "pro", Contact: "ml@nimbusrobotics.com", MRR: 39500, GpuQuota: 48},
	{ID: "tn-007", Name: "Arclight Media", Tier: "pro", Contact: "render@arclight.tv", MRR: 35000, GpuQuota: 48},
	{ID: "tn-008", Name: "Parallax Systems", Tier: "pro", Contact: "devops@parallax.sys", MRR: 31000, GpuQuota: 40},
	{ID: "tn-009", Name: "Cobalt Analytics", Tier: "pro", Contact: "data@cobaltanalytics.co", MRR: 27500, GpuQuota: 32},
	{ID: "tn-010", Name: "Fermata Audio", Tier: "pro", Contact: "research@fermata.audio", MRR: 22000, GpuQuota: 24},
	{ID: "tn-011", Name: "Glasswing Bio", Tier: "starter", Contact: "lab@glasswing.bio", MRR: 9800, GpuQuota: 16},
	{ID: "tn-012", Name: "Ursa Minor Games", Tier: "starter", Contact: "tech@ursaminor.games", MRR: 7200, GpuQuota: 12},
	{ID: "tn-013", Name: "Tidepool Research", Tier: "starter", Contact: "hpc@tidepool.org", MRR: 6400, GpuQuota: 8},
	{ID: "tn-014", Name: "Kestrel Vision", Tier: "starter", Contact: "cv@kestrelvision.ai", MRR: 5100, GpuQuota: 8},
	{ID: "tn-015", Name: "Brightline EdTech", Tier: "starter", Contact: "it@brightline.edu", MRR: 4300, GpuQuota: 8},
	{ID: "tn-016", Name: "Sable Works", Tier: "starter", Contact: "team@sableworks.dev", MRR: 3600, GpuQuota: 4},
}

// PricingPlan is a published rate-card entry.
type PricingPlan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	GpuModel     string   `json:"gpu_model"`
	PricePerHour float64  `json:"price_per_hour"`
	Commitment   string   `json:"commitment"`
	DiscountPct  float64  `json:"discount_pct"`
	Features     []string `json:"features"`
}

var pricingPlans = []PricingPlan{
	{ID: "plan-h100-od", Name: "H100 On-Demand", GpuModel: "H100-80GB", PricePerHour: 4.10, Commitment: "none", DiscountPct: 0, Features: []string{"per-second billing", "NVLink fabric", "3.2Tbps InfiniBand"}},
	{ID: "plan-h100-1yr", Name: "H100 Reserved 1yr", GpuModel: "H100-80GB", PricePerHour: 2.87, Commitment: "1yr", DiscountPct: 30, Features: []string{"capacity guarantee", "NVLink fabric", "priority scheduling"}},
	{ID: "plan-a100-od", Name: "A100 On-Demand", GpuModel: "A100-80GB", PricePerHour: 2.80, Commitment: "none", DiscountPct: 0, Features: []string{"per-second billing", "MIG partitioning"}},
	{ID: "plan-a100-1yr", Name: "A100 Reserved 1yr", GpuModel: "A100-80GB", PricePerHour: 1.96, Commitment: "1yr", DiscountPct: 30, Features: []string{"capacity guarantee", "MIG partitioning"}},
	{ID: "plan-l40s-od", Name: "L40S On-Demand", GpuModel: "L40S-48GB", PricePerHour: 1.90, Commitment: "none", DiscountPct: 0, Features: []string{"per-second billing", "inference optimized"}},
	{ID: "plan-v100-spot", Name: "V100 Spot", GpuModel: "V100-32GB", PricePerHour: 0.48, Commitment: "none", DiscountPct: 50, Features: []string{"preemptible", "batch workloads"}},
}

// SchedulerPolicy is a fabricated scheduling policy record.
type SchedulerPolicy struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Enabled     bool   `json:"enabled"`
	Priority    int    `json:"priority"`
}

var schedulerPolicies = []SchedulerPolicy{
	{ID: "pol-bin-pack", Name: "Bin Packing", Description: "Pack jobs onto the fewest nodes to maximize idle-node power savings", Type: "placement", Enabled: true, Priority: 10},
	{ID: "pol-gang", Name: "Gang Scheduling", Description: "All-or-nothing placement for multi-GPU training jobs", Type: "placement", Enabled: true, Priority: 20},
	{ID: "pol-preempt", Name: "Spot Preemption", Description: "Preempt spot workloads when reserved capacity is requested", Type: "preemption", Enabled: true, Priority: 30},
	{ID: "pol-fairshare", Name: "Tenant Fair Share", Description: "Weighted fair queueing across tenants by quota", Type: "fairness", Enabled: true, Priority: 40},
	{ID: "pol-topo", Name: "Topology Aware", Description: "Prefer NVLink/same-rack placement for tensor-parallel jobs", Type: "placement", Enabled: false, Priority: 50},
}

// alertTemplate is the authored skeleton an Alert is stamped from.
type alertTemplate struct {
	severity string
	title    string
	variants []string
}

var alertTemplates = []alertTemplate{
	{severity: "critical", title: "GPU ECC error rate", variants: []string{"Double-bit ECC errors exceed threshold", "ECC error burst detected on HBM stack"}},
	{severity: "critical", title: "Node unreachable", variants: []string{"Node stopped responding to health probes", "BMC reports node power fault"}},
	{severity: "critical", title: "Thermal shutdown risk", variants: []string{"GPU junction temperature above 95C", "Coolant loop flow rate degraded"}},
	{severity: "warning", title: "High GPU temperature", variants: []string{"Sustained temperature above 85C", "Hotspot delta exceeds 12C"}},
	{severity: "warning", title: "Power budget pressure", variants: []string{"Rack power draw at 92% of budget", "PDU load imbalance detected"}},
	{severity: "warning", title: "NVLink degraded", variants: []string{"NVLink lane running at reduced width", "Replay count rising on NVLink 3"}},
	{severity: "warning", title: "Queue backlog growing", variants: []string{"Training queue wait time above 30m", "Inference queue depth doubled in 15m"}},
	{severity: "warning", title: "Memory fragmentation", variants: []string{"VRAM fragmentation limits large allocations", "Allocator reporting high reserved/used gap"}},
	{severity: "warning", title: "Network saturation", variants: []string{"Leaf uplink above 90% utilization", "InfiniBand congestion counters rising"}},
	{severity: "info", title: "Driver update available", variants: []string{"New datacenter driver rollout staged", "CUDA runtime patch pending on fleet"}},
	{severity: "info", title: "Maintenance scheduled", variants: []string{"Rack maintenance window announced", "Firmware update scheduled for cluster"}},
	{severity: "info", title: "Autoscale event", variants: []string{"Inference pool scaled up", "Idle capacity reclaimed from pool"}},
	{severity: "info", title: "Quota threshold", variants: []string{"Tenant crossed 80% of GPU quota", "Burst quota grant expiring soon"}},
	{severity: "info", title: "Billing anomaly check", variants: []string{"Spend rate deviates from trailing average", "Unusual off-peak usage pattern"}},
	{severity: "info", title: "Checkpoint storage", variants: []string{"Checkpoint volume at 75% capacity", "Snapshot garbage collection completed"}},
}

// Incident records are fully authored, not generated.
type Incident struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Severity  string           `json:"severity"`
	Status    string           `json:"status"`
	DcID      string           `json:"dc_id"`
	StartedAt string           `json:"started_at"`
	Summary   string           `json:"summary"`
	Updates   []IncidentUpdate `json:"updates"`
}

// IncidentUpdate is one timeline entry on an incident, oldest first.
type IncidentUpdate struct {
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

var incidentCatalog = []Incident{
	{
		ID: "inc-2041", Title: "Elevated ECC errors on Ashburn cluster 2", Severity: "major",
		Status: "resolved", DcID: "dc-ashburn", StartedAt: "2026-08-18T06:42:00Z",
		Summary: "A batch of H100 boards in cluster 2 began reporting correctable ECC error bursts after a firmware rollout.",
		Updates: []IncidentUpdate{
			{Timestamp: "2026-08-18T06:42:00Z", Status: "investigating", Message: "Automated monitoring flagged ECC error rate 40x baseline on 14 boards."},
			{Timestamp: "2026-08-18T07:15:00Z", Status: "identified", Message: "Correlated with VBIOS 96.00.61 rollout; rollout paused."},
			{Timestamp: "2026-08-18T10:03:00Z", Status: "monitoring", Message: "Affected boards rolled back and drained workloads rescheduled."},
			{Timestamp: "2026-08-18T14:30:00Z", Status: "resolved", Message: "Error rates at baseline for 4 hours; incident closed."},
		},
	},
	{
		ID: "inc-2044", Title: "Dublin inference latency regression", Severity: "minor",
		Status: "resolved", DcID: "dc-dublin", StartedAt: "2026-08-23T11:20:00Z",
		Summary: "P99 latency on shared inference endpoints in EU West rose ~35% following a router config change.",
		Updates: []IncidentUpdate{
			{Timestamp: "2026-08-23T11:20:00Z", Status: "investigating", Message: "Latency alerts firing for three endpoints in eu-west."},
			{Timestamp: "2026-08-23T12:02:00Z", Status: "identified", Message: "ECMP hash change concentrated traffic on two leaf switches."},
			{Timestamp: "2026-08-23T12:40:00Z", Status: "resolved", Message: "Config reverted; latency back within SLO."},
		},
	},
	{
		ID: "inc-2047", Title: "Singapore cooling capacity reduced", Severity: "major",
		Status: "monitoring", DcID: "dc-singapore", StartedAt: "2026-08-29T02:10:00Z",
		Summary: "One of two chiller plants offline for emergency repair; fleet in AP Southeast running with reduced thermal headroom.",
		Updates: []IncidentUpdate{
			{Timestamp: "2026-08-29T02:10:00Z", Status: "investigating", Message: "Chiller plant B tripped; facilities team dispatched."},
			{Timestamp: "2026-08-29T03:05:00Z", Status: "identified", Message: "Compressor fault confirmed; repair ETA 48h. Clock caps applied to V100 pool."},
			{Timestamp: "2026-08-29T09:00:00Z", Status: "monitoring", Message: "Temperatures stable under caps; no workload impact beyond ~4% throughput."},
		},
	},
}

// endpointDef is the authored catalog of shared inference services.
type endpointDef struct {
	id        string
	name      string
	model     string
	gpuModel  string
	region    string
	replicas  int
	baseRps   float64
	baseP50Ms float64
}

var endpointDefs = []endpointDef{
	{id: "ep-chat-70b", name: "chat-70b", model: "llama-3.1-70b-instruct", gpuModel: "H100-80GB", region: "us-east", replicas: 12, baseRps: 340, baseP50Ms: 420},
	{id: "ep-chat-8b", name: "chat-8b", model: "llama-3.1-8b-instruct", gpuModel: "A100-80GB", region: "us-east", replicas: 8, baseRps: 910, baseP50Ms: 95},
	{id: "ep-embed", name: "embeddings-large", model: "bge-large-en-v1.5", gpuModel: "L40S-48GB", region: "us-west", replicas: 6, baseRps: 2400, baseP50Ms: 18},
	{id: "ep-vision", name: "vision-qa", model: "qwen2-vl-72b", gpuModel: "H100-80GB", region: "eu-west", replicas: 4, baseRps: 120, baseP50Ms: 640},
	{id: "ep-code", name: "code-complete", model: "deepseek-coder-33b", gpuModel: "A100-80GB", region: "us-west", replicas: 6, baseRps: 480, baseP50Ms: 210},
	{id: "ep-whisper", name: "speech-to-text", model: "whisper-large-v3", gpuModel: "L40S-48GB", region: "eu-central", replicas: 4, baseRps: 260, baseP50Ms: 150},
	{id: "ep-rerank", name: "rerank", model: "bge-reranker-v2", gpuModel: "V100-32GB", region: "ap-southeast", replicas: 3, baseRps: 1500, baseP50Ms: 24},
	{id: "ep-sdxl", name: "image-gen", model: "sdxl-turbo", gpuModel: "L40S-48GB", region: "ap-northeast", replicas: 4, baseRps: 85, baseP50Ms: 980},
}

// queueDef is the authored catalog of scheduler queues.
type queueDef struct {
	id        string
	name      string
	partition string
	maxDepth  int
	baseWait  float64 // minutes at nominal load
}

var queueDefs = []queueDef{
	{id: "q-train-high", name: "training-high", partition: "h100", maxDepth: 64, baseWait: 45},
	{id: "q-train-std", name: "training-standard", partition: "a100", maxDepth: 96, baseWait: 25},
	{id: "q-inference", name: "inference", partition: "l40s", maxDepth: 48, baseWait: 4},
	{id: "q-batch", name: "batch", partition: "mixed", maxDepth: 128, baseWait: 90},
	{id: "q-spot", name: "spot", partition: "v100", maxDepth: 160, baseWait: 140},
}

// APIKey is a fabricated credential record; the secret is always masked.
type APIKey struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Prefix    string `json:"prefix"`
	Scope     string `json:"scope"`
	CreatedAt string `json:"created_at"`
	LastUsed  string `json:"last_used"`
}

var apiKeyCatalog = []APIKey{
	{ID: "key-01", Name: "ci-deploy", Prefix: "cx_live_a3f1", Scope: "jobs:write", CreatedAt: "2026-03-12T09:00:00Z"},
	{ID: "key-02", Name: "grafana-readonly", Prefix: "cx_live_77b2", Scope: "metrics:read", CreatedAt: "2026-04-02T14:30:00Z"},
	{ID: "key-03", Name: "billing-export", Prefix: "cx_live_c9d4", Scope: "billing:read", CreatedAt: "2026-05-21T11:15:00Z"},
	{ID: "key-04", Name: "notebook-dev", Prefix: "cx_test_1e08", Scope: "jobs:write", CreatedAt: "2026-07-08T16:45:00Z"},
}

// Webhook is a fabricated outbound notification target.
type Webhook struct {
	ID         string   `json:"id"`
	URL        string   `json:"url"`
	Events     []string `json:"events"`
	Active     bool     `json:"active"`
	LastStatus int      `json:"last_status"`
	LastSent   string   `json:"last_sent"`
}

var webhookCatalog = []Webhook{
	{ID: "wh-01", URL: "https://hooks.slack.com/services/T0000/B0000/demo", Events: []string{"alert.critical", "incident.opened"}, Active: true},
	{ID: "wh-02", URL: "https://ops.vantagelabs.ai/corex/events", Events: []string{"job.completed", "job.failed"}, Active: true},
	{ID: "wh-03", URL: "https://pagerduty.example.com/integrations/corex", Events: []string{"alert.critical"}, Active: false},
}

// Job name fragments combined per index to synthesize workload names.
var jobNamePrefixes = []string{
	"llama3-finetune", "sdxl-train", "whisper-distill", "bert-pretrain",
	"moe-router-train", "vit-classify", "rlhf-ppo", "embed-index",
	"protein-fold", "render-batch", "ctr-model", "asr-eval",
}

var jobPriorities = []string{"low", "normal", "high", "critical"}

// Log text templates for the monitoring feed, by level.
var logComponents = []string{"scheduler", "allocator", "node-agent", "billing", "api-gateway", "telemetry", "autoscaler"}

var logTemplatesByLevel = map[string][]string{
	"error": {
		"failed to drain node: workload still attached",
		"ECC error threshold exceeded, marking device unhealthy",
		"allocation request rejected: quota exhausted",
	},
	"warn": {
		"queue wait time above target",
		"node heartbeat delayed",
		"power budget nearing rack limit",
		"retrying metric flush after timeout",
	},
	"info": {
		"job admitted to queue",
		"allocation bound to node",
		"checkpoint uploaded",
		"autoscaler adjusted replica count",
		"invoice draft generated",
		"node returned to ready pool",
	},
}

var activityTemplates = []string{
	"submitted job %s",
	"cancelled job %s",
	"scaled endpoint %s",
	"acknowledged alert on %s",
	"created API key %s",
	"updated quota for %s",
	"exported billing report for %s",
}

package sim

import (
	"fmt"
	"math"
	"time"
)

// Job index-range buckets. Status is fixed by index, never by elapsed
// time, so category ratios hold no matter when the fleet is polled.
const (
	jobCount          = 150
	jobRunningBound   = 25
	jobQueuedBound    = 45
	jobCompletedBound = 130
	jobFailedBound    = 145
)

var jobGpuCounts = []int{1, 2, 4, 8}

// Job is one synthesized workload.
type Job struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	TenantID    string  `json:"tenant_id"`
	TenantName  string  `json:"tenant_name"`
	GpuModel    string  `json:"gpu_model"`
	GpuCount    int     `json:"gpu_count"`
	DcID        string  `json:"dc_id"`
	Queue       string  `json:"queue"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	Progress    float64 `json:"progress"`
	SubmittedAt string  `json:"submitted_at"`
	StartedAt   string  `json:"started_at,omitempty"`
	CompletedAt string  `json:"completed_at,omitempty"`
	CostUSD     float64 `json:"cost_usd"`
}

// Task is the legacy alias view of a job kept for older dashboard pages.
type Task struct {
	ID       string  `json:"id"`
	JobID    string  `json:"job_id"`
	Name     string  `json:"name"`
	Tenant   string  `json:"tenant"`
	Status   string  `json:"status"`
	Progress float64 `json:"progress"`
}

func jobStatusForIndex(i int) string {
	switch {
	case i < jobRunningBound:
		return "running"
	case i < jobQueuedBound:
		return "queued"
	case i < jobCompletedBound:
		return "completed"
	case i < jobFailedBound:
		return "failed"
	default:
		return "cancelled"
	}
}

// jobAt synthesizes job i at the current clock. Every attribute comes
// from its own decorrelated field seed; the submit offset is re-derived
// identically on each call, so the job keeps its identity without being
// stored anywhere.
func (s *Simulator) jobAt(i int) Job {
	now := s.now()
	tenant := tenantCatalog[randIndex(fieldSeed(i, "tenant"), len(tenantCatalog))]
	spec := gpuModels[randIndex(fieldSeed(i, "gputype"), len(gpuModels))]
	dc := dataCenterConfigs[randIndex(fieldSeed(i, "dc"), len(dataCenterConfigs))]
	queue := queueDefs[randIndex(fieldSeed(i, "queue"), len(queueDefs))]
	prefix := jobNamePrefixes[randIndex(fieldSeed(i, "model"), len(jobNamePrefixes))]
	gpuCount := jobGpuCounts[randIndex(fieldSeed(i, "count"), len(jobGpuCounts))]
	priority := jobPriorities[randIndex(fieldSeed(i, "priority"), len(jobPriorities))]

	submitOffset := time.Duration(fieldNoise(i, "offset") * 72 * float64(time.Hour))
	duration := time.Duration((1 + fieldNoise(i, "duration")*19) * float64(time.Hour))
	submittedAt := now.Add(-submitOffset)

	j := Job{
		ID:          fmt.Sprintf("job-%04d", i),
		Name:        fmt.Sprintf("%s-%03d", prefix, i),
		TenantID:    tenant.ID,
		TenantName:  tenant.Name,
		GpuModel:    spec.Model,
		GpuCount:    gpuCount,
		DcID:        dc.ID,
		Queue:       queue.name,
		Priority:    priority,
		Status:      jobStatusForIndex(i),
		SubmittedAt: submittedAt.UTC().Format(time.RFC3339),
	}

	hourly := spec.PricePerHour * float64(gpuCount)
	switch j.Status {
	case "running":
		j.StartedAt = j.SubmittedAt
		elapsed := now.Sub(submittedAt)
		// Never shows 100 while still running.
		j.Progress = clamp(elapsed.Hours()/duration.Hours()*100, 1, 95)
		j.CostUSD = round2(hourly * elapsed.Hours())
	case "queued":
		j.Progress = 0
	case "completed":
		j.StartedAt = j.SubmittedAt
		j.CompletedAt = submittedAt.Add(duration).UTC().Format(time.RFC3339)
		j.Progress = 100
		j.CostUSD = round2(hourly * duration.Hours())
	case "failed", "cancelled":
		frac := 0.1 + fieldNoise(i, "status")*0.8
		partial := time.Duration(float64(duration) * frac)
		j.StartedAt = j.SubmittedAt
		j.CompletedAt = submittedAt.Add(partial).UTC().Format(time.RFC3339)
		j.Progress = round1(frac * 100)
		j.CostUSD = round2(hourly * partial.Hours())
	}
	j.Progress = round1(j.Progress)
	return j
}

// Jobs lists synthesized jobs with optional status and tenant filters.
func (s *Simulator) Jobs(status, tenantID string) []Job {
	out := []Job{}
	for i := 0; i < jobCount; i++ {
		j := s.jobAt(i)
		if status != "" && j.Status != status {
			continue
		}
		if tenantID != "" && j.TenantID != tenantID {
			continue
		}
		out = append(out, j)
	}
	return out
}

// Job looks up one job by id; nil when the id is outside the fleet.
func (s *Simulator) Job(id string) *Job {
	var i int
	if _, err := fmt.Sscanf(id, "job-%d", &i); err != nil || i < 0 || i >= jobCount {
		return nil
	}
	j := s.jobAt(i)
	return &j
}

// Tasks is the legacy alias view over the job list.
func (s *Simulator) Tasks() []Task {
	out := make([]Task, 0, jobCount)
	for i := 0; i < jobCount; i++ {
		j := s.jobAt(i)
		out = append(out, Task{
			ID:       fmt.Sprintf("task-%04d", i),
			JobID:    j.ID,
			Name:     j.Name,
			Tenant:   j.TenantName,
			Status:   j.Status,
			Progress: j.Progress,
		})
	}
	return out
}

// Queue is one scheduler queue with live depth and wait figures.
type Queue struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Partition      string  `json:"partition"`
	Depth          int     `json:"depth"`
	MaxDepth       int     `json:"max_depth"`
	AvgWaitMinutes float64 `json:"avg_wait_minutes"`
	Status         string  `json:"status"`
}

// Queues evaluates every scheduler queue. Depth follows the daily curve
// with a 5-minute-bucketed noise roll so it moves but doesn't flicker.
func (s *Simulator) Queues() []Queue {
	load := dailyPattern(s.hourFloat())
	nowMs := s.nowMs()
	out := make([]Queue, 0, len(queueDefs))
	for qi, def := range queueDefs {
		roll := smoothNoise(fieldSeed(qi, "depth") + timeBucket(nowMs, 300000))
		depth := int(math.Floor(float64(def.maxDepth) * load * (0.4 + roll*0.6)))
		status := "healthy"
		if float64(depth) > float64(def.maxDepth)*0.8 {
			status = "backlogged"
		}
		out = append(out, Queue{
			ID: def.id, Name: def.name, Partition: def.partition,
			Depth: depth, MaxDepth: def.maxDepth,
			AvgWaitMinutes: round1(def.baseWait * (0.5 + load)),
			Status:         status,
		})
	}
	return out
}

// Policies returns the static scheduler policy catalog.
func (s *Simulator) Policies() []SchedulerPolicy {
	return schedulerPolicies
}

// Tenants returns the tenant registry with live quota usage. Usage is
// rolled on a 10-minute bucket so it drifts slowly between polls.
func (s *Simulator) Tenants() []Tenant {
	nowMs := s.nowMs()
	out := make([]Tenant, len(tenantCatalog))
	for i, t := range tenantCatalog {
		roll := smoothNoise(fieldSeed(i, "usage") + timeBucket(nowMs, 600000))
		t.GpuUsed = int(math.Floor(float64(t.GpuQuota) * (0.3 + roll*0.65)))
		out[i] = t
	}
	return out
}

// Allocation is a tenant's current GPU reservation.
type Allocation struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	Tenant   string `json:"tenant"`
	GpuModel string `json:"gpu_model"`
	GpuCount int    `json:"gpu_count"`
	DcID     string `json:"dc_id"`
	Since    string `json:"since"`
}

// Allocations derives one reservation per tenant from current usage.
func (s *Simulator) Allocations() []Allocation {
	now := s.now()
	out := []Allocation{}
	for i, t := range s.Tenants() {
		if t.GpuUsed == 0 {
			continue
		}
		spec := gpuModels[randIndex(fieldSeed(i, "gputype"), len(gpuModels))]
		dc := dataCenterConfigs[randIndex(fieldSeed(i, "dc"), len(dataCenterConfigs))]
		since := now.Add(-time.Duration(fieldNoise(i, "age") * 14 * 24 * float64(time.Hour)))
		out = append(out, Allocation{
			ID:       fmt.Sprintf("alloc-%s", t.ID),
			TenantID: t.ID,
			Tenant:   t.Name,
			GpuModel: spec.Model,
			GpuCount: t.GpuUsed,
			DcID:     dc.ID,
			Since:    since.UTC().Format(time.RFC3339),
		})
	}
	return out
}

package sim

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// DataCenter is the aggregate view over one data-center scope.
type DataCenter struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Location       string         `json:"location"`
	Region         string         `json:"region"`
	Lat            float64        `json:"lat"`
	Lng            float64        `json:"lng"`
	TotalGpus      int            `json:"total_gpus"`
	ActiveGpus     int            `json:"active_gpus"`
	AvgUtilization float64        `json:"avg_utilization"`
	PowerKW        float64        `json:"power_kw"`
	StatusCounts   map[string]int `json:"status_counts"`
	ClusterCount   int            `json:"cluster_count"`
	NetworkGbps    int            `json:"network_gbps"`
	Status         string         `json:"status"`
}

// Cluster is the aggregate view over one cluster scope.
type Cluster struct {
	ID             string  `json:"id"`
	DcID           string  `json:"dc_id"`
	Name           string  `json:"name"`
	TotalGpus      int     `json:"total_gpus"`
	ActiveGpus     int     `json:"active_gpus"`
	AvgUtilization float64 `json:"avg_utilization"`
	PowerKW        float64 `json:"power_kw"`
	NodeCount      int     `json:"node_count"`
}

// Node is the aggregate view over one node (up to 8 GPUs of one model).
type Node struct {
	ID             string  `json:"id"`
	ClusterID      string  `json:"cluster_id"`
	DcID           string  `json:"dc_id"`
	GpuModel       string  `json:"gpu_model"`
	TotalGpus      int     `json:"total_gpus"`
	AvgUtilization float64 `json:"avg_utilization"`
	PowerKW        float64 `json:"power_kw"`
	Status         string  `json:"status"`
}

// scopeStats reduces a set of evaluated GPUs. Empty scopes reduce to
// zeros, never a division by zero.
type scopeStats struct {
	total    int
	active   int
	avgUtil  float64
	powerKW  float64
	byStatus map[string]int
}

func (s *Simulator) reduce(gpus []GpuInstance) scopeStats {
	st := scopeStats{byStatus: map[string]int{}}
	utils := make([]float64, 0, len(gpus))
	for _, g := range gpus {
		sum := s.gpuSummary(g)
		utils = append(utils, sum.Utilization)
		st.powerKW += sum.PowerW / 1000
		st.byStatus[sum.Status]++
		if sum.Status == "busy" {
			st.active++
		}
	}
	st.total = len(gpus)
	if len(utils) > 0 {
		st.avgUtil = round1(stat.Mean(utils, nil))
	}
	st.powerKW = round1(st.powerKW)
	return st
}

func (s *Simulator) gpusWhere(pred func(GpuInstance) bool) []GpuInstance {
	var out []GpuInstance
	for _, g := range s.gpus {
		if pred(g) {
			out = append(out, g)
		}
	}
	return out
}

// DataCenters evaluates every configured data center.
func (s *Simulator) DataCenters() []DataCenter {
	out := make([]DataCenter, 0, len(dataCenterConfigs))
	for _, cfg := range dataCenterConfigs {
		id := cfg.ID
		st := s.reduce(s.gpusWhere(func(g GpuInstance) bool { return g.DcID == id }))
		status := "operational"
		if st.total > 0 && float64(st.byStatus["error"])/float64(st.total) > 0.02 {
			status = "degraded"
		}
		out = append(out, DataCenter{
			ID: cfg.ID, Name: cfg.Name, Location: cfg.Location, Region: cfg.Region,
			Lat: cfg.Lat, Lng: cfg.Lng,
			TotalGpus: st.total, ActiveGpus: st.active,
			AvgUtilization: st.avgUtil, PowerKW: st.powerKW,
			StatusCounts: st.byStatus,
			ClusterCount: cfg.ClusterCount, NetworkGbps: cfg.NetworkGbps,
			Status: status,
		})
	}
	return out
}

// Clusters evaluates clusters, optionally scoped to one data center.
func (s *Simulator) Clusters(dcID string) []Cluster {
	out := []Cluster{}
	for _, cfg := range dataCenterConfigs {
		if dcID != "" && cfg.ID != dcID {
			continue
		}
		for ci := 0; ci < cfg.ClusterCount; ci++ {
			id, idx := cfg.ID, ci
			members := s.gpusWhere(func(g GpuInstance) bool {
				return g.DcID == id && g.ClusterIndex == idx
			})
			st := s.reduce(members)
			nodes := map[string]bool{}
			clusterID := ""
			for _, g := range members {
				nodes[g.NodeID] = true
				clusterID = g.ClusterID
			}
			if clusterID == "" {
				continue
			}
			out = append(out, Cluster{
				ID: clusterID, DcID: cfg.ID,
				Name:      clusterName(cfg.Name, ci),
				TotalGpus: st.total, ActiveGpus: st.active,
				AvgUtilization: st.avgUtil, PowerKW: st.powerKW,
				NodeCount: len(nodes),
			})
		}
	}
	return out
}

func clusterName(dcName string, idx int) string {
	letters := "ABCDEFGH"
	if idx < len(letters) {
		return dcName + " / Cluster " + string(letters[idx])
	}
	return dcName + " / Cluster"
}

// Nodes evaluates nodes, optionally scoped to one cluster. A node's
// cluster is taken from its first GPU; GPUs of a node may round-robin
// across clusters, so the filter matches any member's cluster.
func (s *Simulator) Nodes(clusterID string) []Node {
	type group struct {
		gpus     []GpuInstance
		clusters map[string]bool
	}
	groups := map[string]*group{}
	var order []string
	for _, g := range s.gpus {
		gr, ok := groups[g.NodeID]
		if !ok {
			gr = &group{clusters: map[string]bool{}}
			groups[g.NodeID] = gr
			order = append(order, g.NodeID)
		}
		gr.gpus = append(gr.gpus, g)
		gr.clusters[g.ClusterID] = true
	}

	out := []Node{}
	for _, nodeID := range order {
		gr := groups[nodeID]
		if clusterID != "" && !gr.clusters[clusterID] {
			continue
		}
		st := s.reduce(gr.gpus)
		first := gr.gpus[0]
		status := "ready"
		if st.byStatus["error"] > 0 {
			status = "degraded"
		} else if st.byStatus["maintenance"] == st.total {
			status = "maintenance"
		}
		out = append(out, Node{
			ID: nodeID, ClusterID: first.ClusterID, DcID: first.DcID,
			GpuModel:  first.Model.Model,
			TotalGpus: st.total, AvgUtilization: st.avgUtil,
			PowerKW: st.powerKW, Status: status,
		})
	}
	return out
}

// MetricPoint is one sample in a rendered time series.
type MetricPoint struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

// DcSummary is the compact per-DC row embedded in the dashboard.
type DcSummary struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	TotalGpus      int     `json:"total_gpus"`
	AvgUtilization float64 `json:"avg_utilization"`
	Status         string  `json:"status"`
}

// DashboardData is the fleet-wide aggregate for the landing view.
type DashboardData struct {
	TotalGpus          int             `json:"total_gpus"`
	ActiveGpus         int             `json:"active_gpus"`
	AvgUtilization     float64         `json:"avg_utilization"`
	TotalPowerMW       float64         `json:"total_power_mw"`
	RunningJobs        int             `json:"running_jobs"`
	QueuedJobs         int             `json:"queued_jobs"`
	ActiveAlerts       int             `json:"active_alerts"`
	RevenueMTD         float64         `json:"revenue_mtd"`
	DataCenters        []DcSummary     `json:"data_centers"`
	UtilizationHistory []MetricPoint   `json:"utilization_history"`
	RecentActivity     []ActivityEvent `json:"recent_activity"`
}

// Dashboard evaluates the landing-page aggregate.
func (s *Simulator) Dashboard() DashboardData {
	st := s.reduce(s.gpus)

	dcs := []DcSummary{}
	for _, dc := range s.DataCenters() {
		dcs = append(dcs, DcSummary{
			ID: dc.ID, Name: dc.Name, TotalGpus: dc.TotalGpus,
			AvgUtilization: dc.AvgUtilization, Status: dc.Status,
		})
	}

	running, queued := 0, 0
	for _, j := range s.Jobs("", "") {
		switch j.Status {
		case "running":
			running++
		case "queued":
			queued++
		}
	}

	active := 0
	for _, a := range s.Alerts() {
		if !a.Resolved {
			active++
		}
	}

	return DashboardData{
		TotalGpus:          st.total,
		ActiveGpus:         st.active,
		AvgUtilization:     st.avgUtil,
		TotalPowerMW:       round2(st.powerKW / 1000),
		RunningJobs:        running,
		QueuedJobs:         queued,
		ActiveAlerts:       active,
		RevenueMTD:         s.Billing().CurrentMonthRevenue,
		DataCenters:        dcs,
		UtilizationHistory: s.utilizationHistory(24),
		RecentActivity:     s.Activity(10),
	}
}

// utilizationHistory renders a trailing hourly series of fleet
// utilization from the daily curve plus per-hour noise.
func (s *Simulator) utilizationHistory(points int) []MetricPoint {
	now := s.now()
	out := make([]MetricPoint, 0, points)
	for i := points - 1; i >= 0; i-- {
		t := now.Add(-time.Duration(i) * time.Hour)
		hour := float64(t.Hour()) + float64(t.Minute())/60
		daySeed := float64(t.YearDay()*24 + t.Hour())
		v := dailyPattern(hour)*100 + smoothNoise(daySeed)*8 - 4
		out = append(out, MetricPoint{
			Timestamp: t.Truncate(time.Hour).UTC().Format(time.RFC3339),
			Value:     round1(clamp(v, 0, 100)),
		})
	}
	return out
}

// MonitoringData is the aggregate for the monitoring view.
type MonitoringData struct {
	FleetUtilization []MetricPoint  `json:"fleet_utilization"`
	AvgTemperatureC  float64        `json:"avg_temperature_c"`
	TotalPowerKW     float64        `json:"total_power_kw"`
	StatusCounts     map[string]int `json:"status_counts"`
	DcUtilization    []DcSummary    `json:"dc_utilization"`
	AlertCounts      map[string]int `json:"alert_counts"`
	Logs             []LogEntry     `json:"logs"`
}

// Monitoring evaluates the monitoring aggregate including the log feed.
func (s *Simulator) Monitoring() MonitoringData {
	st := s.reduce(s.gpus)

	temps := make([]float64, 0, len(s.gpus))
	for _, g := range s.gpus {
		util := s.gpuUtilization(g.Index)
		temps = append(temps, s.gpuTemperature(g.Index, util))
	}
	avgTemp := 0.0
	if len(temps) > 0 {
		avgTemp = round1(stat.Mean(temps, nil))
	}

	dcs := []DcSummary{}
	for _, dc := range s.DataCenters() {
		dcs = append(dcs, DcSummary{
			ID: dc.ID, Name: dc.Name, TotalGpus: dc.TotalGpus,
			AvgUtilization: dc.AvgUtilization, Status: dc.Status,
		})
	}

	alertCounts := map[string]int{}
	for _, a := range s.Alerts() {
		if !a.Resolved {
			alertCounts[a.Severity]++
		}
	}

	return MonitoringData{
		FleetUtilization: s.utilizationHistory(24),
		AvgTemperatureC:  avgTemp,
		TotalPowerKW:     st.powerKW,
		StatusCounts:     st.byStatus,
		DcUtilization:    dcs,
		AlertCounts:      alertCounts,
		Logs:             s.Logs(40),
	}
}

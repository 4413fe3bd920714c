package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/corexcloud/corex/internal/sim"
)

// Server holds dependencies for API handlers.
type Server struct {
	sim *sim.Simulator
	log *slog.Logger
}

// NewServer creates a new API server around the simulator.
func NewServer(simulator *sim.Simulator, log *slog.Logger) *Server {
	return &Server{sim: simulator, log: log}
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/data-centers", s.handleDataCenters)
	mux.HandleFunc("GET /api/clusters", s.handleClusters)
	mux.HandleFunc("GET /api/nodes", s.handleNodes)
	mux.HandleFunc("GET /api/gpus", s.handleGpus)
	mux.HandleFunc("GET /api/monitoring", s.handleMonitoring)
	mux.HandleFunc("GET /api/tenants", s.handleTenants)
	mux.HandleFunc("GET /api/jobs", s.handleListJobs)
	mux.HandleFunc("GET /api/jobs/{id}", s.handleGetJob)
	mux.HandleFunc("POST /api/jobs/{id}/cancel", s.handleCancelJob)
	mux.HandleFunc("GET /api/tasks", s.handleTasks)
	mux.HandleFunc("GET /api/queues", s.handleQueues)
	mux.HandleFunc("GET /api/policies", s.handlePolicies)
	mux.HandleFunc("GET /api/endpoints", s.handleEndpoints)
	mux.HandleFunc("GET /api/endpoints/{id}/metrics", s.handleEndpointMetrics)
	mux.HandleFunc("POST /api/endpoints/{id}/scale", s.handleScaleEndpoint)
	mux.HandleFunc("GET /api/allocations", s.handleAllocations)
	mux.HandleFunc("GET /api/billing", s.handleBilling)
	mux.HandleFunc("GET /api/pricing", s.handlePricing)
	mux.HandleFunc("GET /api/alerts", s.handleAlerts)
	mux.HandleFunc("POST /api/alerts/{id}/resolve", s.handleResolveAlert)
	mux.HandleFunc("GET /api/incidents", s.handleIncidents)
	mux.HandleFunc("GET /api/replay/scenarios", s.handleReplayScenarios)
	mux.HandleFunc("POST /api/replay/start", s.handleReplayStart)
	mux.HandleFunc("GET /api/replay/events", s.handleReplayEvents)
	mux.HandleFunc("GET /api/replay/metrics", s.handleReplayMetrics)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/api-keys", s.handleAPIKeys)
	mux.HandleFunc("GET /api/webhooks", s.handleWebhooks)
	mux.HandleFunc("/", s.handleNotFound)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Dashboard())
}

func (s *Server) handleDataCenters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.DataCenters())
}

func (s *Server) handleClusters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Clusters(r.URL.Query().Get("dc_id")))
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Nodes(r.URL.Query().Get("cluster_id")))
}

func (s *Server) handleGpus(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, s.sim.Gpus(q.Get("node_id"), q.Get("status")))
}

func (s *Server) handleMonitoring(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Monitoring())
}

func (s *Server) handleTenants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Tenants())
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, s.sim.Jobs(q.Get("status"), q.Get("tenant_id")))
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job := s.sim.Job(r.PathValue("id"))
	if job == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// handleCancelJob acknowledges the cancel without changing anything:
// jobs are regenerated from scratch on every read, so there is no
// stored record to update. The ack carries a receipt id for the client.
func (s *Server) handleCancelJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if s.sim.Job(id) == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"id":     id,
		"status": "cancel_requested",
		"ack_id": uuid.NewString(),
	})
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Tasks())
}

func (s *Server) handleQueues(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Queues())
}

func (s *Server) handlePolicies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Policies())
}

func (s *Server) handleEndpoints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Endpoints())
}

func (s *Server) handleEndpointMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, ok := s.sim.EndpointMetrics(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "endpoint not found")
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

func (s *Server) handleScaleEndpoint(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.sim.EndpointMetrics(id); !ok {
		writeError(w, http.StatusNotFound, "endpoint not found")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"id":     id,
		"status": "scale_requested",
		"ack_id": uuid.NewString(),
	})
}

func (s *Server) handleAllocations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Allocations())
}

func (s *Server) handleBilling(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Billing())
}

func (s *Server) handlePricing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Pricing())
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Alerts())
}

func (s *Server) handleResolveAlert(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusAccepted, map[string]string{
		"id":     r.PathValue("id"),
		"status": "resolve_requested",
		"ack_id": uuid.NewString(),
	})
}

func (s *Server) handleIncidents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Incidents())
}

func (s *Server) handleReplayScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Replay.Scenarios())
}

type replayStartRequest struct {
	ScenarioID string `json:"scenario_id"`
}

func (s *Server) handleReplayStart(w http.ResponseWriter, r *http.Request) {
	var req replayStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ScenarioID == "" {
		writeError(w, http.StatusBadRequest, "scenario_id is required")
		return
	}
	state, err := s.sim.StartReplay(req.ScenarioID)
	if err != nil {
		if errors.Is(err, sim.ErrUnknownScenario) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("unknown scenario %q", req.ScenarioID))
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.log.Info("replay started", "scenario", req.ScenarioID)
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleReplayEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, s.sim.Replay.Events(q.Get("from"), q.Get("to")))
}

func (s *Server) handleReplayMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := s.sim.Replay.Metrics()
	if err != nil {
		writeError(w, http.StatusNotFound, "no active replay")
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Search(r.URL.Query().Get("q")))
}

func (s *Server) handleAPIKeys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.APIKeys())
}

func (s *Server) handleWebhooks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Webhooks())
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

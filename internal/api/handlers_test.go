package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/corexcloud/corex/internal/sim"
)

func newTestServer(t *testing.T) (*Server, *http.ServeMux) {
	t.Helper()
	clock := func() time.Time {
		return time.Date(2026, 8, 30, 13, 30, 0, 0, time.UTC)
	}
	srv := NewServer(sim.NewWithClock(clock), slog.New(slog.NewTextHandler(io.Discard, nil)))
	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)
	return srv, mux
}

func doRequest(t *testing.T, mux *http.ServeMux, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHandleDataCenters(t *testing.T) {
	_, mux := newTestServer(t)
	rec := doRequest(t, mux, http.MethodGet, "/api/data-centers", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %s, want application/json", ct)
	}
	var dcs []sim.DataCenter
	decodeBody(t, rec, &dcs)
	if len(dcs) != 6 {
		t.Errorf("data centers = %d, want 6", len(dcs))
	}
}

func TestHandleListJobs_StatusFilter(t *testing.T) {
	_, mux := newTestServer(t)
	rec := doRequest(t, mux, http.MethodGet, "/api/jobs?status=running", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var jobs []sim.Job
	decodeBody(t, rec, &jobs)
	if len(jobs) == 0 {
		t.Fatal("no running jobs")
	}
	for _, j := range jobs {
		if j.Status != "running" {
			t.Errorf("job %s status = %s, want running", j.ID, j.Status)
		}
	}
}

func TestHandleGetJob(t *testing.T) {
	_, mux := newTestServer(t)

	rec := doRequest(t, mux, http.MethodGet, "/api/jobs/job-0007", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var job sim.Job
	decodeBody(t, rec, &job)
	if job.ID != "job-0007" {
		t.Errorf("job id = %s, want job-0007", job.ID)
	}

	rec = doRequest(t, mux, http.MethodGet, "/api/jobs/job-9999", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown job status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleCancelJob(t *testing.T) {
	_, mux := newTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, "/api/jobs/job-0003/cancel", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusAccepted)
	}
	var ack map[string]string
	decodeBody(t, rec, &ack)
	if ack["status"] != "cancel_requested" || ack["ack_id"] == "" {
		t.Errorf("unexpected ack %v", ack)
	}

	rec = doRequest(t, mux, http.MethodPost, "/api/jobs/job-9999/cancel", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown job status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleScaleEndpoint(t *testing.T) {
	_, mux := newTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, "/api/endpoints/ep-chat-70b/scale", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusAccepted)
	}

	rec = doRequest(t, mux, http.MethodPost, "/api/endpoints/ep-nope/scale", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown endpoint status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleEndpointMetrics(t *testing.T) {
	_, mux := newTestServer(t)

	rec := doRequest(t, mux, http.MethodGet, "/api/endpoints/ep-embed/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var series []sim.EndpointMetric
	decodeBody(t, rec, &series)
	if len(series) != 24 {
		t.Errorf("series = %d points, want 24", len(series))
	}

	rec = doRequest(t, mux, http.MethodGet, "/api/endpoints/ep-nope/metrics", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown endpoint status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleReplayFlow(t *testing.T) {
	_, mux := newTestServer(t)

	rec := doRequest(t, mux, http.MethodGet, "/api/replay/metrics", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("idle metrics status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = doRequest(t, mux, http.MethodPost, "/api/replay/start", "not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad body status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	rec = doRequest(t, mux, http.MethodPost, "/api/replay/start", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing scenario status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	rec = doRequest(t, mux, http.MethodPost, "/api/replay/start", `{"scenario_id":"nope"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown scenario status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = doRequest(t, mux, http.MethodPost, "/api/replay/start", `{"scenario_id":"marketing-spike"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("start status = %d, want %d", rec.Code, http.StatusOK)
	}
	var state sim.ReplayState
	decodeBody(t, rec, &state)
	if state.Scenario.ID != "marketing-spike" || len(state.Events) == 0 {
		t.Errorf("unexpected replay state %+v", state.Scenario)
	}

	rec = doRequest(t, mux, http.MethodGet, "/api/replay/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d, want %d", rec.Code, http.StatusOK)
	}
	var metrics sim.ReplayMetrics
	decodeBody(t, rec, &metrics)
	if len(metrics.Utilization) == 0 {
		t.Error("metrics missing utilization series")
	}

	rec = doRequest(t, mux, http.MethodGet, "/api/replay/events", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("events status = %d, want %d", rec.Code, http.StatusOK)
	}
	var events []sim.ReplayEvent
	decodeBody(t, rec, &events)
	if len(events) == 0 {
		t.Error("no replay events after start")
	}
}

func TestHandleReplayScenarios(t *testing.T) {
	_, mux := newTestServer(t)
	rec := doRequest(t, mux, http.MethodGet, "/api/replay/scenarios", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var scenarios []sim.ReplayScenario
	decodeBody(t, rec, &scenarios)
	if len(scenarios) != 4 {
		t.Errorf("scenarios = %d, want 4", len(scenarios))
	}
}

func TestHandleSearch(t *testing.T) {
	_, mux := newTestServer(t)
	rec := doRequest(t, mux, http.MethodGet, "/api/search?q=dublin", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var results []sim.SearchResult
	decodeBody(t, rec, &results)
	if len(results) == 0 {
		t.Error("no results for dublin")
	}
}

func TestHandleNotFound(t *testing.T) {
	_, mux := newTestServer(t)
	rec := doRequest(t, mux, http.MethodGet, "/api/does-not-exist", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["error"] != "Not found" {
		t.Errorf("error = %q, want %q", body["error"], "Not found")
	}
}

func TestMiddleware_CORS(t *testing.T) {
	srv, mux := newTestServer(t)
	handler := srv.Middleware([]string{"http://localhost:5173"}, mux)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow-origin = %q, want the request origin", got)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id header")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow-origin = %q for disallowed origin, want empty", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/dashboard", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestMiddleware_RequestIDEchoed(t *testing.T) {
	srv, mux := newTestServer(t)
	handler := srv.Middleware(nil, mux)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("X-Request-Id", "req-abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "req-abc-123" {
		t.Errorf("request id = %q, want req-abc-123", got)
	}
}

func TestMiddleware_RecoverPanics(t *testing.T) {
	srv, _ := newTestServer(t)
	boom := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	handler := srv.Middleware(nil, boom)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["error"] != "boom" {
		t.Errorf("error = %q, want boom", body["error"])
	}
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/corexcloud/corex/internal/sim"
)

// Client wraps HTTP calls to the CoreX API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client targeting the given base URL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// Dashboard fetches GET /api/dashboard.
func (c *Client) Dashboard(ctx context.Context) (*sim.DashboardData, error) {
	var d sim.DashboardData
	if err := c.doGet(ctx, c.baseURL+"/api/dashboard", &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Jobs fetches GET /api/jobs with optional status and tenant filters.
func (c *Client) Jobs(ctx context.Context, status, tenantID string) ([]sim.Job, error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	if tenantID != "" {
		params.Set("tenant_id", tenantID)
	}
	u := c.baseURL + "/api/jobs"
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	var jobs []sim.Job
	if err := c.doGet(ctx, u, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// DataCenters fetches GET /api/data-centers.
func (c *Client) DataCenters(ctx context.Context) ([]sim.DataCenter, error) {
	var dcs []sim.DataCenter
	if err := c.doGet(ctx, c.baseURL+"/api/data-centers", &dcs); err != nil {
		return nil, err
	}
	return dcs, nil
}

// Billing fetches GET /api/billing.
func (c *Client) Billing(ctx context.Context) (*sim.BillingData, error) {
	var b sim.BillingData
	if err := c.doGet(ctx, c.baseURL+"/api/billing", &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ReplayScenarios fetches GET /api/replay/scenarios.
func (c *Client) ReplayScenarios(ctx context.Context) ([]sim.ReplayScenario, error) {
	var scenarios []sim.ReplayScenario
	if err := c.doGet(ctx, c.baseURL+"/api/replay/scenarios", &scenarios); err != nil {
		return nil, err
	}
	return scenarios, nil
}

// StartReplay submits POST /api/replay/start for the given scenario.
func (c *Client) StartReplay(ctx context.Context, scenarioID string) (*sim.ReplayState, error) {
	body, _ := json.Marshal(map[string]string{"scenario_id": scenarioID})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/replay/start", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.readError(resp)
	}
	var state sim.ReplayState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &state, nil
}

func (c *Client) doGet(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.readError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) readError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var apiErr struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
		return fmt.Errorf("API error %d: %s", resp.StatusCode, apiErr.Error)
	}
	return fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
}

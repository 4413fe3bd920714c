package sim

import (
	"strings"
)

const searchLimit = 15

// SearchResult is one hit in the global search box.
type SearchResult struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// Search does substring matching over data centers, tenants, jobs and
// endpoints. GPU results are gated behind a model-name match: only a
// query that names a GPU model (e.g. "h100") fans out to the fleet,
// otherwise a short query would drown everything in gpu rows. At most
// 15 results.
func (s *Simulator) Search(q string) []SearchResult {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []SearchResult{}
	if q == "" {
		return out
	}
	add := func(r SearchResult) bool {
		out = append(out, r)
		return len(out) >= searchLimit
	}

	for _, dc := range dataCenterConfigs {
		if strings.Contains(strings.ToLower(dc.Name), q) ||
			strings.Contains(strings.ToLower(dc.Location), q) ||
			strings.Contains(strings.ToLower(dc.Region), q) {
			if add(SearchResult{Type: "datacenter", ID: dc.ID, Title: dc.Name, Subtitle: dc.Location}) {
				return out
			}
		}
	}

	for _, t := range tenantCatalog {
		if strings.Contains(strings.ToLower(t.Name), q) {
			if add(SearchResult{Type: "tenant", ID: t.ID, Title: t.Name, Subtitle: t.Tier}) {
				return out
			}
		}
	}

	for i := 0; i < jobCount; i++ {
		j := s.jobAt(i)
		if strings.Contains(strings.ToLower(j.Name), q) || strings.Contains(j.ID, q) {
			if add(SearchResult{Type: "job", ID: j.ID, Title: j.Name, Subtitle: j.Status}) {
				return out
			}
		}
	}

	for _, def := range endpointDefs {
		if strings.Contains(strings.ToLower(def.name), q) || strings.Contains(strings.ToLower(def.model), q) {
			if add(SearchResult{Type: "endpoint", ID: def.id, Title: def.name, Subtitle: def.model}) {
				return out
			}
		}
	}

	for _, spec := range gpuModels {
		if !strings.Contains(strings.ToLower(spec.Model), q) {
			continue
		}
		for _, g := range s.gpus {
			if g.Model.Model != spec.Model {
				continue
			}
			if add(SearchResult{Type: "gpu", ID: g.ID(), Title: g.ID(), Subtitle: spec.Model + " / " + g.DcName}) {
				return out
			}
		}
	}

	return out
}

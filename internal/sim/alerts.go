package sim

import (
	"fmt"
	"sort"
	"time"
)

const alertCount = 18

// Alert is one synthesized fleet alert.
type Alert struct {
	ID           string `json:"id"`
	Severity     string `json:"severity"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	DcID         string `json:"dc_id"`
	DcName       string `json:"dc_name"`
	Timestamp    string `json:"timestamp"`
	Acknowledged bool   `json:"acknowledged"`
	Resolved     bool   `json:"resolved"`
}

// Alerts stamps alerts from the template catalog, newest first. Each
// index picks its template, data center, message variant, age within
// 24h and ack/resolved state from decorrelated field seeds.
func (s *Simulator) Alerts() []Alert {
	now := s.now()
	out := make([]Alert, 0, alertCount)
	for i := 0; i < alertCount; i++ {
		tpl := alertTemplates[randIndex(fieldSeed(i, "alert"), len(alertTemplates))]
		dc := dataCenterConfigs[randIndex(fieldSeed(i, "dc"), len(dataCenterConfigs))]
		variant := tpl.variants[randIndex(fieldSeed(i, "variant"), len(tpl.variants))]
		age := time.Duration(fieldNoise(i, "age") * 24 * float64(time.Hour))
		ts := now.Add(-age)
		out = append(out, Alert{
			ID:           fmt.Sprintf("alert-%04d", i),
			Severity:     tpl.severity,
			Title:        tpl.title,
			Message:      fmt.Sprintf("%s (%s)", variant, dc.Name),
			DcID:         dc.ID,
			DcName:       dc.Name,
			Timestamp:    ts.UTC().Format(time.RFC3339),
			Acknowledged: fieldNoise(i, "ack") > 0.6,
			Resolved:     fieldNoise(i, "status") > 0.75,
		})
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].Timestamp > out[b].Timestamp
	})
	return out
}

// Incidents returns the authored incident records.
func (s *Simulator) Incidents() []Incident {
	return incidentCatalog
}

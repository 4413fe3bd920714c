package sim

import "time"

// APIKeys returns the credential catalog with derived last-used times.
// The timestamps drift with the clock so the list looks alive.
func (s *Simulator) APIKeys() []APIKey {
	now := s.now()
	out := make([]APIKey, len(apiKeyCatalog))
	for i, k := range apiKeyCatalog {
		age := time.Duration(fieldNoise(i, "age") * 48 * float64(time.Hour))
		k.LastUsed = now.Add(-age).UTC().Format(time.RFC3339)
		out[i] = k
	}
	return out
}

// Webhooks returns the webhook catalog with derived delivery state.
func (s *Simulator) Webhooks() []Webhook {
	now := s.now()
	out := make([]Webhook, len(webhookCatalog))
	for i, w := range webhookCatalog {
		age := time.Duration(fieldNoise(i, "span") * 6 * float64(time.Hour))
		w.LastSent = now.Add(-age).UTC().Format(time.RFC3339)
		w.LastStatus = 200
		if !w.Active {
			w.LastStatus = 0
			w.LastSent = ""
		} else if fieldNoise(i, "status") > 0.9 {
			w.LastStatus = 503
		}
		out[i] = w
	}
	return out
}

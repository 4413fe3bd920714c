package api

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Middleware wraps the mux with CORS, panic recovery and request-id
// tagging, outermost first.
func (s *Server) Middleware(allowedOrigins []string, next http.Handler) http.Handler {
	return s.withRecover(withCORS(allowedOrigins, withRequestID(next)))
}

// withCORS applies an origin allow-list with credential support.
// Preflight requests are answered directly.
func withCORS(allowed []string, next http.Handler) http.Handler {
	allowedSet := map[string]bool{}
	for _, o := range allowed {
		allowedSet[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && allowedSet[origin] {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			h.Set("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRequestID tags every request with a request id for log
// correlation and echoes it back to the client.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

// withRecover converts panics into 500 responses with the message in
// the error body, matching the rest of the error surface.
func (s *Server) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("handler panic", "path", r.URL.Path, "panic", rec)
				writeError(w, http.StatusInternalServerError, fmt.Sprint(rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

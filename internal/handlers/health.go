package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger is anything whose reachability can be checked. *sql.DB satisfies
// it directly; cache.Pinger adapts the Valkey client.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health serves liveness and readiness probes.
type Health struct {
	deps map[string]Pinger
}

// NewHealth creates a Health handler checking the named dependencies on
// readiness probes.
func NewHealth(deps map[string]Pinger) *Health {
	return &Health{deps: deps}
}

// Live reports that the process is serving requests.
func (h *Health) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready pings every dependency and reports 503 if any is down.
func (h *Health) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(h.deps))
	for name, dep := range h.deps {
		if err := dep.PingContext(ctx); err != nil {
			checks[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	writeJSON(w, status, map[string]any{"status": overall, "checks": checks})
}

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/snehalbaghel/badgr-server/pkg/authsdk"
	"github.com/snehalbaghel/badgr-server/pkg/httpx"
)

// probeTimeout bounds each dependency check on /readyz.
const probeTimeout = 2 * time.Second

// Pinger is a dependency readyz can probe, such as the backoff store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	StartTime time.Time
	Version   string

	Database Pinger
	Backoff  Pinger // nil reports "disabled"
}

// HandleLivez godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe. Returns 200 while the process is serving requests.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get]
func (h *HealthHandler) HandleLivez(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.response("ok", nil))
}

// HandleReadyz godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe covering the database and the login backoff store.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get]
func (h *HealthHandler) HandleReadyz(w http.ResponseWriter, r *http.Request) {
	checks := &authsdk.HealthChecks{
		Database: probe(r.Context(), h.Database),
		Backoff:  probe(r.Context(), h.Backoff),
	}

	status, code := "ok", http.StatusOK
	if checks.Database != "ok" || (checks.Backoff != "ok" && checks.Backoff != "disabled") {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	httpx.WriteJSON(w, code, h.response(status, checks))
}

func (h *HealthHandler) response(status string, checks *authsdk.HealthChecks) authsdk.HealthResponse {
	return authsdk.HealthResponse{
		Status:  status,
		Uptime:  time.Since(h.StartTime).Round(time.Second).String(),
		Version: h.Version,
		Checks:  checks,
	}
}

func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}

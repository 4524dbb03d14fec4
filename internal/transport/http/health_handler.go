package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"customerpulse/pkg/contracts"
)

// HealthHandler serves liveness information for the dashboard server.
type HealthHandler struct {
	service DashboardServiceInterface
	started time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(service DashboardServiceInterface) *HealthHandler {
	return &HealthHandler{service: service, started: time.Now()}
}

// HealthResponse is the payload behind GET /healthz.
type HealthResponse struct {
	Status   string    `json:"status"`
	Version  string    `json:"version"`
	Uptime   string    `json:"uptime"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
}

// ServeHTTP handles GET /healthz. The server is healthy as soon as it
// answers; data freshness is reported but never fails the check, since
// a broken source is a 502 on the API, not a dead process.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthResponse{
		Status:   "ok",
		Version:  contracts.Version,
		Uptime:   time.Since(h.started).Round(time.Second).String(),
		LoadedAt: h.service.LoadedAt(),
	})
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/studyhall-inc/studyhall-engine/pkg/config"
)

// dbPingTimeout bounds the health check's database probe.
const dbPingTimeout = 5 * time.Second

// DatabasePinger reports database connectivity.
type DatabasePinger interface {
	PingWithTimeout(ctx context.Context, timeout time.Duration) error
}

// HealthResponse contains service and database status.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	cfg    *config.Config
	db     DatabasePinger
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cfg *config.Config, db DatabasePinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{cfg: cfg, db: db, logger: logger}
}

// RegisterRoutes registers the health handler's routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.Health)
}

// Health handles GET /api/health. The database probe races against a fixed
// timer so a hung pool cannot stall the check.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Database:  "connected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.cfg.Version,
	}
	statusCode := http.StatusOK

	if h.db == nil {
		response.Status = "degraded"
		response.Database = "not configured"
	} else if err := h.db.PingWithTimeout(r.Context(), dbPingTimeout); err != nil {
		h.logger.Error("Health check database ping failed", zap.Error(err))
		response.Status = "degraded"
		response.Database = "disconnected"
		response.Detail = "Database connection timeout"
		statusCode = http.StatusServiceUnavailable
	}

	if err := WriteJSON(w, statusCode, response); err != nil {
		h.logger.Error("Failed to encode health response", zap.Error(err))
	}
}

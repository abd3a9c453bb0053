package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/iudanet/startline/pkg/api"
)

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	logger *slog.Logger
	db     Pinger
	clock  clockwork.Clock
}

// NewHealthHandler создает новый handler для health check. db may be nil.
func NewHealthHandler(logger *slog.Logger, db Pinger, clock clockwork.Clock) *HealthHandler {
	return &HealthHandler{
		logger: logger,
		db:     db,
		clock:  clock,
	}
}

// Health обрабатывает GET и HEAD /api/v1/health.
// Клиенты также используют HEAD как дешевый замер времени сервера.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}

	resp := api.HealthResponse{
		Status:     "ok",
		ServerTime: h.clock.Now().UnixMilli(),
	}
	status := http.StatusOK

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.ErrorContext(ctx, "health check: database unavailable", slog.Any("error", err))
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	sendJSON(h.logger, w, resp, status)
}

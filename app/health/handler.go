package health

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/xiuxian-wiki/encyclopedia/app/respond"
)

const pingTimeout = 2 * time.Second

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db  Pinger
	log *zap.Logger
}

func NewHealthHandler(db Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

func (h *HealthHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		respond.JSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"error":  "Database unavailable",
		})
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

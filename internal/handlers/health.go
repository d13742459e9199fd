package handlers

import (
	"context"
	"net/http"
	"time"
)

const healthTimeout = 2 * time.Second

// Health returns API health status for FE/load balancer checks.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.WithError(err).Warn("health check failed")
		SendError(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}
	SendSuccess(w, http.StatusOK, "ok", map[string]string{"status": "up"})
}

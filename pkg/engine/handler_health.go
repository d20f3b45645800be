// Health and readiness probe handlers.

package engine

import (
	"net/http"

	"github.com/getmockd/itemd/pkg/httputil"
)

// handleHealth handles the liveness probe. It does not touch the store.
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteOK(w, map[string]string{"status": "ok"})
}

// handleReady reports whether the store can be queried.
func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	n, err := h.countItems(r.Context())
	if err != nil {
		h.log.Warn("readiness check failed", "error", err)
		httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"error":  "store_unavailable",
		})
		return
	}
	httputil.WriteOK(w, map[string]any{"status": "ready", "items": n})
}

// ABOUTME: HTTP handler for the health endpoint
// ABOUTME: Reports mail configuration, branding assets, and live session count

package handlers

import (
	"net/http"
	"os"
)

// Health returns API health status including mail and branding readiness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status":   "ok",
		"mail":     "not_configured",
		"branding": "missing",
		"sessions": h.store.Count(),
	}

	if h.mailer.Configured() {
		resp["mail"] = "ok"
	}
	if _, err := os.Stat(h.cfg.LogoPath); err == nil {
		resp["branding"] = "ok"
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// ABOUTME: HTTP handlers for the pricing wizard API endpoints
// ABOUTME: Handler wiring, JSON helpers, and error taxonomy to status mapping

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/beyondskool/pricing-wizard/backend/cache"
	"github.com/beyondskool/pricing-wizard/backend/config"
	"github.com/beyondskool/pricing-wizard/backend/models"
	"github.com/beyondskool/pricing-wizard/backend/services"
)

// maxRequestBodySize limits JSON request bodies to 1MB to prevent DOS attacks
const maxRequestBodySize = 1 << 20 // 1MB

type Handler struct {
	cfg      *config.Config
	store    *cache.Store
	sessions *services.SessionService
	renderer *services.DocumentRenderer
	mailer   *services.Mailer
}

func NewHandler(cfg *config.Config, store *cache.Store) *Handler {
	return &Handler{
		cfg:      cfg,
		store:    store,
		sessions: services.NewSessionService(store),
		renderer: services.NewDocumentRenderer(cfg.LogoPath),
		mailer:   services.NewMailer(cfg),
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, models.ErrorResponse{
		Error: message,
		Code:  status,
	})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// invalid input 400, unknown session 404, out-of-sequence operation 409,
// margin refusal 422 with the computed margin, delivery failure 502.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var marginErr *models.MarginError
	if errors.As(err, &marginErr) {
		h.writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:              models.ErrMarginTooLow.Error(),
			Details:            err.Error(),
			Code:               http.StatusUnprocessableEntity,
			GrossMarginPercent: &marginErr.GrossMarginPercent,
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, models.ErrMarginTooLow):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrDeliveryFailure):
		status = http.StatusBadGateway
	}

	h.writeJSON(w, status, models.ErrorResponse{
		Error: err.Error(),
		Code:  status,
	})
}

// decodeJSON reads a size-limited JSON body into v.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if err.Error() == "http: request body too large" {
			h.writeError(w, "Request body too large", http.StatusBadRequest)
			return false
		}
		h.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

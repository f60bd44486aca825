// ABOUTME: HTTP handlers for the pricing session lifecycle
// ABOUTME: Create, fetch, calculate behind the margin gate, and confirm

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/beyondskool/pricing-wizard/backend/models"
)

// CreateSession opens a new pricing session in the collecting state.
// HTTP method validation handled by Go 1.22+ router pattern matching.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var input models.CreateSessionInput
	if !h.decodeJSON(w, r, &input) {
		return
	}

	session, err := h.sessions.Create(input)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	slog.Info("Session created", "session_id", session.ID, "school", session.SchoolName)
	h.writeJSON(w, http.StatusCreated, session)
}

// GetSession returns the current state of a pricing session.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, session)
}

// CalculateSession runs the pricing computation for the posted selections.
// A margin refusal comes back as 422 with the computed margin; the session
// drops back to collecting so the operator can adjust and retry.
func (h *Handler) CalculateSession(w http.ResponseWriter, r *http.Request) {
	var input models.CalculateInput
	if !h.decodeJSON(w, r, &input) {
		return
	}

	session, err := h.sessions.Calculate(r.PathValue("id"), input)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	slog.Info("Session calculated",
		"session_id", session.ID,
		"programs", len(session.Quotes),
		"gross_margin_percent", session.Summary.GrossMarginPercent,
	)
	h.writeJSON(w, http.StatusOK, session)
}

// ConfirmSession freezes a calculated session for document generation.
func (h *Handler) ConfirmSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Confirm(r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	slog.Info("Session confirmed", "session_id", session.ID, "school", session.SchoolName)
	h.writeJSON(w, http.StatusOK, session)
}

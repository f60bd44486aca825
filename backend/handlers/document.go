// ABOUTME: HTTP handlers for agreement document download and mail dispatch
// ABOUTME: Renders the PDF for confirmed sessions and sends it over SMTP

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/beyondskool/pricing-wizard/backend/models"
)

// DownloadDocument renders the agreement PDF for a confirmed session and
// streams it back. A successful render marks the session delivered;
// delivered sessions may re-download.
func (h *Handler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if !session.DocumentReady() {
		h.writeServiceError(w, fmt.Errorf("%w: document requires a confirmed session, state is %s",
			models.ErrInvalidState, session.State))
		return
	}

	pdf, err := h.renderer.Render(session)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if _, err := h.sessions.MarkDelivered(session.ID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	filename := h.renderer.Filename(session.SchoolName)
	slog.Info("Agreement generated", "session_id", session.ID, "filename", filename, "bytes", len(pdf))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// SendDocument renders the agreement and mails it to the requester with the
// school in copy. A failed send leaves the session state untouched so the
// operator can retry.
func (h *Handler) SendDocument(w http.ResponseWriter, r *http.Request) {
	var input models.SendInput
	if !h.decodeJSON(w, r, &input) {
		return
	}

	session, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if !session.DocumentReady() {
		h.writeServiceError(w, fmt.Errorf("%w: sending requires a confirmed session, state is %s",
			models.ErrInvalidState, session.State))
		return
	}

	pdf, err := h.renderer.Render(session)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	filename := h.renderer.Filename(session.SchoolName)
	if err := h.mailer.Send(r.Context(), session, input, filename, pdf); err != nil {
		slog.Error("Agreement dispatch failed", "session_id", session.ID, "error", err)
		h.writeServiceError(w, err)
		return
	}

	session, err = h.sessions.MarkDelivered(session.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, session)
}

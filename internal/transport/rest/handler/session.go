package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"pulsecheck/internal/service"
	"pulsecheck/internal/transport/rest/middleware"
)

// SessionSelector picks the items for one check-in
type SessionSelector interface {
	Select(ctx context.Context, userID string, req service.SessionRequest) (*service.SessionResponse, error)
}

// SessionHandler handles check-in session endpoints
type SessionHandler struct {
	selector SessionSelector
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(s SessionSelector) *SessionHandler {
	return &SessionHandler{selector: s}
}

// Select handles POST /v1/sessions/select
func (h *SessionHandler) Select(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req service.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.selector.Select(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

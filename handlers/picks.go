package handlers

import (
	"net/http"

	"pickem-app-go/logging"
	"pickem-app-go/middleware"
	"pickem-app-go/models"
	"pickem-app-go/services"
)

// PickHandler serves the weekly slate and accepts pick submissions
type PickHandler struct {
	pickService *services.PickService
	logger      *logging.Logger
}

// NewPickHandler creates a new pick handler
func NewPickHandler(pickService *services.PickService) *PickHandler {
	return &PickHandler{
		pickService: pickService,
		logger:      logging.WithPrefix("PickHandler"),
	}
}

// pickSubmissionRequest is the submit body. Map keys arrive as JSON strings
// and decode straight into int game ids.
type pickSubmissionRequest struct {
	Picks      map[int]string          `json:"picks"`
	Confidence []models.ConfidencePick `json:"confidence"`
}

// GetWeekSlate returns the week's games split into open and locked sets
func (h *PickHandler) GetWeekSlate(w http.ResponseWriter, r *http.Request) {
	week, err := weekParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	slate, err := h.pickService.GetWeekSlate(r.Context(), week)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, slate)
}

// SubmitPicks accepts the authenticated user's submission for a week
func (h *PickHandler) SubmitPicks(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	week, err := weekParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req pickSubmissionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.pickService.SubmitPicks(r.Context(), user.Username, week, req.Picks, req.Confidence); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "picks submitted"})
}

// GetWeekPicks returns every participant's picks for a week, once the
// all-submitted gate is open. Admins bypass the gate.
func (h *PickHandler) GetWeekPicks(w http.ResponseWriter, r *http.Request) {
	week, err := weekParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	picks, err := h.pickService.VisibleWeekPicks(r.Context(), week, middleware.GetUserFromContext(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, picks)
}

// GetMyPicks returns the authenticated user's own submission for a week,
// which is always visible to them regardless of the reveal gate.
func (h *PickHandler) GetMyPicks(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	week, err := weekParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sub, ok := user.SubmissionFor(week)
	if !ok {
		respondError(w, http.StatusNotFound, "no picks for this week")
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

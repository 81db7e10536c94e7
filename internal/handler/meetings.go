package handler

import (
	"net/http"

	"rolodex/internal/domain/repositories"
	"rolodex/internal/httputil"
)

// MeetingHandler handles meeting HTTP requests
type MeetingHandler struct {
	meetings repositories.MeetingRepository
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetings repositories.MeetingRepository) *MeetingHandler {
	return &MeetingHandler{meetings: meetings}
}

// ListMeetings lists meetings
// GET /api/meetings?limit=
func (h *MeetingHandler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	meetings, err := h.meetings.List(r.Context(), limit)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, meetings)
}

// GetMeeting retrieves a meeting by ID
// GET /api/meetings/{id}
func (h *MeetingHandler) GetMeeting(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "meeting ID is required")
		return
	}

	meeting, err := h.meetings.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, meeting)
}

package handler

import (
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"rolodex/internal/config"
	"rolodex/internal/content"
	"rolodex/internal/domain/models"
	"rolodex/internal/domain/repositories"
	"rolodex/internal/httputil"
)

// NoteHandler handles note HTTP requests. Content passes through the
// same sanitizer the assistant's editor uses, so both write paths store
// equivalent HTML.
type NoteHandler struct {
	notes     repositories.NoteRepository
	sanitizer *content.Sanitizer
	logger    *slog.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(notes repositories.NoteRepository, sanitizer *content.Sanitizer, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{notes: notes, sanitizer: sanitizer, logger: logger}
}

// createNoteRequest is the note creation payload.
type createNoteRequest struct {
	Title     *string `json:"title,omitempty"`
	Content   string  `json:"content"`
	ContactID *string `json:"contact_id,omitempty"`
	MeetingID *string `json:"meeting_id,omitempty"`
}

func (r createNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(0, config.MaxNoteTitleLength)),
		validation.Field(&r.Content, validation.Required),
	)
}

// ListNotes lists notes, optionally filtered by contact or meeting.
// GET /api/notes?contact_id=&meeting_id=&limit=
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	params := repositories.NoteListParams{}
	q := r.URL.Query()
	if v := q.Get("contact_id"); v != "" {
		params.ContactID = &v
	}
	if v := q.Get("meeting_id"); v != "" {
		params.MeetingID = &v
	}
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	params.Limit = limit

	notes, err := h.notes.List(r.Context(), params)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, notes)
}

// GetNote retrieves a note by ID
// GET /api/notes/{id}
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "note ID is required")
		return
	}

	note, err := h.notes.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// CreateNote creates a new note
// POST /api/notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	note := &models.Note{
		Title:     req.Title,
		Content:   h.sanitizer.Sanitize(req.Content),
		ContactID: req.ContactID,
		MeetingID: req.MeetingID,
	}
	if err := h.notes.Create(r.Context(), note); err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("note created", "note_id", note.ID)
	httputil.RespondJSON(w, http.StatusCreated, note)
}

// UpdateNote applies a partial update to a note
// PATCH /api/notes/{id}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "note ID is required")
		return
	}

	var update models.NoteUpdate
	if err := httputil.ParseJSON(w, r, &update); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if update.Content != nil {
		clean := h.sanitizer.Sanitize(*update.Content)
		update.Content = &clean
	}

	if err := h.notes.Update(r.Context(), id, update); err != nil {
		handleError(w, err)
		return
	}

	note, err := h.notes.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

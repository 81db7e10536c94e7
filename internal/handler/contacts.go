package handler

import (
	"net/http"
	"strconv"

	"rolodex/internal/domain/repositories"
	"rolodex/internal/httputil"
)

// ContactHandler handles contact HTTP requests
type ContactHandler struct {
	contacts repositories.ContactRepository
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contacts repositories.ContactRepository) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// ListContacts lists contacts
// GET /api/contacts?limit=
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	contacts, err := h.contacts.List(r.Context(), limit)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contacts)
}

// GetContact retrieves a contact by ID
// GET /api/contacts/{id}
func (h *ContactHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "contact ID is required")
		return
	}

	contact, err := h.contacts.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contact)
}

// parseLimit reads the optional limit query parameter. Writes a 400 and
// returns false when the value is not a non-negative integer.
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(v)
	if err != nil || limit < 0 {
		httputil.RespondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return 0, false
	}
	return limit, true
}

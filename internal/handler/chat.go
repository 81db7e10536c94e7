package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"rolodex/internal/assistant"
	"rolodex/internal/domain"
	"rolodex/internal/httputil"
)

// ChatHandler exposes the assistant conversation loop.
type ChatHandler struct {
	loop   *assistant.Loop
	logger *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(loop *assistant.Loop, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{loop: loop, logger: logger}
}

// chatError is the message-shaped error body the chat UI renders directly
// in the conversation, unlike the problem+json errors of the CRUD API.
type chatError struct {
	Message string `json:"message"`
}

// Chat runs one assistant exchange.
// POST /api/assistant/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req assistant.Request
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondJSON(w, http.StatusBadRequest, chatError{Message: "Invalid message content"})
		return
	}

	resp, err := h.loop.Run(r.Context(), req)
	if err != nil {
		h.respondChatError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

func (h *ChatHandler) respondChatError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		httputil.RespondJSON(w, http.StatusBadRequest, chatError{Message: validationErr.Message})

	case errors.Is(err, assistant.ErrMissingCredentials):
		h.logger.Error("chat request failed: missing credentials")
		httputil.RespondJSON(w, http.StatusInternalServerError,
			chatError{Message: "AI service is not configured. Please check the API key."})

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client went away; status is best-effort.
		h.logger.Info("chat request cancelled", "error", err)
		httputil.RespondJSON(w, http.StatusServiceUnavailable, chatError{Message: "Request cancelled."})

	default:
		h.logger.Error("chat request failed", "error", err)
		httputil.RespondJSON(w, http.StatusInternalServerError,
			chatError{Message: "I apologize, but I encountered an error processing your request. Please try again."})
	}
}

package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rolodex/internal/assistant"
	"rolodex/internal/content"
	"rolodex/internal/domain/models/chat"
)

// stubProvider returns a fixed text answer, or a fixed error.
type stubProvider struct {
	text string
	err  error
}

func (p *stubProvider) SendTurn(context.Context, []chat.ConversationTurn, []assistant.ToolSchema) (*assistant.ModelResponse, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &assistant.ModelResponse{
		Blocks: []chat.ContentBlock{{Type: chat.BlockTypeText, Text: p.text}},
	}, nil
}

func (p *stubProvider) Name() string              { return "stub" }
func (p *stubProvider) SupportsModel(string) bool { return true }

type noopExecutor struct{}

func (noopExecutor) Execute(context.Context, map[string]interface{}) (string, error) {
	return "", nil
}

func newTestChatHandler(provider assistant.ModelProvider) *ChatHandler {
	logger := slog.New(slog.DiscardHandler)
	prompts := assistant.NewPromptBuilder(5, content.NewMarkdownConverter())
	loop := assistant.NewLoop(provider, noopExecutor{}, prompts, 10, logger)
	return NewChatHandler(loop, logger)
}

func postChat(t *testing.T, h *ChatHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/assistant/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Chat(rec, req)
	return rec
}

func TestChatHandler_Success(t *testing.T) {
	h := newTestChatHandler(&stubProvider{text: "Hello there."})

	rec := postChat(t, h, `{"message":"hi"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp assistant.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Hello there." {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestChatHandler_InvalidPayloads(t *testing.T) {
	h := newTestChatHandler(&stubProvider{text: "unused"})

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"empty message", `{"message":""}`},
		{"missing message", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postChat(t, h, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["message"] != "Invalid message content" {
				t.Errorf("message = %q", body["message"])
			}
		})
	}
}

func TestChatHandler_MissingCredentials(t *testing.T) {
	h := newTestChatHandler(&stubProvider{err: assistant.ErrMissingCredentials})

	rec := postChat(t, h, `{"message":"hi"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "AI service is not configured. Please check the API key.") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestChatHandler_ProviderFailure(t *testing.T) {
	h := newTestChatHandler(&stubProvider{err: context.DeadlineExceeded})

	rec := postChat(t, h, `{"message":"hi"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

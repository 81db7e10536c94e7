package assistant

import (
	"strings"
	"testing"

	"rolodex/internal/content"
	"rolodex/internal/domain/models/chat"
)

func newTestPromptBuilder(historyTurns int) *PromptBuilder {
	return NewPromptBuilder(historyTurns, content.NewMarkdownConverter())
}

func TestPromptBuilder_NoContext(t *testing.T) {
	b := newTestPromptBuilder(5)
	prompt := b.Build("find my notes", nil, nil)

	if !strings.Contains(prompt, `The user is asking: "find my notes"`) {
		t.Errorf("prompt missing quoted message:\n%s", prompt)
	}
	if !strings.Contains(prompt, "No current page context available.") {
		t.Errorf("prompt missing placeholder line:\n%s", prompt)
	}
	if strings.Contains(prompt, "Recent conversation:") {
		t.Error("empty history must not emit a conversation block")
	}
	if !strings.HasSuffix(prompt, "note editor tool when users ask to modify, update, or create notes.") {
		t.Errorf("prompt missing trailer:\n%s", prompt)
	}
}

func TestPromptBuilder_Deterministic(t *testing.T) {
	b := newTestPromptBuilder(5)
	pageCtx := &chat.PageContext{
		TotalCount:     42,
		CurrentFilters: map[string]interface{}{"company": "Acme", "archived": false},
		CurrentSort:    map[string]interface{}{"field": "name", "dir": "asc"},
		VisibleData: []map[string]interface{}{
			{"id": "c1", "name": "Ada", "content": "<p>met at <b>conference</b></p>"},
		},
	}

	first := b.Build("hello", pageCtx, nil)
	second := b.Build("hello", pageCtx, nil)
	if first != second {
		t.Error("identical inputs produced different prompts")
	}

	if !strings.Contains(first, "- Total items: 42") {
		t.Errorf("prompt missing total count:\n%s", first)
	}
	// HTML content fields are rendered as markdown for the model
	if !strings.Contains(first, "**conference**") {
		t.Errorf("content field not converted to markdown:\n%s", first)
	}
	if strings.Contains(first, "<b>") {
		t.Errorf("raw HTML leaked into prompt:\n%s", first)
	}
}

func TestPromptBuilder_VisibleDataSample(t *testing.T) {
	b := newTestPromptBuilder(5)
	pageCtx := &chat.PageContext{
		VisibleData: []map[string]interface{}{
			{"id": "1"}, {"id": "2"}, {"id": "3"}, {"id": "4"}, {"id": "5"},
		},
	}

	prompt := b.Build("x", pageCtx, nil)
	if !strings.Contains(prompt, `"id": "3"`) {
		t.Errorf("third row missing from sample:\n%s", prompt)
	}
	if strings.Contains(prompt, `"id": "4"`) {
		t.Errorf("sample not truncated to three rows:\n%s", prompt)
	}
}

func TestPromptBuilder_HistoryWindow(t *testing.T) {
	b := newTestPromptBuilder(2)
	history := []chat.ConversationTurn{
		chat.NewTextTurn(chat.RoleUser, "oldest"),
		chat.NewTextTurn(chat.RoleAssistant, "middle"),
		chat.NewTextTurn(chat.RoleUser, "newest"),
	}

	prompt := b.Build("x", nil, history)

	if strings.Contains(prompt, "oldest") {
		t.Error("turn beyond the window leaked into the prompt")
	}
	if !strings.Contains(prompt, "assistant: middle") {
		t.Errorf("prompt missing windowed turn:\n%s", prompt)
	}
	if !strings.Contains(prompt, "user: newest") {
		t.Errorf("prompt missing newest turn:\n%s", prompt)
	}
}

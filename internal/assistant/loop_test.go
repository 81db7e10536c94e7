package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"rolodex/internal/content"
	"rolodex/internal/domain"
	"rolodex/internal/domain/models/chat"
)

// scriptedProvider replays canned responses and captures what it was sent.
type scriptedProvider struct {
	responses []*ModelResponse
	err       error
	calls     [][]chat.ConversationTurn
}

func (p *scriptedProvider) SendTurn(_ context.Context, turns []chat.ConversationTurn, _ []ToolSchema) (*ModelResponse, error) {
	captured := make([]chat.ConversationTurn, len(turns))
	copy(captured, turns)
	p.calls = append(p.calls, captured)

	if p.err != nil {
		return nil, p.err
	}
	if len(p.calls) > len(p.responses) {
		// Script exhausted: keep answering with plain text so cap tests
		// control termination via maxIterations instead.
		return textResponse("done"), nil
	}
	return p.responses[len(p.calls)-1], nil
}

func (p *scriptedProvider) Name() string              { return "scripted" }
func (p *scriptedProvider) SupportsModel(string) bool { return true }

func textResponse(texts ...string) *ModelResponse {
	resp := &ModelResponse{StopReason: "end_turn"}
	for _, text := range texts {
		resp.Blocks = append(resp.Blocks, chat.ContentBlock{Type: chat.BlockTypeText, Text: text})
	}
	return resp
}

func toolUseResponse(invocations ...*chat.ToolInvocation) *ModelResponse {
	resp := &ModelResponse{StopReason: "tool_use"}
	for _, inv := range invocations {
		resp.Blocks = append(resp.Blocks, chat.ContentBlock{Type: chat.BlockTypeToolUse, ToolUse: inv})
	}
	return resp
}

// scriptedExecutor runs a function per call, in order.
type scriptedExecutor struct {
	outputs []string
	errs    []error
	inputs  []map[string]interface{}
}

func (e *scriptedExecutor) Execute(_ context.Context, input map[string]interface{}) (string, error) {
	i := len(e.inputs)
	e.inputs = append(e.inputs, input)
	var err error
	if i < len(e.errs) {
		err = e.errs[i]
	}
	var out string
	if i < len(e.outputs) {
		out = e.outputs[i]
	}
	return out, err
}

func newTestLoop(provider ModelProvider, executor *scriptedExecutor, maxIterations int) *Loop {
	logger := slog.New(slog.DiscardHandler)
	prompts := NewPromptBuilder(5, content.NewMarkdownConverter())
	return NewLoop(provider, executor, prompts, maxIterations, logger)
}

func editorCall(id, command, path string) *chat.ToolInvocation {
	return &chat.ToolInvocation{
		ID:    id,
		Name:  ToolNameNoteEditor,
		Input: map[string]interface{}{"command": command, "path": path},
	}
}

func TestLoop_TextOnlyResponse(t *testing.T) {
	provider := &scriptedProvider{responses: []*ModelResponse{textResponse("Hello!", "How can I help?")}}
	loop := newTestLoop(provider, &scriptedExecutor{}, 10)

	resp, err := loop.Run(context.Background(), Request{Message: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message != "Hello!\n\nHow can I help?" {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.FunctionResult != nil {
		t.Error("expected no function result without operations")
	}
	if len(resp.ToolCalls) != 0 {
		t.Errorf("expected no tool calls, got %d", len(resp.ToolCalls))
	}
	if len(provider.calls) != 1 {
		t.Errorf("expected 1 provider call, got %d", len(provider.calls))
	}
}

func TestLoop_EmptyFinalTextFallsBack(t *testing.T) {
	provider := &scriptedProvider{responses: []*ModelResponse{{StopReason: "end_turn"}}}
	loop := newTestLoop(provider, &scriptedExecutor{}, 10)

	resp, err := loop.Run(context.Background(), Request{Message: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message != "Operation completed successfully!" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestLoop_ToolRoundTrip(t *testing.T) {
	provider := &scriptedProvider{responses: []*ModelResponse{
		toolUseResponse(editorCall("tu-1", "view", "notes")),
		textResponse("You have one note."),
	}}
	executor := &scriptedExecutor{outputs: []string{"1: n1 - Untitled (hi...)"}}
	loop := newTestLoop(provider, executor, 10)

	resp, err := loop.Run(context.Background(), Request{Message: "list my notes"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Message != "You have one note." {
		t.Errorf("message = %q", resp.Message)
	}
	if len(resp.ToolCalls) != 1 {
		t.Fatalf("expected 1 tool call, got %d", len(resp.ToolCalls))
	}
	record := resp.ToolCalls[0]
	if record.ID != "tu-1" || record.Name != ToolNameNoteEditor {
		t.Errorf("record = %+v", record)
	}
	if record.Result == nil || !record.Result.Success {
		t.Fatalf("expected successful result, got %+v", record.Result)
	}

	// the second provider call must carry the assistant turn and the
	// tool_result answer, in that order
	second := provider.calls[1]
	last := second[len(second)-1]
	if last.Role != chat.RoleUser || len(last.Blocks) != 1 {
		t.Fatalf("unexpected final turn: %+v", last)
	}
	tr := last.Blocks[0].ToolResult
	if tr == nil || tr.ToolUseID != "tu-1" || tr.IsError {
		t.Errorf("tool result = %+v", tr)
	}
	assistantTurn := second[len(second)-2]
	if assistantTurn.Role != chat.RoleAssistant {
		t.Errorf("expected assistant turn before results, got %q", assistantTurn.Role)
	}

	if resp.FunctionResult == nil || resp.FunctionResult.Data.TotalOperations != 1 {
		t.Fatalf("function result = %+v", resp.FunctionResult)
	}
	op := resp.FunctionResult.Data.Operations[0]
	if op.Operation != "view" || op.Path != "notes" {
		t.Errorf("operation = %+v", op)
	}
}

func TestLoop_EveryInvocationGetsExactlyOneResult(t *testing.T) {
	provider := &scriptedProvider{responses: []*ModelResponse{
		toolUseResponse(
			editorCall("tu-1", "view", "notes"),
			editorCall("tu-2", "view", "missing"),
			editorCall("tu-3", "view", "n1"),
		),
		textResponse("done"),
	}}
	executor := &scriptedExecutor{
		outputs: []string{"list", "", "1: body"},
		errs:    []error{nil, errors.New("File not found"), nil},
	}
	loop := newTestLoop(provider, executor, 10)

	resp, err := loop.Run(context.Background(), Request{Message: "go"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.ToolCalls) != 3 {
		t.Fatalf("expected 3 records, got %d", len(resp.ToolCalls))
	}

	second := provider.calls[1]
	last := second[len(second)-1]
	if len(last.Blocks) != 3 {
		t.Fatalf("expected 3 tool results, got %d", len(last.Blocks))
	}
	for i, wantID := range []string{"tu-1", "tu-2", "tu-3"} {
		tr := last.Blocks[i].ToolResult
		if tr.ToolUseID != wantID {
			t.Errorf("result %d correlates to %q, want %q", i, tr.ToolUseID, wantID)
		}
	}

	// the failed middle call is an error result, not an aborted run
	if tr := last.Blocks[1].ToolResult; !tr.IsError || tr.Content != "Error: File not found" {
		t.Errorf("error result = %+v", tr)
	}
	if resp.ToolCalls[1].Result.Success {
		t.Error("failed call recorded as success")
	}

	// only the two successful note operations are summarized
	if resp.FunctionResult.Data.TotalOperations != 2 {
		t.Errorf("total operations = %d", resp.FunctionResult.Data.TotalOperations)
	}
}

func TestLoop_UnknownToolRecovers(t *testing.T) {
	provider := &scriptedProvider{responses: []*ModelResponse{
		toolUseResponse(&chat.ToolInvocation{ID: "tu-1", Name: "rocket_launcher", Input: map[string]interface{}{}}),
		textResponse("sorry"),
	}}
	loop := newTestLoop(provider, &scriptedExecutor{}, 10)

	resp, err := loop.Run(context.Background(), Request{Message: "launch"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := provider.calls[1]
	tr := second[len(second)-1].Blocks[0].ToolResult
	if !tr.IsError || tr.Content != "Error: Unknown tool: rocket_launcher" {
		t.Errorf("tool result = %+v", tr)
	}
	if resp.Message != "sorry" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestLoop_WebSearchSynthesizesRecord(t *testing.T) {
	provider := &scriptedProvider{responses: []*ModelResponse{
		toolUseResponse(&chat.ToolInvocation{
			ID:    "tu-1",
			Name:  ToolNameWebSearch,
			Input: map[string]interface{}{"query": "weather"},
		}),
		textResponse("it will rain"),
	}}
	executor := &scriptedExecutor{}
	loop := newTestLoop(provider, executor, 10)

	resp, err := loop.Run(context.Background(), Request{Message: "weather?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(executor.inputs) != 0 {
		t.Error("web search must not reach the note editor")
	}
	if len(resp.ToolCalls) != 1 || !resp.ToolCalls[0].Result.Success {
		t.Fatalf("tool calls = %+v", resp.ToolCalls)
	}
	if resp.FunctionResult != nil {
		t.Error("web search alone should not produce a function result")
	}
}

func TestLoop_AliasToolNameDispatchesToEditor(t *testing.T) {
	provider := &scriptedProvider{responses: []*ModelResponse{
		toolUseResponse(&chat.ToolInvocation{
			ID:    "tu-1",
			Name:  "str_replace_based_edit_tool",
			Input: map[string]interface{}{"command": "view", "path": "notes"},
		}),
		textResponse("ok"),
	}}
	executor := &scriptedExecutor{outputs: []string{"No notes found."}}
	loop := newTestLoop(provider, executor, 10)

	if _, err := loop.Run(context.Background(), Request{Message: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(executor.inputs) != 1 {
		t.Fatalf("editor called %d times", len(executor.inputs))
	}
}

func TestLoop_IterationCap(t *testing.T) {
	// a model that never stops asking for tools
	endless := &scriptedProvider{}
	for i := 0; i < 20; i++ {
		endless.responses = append(endless.responses,
			toolUseResponse(editorCall(fmt.Sprintf("tu-%d", i), "view", "notes")))
	}
	executor := &scriptedExecutor{outputs: []string{
		"a", "a", "a", "a", "a", "a", "a", "a", "a", "a",
		"a", "a", "a", "a", "a", "a", "a", "a", "a", "a",
	}}
	loop := newTestLoop(endless, executor, 3)

	resp, err := loop.Run(context.Background(), Request{Message: "loop forever"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(endless.calls) != 3 {
		t.Errorf("provider called %d times, want 3", len(endless.calls))
	}
	if resp.Message != "Operations completed (maximum iterations reached). Please check the results." {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.FunctionResult == nil || resp.FunctionResult.Data.Note != "Reached maximum conversation iterations" {
		t.Fatalf("function result = %+v", resp.FunctionResult)
	}
	if len(resp.ToolCalls) != 3 {
		t.Errorf("records = %d, want 3", len(resp.ToolCalls))
	}
}

func TestLoop_InvalidMessage(t *testing.T) {
	loop := newTestLoop(&scriptedProvider{}, &scriptedExecutor{}, 10)

	tests := []struct {
		name    string
		message string
	}{
		{"empty", ""},
		{"too long", strings.Repeat("a", 10001)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loop.Run(context.Background(), Request{Message: tt.message})
			var validationErr *domain.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if validationErr.Message != "Invalid message content" {
				t.Errorf("message = %q", validationErr.Message)
			}
		})
	}
}

func TestLoop_ProviderErrorIsFatal(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("boom")}
	loop := newTestLoop(provider, &scriptedExecutor{}, 10)

	_, err := loop.Run(context.Background(), Request{Message: "hi"})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoop_MissingCredentialsPropagates(t *testing.T) {
	provider := &scriptedProvider{err: ErrMissingCredentials}
	loop := newTestLoop(provider, &scriptedExecutor{}, 10)

	_, err := loop.Run(context.Background(), Request{Message: "hi"})
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("err = %v", err)
	}
}

func TestLoop_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := &scriptedProvider{responses: []*ModelResponse{textResponse("never")}}
	loop := newTestLoop(provider, &scriptedExecutor{}, 10)

	_, err := loop.Run(ctx, Request{Message: "hi"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if len(provider.calls) != 0 {
		t.Error("provider called after cancellation")
	}
}

func TestLoop_HistoryIsForwarded(t *testing.T) {
	provider := &scriptedProvider{responses: []*ModelResponse{textResponse("hi again")}}
	loop := newTestLoop(provider, &scriptedExecutor{}, 10)

	history := []chat.ConversationTurn{
		chat.NewTextTurn(chat.RoleUser, "first question"),
		chat.NewTextTurn(chat.RoleAssistant, "first answer"),
	}
	if _, err := loop.Run(context.Background(), Request{Message: "second question", Messages: history}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent := provider.calls[0]
	if len(sent) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(sent))
	}
	if sent[0].Content != "first question" || sent[1].Content != "first answer" {
		t.Errorf("history turns = %+v", sent[:2])
	}
	// the final turn is the built prompt, which embeds the message and
	// the same history window as text
	prompt := sent[2].Content
	if !strings.Contains(prompt, `"second question"`) {
		t.Errorf("prompt missing message: %q", prompt)
	}
	if !strings.Contains(prompt, "user: first question") {
		t.Errorf("prompt missing history: %q", prompt)
	}
}

package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"rolodex/internal/assistant/tools"
	"rolodex/internal/domain"
	"rolodex/internal/domain/models/chat"
)

const (
	fallbackFinalMessage = "Operation completed successfully!"
	capHitMessage        = "Operations completed (maximum iterations reached). Please check the results."
	capHitNote           = "Reached maximum conversation iterations"
	webSearchResultText  = "Web search completed."
)

// Loop owns the multi-turn exchange with the model: it drives iterations,
// executes every requested tool call, accumulates results, and decides
// when to stop. A run terminates either on a tool-free model response or
// at the iteration cap; the cap is the hard guarantee against a model
// that never stops issuing tool calls.
type Loop struct {
	provider      ModelProvider
	editor        tools.Executor
	prompts       *PromptBuilder
	maxIterations int
	logger        *slog.Logger
}

// NewLoop creates a conversation loop.
func NewLoop(provider ModelProvider, editor tools.Executor, prompts *PromptBuilder, maxIterations int, logger *slog.Logger) *Loop {
	return &Loop{
		provider:      provider,
		editor:        editor,
		prompts:       prompts,
		maxIterations: maxIterations,
		logger:        logger,
	}
}

// loopState is the per-request state, created fresh for each run and
// threaded through iterations as a value. The with* helpers copy rather
// than mutate, so no iteration holds an aliased reference to another's
// slices.
type loopState struct {
	iteration  int
	turns      []chat.ConversationTurn
	records    []chat.ToolCallRecord
	operations []chat.Operation
}

func newLoopState(history []chat.ConversationTurn, prompt string) loopState {
	turns := make([]chat.ConversationTurn, 0, len(history)+1)
	for _, h := range history {
		turns = append(turns, chat.NewTextTurn(h.Role, h.PlainText()))
	}
	turns = append(turns, chat.NewTextTurn(chat.RoleUser, prompt))
	return loopState{turns: turns}
}

func (s loopState) nextIteration() loopState {
	s.iteration++
	return s
}

func (s loopState) withTurn(turn chat.ConversationTurn) loopState {
	turns := make([]chat.ConversationTurn, 0, len(s.turns)+1)
	turns = append(turns, s.turns...)
	s.turns = append(turns, turn)
	return s
}

func (s loopState) withRecord(record chat.ToolCallRecord) loopState {
	records := make([]chat.ToolCallRecord, 0, len(s.records)+1)
	records = append(records, s.records...)
	s.records = append(records, record)
	return s
}

func (s loopState) withOperation(op chat.Operation) loopState {
	ops := make([]chat.Operation, 0, len(s.operations)+1)
	ops = append(ops, s.operations...)
	s.operations = append(ops, op)
	return s
}

// Run executes the conversation loop for one user request.
//
// Tool-level failures (not found, ambiguous match, validation) are
// recovered into error tool results and fed back to the model; only a
// failed provider call or a malformed request escapes as an error.
func (l *Loop) Run(ctx context.Context, req Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, &domain.ValidationError{Message: "Invalid message content"}
	}

	prompt := l.prompts.Build(req.Message, req.Context, req.Messages)
	state := newLoopState(req.Messages, prompt)
	schemas := []ToolSchema{NoteEditorSchema(), WebSearchSchema()}

	for state.iteration < l.maxIterations {
		state = state.nextIteration()
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("conversation cancelled: %w", err)
		}

		l.logger.Debug("conversation iteration", "iteration", state.iteration)

		resp, err := l.provider.SendTurn(ctx, state.turns, schemas)
		if err != nil {
			return nil, fmt.Errorf("model provider: %w", err)
		}

		texts, invocations := partitionBlocks(resp.Blocks)

		if len(invocations) == 0 {
			final := strings.Join(texts, "\n\n")
			if final == "" {
				final = fallbackFinalMessage
			}
			l.logger.Info("conversation complete",
				"iterations", state.iteration,
				"tool_calls", len(state.records),
			)
			return &Response{
				Message:        final,
				FunctionResult: l.functionResult(state, ""),
				ToolCalls:      state.records,
			}, nil
		}

		// The assistant turn goes into history verbatim; every invocation
		// must then be answered in the immediately following user turn.
		state = state.withTurn(chat.ConversationTurn{Role: chat.RoleAssistant, Blocks: resp.Blocks})

		// Strictly sequential, in response order: later invocations may
		// cite notes mutated by earlier ones in the same round.
		results := make([]chat.ToolResult, 0, len(invocations))
		for _, inv := range invocations {
			record, result, op := l.dispatch(ctx, inv)
			state = state.withRecord(record)
			if op != nil {
				state = state.withOperation(*op)
			}
			results = append(results, result)
		}

		state = state.withTurn(chat.NewToolResultTurn(results))
	}

	l.logger.Warn("iteration cap reached",
		"max_iterations", l.maxIterations,
		"tool_calls", len(state.records),
	)
	return &Response{
		Message:        capHitMessage,
		FunctionResult: l.functionResult(state, capHitNote),
		ToolCalls:      state.records,
	}, nil
}

// dispatch executes one tool invocation and produces its audit record, the
// tool result fed back to the model, and the operation summary entry (nil
// unless a note operation succeeded). Errors are recovered here; an
// invocation is never dropped and always gets exactly one result.
func (l *Loop) dispatch(ctx context.Context, inv *chat.ToolInvocation) (chat.ToolCallRecord, chat.ToolResult, *chat.Operation) {
	record := chat.ToolCallRecord{
		ID:        inv.ID,
		Name:      inv.Name,
		Arguments: inv.Input,
	}
	if record.ID == "" {
		// Providers assign ids; replayed or synthetic history may not.
		record.ID = uuid.NewString()
	}

	switch KindOfTool(inv.Name) {
	case ToolKindNoteEditor:
		out, err := l.editor.Execute(ctx, inv.Input)
		if err != nil {
			msg := tools.ResultMessage(err)
			l.logger.Debug("tool execution failed", "tool", inv.Name, "error", msg)
			record.Result = &chat.ToolCallResult{Success: false, Error: msg}
			return record, chat.ToolResult{ToolUseID: record.ID, Content: "Error: " + msg, IsError: true}, nil
		}
		record.Result = &chat.ToolCallResult{Success: true, Data: out}
		op := &chat.Operation{Operation: inv.Command(), Path: inv.Path(), Result: out}
		return record, chat.ToolResult{ToolUseID: record.ID, Content: out}, op

	case ToolKindWebSearch:
		// Resolved by the model provider; nothing runs locally, but the
		// audit trail must account for every tool use.
		record.Result = &chat.ToolCallResult{Success: true, Data: webSearchResultText}
		return record, chat.ToolResult{ToolUseID: record.ID, Content: webSearchResultText}, nil

	default:
		msg := tools.ResultMessage(tools.NewUnknownToolError(inv.Name))
		record.Result = &chat.ToolCallResult{Success: false, Error: msg}
		return record, chat.ToolResult{ToolUseID: record.ID, Content: "Error: " + msg, IsError: true}, nil
	}
}

// functionResult summarizes executed operations. Absent when nothing ran
// and the run ended normally; always present on a cap hit so the caller
// sees the degraded outcome.
func (l *Loop) functionResult(state loopState, note string) *FunctionResult {
	if len(state.operations) == 0 && note == "" {
		return nil
	}
	return &FunctionResult{
		Success: true,
		Data: &FunctionResultData{
			TotalOperations: len(state.operations),
			Operations:      state.operations,
			Note:            note,
		},
	}
}

// partitionBlocks splits a model response into its text payloads and tool
// invocations, both in response order.
func partitionBlocks(blocks []chat.ContentBlock) ([]string, []*chat.ToolInvocation) {
	var (
		texts       []string
		invocations []*chat.ToolInvocation
	)
	for i := range blocks {
		b := blocks[i]
		switch b.Type {
		case chat.BlockTypeText:
			if b.Text != "" {
				texts = append(texts, b.Text)
			}
		case chat.BlockTypeToolUse:
			if b.ToolUse != nil {
				invocations = append(invocations, b.ToolUse)
			}
		}
	}
	return texts, invocations
}

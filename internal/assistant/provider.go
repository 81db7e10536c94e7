package assistant

import (
	"context"
	"errors"

	"rolodex/internal/domain/models/chat"
)

// ErrMissingCredentials indicates the provider was asked to run without an
// API key. Surfaced to the user with a distinct message.
var ErrMissingCredentials = errors.New("model provider credentials are not configured")

// ModelProvider is the opaque request/response surface of the language
// model. One call per loop iteration; no streaming is consumed here.
type ModelProvider interface {
	// SendTurn sends the conversation so far plus the declared tool schemas
	// and returns the model's content blocks.
	SendTurn(ctx context.Context, turns []chat.ConversationTurn, tools []ToolSchema) (*ModelResponse, error)

	// Name returns the provider name (e.g., "anthropic", "lorem")
	Name() string

	// SupportsModel returns true if the provider supports the given model.
	SupportsModel(model string) bool
}

// ModelResponse is one model answer, already converted to domain blocks.
type ModelResponse struct {
	Blocks     []chat.ContentBlock
	Model      string
	StopReason string
}

// ToolSchema declares one tool to the provider in a provider-neutral form.
type ToolSchema struct {
	Name        string
	Description string
	Properties  map[string]interface{}
	Required    []string
}

// NoteEditorSchema declares the note-editing tool's command vocabulary.
func NoteEditorSchema() ToolSchema {
	return ToolSchema{
		Name:        ToolNameNoteEditor,
		Description: "View, create and edit the user's notes. Use command \"view\" with path \"notes\" to list all notes, or a note id to read one. Use \"str_replace\" to replace a unique snippet, \"insert\" to add a line, and \"create\" to make a new note. Note content is rich-text HTML.",
		Properties: map[string]interface{}{
			"command": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"view", "str_replace", "create", "insert"},
				"description": "The operation to perform.",
			},
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Note id, optionally prefixed with \"note-\" (e.g. \"note-123\" or \"123\"). Use \"notes\" to list all notes. For create, the path becomes the new note's title.",
			},
			"old_str": map[string]interface{}{
				"type":        "string",
				"description": "For str_replace: exact text to find. Must match exactly one location; add surrounding context to disambiguate.",
			},
			"new_str": map[string]interface{}{
				"type":        "string",
				"description": "For str_replace and insert: the replacement or inserted text.",
			},
			"insert_line": map[string]interface{}{
				"type":        "integer",
				"description": "For insert: 0-based line index to insert at. Out-of-range values are clamped.",
			},
			"file_text": map[string]interface{}{
				"type":        "string",
				"description": "For create: the new note's content (HTML).",
			},
		},
		Required: []string{"command", "path"},
	}
}

// WebSearchSchema declares the provider-resolved web search capability.
func WebSearchSchema() ToolSchema {
	return ToolSchema{
		Name:        ToolNameWebSearch,
		Description: "Search the web for current information. Returns web pages with titles, URLs, and content snippets.",
		Properties: map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "The search query.",
			},
			"max_results": map[string]interface{}{
				"type":        "integer",
				"description": "Optional: maximum number of results (default: 5).",
			},
		},
		Required: []string{"query"},
	}
}

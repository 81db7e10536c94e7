package assistant

import (
	"encoding/json"
	"fmt"
	"strings"

	"rolodex/internal/content"
	"rolodex/internal/domain/models/chat"
)

const (
	promptPreamble = `You are a helpful assistant for a contact management application with note-taking capabilities.
The user is asking: %q

You can edit note contents using the note editor tool. When working with notes:
- Use note IDs as file paths (e.g., "note-123" or just "123")
- Use "notes" to list all available notes
- The content is stored as HTML from a rich text editor
- You can view, edit, create, and modify note content directly
- You can perform multiple operations in sequence (e.g., view a note, edit it, then view it again)

`

	promptTrailer = `Please provide a helpful response. You can directly edit note contents using the note editor tool when users ask to modify, update, or create notes.`

	noContextLine = "No current page context available.\n\n"

	visibleSampleSize = 3
)

// PromptBuilder assembles the single textual prompt for a chat request:
// fixed preamble, optional page-context block, and a bounded window of
// recent history. Pure; identical inputs yield an identical string (map
// keys marshal in sorted order).
type PromptBuilder struct {
	historyTurns int
	markdown     *content.MarkdownConverter
}

// NewPromptBuilder creates a builder keeping historyTurns of history.
func NewPromptBuilder(historyTurns int, markdown *content.MarkdownConverter) *PromptBuilder {
	return &PromptBuilder{
		historyTurns: historyTurns,
		markdown:     markdown,
	}
}

// Build assembles the prompt for one user message.
func (b *PromptBuilder) Build(message string, pageCtx *chat.PageContext, history []chat.ConversationTurn) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, promptPreamble, message)

	if pageCtx != nil {
		sb.WriteString("Current context:\n")
		fmt.Fprintf(&sb, "- Total items: %d\n", pageCtx.TotalCount)
		fmt.Fprintf(&sb, "- Current filters: %s\n", stableJSON(pageCtx.CurrentFilters))
		fmt.Fprintf(&sb, "- Current sorting: %s\n", stableJSON(pageCtx.CurrentSort))
		fmt.Fprintf(&sb, "- Visible data sample: %s\n\n", stableJSON(b.sampleRows(pageCtx.VisibleData)))
	} else {
		sb.WriteString(noContextLine)
	}

	if len(history) > 0 {
		sb.WriteString("Recent conversation:\n")
		start := len(history) - b.historyTurns
		if start < 0 {
			start = 0
		}
		for _, turn := range history[start:] {
			fmt.Fprintf(&sb, "%s: %s\n", turn.Role, turn.PlainText())
		}
		sb.WriteString("\n")
	}

	sb.WriteString(promptTrailer)
	return sb.String()
}

// sampleRows truncates visible data to the first rows and renders HTML
// content fields as markdown so the model reads prose, not editor markup.
func (b *PromptBuilder) sampleRows(rows []map[string]interface{}) []map[string]interface{} {
	n := len(rows)
	if n > visibleSampleSize {
		n = visibleSampleSize
	}

	sample := make([]map[string]interface{}, 0, n)
	for _, row := range rows[:n] {
		out := make(map[string]interface{}, len(row))
		for k, v := range row {
			if k == "content" {
				if html, ok := v.(string); ok {
					out[k] = strings.TrimSpace(b.markdown.Convert(html))
					continue
				}
			}
			out[k] = v
		}
		sample = append(sample, out)
	}
	return sample
}

// stableJSON marshals with indentation; Go marshals map keys sorted, so
// the output is deterministic for equal inputs.
func stableJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

package chat

// Roles for conversation turns
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Block type constants
const (
	BlockTypeText       = "text"
	BlockTypeToolUse    = "tool_use"
	BlockTypeToolResult = "tool_result"
	BlockTypeImage      = "image"
)

// ContentBlock is one piece of a turn's content. Exactly one of the
// type-specific fields is set, according to Type.
//
// User blocks: text, image, tool_result
// Assistant blocks: text, tool_use
type ContentBlock struct {
	Type       string          `json:"type"`
	Text       string          `json:"text,omitempty"`
	ToolUse    *ToolInvocation `json:"tool_use,omitempty"`
	ToolResult *ToolResult     `json:"tool_result,omitempty"`
}

// ToolInvocation is a structured tool request emitted by the model.
// Application code never constructs these except when replaying history.
type ToolInvocation struct {
	ID    string                 `json:"id"`
	Name  string                 `json:"name"`
	Input map[string]interface{} `json:"input"`
}

// Command returns the "command" input field, if present.
func (t *ToolInvocation) Command() string {
	s, _ := t.Input["command"].(string)
	return s
}

// Path returns the "path" input field, if present.
func (t *ToolInvocation) Path() string {
	s, _ := t.Input["path"].(string)
	return s
}

// ToolResult answers exactly one ToolInvocation, correlated by ToolUseID.
type ToolResult struct {
	ToolUseID string `json:"tool_use_id"`
	Content   string `json:"content"`
	IsError   bool   `json:"is_error"`
}

// ConversationTurn is one exchange unit sent to or received from the model.
// Inbound history from the UI carries plain Content; turns built during a
// loop run carry Blocks.
type ConversationTurn struct {
	Role    string         `json:"role"`
	Content string         `json:"content,omitempty"`
	Blocks  []ContentBlock `json:"blocks,omitempty"`
}

// NewTextTurn builds a plain-text turn.
func NewTextTurn(role, text string) ConversationTurn {
	return ConversationTurn{Role: role, Content: text}
}

// NewToolResultTurn wraps a round of tool results in a user turn,
// preserving the order the invocations were executed in.
func NewToolResultTurn(results []ToolResult) ConversationTurn {
	blocks := make([]ContentBlock, 0, len(results))
	for i := range results {
		r := results[i]
		blocks = append(blocks, ContentBlock{Type: BlockTypeToolResult, ToolResult: &r})
	}
	return ConversationTurn{Role: RoleUser, Blocks: blocks}
}

// PlainText returns the turn's textual content: Content if set, otherwise
// the concatenation of its text blocks.
func (t *ConversationTurn) PlainText() string {
	if t.Content != "" {
		return t.Content
	}
	var out string
	for _, b := range t.Blocks {
		if b.Type == BlockTypeText {
			if out != "" {
				out += "\n"
			}
			out += b.Text
		}
	}
	return out
}

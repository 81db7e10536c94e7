package assistant

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"rolodex/internal/config"
	"rolodex/internal/domain/models/chat"
)

// Request is the inbound chat boundary: one user message plus whatever the
// UI carries along. History persistence is the caller's concern; the loop
// only reads Messages to construct its next model request.
type Request struct {
	Message     string                  `json:"message"`
	Context     *chat.PageContext       `json:"context,omitempty"`
	Messages    []chat.ConversationTurn `json:"messages,omitempty"`
	Attachments []Attachment            `json:"attachments,omitempty"`
}

// Attachment is accepted on the wire for forward compatibility with the
// upload UI; the loop does not consume attachments.
type Attachment struct {
	Name      string `json:"name"`
	MediaType string `json:"media_type"`
	Data      []byte `json:"data"`
}

// Validate rejects malformed requests before any model call is made.
func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Message,
			validation.Required.Error("message is required"),
			validation.Length(1, config.MaxMessageLength),
		),
	)
}

// Response is the outbound chat boundary: the final natural-language
// message plus the audit trail of every tool use across all iterations.
type Response struct {
	Message        string                `json:"message"`
	FunctionResult *FunctionResult       `json:"functionResult,omitempty"`
	ToolCalls      []chat.ToolCallRecord `json:"toolCalls,omitempty"`
}

// FunctionResult summarizes the executed operations for the UI.
type FunctionResult struct {
	Success bool                `json:"success"`
	Data    *FunctionResultData `json:"data,omitempty"`
}

// FunctionResultData flattens successful operations; Note is set only for
// degraded outcomes such as hitting the iteration cap.
type FunctionResultData struct {
	TotalOperations int              `json:"totalOperations"`
	Operations      []chat.Operation `json:"operations"`
	Note            string           `json:"note,omitempty"`
}

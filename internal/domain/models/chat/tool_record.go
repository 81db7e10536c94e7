package chat

// ToolCallRecord is the caller-facing audit record for one executed tool
// invocation. The loop builds one per invocation regardless of how many
// iterations occurred, so the UI can always account for every tool use.
type ToolCallRecord struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
	Result    *ToolCallResult        `json:"result,omitempty"`
}

// ToolCallResult is the outcome attached to a ToolCallRecord.
type ToolCallResult struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Operation is one entry of the flattened operations summary returned to
// the caller alongside the final message.
type Operation struct {
	Operation string `json:"operation"`
	Path      string `json:"path"`
	Result    string `json:"result"`
}

package assistant

// Tool names declared to the model provider.
const (
	// ToolNameNoteEditor is the note-editing tool's schema name. The alias
	// below covers models that answer with the Anthropic built-in editor
	// tool name instead.
	ToolNameNoteEditor      = "note_editor"
	toolNameNoteEditorAlias = "str_replace_based_edit_tool"

	// ToolNameWebSearch is resolved provider-side; the loop never executes
	// it locally.
	ToolNameWebSearch = "web_search"
)

// ToolKind is the closed set of tools the conversation loop can dispatch.
// Dispatch switches over this enumeration rather than raw name strings, so
// adding a tool is a compile-time-checked extension: add a variant, extend
// KindOfTool, and the loop's switch.
type ToolKind int

const (
	ToolKindUnknown ToolKind = iota
	ToolKindNoteEditor
	ToolKindWebSearch
)

// KindOfTool classifies a tool name reported by the model.
func KindOfTool(name string) ToolKind {
	switch name {
	case ToolNameNoteEditor, toolNameNoteEditorAlias:
		return ToolKindNoteEditor
	case ToolNameWebSearch:
		return ToolKindWebSearch
	default:
		return ToolKindUnknown
	}
}

func (k ToolKind) String() string {
	switch k {
	case ToolKindNoteEditor:
		return "note_editor"
	case ToolKindWebSearch:
		return "web_search"
	default:
		return "unknown"
	}
}

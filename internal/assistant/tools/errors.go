package tools

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a tool execution failure. The conversation loop maps
// kinds to human-readable messages the model can act on; none of them abort
// the overall request.
type ErrorKind int

const (
	// KindAdapter means the underlying store operation itself failed.
	KindAdapter ErrorKind = iota
	// KindNotFound means the note id did not resolve.
	KindNotFound
	// KindNoMatch means the replacement text was absent.
	KindNoMatch
	// KindAmbiguousMatch means the replacement text occurred more than once.
	KindAmbiguousMatch
	// KindValidation means a required option was missing or malformed.
	KindValidation
	// KindUnsupportedCommand means the command verb is not recognized.
	KindUnsupportedCommand
	// KindUnknownTool means the tool name itself is not recognized.
	KindUnknownTool
)

// Error is a classified tool failure. Message is already phrased for the
// model to read back.
type Error struct {
	Kind    ErrorKind
	Message string
	Matches int // occurrence count, set for KindAmbiguousMatch
}

func (e *Error) Error() string { return e.Message }

// NewNotFoundError reports a note id that did not resolve.
func NewNotFoundError() *Error {
	return &Error{Kind: KindNotFound, Message: "File not found"}
}

// NewNoMatchError reports replacement text absent from the note.
func NewNoMatchError() *Error {
	return &Error{
		Kind:    KindNoMatch,
		Message: "No match found for replacement. Please check your text and try again.",
	}
}

// NewAmbiguousMatchError reports a non-unique match. The message states the
// exact count so the model can add surrounding context.
func NewAmbiguousMatchError(count int) *Error {
	return &Error{
		Kind:    KindAmbiguousMatch,
		Matches: count,
		Message: fmt.Sprintf("Found %d matches for replacement text. Please provide more context to make a unique match.", count),
	}
}

// NewValidationError reports a missing or malformed option.
func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NewUnsupportedCommandError reports an unrecognized command verb.
func NewUnsupportedCommandError(command string) *Error {
	return &Error{
		Kind:    KindUnsupportedCommand,
		Message: fmt.Sprintf("Unsupported command: %s", command),
	}
}

// NewUnknownToolError reports an unrecognized tool name.
func NewUnknownToolError(name string) *Error {
	return &Error{
		Kind:    KindUnknownTool,
		Message: fmt.Sprintf("Unknown tool: %s", name),
	}
}

// NewAdapterError wraps a store failure, passing its message through.
func NewAdapterError(err error) *Error {
	return &Error{Kind: KindAdapter, Message: err.Error()}
}

// ResultMessage renders any tool error as the text fed back to the model.
func ResultMessage(err error) string {
	if err == nil {
		return ""
	}
	var toolErr *Error
	if errors.As(err, &toolErr) {
		return toolErr.Message
	}
	return err.Error()
}

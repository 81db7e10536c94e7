package tools

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Typed option records, one per command, validated once at dispatch.
// The model sends a single flat input object; these decode the
// command-specific fields out of it so the command implementations never
// inspect the raw map.

// StrReplaceOptions carries the str_replace parameters.
type StrReplaceOptions struct {
	OldStr string
	NewStr string // empty string is a deletion
}

// Validate implements the record's invariants.
func (o StrReplaceOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.OldStr, validation.Required.Error("old_str is required for str_replace")),
	)
}

// ParseStrReplaceOptions extracts str_replace options from tool input.
// new_str must be present but may be empty.
func ParseStrReplaceOptions(input map[string]interface{}) (StrReplaceOptions, error) {
	var opts StrReplaceOptions

	oldStr, _ := input["old_str"].(string)
	newStr, newOK := input["new_str"].(string)
	if !newOK {
		if _, present := input["new_str"]; !present {
			return opts, NewValidationError("old_str and new_str are required for str_replace")
		}
		return opts, NewValidationError("new_str must be a string")
	}

	opts = StrReplaceOptions{OldStr: oldStr, NewStr: newStr}
	if err := opts.Validate(); err != nil {
		return opts, NewValidationError(err.Error())
	}
	return opts, nil
}

// CreateOptions carries the create parameters.
type CreateOptions struct {
	FileText string // may be empty: an empty note is valid
}

// ParseCreateOptions extracts create options from tool input.
func ParseCreateOptions(input map[string]interface{}) (CreateOptions, error) {
	fileText, ok := input["file_text"].(string)
	if !ok {
		if _, present := input["file_text"]; !present {
			return CreateOptions{}, NewValidationError("file_text is required for create")
		}
		return CreateOptions{}, NewValidationError("file_text must be a string")
	}
	return CreateOptions{FileText: fileText}, nil
}

// InsertOptions carries the insert parameters. InsertLine is the 0-based
// target line index; out-of-range values are clamped, not rejected.
type InsertOptions struct {
	InsertLine int
	NewStr     string // may be empty: inserting a blank line is valid
}

// ParseInsertOptions extracts insert options from tool input.
// JSON numbers arrive as float64.
func ParseInsertOptions(input map[string]interface{}) (InsertOptions, error) {
	lineFloat, ok := input["insert_line"].(float64)
	if !ok {
		if _, present := input["insert_line"]; !present {
			return InsertOptions{}, NewValidationError("insert_line is required for insert")
		}
		return InsertOptions{}, NewValidationError("insert_line must be an integer")
	}

	newStr, ok := input["new_str"].(string)
	if !ok {
		if _, present := input["new_str"]; !present {
			return InsertOptions{}, NewValidationError("new_str is required for insert")
		}
		return InsertOptions{}, NewValidationError("new_str must be a string")
	}

	return InsertOptions{InsertLine: int(lineFloat), NewStr: newStr}, nil
}

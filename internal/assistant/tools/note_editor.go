package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"rolodex/internal/content"
	"rolodex/internal/domain"
	"rolodex/internal/domain/models"
	"rolodex/internal/domain/repositories"
)

// Note identifiers given by the model may be bare ("123") or prefixed
// ("note-123"); the reserved list tokens denote "all notes".
const (
	notePrefix    = "note-"
	listToken     = "notes"
	listTokenDot  = "."
	previewLength = 50
)

var titleExtPattern = regexp.MustCompile(`\.(txt|md|html)$`)

// NoteEditor implements the note-editing tool: view, str_replace, create
// and insert against the note store. Edits always fetch-modify-write the
// whole content field; str_replace's exactly-one-match rule is what keeps
// concurrent edits honest without version numbers.
type NoteEditor struct {
	notes     repositories.NoteRepository
	sanitizer *content.Sanitizer
	logger    *slog.Logger
}

// NewNoteEditor creates a NoteEditor over the given note store.
func NewNoteEditor(notes repositories.NoteRepository, sanitizer *content.Sanitizer, logger *slog.Logger) *NoteEditor {
	return &NoteEditor{
		notes:     notes,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// Execute implements the Executor interface.
// Input parameters:
//   - command (string, required): "view", "str_replace", "create", or "insert"
//   - path (string): note id, optionally "note-"-prefixed; "notes" lists all
//   - old_str / new_str (string): for str_replace
//   - insert_line (integer), new_str (string): for insert
//   - file_text (string): for create
func (e *NoteEditor) Execute(ctx context.Context, input map[string]interface{}) (string, error) {
	command, ok := input["command"].(string)
	if !ok || command == "" {
		return "", NewValidationError("command is required")
	}
	path, _ := input["path"].(string)

	e.logger.Debug("note editor operation", "command", command, "path", path)

	switch command {
	case "view":
		return e.view(ctx, path)
	case "str_replace":
		return e.strReplace(ctx, path, input)
	case "create":
		return e.create(ctx, path, input)
	case "insert":
		return e.insert(ctx, path, input)
	default:
		return "", NewUnsupportedCommandError(command)
	}
}

// view lists all notes for the reserved token, or returns one note's
// content as 1-based numbered lines. Never mutates the store.
func (e *NoteEditor) view(ctx context.Context, path string) (string, error) {
	if path == listToken || path == listTokenDot {
		notes, err := e.notes.List(ctx, repositories.NoteListParams{})
		if err != nil {
			return "", NewAdapterError(err)
		}
		if len(notes) == 0 {
			return "No notes found.", nil
		}

		lines := make([]string, 0, len(notes))
		for i, n := range notes {
			lines = append(lines, fmt.Sprintf("%d: %s - %s (%s...)", i+1, n.ID, n.DisplayTitle(), preview(n.Content)))
		}
		return strings.Join(lines, "\n"), nil
	}

	note, err := e.fetch(ctx, path)
	if err != nil {
		return "", err
	}

	lines := strings.Split(note.Content, "\n")
	numbered := make([]string, len(lines))
	for i, line := range lines {
		numbered[i] = fmt.Sprintf("%d: %s", i+1, line)
	}
	return strings.Join(numbered, "\n"), nil
}

// strReplace swaps exactly one occurrence of old_str for new_str and
// persists the full updated content. Zero matches and multiple matches are
// both classified failures; content is untouched in either case.
func (e *NoteEditor) strReplace(ctx context.Context, path string, input map[string]interface{}) (string, error) {
	opts, err := ParseStrReplaceOptions(input)
	if err != nil {
		return "", err
	}

	note, err := e.fetch(ctx, path)
	if err != nil {
		return "", err
	}

	matches := strings.Count(note.Content, opts.OldStr)
	if matches == 0 {
		return "", NewNoMatchError()
	}
	if matches > 1 {
		return "", NewAmbiguousMatchError(matches)
	}

	updated := strings.Replace(note.Content, opts.OldStr, opts.NewStr, 1)
	if err := e.notes.Update(ctx, note.ID, models.NoteUpdate{Content: &updated}); err != nil {
		return "", classifyStoreError(err)
	}

	return "Successfully replaced text at exactly one location.", nil
}

// create makes a new note. The title is derived from the path by stripping
// the note prefix and known extensions; an empty remainder yields an
// untitled note. Content from the model is sanitized before persisting.
func (e *NoteEditor) create(ctx context.Context, path string, input map[string]interface{}) (string, error) {
	opts, err := ParseCreateOptions(input)
	if err != nil {
		return "", err
	}

	note := &models.Note{
		Title:   deriveTitle(path),
		Content: e.sanitizer.Sanitize(opts.FileText),
	}
	if err := e.notes.Create(ctx, note); err != nil {
		return "", NewAdapterError(err)
	}

	if note.Title != nil {
		return fmt.Sprintf("Successfully created new note %q with ID: %s.", *note.Title, note.ID), nil
	}
	return fmt.Sprintf("Successfully created new note with ID: %s.", note.ID), nil
}

// insert splices new_str in as its own line. The target index is clamped
// to [0, lineCount]: negative indexes prepend, past-the-end appends.
func (e *NoteEditor) insert(ctx context.Context, path string, input map[string]interface{}) (string, error) {
	opts, err := ParseInsertOptions(input)
	if err != nil {
		return "", err
	}

	note, err := e.fetch(ctx, path)
	if err != nil {
		return "", err
	}

	lines := strings.Split(note.Content, "\n")
	index := opts.InsertLine
	if index < 0 {
		index = 0
	}
	if index > len(lines) {
		index = len(lines)
	}

	spliced := make([]string, 0, len(lines)+1)
	spliced = append(spliced, lines[:index]...)
	spliced = append(spliced, opts.NewStr)
	spliced = append(spliced, lines[index:]...)

	updated := strings.Join(spliced, "\n")
	if err := e.notes.Update(ctx, note.ID, models.NoteUpdate{Content: &updated}); err != nil {
		return "", classifyStoreError(err)
	}

	return fmt.Sprintf("Successfully inserted text at line %d.", opts.InsertLine), nil
}

// fetch resolves a path to a note, classifying missing ids.
func (e *NoteEditor) fetch(ctx context.Context, path string) (*models.Note, error) {
	if path == "" {
		return nil, NewValidationError("path is required")
	}
	id := strings.TrimPrefix(path, notePrefix)

	note, err := e.notes.GetByID(ctx, id)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	return note, nil
}

func classifyStoreError(err error) *Error {
	if errors.Is(err, domain.ErrNotFound) {
		return NewNotFoundError()
	}
	return NewAdapterError(err)
}

// deriveTitle turns a create path into a note title, or nil for untitled.
func deriveTitle(path string) *string {
	title := strings.TrimPrefix(path, notePrefix)
	title = titleExtPattern.ReplaceAllString(title, "")
	if title == "" {
		return nil
	}
	return &title
}

func preview(content string) string {
	if len(content) > previewLength {
		return content[:previewLength]
	}
	return content
}

package repositories

import (
	"context"

	"rolodex/internal/domain/models"
)

// NoteListParams narrows a note listing. Zero value lists everything,
// newest first.
type NoteListParams struct {
	ContactID *string
	MeetingID *string
	Limit     int // 0 means no limit
}

// NoteRepository is the note store the assistant's tool executor drives.
// Implementations return domain.ErrNotFound (wrapped) for missing ids.
type NoteRepository interface {
	List(ctx context.Context, params NoteListParams) ([]models.Note, error)
	GetByID(ctx context.Context, id string) (*models.Note, error)
	Create(ctx context.Context, note *models.Note) error
	Update(ctx context.Context, id string, update models.NoteUpdate) error
}

package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"rolodex/internal/domain"
	"rolodex/internal/domain/models"
	"rolodex/internal/domain/repositories"
)

// PostgresNoteRepository implements the NoteRepository interface
type PostgresNoteRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(config *RepositoryConfig) repositories.NoteRepository {
	return &PostgresNoteRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// List retrieves notes matching params, newest first
func (r *PostgresNoteRepository) List(ctx context.Context, params repositories.NoteListParams) ([]models.Note, error) {
	var (
		conditions []string
		args       []interface{}
	)

	if params.ContactID != nil {
		args = append(args, *params.ContactID)
		conditions = append(conditions, fmt.Sprintf("contact_id = $%d", len(args)))
	}
	if params.MeetingID != nil {
		args = append(args, *params.MeetingID)
		conditions = append(conditions, fmt.Sprintf("meeting_id = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT id, title, content, contact_id, meeting_id, created_at, updated_at
		FROM %s
	`, r.tables.Notes)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if params.Limit > 0 {
		args = append(args, params.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.ContactID, &n.MeetingID, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return notes, nil
}

// GetByID retrieves a note by ID
func (r *PostgresNoteRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	query := fmt.Sprintf(`
		SELECT id, title, content, contact_id, meeting_id, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Notes)

	var n models.Note
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&n.ID,
		&n.Title,
		&n.Content,
		&n.ContactID,
		&n.MeetingID,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	return &n, nil
}

// Create inserts a new note and populates its generated fields
func (r *PostgresNoteRepository) Create(ctx context.Context, note *models.Note) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, content, contact_id, meeting_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, r.tables.Notes)

	err := r.pool.QueryRow(ctx, query,
		note.Title,
		note.Content,
		note.ContactID,
		note.MeetingID,
	).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("note references a missing contact or meeting: %w", domain.ErrValidation)
		}
		return fmt.Errorf("create note: %w", err)
	}

	return nil
}

// Update applies a partial update; nil fields are left unchanged
func (r *PostgresNoteRepository) Update(ctx context.Context, id string, update models.NoteUpdate) error {
	var (
		sets []string
		args []interface{}
	)

	if update.Title != nil {
		args = append(args, *update.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if update.Content != nil {
		args = append(args, *update.Content)
		sets = append(sets, fmt.Sprintf("content = $%d", len(args)))
	}
	if update.ContactID != nil {
		args = append(args, *update.ContactID)
		sets = append(sets, fmt.Sprintf("contact_id = $%d", len(args)))
	}
	if update.MeetingID != nil {
		args = append(args, *update.MeetingID)
		sets = append(sets, fmt.Sprintf("meeting_id = $%d", len(args)))
	}

	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE %s SET %s WHERE id = $%d
	`, r.tables.Notes, strings.Join(sets, ", "), len(args))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

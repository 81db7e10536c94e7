package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"rolodex/internal/domain"
	"rolodex/internal/domain/models"
	"rolodex/internal/domain/repositories"
)

// PostgresMeetingRepository implements the MeetingRepository interface
type PostgresMeetingRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(config *RepositoryConfig) repositories.MeetingRepository {
	return &PostgresMeetingRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// List retrieves meetings, most recent first
func (r *PostgresMeetingRepository) List(ctx context.Context, limit int) ([]models.Meeting, error) {
	query := fmt.Sprintf(`
		SELECT id, title, starts_at, location, created_at, updated_at
		FROM %s
		ORDER BY starts_at DESC NULLS LAST
	`, r.tables.Meetings)

	var args []interface{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	var meetings []models.Meeting
	for rows.Next() {
		var m models.Meeting
		if err := rows.Scan(&m.ID, &m.Title, &m.StartsAt, &m.Location, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		meetings = append(meetings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}

	return meetings, nil
}

// GetByID retrieves a meeting by ID
func (r *PostgresMeetingRepository) GetByID(ctx context.Context, id string) (*models.Meeting, error) {
	query := fmt.Sprintf(`
		SELECT id, title, starts_at, location, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Meetings)

	var m models.Meeting
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Title, &m.StartsAt, &m.Location, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("meeting %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get meeting: %w", err)
	}

	return &m, nil
}

// Create inserts a new meeting
func (r *PostgresMeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, starts_at, location)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, r.tables.Meetings)

	err := r.pool.QueryRow(ctx, query,
		meeting.Title,
		meeting.StartsAt,
		meeting.Location,
	).Scan(&meeting.ID, &meeting.CreatedAt, &meeting.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create meeting: %w", err)
	}

	return nil
}

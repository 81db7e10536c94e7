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

// PostgresContactRepository implements the ContactRepository interface
type PostgresContactRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewContactRepository creates a new contact repository
func NewContactRepository(config *RepositoryConfig) repositories.ContactRepository {
	return &PostgresContactRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// List retrieves contacts ordered by last name
func (r *PostgresContactRepository) List(ctx context.Context, limit int) ([]models.Contact, error) {
	query := fmt.Sprintf(`
		SELECT id, first_name, last_name, email, company, created_at, updated_at
		FROM %s
		ORDER BY last_name, first_name
	`, r.tables.Contacts)

	var args []interface{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Company, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	return contacts, nil
}

// GetByID retrieves a contact by ID
func (r *PostgresContactRepository) GetByID(ctx context.Context, id string) (*models.Contact, error) {
	query := fmt.Sprintf(`
		SELECT id, first_name, last_name, email, company, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Contacts)

	var c models.Contact
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Company, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("contact %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}

	return &c, nil
}

// Create inserts a new contact
func (r *PostgresContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (first_name, last_name, email, company)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, r.tables.Contacts)

	err := r.pool.QueryRow(ctx, query,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Company,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("contact already exists: %w", domain.ErrConflict)
		}
		return fmt.Errorf("create contact: %w", err)
	}

	return nil
}

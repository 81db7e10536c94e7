package repositories

import (
	"context"

	"rolodex/internal/domain/models"
)

// ContactRepository provides read access to contact records.
type ContactRepository interface {
	List(ctx context.Context, limit int) ([]models.Contact, error)
	GetByID(ctx context.Context, id string) (*models.Contact, error)
	Create(ctx context.Context, contact *models.Contact) error
}

// MeetingRepository provides read access to meeting records.
type MeetingRepository interface {
	List(ctx context.Context, limit int) ([]models.Meeting, error)
	GetByID(ctx context.Context, id string) (*models.Meeting, error)
	Create(ctx context.Context, meeting *models.Meeting) error
}

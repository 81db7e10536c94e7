package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rolodex/internal/domain/models"
	"rolodex/internal/domain/repositories"
)

// sample data for local development: a handful of contacts, two meetings,
// and notes linked to both so the assistant has something to edit.

func ptr(s string) *string { return &s }

// Seeder inserts sample data through the repository layer so the rows go
// through the same validation as production writes.
type Seeder struct {
	Contacts repositories.ContactRepository
	Meetings repositories.MeetingRepository
	Notes    repositories.NoteRepository
	Logger   *slog.Logger
}

// Run inserts the sample dataset.
func (s *Seeder) Run(ctx context.Context) error {
	contacts := []models.Contact{
		{FirstName: "Ada", LastName: "Lovelace", Email: ptr("ada@example.com"), Company: ptr("Analytical Engines Ltd")},
		{FirstName: "Grace", LastName: "Hopper", Email: ptr("grace@example.com"), Company: ptr("Navy Research")},
		{FirstName: "Linus", LastName: "Torvalds", Email: ptr("linus@example.com")},
	}
	for i := range contacts {
		if err := s.Contacts.Create(ctx, &contacts[i]); err != nil {
			return fmt.Errorf("seed contact %q: %w", contacts[i].FullName(), err)
		}
		s.Logger.Info("seeded contact", "id", contacts[i].ID, "name", contacts[i].FullName())
	}

	nextWeek := time.Now().AddDate(0, 0, 7)
	meetings := []models.Meeting{
		{Title: "Quarterly planning", StartsAt: &nextWeek, Location: ptr("Room 4B")},
		{Title: "Intro call", StartsAt: nil, Location: nil},
	}
	for i := range meetings {
		if err := s.Meetings.Create(ctx, &meetings[i]); err != nil {
			return fmt.Errorf("seed meeting %q: %w", meetings[i].Title, err)
		}
		s.Logger.Info("seeded meeting", "id", meetings[i].ID, "title", meetings[i].Title)
	}

	notes := []models.Note{
		{
			Title:     ptr("Follow-up items"),
			Content:   "<p>Send the contract draft to Ada.</p><p>Schedule a demo for next month.</p>",
			ContactID: &contacts[0].ID,
		},
		{
			Title:     ptr("Planning agenda"),
			Content:   "<p>Budget review</p><p>Hiring plan</p><p>Roadmap priorities</p>",
			MeetingID: &meetings[0].ID,
		},
		{
			Title:   nil,
			Content: "<p>Remember to update the CRM export script.</p>",
		},
	}
	for i := range notes {
		if err := s.Notes.Create(ctx, &notes[i]); err != nil {
			return fmt.Errorf("seed note %q: %w", notes[i].DisplayTitle(), err)
		}
		s.Logger.Info("seeded note", "id", notes[i].ID, "title", notes[i].DisplayTitle())
	}

	return nil
}

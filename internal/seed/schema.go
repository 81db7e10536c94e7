package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"rolodex/internal/repository/postgres"
)

// RunSchema creates the contact, meeting and note tables if they do not
// exist. Idempotent; safe to run on every seed invocation.
func RunSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`); err != nil {
		return err
	}

	createContacts := `
		CREATE TABLE IF NOT EXISTS ` + tables.Contacts + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL DEFAULT '',
			email TEXT,
			company TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createContacts); err != nil {
		return err
	}

	createMeetings := `
		CREATE TABLE IF NOT EXISTS ` + tables.Meetings + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			title TEXT NOT NULL,
			starts_at TIMESTAMPTZ,
			location TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createMeetings); err != nil {
		return err
	}

	createNotes := `
		CREATE TABLE IF NOT EXISTS ` + tables.Notes + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			title TEXT,
			content TEXT NOT NULL,
			contact_id UUID REFERENCES ` + tables.Contacts + `(id) ON DELETE SET NULL,
			meeting_id UUID REFERENCES ` + tables.Meetings + `(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createNotes); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `notes_contact_id ON ` + tables.Notes + `(contact_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `notes_meeting_id ON ` + tables.Notes + `(meeting_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `notes_created_at ON ` + tables.Notes + `(created_at DESC)`,
	}
	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// DropTables drops all tables. Destructive; blocked in production by the
// seed command.
func DropTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	drops := []string{
		`DROP TABLE IF EXISTS ` + tables.Notes + ` CASCADE`,
		`DROP TABLE IF EXISTS ` + tables.Meetings + ` CASCADE`,
		`DROP TABLE IF EXISTS ` + tables.Contacts + ` CASCADE`,
	}
	for _, dropSQL := range drops {
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
	}
	return nil
}

// ClearData deletes all rows while keeping the schema.
func ClearData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	deletes := []string{
		`DELETE FROM ` + tables.Notes,
		`DELETE FROM ` + tables.Meetings,
		`DELETE FROM ` + tables.Contacts,
	}
	for _, deleteSQL := range deletes {
		if _, err := pool.Exec(ctx, deleteSQL); err != nil {
			return err
		}
	}
	return nil
}

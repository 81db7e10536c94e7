package models

import "time"

// Note is a free-form rich-text record, optionally linked to a contact
// and/or a meeting. Content is HTML as produced by the frontend editor.
type Note struct {
	ID        string    `json:"id" db:"id"`
	Title     *string   `json:"title,omitempty" db:"title"`
	Content   string    `json:"content" db:"content"`
	ContactID *string   `json:"contact_id,omitempty" db:"contact_id"`
	MeetingID *string   `json:"meeting_id,omitempty" db:"meeting_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DisplayTitle returns the title or "Untitled" for notes without one.
func (n *Note) DisplayTitle() string {
	if n.Title == nil || *n.Title == "" {
		return "Untitled"
	}
	return *n.Title
}

// NoteUpdate carries the fields of a partial note update.
// Nil fields are left unchanged.
type NoteUpdate struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	ContactID *string `json:"contact_id,omitempty"`
	MeetingID *string `json:"meeting_id,omitempty"`
}

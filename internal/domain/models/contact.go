package models

import "time"

// Contact is a person record in the workspace.
type Contact struct {
	ID        string    `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     *string   `json:"email,omitempty" db:"email"`
	Company   *string   `json:"company,omitempty" db:"company"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// FullName returns "First Last" with empty parts trimmed.
func (c *Contact) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// Meeting is a scheduled event notes can link to.
type Meeting struct {
	ID        string     `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	StartsAt  *time.Time `json:"starts_at,omitempty" db:"starts_at"`
	Location  *string    `json:"location,omitempty" db:"location"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

package model

import (
	"strings"
	"time"
)

// Author field names follow the persisted JSON layout.
type Author struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Biography   *string   `json:"biography,omitempty"`
	BirthDate   *string   `json:"birthDate,omitempty"` // YYYY-MM-DD
	Nationality *string   `json:"nationality,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FullName is the display name books are searched by.
func (a *Author) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

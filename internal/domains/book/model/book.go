package model

import "time"

// Book field names follow the persisted JSON layout; collections
// written by earlier deployments must keep loading unchanged.
type Book struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	AuthorID        string    `json:"authorId"`
	Genre           string    `json:"genre"`
	PublishDate     string    `json:"publishDate"` // YYYY-MM-DD
	ISBN            *string   `json:"isbn,omitempty"`
	Description     *string   `json:"description,omitempty"`
	TotalCopies     int       `json:"totalCopies"`
	AvailableCopies int       `json:"availableCopies"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Availability filter values for search.
const (
	AvailabilityAll       = "all"
	AvailabilityAvailable = "available"
	AvailabilityBorrowed  = "borrowed"
)

// BookResponse is the API shape: the book plus its resolved author name.
type BookResponse struct {
	Book
	AuthorName string `json:"authorName,omitempty"`
}

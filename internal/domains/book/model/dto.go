package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateBookRequest struct {
	Title           string  `json:"title" binding:"required"`
	AuthorID        string  `json:"authorId" binding:"required"`
	Genre           string  `json:"genre" binding:"required"`
	PublishDate     string  `json:"publishDate" binding:"required"`
	ISBN            *string `json:"isbn,omitempty"`
	Description     *string `json:"description,omitempty"`
	TotalCopies     int     `json:"totalCopies" binding:"required"`
	AvailableCopies *int    `json:"availableCopies,omitempty"` // defaults to totalCopies
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.AuthorID, validation.Required.Error("authorId is required")),
		validation.Field(&r.Genre, validation.Required.Error("genre is required")),
		validation.Field(&r.PublishDate,
			validation.Required.Error("publishDate is required"),
			validation.Date("2006-01-02").Error("publishDate must be YYYY-MM-DD"),
		),
		validation.Field(&r.TotalCopies,
			validation.Required.Error("totalCopies is required"),
			validation.Min(1).Error("totalCopies must be at least 1"),
		),
	)
}

// UpdateBookRequest merges only the fields the caller sends.
type UpdateBookRequest struct {
	Title           *string `json:"title,omitempty"`
	AuthorID        *string `json:"authorId,omitempty"`
	Genre           *string `json:"genre,omitempty"`
	PublishDate     *string `json:"publishDate,omitempty"`
	ISBN            *string `json:"isbn,omitempty"`
	Description     *string `json:"description,omitempty"`
	TotalCopies     *int    `json:"totalCopies,omitempty"`
	AvailableCopies *int    `json:"availableCopies,omitempty"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Length(1, 255)),
		),
		validation.Field(&r.PublishDate,
			validation.When(r.PublishDate != nil, validation.Date("2006-01-02").Error("publishDate must be YYYY-MM-DD")),
		),
		validation.Field(&r.TotalCopies,
			validation.When(r.TotalCopies != nil, validation.Min(1).Error("totalCopies must be at least 1")),
		),
	)
}

// SearchRequest mirrors the search filters of the catalog page.
type SearchRequest struct {
	Query        string
	Genre        string
	Availability string
}

// ImportResult reports an xlsx bulk import: valid rows are created even
// when other rows fail.
type ImportResult struct {
	Created int           `json:"created"`
	Errors  []ImportError `json:"errors,omitempty"`
}

type ImportError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

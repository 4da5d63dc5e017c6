package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateAuthorRequest struct {
	FirstName   string  `json:"firstName" binding:"required"`
	LastName    string  `json:"lastName" binding:"required"`
	Biography   *string `json:"biography,omitempty"`
	BirthDate   *string `json:"birthDate,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required.Error("firstName is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("lastName is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.BirthDate,
			validation.When(r.BirthDate != nil, validation.By(validDate)),
		),
	)
}

// UpdateAuthorRequest merges only the fields the caller sends.
type UpdateAuthorRequest struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Biography   *string `json:"biography,omitempty"`
	BirthDate   *string `json:"birthDate,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.When(r.FirstName != nil, validation.Length(1, 100)),
		),
		validation.Field(&r.LastName,
			validation.When(r.LastName != nil, validation.Length(1, 100)),
		),
		validation.Field(&r.BirthDate,
			validation.When(r.BirthDate != nil, validation.By(validDate)),
		),
	)
}

func validDate(value interface{}) error {
	s, _ := value.(*string)
	if s == nil || *s == "" {
		return nil
	}
	return validation.Date("2006-01-02").Error("date must be YYYY-MM-DD").Validate(*s)
}

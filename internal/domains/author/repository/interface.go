package repository

import (
	"context"

	"library-backend/internal/domains/author/model"
)

// Repository owns the canonical in-memory author collection and mirrors
// every mutation to persistent storage.
type Repository interface {
	List(ctx context.Context) []model.Author
	FindByID(ctx context.Context, id string) (*model.Author, error)
	// FindByFullName matches "First Last" case-insensitively; used by
	// search and the bulk importer.
	FindByFullName(ctx context.Context, name string) (*model.Author, error)
	Create(ctx context.Context, a *model.Author) error
	Update(ctx context.Context, a *model.Author) error
	Delete(ctx context.Context, id string) error
}

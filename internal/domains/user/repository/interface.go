package repository

import (
	"context"

	"library-backend/internal/domains/user/model"
)

// Repository owns the canonical in-memory user collection and mirrors
// every mutation to persistent storage.
type Repository interface {
	List(ctx context.Context) []model.User
	Count(ctx context.Context) int
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) bool
	Create(ctx context.Context, u *model.User) error
}

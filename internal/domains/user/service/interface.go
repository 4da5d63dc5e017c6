package service

import (
	"context"

	"library-backend/internal/domains/user/model"
)

type Service interface {
	// Register creates a patron account and signs them in.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.LoginResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	RefreshToken(ctx context.Context, req *model.RefreshTokenRequest) (*model.LoginResponse, error)

	GetProfile(ctx context.Context, userID string) (*model.UserDTO, error)
	// List returns every account; admin reporting only.
	List(ctx context.Context) ([]model.UserDTO, error)
}

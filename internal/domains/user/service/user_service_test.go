package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/user/model"
	userRepo "library-backend/internal/domains/user/repository"
	"library-backend/internal/storage"
	"library-backend/pkg/jwt"
)

func newService(t *testing.T) (Service, userRepo.Repository) {
	t.Helper()
	repo, err := userRepo.NewRepository(context.Background(), storage.NewMemoryStore())
	require.NoError(t, err)

	manager := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)
	return NewUserService(repo, manager, time.Hour), repo
}

func register(t *testing.T, svc Service, email string) *model.LoginResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:     email,
		Password:  "correct-horse",
		FirstName: "Jean",
		LastName:  "Valjean",
	})
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	svc, repo := newService(t)

	resp := register(t, svc, "patron@example.com")
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, model.RoleUser, resp.User.Role)

	// the stored record carries a hash, never the password
	stored, err := repo.FindByEmail(context.Background(), "patron@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newService(t)

	register(t, svc, "patron@example.com")
	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:     "patron@example.com",
		Password:  "another-pass",
		FirstName: "Jean",
		LastName:  "Valjean",
	})
	assert.ErrorIs(t, err, model.ErrEmailAlreadyExists)
}

func TestRegisterConcurrentSameEmail(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	const attempts = 16
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(ctx, &model.RegisterRequest{
				Email:     "patron@example.com",
				Password:  "correct-horse",
				FirstName: "Jean",
				LastName:  "Valjean",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var created int
	for err := range errs {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, model.ErrEmailAlreadyExists)
		}
	}
	assert.Equal(t, 1, created)

	var matching int
	for _, u := range repo.List(ctx) {
		if u.Email == "patron@example.com" {
			matching++
		}
	}
	assert.Equal(t, 1, matching)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:     "patron@example.com",
		Password:  "short",
		FirstName: "Jean",
		LastName:  "Valjean",
	})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	svc, _ := newService(t)
	register(t, svc, "patron@example.com")

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "patron@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "patron@example.com", resp.User.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newService(t)
	register(t, svc, "patron@example.com")

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "patron@example.com",
		Password: "wrong-horse",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-pass",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginLegacyRecordWithoutHash(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{
		ID:    "legacy",
		Email: "legacy@example.com",
		Role:  model.RoleUser,
	}))

	_, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "legacy@example.com",
		Password: "anything-at-all",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	svc, _ := newService(t)
	first := register(t, svc, "patron@example.com")

	resp, err := svc.RefreshToken(context.Background(), &model.RefreshTokenRequest{
		RefreshToken: first.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, first.User.ID, resp.User.ID)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	svc, _ := newService(t)
	first := register(t, svc, "patron@example.com")

	_, err := svc.RefreshToken(context.Background(), &model.RefreshTokenRequest{
		RefreshToken: first.AccessToken,
	})
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestGetProfileAndList(t *testing.T) {
	svc, _ := newService(t)
	first := register(t, svc, "patron@example.com")
	register(t, svc, "patron2@example.com")

	dto, err := svc.GetProfile(context.Background(), first.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "patron@example.com", dto.Email)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

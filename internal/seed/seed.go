package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	authorModel "library-backend/internal/domains/author/model"
	authorRepo "library-backend/internal/domains/author/repository"
	bookModel "library-backend/internal/domains/book/model"
	bookRepo "library-backend/internal/domains/book/repository"
	userModel "library-backend/internal/domains/user/model"
	userRepo "library-backend/internal/domains/user/repository"
	"library-backend/pkg/logger"
)

var seededAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Run populates an empty installation: the admin account and a small
// starter catalog. Collections that already hold data are left alone,
// so restarting against an existing store never duplicates anything.
func Run(ctx context.Context, users userRepo.Repository, authors authorRepo.Repository, books bookRepo.Repository, adminEmail, adminPassword string) error {
	if err := seedAdmin(ctx, users, adminEmail, adminPassword); err != nil {
		return err
	}
	if err := seedCatalog(ctx, authors, books); err != nil {
		return err
	}
	return nil
}

func seedAdmin(ctx context.Context, users userRepo.Repository, email, password string) error {
	if users.Count(ctx) > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &userModel.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    "Admin",
		LastName:     "Library",
		Role:         userModel.RoleAdmin,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	logger.Info("Seeded admin account", map[string]interface{}{"email": email})
	return nil
}

func seedCatalog(ctx context.Context, authors authorRepo.Repository, books bookRepo.Repository) error {
	if len(authors.List(ctx)) > 0 || len(books.List(ctx)) > 0 {
		return nil
	}

	bio1 := "Écrivain français du XIXe siècle, figure du romantisme."
	bio2 := "Romancière française, première femme élue à l'Académie française."
	birth1 := "1802-02-26"
	birth2 := "1903-06-08"
	nationality := "Française"

	starterAuthors := []authorModel.Author{
		{
			ID:          "1",
			FirstName:   "Victor",
			LastName:    "Hugo",
			Biography:   &bio1,
			BirthDate:   &birth1,
			Nationality: &nationality,
			CreatedAt:   seededAt,
		},
		{
			ID:          "2",
			FirstName:   "Marguerite",
			LastName:    "Yourcenar",
			Biography:   &bio2,
			BirthDate:   &birth2,
			Nationality: &nationality,
			CreatedAt:   seededAt,
		},
	}

	isbn1 := "978-2070409228"
	isbn2 := "978-2070360017"
	desc1 := "Roman de Victor Hugo paru en 1862."
	desc2 := "Roman historique de Marguerite Yourcenar paru en 1951."
	starterBooks := []bookModel.Book{
		{
			ID:              "1",
			Title:           "Les Misérables",
			AuthorID:        "1",
			Genre:           "Roman",
			PublishDate:     "1862-01-01",
			ISBN:            &isbn1,
			Description:     &desc1,
			TotalCopies:     5,
			AvailableCopies: 3,
			CreatedAt:       seededAt,
		},
		{
			ID:              "2",
			Title:           "Mémoires d'Hadrien",
			AuthorID:        "2",
			Genre:           "Roman historique",
			PublishDate:     "1951-01-01",
			ISBN:            &isbn2,
			Description:     &desc2,
			TotalCopies:     3,
			AvailableCopies: 2,
			CreatedAt:       seededAt,
		},
	}

	for i := range starterAuthors {
		if err := authors.Create(ctx, &starterAuthors[i]); err != nil {
			return fmt.Errorf("seed author %s: %w", starterAuthors[i].ID, err)
		}
	}
	for i := range starterBooks {
		if err := books.Create(ctx, &starterBooks[i]); err != nil {
			return fmt.Errorf("seed book %s: %w", starterBooks[i].ID, err)
		}
	}

	logger.Info("Seeded starter catalog", map[string]interface{}{
		"authors": len(starterAuthors),
		"books":   len(starterBooks),
	})
	return nil
}

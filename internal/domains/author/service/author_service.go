package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/domains/author/repository"
	bookModel "library-backend/internal/domains/book/model"
	bookRepo "library-backend/internal/domains/book/repository"
)

type authorService struct {
	repo  repository.Repository
	books bookRepo.Repository
}

// NewAuthorService wires the catalog's author side. The book repository
// backs the referential delete guard: the guard lives here, in the
// owning store, not in the caller.
func NewAuthorService(repo repository.Repository, books bookRepo.Repository) Service {
	return &authorService{
		repo:  repo,
		books: books,
	}
}

func (s *authorService) List(ctx context.Context) []model.Author {
	return s.repo.List(ctx)
}

func (s *authorService) Get(ctx context.Context, id string) (*model.Author, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	author := &model.Author{
		ID:          uuid.NewString(),
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Biography:   req.Biography,
		BirthDate:   req.BirthDate,
		Nationality: req.Nationality,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, author); err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}
	return author, nil
}

func (s *authorService) Update(ctx context.Context, id string, req *model.UpdateAuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.FirstName != nil {
		name := strings.TrimSpace(*req.FirstName)
		if name == "" {
			return nil, model.ErrInvalidName
		}
		updated.FirstName = name
	}
	if req.LastName != nil {
		name := strings.TrimSpace(*req.LastName)
		if name == "" {
			return nil, model.ErrInvalidName
		}
		updated.LastName = name
	}
	if req.Biography != nil {
		updated.Biography = req.Biography
	}
	if req.BirthDate != nil {
		updated.BirthDate = req.BirthDate
	}
	if req.Nationality != nil {
		updated.Nationality = req.Nationality
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update author: %w", err)
	}
	return &updated, nil
}

func (s *authorService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	// An author with books still in the catalog cannot go; deleting
	// would leave dangling authorId references.
	if count := s.books.CountByAuthor(ctx, id); count > 0 {
		return fmt.Errorf("%w: author has %d linked books", model.ErrAuthorHasBooks, count)
	}

	return s.repo.Delete(ctx, id)
}

func (s *authorService) Books(ctx context.Context, id string) ([]bookModel.Book, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.books.ListByAuthor(ctx, id), nil
}

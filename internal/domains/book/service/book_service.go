package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	authorRepo "library-backend/internal/domains/author/repository"
	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
	loanRepo "library-backend/internal/domains/loan/repository"
)

type bookService struct {
	repo    repository.Repository
	authors authorRepo.Repository
	loans   loanRepo.Repository
}

// NewBookService wires the catalog's book side. Authors are needed to
// resolve display names and search by author; loans guard deletion.
func NewBookService(repo repository.Repository, authors authorRepo.Repository, loans loanRepo.Repository) Service {
	return &bookService{
		repo:    repo,
		authors: authors,
		loans:   loans,
	}
}

func (s *bookService) authorName(ctx context.Context, authorID string) string {
	a, err := s.authors.FindByID(ctx, authorID)
	if err != nil {
		return ""
	}
	return a.FullName()
}

func (s *bookService) toResponse(ctx context.Context, b model.Book) model.BookResponse {
	return model.BookResponse{
		Book:       b,
		AuthorName: s.authorName(ctx, b.AuthorID),
	}
}

func (s *bookService) List(ctx context.Context) ([]model.BookResponse, error) {
	books := s.repo.List(ctx)
	out := make([]model.BookResponse, len(books))
	for i, b := range books {
		out[i] = s.toResponse(ctx, b)
	}
	return out, nil
}

func (s *bookService) Get(ctx context.Context, id string) (*model.BookResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(ctx, *b)
	return &resp, nil
}

func (s *bookService) Create(ctx context.Context, req *model.CreateBookRequest) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The reference must resolve before the book exists; a dangling
	// authorId cannot enter the collection through the API.
	if _, err := s.authors.FindByID(ctx, req.AuthorID); err != nil {
		return nil, model.ErrAuthorNotFound
	}

	available := req.TotalCopies
	if req.AvailableCopies != nil {
		available = *req.AvailableCopies
	}
	if available < 0 || available > req.TotalCopies {
		return nil, model.ErrInvalidCopies
	}

	book := &model.Book{
		ID:              uuid.NewString(),
		Title:           strings.TrimSpace(req.Title),
		AuthorID:        req.AuthorID,
		Genre:           strings.TrimSpace(req.Genre),
		PublishDate:     req.PublishDate,
		ISBN:            req.ISBN,
		Description:     req.Description,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: available,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	resp := s.toResponse(ctx, *book)
	return &resp, nil
}

func (s *bookService) Update(ctx context.Context, id string, req *model.UpdateBookRequest) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, model.ErrInvalidTitle
		}
		updated.Title = title
	}
	if req.AuthorID != nil {
		if _, err := s.authors.FindByID(ctx, *req.AuthorID); err != nil {
			return nil, model.ErrAuthorNotFound
		}
		updated.AuthorID = *req.AuthorID
	}
	if req.Genre != nil {
		updated.Genre = strings.TrimSpace(*req.Genre)
	}
	if req.PublishDate != nil {
		updated.PublishDate = *req.PublishDate
	}
	if req.ISBN != nil {
		updated.ISBN = req.ISBN
	}
	if req.Description != nil {
		updated.Description = req.Description
	}
	if req.TotalCopies != nil {
		updated.TotalCopies = *req.TotalCopies
	}
	if req.AvailableCopies != nil {
		updated.AvailableCopies = *req.AvailableCopies
	}

	// availableCopies stays inside [0, totalCopies] no matter which of
	// the two fields moved.
	if updated.AvailableCopies < 0 {
		updated.AvailableCopies = 0
	}
	if updated.AvailableCopies > updated.TotalCopies {
		updated.AvailableCopies = updated.TotalCopies
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	resp := s.toResponse(ctx, updated)
	return &resp, nil
}

func (s *bookService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	// Copies that are still out must come back before the record goes.
	if open := s.loans.CountOpenByBook(ctx, id); open > 0 {
		return fmt.Errorf("%w: %d open loans", model.ErrBookHasActiveLoans, open)
	}

	return s.repo.Delete(ctx, id)
}

// Search filters in insertion order: case-insensitive substring on the
// title or the resolved author name, optional exact genre, optional
// availability filter. No ranking.
func (s *bookService) Search(ctx context.Context, req model.SearchRequest) ([]model.BookResponse, error) {
	query := strings.ToLower(strings.TrimSpace(req.Query))
	genre := strings.TrimSpace(req.Genre)
	if genre == model.AvailabilityAll {
		genre = ""
	}

	switch req.Availability {
	case "", model.AvailabilityAll, model.AvailabilityAvailable, model.AvailabilityBorrowed:
	default:
		return nil, fmt.Errorf("invalid availability filter: %s", req.Availability)
	}

	out := []model.BookResponse{}
	for _, b := range s.repo.List(ctx) {
		authorName := s.authorName(ctx, b.AuthorID)

		if query != "" &&
			!strings.Contains(strings.ToLower(b.Title), query) &&
			!strings.Contains(strings.ToLower(authorName), query) {
			continue
		}
		if genre != "" && b.Genre != genre {
			continue
		}
		switch req.Availability {
		case model.AvailabilityAvailable:
			if b.AvailableCopies <= 0 {
				continue
			}
		case model.AvailabilityBorrowed:
			if b.AvailableCopies >= b.TotalCopies {
				continue
			}
		}

		out = append(out, model.BookResponse{Book: b, AuthorName: authorName})
	}

	return out, nil
}

// Genres lists distinct genres in first-appearance order.
func (s *bookService) Genres(ctx context.Context) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, b := range s.repo.List(ctx) {
		if b.Genre == "" || seen[b.Genre] {
			continue
		}
		seen[b.Genre] = true
		out = append(out, b.Genre)
	}
	return out
}

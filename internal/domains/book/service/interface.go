package service

import (
	"context"
	"io"

	"library-backend/internal/domains/book/model"
)

type Service interface {
	List(ctx context.Context) ([]model.BookResponse, error)
	Get(ctx context.Context, id string) (*model.BookResponse, error)
	Create(ctx context.Context, req *model.CreateBookRequest) (*model.BookResponse, error)
	Update(ctx context.Context, id string, req *model.UpdateBookRequest) (*model.BookResponse, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, req model.SearchRequest) ([]model.BookResponse, error)
	Genres(ctx context.Context) []string
	Import(ctx context.Context, r io.Reader) (*model.ImportResult, error)
}

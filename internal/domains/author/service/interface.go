package service

import (
	"context"

	"library-backend/internal/domains/author/model"
	bookModel "library-backend/internal/domains/book/model"
)

type Service interface {
	List(ctx context.Context) []model.Author
	Get(ctx context.Context, id string) (*model.Author, error)
	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)
	Update(ctx context.Context, id string, req *model.UpdateAuthorRequest) (*model.Author, error)
	Delete(ctx context.Context, id string) error
	// Books returns the books referencing the author, in insertion order.
	Books(ctx context.Context, id string) ([]bookModel.Book, error)
}

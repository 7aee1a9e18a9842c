package service

import (
	"context"

	"github.com/google/uuid"

	authormodel "bookshelf-api/internal/domains/author/model"
	"bookshelf-api/internal/domains/book/model"
)

// ServiceInterface - Book Service. Returned books always carry their author.
type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateBookRequest) (*model.Book, error)
	List(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuthorFinder is the author lookup a book write depends on. It must report a
// missing author as an apperror of kind NotFound.
type AuthorFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*authormodel.Author, error)
}

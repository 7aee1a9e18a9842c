package repository

import (
	"context"

	"github.com/google/uuid"

	"bookshelf-api/internal/domains/book/model"
)

// RepositoryInterface is the Book storage gateway. Reads always join the author.
type RepositoryInterface interface {
	// Create inserts b and returns the stored columns (Author is not loaded).
	// model.ErrDuplicateISBN / model.ErrAuthorReference on constraint violations.
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	List(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error)
	// Update writes the mutable columns; same constraint errors as Create plus
	// model.ErrBookNotFound when no row was touched.
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"bookshelf-api/internal/domains/author/model"
)

// RepositoryInterface is the Author storage gateway.
type RepositoryInterface interface {
	// Create inserts a and returns the stored row with database timestamps.
	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	// GetByID returns model.ErrAuthorNotFound when no row matches.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	// List returns one page ordered newest first and the count of all matching rows.
	List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error)
	// Update writes the mutable columns; model.ErrAuthorNotFound when no row was touched.
	Update(ctx context.Context, a *model.Author) error
	// Delete returns model.ErrAuthorNotFound when no row was removed and
	// model.ErrAuthorHasBooks when books still reference the author.
	Delete(ctx context.Context, id uuid.UUID) error
	CountBooks(ctx context.Context, id uuid.UUID) (int64, error)
	ListBooks(ctx context.Context, id uuid.UUID) ([]model.BookSummary, error)
}

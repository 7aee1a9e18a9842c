package service

import (
	"context"

	"github.com/google/uuid"

	"bookshelf-api/internal/domains/author/model"
)

// ServiceInterface - Author Service. Errors are *apperror.Error for the expected
// failures; anything else is unexpected.
type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateAuthorRequest) (*model.Author, error)
	List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error)
	// GetByID is the plain existence lookup used by other services.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	// GetWithBooks is findOne: the author plus its Books relation.
	GetWithBooks(ctx context.Context, id uuid.UUID) (*model.Author, []model.BookSummary, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateAuthorRequest) (*model.Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HasBooks(ctx context.Context, id uuid.UUID) (bool, error)
}

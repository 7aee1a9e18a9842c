package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookshelf-api/internal/domains/author/model"
	"bookshelf-api/internal/domains/author/repository"
	"bookshelf-api/internal/shared/apperror"
	"bookshelf-api/internal/shared/utils"
)

// authorService implements ServiceInterface
type authorService struct {
	repo repository.RepositoryInterface
}

func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{
		repo: repo,
	}
}

func notFound(err error, id uuid.UUID) error {
	return apperror.NotFound(err, "Author with ID %s not found", id)
}

func (s *authorService) Create(ctx context.Context, req model.CreateAuthorRequest) (*model.Author, error) {
	birthDate, err := utils.ParseOptionalDate(req.BirthDate)
	if err != nil {
		return nil, apperror.Invalid(err)
	}

	created, err := s.repo.Create(ctx, &model.Author{
		ID:        uuid.New(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		BirthDate: birthDate,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("author_id", created.ID.String()).Msg("Author created")
	return created, nil
}

func (s *authorService) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	filter.Pagination = filter.Pagination.Normalize()
	return s.repo.List(ctx, filter)
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrAuthorNotFound) {
			return nil, notFound(err, id)
		}
		return nil, err
	}
	return a, nil
}

func (s *authorService) GetWithBooks(ctx context.Context, id uuid.UUID) (*model.Author, []model.BookSummary, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	books, err := s.repo.ListBooks(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return a, books, nil
}

// Update merges req over the stored row and returns the re-read author.
func (s *authorService) Update(ctx context.Context, id uuid.UUID, req model.UpdateAuthorRequest) (*model.Author, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := req.Apply(current); err != nil {
		return nil, apperror.Invalid(err)
	}

	if err := s.repo.Update(ctx, current); err != nil {
		if errors.Is(err, model.ErrAuthorNotFound) {
			return nil, notFound(err, id)
		}
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrAuthorNotFound) {
			log.Warn().Str("author_id", id.String()).Msg("Author vanished between update and re-read")
			return nil, apperror.NotFound(err, "Author with ID %s not found after update", id)
		}
		return nil, err
	}

	return updated, nil
}

// Delete refuses to remove an author that still has books. The foreign key is the
// backstop for a book inserted between the check and the delete.
func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	hasBooks, err := s.HasBooks(ctx, id)
	if err != nil {
		return err
	}
	if hasBooks {
		return deleteAuthorError(id, model.ErrAuthorHasBooks)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return deleteAuthorError(id, err)
	}

	log.Info().Str("author_id", id.String()).Msg("Author deleted")
	return nil
}

func (s *authorService) HasBooks(ctx context.Context, id uuid.UUID) (bool, error) {
	count, err := s.repo.CountBooks(ctx, id)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func deleteAuthorError(id uuid.UUID, err error) error {
	switch {
	case errors.Is(err, model.ErrAuthorNotFound):
		return notFound(err, id)
	case errors.Is(err, model.ErrAuthorHasBooks):
		return apperror.Conflict(err, "Cannot delete author with ID %s because they have associated books", id)
	default:
		return err
	}
}

package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	authormodel "bookshelf-api/internal/domains/author/model"
	"bookshelf-api/internal/domains/book/model"
	"bookshelf-api/internal/domains/book/repository"
	"bookshelf-api/internal/shared/apperror"
	"bookshelf-api/internal/shared/utils"
)

type bookService struct {
	repo    repository.RepositoryInterface
	authors AuthorFinder
}

func NewBookService(repo repository.RepositoryInterface, authors AuthorFinder) ServiceInterface {
	return &bookService{
		repo:    repo,
		authors: authors,
	}
}

func notFound(err error, id uuid.UUID) error {
	return apperror.NotFound(err, "Book with ID %s not found", id)
}

func missingAuthor(err error, authorID string) error {
	return apperror.InvalidReference(err, "Author with ID %s does not exist", authorID)
}

// resolveAuthor checks that authorID names an existing author. A missing author is an
// invalid reference from the book's point of view, never a NotFound of the request.
func (s *bookService) resolveAuthor(ctx context.Context, authorID string) (*authormodel.Author, error) {
	id, err := uuid.Parse(authorID)
	if err != nil {
		return nil, missingAuthor(err, authorID)
	}

	a, err := s.authors.GetByID(ctx, id)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, missingAuthor(err, authorID)
		}
		return nil, err
	}

	return a, nil
}

func (s *bookService) Create(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	author, err := s.resolveAuthor(ctx, req.AuthorID)
	if err != nil {
		return nil, err
	}

	publishedDate, err := utils.ParseOptionalDate(req.PublishedDate)
	if err != nil {
		return nil, apperror.Invalid(err)
	}

	created, err := s.repo.Create(ctx, &model.Book{
		ID:            uuid.New(),
		Title:         req.Title,
		ISBN:          req.ISBN,
		PublishedDate: publishedDate,
		Genre:         req.Genre,
		AuthorID:      author.ID,
	})
	if err != nil {
		return nil, createBookError(req, err)
	}
	created.Author = author

	log.Info().
		Str("book_id", created.ID.String()).
		Str("author_id", author.ID.String()).
		Msg("Book created")
	return created, nil
}

func (s *bookService) List(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error) {
	filter.Pagination = filter.Pagination.Normalize()
	return s.repo.List(ctx, filter)
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, notFound(err, id)
		}
		return nil, err
	}
	return b, nil
}

// Update merges req over the stored book. The author is revalidated only when it changes.
func (s *bookService) Update(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.AuthorID != nil {
		if authorID, err := uuid.Parse(*req.AuthorID); err != nil || authorID != current.AuthorID {
			author, err := s.resolveAuthor(ctx, *req.AuthorID)
			if err != nil {
				return nil, err
			}
			current.AuthorID = author.ID
			current.Author = author
		}
	}

	publishedDate, err := utils.ParseOptionalDate(req.PublishedDate)
	if err != nil {
		return nil, apperror.Invalid(err)
	}
	if publishedDate != nil {
		current.PublishedDate = publishedDate
	}
	if req.Title != nil {
		current.Title = *req.Title
	}
	if req.ISBN != nil {
		current.ISBN = *req.ISBN
	}
	if req.Genre != nil {
		current.Genre = req.Genre
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return nil, updateBookError(current, err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			log.Warn().Str("book_id", id.String()).Msg("Book vanished between update and re-read")
			return nil, apperror.NotFound(err, "Book with ID %s not found after update", id)
		}
		return nil, err
	}

	return updated, nil
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return notFound(err, id)
		}
		return err
	}

	log.Info().Str("book_id", id.String()).Msg("Book deleted")
	return nil
}

// createBookError maps storage failures of an insert.
func createBookError(req model.CreateBookRequest, err error) error {
	switch {
	case errors.Is(err, model.ErrDuplicateISBN):
		return apperror.Conflict(err, "Book with ISBN %s already exists", req.ISBN)
	case errors.Is(err, model.ErrAuthorReference):
		return missingAuthor(err, req.AuthorID)
	default:
		return err
	}
}

// updateBookError maps storage failures of an update of b.
func updateBookError(b *model.Book, err error) error {
	switch {
	case errors.Is(err, model.ErrBookNotFound):
		return notFound(err, b.ID)
	case errors.Is(err, model.ErrDuplicateISBN):
		return apperror.Conflict(err, "Book with ISBN %s already exists", b.ISBN)
	case errors.Is(err, model.ErrAuthorReference):
		return missingAuthor(err, b.AuthorID.String())
	default:
		return err
	}
}

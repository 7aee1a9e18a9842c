package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authormodel "bookshelf-api/internal/domains/author/model"
	"bookshelf-api/internal/domains/book/model"
	"bookshelf-api/internal/shared/apperror"
	"bookshelf-api/internal/shared/query"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	args := m.Called(ctx, b)
	switch v := args.Get(0).(type) {
	case func(context.Context, *model.Book) *model.Book:
		return v(ctx, b), args.Error(1)
	case *model.Book:
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.Book), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) Update(ctx context.Context, b *model.Book) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockAuthorFinder struct {
	mock.Mock
}

func (m *mockAuthorFinder) GetByID(ctx context.Context, id uuid.UUID) (*authormodel.Author, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*authormodel.Author), args.Error(1)
	}
	return nil, args.Error(1)
}

func strPtr(s string) *string { return &s }

func newAuthor() *authormodel.Author {
	return &authormodel.Author{ID: uuid.New(), FirstName: "John", LastName: "Doe"}
}

func authorNotFound(id uuid.UUID) error {
	return apperror.NotFound(authormodel.ErrAuthorNotFound, "Author with ID %s not found", id)
}

func storedBook(author *authormodel.Author) *model.Book {
	now := time.Now().UTC()
	return &model.Book{
		ID:        uuid.New(),
		Title:     "T",
		ISBN:      "111",
		AuthorID:  author.ID,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func echoCreate(_ context.Context, b *model.Book) *model.Book {
	out := *b
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	return &out
}

func TestCreate_Success(t *testing.T) {
	repo, authors := new(mockRepository), new(mockAuthorFinder)
	svc := NewBookService(repo, authors)
	ctx := context.Background()
	author := newAuthor()

	authors.On("GetByID", ctx, author.ID).Return(author, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(b *model.Book) bool {
		return b.ID != uuid.Nil && b.AuthorID == author.ID &&
			b.PublishedDate != nil && b.PublishedDate.Format("2006-01-02") == "2001-09-11"
	})).Return(echoCreate, nil)

	created, err := svc.Create(ctx, model.CreateBookRequest{
		Title:         "T",
		ISBN:          "111",
		AuthorID:      author.ID.String(),
		PublishedDate: strPtr("2001-09-11"),
	})

	require.NoError(t, err)
	assert.Equal(t, author, created.Author)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	repo.AssertExpectations(t)
}

func TestCreate_UnknownAuthorIsInvalidReference(t *testing.T) {
	repo, authors := new(mockRepository), new(mockAuthorFinder)
	svc := NewBookService(repo, authors)
	ctx := context.Background()
	missing := uuid.New()

	authors.On("GetByID", ctx, missing).Return(nil, authorNotFound(missing))

	_, err := svc.Create(ctx, model.CreateBookRequest{Title: "T", ISBN: "111", AuthorID: missing.String()})

	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidReference, apperror.KindOf(err))
	assert.Equal(t, "Author with ID "+missing.String()+" does not exist", apperror.MessageOf(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_MalformedAuthorID(t *testing.T) {
	repo, authors := new(mockRepository), new(mockAuthorFinder)
	svc := NewBookService(repo, authors)

	_, err := svc.Create(context.Background(), model.CreateBookRequest{Title: "T", ISBN: "111", AuthorID: "nonexistent-uuid"})

	assert.True(t, apperror.Is(err, apperror.KindInvalidReference))
	authors.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_AuthorLookupFailurePropagates(t *testing.T) {
	repo, authors := new(mockRepository), new(mockAuthorFinder)
	svc := NewBookService(repo, authors)
	ctx := context.Background()
	id := uuid.New()
	boom := errors.New("pool exhausted")

	authors.On("GetByID", ctx, id).Return(nil, boom)

	_, err := svc.Create(ctx, model.CreateBookRequest{Title: "T", ISBN: "111", AuthorID: id.String()})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, apperror.KindUnexpected, apperror.KindOf(err))
}

func TestCreate_StorageErrors(t *testing.T) {
	boom := errors.New("disk full")
	tests := []struct {
		name     string
		repoErr  error
		wantKind apperror.Kind
		wantMsg  string
	}{
		{"duplicate isbn", model.ErrDuplicateISBN, apperror.KindConflict, "Book with ISBN 999 already exists"},
		{"author removed before insert", model.ErrAuthorReference, apperror.KindInvalidReference, ""},
		{"other", boom, apperror.KindUnexpected, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, authors := new(mockRepository), new(mockAuthorFinder)
			svc := NewBookService(repo, authors)
			ctx := context.Background()
			author := newAuthor()

			authors.On("GetByID", ctx, author.ID).Return(author, nil)
			repo.On("Create", ctx, mock.Anything).Return(nil, tt.repoErr)

			_, err := svc.Create(ctx, model.CreateBookRequest{Title: "T", ISBN: "999", AuthorID: author.ID.String()})

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperror.KindOf(err))
			assert.ErrorIs(t, err, tt.repoErr)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, apperror.MessageOf(err))
			}
		})
	}
}

func TestList_NormalizesPagination(t *testing.T) {
	repo, authors := new(mockRepository), new(mockAuthorFinder)
	svc := NewBookService(repo, authors)
	ctx := context.Background()
	authorID := uuid.New()

	expected := model.BookFilter{
		Pagination: query.Pagination{Page: 3, Limit: 100},
		Title:      "go",
		AuthorID:   &authorID,
	}
	repo.On("List", ctx, expected).Return([]model.Book{}, int64(0), nil)

	_, _, err := svc.List(ctx, model.BookFilter{
		Pagination: query.Pagination{Page: 3, Limit: 500},
		Title:      "go",
		AuthorID:   &authorID,
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, authors := new(mockRepository), new(mockAuthorFinder)
	svc := NewBookService(repo, authors)
	ctx := context.Background()
	id := uuid.New()

	repo.On("GetByID", ctx, id).Return(nil, model.ErrBookNotFound)

	_, err := svc.GetByID(ctx, id)

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Equal(t, "Book with ID "+id.String()+" not found", apperror.MessageOf(err))
}

func TestUpdate_SameAuthorSkipsLookup(t *testing.T) {
	repo, authors := new(mockRepository), new(mockAuthorFinder)
	svc := NewBookService(repo, authors)
	ctx := context.Background()
	author := newAuthor()
	book := storedBook(author)

	repo.On("GetByID", ctx, book.ID).Return(book, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(b *model.Book) bool {
		return b.Title == "New" && b.ISBN == "111" && b.AuthorID == author.ID
	})).Return(nil)

	updated, err := svc.Update(ctx, book.ID, model.UpdateBookRequest{
		Title:    strPtr("New"),
		AuthorID: strPtr(author.ID.String()),
	})

	require.NoError(t, err)
	assert.NotNil(t, updated.Author)
	authors.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUpdate_NewAuthorIsValidated(t *testing.T) {
	repo, authors := new(mockRepository), new(mockAuthorFinder)
	svc := NewBookService(repo, authors)
	ctx := context.Background()
	book := storedBook(newAuthor())
	missing := uuid.New()

	repo.On("GetByID", ctx, book.ID).Return(book, nil)
	authors.On("GetByID", ctx, missing).Return(nil, authorNotFound(missing))

	_, err := svc.Update(ctx, book.ID, model.UpdateBookRequest{AuthorID: strPtr(missing.String())})

	assert.Equal(t, apperror.KindInvalidReference, apperror.KindOf(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_MovesToExistingAuthor(t *testing.T) {
	repo, authors := new(mockRepository), new(mockAuthorFinder)
	svc := NewBookService(repo, authors)
	ctx := context.Background()
	book := storedBook(newAuthor())
	other := newAuthor()

	repo.On("GetByID", ctx, book.ID).Return(book, nil)
	authors.On("GetByID", ctx, other.ID).Return(other, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(b *model.Book) bool {
		return b.AuthorID == other.ID
	})).Return(nil)

	_, err := svc.Update(ctx, book.ID, model.UpdateBookRequest{AuthorID: strPtr(other.ID.String())})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdate_KeepsPublishedDateWhenAbsent(t *testing.T) {
	repo, authors := new(mockRepository), new(mockAuthorFinder)
	svc := NewBookService(repo, authors)
	ctx := context.Background()
	book := storedBook(newAuthor())
	published := time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC)
	book.PublishedDate = &published

	repo.On("GetByID", ctx, book.ID).Return(book, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(b *model.Book) bool {
		return b.PublishedDate != nil && b.PublishedDate.Equal(published)
	})).Return(nil)

	_, err := svc.Update(ctx, book.ID, model.UpdateBookRequest{Genre: strPtr("Essay")})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdate_DuplicateISBN(t *testing.T) {
	repo, authors := new(mockRepository), new(mockAuthorFinder)
	svc := NewBookService(repo, authors)
	ctx := context.Background()
	book := storedBook(newAuthor())

	repo.On("GetByID", ctx, book.ID).Return(book, nil)
	repo.On("Update", ctx, mock.Anything).Return(model.ErrDuplicateISBN)

	_, err := svc.Update(ctx, book.ID, model.UpdateBookRequest{ISBN: strPtr("222")})

	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, "Book with ISBN 222 already exists", apperror.MessageOf(err))
}

func TestUpdate_NotFound(t *testing.T) {
	repo, authors := new(mockRepository), new(mockAuthorFinder)
	svc := NewBookService(repo, authors)
	ctx := context.Background()
	id := uuid.New()

	repo.On("GetByID", ctx, id).Return(nil, model.ErrBookNotFound)

	_, err := svc.Update(ctx, id, model.UpdateBookRequest{Title: strPtr("x")})

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestUpdate_VanishedAfterUpdate(t *testing.T) {
	repo, authors := new(mockRepository), new(mockAuthorFinder)
	svc := NewBookService(repo, authors)
	ctx := context.Background()
	book := storedBook(newAuthor())

	repo.On("GetByID", ctx, book.ID).Return(book, nil).Once()
	repo.On("Update", ctx, mock.Anything).Return(nil)
	repo.On("GetByID", ctx, book.ID).Return(nil, model.ErrBookNotFound).Once()

	_, err := svc.Update(ctx, book.ID, model.UpdateBookRequest{Title: strPtr("x")})

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Contains(t, apperror.MessageOf(err), "not found after update")
}

func TestDelete(t *testing.T) {
	repo, authors := new(mockRepository), new(mockAuthorFinder)
	svc := NewBookService(repo, authors)
	ctx := context.Background()
	book := storedBook(newAuthor())

	repo.On("GetByID", ctx, book.ID).Return(book, nil)
	repo.On("Delete", ctx, book.ID).Return(nil)

	require.NoError(t, svc.Delete(ctx, book.ID))
	repo.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	repo, authors := new(mockRepository), new(mockAuthorFinder)
	svc := NewBookService(repo, authors)
	ctx := context.Background()
	id := uuid.New()

	repo.On("GetByID", ctx, id).Return(nil, model.ErrBookNotFound)

	err := svc.Delete(ctx, id)

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	authormodel "bookshelf-api/internal/domains/author/model"
	"bookshelf-api/internal/domains/book/model"
	"bookshelf-api/internal/infrastructure/database"
	"bookshelf-api/internal/shared/query"
)

const (
	bookColumns = `id, title, isbn, published_date, genre, author_id, created_at, updated_at`

	selectWithAuthor = `
		SELECT b.id, b.title, b.isbn, b.published_date, b.genre, b.author_id, b.created_at, b.updated_at,
		       a.id, a.first_name, a.last_name, a.bio, a.birth_date, a.created_at, a.updated_at
		FROM books b
		JOIN authors a ON a.id = b.author_id`
)

type postgresRepository struct {
	db database.Querier
}

func NewPostgresRepository(db database.Querier) RepositoryInterface {
	return &postgresRepository{db: db}
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.ISBN,
		&b.PublishedDate,
		&b.Genre,
		&b.AuthorID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBookWithAuthor(row pgx.Row) (*model.Book, error) {
	var b model.Book
	var a authormodel.Author
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.ISBN,
		&b.PublishedDate,
		&b.Genre,
		&b.AuthorID,
		&b.CreatedAt,
		&b.UpdatedAt,
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.Bio,
		&a.BirthDate,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Author = &a
	return &b, nil
}

// writeError classifies constraint violations shared by insert and update.
func writeError(op string, err error) error {
	switch {
	case database.IsUniqueViolation(err, database.BookISBNUniqueConstraint):
		return model.ErrDuplicateISBN
	case database.IsForeignKeyViolation(err, database.BookAuthorFKConstraint):
		return model.ErrAuthorReference
	default:
		return fmt.Errorf("failed to %s book: %w", op, err)
	}
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	q := `
		INSERT INTO books (id, title, isbn, published_date, genre, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + bookColumns

	created, err := scanBook(r.db.QueryRow(ctx, q,
		b.ID,
		b.Title,
		b.ISBN,
		b.PublishedDate,
		b.Genre,
		b.AuthorID,
	))
	if err != nil {
		return nil, writeError("create", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	b, err := scanBookWithAuthor(r.db.QueryRow(ctx, selectWithAuthor+` WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}
	return b, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error) {
	b := query.NewBuilder().
		ContainsFold("b.title", filter.Title).
		ContainsFold("b.isbn", filter.ISBN)
	if filter.AuthorID != nil {
		b.Equal("b.author_id", *filter.AuthorID)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM books b` + b.Where()
	if err := r.db.QueryRow(ctx, countQuery, b.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	pagination := filter.Pagination.Normalize()
	page, args := b.Paginate(pagination)
	listQuery := selectWithAuthor + b.Where() + ` ORDER BY b.created_at DESC, b.seq ASC` + page

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0, pagination.Limit)
	for rows.Next() {
		book, err := scanBookWithAuthor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate books: %w", err)
	}

	return books, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Book) error {
	q := `
		UPDATE books
		SET title = $2, isbn = $3, published_date = $4, genre = $5, author_id = $6, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, q, b.ID, b.Title, b.ISBN, b.PublishedDate, b.Genre, b.AuthorID)
	if err != nil {
		return writeError("update", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

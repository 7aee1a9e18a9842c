package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bookshelf-api/internal/domains/author/model"
	"bookshelf-api/internal/infrastructure/database"
	"bookshelf-api/internal/shared/query"
)

const authorColumns = `id, first_name, last_name, bio, birth_date, created_at, updated_at`

// postgresRepository implements RepositoryInterface on top of a pgx pool or transaction.
type postgresRepository struct {
	db database.Querier
}

func NewPostgresRepository(db database.Querier) RepositoryInterface {
	return &postgresRepository{db: db}
}

func scanAuthor(row pgx.Row, a *model.Author) error {
	return row.Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.Bio,
		&a.BirthDate,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	q := `
		INSERT INTO authors (id, first_name, last_name, bio, birth_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + authorColumns

	var created model.Author
	err := scanAuthor(r.db.QueryRow(ctx, q,
		a.ID,
		a.FirstName,
		a.LastName,
		a.Bio,
		a.BirthDate,
	), &created)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	q := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	var a model.Author
	if err := scanAuthor(r.db.QueryRow(ctx, q, id), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	return &a, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	b := query.NewBuilder().
		ContainsFold("first_name", filter.FirstName).
		ContainsFold("last_name", filter.LastName)

	var total int64
	countQuery := `SELECT COUNT(*) FROM authors` + b.Where()
	if err := r.db.QueryRow(ctx, countQuery, b.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	pagination := filter.Pagination.Normalize()
	page, args := b.Paginate(pagination)
	listQuery := `SELECT ` + authorColumns + ` FROM authors` + b.Where() +
		` ORDER BY created_at DESC, seq ASC` + page

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]model.Author, 0, pagination.Limit)
	for rows.Next() {
		var a model.Author
		if err := scanAuthor(rows, &a); err != nil {
			return nil, 0, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate authors: %w", err)
	}

	return authors, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Author) error {
	q := `
		UPDATE authors
		SET first_name = $2, last_name = $3, bio = $4, birth_date = $5, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, q, a.ID, a.FirstName, a.LastName, a.Bio, a.BirthDate)
	if err != nil {
		return fmt.Errorf("failed to update author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err, database.BookAuthorFKConstraint) {
			return model.ErrAuthorHasBooks
		}
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	return nil
}

func (r *postgresRepository) CountBooks(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE author_id = $1`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count author books: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) ListBooks(ctx context.Context, id uuid.UUID) ([]model.BookSummary, error) {
	q := `
		SELECT id, title, isbn, published_date, genre, author_id, created_at, updated_at
		FROM books
		WHERE author_id = $1
		ORDER BY created_at DESC, seq ASC
	`

	rows, err := r.db.Query(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list author books: %w", err)
	}
	defer rows.Close()

	books := []model.BookSummary{}
	for rows.Next() {
		var b model.BookSummary
		if err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.ISBN,
			&b.PublishedDate,
			&b.Genre,
			&b.AuthorID,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan author book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate author books: %w", err)
	}

	return books, nil
}

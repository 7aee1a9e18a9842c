package main

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	authormodel "bookshelf-api/internal/domains/author/model"
	bookmodel "bookshelf-api/internal/domains/book/model"
	"bookshelf-api/internal/infrastructure/database"
	"bookshelf-api/internal/shared/query"
)

// memoryStore reproduces the PostgreSQL constraints the services rely on:
// unique isbn, books.author_id -> authors.id ON DELETE RESTRICT, database timestamps.
type memoryStore struct {
	mu      sync.Mutex
	seq     int64
	base    time.Time
	authors map[uuid.UUID]memAuthor
	books   map[uuid.UUID]memBook
}

type memAuthor struct {
	seq int64
	row authormodel.Author
}

type memBook struct {
	seq int64
	row bookmodel.Book
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		base:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		authors: map[uuid.UUID]memAuthor{},
		books:   map[uuid.UUID]memBook{},
	}
}

// now advances a deterministic clock by one second per write.
func (s *memoryStore) now() (int64, time.Time) {
	s.seq++
	return s.seq, s.base.Add(time.Duration(s.seq) * time.Second)
}

func containsFold(value, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(value), strings.ToLower(needle))
}

func paginate[T any](rows []T, p query.Pagination) []T {
	p = p.Normalize()
	start := p.Offset()
	if start >= len(rows) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// ---- authors ----

type memoryAuthorRepo struct{ s *memoryStore }

func (r memoryAuthorRepo) Create(_ context.Context, a *authormodel.Author) (*authormodel.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	seq, now := r.s.now()
	row := *a
	row.CreatedAt, row.UpdatedAt = now, now
	r.s.authors[row.ID] = memAuthor{seq: seq, row: row}
	return &row, nil
}

func (r memoryAuthorRepo) GetByID(_ context.Context, id uuid.UUID) (*authormodel.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.authors[id]
	if !ok {
		return nil, authormodel.ErrAuthorNotFound
	}
	row := stored.row
	return &row, nil
}

func (r memoryAuthorRepo) List(_ context.Context, f authormodel.AuthorFilter) ([]authormodel.Author, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []memAuthor
	for _, a := range r.s.authors {
		if containsFold(a.row.FirstName, f.FirstName) && containsFold(a.row.LastName, f.LastName) {
			matched = append(matched, a)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].row.CreatedAt.Equal(matched[j].row.CreatedAt) {
			return matched[i].row.CreatedAt.After(matched[j].row.CreatedAt)
		}
		return matched[i].seq < matched[j].seq
	})

	rows := make([]authormodel.Author, 0, len(matched))
	for _, m := range matched {
		rows = append(rows, m.row)
	}
	return paginate(rows, f.Pagination), int64(len(rows)), nil
}

func (r memoryAuthorRepo) Update(_ context.Context, a *authormodel.Author) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.authors[a.ID]
	if !ok {
		return authormodel.ErrAuthorNotFound
	}
	_, now := r.s.now()
	row := *a
	row.CreatedAt, row.UpdatedAt = stored.row.CreatedAt, now
	r.s.authors[a.ID] = memAuthor{seq: stored.seq, row: row}
	return nil
}

func (r memoryAuthorRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.authors[id]; !ok {
		return authormodel.ErrAuthorNotFound
	}
	for _, b := range r.s.books {
		if b.row.AuthorID == id {
			return authormodel.ErrAuthorHasBooks
		}
	}
	delete(r.s.authors, id)
	return nil
}

func (r memoryAuthorRepo) CountBooks(_ context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, b := range r.s.books {
		if b.row.AuthorID == id {
			n++
		}
	}
	return n, nil
}

func (r memoryAuthorRepo) ListBooks(_ context.Context, id uuid.UUID) ([]authormodel.BookSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []authormodel.BookSummary{}
	for _, b := range r.s.books {
		if b.row.AuthorID != id {
			continue
		}
		out = append(out, authormodel.BookSummary{
			ID:            b.row.ID,
			Title:         b.row.Title,
			ISBN:          b.row.ISBN,
			PublishedDate: b.row.PublishedDate,
			Genre:         b.row.Genre,
			AuthorID:      b.row.AuthorID,
			CreatedAt:     b.row.CreatedAt,
			UpdatedAt:     b.row.UpdatedAt,
		})
	}
	return out, nil
}

// ---- books ----

type memoryBookRepo struct{ s *memoryStore }

// checkConstraints must be called with the lock held.
func (r memoryBookRepo) checkConstraints(b *bookmodel.Book) error {
	for id, other := range r.s.books {
		if id != b.ID && other.row.ISBN == b.ISBN {
			return bookmodel.ErrDuplicateISBN
		}
	}
	if _, ok := r.s.authors[b.AuthorID]; !ok {
		return bookmodel.ErrAuthorReference
	}
	return nil
}

func (r memoryBookRepo) withAuthor(b memBook) bookmodel.Book {
	row := b.row
	if a, ok := r.s.authors[row.AuthorID]; ok {
		author := a.row
		row.Author = &author
	}
	return row
}

func (r memoryBookRepo) Create(_ context.Context, b *bookmodel.Book) (*bookmodel.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkConstraints(b); err != nil {
		return nil, err
	}
	seq, now := r.s.now()
	row := *b
	row.Author = nil
	row.CreatedAt, row.UpdatedAt = now, now
	r.s.books[row.ID] = memBook{seq: seq, row: row}
	return &row, nil
}

func (r memoryBookRepo) GetByID(_ context.Context, id uuid.UUID) (*bookmodel.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.books[id]
	if !ok {
		return nil, bookmodel.ErrBookNotFound
	}
	row := r.withAuthor(stored)
	return &row, nil
}

func (r memoryBookRepo) List(_ context.Context, f bookmodel.BookFilter) ([]bookmodel.Book, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []memBook
	for _, b := range r.s.books {
		if !containsFold(b.row.Title, f.Title) || !containsFold(b.row.ISBN, f.ISBN) {
			continue
		}
		if f.AuthorID != nil && b.row.AuthorID != *f.AuthorID {
			continue
		}
		matched = append(matched, b)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].row.CreatedAt.Equal(matched[j].row.CreatedAt) {
			return matched[i].row.CreatedAt.After(matched[j].row.CreatedAt)
		}
		return matched[i].seq < matched[j].seq
	})

	rows := make([]bookmodel.Book, 0, len(matched))
	for _, m := range matched {
		rows = append(rows, r.withAuthor(m))
	}
	return paginate(rows, f.Pagination), int64(len(rows)), nil
}

func (r memoryBookRepo) Update(_ context.Context, b *bookmodel.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.books[b.ID]
	if !ok {
		return bookmodel.ErrBookNotFound
	}
	if err := r.checkConstraints(b); err != nil {
		return err
	}
	_, now := r.s.now()
	row := *b
	row.Author = nil
	row.CreatedAt, row.UpdatedAt = stored.row.CreatedAt, now
	r.s.books[b.ID] = memBook{seq: stored.seq, row: row}
	return nil
}

func (r memoryBookRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.books[id]; !ok {
		return bookmodel.ErrBookNotFound
	}
	delete(r.s.books, id)
	return nil
}

// ---- health ----

type fakeHealth struct{ err error }

func (h fakeHealth) HealthCheck(context.Context) error { return h.err }

func (h fakeHealth) Stats() (*database.PoolStats, error) {
	return &database.PoolStats{MaxConns: 4}, nil
}

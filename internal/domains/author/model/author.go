package model

import (
	"time"

	"github.com/google/uuid"

	"bookshelf-api/internal/shared/query"
	"bookshelf-api/internal/shared/utils"
)

const (
	MaxNameLength = 100
)

// Author - Domain Entity (from database)
type Author struct {
	ID        uuid.UUID  `db:"id"`
	FirstName string     `db:"first_name"`
	LastName  string     `db:"last_name"`
	Bio       *string    `db:"bio"`
	BirthDate *time.Time `db:"birth_date"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

// BookSummary is a row of the author's Books relation. It carries the book columns
// only; the author is the owner being read.
type BookSummary struct {
	ID            uuid.UUID  `db:"id"`
	Title         string     `db:"title"`
	ISBN          string     `db:"isbn"`
	PublishedDate *time.Time `db:"published_date"`
	Genre         *string    `db:"genre"`
	AuthorID      uuid.UUID  `db:"author_id"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// AuthorFilter - list parameters. Empty name filters are ignored.
type AuthorFilter struct {
	Pagination query.Pagination
	FirstName  string
	LastName   string
}

// ============ RESPONSES ============

type AuthorResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Bio       *string   `json:"bio"`
	BirthDate *string   `json:"birthDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BookSummaryResponse struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	ISBN          string    `json:"isbn"`
	PublishedDate *string   `json:"publishedDate"`
	Genre         *string   `json:"genre"`
	AuthorID      uuid.UUID `json:"authorId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// AuthorDetailResponse is the findOne shape: the author plus its books.
type AuthorDetailResponse struct {
	AuthorResponse
	Books []BookSummaryResponse `json:"books"`
}

// ToResponse converts Author to AuthorResponse
func (a *Author) ToResponse() AuthorResponse {
	return AuthorResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Bio:       a.Bio,
		BirthDate: utils.FormatDate(a.BirthDate),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (b *BookSummary) ToResponse() BookSummaryResponse {
	return BookSummaryResponse{
		ID:            b.ID,
		Title:         b.Title,
		ISBN:          b.ISBN,
		PublishedDate: utils.FormatDate(b.PublishedDate),
		Genre:         b.Genre,
		AuthorID:      b.AuthorID,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// ToDetailResponse renders the author with its books; no books encodes as [].
func (a *Author) ToDetailResponse(books []BookSummary) AuthorDetailResponse {
	resp := AuthorDetailResponse{
		AuthorResponse: a.ToResponse(),
		Books:          make([]BookSummaryResponse, 0, len(books)),
	}
	for i := range books {
		resp.Books = append(resp.Books, books[i].ToResponse())
	}
	return resp
}

// ToResponseList converts a page of authors.
func ToResponseList(authors []Author) []AuthorResponse {
	out := make([]AuthorResponse, 0, len(authors))
	for i := range authors {
		out = append(out, authors[i].ToResponse())
	}
	return out
}

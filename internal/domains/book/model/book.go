package model

import (
	"time"

	"github.com/google/uuid"

	authormodel "bookshelf-api/internal/domains/author/model"
	"bookshelf-api/internal/shared/query"
	"bookshelf-api/internal/shared/utils"
)

const (
	MaxTitleLength = 200
	MaxISBNLength  = 17
	MaxGenreLength = 50
)

// ============ ENTITIES ============

// Book - Domain Entity (from database)
type Book struct {
	ID            uuid.UUID  `db:"id"`
	Title         string     `db:"title"`
	ISBN          string     `db:"isbn"`
	PublishedDate *time.Time `db:"published_date"`
	Genre         *string    `db:"genre"`
	AuthorID      uuid.UUID  `db:"author_id"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`

	// Joined data, always loaded on reads
	Author *authormodel.Author `db:"-"`
}

// BookFilter - list parameters. Zero values are ignored.
type BookFilter struct {
	Pagination query.Pagination
	Title      string
	ISBN       string
	AuthorID   *uuid.UUID
}

// ============ RESPONSES ============

type BookResponse struct {
	ID            uuid.UUID                   `json:"id"`
	Title         string                      `json:"title"`
	ISBN          string                      `json:"isbn"`
	PublishedDate *string                     `json:"publishedDate"`
	Genre         *string                     `json:"genre"`
	AuthorID      uuid.UUID                   `json:"authorId"`
	Author        *authormodel.AuthorResponse `json:"author"`
	CreatedAt     time.Time                   `json:"createdAt"`
	UpdatedAt     time.Time                   `json:"updatedAt"`
}

func (b *Book) ToResponse() BookResponse {
	resp := BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		ISBN:          b.ISBN,
		PublishedDate: utils.FormatDate(b.PublishedDate),
		Genre:         b.Genre,
		AuthorID:      b.AuthorID,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
	if b.Author != nil {
		author := b.Author.ToResponse()
		resp.Author = &author
	}
	return resp
}

func ToResponseList(books []Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for i := range books {
		out = append(out, books[i].ToResponse())
	}
	return out
}

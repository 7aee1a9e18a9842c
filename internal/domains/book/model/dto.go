package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"bookshelf-api/internal/shared/query"
	"bookshelf-api/internal/shared/utils"
)

var notBlank = regexp.MustCompile(`\S`)

// ============ REQUESTS ============

type CreateBookRequest struct {
	Title         string  `json:"title"`
	ISBN          string  `json:"isbn"`
	AuthorID      string  `json:"authorId"`
	PublishedDate *string `json:"publishedDate"`
	Genre         *string `json:"genre"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required,
			validation.Match(notBlank).Error("cannot be blank"),
			validation.RuneLength(1, MaxTitleLength),
		),
		validation.Field(&r.ISBN,
			validation.Required,
			validation.Match(notBlank).Error("cannot be blank"),
			validation.RuneLength(1, MaxISBNLength),
		),
		validation.Field(&r.AuthorID, validation.Required, is.UUID),
		validation.Field(&r.PublishedDate, validation.By(utils.IsDate)),
		validation.Field(&r.Genre, validation.RuneLength(0, MaxGenreLength)),
	)
}

// UpdateBookRequest - PATCH body. A nil field keeps the stored value.
type UpdateBookRequest struct {
	Title         *string `json:"title"`
	ISBN          *string `json:"isbn"`
	AuthorID      *string `json:"authorId"`
	PublishedDate *string `json:"publishedDate"`
	Genre         *string `json:"genre"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty,
			validation.Match(notBlank).Error("cannot be blank"),
			validation.RuneLength(1, MaxTitleLength),
		),
		validation.Field(&r.ISBN,
			validation.NilOrNotEmpty,
			validation.Match(notBlank).Error("cannot be blank"),
			validation.RuneLength(1, MaxISBNLength),
		),
		validation.Field(&r.AuthorID, validation.NilOrNotEmpty, is.UUID),
		validation.Field(&r.PublishedDate, validation.By(utils.IsDate)),
		validation.Field(&r.Genre, validation.RuneLength(0, MaxGenreLength)),
	)
}

// ListBooksQuery - GET /books query string
type ListBooksQuery struct {
	Page     *int   `form:"page"`
	Limit    *int   `form:"limit"`
	Title    string `form:"title"`
	ISBN     string `form:"isbn"`
	AuthorID string `form:"authorId"`
}

func (q ListBooksQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Page, utils.PositiveInt, validation.Max(query.MaxPage)),
		validation.Field(&q.Limit, utils.PositiveInt, validation.Max(query.MaxLimit)),
		validation.Field(&q.AuthorID, is.UUID),
	)
}

// ToFilter applies pagination defaults. AuthorID must have passed Validate.
func (q ListBooksQuery) ToFilter() BookFilter {
	filter := BookFilter{
		Pagination: query.NewPagination(q.Page, q.Limit),
		Title:      q.Title,
		ISBN:       q.ISBN,
	}
	if id, err := uuid.Parse(q.AuthorID); err == nil {
		filter.AuthorID = &id
	}
	return filter
}

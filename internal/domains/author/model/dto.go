package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshelf-api/internal/shared/query"
	"bookshelf-api/internal/shared/utils"
)

var notBlank = regexp.MustCompile(`\S`)

// ============ REQUESTS ============

type CreateAuthorRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Bio       *string `json:"bio"`
	BirthDate *string `json:"birthDate"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required,
			validation.Match(notBlank).Error("cannot be blank"),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.LastName,
			validation.Required,
			validation.Match(notBlank).Error("cannot be blank"),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.BirthDate, validation.By(utils.IsDate)),
	)
}

// UpdateAuthorRequest - PATCH body. A nil field keeps the stored value.
type UpdateAuthorRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Bio       *string `json:"bio"`
	BirthDate *string `json:"birthDate"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.NilOrNotEmpty,
			validation.Match(notBlank).Error("cannot be blank"),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.LastName,
			validation.NilOrNotEmpty,
			validation.Match(notBlank).Error("cannot be blank"),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.BirthDate, validation.By(utils.IsDate)),
	)
}

// ListAuthorsQuery - GET /authors query string
type ListAuthorsQuery struct {
	Page      *int   `form:"page"`
	Limit     *int   `form:"limit"`
	FirstName string `form:"firstName"`
	LastName  string `form:"lastName"`
}

func (q ListAuthorsQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Page, utils.PositiveInt, validation.Max(query.MaxPage)),
		validation.Field(&q.Limit, utils.PositiveInt, validation.Max(query.MaxLimit)),
	)
}

// ToFilter applies pagination defaults.
func (q ListAuthorsQuery) ToFilter() AuthorFilter {
	return AuthorFilter{
		Pagination: query.NewPagination(q.Page, q.Limit),
		FirstName:  q.FirstName,
		LastName:   q.LastName,
	}
}

// Apply merges the request over a stored author. Bio and names are taken verbatim,
// birthDate must already have been validated.
func (r UpdateAuthorRequest) Apply(a *Author) error {
	if r.FirstName != nil {
		a.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		a.LastName = *r.LastName
	}
	if r.Bio != nil {
		a.Bio = r.Bio
	}
	birthDate, err := utils.ParseOptionalDate(r.BirthDate)
	if err != nil {
		return err
	}
	if birthDate != nil {
		a.BirthDate = birthDate
	}
	return nil
}

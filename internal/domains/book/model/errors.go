package model

import "errors"

var (
	ErrBookNotFound    = errors.New("book not found")
	ErrDuplicateISBN   = errors.New("isbn already exists")
	ErrAuthorReference = errors.New("referenced author does not exist")
)

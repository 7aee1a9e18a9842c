package utils

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// PositiveInt rejects a present *int below 1. ozzo's Min skips zero values, so 0 needs this rule.
var PositiveInt = validation.By(func(value interface{}) error {
	switch v := value.(type) {
	case *int:
		if v != nil && *v < 1 {
			return errors.New("must be no less than 1")
		}
	case int:
		if v < 1 {
			return errors.New("must be no less than 1")
		}
	}
	return nil
})

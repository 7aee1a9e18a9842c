package request

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"bookshelf-api/internal/shared/apperror"
	"bookshelf-api/internal/shared/response"
)

const uuidExpected = "Validation failed (uuid is expected)"

// UUIDParam parses a path parameter as a UUID. On failure it writes the 400 envelope
// and returns false.
func UUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, uuidExpected)
		return uuid.Nil, false
	}
	return id, true
}

// BindJSON decodes the body into dst (unknown fields rejected by the router-wide decoder
// setting) and runs dst.Validate. On failure it writes the 400 envelope and returns false.
func BindJSON(c *gin.Context, dst validation.Validatable) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, apperror.Validation("%s", describeBindError(err)))
		return false
	}
	return validate(c, dst)
}

// BindQuery is BindJSON for the query string.
func BindQuery(c *gin.Context, dst validation.Validatable) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		response.Error(c, apperror.Validation("Invalid query parameters: %s", describeBindError(err)))
		return false
	}
	return validate(c, dst)
}

func validate(c *gin.Context, dst validation.Validatable) bool {
	if err := dst.Validate(); err != nil {
		response.Error(c, apperror.Invalid(err))
		return false
	}
	return true
}

func describeBindError(err error) string {
	var numErr *strconv.NumError
	switch {
	case errors.Is(err, io.EOF):
		return "Request body is required"
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return "property " + field + " should not exist"
	case errors.As(err, &numErr):
		return "value " + strconv.Quote(numErr.Num) + " must be an integer"
	default:
		return err.Error()
	}
}

package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookshelf-api/internal/shared/apperror"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrorEnvelope is the body of every failed request.
type ErrorEnvelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
	Timestamp  string `json:"timestamp"`
}

// Success responses

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error responses

// Error translates err into the envelope. This is the only place where error kinds
// become HTTP status codes.
func Error(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	status := kind.HTTPStatus()

	message := apperror.MessageOf(err)
	if kind == apperror.KindUnexpected {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unexpected error")
		message = "Internal server error"
	} else {
		log.Debug().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("kind", kind.String()).
			Msg("Request failed")
	}

	Abort(c, status, message)
}

// Abort writes the envelope with an explicit status and stops the handler chain.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, NewErrorEnvelope(status, message))
}

func NewErrorEnvelope(status int, message string) ErrorEnvelope {
	return ErrorEnvelope{
		StatusCode: status,
		Message:    message,
		Error:      http.StatusText(status),
		Timestamp:  time.Now().UTC().Format(timestampLayout),
	}
}

// Common error responses

func BadRequest(c *gin.Context, message string) {
	Abort(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Abort(c, http.StatusNotFound, message)
}

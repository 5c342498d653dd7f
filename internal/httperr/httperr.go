package httperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflicted(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Respond maps a business error onto its HTTP status. Anything that is not
// a BusinessError is a storage or programming failure: it is logged with
// context and surfaced as a stable 500 code, never as a raw error message.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		log.Printf("unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch be.Kind {
	case KindNotFound:
		NotFound(c, be.Code, "Not found.")
	case KindConflict:
		Conflicted(c, be.Code, "Conflict.")
	default:
		BadRequest(c, be.Code, "Invalid request.")
	}
}

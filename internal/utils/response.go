package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response represents a standardized error envelope.
// It includes a status code, a message, and data.
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"` // Ensure data is always present, even if nil (will be null in JSON)
}

// NewErrorResponse creates a new error Response instance.
// Data is explicitly set to nil.
func NewErrorResponse(status int, message string) Response {
	return Response{
		Status:  status,
		Message: message,
		Data:    nil,
	}
}

// StatusError is implemented by errors that know which HTTP status they map to.
type StatusError interface {
	error
	StatusCode() int
}

// RespondError aborts the request with the status carried by err. Errors
// without a status become a 500 with a generic message; the cause is attached
// to the context so the request logger records it.
func RespondError(c *gin.Context, err error) {
	var se StatusError
	if errors.As(err, &se) && se.StatusCode() < http.StatusInternalServerError {
		c.AbortWithStatusJSON(se.StatusCode(), NewErrorResponse(se.StatusCode(), se.Error()))
		return
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, NewErrorResponse(http.StatusInternalServerError, "Internal server error"))
}

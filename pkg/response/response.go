package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tec-planning/backend/pkg/errors"
)

// ErrorBody is the shape of every error response
type ErrorBody struct {
	Message string `json:"message"`
}

const internalMessage = "Internal server error"

// ── success ──

// OK 200 with data as the body
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 with data as the body
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message 200 acknowledgement
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, ErrorBody{Message: message})
}

// ── errors ──

// Error writes {"message": message} with the given status
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Message: message})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// InternalError 500 with a generic message; the cause is recorded on the
// gin context for the request logger.
func InternalError(c *gin.Context, cause error) {
	if cause != nil {
		_ = c.Error(cause)
	}
	Error(c, http.StatusInternalServerError, internalMessage)
}

// FromError writes the response matching err's kind. Errors without a kind
// become a generic 500.
func FromError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	if kind == apperrors.KindInternal {
		InternalError(c, err)
		return
	}
	Error(c, kind.Status(), apperrors.PublicMessage(err))
}

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-api/internal/service"
)

// respondError is the single place service errors become HTTP responses.
func (h *Handler) respondError(c *gin.Context, err error) {
	var notFoundErr *service.NotFoundError
	var validationErr *service.ValidationError

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "invalid username/email or password",
		})
	case errors.Is(err, service.ErrNoPermission):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "You don't have permission to make this operation",
		})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": notFoundErr.Error(),
		})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"field":   validationErr.Field,
			"message": validationErr.Message,
		})
	default:
		h.logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "something went wrong",
		})
	}
}

package http

import (
	"errors"
	"net/http"

	"connectly/internal/usecase"

	"github.com/gin-gonic/gin"
)

// respondError translates usecase errors into HTTP status codes. Errors
// without a mapping become an opaque 500 so internals never leak.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, usecase.ErrUsernameTaken),
		errors.Is(err, usecase.ErrAlreadyFollowing):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrSelfFollow),
		errors.Is(err, usecase.ErrNotFollowing),
		errors.Is(err, usecase.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// callerIdentity pulls the authenticated user id and role set by the
// auth middleware.
func callerIdentity(c *gin.Context) (string, string) {
	return c.GetString("user_id"), c.GetString("role")
}

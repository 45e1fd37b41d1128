package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/user-gateway/internal/domain/user"
	"github.com/khoahotran/user-gateway/pkg/apperror"
)

// respondError maps domain and app errors to a response without leaking
// store error text to the client.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, user.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if errors.Is(err, user.ErrEmailTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": "email already taken"})
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(apperror.ToHTTPStatus(appErr), appErr.ToJSON())
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "wellspace/backend/internal/errors"
	"wellspace/backend/internal/service"
)

const UserEmailContextKey = "userEmail"

// Auth resolves the bearer token to the user's email and stores it on the
// request context. Every per-user operation downstream reads this explicit
// identity; there is no ambient current-user global.
func Auth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, apperrors.Unauthorized("missing authorization header"))
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, apperrors.Unauthorized("invalid authorization format"))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			abortUnauthorized(c, apperrors.Unauthorized("invalid authorization format"))
			return
		}

		email, apiErr := authService.ParseToken(token)
		if apiErr != nil {
			abortUnauthorized(c, apiErr)
			return
		}

		c.Set(UserEmailContextKey, email)
		c.Next()
	}
}

// UserEmail returns the authenticated user's email, or "" when the request
// did not pass the Auth middleware.
func UserEmail(c *gin.Context) string {
	value, ok := c.Get(UserEmailContextKey)
	if !ok {
		return ""
	}
	email, ok := value.(string)
	if !ok {
		return ""
	}
	return email
}

func abortUnauthorized(c *gin.Context, apiErr *apperrors.APIError) {
	c.AbortWithStatusJSON(apiErr.Status, gin.H{
		"error": gin.H{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

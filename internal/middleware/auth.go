package middleware

import (
	"context" // Request context
	"strings"  // String manipulation

	"contact_manager/internal/apperror" // Typed errors
	"contact_manager/internal/domain"   // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// userKey is the gin context key holding the authenticated *domain.User
const userKey = "user"

// Authenticator resolves a session token to its user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// TokenAuthMiddleware looks up the user owning the Authorization header token
func TokenAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader("Authorization")) // Raw token, no scheme required
		token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
		// Check if the token is present
		if token == "" {
			c.Error(apperror.Unauthorized()) // Let the error handler write the response
			c.Abort()
			return
		}
		user, err := auth.Authenticate(c.Request.Context(), token) // Look the token up in the store
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}
		c.Set(userKey, user) // Store the user in context
		c.Next()             // Proceed to the next handler
	}
}

// CurrentUser returns the user stored by TokenAuthMiddleware
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	value, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*domain.User)
	return user, ok && user != nil
}

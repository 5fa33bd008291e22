package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/bookcatalog/internal/config"
)

// Context keys for the authenticated identity.
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyUsername = "auth_username"
	ContextKeyEmail    = "auth_email"
	ContextKeyRole     = "auth_role"
)

// RoleAdmin gates the admin-only mutation and reporting endpoints.
const RoleAdmin = "admin"

// Middleware handles bearer-token authentication for HTTP requests.
type Middleware struct {
	config config.Auth
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(cfg config.Auth) *Middleware {
	return &Middleware{config: cfg}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// identity in the request context.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := m.tryBearerAuth(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, claims.Role)
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose role claim does not match.
// Must be registered after RequireAuth; a missing identity fails closed.
func (m *Middleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := c.Get(ContextKeyRole)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		if current != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "insufficient permissions",
			})
			return
		}
		c.Next()
	}
}

// tryBearerAuth extracts and verifies the Authorization header.
func (m *Middleware) tryBearerAuth(c *gin.Context) *Claims {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil
	}

	claims, err := ParseToken(parts[1], m.config.JWTSecret)
	if err != nil {
		return nil
	}
	return claims
}

// GetUserID returns the authenticated user's ID from the Gin context, or 0.
func GetUserID(c *gin.Context) uint {
	if id, ok := c.Get(ContextKeyUserID); ok {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// GetRole returns the authenticated user's role from the Gin context.
func GetRole(c *gin.Context) string {
	if role, ok := c.Get(ContextKeyRole); ok {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}

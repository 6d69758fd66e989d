package utilities

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middlewares.
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
)

// AuthMiddleware ensures each request carries a valid access token.
func AuthMiddleware(tokens *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		if !authenticate(c, tokens, authHeader) {
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware authenticates the request when a token is present
// and lets anonymous requests through untouched. A bad token is still rejected.
func OptionalAuthMiddleware(tokens *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && !authenticate(c, tokens, authHeader) {
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, tokens *JWTManager, authHeader string) bool {
	tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || strings.TrimSpace(tokenStr) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header must be a bearer token"})
		return false
	}

	claims, err := tokens.ValidateToken(strings.TrimSpace(tokenStr), false)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return false
	}

	// Store claims in context for later use
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextEmail, claims.Email)
	return true
}

// AuthenticatedUserID returns the user id stored by the auth middlewares.
func AuthenticatedUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

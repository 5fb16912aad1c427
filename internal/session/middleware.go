package session

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dcastano/evalia/internal/model"
	"github.com/dcastano/evalia/internal/repository"
)

const contextKey = "evalia.session"

// Middleware resolves the session from the bearer token. The user is
// re-fetched from the store so a deleted account or changed role takes
// effect immediately, not at token expiry.
func Middleware(tokens *TokenManager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
			return
		}
		user, ok := users.Get(claims.UserID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "account no longer exists"})
			return
		}
		c.Set(contextKey, &Session{User: user.Sanitized()})
		c.Next()
	}
}

// RequireRoles aborts with 403 unless the session role is one of the given.
func RequireRoles(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := Current(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}
		for _, role := range roles {
			if sess.Role() == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "insufficient role"})
	}
}

// Current returns the session resolved by Middleware, if any.
func Current(c *gin.Context) (*Session, bool) {
	v, exists := c.Get(contextKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*Session)
	return sess, ok && sess.IsAuthenticated()
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rawuh-in/console/pkg/response"
)

// TokenSource reports the bearer credential of the active session.
type TokenSource interface {
	Token() string
}

// SessionConfig holds configuration for the session guard
type SessionConfig struct {
	// Source holds the active session credential
	Source TokenSource
	// SkipPaths is a list of paths that should skip the session check
	SkipPaths []string
}

// SessionGuard rejects requests while no backend session is
// established. Sign-in and health endpoints list themselves in
// SkipPaths.
func SessionGuard(config *SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, path := range config.SkipPaths {
			if c.Request.URL.Path == path {
				c.Next()
				return
			}
		}

		if config.Source.Token() == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("Sign in required"))
			return
		}

		c.Next()
	}
}

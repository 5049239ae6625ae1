package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"taskboard/internal/adapter/http/helper"
	"taskboard/internal/adapter/telemetry"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/port"
)

const (
	contextUserIDKey   = "x-user-id"
	contextUsernameKey = "x-username"
)

// TokenAuth resolves the opaque bearer token against the token cache first
// and falls back to the user store. The authenticated user's id and username
// are stored on the gin context for the handlers.
func TokenAuth(users port.UserRepository, tokens port.TokenCache, metrics *telemetry.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			helper.SendUnauthorizedError(c, "missing authorization header")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" {
			helper.SendUnauthorizedError(c, "missing bearer token")
			c.Abort()
			return
		}

		user, err := resolveToken(c, users, tokens, metrics, token)
		if err != nil {
			helper.SendUnauthorizedError(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(contextUserIDKey, user.ID)
		c.Set(contextUsernameKey, user.Username)

		c.Next()
	}
}

func resolveToken(c *gin.Context, users port.UserRepository, tokens port.TokenCache, metrics *telemetry.AppMetrics, token string) (domain.User, error) {
	if tokens != nil {
		if user, ok := tokens.Get(c.Request.Context(), token); ok {
			metrics.RecordTokenCacheHit()
			return user, nil
		}

		metrics.RecordTokenCacheMiss()
	}

	user, err := users.GetByToken(c.Request.Context(), token)
	if err != nil {
		return domain.User{}, err
	}

	if tokens != nil {
		tokens.Set(c.Request.Context(), token, user)
	}

	return user, nil
}

// CurrentUserID returns the id of the authenticated user.
func CurrentUserID(c *gin.Context) int {
	return c.GetInt(contextUserIDKey)
}

// CurrentUsername returns the username of the authenticated user.
func CurrentUsername(c *gin.Context) string {
	return c.GetString(contextUsernameKey)
}

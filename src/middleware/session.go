package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hoteldesk/chat-admin/src/services"
)

// SessionCookieName is the cookie the login handler sets
const SessionCookieName = "admin_token"

// UsernameKey is the context key for the authorized admin username
const UsernameKey = "username"

// sessionToken extracts the presented token from the session cookie or,
// failing that, an Authorization bearer header.
func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// AdminSession gates every protected route. Requests without a valid,
// unrevoked session token are rejected with 401 before the handler runs.
func AdminSession(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication token"})
			c.Abort()
			return
		}

		username, err := authService.Authorize(c.Request.Context(), token)
		if errors.Is(err, services.ErrStoreUnavailable) {
			// Revocation could not be checked; failing open would let a
			// revoked session through.
			c.JSON(http.StatusInternalServerError, gin.H{"error": "store unavailable"})
			c.Abort()
			return
		}
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			c.Abort()
			return
		}

		c.Set(UsernameKey, username)
		c.Next()
	}
}

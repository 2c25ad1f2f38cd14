package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hoteldesk/chat-admin/src/middleware"
	"github.com/hoteldesk/chat-admin/src/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles the login form and session lifecycle
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// HandleLoginPage renders the login form
func (ah *AuthHandler) HandleLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Failed": c.Query("failed") == "1",
	})
}

// HandleLogin authenticates the submitted credentials and establishes a
// session. Failures redirect back to the form with a generic flag; the
// response never says which of username/password was wrong.
func (ah *AuthHandler) HandleLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if !ah.authService.Authenticate(username, password) {
		log.Warn().Str("client_ip", c.ClientIP()).Msg("failed admin login")
		c.Redirect(http.StatusFound, "/login?failed=1")
		return
	}

	token, expiresAt, err := ah.authService.EstablishSession(username)
	if err != nil {
		log.Error().Err(err).Msg("failed to establish session")
		c.Redirect(http.StatusFound, "/login?failed=1")
		return
	}

	c.SetCookie(
		middleware.SessionCookieName,
		token,
		int(time.Until(expiresAt).Seconds()),
		"/",
		"",
		true, // Secure
		true, // HttpOnly
	)

	log.Info().Str("username", username).Msg("admin logged in")
	c.Redirect(http.StatusFound, "/dashboard")
}

// HandleLogout revokes the presented session and clears the cookie.
// Revocation is idempotent, so a double logout is harmless.
func (ah *AuthHandler) HandleLogout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		if err := ah.authService.Revoke(c.Request.Context(), token); err != nil {
			writeError(c, err)
			return
		}
	}

	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", true, true)
	c.Redirect(http.StatusFound, "/login")
}

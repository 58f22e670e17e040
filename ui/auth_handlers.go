package ui

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const authErrorRedirect = "/login?error=auth_callback_error"

// handleAuthCallback exchanges the provider's callback code for a
// session, creates the user profile row on first sign-in and redirects
// to the requested page.
func (s *Server) handleAuthCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, authErrorRedirect)
		return
	}

	session, err := s.authProvider.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		log.Warn().Err(err).Msg("Auth callback code exchange failed")
		c.Redirect(http.StatusFound, authErrorRedirect)
		return
	}

	user, created, err := s.users.GetOrCreateByEmail(c.Request.Context(), session.Identity.Email, session.Identity.Username)
	if err != nil {
		log.Error().Err(err).Msg("Auth callback profile creation failed")
		c.Redirect(http.StatusFound, authErrorRedirect)
		return
	}
	if created {
		log.Info().Str("user_id", user.ID.String()).Msg("Created user profile on first sign-in")
	}

	c.SetCookie("session_token", session.AccessToken, 3600*24*7, "/", "", false, true)

	next := c.Query("next")
	if next == "" || !strings.HasPrefix(next, "/") {
		next = defaultLandingPath
	}
	c.Redirect(http.StatusFound, next)
}

// handleHealth reports liveness and database reachability
func (s *Server) handleHealth(c *gin.Context) {
	if err := s.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "database unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package server

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// adminAllowed reports whether slug opens the admin console. An empty
// ADMIN_SLUG disables the console entirely.
func (s *Server) adminAllowed(slug string) bool {
	expected := s.cfg.AdminSlug
	if expected == "" {
		return false
	}
	provided := strings.TrimSpace(slug)
	return subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) == 1
}

func (s *Server) requireAdmin(api bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.adminAllowed(c.Param("slug")) {
			c.Next()
			return
		}
		if api {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.Redirect(http.StatusFound, "/")
		c.Abort()
	}
}

// resolveTeamID prefers an explicit team id and falls back to the team
// remembered in the session for this game.
func (s *Server) resolveTeamID(c *gin.Context, provided, gameID uint) (uint, error) {
	if provided != 0 {
		return provided, nil
	}
	if s.sessions != nil {
		if teamID := s.sessions.GetTeam(c.Writer, c.Request, gameID); teamID != 0 {
			return teamID, nil
		}
	}
	return 0, errTeamRequired
}

func (s *Server) enforceRateLimit(c *gin.Context, action string) bool {
	if s.limiter == nil {
		return true
	}
	if s.limiter.Allow(c.ClientIP(), action) {
		return true
	}
	log.Printf("rate limited action=%s remote=%s", action, c.ClientIP())
	writeError(c, http.StatusTooManyRequests, "too many requests, slow down")
	return false
}

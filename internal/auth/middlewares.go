package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const sessionContextKey = "session"

// SessionFromContext returns the verified session attached by one of the
// middlewares below.
func SessionFromContext(c *gin.Context) (Session, bool) {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return Session{}, false
	}

	session, ok := value.(Session)

	return session, ok
}

func (s *Sessions) sessionFromCookie(c *gin.Context) (Session, bool) {
	token, err := c.Cookie(cookieName)
	if err != nil || token == "" {
		return Session{}, false
	}

	session, err := s.Verify(token)
	if err != nil {
		return Session{}, false
	}

	return session, true
}

// OptionalSession attaches a session when a valid cookie is present, and
// lets the request through either way.
func (s *Sessions) OptionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session, ok := s.sessionFromCookie(c); ok {
			c.Set(sessionContextKey, session)
		}

		c.Next()
	}
}

// RequireVoter rejects callers without a voter session. Admin sessions are
// not voters.
func (s *Sessions) RequireVoter() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := s.sessionFromCookie(c)
		if !ok || session.Admin || session.UserID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			c.Abort()

			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

func (s *Sessions) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := s.sessionFromCookie(c)
		if !ok || !session.Admin {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			c.Abort()

			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

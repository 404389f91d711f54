package session

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/feature/auth/domain/entity"
)

const (
	// CookieName is the session cookie handed to browsers.
	CookieName = "taskboard_session"

	// ContextUserID is the gin context key holding the authenticated user id.
	ContextUserID = "userID"

	// ContextSessionID is the gin context key holding the live session token.
	ContextSessionID = "sessionID"
)

// SessionResolver resolves a cookie token to a live session.
// Following Go convention: interfaces are defined by the consumer (middleware), not the provider (usecase).
type SessionResolver interface {
	CurrentSession(ctx context.Context, sessionID string) (*entity.Session, error)
}

// SetCookie writes the session cookie for a freshly opened session.
func SetCookie(c *gin.Context, s *entity.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, s.ID, int(s.ExpiresAt.Sub(s.CreatedAt).Seconds()), "/", "", false, true)
}

// ClearCookie expires the session cookie on the client.
func ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// AuthRequired returns a Gin middleware that restricts access to requests
// carrying a valid session cookie. Requests without one are redirected to the
// login page; the session's user id is stored in the gin context for handlers.
func AuthRequired(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		session, err := resolver.CurrentSession(c.Request.Context(), token)
		if err != nil {
			// Stale cookie: clear it so the browser stops resending it.
			ClearCookie(c)
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set(ContextUserID, session.UserID)
		c.Set(ContextSessionID, session.ID)
		c.Next()
	}
}

// UserID extracts the authenticated user id set by AuthRequired.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// Package csrf implements double-submit CSRF protection for the HTML forms.
// A random token travels in an authenticated cookie (sealed with
// gorilla/securecookie) and must be echoed back in the _token form field or
// the X-CSRF-Token header on every state-changing request.
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
)

const (
	// cookieName carries the sealed CSRF token.
	cookieName = "taskboard_csrf"

	// FormField is the hidden input name templates must render.
	FormField = "_token"

	// headerName is the header alternative for non-form clients.
	headerName = "X-CSRF-Token"

	// contextToken is the gin context key exposing the plain token to handlers.
	contextToken = "csrfToken"
)

// Protection mints and verifies CSRF tokens.
type Protection struct {
	codec *securecookie.SecureCookie
}

// New creates a Protection sealing tokens with the given keys.
// hashKey authenticates the cookie; blockKey (optional, 16/24/32 bytes) encrypts it.
func New(hashKey, blockKey []byte) *Protection {
	return &Protection{codec: securecookie.New(hashKey, blockKey)}
}

// Middleware returns a Gin middleware that guarantees a token cookie exists,
// exposes the plain token to handlers, and rejects mutating requests whose
// submitted token does not match the cookie.
func (p *Protection) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := p.tokenFromCookie(c.Request)
		if err != nil {
			token, err = p.issueToken(c)
			if err != nil {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
		}
		c.Set(contextToken, token)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		submitted := c.PostForm(FormField)
		if submitted == "" {
			submitted = c.GetHeader(headerName)
		}
		if subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// Token returns the plain CSRF token for the current request, for embedding
// into rendered forms.
func Token(c *gin.Context) string {
	if v, ok := c.Get(contextToken); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// tokenFromCookie decodes and authenticates the token cookie.
func (p *Protection) tokenFromCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return "", err
	}
	var token string
	if err := p.codec.Decode(cookieName, cookie.Value, &token); err != nil {
		return "", err
	}
	return token, nil
}

// issueToken generates a fresh token and sets the sealed cookie.
func (p *Protection) issueToken(c *gin.Context) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	sealed, err := p.codec.Encode(cookieName, token)
	if err != nil {
		return "", err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, sealed, 0, "/", "", false, true)
	return token, nil
}

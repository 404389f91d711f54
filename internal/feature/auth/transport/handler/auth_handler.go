// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authentity "taskboard/internal/feature/auth/domain/entity"
	"taskboard/internal/feature/auth/transport/http/dto"
	"taskboard/internal/feature/auth/usecase"
	"taskboard/internal/platform/csrf"
	"taskboard/internal/platform/session"
	"taskboard/internal/shared/ratelimiter"
	"taskboard/internal/shared/validation"
)

// AuthUsecase defines the identity operations the handlers depend on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	// Register creates a user with a hashed password and opens a session.
	Register(ctx context.Context, name, email, password, confirmation string, meta usecase.SessionMeta) (*authentity.User, *authentity.Session, error)
	// Login authenticates a user and opens a session on success.
	Login(ctx context.Context, email, password string, meta usecase.SessionMeta) (*authentity.Session, error)
	// Logout revokes the session; revoking a missing session is not an error.
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandler serves the login, registration, and logout pages and actions.
type AuthHandler struct {
	auth    AuthUsecase
	limiter ratelimiter.AttemptLimiterInterface
}

// NewAuthHandler creates a new AuthHandler. The limiter throttles login
// attempts per client IP; pass nil to disable throttling.
func NewAuthHandler(auth AuthUsecase, limiter ratelimiter.AttemptLimiterInterface) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter}
}

// meta collects the client details recorded on new sessions.
func meta(c *gin.Context) usecase.SessionMeta {
	return usecase.SessionMeta{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}
}

// ShowLogin handles GET /login.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	h.renderLogin(c, http.StatusOK, "", "", nil)
}

// Login handles POST /login.
// Failures re-render the form with a deliberately generic message: the caller
// must not learn whether the email or the password was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	if h.limiter != nil && !h.limiter.Allow(c.ClientIP()) {
		slog.Warn("login throttled", "remote_addr", c.ClientIP())
		h.renderLogin(c, http.StatusTooManyRequests, "too many login attempts, try again later", "", nil)
		return
	}

	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		h.renderLogin(c, http.StatusUnprocessableEntity, "", form.Email, validation.FromBindingError(err))
		return
	}

	s, err := h.auth.Login(c.Request.Context(), form.Email, form.Password, meta(c))
	if err != nil {
		slog.Warn("login failed", "error", err, "email", form.Email, "remote_addr", c.ClientIP())
		h.renderLogin(c, http.StatusUnauthorized, "invalid email or password", form.Email, nil)
		return
	}

	slog.Info("user login successful", "email", form.Email, "remote_addr", c.ClientIP())
	session.SetCookie(c, s)
	c.Redirect(http.StatusSeeOther, "/tasks")
}

// ShowRegister handles GET /register.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	h.renderRegister(c, http.StatusOK, "", dto.RegisterForm{}, nil)
}

// Register handles POST /register. On success the new user is logged in
// immediately; validation problems re-render the form with field messages
// and the entered values (passwords excluded).
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		h.renderRegister(c, http.StatusUnprocessableEntity, "", form, validation.FromBindingError(err))
		return
	}

	user, s, err := h.auth.Register(c.Request.Context(), form.Name, form.Email, form.Password, form.PasswordConfirmation, meta(c))
	if err != nil {
		if fe, ok := validation.AsFieldErrors(err); ok {
			slog.Warn("register rejected", "email", form.Email, "remote_addr", c.ClientIP())
			h.renderRegister(c, http.StatusUnprocessableEntity, "", form, fe)
			return
		}
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		h.renderRegister(c, http.StatusInternalServerError, "something went wrong, try again", form, nil)
		return
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email, "remote_addr", c.ClientIP())
	session.SetCookie(c, s)
	c.Redirect(http.StatusSeeOther, "/tasks")
}

// Logout handles POST /logout. It revokes the session, clears the cookie, and
// redirects to the login page; a request without a live session still succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetString(session.ContextSessionID)
	if err := h.auth.Logout(c.Request.Context(), sessionID); err != nil {
		slog.Warn("logout failed", "error", err, "remote_addr", c.ClientIP())
	}
	session.ClearCookie(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) renderLogin(c *gin.Context, status int, errMsg, email string, fe validation.FieldErrors) {
	c.HTML(status, "login.tmpl", gin.H{
		"CSRF":   csrf.Token(c),
		"Error":  errMsg,
		"Email":  email,
		"Errors": fe,
	})
}

func (h *AuthHandler) renderRegister(c *gin.Context, status int, errMsg string, form dto.RegisterForm, fe validation.FieldErrors) {
	c.HTML(status, "register.tmpl", gin.H{
		"CSRF":   csrf.Token(c),
		"Error":  errMsg,
		"Name":   form.Name,
		"Email":  form.Email,
		"Errors": fe,
	})
}

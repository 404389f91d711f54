package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"golang.org/x/crypto/bcrypt"

	"taskboard/internal/feature/auth/domain/entity"
	"taskboard/internal/shared/validation"
)

const (
	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8

	// defaultSessionTTL bounds how long a login stays valid without re-authenticating.
	defaultSessionTTL = 7 * 24 * time.Hour

	// defaultMaxSessions caps concurrent sessions per user.
	// Opening one past the cap evicts the oldest.
	defaultMaxSessions = 5
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user to the storage.
	// It returns ErrEmailAlreadyExists if a user with the same email already exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user matching the specified email address.
	// It returns ErrUserNotFound if the user does not exist.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user matching the specified ID.
	// It returns ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// SessionMeta carries per-request client details recorded on new sessions.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

// authUsecase implements the identity business logic: registration,
// credential verification, and session lifecycle.
type authUsecase struct {
	users       UserRepository
	sessions    SessionRepository
	sessionTTL  time.Duration
	maxSessions int64
}

// NewAuthUsecase creates a new authUsecase. Zero ttl and maxSessions fall back to defaults.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, ttl time.Duration, maxSessions int64) *authUsecase {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	return &authUsecase{
		users:       users,
		sessions:    sessions,
		sessionTTL:  ttl,
		maxSessions: maxSessions,
	}
}

// validateRegistration checks the registration input and collects every
// field-level problem in one pass so the form can render them all at once.
func validateRegistration(name, email, password, confirmation string) validation.FieldErrors {
	fe := validation.FieldErrors{}
	if name == "" {
		fe["name"] = "name is required"
	}
	switch {
	case email == "":
		fe["email"] = "email is required"
	default:
		if _, err := mail.ParseAddress(email); err != nil {
			fe["email"] = "email is not a valid address"
		}
	}
	switch {
	case password == "":
		fe["password"] = "password is required"
	case len(password) < minPasswordLength:
		fe["password"] = fmt.Sprintf("password must be at least %d characters long", minPasswordLength)
	case password != confirmation:
		fe["password_confirmation"] = "password confirmation does not match"
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Register creates a new user with a hashed password and opens a session for it.
// Validation failures are reported as validation.FieldErrors; a duplicate email
// surfaces as a field error on "email" so the form can point at the right input.
func (u *authUsecase) Register(ctx context.Context, name, email, password, confirmation string, meta SessionMeta) (*entity.User, *entity.Session, error) {
	if fe := validateRegistration(name, email, password, confirmation); fe != nil {
		return nil, nil, fe
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Name: name, Email: email, Password: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, nil, validation.FieldErrors{"email": "email is already taken"}
		}
		return nil, nil, err
	}

	session, err := u.openSession(ctx, user.ID, meta)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login authenticates a user by email and password and opens a session on success.
// To mitigate timing attacks, a bcrypt comparison runs even when no user matches.
func (u *authUsecase) Login(ctx context.Context, email, password string, meta SessionMeta) (*entity.Session, error) {
	user, err := u.users.FindByEmail(ctx, email)

	// Dummy hash so bcrypt.CompareHashAndPassword always executes.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// Generic error on unknown user or bad password: never reveal which.
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return u.openSession(ctx, user.ID, meta)
}

// Logout revokes the session. It is idempotent: revoking a missing or
// already-revoked session is not an error.
func (u *authUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := u.sessions.Revoke(ctx, sessionID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return nil
}

// CurrentSession resolves a cookie token to a live session.
func (u *authUsecase) CurrentSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}
	return session, nil
}

// openSession generates an opaque token, enforces the per-user session cap,
// and persists the new session.
func (u *authUsecase) openSession(ctx context.Context, userID uint, meta SessionMeta) (*entity.Session, error) {
	token, err := generateSessionToken()
	if err != nil {
		return nil, err
	}

	if count, err := u.sessions.CountByUserID(ctx, userID); err == nil && count >= u.maxSessions {
		if err := u.sessions.DeleteOldestByUserID(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to evict oldest session: %w", err)
		}
	}

	now := time.Now()
	session := &entity.Session{
		ID:        token,
		UserID:    userID,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// generateSessionToken returns a 64-character hex token from a CSPRNG.
func generateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	app_errors "healthassist/backend/internal/errors"
	"healthassist/backend/internal/metrics"
	"healthassist/backend/internal/model"
	"healthassist/backend/internal/repository"
)

const (
	PasswordMismatchText = "New passwords do not match."
	PasswordTooShortText = "Password must be at least 8 characters long."
	ProfileUpdatedText   = "Profile updated successfully!"

	minPasswordLength = 8
)

// DefaultProfile is shown to every user who signs in without registering.
var DefaultProfile = model.Profile{Name: "John Doe", Email: "john.doe@example.com"}

// PasswordChange is the payload of a password update.
type PasswordChange struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// AuthService implements the mock sign-in flow. Credentials are never checked
// or stored; signing in only marks a new session as authenticated.
type AuthService struct {
	repo   repository.Repository
	logger zerolog.Logger
	newID  func() string
}

func NewAuthService(repo repository.Repository, logger zerolog.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		logger: logger.With().Str("component", "auth").Logger(),
		newID:  uuid.NewString,
	}
}

func (s *AuthService) open(ctx context.Context, profile model.Profile) (string, error) {
	session := &repository.Session{
		ID:            s.newID(),
		Authenticated: true,
		Profile:       profile,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return "", fmt.Errorf("could not create session: %w", err)
	}
	metrics.SessionsActive.Inc()
	return session.ID, nil
}

// Login opens an authenticated session and returns its id.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", app_errors.ErrValidation)
	}
	id, err := s.open(ctx, DefaultProfile)
	if err != nil {
		return "", err
	}
	s.logger.Info().Str("session_id", id).Msg("signed in")
	return id, nil
}

// Register opens an authenticated session whose profile shows the given name
// and email.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return "", fmt.Errorf("%w: name, email and password are required", app_errors.ErrValidation)
	}
	id, err := s.open(ctx, model.Profile{Name: name, Email: email})
	if err != nil {
		return "", err
	}
	s.logger.Info().Str("session_id", id).Msg("registered")
	return id, nil
}

// Logout drops the session together with its chat.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
		return sessionErr(err)
	}
	metrics.SessionsActive.Dec()
	s.logger.Info().Str("session_id", sessionID).Msg("signed out")
	return nil
}

// Authenticated reports whether sessionID names a signed-in session.
func (s *AuthService) Authenticated(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	sess, err := s.repo.GetSession(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return sess.Authenticated, nil
}

// Profile returns the mock profile of the session.
func (s *AuthService) Profile(ctx context.Context, sessionID string) (*model.Profile, error) {
	sess, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, sessionErr(err)
	}
	p := sess.Profile
	return &p, nil
}

// UpdatePassword validates a password change and returns the confirmation
// text. Nothing is stored.
func (s *AuthService) UpdatePassword(ctx context.Context, sessionID string, change PasswordChange) (string, error) {
	if _, err := s.repo.GetSession(ctx, sessionID); err != nil {
		return "", sessionErr(err)
	}
	if change.NewPassword != change.ConfirmPassword {
		return "", app_errors.NewUserFacing(app_errors.ErrValidation, PasswordMismatchText, nil)
	}
	if len(change.NewPassword) < minPasswordLength {
		return "", app_errors.NewUserFacing(app_errors.ErrValidation, PasswordTooShortText, nil)
	}
	s.logger.Info().Str("session_id", sessionID).Msg("password updated")
	return ProfileUpdatedText, nil
}

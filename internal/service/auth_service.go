package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"invoicing-dashboard-backend/internal/auth"
	"invoicing-dashboard-backend/internal/cache"
)

// AuthService manages sign-in, sign-out, and session lookup
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (string, error)
	SignOut(ctx context.Context, token string) error
	Session(ctx context.Context, token string) (string, error)
}

type authService struct {
	provider   auth.CredentialsProvider
	sessions   cache.SessionStore
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(provider auth.CredentialsProvider, sessions cache.SessionStore, sessionTTL time.Duration, logger *slog.Logger) AuthService {
	return &authService{
		provider:   provider,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// SignIn verifies the credentials and opens a session, returning its token
func (s *authService) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := s.provider.Authorize(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := s.sessions.Create(ctx, user.ID, s.sessionTTL)
	if err != nil {
		s.logger.Error("failed to create session",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return "", &auth.Error{Category: auth.CategorySession, Err: err}
	}

	s.logger.Info("user signed in",
		slog.String("user_id", user.ID),
	)

	return token, nil
}

// SignOut discards the session for the given token
func (s *authService) SignOut(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Session resolves a token to the signed-in user's id. Returns
// cache.ErrNoSession when the token is unknown or expired.
func (s *authService) Session(ctx context.Context, token string) (string, error) {
	return s.sessions.Get(ctx, token)
}

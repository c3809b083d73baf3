package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"invoicing-dashboard-backend/internal/models"
	"invoicing-dashboard-backend/internal/repository"
)

var validate = validator.New()

// CredentialsProvider verifies submitted credentials and resolves the user
type CredentialsProvider interface {
	Authorize(ctx context.Context, email, password string) (*models.User, error)
}

// dbProvider implements CredentialsProvider against the users table
type dbProvider struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewCredentialsProvider creates a credentials provider backed by stored users
func NewCredentialsProvider(users repository.UserRepository, logger *slog.Logger) CredentialsProvider {
	return &dbProvider{
		users:  users,
		logger: logger,
	}
}

// Authorize checks email and password against the stored user. Every
// credential mismatch comes back as CategoryCredentials so callers cannot
// tell an unknown email from a wrong password.
func (p *dbProvider) Authorize(ctx context.Context, email, password string) (*models.User, error) {
	if validate.Var(email, "required,email") != nil || len(password) < 6 {
		return nil, &Error{Category: CategoryCredentials, Err: errors.New("malformed credentials")}
	}

	user, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &Error{Category: CategoryCredentials, Err: errors.New("unknown email")}
		}

		p.logger.Error("failed to load user",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, &Error{Category: CategoryProvider, Err: err}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, &Error{Category: CategoryCredentials, Err: errors.New("password mismatch")}
	}

	return user, nil
}

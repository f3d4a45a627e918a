package services

import (
	"context"

	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	"github.com/ecclesiahq/church_ledger_app/internal/dto"
)

// UserSvcFacade manages back-office users and credential checks.
type UserSvcFacade interface {
	// CreateUser registers a user, hashing their password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// GetUserByID retrieves one user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// Authenticate verifies email/password and returns the user on success.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// FindOrCreateOAuthUser resolves an externally authenticated user by
	// email, creating the account on first sign-in.
	FindOrCreateOAuthUser(ctx context.Context, email, name string) (*domain.User, error)
}

package repositories

import (
	"context"

	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user and their password hash by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, string, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user with their password hash.
	SaveUser(ctx context.Context, user domain.User, passwordHash string) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

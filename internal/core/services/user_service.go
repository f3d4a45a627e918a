package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ecclesiahq/church_ledger_app/internal/apperrors"
	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	portsrepo "github.com/ecclesiahq/church_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/ecclesiahq/church_ledger_app/internal/core/ports/services"
	"github.com/ecclesiahq/church_ledger_app/internal/dto"
	"github.com/ecclesiahq/church_ledger_app/internal/middleware"
	"github.com/ecclesiahq/church_ledger_app/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// userService manages back-office users and credential checks.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	now      Clock
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, clock Clock) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		now:      orSystemClock(clock),
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a user, hashing their password with bcrypt.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := normalizeEmail(req.Email)
	if _, _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := s.newUser(req.Name, email)
	if err := s.userRepo.SaveUser(ctx, user, hash); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User created", slog.String("user_id", user.UserID))
	return &user, nil
}

// GetUserByID retrieves one user.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return user, nil
}

// Authenticate verifies email/password. A missing user and a wrong password
// produce the same error so the endpoint does not leak which emails exist.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, hash, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrInvalidCredentials)
		}
		logger.Error("Failed to look up user for login", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !utils.CheckPasswordHash(password, hash) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrInvalidCredentials)
	}
	return user, nil
}

// FindOrCreateOAuthUser resolves an externally authenticated user by email,
// creating the account on first sign-in. OAuth accounts get a random local
// password so the password login path stays closed for them.
func (s *userService) FindOrCreateOAuthUser(ctx context.Context, email, name string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email = normalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: oauth profile has no email", apperrors.ErrValidation)
	}

	user, _, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up oauth user: %w", err)
	}

	hash, err := utils.HashPassword(randomPassword())
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
	}
	if name == "" {
		name = email
	}
	created := s.newUser(name, email)
	if err := s.userRepo.SaveUser(ctx, created, hash); err != nil {
		logger.Error("Failed to save oauth user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save oauth user: %w", err)
	}

	logger.Info("User created via oauth", slog.String("user_id", created.UserID))
	return &created, nil
}

func (s *userService) newUser(name, email string) domain.User {
	now := s.now().UTC()
	id := uuid.NewString()
	return domain.User{
		UserID: id,
		Name:   name,
		Email:  email,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     id,
			LastUpdatedAt: now,
			LastUpdatedBy: id,
		},
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func randomPassword() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return uuid.NewString() + uuid.NewString()
	}
	return hex.EncodeToString(buf)
}

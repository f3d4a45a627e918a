package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ecclesiahq/church_ledger_app/internal/apperrors"
	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	portsrepo "github.com/ecclesiahq/church_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/ecclesiahq/church_ledger_app/internal/core/ports/services"
	"github.com/ecclesiahq/church_ledger_app/internal/dto"
	"github.com/ecclesiahq/church_ledger_app/internal/middleware"
)

// roleRank orders roles for the minimum-role check. REMOVED members rank
// below everything and never pass authorization.
var roleRank = map[domain.ChurchRole]int{
	domain.RoleRemoved:  0,
	domain.RoleReadOnly: 1,
	domain.RoleMember:   2,
	domain.RoleAdmin:    3,
}

// churchService manages churches (tenants) and memberships.
type churchService struct {
	churchRepo portsrepo.ChurchRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
	now        Clock
}

// NewChurchService creates a new ChurchService.
func NewChurchService(churchRepo portsrepo.ChurchRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, clock Clock) portssvc.ChurchSvcFacade {
	return &churchService{
		churchRepo: churchRepo,
		userRepo:   userRepo,
		now:        orSystemClock(clock),
	}
}

var _ portssvc.ChurchSvcFacade = (*churchService)(nil)

// CreateChurch persists a new church and enrolls its creator as admin.
func (s *churchService) CreateChurch(ctx context.Context, req dto.CreateChurchRequest, creatorUserID string) (*domain.Church, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	creator, err := s.userRepo.FindUserByID(ctx, creatorUserID)
	if err != nil {
		logger.Warn("Creator lookup failed for CreateChurch", slog.String("user_id", creatorUserID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to find creating user: %w", err)
	}

	now := s.now().UTC()
	church := domain.Church{
		ChurchID:    uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.churchRepo.SaveChurch(ctx, church); err != nil {
		logger.Error("Failed to save church", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save church: %w", err)
	}

	membership := domain.UserChurch{
		UserID:   creatorUserID,
		UserName: creator.Name,
		ChurchID: church.ChurchID,
		Role:     domain.RoleAdmin,
		JoinedAt: now,
	}
	if err := s.churchRepo.AddUserToChurch(ctx, membership); err != nil {
		logger.Error("Failed to enroll creator as admin", slog.String("error", err.Error()), slog.String("church_id", church.ChurchID))
		return nil, fmt.Errorf("failed to enroll creator in church: %w", err)
	}

	logger.Info("Church created", slog.String("church_id", church.ChurchID), slog.String("name", church.Name))
	return &church, nil
}

// GetChurchByID retrieves one church the user belongs to.
func (s *churchService) GetChurchByID(ctx context.Context, churchID, userID string) (*domain.Church, error) {
	if err := s.AuthorizeUserAction(ctx, userID, churchID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	church, err := s.churchRepo.FindChurchByID(ctx, churchID)
	if err != nil {
		return nil, fmt.Errorf("failed to find church %s: %w", churchID, err)
	}
	return church, nil
}

// ListChurches retrieves the churches the user belongs to.
func (s *churchService) ListChurches(ctx context.Context, userID string) ([]domain.Church, error) {
	churches, err := s.churchRepo.ListChurchesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve churches for user: %w", err)
	}
	return churches, nil
}

// AddMember adds a user to the church with a role. Only admins may do this.
func (s *churchService) AddMember(ctx context.Context, churchID string, req dto.AddChurchMemberRequest, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, churchID, domain.RoleAdmin); err != nil {
		logger.Warn("Authorization failed for AddMember", slog.String("user_id", requestingUserID), slog.String("church_id", churchID), slog.String("error", err.Error()))
		return err
	}

	member, err := s.userRepo.FindUserByID(ctx, req.UserID)
	if err != nil {
		return fmt.Errorf("failed to find user to add: %w", err)
	}

	if existing, err := s.churchRepo.FindUserChurchRole(ctx, req.UserID, churchID); err == nil && existing.Role != domain.RoleRemoved {
		return fmt.Errorf("%w: user is already a member of this church", apperrors.ErrDuplicate)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check existing membership: %w", err)
	}

	membership := domain.UserChurch{
		UserID:   req.UserID,
		UserName: member.Name,
		ChurchID: churchID,
		Role:     req.Role,
		JoinedAt: s.now().UTC(),
	}
	if err := s.churchRepo.AddUserToChurch(ctx, membership); err != nil {
		logger.Error("Failed to add church member", slog.String("error", err.Error()), slog.String("church_id", churchID))
		return fmt.Errorf("failed to add member: %w", err)
	}

	logger.Info("Church member added", slog.String("church_id", churchID), slog.String("member_user_id", req.UserID), slog.String("role", string(req.Role)))
	return nil
}

// AuthorizeUserAction verifies the user holds at least requiredRole in the
// church. Non-members get ErrNotFound rather than ErrForbidden so tenant
// existence is not leaked.
func (s *churchService) AuthorizeUserAction(ctx context.Context, userID, churchID string, requiredRole domain.ChurchRole) error {
	membership, err := s.churchRepo.FindUserChurchRole(ctx, userID, churchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: church not found", apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if membership.Role == domain.RoleRemoved {
		return fmt.Errorf("%w: church not found", apperrors.ErrNotFound)
	}
	if roleRank[membership.Role] < roleRank[requiredRole] {
		return fmt.Errorf("%w: requires %s role", apperrors.ErrForbidden, requiredRole)
	}
	return nil
}

package services

import (
	"context"

	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	"github.com/ecclesiahq/church_ledger_app/internal/dto"
)

// ChurchSvcFacade manages churches (tenants) and memberships.
type ChurchSvcFacade interface {
	// CreateChurch persists a new church with the creator as admin.
	CreateChurch(ctx context.Context, req dto.CreateChurchRequest, creatorUserID string) (*domain.Church, error)

	// GetChurchByID retrieves one church the user belongs to.
	GetChurchByID(ctx context.Context, churchID, userID string) (*domain.Church, error)

	// ListChurches retrieves the churches the user belongs to.
	ListChurches(ctx context.Context, userID string) ([]domain.Church, error)

	// AddMember adds a user to the church with a role; requires admin.
	AddMember(ctx context.Context, churchID string, req dto.AddChurchMemberRequest, requestingUserID string) error

	// AuthorizeUserAction verifies the user holds at least requiredRole in
	// the church. Returns ErrNotFound for non-members to obscure existence.
	AuthorizeUserAction(ctx context.Context, userID, churchID string, requiredRole domain.ChurchRole) error
}

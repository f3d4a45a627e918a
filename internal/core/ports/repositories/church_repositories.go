package repositories

import (
	"context"

	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
)

// ChurchReader defines read operations for churches and memberships.
type ChurchReader interface {
	// FindChurchByID retrieves a specific church by its ID.
	FindChurchByID(ctx context.Context, churchID string) (*domain.Church, error)

	// FindUserChurchRole retrieves the membership of a user in a church.
	FindUserChurchRole(ctx context.Context, userID, churchID string) (*domain.UserChurch, error)

	// ListChurchesByUser retrieves the churches a user belongs to.
	ListChurchesByUser(ctx context.Context, userID string) ([]domain.Church, error)
}

// ChurchWriter defines write operations for churches and memberships.
type ChurchWriter interface {
	// SaveChurch persists a new church.
	SaveChurch(ctx context.Context, church domain.Church) error

	// AddUserToChurch persists a membership.
	AddUserToChurch(ctx context.Context, membership domain.UserChurch) error
}

// ChurchRepositoryFacade combines all church repository interfaces.
type ChurchRepositoryFacade interface {
	ChurchReader
	ChurchWriter
}

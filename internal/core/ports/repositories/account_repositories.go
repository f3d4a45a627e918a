package repositories

import (
	"context"

	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
)

// AccountReader defines read operations for the chart of accounts. The chart
// is seeded reference data, so there is no writer counterpart.
type AccountReader interface {
	// FindAccountByCode retrieves a single account by its hierarchical code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByCodes retrieves several accounts at once, keyed by code.
	// Missing codes are simply absent from the map.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the whole chart, ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountRepositoryFacade is the full chart-of-accounts repository surface.
type AccountRepositoryFacade interface {
	AccountReader
}

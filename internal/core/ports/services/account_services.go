package services

import (
	"context"

	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
)

// AccountSvcFacade exposes chart-of-accounts lookups and the fixed mappings
// used when resolving settlement postings.
type AccountSvcFacade interface {
	// GetAccountByCode retrieves one account by its hierarchical code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// GetAccountsByCodes retrieves several accounts at once, keyed by code.
	GetAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the whole chart ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ResolveAssetAccount maps a free-text "received via"/"paid via"
	// selection to an asset account code, falling back to generic cash.
	ResolveAssetAccount(receivedVia string) string

	// ResolveRevenueAccount maps a receivable category to its revenue
	// account code, falling back to generic offerings.
	ResolveRevenueAccount(category string) string

	// ResolveExpenseAccount maps an expense category to its expense account
	// code, falling back to generic other expenses.
	ResolveExpenseAccount(category string) string
}

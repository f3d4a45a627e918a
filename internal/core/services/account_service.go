package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ecclesiahq/church_ledger_app/internal/apperrors"
	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	portsrepo "github.com/ecclesiahq/church_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/ecclesiahq/church_ledger_app/internal/core/ports/services"
)

// Well-known chart positions. The chart itself is seeded by migration; these
// constants are the fixed mapping targets for settlement postings.
const (
	AccountCashGeneral  = "1.1.1.01" // fallback for any unknown "received via"
	AccountBankChecking = "1.1.1.02"
	AccountPix          = "1.1.1.03"
	AccountCardReceipts = "1.1.1.04"

	AccountRevenueTithes    = "4.1.1.01"
	AccountRevenueOfferings = "4.1.1.02"
	AccountRevenueEBD       = "4.1.2.01"
	AccountRevenueEvents    = "4.1.2.02"
	AccountRevenueOther     = "4.1.9.99" // fallback for unmapped receivable categories

	AccountExpenseUtilities   = "3.1.1.01"
	AccountExpenseMaintenance = "3.1.1.02"
	AccountExpenseMinistry    = "3.1.1.03"
	AccountExpenseSupplies    = "3.1.1.04"
	AccountExpenseOther       = "3.1.9.99" // fallback for unmapped expense categories
)

// assetAccountByVia maps the free-text "received via"/"paid via" selection to
// the asset account holding (or funding) the money.
var assetAccountByVia = map[string]string{
	"cash":          AccountCashGeneral,
	"bank":          AccountBankChecking,
	"bank transfer": AccountBankChecking,
	"check":         AccountBankChecking,
	"pix":           AccountPix,
	"card":          AccountCardReceipts,
}

var revenueAccountByCategory = map[string]string{
	"tithe":    AccountRevenueTithes,
	"offering": AccountRevenueOfferings,
	"ebd":      AccountRevenueEBD,
	"event":    AccountRevenueEvents,
}

var expenseAccountByCategory = map[string]string{
	"utilities":   AccountExpenseUtilities,
	"maintenance": AccountExpenseMaintenance,
	"ministry":    AccountExpenseMinistry,
	"supplies":    AccountExpenseSupplies,
}

// accountService reads the seeded chart of accounts and resolves the fixed
// category/via mappings.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccountByCode retrieves one account by its hierarchical code.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", code, err)
	}
	return account, nil
}

// GetAccountsByCodes retrieves several accounts at once, keyed by code.
func (s *accountService) GetAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves the whole chart ordered by code.
func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx)
}

// ResolveAssetAccount maps a "received via" selection to an asset account
// code. Unknown selections land on generic cash.
func (s *accountService) ResolveAssetAccount(receivedVia string) string {
	if code, ok := assetAccountByVia[normalizeKey(receivedVia)]; ok {
		return code
	}
	return AccountCashGeneral
}

// ResolveRevenueAccount maps a receivable category to a revenue account code.
func (s *accountService) ResolveRevenueAccount(category string) string {
	if code, ok := revenueAccountByCategory[normalizeKey(category)]; ok {
		return code
	}
	return AccountRevenueOther
}

// ResolveExpenseAccount maps an expense category to an expense account code.
func (s *accountService) ResolveExpenseAccount(category string) string {
	if code, ok := expenseAccountByCategory[normalizeKey(category)]; ok {
		return code
	}
	return AccountExpenseOther
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

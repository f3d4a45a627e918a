package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ecclesiahq/church_ledger_app/internal/apperrors"
	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	portsrepo "github.com/ecclesiahq/church_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/ecclesiahq/church_ledger_app/internal/core/ports/services"
	"github.com/ecclesiahq/church_ledger_app/internal/dto"
	"github.com/ecclesiahq/church_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	ErrAmountNotPositive = errors.New("entry amount must be positive")
	ErrSameAccount       = errors.New("debit and credit accounts must differ")
	ErrAccountUnknown    = errors.New("account code does not resolve in the chart of accounts")
	ErrAccountNotLeaf    = errors.New("account is a grouping account and cannot receive postings")
)

// journalService provides append-only journal entry operations.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	churchSvc   portssvc.ChurchSvcFacade
	now         Clock
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, churchSvc portssvc.ChurchSvcFacade, clock Clock) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		churchSvc:   churchSvc,
		now:         orSystemClock(clock),
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validatePosting enforces the balance invariant: a strictly positive amount
// moving between two distinct, postable accounts.
func (s *journalService) validatePosting(ctx context.Context, debitCode, creditCode string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}
	if debitCode == creditCode {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSameAccount)
	}

	accounts, err := s.accountSvc.GetAccountsByCodes(ctx, []string{debitCode, creditCode})
	if err != nil {
		return fmt.Errorf("failed to fetch accounts for posting: %w", err)
	}
	for _, code := range []string{debitCode, creditCode} {
		acc, found := accounts[code]
		if !found {
			return fmt.Errorf("%w: %s (%s)", apperrors.ErrValidation, ErrAccountUnknown, code)
		}
		if !acc.IsLeaf() {
			return fmt.Errorf("%w: %s (%s)", apperrors.ErrValidation, ErrAccountNotLeaf, code)
		}
	}
	return nil
}

// PostEntry validates and persists one balanced debit/credit entry.
func (s *journalService) PostEntry(ctx context.Context, churchID string, req dto.PostEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.churchSvc.AuthorizeUserAction(ctx, creatorUserID, churchID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for PostEntry", slog.String("user_id", creatorUserID), slog.String("church_id", churchID), slog.String("error", err.Error()))
		return nil, err
	}

	if req.Memo == "" {
		return nil, fmt.Errorf("%w: memo is required", apperrors.ErrValidation)
	}
	if err := s.validatePosting(ctx, req.DebitAccountCode, req.CreditAccountCode, req.Amount); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	entry := domain.JournalEntry{
		EntryID:           uuid.NewString(),
		ChurchID:          churchID,
		EntryDate:         req.Date,
		Memo:              req.Memo,
		DebitAccountCode:  req.DebitAccountCode,
		CreditAccountCode: req.CreditAccountCode,
		Amount:            req.Amount,
		SourceDocumentID:  req.SourceDocumentID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("church_id", churchID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entry.EntryID), slog.String("church_id", churchID))
	return &entry, nil
}

// GetEntryByID retrieves a specific entry scoped to a church.
func (s *journalService) GetEntryByID(ctx context.Context, churchID, entryID, requestingUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.churchSvc.AuthorizeUserAction(ctx, requestingUserID, churchID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for GetEntryByID", slog.String("user_id", requestingUserID), slog.String("church_id", churchID), slog.String("error", err.Error()))
		return nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	if entry.ChurchID != churchID {
		// Obscure existence across tenants.
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

// ListEntries retrieves entries for a church within an optional window.
func (s *journalService) ListEntries(ctx context.Context, churchID, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.churchSvc.AuthorizeUserAction(ctx, userID, churchID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for ListEntries", "error", err)
		return nil, err
	}

	filter := portsrepo.EntryFilter{
		From:        params.From,
		To:          params.To,
		AccountCode: params.AccountCode,
		Limit:       params.Limit,
	}
	entries, err := s.journalRepo.ListEntriesByChurch(ctx, churchID, filter)
	if err != nil {
		logger.Error("Failed to list journal entries", "error", err)
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	logger.Info("Journal entries listed", "count", len(entries))
	return &dto.ListEntriesResponse{Entries: dto.ToJournalEntryResponses(entries)}, nil
}

// buildSettlementEntry assembles the journal entry for an obligation
// settlement: receivables debit the asset account the money landed on and
// credit the category's revenue account; payables invert the pair.
func buildSettlementEntry(o domain.Obligation, accountSvc portssvc.AccountSvcFacade, paymentDate time.Time, amount decimal.Decimal, receivedVia, userID string, at time.Time) domain.JournalEntry {
	var debit, credit string
	if o.IsPayable {
		debit = accountSvc.ResolveExpenseAccount(o.Category)
		credit = accountSvc.ResolveAssetAccount(receivedVia)
	} else {
		debit = accountSvc.ResolveAssetAccount(receivedVia)
		credit = accountSvc.ResolveRevenueAccount(o.Category)
	}
	return domain.JournalEntry{
		EntryID:           uuid.NewString(),
		ChurchID:          o.ChurchID,
		EntryDate:         paymentDate,
		Memo:              settlementMemo(o),
		DebitAccountCode:  debit,
		CreditAccountCode: credit,
		Amount:            amount,
		SourceDocumentID:  o.ObligationID,
		AuditFields: domain.AuditFields{
			CreatedAt:     at,
			CreatedBy:     userID,
			LastUpdatedAt: at,
			LastUpdatedBy: userID,
		},
	}
}

func settlementMemo(o domain.Obligation) string {
	kind := "receivable"
	if o.IsPayable {
		kind = "payable"
	}
	if o.Description != "" {
		return fmt.Sprintf("Settlement of %s: %s", kind, o.Description)
	}
	return fmt.Sprintf("Settlement of %s %s", kind, o.ObligationID)
}

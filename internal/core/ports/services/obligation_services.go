package services

import (
	"context"

	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	"github.com/ecclesiahq/church_ledger_app/internal/dto"
)

// ObligationReaderSvc defines read operations for receivables/payables.
type ObligationReaderSvc interface {
	// GetObligationByID retrieves one obligation with its derived status.
	GetObligationByID(ctx context.Context, churchID, obligationID, userID string) (*domain.Obligation, error)

	// ListObligations retrieves obligations matching the filter; OPEN/OVERDUE
	// status filtering is derived against the clock at call time.
	ListObligations(ctx context.Context, churchID, userID string, params dto.ListObligationsParams) (*dto.ListObligationsResponse, error)
}

// ObligationWriterSvc defines lifecycle operations for receivables/payables.
type ObligationWriterSvc interface {
	// CreateObligation records a single direct-entry obligation.
	CreateObligation(ctx context.Context, churchID string, req dto.CreateObligationRequest, userID string) (*domain.Obligation, error)

	// SplitIntoInstallments splits one charge into count dated obligations
	// sharing a batch id. No journal entries are posted at creation.
	SplitIntoInstallments(ctx context.Context, churchID string, req dto.SplitInstallmentsRequest, userID string) ([]domain.Obligation, error)

	// Settle flips one obligation to paid and posts the paired journal entry
	// as a single logical unit.
	Settle(ctx context.Context, churchID, obligationID string, req dto.SettleRequest, userID string) (*domain.Obligation, error)

	// SettleMany settles a set of obligations, reporting a per-id outcome.
	// The batch is not atomic: some ids may succeed while others fail.
	SettleMany(ctx context.Context, churchID string, req dto.SettleManyRequest, userID string) (*dto.SettleManyResponse, error)

	// Cancel deletes an unsettled obligation; for installments the whole
	// sibling batch is removed.
	Cancel(ctx context.Context, churchID, obligationID, userID string) error
}

// ObligationSvcFacade combines all obligation service interfaces.
type ObligationSvcFacade interface {
	ObligationReaderSvc
	ObligationWriterSvc
}

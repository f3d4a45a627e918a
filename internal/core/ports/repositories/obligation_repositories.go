package repositories

import (
	"context"
	"time"

	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
)

// ObligationFilter narrows an obligation listing. A nil field means "any".
type ObligationFilter struct {
	CounterpartyID *string
	From           *time.Time // Due date lower bound, inclusive
	To             *time.Time // Due date upper bound, inclusive
	IsPayable      *bool
	Settled        *bool // true: payment_date set; false: still outstanding
	PaymentType    *domain.PaymentType
}

// ObligationReader defines read operations for receivables/payables.
type ObligationReader interface {
	// FindObligationByID retrieves one obligation scoped to a church.
	FindObligationByID(ctx context.Context, churchID, obligationID string) (*domain.Obligation, error)

	// ListObligations retrieves obligations for a church ordered by due date.
	ListObligations(ctx context.Context, churchID string, filter ObligationFilter) ([]domain.Obligation, error)
}

// ObligationWriter defines write operations for receivables/payables.
type ObligationWriter interface {
	// SaveObligation persists one obligation.
	SaveObligation(ctx context.Context, obligation domain.Obligation) error

	// SaveObligations persists a set of obligations in one round trip; used
	// by the installment generator for the sibling set.
	SaveObligations(ctx context.Context, obligations []domain.Obligation) error

	// SettleWithEntry flips the obligation to paid and appends the matching
	// journal entry as one database transaction, so no caller can observe a
	// paid obligation without its journal trail.
	SettleWithEntry(ctx context.Context, obligation domain.Obligation, entry domain.JournalEntry) error

	// DeleteObligation removes one unsettled obligation.
	DeleteObligation(ctx context.Context, churchID, obligationID string) error

	// DeleteObligationsByBatch removes every installment sibling sharing the
	// batch id and returns how many rows went away.
	DeleteObligationsByBatch(ctx context.Context, churchID, batchID string) (int64, error)
}

// ObligationRepositoryFacade combines all obligation repository interfaces.
type ObligationRepositoryFacade interface {
	ObligationReader
	ObligationWriter
}

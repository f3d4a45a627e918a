package repositories

import (
	"context"

	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
)

// RecurringReader defines read operations for recurring definitions.
type RecurringReader interface {
	// FindDefinitionByID retrieves one definition scoped to a church.
	FindDefinitionByID(ctx context.Context, churchID, recurringDefID string) (*domain.RecurringDefinition, error)

	// ListDefinitions retrieves definitions for a church; activeOnly drops
	// deactivated ones.
	ListDefinitions(ctx context.Context, churchID string, activeOnly bool) ([]domain.RecurringDefinition, error)
}

// RecurringWriter defines write operations for recurring definitions.
type RecurringWriter interface {
	// SaveDefinitionWithOccurrence persists the definition and its eagerly
	// materialized first occurrence in one database transaction.
	SaveDefinitionWithOccurrence(ctx context.Context, def domain.RecurringDefinition, occurrence domain.Obligation) error

	// UpdateDefinition updates mutable fields (end date, active flag).
	UpdateDefinition(ctx context.Context, def domain.RecurringDefinition) error
}

// RecurringRepositoryFacade combines all recurring repository interfaces.
type RecurringRepositoryFacade interface {
	RecurringReader
	RecurringWriter
}

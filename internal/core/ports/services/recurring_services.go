package services

import (
	"context"

	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	"github.com/ecclesiahq/church_ledger_app/internal/dto"
)

// RecurringSvcFacade manages recurring definitions and their materialized
// occurrences.
type RecurringSvcFacade interface {
	// CreateRecurring persists a definition plus its first occurrence, dated
	// by the roll-to-next-month rule.
	CreateRecurring(ctx context.Context, churchID string, req dto.CreateRecurringRequest, userID string) (*domain.RecurringDefinition, *domain.Obligation, error)

	// Renew materializes the next occurrence for an existing definition.
	Renew(ctx context.Context, churchID, recurringDefID, userID string) (*domain.Obligation, error)

	// Deactivate stops a definition from producing occurrences or report
	// projections.
	Deactivate(ctx context.Context, churchID, recurringDefID, userID string) error

	// GetDefinitionByID retrieves one definition.
	GetDefinitionByID(ctx context.Context, churchID, recurringDefID, userID string) (*domain.RecurringDefinition, error)

	// ListDefinitions retrieves a church's definitions.
	ListDefinitions(ctx context.Context, churchID, userID string, activeOnly bool) (*dto.ListRecurringResponse, error)
}

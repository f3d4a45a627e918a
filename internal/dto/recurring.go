package dto

import (
	"time"

	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRecurringRequest creates a recurring definition and its eagerly
// materialized first occurrence.
type CreateRecurringRequest struct {
	CounterpartyID *string         `json:"counterpartyID"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Category       string          `json:"category" binding:"required"`
	DueDay         int             `json:"dueDay" binding:"required,min=1,max=31"`
	StartDate      time.Time       `json:"startDate" binding:"required"`
	EndDate        *time.Time      `json:"endDate"`
	Description    string          `json:"description"`
	IsPayable      bool            `json:"isPayable"`
}

// RecurringDefinitionResponse is the read shape of a recurring definition.
type RecurringDefinitionResponse struct {
	RecurringDefID string          `json:"recurringDefID"`
	CounterpartyID *string         `json:"counterpartyID,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Category       string          `json:"category"`
	DueDay         int             `json:"dueDay"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	IsPayable      bool            `json:"isPayable"`
	IsActive       bool            `json:"isActive"`
}

// CreateRecurringResponse returns the definition together with the first
// materialized occurrence.
type CreateRecurringResponse struct {
	Definition      RecurringDefinitionResponse `json:"definition"`
	FirstOccurrence ObligationResponse          `json:"firstOccurrence"`
}

// ListRecurringResponse wraps a definition listing.
type ListRecurringResponse struct {
	Definitions []RecurringDefinitionResponse `json:"definitions"`
}

// ToRecurringDefinitionResponse converts a domain.RecurringDefinition.
func ToRecurringDefinitionResponse(r *domain.RecurringDefinition) RecurringDefinitionResponse {
	return RecurringDefinitionResponse{
		RecurringDefID: r.RecurringDefID,
		CounterpartyID: r.CounterpartyID,
		Amount:         r.Amount,
		Category:       r.Category,
		DueDay:         r.DueDay,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		IsPayable:      r.IsPayable,
		IsActive:       r.IsActive,
	}
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringDefinition is the persisted template for a periodic obligation.
type RecurringDefinition struct {
	RecurringDefID string          `json:"recurringDefID"` // Primary Key (UUID)
	ChurchID       string          `json:"churchID"`       // Tenant (Not Null)
	CounterpartyID *string         `json:"counterpartyID,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Category       string          `json:"category"`
	DueDay         int             `json:"dueDay"` // 1..31
	StartDate      time.Time       `json:"startDate"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	IsPayable      bool            `json:"isPayable"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType describes how an obligation row was generated.
type PaymentType string

const (
	PaymentSingle      PaymentType = "SINGLE"
	PaymentRecurring   PaymentType = "RECURRING"
	PaymentInstallment PaymentType = "INSTALLMENT"
)

// Obligation is a receivable or payable row. OPEN/OVERDUE are derived at
// read time; only the payment date is persisted.
type Obligation struct {
	ObligationID     string           `json:"obligationID"` // Primary Key (UUID)
	ChurchID         string           `json:"churchID"`     // Tenant (Not Null)
	CounterpartyID   *string          `json:"counterpartyID,omitempty"`
	Amount           decimal.Decimal  `json:"amount"`
	DueDate          time.Time        `json:"dueDate"`
	PaymentDate      *time.Time       `json:"paymentDate,omitempty"`
	PaidAmount       *decimal.Decimal `json:"paidAmount,omitempty"`
	PaymentType      PaymentType      `json:"paymentType"`
	Category         string           `json:"category"`
	InstallmentIndex *int             `json:"installmentIndex,omitempty"`
	InstallmentCount *int             `json:"installmentCount,omitempty"`
	BatchID          *string          `json:"batchID,omitempty"`
	RecurringDefID   *string          `json:"recurringDefID,omitempty"`
	Description      string           `json:"description"`
	IsPayable        bool             `json:"isPayable"`
	AuditFields
}

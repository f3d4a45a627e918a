package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ObligationStatus is the lifecycle state of a receivable/payable.
// OPEN and OVERDUE are derived from the due date at read time; only the
// transition to PAID is persisted (via PaymentDate).
type ObligationStatus string

const (
	StatusOpen    ObligationStatus = "OPEN"
	StatusOverdue ObligationStatus = "OVERDUE"
	StatusPaid    ObligationStatus = "PAID"
)

// PaymentType describes how an obligation was generated.
type PaymentType string

const (
	PaymentSingle      PaymentType = "SINGLE"
	PaymentRecurring   PaymentType = "RECURRING"
	PaymentInstallment PaymentType = "INSTALLMENT"
)

// Obligation is an amount owed to (receivable) or by (payable) the church.
type Obligation struct {
	ObligationID   string          `json:"obligationID"` // Primary key (UUID)
	ChurchID       string          `json:"churchID"`     // Tenant (Not Null)
	CounterpartyID *string         `json:"counterpartyID,omitempty"`
	Amount         decimal.Decimal `json:"amount"` // Strictly positive
	DueDate        time.Time       `json:"dueDate"`
	PaymentDate    *time.Time      `json:"paymentDate,omitempty"`
	PaidAmount     *decimal.Decimal `json:"paidAmount,omitempty"` // Recorded as settled; may differ from Amount
	PaymentType    PaymentType     `json:"paymentType"`
	Category       string          `json:"category"` // Drives revenue/expense account resolution
	// Installment fields are set only for PaymentInstallment rows. BatchID
	// identifies the sibling set generated by one split call.
	InstallmentIndex *int    `json:"installmentIndex,omitempty"`
	InstallmentCount *int    `json:"installmentCount,omitempty"`
	BatchID          *string `json:"batchID,omitempty"`
	// RecurringDefID links a materialized occurrence back to its definition.
	RecurringDefID *string `json:"recurringDefID,omitempty"`
	Description    string  `json:"description"`
	IsPayable      bool    `json:"isPayable"`
	AuditFields
}

// Status derives the lifecycle state from the due date and payment date.
// It is a pure function of (DueDate, PaymentDate, now); OVERDUE is never
// stored, so a rewound clock flips the state back to OPEN.
func (o Obligation) Status(now time.Time) ObligationStatus {
	if o.PaymentDate != nil {
		return StatusPaid
	}
	if beforeDay(o.DueDate, now) {
		return StatusOverdue
	}
	return StatusOpen
}

// IsSettled reports whether the obligation reached its terminal PAID state.
func (o Obligation) IsSettled() bool {
	return o.PaymentDate != nil
}

// beforeDay compares calendar days, ignoring the time of day, so an
// obligation due today is still OPEN until midnight.
func beforeDay(due, now time.Time) bool {
	dy, dm, dd := due.Date()
	ny, nm, nd := now.Date()
	if dy != ny {
		return dy < ny
	}
	if dm != nm {
		return dm < nm
	}
	return dd < nd
}

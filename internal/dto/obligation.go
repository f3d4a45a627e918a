package dto

import (
	"time"

	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateObligationRequest creates a single (non-installment, non-recurring)
// receivable or payable.
type CreateObligationRequest struct {
	CounterpartyID *string         `json:"counterpartyID"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	DueDate        time.Time       `json:"dueDate" binding:"required"`
	Category       string          `json:"category" binding:"required"`
	Description    string          `json:"description"`
	IsPayable      bool            `json:"isPayable"`
}

// SplitInstallmentsRequest splits one charge into count dated obligations.
type SplitInstallmentsRequest struct {
	CounterpartyID *string         `json:"counterpartyID"`
	TotalAmount    decimal.Decimal `json:"totalAmount" binding:"required"`
	Count          int             `json:"count" binding:"required,min=2"`
	FirstDueDate   time.Time       `json:"firstDueDate" binding:"required"`
	Category       string          `json:"category" binding:"required"`
	Description    string          `json:"description"`
	IsPayable      bool            `json:"isPayable"`
}

// SettleRequest marks one obligation as paid.
type SettleRequest struct {
	PaymentDate time.Time        `json:"paymentDate" binding:"required"`
	PaidAmount  *decimal.Decimal `json:"paidAmount"` // Defaults to the obligation amount
	// ReceivedVia is the free-text funds destination/origin ("cash",
	// "bank transfer", "pix", ...) mapped to an asset account.
	ReceivedVia string `json:"receivedVia"`
}

// SettleManyRequest applies the same settlement to a set of obligations.
type SettleManyRequest struct {
	ObligationIDs []string  `json:"obligationIDs" binding:"required,min=1"`
	PaymentDate   time.Time `json:"paymentDate" binding:"required"`
	ReceivedVia   string    `json:"receivedVia"`
}

// BatchOutcome reports the result of one id within a batch settlement.
// Batches are not atomic; callers get one outcome per id, never a single
// collapsed boolean.
type BatchOutcome struct {
	ObligationID string `json:"obligationID"`
	Settled      bool   `json:"settled"`
	Error        string `json:"error,omitempty"`
}

// SettleManyResponse carries the per-id outcomes of a batch settlement.
type SettleManyResponse struct {
	Outcomes  []BatchOutcome `json:"outcomes"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
}

// ListObligationsParams narrows an obligation listing.
type ListObligationsParams struct {
	CounterpartyID *string    `form:"counterpartyID"`
	Status         string     `form:"status"` // OPEN, OVERDUE or PAID; derived at read time
	From           *time.Time `form:"from"`
	To             *time.Time `form:"to"`
	IsPayable      *bool      `form:"isPayable"`
}

// ObligationResponse is the read shape of a receivable/payable. Status is
// derived from the due date at response time.
type ObligationResponse struct {
	ObligationID     string                  `json:"obligationID"`
	CounterpartyID   *string                 `json:"counterpartyID,omitempty"`
	Amount           decimal.Decimal         `json:"amount"`
	DueDate          time.Time               `json:"dueDate"`
	PaymentDate      *time.Time              `json:"paymentDate,omitempty"`
	PaidAmount       *decimal.Decimal        `json:"paidAmount,omitempty"`
	Status           domain.ObligationStatus `json:"status"`
	PaymentType      domain.PaymentType      `json:"paymentType"`
	Category         string                  `json:"category"`
	InstallmentIndex *int                    `json:"installmentIndex,omitempty"`
	InstallmentCount *int                    `json:"installmentCount,omitempty"`
	BatchID          *string                 `json:"batchID,omitempty"`
	Description      string                  `json:"description"`
	IsPayable        bool                    `json:"isPayable"`
}

// ListObligationsResponse wraps an obligation listing.
type ListObligationsResponse struct {
	Obligations []ObligationResponse `json:"obligations"`
}

// ToObligationResponse converts a domain.Obligation, deriving its status at
// the given instant.
func ToObligationResponse(o *domain.Obligation, now time.Time) ObligationResponse {
	return ObligationResponse{
		ObligationID:     o.ObligationID,
		CounterpartyID:   o.CounterpartyID,
		Amount:           o.Amount,
		DueDate:          o.DueDate,
		PaymentDate:      o.PaymentDate,
		PaidAmount:       o.PaidAmount,
		Status:           o.Status(now),
		PaymentType:      o.PaymentType,
		Category:         o.Category,
		InstallmentIndex: o.InstallmentIndex,
		InstallmentCount: o.InstallmentCount,
		BatchID:          o.BatchID,
		Description:      o.Description,
		IsPayable:        o.IsPayable,
	}
}

// ToObligationResponses converts a slice of obligations.
func ToObligationResponses(obligations []domain.Obligation, now time.Time) []ObligationResponse {
	responses := make([]ObligationResponse, len(obligations))
	for i := range obligations {
		responses[i] = ToObligationResponse(&obligations[i], now)
	}
	return responses
}

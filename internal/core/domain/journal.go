package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a single balanced debit/credit pair recording one monetary
// movement. Entries are append-only: corrections are modeled as new
// offsetting entries, never as mutations.
type JournalEntry struct {
	EntryID           string          `json:"entryID"`  // Primary key (UUID)
	ChurchID          string          `json:"churchID"` // Tenant (Not Null)
	EntryDate         time.Time       `json:"entryDate"`
	Memo              string          `json:"memo"`
	DebitAccountCode  string          `json:"debitAccountCode"`
	CreditAccountCode string          `json:"creditAccountCode"`
	Amount            decimal.Decimal `json:"amount"`           // Strictly positive
	SourceDocumentID  string          `json:"sourceDocumentID"` // Obligation/expense the entry originated from; nullable
	AuditFields
}

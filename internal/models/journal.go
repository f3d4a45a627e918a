package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is one balanced debit/credit pair. Rows are append-only; no
// update or delete path exists for them.
type JournalEntry struct {
	EntryID           string          `json:"entryID"`  // Primary Key (UUID)
	ChurchID          string          `json:"churchID"` // Tenant (Not Null)
	EntryDate         time.Time       `json:"entryDate"`
	Memo              string          `json:"memo"`
	DebitAccountCode  string          `json:"debitAccountCode"`
	CreditAccountCode string          `json:"creditAccountCode"`
	Amount            decimal.Decimal `json:"amount"`
	SourceDocumentID  string          `json:"sourceDocumentID"` // Originating obligation or expense
	AuditFields
}

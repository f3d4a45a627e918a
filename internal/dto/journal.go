package dto

import (
	"time"

	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostEntryRequest defines the payload for posting one journal entry.
type PostEntryRequest struct {
	Date              time.Time       `json:"date" binding:"required"`
	Memo              string          `json:"memo" binding:"required"`
	DebitAccountCode  string          `json:"debitAccountCode" binding:"required"`
	CreditAccountCode string          `json:"creditAccountCode" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	SourceDocumentID  string          `json:"sourceDocumentID"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID           string          `json:"entryID"`
	Date              time.Time       `json:"date"`
	Memo              string          `json:"memo"`
	DebitAccountCode  string          `json:"debitAccountCode"`
	CreditAccountCode string          `json:"creditAccountCode"`
	Amount            decimal.Decimal `json:"amount"`
	SourceDocumentID  string          `json:"sourceDocumentID,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         string          `json:"createdBy"`
}

// ListEntriesParams narrows a journal listing.
type ListEntriesParams struct {
	From        *time.Time `form:"from"`
	To          *time.Time `form:"to"`
	AccountCode string     `form:"accountCode"`
	Limit       int        `form:"limit"`
}

// ListEntriesResponse wraps a journal listing.
type ListEntriesResponse struct {
	Entries []JournalEntryResponse `json:"entries"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:           e.EntryID,
		Date:              e.EntryDate,
		Memo:              e.Memo,
		DebitAccountCode:  e.DebitAccountCode,
		CreditAccountCode: e.CreditAccountCode,
		Amount:            e.Amount,
		SourceDocumentID:  e.SourceDocumentID,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}

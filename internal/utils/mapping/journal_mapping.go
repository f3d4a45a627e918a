package mapping

import (
	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	"github.com/ecclesiahq/church_ledger_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:           d.EntryID,
		ChurchID:          d.ChurchID,
		EntryDate:         d.EntryDate,
		Memo:              d.Memo,
		DebitAccountCode:  d.DebitAccountCode,
		CreditAccountCode: d.CreditAccountCode,
		Amount:            d.Amount,
		SourceDocumentID:  d.SourceDocumentID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:           m.EntryID,
		ChurchID:          m.ChurchID,
		EntryDate:         m.EntryDate,
		Memo:              m.Memo,
		DebitAccountCode:  m.DebitAccountCode,
		CreditAccountCode: m.CreditAccountCode,
		Amount:            m.Amount,
		SourceDocumentID:  m.SourceDocumentID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntrySlice converts a slice of model JournalEntries to domain
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}

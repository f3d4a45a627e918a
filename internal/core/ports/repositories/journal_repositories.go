package repositories

import (
	"context"
	"time"

	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
)

// EntryFilter narrows a journal listing. ChurchID is passed separately and is
// always applied; the store enforces no cross-tenant isolation on its own.
type EntryFilter struct {
	From        *time.Time
	To          *time.Time
	AccountCode string // Matches either side of the entry
	Limit       int
}

// JournalReader defines read operations for journal entries.
type JournalReader interface {
	// FindEntryByID retrieves a specific entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByChurch retrieves entries for a church ordered by entry
	// date descending.
	ListEntriesByChurch(ctx context.Context, churchID string, filter EntryFilter) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal entries. Entries are
// append-only: there is deliberately no update or delete.
type JournalWriter interface {
	// SaveEntry persists one balanced entry.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

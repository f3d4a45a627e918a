package services

import (
	"context"

	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	"github.com/ecclesiahq/church_ledger_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries.
type JournalReaderSvc interface {
	// GetEntryByID retrieves a specific entry scoped to a church.
	GetEntryByID(ctx context.Context, churchID, entryID, requestingUserID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entries for a church within an optional window.
	ListEntries(ctx context.Context, churchID, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal entries. The journal
// is append-only, so posting is the only mutation.
type JournalWriterSvc interface {
	// PostEntry validates and persists one balanced debit/credit entry.
	PostEntry(ctx context.Context, churchID string, req dto.PostEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

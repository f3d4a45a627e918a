package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ecclesiahq/church_ledger_app/internal/apperrors"
	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	portsrepo "github.com/ecclesiahq/church_ledger_app/internal/core/ports/repositories"
	"github.com/ecclesiahq/church_ledger_app/internal/models"
	"github.com/ecclesiahq/church_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const journalEntryColumns = `
	entry_id, church_id, entry_date, memo, debit_account_code, credit_account_code,
	amount, source_document_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	db *pgxpool.Pool
}

func newPgxJournalRepository(db *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{db: db}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveEntry inserts one entry. There is intentionally no ON CONFLICT clause
// and no update path: the journal is append-only.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		m.EntryID,
		m.ChurchID,
		m.EntryDate,
		m.Memo,
		m.DebitAccountCode,
		m.CreditAccountCode,
		m.Amount,
		m.SourceDocumentID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewStoreError("failed to insert journal entry "+m.EntryID, err)
	}
	return nil
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	m, err := scanJournalEntry(r.db.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("journal entry %s: %w", entryID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewStoreError("failed to query journal entry "+entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

func (r *PgxJournalRepository) ListEntriesByChurch(ctx context.Context, churchID string, filter portsrepo.EntryFilter) ([]domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE church_id = $1`
	args := []any{churchID}

	if filter.From != nil {
		args = append(args, *filter.From)
		query += ` AND entry_date >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += ` AND entry_date <= $` + strconv.Itoa(len(args))
	}
	if filter.AccountCode != "" {
		args = append(args, filter.AccountCode)
		n := strconv.Itoa(len(args))
		query += ` AND (debit_account_code = $` + n + ` OR credit_account_code = $` + n + `)`
	}
	query += ` ORDER BY entry_date DESC, created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list journal entries", err)
	}
	defer rows.Close()

	var ms []models.JournalEntry
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, apperrors.NewStoreError("failed to scan journal entry row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("failed reading journal entry rows", err)
	}
	return mapping.ToDomainJournalEntrySlice(ms), nil
}

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.ChurchID,
		&m.EntryDate,
		&m.Memo,
		&m.DebitAccountCode,
		&m.CreditAccountCode,
		&m.Amount,
		&m.SourceDocumentID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

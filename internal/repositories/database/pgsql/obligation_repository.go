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

const obligationColumns = `
	obligation_id, church_id, counterparty_id, amount, due_date, payment_date,
	paid_amount, payment_type, category, installment_index, installment_count,
	batch_id, recurring_def_id, description, is_payable,
	created_at, created_by, last_updated_at, last_updated_by`

const insertObligationQuery = `
	INSERT INTO obligations (` + obligationColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
`

type PgxObligationRepository struct {
	BaseRepository
}

func newPgxObligationRepository(pool *pgxpool.Pool) portsrepo.ObligationRepositoryFacade {
	return &PgxObligationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxObligationRepository implements portsrepo.ObligationRepositoryFacade
var _ portsrepo.ObligationRepositoryFacade = (*PgxObligationRepository)(nil)

func (r *PgxObligationRepository) SaveObligation(ctx context.Context, obligation domain.Obligation) error {
	m := mapping.ToModelObligation(obligation)
	_, err := r.Pool.Exec(ctx, insertObligationQuery, obligationArgs(m)...)
	if err != nil {
		return apperrors.NewStoreError("failed to insert obligation "+m.ObligationID, err)
	}
	return nil
}

// SaveObligations inserts the whole set in one batched round trip; used for
// installment siblings so they land together.
func (r *PgxObligationRepository) SaveObligations(ctx context.Context, obligations []domain.Obligation) error {
	if len(obligations) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, obligation := range obligations {
		batch.Queue(insertObligationQuery, obligationArgs(mapping.ToModelObligation(obligation))...)
	}
	results := r.Pool.SendBatch(ctx, batch)
	defer results.Close()
	for range obligations {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewStoreError("failed to insert obligation batch", err)
		}
	}
	return nil
}

// SettleWithEntry flips the obligation to paid and appends the matching
// journal entry inside one database transaction, so a paid row can never be
// observed without its journal trail.
func (r *PgxObligationRepository) SettleWithEntry(ctx context.Context, obligation domain.Obligation, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelObligation(obligation)
	updateQuery := `
		UPDATE obligations
		SET payment_date = $1, paid_amount = $2, last_updated_at = $3, last_updated_by = $4
		WHERE obligation_id = $5 AND church_id = $6 AND payment_date IS NULL;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		m.PaymentDate,
		m.PaidAmount,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ObligationID,
		m.ChurchID,
	)
	if err != nil {
		return apperrors.NewStoreError("failed to settle obligation "+m.ObligationID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either gone or already settled by a concurrent caller.
		return fmt.Errorf("obligation %s is not open for settlement: %w", m.ObligationID, apperrors.ErrConflict)
	}

	e := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, entryQuery,
		e.EntryID,
		e.ChurchID,
		e.EntryDate,
		e.Memo,
		e.DebitAccountCode,
		e.CreditAccountCode,
		e.Amount,
		e.SourceDocumentID,
		e.CreatedAt,
		e.CreatedBy,
		e.LastUpdatedAt,
		e.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewStoreError("failed to insert settlement entry for obligation "+m.ObligationID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxObligationRepository) FindObligationByID(ctx context.Context, churchID, obligationID string) (*domain.Obligation, error) {
	query := `SELECT ` + obligationColumns + ` FROM obligations WHERE obligation_id = $1 AND church_id = $2;`
	m, err := scanObligation(r.Pool.QueryRow(ctx, query, obligationID, churchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("obligation %s: %w", obligationID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewStoreError("failed to query obligation "+obligationID, err)
	}
	obligation := mapping.ToDomainObligation(m)
	return &obligation, nil
}

func (r *PgxObligationRepository) ListObligations(ctx context.Context, churchID string, filter portsrepo.ObligationFilter) ([]domain.Obligation, error) {
	query := `SELECT ` + obligationColumns + ` FROM obligations WHERE church_id = $1`
	args := []any{churchID}

	if filter.CounterpartyID != nil {
		args = append(args, *filter.CounterpartyID)
		query += ` AND counterparty_id = $` + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += ` AND due_date >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += ` AND due_date <= $` + strconv.Itoa(len(args))
	}
	if filter.IsPayable != nil {
		args = append(args, *filter.IsPayable)
		query += ` AND is_payable = $` + strconv.Itoa(len(args))
	}
	if filter.Settled != nil {
		if *filter.Settled {
			query += ` AND payment_date IS NOT NULL`
		} else {
			query += ` AND payment_date IS NULL`
		}
	}
	if filter.PaymentType != nil {
		args = append(args, string(*filter.PaymentType))
		query += ` AND payment_type = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY due_date, obligation_id`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list obligations", err)
	}
	defer rows.Close()

	var ms []models.Obligation
	for rows.Next() {
		m, err := scanObligation(rows)
		if err != nil {
			return nil, apperrors.NewStoreError("failed to scan obligation row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("failed reading obligation rows", err)
	}
	return mapping.ToDomainObligationSlice(ms), nil
}

// DeleteObligation removes one unsettled obligation. Settled rows are never
// deleted; their journal trail must survive.
func (r *PgxObligationRepository) DeleteObligation(ctx context.Context, churchID, obligationID string) error {
	query := `
		DELETE FROM obligations
		WHERE obligation_id = $1 AND church_id = $2 AND payment_date IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, obligationID, churchID)
	if err != nil {
		return apperrors.NewStoreError("failed to delete obligation "+obligationID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("obligation %s: %w", obligationID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteObligationsByBatch removes every unsettled installment sibling in
// the batch and reports how many rows went away.
func (r *PgxObligationRepository) DeleteObligationsByBatch(ctx context.Context, churchID, batchID string) (int64, error) {
	query := `
		DELETE FROM obligations
		WHERE batch_id = $1 AND church_id = $2 AND payment_date IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, batchID, churchID)
	if err != nil {
		return 0, apperrors.NewStoreError("failed to delete obligation batch "+batchID, err)
	}
	return tag.RowsAffected(), nil
}

func obligationArgs(m models.Obligation) []any {
	return []any{
		m.ObligationID,
		m.ChurchID,
		m.CounterpartyID,
		m.Amount,
		m.DueDate,
		m.PaymentDate,
		m.PaidAmount,
		m.PaymentType,
		m.Category,
		m.InstallmentIndex,
		m.InstallmentCount,
		m.BatchID,
		m.RecurringDefID,
		m.Description,
		m.IsPayable,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

func scanObligation(row pgx.Row) (models.Obligation, error) {
	var m models.Obligation
	err := row.Scan(
		&m.ObligationID,
		&m.ChurchID,
		&m.CounterpartyID,
		&m.Amount,
		&m.DueDate,
		&m.PaymentDate,
		&m.PaidAmount,
		&m.PaymentType,
		&m.Category,
		&m.InstallmentIndex,
		&m.InstallmentCount,
		&m.BatchID,
		&m.RecurringDefID,
		&m.Description,
		&m.IsPayable,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

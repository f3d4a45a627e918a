package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecclesiahq/church_ledger_app/internal/apperrors"
	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	portsrepo "github.com/ecclesiahq/church_ledger_app/internal/core/ports/repositories"
	"github.com/ecclesiahq/church_ledger_app/internal/models"
	"github.com/ecclesiahq/church_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const recurringColumns = `
	recurring_def_id, church_id, counterparty_id, amount, category, due_day,
	start_date, end_date, is_payable, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxRecurringRepository struct {
	BaseRepository
}

func newPgxRecurringRepository(pool *pgxpool.Pool) portsrepo.RecurringRepositoryFacade {
	return &PgxRecurringRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxRecurringRepository implements portsrepo.RecurringRepositoryFacade
var _ portsrepo.RecurringRepositoryFacade = (*PgxRecurringRepository)(nil)

// SaveDefinitionWithOccurrence inserts the definition and its eagerly
// materialized first occurrence as one transaction: no definition without an
// occurrence, no orphan occurrence without a definition.
func (r *PgxRecurringRepository) SaveDefinitionWithOccurrence(ctx context.Context, def domain.RecurringDefinition, occurrence domain.Obligation) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelRecurringDefinition(def)
	defQuery := `
		INSERT INTO recurring_definitions (` + recurringColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, defQuery,
		m.RecurringDefID,
		m.ChurchID,
		m.CounterpartyID,
		m.Amount,
		m.Category,
		m.DueDay,
		m.StartDate,
		m.EndDate,
		m.IsPayable,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewStoreError("failed to insert recurring definition "+m.RecurringDefID, err)
	}

	o := mapping.ToModelObligation(occurrence)
	if _, err := tx.Exec(ctx, insertObligationQuery, obligationArgs(o)...); err != nil {
		return apperrors.NewStoreError("failed to insert first occurrence for definition "+m.RecurringDefID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxRecurringRepository) UpdateDefinition(ctx context.Context, def domain.RecurringDefinition) error {
	m := mapping.ToModelRecurringDefinition(def)
	query := `
		UPDATE recurring_definitions
		SET end_date = $1, is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE recurring_def_id = $5 AND church_id = $6;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.EndDate,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.RecurringDefID,
		m.ChurchID,
	)
	if err != nil {
		return apperrors.NewStoreError("failed to update recurring definition "+m.RecurringDefID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recurring definition %s: %w", m.RecurringDefID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxRecurringRepository) FindDefinitionByID(ctx context.Context, churchID, recurringDefID string) (*domain.RecurringDefinition, error) {
	query := `SELECT ` + recurringColumns + ` FROM recurring_definitions WHERE recurring_def_id = $1 AND church_id = $2;`
	m, err := scanRecurringDefinition(r.Pool.QueryRow(ctx, query, recurringDefID, churchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("recurring definition %s: %w", recurringDefID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewStoreError("failed to query recurring definition "+recurringDefID, err)
	}
	def := mapping.ToDomainRecurringDefinition(m)
	return &def, nil
}

func (r *PgxRecurringRepository) ListDefinitions(ctx context.Context, churchID string, activeOnly bool) ([]domain.RecurringDefinition, error) {
	query := `SELECT ` + recurringColumns + ` FROM recurring_definitions WHERE church_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY created_at, recurring_def_id`

	rows, err := r.Pool.Query(ctx, query, churchID)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list recurring definitions", err)
	}
	defer rows.Close()

	var ms []models.RecurringDefinition
	for rows.Next() {
		m, err := scanRecurringDefinition(rows)
		if err != nil {
			return nil, apperrors.NewStoreError("failed to scan recurring definition row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("failed reading recurring definition rows", err)
	}
	return mapping.ToDomainRecurringDefinitionSlice(ms), nil
}

func scanRecurringDefinition(row pgx.Row) (models.RecurringDefinition, error) {
	var m models.RecurringDefinition
	err := row.Scan(
		&m.RecurringDefID,
		&m.ChurchID,
		&m.CounterpartyID,
		&m.Amount,
		&m.Category,
		&m.DueDay,
		&m.StartDate,
		&m.EndDate,
		&m.IsPayable,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

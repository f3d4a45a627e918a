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

type PgxAccountRepository struct {
	db *pgxpool.Pool
}

func newPgxAccountRepository(db *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{db: db}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `
		SELECT code, name, kind
		FROM accounts
		WHERE code = $1;
	`
	var m models.Account
	err := r.db.QueryRow(ctx, query, code).Scan(&m.Code, &m.Name, &m.Kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("account %s: %w", code, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewStoreError("failed to query account "+code, err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	query := `
		SELECT code, name, kind
		FROM accounts
		WHERE code = ANY($1);
	`
	rows, err := r.db.Query(ctx, query, codes)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to query accounts", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Account, len(codes))
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(&m.Code, &m.Name, &m.Kind); err != nil {
			return nil, apperrors.NewStoreError("failed to scan account row", err)
		}
		out[m.Code] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("failed reading account rows", err)
	}
	return out, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `
		SELECT code, name, kind
		FROM accounts
		ORDER BY code;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list accounts", err)
	}
	defer rows.Close()

	var ms []models.Account
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(&m.Code, &m.Name, &m.Kind); err != nil {
			return nil, apperrors.NewStoreError("failed to scan account row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("failed reading account rows", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

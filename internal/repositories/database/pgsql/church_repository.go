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

const churchColumns = `
	church_id, name, description, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxChurchRepository struct {
	db *pgxpool.Pool
}

func newPgxChurchRepository(db *pgxpool.Pool) portsrepo.ChurchRepositoryFacade {
	return &PgxChurchRepository{db: db}
}

// Ensure PgxChurchRepository implements portsrepo.ChurchRepositoryFacade
var _ portsrepo.ChurchRepositoryFacade = (*PgxChurchRepository)(nil)

func (r *PgxChurchRepository) SaveChurch(ctx context.Context, church domain.Church) error {
	m := mapping.ToModelChurch(church)
	query := `
		INSERT INTO churches (` + churchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		m.ChurchID,
		m.Name,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewStoreError("failed to insert church "+m.ChurchID, err)
	}
	return nil
}

func (r *PgxChurchRepository) FindChurchByID(ctx context.Context, churchID string) (*domain.Church, error) {
	query := `SELECT ` + churchColumns + ` FROM churches WHERE church_id = $1;`
	m, err := scanChurch(r.db.QueryRow(ctx, query, churchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("church %s: %w", churchID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewStoreError("failed to query church "+churchID, err)
	}
	church := mapping.ToDomainChurch(m)
	return &church, nil
}

func (r *PgxChurchRepository) ListChurchesByUser(ctx context.Context, userID string) ([]domain.Church, error) {
	query := `
		SELECT c.church_id, c.name, c.description, c.is_active,
		       c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
		FROM churches c
		JOIN user_churches uc ON uc.church_id = c.church_id
		WHERE uc.user_id = $1 AND uc.role <> 'REMOVED'
		ORDER BY c.name;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list churches for user", err)
	}
	defer rows.Close()

	var ms []models.Church
	for rows.Next() {
		m, err := scanChurch(rows)
		if err != nil {
			return nil, apperrors.NewStoreError("failed to scan church row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("failed reading church rows", err)
	}
	return mapping.ToDomainChurchSlice(ms), nil
}

// AddUserToChurch upserts the membership row, so re-adding a previously
// removed member just flips their role back.
func (r *PgxChurchRepository) AddUserToChurch(ctx context.Context, membership domain.UserChurch) error {
	m := mapping.ToModelUserChurch(membership)
	query := `
		INSERT INTO user_churches (user_id, church_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, church_id) DO UPDATE SET
			role = EXCLUDED.role,
			joined_at = EXCLUDED.joined_at;
	`
	_, err := r.db.Exec(ctx, query, m.UserID, m.ChurchID, m.Role, m.JoinedAt)
	if err != nil {
		return apperrors.NewStoreError("failed to add user to church", err)
	}
	return nil
}

func (r *PgxChurchRepository) FindUserChurchRole(ctx context.Context, userID, churchID string) (*domain.UserChurch, error) {
	query := `
		SELECT uc.user_id, uc.church_id, uc.role, uc.joined_at, u.name
		FROM user_churches uc
		JOIN users u ON u.user_id = uc.user_id
		WHERE uc.user_id = $1 AND uc.church_id = $2;
	`
	var m models.UserChurch
	var userName string
	err := r.db.QueryRow(ctx, query, userID, churchID).Scan(&m.UserID, &m.ChurchID, &m.Role, &m.JoinedAt, &userName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("membership of user %s in church %s: %w", userID, churchID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewStoreError("failed to query membership", err)
	}
	membership := mapping.ToDomainUserChurch(m, userName)
	return &membership, nil
}

func scanChurch(row pgx.Row) (models.Church, error) {
	var m models.Church
	err := row.Scan(
		&m.ChurchID,
		&m.Name,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

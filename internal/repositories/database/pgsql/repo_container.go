package pgsql

import (
	portsrepo "github.com/ecclesiahq/church_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:    newPgxAccountRepository(dbPool),
		JournalRepo:    newPgxJournalRepository(dbPool),
		ObligationRepo: newPgxObligationRepository(dbPool),
		RecurringRepo:  newPgxRecurringRepository(dbPool),
		ChurchRepo:     newPgxChurchRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
	}
}

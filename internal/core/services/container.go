package services

import (
	portsrepo "github.com/ecclesiahq/church_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/ecclesiahq/church_ledger_app/internal/core/ports/services"
)

// NewServiceProvider wires every service facade from the repository provider.
// A nil clock means wall-clock time; tests inject a fixed one.
func NewServiceProvider(repos *portsrepo.RepositoryProvider, clock Clock) *portssvc.ServiceProvider {
	accountSvc := NewAccountService(repos.AccountRepo)
	churchSvc := NewChurchService(repos.ChurchRepo, repos.UserRepo, clock)
	userSvc := NewUserService(repos.UserRepo, clock)
	journalSvc := NewJournalService(repos.JournalRepo, accountSvc, churchSvc, clock)
	obligationSvc := NewObligationService(repos.ObligationRepo, accountSvc, churchSvc, clock)
	recurringSvc := NewRecurringService(repos.RecurringRepo, repos.ObligationRepo, churchSvc, clock)
	reportSvc := NewReportService(repos.ObligationRepo, repos.RecurringRepo, churchSvc, clock)

	return &portssvc.ServiceProvider{
		AccountSvc:    accountSvc,
		JournalSvc:    journalSvc,
		ObligationSvc: obligationSvc,
		RecurringSvc:  recurringSvc,
		ReportSvc:     reportSvc,
		ChurchSvc:     churchSvc,
		UserSvc:       userSvc,
		Now:           orSystemClock(clock),
	}
}

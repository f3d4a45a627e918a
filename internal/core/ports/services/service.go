package services

import "time"

// ServiceProvider holds all service facades wired at startup; handlers pull
// their dependencies from here.
type ServiceProvider struct {
	AccountSvc    AccountSvcFacade
	JournalSvc    JournalSvcFacade
	ObligationSvc ObligationSvcFacade
	RecurringSvc  RecurringSvcFacade
	ReportSvc     ReportSvcFacade
	ChurchSvc     ChurchSvcFacade
	UserSvc       UserSvcFacade

	// Now supplies "today" for response-side status derivation, the same
	// clock the services run on. Nil falls back to time.Now.
	Now func() time.Time
}

package services

// ServiceContainer aggregates all service facades for wiring into handlers.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Journal   JournalSvcFacade
	Sale      SaleSvcFacade
	Payment   PaymentSvcFacade
	Reporting ReportingSvcFacade
}

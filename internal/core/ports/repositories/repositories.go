package repositories

// RepositoryProvider aggregates all repository implementations for wiring.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryFacade
	JournalRepo   JournalRepositoryWithTx
	SaleRepo      SaleRepositoryWithTx
	ReportingRepo ReportingRepository
}

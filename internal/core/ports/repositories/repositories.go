package repositories

// Repositories groups the ledger repositories bound to one database handle
// (the pool, or a single transaction inside TransactionManager.WithTx).
type Repositories struct {
	AccountRepo   AccountRepositoryFacade
	JournalRepo   JournalRepositoryFacade
	BatchRepo     BatchRepositoryFacade
	MappingRepo   MappingRepositoryFacade
	SettingsRepo  SettingsRepositoryFacade
	ImportRowRepo ImportRowRepositoryFacade
}

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	Repositories
	TxManager TransactionManager
}

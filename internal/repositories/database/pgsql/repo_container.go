package pgsql

import (
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// newRepositories binds every ledger repository to db (the pool or a transaction).
func newRepositories(db querier) portsrepo.Repositories {
	return portsrepo.Repositories{
		AccountRepo:   newPgxAccountRepository(db),
		JournalRepo:   newPgxJournalRepository(db),
		BatchRepo:     newPgxBatchRepository(db),
		MappingRepo:   newPgxMappingRepository(db),
		SettingsRepo:  newPgxSettingsRepository(db),
		ImportRowRepo: newPgxImportRowRepository(db),
	}
}

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Repositories: newRepositories(dbPool),
		TxManager:    newPgxTransactionManager(dbPool),
	}
}

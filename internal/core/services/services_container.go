package services

import (
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_backend/internal/core/ports/services"
	"github.com/SscSPs/gl_backend/internal/platform/config"
	"github.com/SscSPs/gl_backend/internal/platform/lock"
)

// Dependencies are the collaborators the services need beyond the repositories.
type Dependencies struct {
	Locker     lock.Locker
	FileReader LedgerFileReader
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, deps Dependencies, opts ...Option) *portssvc.ServiceContainer {
	balanceOpts := []BalanceOption{}
	if deps.Locker != nil {
		balanceOpts = append(balanceOpts, WithLocker(deps.Locker, cfg.RecalcLockTTL))
	}
	if b := newBase(opts); b.clock != nil {
		balanceOpts = append(balanceOpts, WithBalanceClock(b.clock))
	}

	return &portssvc.ServiceContainer{
		Account:  NewAccountService(repos.AccountRepo, opts...),
		Journal:  NewJournalService(repos, opts...),
		Batch:    NewBatchService(repos, opts...),
		Mapping:  NewMappingService(repos, opts...),
		Balance:  NewBalanceService(repos, balanceOpts...),
		Settings: NewSettingsService(repos, opts...),
		Import:   NewImportService(repos, deps.FileReader, cfg.ImportMaxRows, opts...),
	}
}

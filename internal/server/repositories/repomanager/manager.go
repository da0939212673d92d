// Package repomanager opens the configured storage backend and hands out the
// repositories built on top of it.
package repomanager

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/server/config"
	"github.com/dmitrijs2005/accountkeeper/internal/server/repositories/accounts"
)

// Manager owns the storage connection behind the account repository.
type Manager struct {
	accounts accounts.Repository
	closers  []func(context.Context) error
}

// Accounts returns the account repository bound to the open backend.
func (m *Manager) Accounts() accounts.Repository {
	return m.accounts
}

// Close releases the backend connection. It is safe to call more than once.
func (m *Manager) Close(ctx context.Context) error {
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	m.closers = nil
	return errors.Join(errs...)
}

// Open connects to the storage selected by cfg.StorageDriver. For postgres
// the embedded migrations are applied before Open returns; for mongo the
// unique email index is ensured.
func Open(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Manager, error) {
	logger = logger.With("driver", cfg.StorageDriver)

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.DatabaseDSN, logger)
	case config.DriverMongo:
		return openMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
	case config.DriverMemory:
		logger.Warn(ctx, "using in-memory storage, data will not survive a restart")
		return &Manager{accounts: accounts.NewMemoryRepository()}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

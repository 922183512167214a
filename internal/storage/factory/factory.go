package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/bop-eval/internal/storage"
	"github.com/DjordjeVuckovic/bop-eval/internal/storage/es"
	"github.com/DjordjeVuckovic/bop-eval/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/bop-eval/internal/storage/pg"
	"github.com/DjordjeVuckovic/bop-eval/pkg/server"
)

// Backend is an opened store with its health check. Close releases any
// connections the store holds.
type Backend struct {
	storage.Store
	Health server.HealthChecker
	Close  func()
}

// NewBackend opens the store selected by cfg.
func NewBackend(ctx context.Context, cfg *StorageConfig) (*Backend, error) {
	noop := func() {}

	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL config")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		return &Backend{
			Store:  pg.NewStorer(pool),
			Health: pool,
			Close:  pool.Close,
		}, nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch config")
		}
		s, err := es.NewStorer(ctx, *cfg.Es)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: s, Health: server.HealthFunc(s.Healthy), Close: noop}, nil

	case storage.InMem:
		return &Backend{Store: in_mem.NewInMemStorer(), Health: server.AlwaysHealthy, Close: noop}, nil

	case storage.File:
		fs := storage.NewJsonFileStorer(cfg.EvalPath)
		return &Backend{Store: fs, Health: server.HealthFunc(fs.Healthy), Close: noop}, nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}

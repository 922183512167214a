package in_mem

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
	"github.com/DjordjeVuckovic/bop-eval/internal/storage"
)

type InMemStorer struct {
	storageLock sync.RWMutex
	storage     map[string]domain.AggregateResult
}

func NewInMemStorer() *InMemStorer {
	return &InMemStorer{
		storage: make(map[string]domain.AggregateResult),
	}
}

func (s *InMemStorer) Save(ctx context.Context, result domain.AggregateResult) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	result.Recalls = maps.Clone(result.Recalls)
	s.storage[result.ResultName] = result
	return nil
}

func (s *InMemStorer) Type() storage.Type { return storage.InMem }

func (s *InMemStorer) Get(ctx context.Context, resultName string) (domain.AggregateResult, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	r, ok := s.storage[resultName]
	if !ok {
		return domain.AggregateResult{}, fmt.Errorf("%w: %s", storage.ErrNotFound, resultName)
	}
	r.Recalls = maps.Clone(r.Recalls)
	return r, nil
}

func (s *InMemStorer) List(ctx context.Context) ([]domain.AggregateResult, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	names := slices.Sorted(maps.Keys(s.storage))
	results := make([]domain.AggregateResult, 0, len(names))
	for _, name := range names {
		r := s.storage[name]
		r.Recalls = maps.Clone(r.Recalls)
		results = append(results, r)
	}
	return results, nil
}

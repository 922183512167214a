package storage

import (
	"context"
	"errors"

	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
	"github.com/google/uuid"
)

// Storer persists the final scores of a submission. Saving the same result
// twice overwrites the previous record.
type Storer interface {
	Save(ctx context.Context, result domain.AggregateResult) error
	// Type names the backend in logs.
	Type() Type
}

// Reader serves previously persisted final scores.
type Reader interface {
	Get(ctx context.Context, resultName string) (domain.AggregateResult, error)
	List(ctx context.Context) ([]domain.AggregateResult, error)
}

type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	InMem Type = "in_mem"
	File  Type = "file"
)

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}

var ErrNotFound = errors.New("scores not found")

var resultNamespace = uuid.MustParse("7b0c7a1e-5f43-4d7e-9a0d-3c1f2b6e8d19")

// ResultID is the stable record id of a result name.
func ResultID(resultName string) uuid.UUID {
	return uuid.NewSHA1(resultNamespace, []byte(resultName))
}

// Store is a backend that both persists and serves final scores.
type Store interface {
	Storer
	Reader
}

package factory

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/bop-eval/internal/storage"
	"github.com/DjordjeVuckovic/bop-eval/internal/storage/es"
	"github.com/DjordjeVuckovic/bop-eval/internal/storage/pg"
	"github.com/DjordjeVuckovic/bop-eval/pkg/stringsutil"
)

type StorageConfig struct {
	storage.Type
	// EvalPath roots the file backend.
	EvalPath string
	Pg       *pg.PoolConfig
	Es       *es.ClientConfig
}

// LoadEnv reads the backend selection from STORAGE_TYPE. An unset value
// selects the file backend rooted at evalPath.
func LoadEnv(evalPath string) (*StorageConfig, error) {
	storageType := storage.Type(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		slog.Debug("STORAGE_TYPE is not set, using file storage")
		storageType = storage.File
	}

	valid := []storage.Type{storage.File, storage.ES, storage.PG, storage.InMem}
	switch storageType {
	case storage.File, storage.ES, storage.PG, storage.InMem:
	default:
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", storageType)
		return nil, fmt.Errorf("invalid STORAGE_TYPE environment variable value: %s, expected one of %v", storageType, valid)
	}

	cfg := &StorageConfig{Type: storageType, EvalPath: evalPath}

	switch storageType {
	case storage.File:
		if evalPath == "" {
			return nil, fmt.Errorf("file storage needs an eval path")
		}
	case storage.ES:
		addresses := stringsutil.SplitList(os.Getenv("ES_ADDRESSES"), ",")
		cfg.Es = &es.ClientConfig{
			Addresses: addresses,
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		if len(addresses) == 0 || cfg.Es.IndexName == "" {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", addresses, "indexName", cfg.Es.IndexName)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: addresses or index name is missing")
		}
	case storage.PG:
		cfg.Pg = &pg.PoolConfig{ConnStr: os.Getenv("PG_CONNECTION_STRING")}
		if cfg.Pg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
	}

	return cfg, nil
}

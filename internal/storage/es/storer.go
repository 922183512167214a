package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
	"github.com/DjordjeVuckovic/bop-eval/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
)

// listSize caps List; a leaderboard index stays far below it.
const listSize = 1000

type Storer struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewStorer(ctx context.Context, config ClientConfig) (*Storer, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	storer := &Storer{
		client:    client,
		indexName: config.IndexName,
	}

	if err := storer.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return storer, nil
}

func (e *Storer) EnsureIndex(ctx context.Context) error {
	exists, err := e.client.Indices.Exists(e.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	if exists {
		return nil
	}

	keyword := types.NewKeywordProperty()
	double := types.NewDoubleNumberProperty()
	date := types.NewDateProperty()
	_, err = e.client.Indices.Create(e.indexName).
		Mappings(&types.TypeMapping{
			Properties: map[string]types.Property{
				"id":                           keyword,
				"result_name":                  keyword,
				"dataset":                      keyword,
				"bop19_average_recall":         double,
				"bop19_average_time_per_image": double,
				"indexed_at":                   date,
			},
		}).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index %s: %w", e.indexName, err)
	}

	slog.Info("created index", "index", e.indexName)
	return nil
}

func (e *Storer) Save(ctx context.Context, result domain.AggregateResult) error {
	doc := toDocument(result, time.Now().UTC())

	if _, err := e.client.Index(e.indexName).Id(doc.ID).Document(doc).Do(ctx); err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	return nil
}

func (e *Storer) Type() storage.Type { return storage.ES }

func (e *Storer) Get(ctx context.Context, resultName string) (domain.AggregateResult, error) {
	res, err := e.client.Get(e.indexName, storage.ResultID(resultName).String()).Do(ctx)
	if err != nil {
		return domain.AggregateResult{}, fmt.Errorf("failed to get document: %w", err)
	}
	if !res.Found {
		return domain.AggregateResult{}, fmt.Errorf("%w: %s", storage.ErrNotFound, resultName)
	}

	var doc Document
	if err := json.Unmarshal(res.Source_, &doc); err != nil {
		return domain.AggregateResult{}, fmt.Errorf("failed to decode document: %w", err)
	}
	return doc.toResult()
}

func (e *Storer) List(ctx context.Context) ([]domain.AggregateResult, error) {
	asc := sortorder.Asc
	res, err := e.client.Search().
		Index(e.indexName).
		Query(&types.Query{MatchAll: &types.MatchAllQuery{}}).
		Sort(&types.SortOptions{
			SortOptions: map[string]types.FieldSort{
				"result_name": {Order: &asc},
			},
		}).
		Size(listSize).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}

	results := make([]domain.AggregateResult, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc Document
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		r, err := doc.toResult()
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// Healthy pings the cluster.
func (e *Storer) Healthy(ctx context.Context) bool {
	ok, err := e.client.Ping().Do(ctx)
	if err != nil {
		slog.Warn("elasticsearch ping failed", "error", err)
		return false
	}
	return ok
}

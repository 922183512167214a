package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
	"github.com/DjordjeVuckovic/bop-eval/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Storer keeps final scores in the bop19_scores table, one row per result.
type Storer struct {
	db *pgxpool.Pool
}

func NewStorer(pool *ConnectionPool) *Storer {
	return &Storer{db: pool.conn}
}

func (s *Storer) Save(ctx context.Context, result domain.AggregateResult) error {
	scoresJSON, err := json.Marshal(result.Scores())
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}

	cmd := `
        INSERT INTO bop19_scores (id, result_name, dataset, scores, updated_at)
        VALUES ($1, $2, $3, $4, now())
        ON CONFLICT (result_name) DO UPDATE
        SET dataset = EXCLUDED.dataset, scores = EXCLUDED.scores, updated_at = now();
    `
	_, err = s.db.Exec(ctx, cmd, storage.ResultID(result.ResultName), result.ResultName, result.Dataset, scoresJSON)
	if err != nil {
		return fmt.Errorf("failed to upsert scores: %w", err)
	}
	return nil
}

func (s *Storer) Type() storage.Type { return storage.PG }

func (s *Storer) Get(ctx context.Context, resultName string) (domain.AggregateResult, error) {
	row := s.db.QueryRow(ctx, `SELECT result_name, scores FROM bop19_scores WHERE result_name = $1`, resultName)

	r, err := scanResult(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AggregateResult{}, fmt.Errorf("%w: %s", storage.ErrNotFound, resultName)
	}
	return r, err
}

func (s *Storer) List(ctx context.Context) ([]domain.AggregateResult, error) {
	rows, err := s.db.Query(ctx, `SELECT result_name, scores FROM bop19_scores ORDER BY result_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	var results []domain.AggregateResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scores: %w", err)
	}
	return results, nil
}

func scanResult(row pgx.Row) (domain.AggregateResult, error) {
	var (
		name   string
		scores map[string]float64
	)
	if err := row.Scan(&name, &scores); err != nil {
		return domain.AggregateResult{}, err
	}
	return domain.ResultFromScores(name, scores)
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
)

// JsonFileStorer keeps final scores at <evalPath>/<result_name>/scores_bop19.json.
type JsonFileStorer struct {
	evalPath string
}

func NewJsonFileStorer(evalPath string) *JsonFileStorer {
	return &JsonFileStorer{
		evalPath: evalPath,
	}
}

func (s *JsonFileStorer) Path(resultName string) string {
	return filepath.Join(s.evalPath, resultName, domain.FinalScoresFilename)
}

// Save writes the keyed record. Map keys marshal in sorted order, so equal
// results produce byte-identical files.
func (s *JsonFileStorer) Save(ctx context.Context, result domain.AggregateResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(result.Scores(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}
	data = append(data, '\n')

	path := s.Path(result.ResultName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create result dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scores: %w", err)
	}
	return nil
}

func (s *JsonFileStorer) Type() Type { return File }

func (s *JsonFileStorer) Get(ctx context.Context, resultName string) (domain.AggregateResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.AggregateResult{}, err
	}

	data, err := os.ReadFile(s.Path(resultName))
	if errors.Is(err, fs.ErrNotExist) {
		return domain.AggregateResult{}, fmt.Errorf("%w: %s", ErrNotFound, resultName)
	}
	if err != nil {
		return domain.AggregateResult{}, fmt.Errorf("read scores: %w", err)
	}

	var scores map[string]float64
	if err := json.Unmarshal(data, &scores); err != nil {
		return domain.AggregateResult{}, fmt.Errorf("decode scores of %s: %w", resultName, err)
	}
	return domain.ResultFromScores(resultName, scores)
}

// List returns every result directory under the eval path that holds a
// final scores file, sorted by result name.
func (s *JsonFileStorer) List(ctx context.Context) ([]domain.AggregateResult, error) {
	entries, err := os.ReadDir(s.evalPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read eval dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(s.Path(e.Name())); err == nil {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	results := make([]domain.AggregateResult, 0, len(names))
	for _, name := range names {
		r, err := s.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// Healthy reports false when the eval path exists but cannot hold result
// directories. A missing eval path lists as empty and is healthy.
func (s *JsonFileStorer) Healthy(_ context.Context) bool {
	info, err := os.Stat(s.evalPath)
	if errors.Is(err, fs.ErrNotExist) {
		return true
	}
	return err == nil && info.IsDir()
}

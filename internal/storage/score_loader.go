package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/DjordjeVuckovic/bop-eval/internal/apperr"
	"github.com/DjordjeVuckovic/bop-eval/internal/benchmark/metrics"
	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
)

// FileScoreLoader reads the per-signature score records written by the
// error-computation stage.
type FileScoreLoader struct {
	evalPath string
}

func NewFileScoreLoader(evalPath string) *FileScoreLoader {
	return &FileScoreLoader{evalPath: evalPath}
}

// Path is <evalPath>/<submission>/<error_sig>/scores_<score_sig>.json.
func (l *FileScoreLoader) Path(key metrics.ScoreKey) string {
	return filepath.Join(l.evalPath, key.Submission, key.ErrorSignature, "scores_"+key.ScoreSignature+".json")
}

func (l *FileScoreLoader) LoadScore(ctx context.Context, key metrics.ScoreKey) (domain.ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScoreRecord{}, err
	}

	path := l.Path(key)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.ScoreRecord{}, &apperr.MissingScoreError{
			ErrorSignature: key.ErrorSignature,
			ScoreSignature: key.ScoreSignature,
			Path:           path,
			Err:            err,
		}
	}
	if err != nil {
		return domain.ScoreRecord{}, fmt.Errorf("read score record: %w", err)
	}

	var rec domain.ScoreRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.ScoreRecord{}, fmt.Errorf("decode score record %s: %w", path, err)
	}
	return rec, nil
}

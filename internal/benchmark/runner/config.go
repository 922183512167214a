package runner

import (
	"fmt"

	"github.com/DjordjeVuckovic/bop-eval/internal/benchmark/suite"
	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
)

type Mode string

const (
	// ModeScore computes, logs and persists the final scores.
	ModeScore Mode = "score"
	// ModeShow requires the full composite and hands the recall curves to
	// the plotter instead of persisting.
	ModeShow Mode = "show"
)

// Config is the immutable run configuration shared by every submission of a
// batch.
type Config struct {
	RendererType    string
	TargetsFilename string
	VisibGtMin      float64
	ResultsPath     string
	EvalPath        string
	Metrics         []domain.ErrorMetricSpec
}

func ConfigFromSuite(c *suite.EvalConfig) (Config, error) {
	specs, err := c.Metrics()
	if err != nil {
		return Config{}, fmt.Errorf("metric specs: %w", err)
	}
	return Config{
		RendererType:    c.RendererType,
		TargetsFilename: c.TargetsFilename,
		VisibGtMin:      c.VisibGtMin,
		ResultsPath:     c.ResultsPath,
		EvalPath:        c.EvalPath,
		Metrics:         specs,
	}, nil
}

func (c Config) MetricTypes() []domain.MetricType {
	types := make([]domain.MetricType, 0, len(c.Metrics))
	for _, m := range c.Metrics {
		types = append(types, m.Type())
	}
	return types
}

package runner

import (
	"time"

	"github.com/DjordjeVuckovic/bop-eval/internal/benchmark/metrics"
	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
)

// Outcome is the evaluation of one results file in a batch. Result is nil
// when the composite could not be built; Recalls still holds every metric
// integrated before the failure.
type Outcome struct {
	Filename   string
	ResultName string
	Dataset    string
	Recalls    map[domain.MetricType]float64
	Result     *domain.AggregateResult
	Curves     *metrics.CurveSet
	Duration   time.Duration
	Err        error
}

func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Failures counts the failed outcomes.
func Failures(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Failed() {
			n++
		}
	}
	return n
}

// Package composite combines per-metric average recalls and the timing
// statistic into the final score set of a submission.
package composite

import (
	"maps"

	"github.com/DjordjeVuckovic/bop-eval/internal/apperr"
	"github.com/DjordjeVuckovic/bop-eval/internal/benchmark/timing"
	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
	"gonum.org/v1/gonum/stat"
)

type Policy string

const (
	// PolicySingle reports the VSD average recall alone. It is used for fast
	// or partial evaluations.
	PolicySingle Policy = "single"
	// PolicyFull reports the mean of the VSD, MSSD and MSPD average recalls.
	PolicyFull Policy = "full"
)

func (p Policy) required() []domain.MetricType {
	if p == PolicyFull {
		return domain.CoreMetrics
	}
	return []domain.MetricType{domain.MetricVSD}
}

// SelectPolicy picks the full policy when all core metrics were computed and
// the single-metric policy otherwise.
func SelectPolicy(recalls map[domain.MetricType]float64) Policy {
	for _, t := range domain.CoreMetrics {
		if _, ok := recalls[t]; !ok {
			return PolicySingle
		}
	}
	return PolicyFull
}

// Composite returns the composite recall of policy over recalls.
func Composite(policy Policy, recalls map[domain.MetricType]float64) (float64, error) {
	required := policy.required()

	var missing []string
	values := make([]float64, 0, len(required))
	for _, t := range required {
		v, ok := recalls[t]
		if !ok {
			missing = append(missing, string(t))
			continue
		}
		values = append(values, v)
	}
	if len(missing) > 0 {
		return 0, &apperr.MissingCompositeInputError{Policy: string(policy), Missing: missing}
	}
	return stat.Mean(values, nil), nil
}

type Scorer struct {
	policy Policy
}

// NewScorer returns a scorer that always applies policy. An empty policy
// selects it from the computed metrics, see SelectPolicy.
func NewScorer(policy Policy) *Scorer {
	return &Scorer{policy: policy}
}

// Score builds the final AggregateResult of a submission.
func (s *Scorer) Score(resultName, dataset string, recalls map[domain.MetricType]float64, times timing.Stats) (domain.AggregateResult, error) {
	policy := s.policy
	if policy == "" {
		policy = SelectPolicy(recalls)
	}

	composite, err := Composite(policy, recalls)
	if err != nil {
		return domain.AggregateResult{}, err
	}

	avgTime := times.AverageTime
	if !times.Available {
		avgTime = domain.TimeUnavailable
	}

	return domain.AggregateResult{
		ResultName:  resultName,
		Dataset:     dataset,
		Recalls:     maps.Clone(recalls),
		Composite:   composite,
		AverageTime: avgTime,
	}, nil
}

package metrics

import "github.com/DjordjeVuckovic/bop-eval/internal/domain"

// CurveSet is the recall data of one submission handed to curve plotting,
// together with the configuration needed to label the axes.
type CurveSet struct {
	ResultName string
	VisibGtMin float64
	Metrics    []domain.ErrorMetricSpec
	Curves     map[domain.MetricType][]Curve
}

func NewCurveSet(resultName string, visibGtMin float64) *CurveSet {
	return &CurveSet{
		ResultName: resultName,
		VisibGtMin: visibGtMin,
		Curves:     make(map[domain.MetricType][]Curve),
	}
}

func (s *CurveSet) Add(spec domain.ErrorMetricSpec, in Integration) {
	if _, ok := s.Curves[spec.Type()]; !ok {
		s.Metrics = append(s.Metrics, spec)
	}
	s.Curves[spec.Type()] = in.Curves
}

// Spec returns the metric spec the curves of t were integrated with.
func (s *CurveSet) Spec(t domain.MetricType) (domain.ErrorMetricSpec, bool) {
	for _, m := range s.Metrics {
		if m.Type() == t {
			return m, true
		}
	}
	return nil, false
}

// ByMetric maps metric type -> error signature -> recall sequence.
func (s *CurveSet) ByMetric() map[domain.MetricType]map[string][]float64 {
	out := make(map[domain.MetricType]map[string][]float64, len(s.Curves))
	for t, curves := range s.Curves {
		bySig := make(map[string][]float64, len(curves))
		for _, c := range curves {
			bySig[c.ErrorSignature] = c.Recalls
		}
		out[t] = bySig
	}
	return out
}

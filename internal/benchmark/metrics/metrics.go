// Package metrics integrates the per-threshold recalls of an error family
// into a single average recall.
//
// The recall surface of VSD (threshold x tolerance) and the recall curve of
// the other error functions are both approximated by the arithmetic mean over
// the uniform grid of configured values.
package metrics

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/bop-eval/internal/apperr"
	"github.com/DjordjeVuckovic/bop-eval/internal/benchmark/signature"
	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// ScoreKey locates one score record of a submission.
type ScoreKey struct {
	Submission     string
	ErrorSignature string
	ScoreSignature string
}

// ScoreLoader returns the score record stored under key. A record that does
// not exist is reported as an *apperr.MissingScoreError.
type ScoreLoader interface {
	LoadScore(ctx context.Context, key ScoreKey) (domain.ScoreRecord, error)
}

// Curve is the ordered recall sequence of one error signature, one value per
// correctness threshold.
type Curve struct {
	ErrorSignature string
	Recalls        []float64
}

type Integration struct {
	Metric        domain.MetricType
	AverageRecall float64
	// Curves holds one curve per VSD tolerance, or a single curve.
	Curves []Curve
}

// Recalls returns every recall of the integration grid in load order.
func (i Integration) Recalls() []float64 {
	var out []float64
	for _, c := range i.Curves {
		out = append(out, c.Recalls...)
	}
	return out
}

type Integrator struct {
	loader     ScoreLoader
	visibGtMin float64
}

func NewIntegrator(loader ScoreLoader, visibGtMin float64) *Integrator {
	return &Integrator{
		loader:     loader,
		visibGtMin: visibGtMin,
	}
}

// Validate checks that spec carries everything its integration rule needs for
// dataset.
func Validate(spec domain.ErrorMetricSpec, dataset string) error {
	name := string(spec.Type())
	if len(spec.Thresholds()) == 0 {
		return apperr.NewInvalidSpec(name, "correct_th is empty")
	}
	for i, th := range spec.Thresholds() {
		if len(th) == 0 {
			return apperr.NewInvalidSpec(name, "correct_th[%d] is empty", i)
		}
	}

	switch m := spec.(type) {
	case domain.SurfaceMetric:
		if len(m.Taus) == 0 {
			return apperr.NewInvalidSpec(name, "vsd_taus is empty")
		}
		if _, ok := m.Delta(dataset); !ok {
			return apperr.NewInvalidSpec(name, "no vsd_deltas entry for dataset %q", dataset)
		}
	case domain.CurveMetric:
		if m.Kind.IsSurface() {
			return apperr.NewInvalidSpec(name, "metric needs vsd_taus and vsd_deltas")
		}
	default:
		return apperr.NewInvalidSpec(name, "unsupported metric spec %T", spec)
	}
	return nil
}

// Integrate loads the recall of every grid point of spec for the submission
// and averages them. Any missing score record aborts the integration.
func (it *Integrator) Integrate(ctx context.Context, submission, dataset string, spec domain.ErrorMetricSpec) (Integration, error) {
	if err := Validate(spec, dataset); err != nil {
		return Integration{}, err
	}

	errorSigs, err := errorSignatures(spec, dataset)
	if err != nil {
		return Integration{}, err
	}

	res := Integration{
		Metric: spec.Type(),
		Curves: make([]Curve, 0, len(errorSigs)),
	}
	for _, errSig := range errorSigs {
		curve := Curve{
			ErrorSignature: errSig,
			Recalls:        make([]float64, 0, len(spec.Thresholds())),
		}
		for _, th := range spec.Thresholds() {
			recall, err := it.load(ctx, ScoreKey{
				Submission:     submission,
				ErrorSignature: errSig,
				ScoreSignature: signature.ScoreSignature(th, it.visibGtMin),
			})
			if err != nil {
				return Integration{}, err
			}
			curve.Recalls = append(curve.Recalls, recall)
		}
		res.Curves = append(res.Curves, curve)
	}

	res.AverageRecall = stat.Mean(res.Recalls(), nil)
	return res, nil
}

func (it *Integrator) load(ctx context.Context, key ScoreKey) (float64, error) {
	rec, err := it.loader.LoadScore(ctx, key)
	if err != nil {
		return 0, err
	}
	recall, ok := rec.Value()
	if !ok {
		return 0, fmt.Errorf("score record %s/%s has no recall", key.ErrorSignature, key.ScoreSignature)
	}
	return recall, nil
}

func errorSignatures(spec domain.ErrorMetricSpec, dataset string) ([]string, error) {
	switch m := spec.(type) {
	case domain.SurfaceMetric:
		delta, _ := m.Delta(dataset)
		sigs := make([]string, 0, len(m.Taus))
		for _, tau := range m.Taus {
			sig, err := signature.ErrorSignature(m.Kind, m.NTop, &signature.VSDParams{Delta: delta, Tau: tau})
			if err != nil {
				return nil, err
			}
			sigs = append(sigs, sig)
		}
		return sigs, nil
	case domain.CurveMetric:
		sig, err := signature.ErrorSignature(m.Kind, m.NTop, nil)
		if err != nil {
			return nil, err
		}
		return []string{sig}, nil
	}
	return nil, apperr.NewInvalidSpec(string(spec.Type()), "unsupported metric spec %T", spec)
}

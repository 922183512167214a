// Package signature derives the deterministic identifiers under which the
// error-computation stage stores its per-threshold score records.
package signature

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/bop-eval/internal/apperr"
	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
)

// Precision is the number of decimals every numeric signature field is
// rendered with.
const Precision = 3

// VSDParams are the extra fields of a VSD error signature.
type VSDParams struct {
	Delta float64
	Tau   float64
}

// ErrorKey identifies one pose-error configuration.
type ErrorKey struct {
	Type domain.MetricType
	NTop int
	// VSD must be set for domain.MetricVSD and is ignored otherwise.
	VSD *VSDParams
}

// ScoreKey identifies one correctness-threshold / visibility configuration.
type ScoreKey struct {
	Threshold  domain.Threshold
	VisibGtMin float64
}

func (k ErrorKey) Render() (string, error) {
	var b strings.Builder
	b.WriteString("error=")
	b.WriteString(string(k.Type))
	b.WriteString("_ntop=")
	b.WriteString(strconv.Itoa(k.NTop))

	if k.Type == domain.MetricVSD {
		if k.VSD == nil {
			return "", apperr.NewInvalidSpec(string(k.Type), "vsd_delta and vsd_tau are required")
		}
		b.WriteString("_delta=")
		b.WriteString(FormatFloat(k.VSD.Delta))
		b.WriteString("_tau=")
		b.WriteString(FormatFloat(k.VSD.Tau))
	}
	return b.String(), nil
}

func (k ScoreKey) Render() string {
	parts := make([]string, len(k.Threshold))
	for i, th := range k.Threshold {
		parts[i] = FormatFloat(th)
	}
	return "th=" + strings.Join(parts, "-") + "_min-visib=" + FormatFloat(k.VisibGtMin)
}

// ErrorSignature is a shorthand for ErrorKey.Render. vsd is only read when
// metricType is domain.MetricVSD.
func ErrorSignature(metricType domain.MetricType, nTop int, vsd *VSDParams) (string, error) {
	return ErrorKey{Type: metricType, NTop: nTop, VSD: vsd}.Render()
}

func ScoreSignature(th domain.Threshold, visibGtMin float64) string {
	return ScoreKey{Threshold: th, VisibGtMin: visibGtMin}.Render()
}

// FormatFloat renders v with fixed Precision. Infinities render as "inf" and
// "-inf" and negative zero renders like zero.
func FormatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == 0:
		v = 0
	}
	s := strconv.FormatFloat(v, 'f', Precision, 64)
	if s == "-0.000" {
		return "0.000"
	}
	return s
}

// Collision is a pair of distinct values that render to the same signature
// field.
type Collision struct {
	A, B     float64
	Rendered string
}

func (c Collision) String() string {
	return fmt.Sprintf("%g and %g both render as %s", c.A, c.B, c.Rendered)
}

// FindCollision returns the first pair of distinct values that cannot be told
// apart at Precision decimals.
func FindCollision(values []float64) (Collision, bool) {
	seen := make(map[string]float64, len(values))
	for _, v := range values {
		r := FormatFloat(v)
		if prev, ok := seen[r]; ok && prev != v {
			return Collision{A: prev, B: v, Rendered: r}, true
		}
		seen[r] = v
	}
	return Collision{}, false
}

// FindThresholdCollision is FindCollision over whole threshold tuples.
func FindThresholdCollision(ths []domain.Threshold) (string, bool) {
	seen := make(map[string]domain.Threshold, len(ths))
	for _, th := range ths {
		r := ScoreKey{Threshold: th}.Render()
		if prev, ok := seen[r]; ok && !slices.Equal(prev, th) {
			return fmt.Sprintf("%v and %v both render as %s", prev, th, r), true
		}
		seen[r] = th
	}
	return "", false
}

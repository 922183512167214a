// Package suite loads and validates the evaluation configuration.
package suite

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/DjordjeVuckovic/bop-eval/internal/apperr"
	"github.com/DjordjeVuckovic/bop-eval/internal/benchmark/signature"
	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

func LoadFromFile(path string) (*EvalConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read eval config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*EvalConfig, error) {
	var c EvalConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperr.NewValidationWrap("parse eval config YAML", err)
	}
	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate runs the struct tag checks and then the checks that span fields.
func Validate(c *EvalConfig) error {
	if err := validate.Struct(c); err != nil {
		return apperr.NewValidationWrap("invalid eval config", err)
	}

	seen := make(map[string]bool, len(c.Errors))
	for i := range c.Errors {
		e := &c.Errors[i]
		if seen[e.Type] {
			return apperr.NewValidation(fmt.Sprintf("error type %q is configured twice", e.Type))
		}
		seen[e.Type] = true

		if _, err := e.Spec(); err != nil {
			return err
		}
	}
	return nil
}

// Metrics converts the configured error families to metric specs.
func (c *EvalConfig) Metrics() ([]domain.ErrorMetricSpec, error) {
	specs := make([]domain.ErrorMetricSpec, 0, len(c.Errors))
	for _, e := range c.Errors {
		s, err := e.Spec()
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return specs, nil
}

func (e ErrorConfig) Spec() (domain.ErrorMetricSpec, error) {
	kind := domain.MetricType(e.Type)
	if !kind.Known() {
		return nil, apperr.NewInvalidSpec(e.Type, "unknown error type")
	}

	ths, err := e.thresholds()
	if err != nil {
		return nil, err
	}

	if !kind.IsSurface() {
		if len(e.VSDTaus) > 0 || e.VSDTausRange != nil || len(e.VSDDeltas) > 0 {
			return nil, apperr.NewInvalidSpec(e.Type, "vsd_* fields are only valid for vsd")
		}
		return domain.CurveMetric{Kind: kind, NTop: e.NTop, CorrectTh: ths}, nil
	}

	taus, err := pick(e.VSDTaus, e.VSDTausRange)
	if err != nil {
		return nil, apperr.NewInvalidSpec(e.Type, "vsd_taus: %v", err)
	}
	if len(taus) == 0 {
		return nil, apperr.NewInvalidSpec(e.Type, "vsd_taus is empty")
	}
	for _, tau := range taus {
		if tau < 0 || math.IsNaN(tau) {
			return nil, apperr.NewInvalidSpec(e.Type, "vsd_taus must be non-negative, got %g", tau)
		}
	}
	if c, found := signature.FindCollision(taus); found {
		return nil, apperr.NewInvalidSpec(e.Type, "vsd_taus collide in signatures: %s", c)
	}
	if len(e.VSDDeltas) == 0 {
		return nil, apperr.NewInvalidSpec(e.Type, "vsd_deltas is empty")
	}

	return domain.SurfaceMetric{
		Kind:      kind,
		NTop:      e.NTop,
		CorrectTh: ths,
		Taus:      taus,
		Deltas:    e.VSDDeltas,
	}, nil
}

func (e ErrorConfig) thresholds() ([]domain.Threshold, error) {
	if len(e.CorrectTh) > 0 && e.CorrectThRange != nil {
		return nil, apperr.NewInvalidSpec(e.Type, "set either correct_th or correct_th_range")
	}

	var ths []domain.Threshold
	if e.CorrectThRange != nil {
		for _, v := range e.CorrectThRange.Values() {
			ths = append(ths, domain.Threshold{v})
		}
	} else {
		for _, th := range e.CorrectTh {
			ths = append(ths, domain.Threshold(th))
		}
	}

	if len(ths) == 0 {
		return nil, apperr.NewInvalidSpec(e.Type, "correct_th is empty")
	}
	if msg, found := signature.FindThresholdCollision(ths); found {
		return nil, apperr.NewInvalidSpec(e.Type, "correct_th values collide in signatures: %s", msg)
	}
	return ths, nil
}

func pick(list []float64, r *Range) ([]float64, error) {
	if len(list) > 0 && r != nil {
		return nil, errors.New("set either the list or the range")
	}
	if r != nil {
		return r.Values(), nil
	}
	return list, nil
}

// Values expands the range with the element count ceil((stop-start)/step).
func (r Range) Values() []float64 {
	if r.Step <= 0 || r.Stop <= r.Start {
		return nil
	}
	n := int(math.Ceil((r.Stop - r.Start) / r.Step))
	out := make([]float64, n)
	for i := range out {
		out[i] = r.Start + float64(i)*r.Step
	}
	return out
}

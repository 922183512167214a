// Package runner drives the evaluation of result submissions: timing
// validation, recall integration per configured metric, composite scoring,
// persistence and curve plotting.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/bop-eval/internal/apperr"
	"github.com/DjordjeVuckovic/bop-eval/internal/benchmark/composite"
	"github.com/DjordjeVuckovic/bop-eval/internal/benchmark/metrics"
	"github.com/DjordjeVuckovic/bop-eval/internal/benchmark/timing"
	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
	"github.com/DjordjeVuckovic/bop-eval/internal/storage"
)

// ResultLoader reads the estimates of one results file.
type ResultLoader interface {
	LoadEstimates(ctx context.Context, filename string) ([]domain.EstimationRecord, error)
}

// Plotter renders the recall curves of one submission and returns the paths
// it wrote.
type Plotter interface {
	Plot(ctx context.Context, curves *metrics.CurveSet) ([]string, error)
}

type Runner struct {
	config     Config
	results    ResultLoader
	integrator *metrics.Integrator
	storers    []storage.Storer
	plotter    Plotter
	log        *slog.Logger
}

type Option func(*Runner)

// WithStorers sets the sinks final scores are persisted to in score mode.
// The first sink is authoritative: a failure there fails the submission,
// while a failure in any later sink is logged as a warning.
func WithStorers(storers ...storage.Storer) Option {
	return func(r *Runner) {
		r.storers = append(r.storers, storers...)
	}
}

func WithPlotter(p Plotter) Option {
	return func(r *Runner) {
		r.plotter = p
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.log = l
	}
}

func New(cfg Config, results ResultLoader, scores metrics.ScoreLoader, opts ...Option) *Runner {
	r := &Runner{
		config:     cfg,
		results:    results,
		integrator: metrics.NewIntegrator(scores, cfg.VisibGtMin),
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunAll evaluates the files in order. A failing file is logged and the batch
// moves on to the next one.
func (r *Runner) RunAll(ctx context.Context, mode Mode, filenames []string) []Outcome {
	outcomes := make([]Outcome, 0, len(filenames))
	for _, filename := range filenames {
		if err := ctx.Err(); err != nil {
			outcomes = append(outcomes, Outcome{Filename: filename, Err: err})
			continue
		}

		var o Outcome
		switch mode {
		case ModeShow:
			o = r.Show(ctx, filename)
		default:
			o = r.Score(ctx, filename)
		}
		if o.Err != nil {
			r.log.Error("evaluation failed", append([]any{"file", filename}, errorAttrs(o.Err)...)...)
		}
		outcomes = append(outcomes, o)
	}

	if failed := Failures(outcomes); failed > 0 {
		r.log.Warn("batch finished with failures", "failed", failed, "total", len(outcomes))
	}
	return outcomes
}

// Score evaluates one results file and persists its final scores.
func (r *Runner) Score(ctx context.Context, filename string) Outcome {
	start := time.Now()
	o, err := r.begin(filename)
	if err != nil {
		o.Err = err
		return o
	}
	defer r.finish(&o, start)

	records, err := r.results.LoadEstimates(ctx, filename)
	if err != nil {
		o.Err = fmt.Errorf("load estimates: %w", err)
		return o
	}

	times, err := timing.Validate(records)
	if err != nil {
		o.Err = err
		return o
	}
	if !times.Available {
		r.log.Info("timing unavailable for result", "result", o.ResultName)
	}

	if o.Err = r.integrate(ctx, &o); o.Err != nil {
		return o
	}

	result, err := composite.NewScorer("").Score(o.ResultName, o.Dataset, o.Recalls, times)
	if err != nil {
		o.Err = err
		return o
	}
	o.Result = &result

	if o.Err = r.persist(ctx, result); o.Err != nil {
		return o
	}

	r.logScores(result)
	return o
}

// Show evaluates one results file under the full composite and hands its
// recall curves to the plotter. Nothing is persisted and no timing is read.
func (r *Runner) Show(ctx context.Context, filename string) Outcome {
	start := time.Now()
	o, err := r.begin(filename)
	if err != nil {
		o.Err = err
		return o
	}
	defer r.finish(&o, start)

	if missing := r.missingCoreMetrics(); len(missing) > 0 {
		o.Err = &apperr.MissingCompositeInputError{Policy: string(composite.PolicyFull), Missing: missing}
		return o
	}

	if o.Err = r.integrate(ctx, &o); o.Err != nil {
		return o
	}

	result, err := composite.NewScorer(composite.PolicyFull).Score(o.ResultName, o.Dataset, o.Recalls, timing.Stats{})
	if err != nil {
		o.Err = err
		return o
	}
	o.Result = &result
	r.logScores(result)

	if r.plotter != nil {
		paths, err := r.plotter.Plot(ctx, o.Curves)
		for _, p := range paths {
			r.log.Info("saved recall curve", "result", o.ResultName, "path", p)
		}
		if err != nil {
			o.Err = fmt.Errorf("plot curves: %w", err)
		}
	}
	return o
}

func (r *Runner) missingCoreMetrics() []string {
	configured := r.config.MetricTypes()
	var missing []string
	for _, t := range domain.CoreMetrics {
		if !slices.Contains(configured, t) {
			missing = append(missing, string(t))
		}
	}
	return missing
}

func (r *Runner) persist(ctx context.Context, result domain.AggregateResult) error {
	for i, s := range r.storers {
		err := s.Save(ctx, result)
		switch {
		case err == nil:
			r.log.Info("saved final scores", "result", result.ResultName, "sink", s.Type())
		case i == 0:
			return fmt.Errorf("persist scores to %s: %w", s.Type(), err)
		default:
			r.log.Warn("secondary sink failed", "result", result.ResultName, "sink", s.Type(), "error", err)
		}
	}
	return nil
}

func (r *Runner) begin(filename string) (Outcome, error) {
	o := Outcome{Filename: filename}
	name, dataset, err := domain.ParseResultName(filename)
	if err != nil {
		return o, apperr.NewInvalidSpec("result", "%v", err)
	}
	o.ResultName = name
	o.Dataset = dataset
	o.Recalls = make(map[domain.MetricType]float64, len(r.config.Metrics))
	o.Curves = metrics.NewCurveSet(name, r.config.VisibGtMin)

	r.log.Info("evaluating result", "result", name, "dataset", dataset)
	return o, nil
}

func (r *Runner) finish(o *Outcome, start time.Time) {
	o.Duration = time.Since(start)
	r.log.Info("evaluation finished", "result", o.ResultName, "duration", o.Duration, "ok", o.Err == nil)
}

// integrate runs every configured metric and logs each average recall as soon
// as it is known, so recalls survive a later composite failure.
func (r *Runner) integrate(ctx context.Context, o *Outcome) error {
	for _, spec := range r.config.Metrics {
		in, err := r.integrator.Integrate(ctx, o.ResultName, o.Dataset, spec)
		if err != nil {
			return fmt.Errorf("integrate %s: %w", spec.Type(), err)
		}
		o.Recalls[spec.Type()] = in.AverageRecall
		o.Curves.Add(spec, in)
		r.log.Info("average recall", "result", o.ResultName, "metric", spec.Type(), "recall", in.AverageRecall)
	}
	return nil
}

func (r *Runner) logScores(result domain.AggregateResult) {
	scores := result.Scores()
	r.log.Info("final scores", "result", result.ResultName)
	for _, k := range result.ScoreKeys() {
		r.log.Info("- " + k + ": " + strconv.FormatFloat(scores[k], 'g', -1, 64))
	}
}

func errorAttrs(err error) []any {
	attrs := []any{"error", err}
	if kind := apperr.Kind(err); kind != nil {
		attrs = append(attrs, "kind", kind.Error())
	}

	var (
		timingErr *apperr.InconsistentTimingError
		missing   *apperr.MissingScoreError
		spec      *apperr.InvalidSpecError
	)
	switch {
	case errors.As(err, &timingErr):
		attrs = append(attrs, "scene_id", timingErr.SceneID, "im_id", timingErr.ImID)
	case errors.As(err, &missing):
		attrs = append(attrs, "error_signature", missing.ErrorSignature, "score_signature", missing.ScoreSignature)
	case errors.As(err, &spec):
		attrs = append(attrs, "metric", spec.Metric)
	}
	return attrs
}

package report

import (
	"maps"
	"slices"
	"time"

	"github.com/DjordjeVuckovic/bop-eval/internal/benchmark/runner"
	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
)

type Report struct {
	Mode    runner.Mode `json:"mode"`
	Metrics []string    `json:"metrics"`
	Entries []Entry     `json:"entries"`
	Curves  []CurveSet  `json:"curves,omitempty"`
}

// Entry is one evaluated results file. Composite and AverageTime are nil when
// the composite step did not complete.
type Entry struct {
	Filename    string             `json:"filename"`
	ResultName  string             `json:"result_name"`
	Dataset     string             `json:"dataset"`
	Recalls     map[string]float64 `json:"recalls"`
	Composite   *float64           `json:"bop19_average_recall,omitempty"`
	AverageTime *float64           `json:"bop19_average_time_per_image,omitempty"`
	Duration    time.Duration      `json:"duration_ns"`
	Error       string             `json:"error,omitempty"`
}

type CurveSet struct {
	ResultName string                          `json:"result_name"`
	VisibGtMin float64                         `json:"visib_gt_min"`
	Curves     map[string]map[string][]float64 `json:"curves"`
}

// FromOutcomes builds the report of a batch run.
func FromOutcomes(mode runner.Mode, outcomes []runner.Outcome) *Report {
	r := &Report{Mode: mode}
	metricSet := make(map[string]struct{})

	for _, o := range outcomes {
		e := Entry{
			Filename:   o.Filename,
			ResultName: o.ResultName,
			Dataset:    o.Dataset,
			Recalls:    make(map[string]float64, len(o.Recalls)),
			Duration:   o.Duration,
		}
		for t, v := range o.Recalls {
			e.Recalls[string(t)] = v
			metricSet[string(t)] = struct{}{}
		}
		if o.Result != nil {
			composite, avgTime := o.Result.Composite, o.Result.AverageTime
			e.Composite = &composite
			e.AverageTime = &avgTime
		}
		if o.Err != nil {
			e.Error = o.Err.Error()
		}
		r.Entries = append(r.Entries, e)

		if mode == runner.ModeShow && o.Curves != nil && o.Err == nil {
			r.Curves = append(r.Curves, curveSet(o))
		}
	}

	r.Metrics = slices.Sorted(maps.Keys(metricSet))
	return r
}

func curveSet(o runner.Outcome) CurveSet {
	byMetric := o.Curves.ByMetric()
	cs := CurveSet{
		ResultName: o.Curves.ResultName,
		VisibGtMin: o.Curves.VisibGtMin,
		Curves:     make(map[string]map[string][]float64, len(byMetric)),
	}
	for t, curves := range byMetric {
		cs.Curves[string(t)] = curves
	}
	return cs
}

// HasCoreMetrics reports whether the report covers VSD, MSSD and MSPD.
func (r *Report) HasCoreMetrics() bool {
	types := make([]domain.MetricType, 0, len(r.Metrics))
	for _, m := range r.Metrics {
		types = append(types, domain.MetricType(m))
	}
	return domain.HasCoreMetrics(types)
}

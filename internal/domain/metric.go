package domain

import "slices"

type MetricType string

const (
	MetricVSD  MetricType = "vsd"
	MetricMSSD MetricType = "mssd"
	MetricMSPD MetricType = "mspd"
	MetricAD   MetricType = "ad"
	MetricADD  MetricType = "add"
	MetricADI  MetricType = "adi"
	MetricCUS  MetricType = "cus"
	MetricProj MetricType = "proj"
)

// CoreMetrics are the three pose-error functions that make up the BOP score.
var CoreMetrics = []MetricType{MetricVSD, MetricMSSD, MetricMSPD}

// IsSurface reports whether recall for the metric type is integrated over
// both the correctness threshold and the misalignment tolerance.
func (t MetricType) IsSurface() bool {
	return t == MetricVSD
}

func (t MetricType) Known() bool {
	switch t {
	case MetricVSD, MetricMSSD, MetricMSPD, MetricAD, MetricADD, MetricADI, MetricCUS, MetricProj:
		return true
	}
	return false
}

// Threshold is one correctness-threshold tuple. Most error functions use a
// single entry.
type Threshold []float64

// ErrorMetricSpec describes one error family to evaluate. It is implemented by
// SurfaceMetric and CurveMetric only.
type ErrorMetricSpec interface {
	Type() MetricType
	TopN() int
	Thresholds() []Threshold
	metricSpec()
}

// SurfaceMetric is an error family whose recall is averaged over the
// threshold x tolerance grid (VSD).
type SurfaceMetric struct {
	Kind      MetricType
	NTop      int
	CorrectTh []Threshold
	Taus      []float64
	// Deltas maps a dataset name to its visibility delta.
	Deltas map[string]float64
}

func (m SurfaceMetric) Type() MetricType        { return m.Kind }
func (m SurfaceMetric) TopN() int               { return m.NTop }
func (m SurfaceMetric) Thresholds() []Threshold { return m.CorrectTh }
func (SurfaceMetric) metricSpec()               {}

// Delta returns the visibility delta configured for the dataset.
func (m SurfaceMetric) Delta(dataset string) (float64, bool) {
	d, ok := m.Deltas[dataset]
	return d, ok
}

// CurveMetric is an error family whose recall is averaged over thresholds
// only (MSSD, MSPD and the other point-distance errors).
type CurveMetric struct {
	Kind      MetricType
	NTop      int
	CorrectTh []Threshold
}

func (m CurveMetric) Type() MetricType        { return m.Kind }
func (m CurveMetric) TopN() int               { return m.NTop }
func (m CurveMetric) Thresholds() []Threshold { return m.CorrectTh }
func (CurveMetric) metricSpec()               {}

// HasCoreMetrics reports whether every core metric is among types.
func HasCoreMetrics(types []MetricType) bool {
	for _, c := range CoreMetrics {
		if !slices.Contains(types, c) {
			return false
		}
	}
	return true
}

package plot

import (
	"context"
	"os"
	"testing"

	"github.com/DjordjeVuckovic/bop-eval/internal/benchmark/metrics"
	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurvePlotter_Plot(t *testing.T) {
	cs := metrics.NewCurveSet("m_lmo-test", 0.1)
	vsd := domain.SurfaceMetric{
		Kind:      domain.MetricVSD,
		NTop:      -1,
		CorrectTh: []domain.Threshold{{0.1}, {0.2}, {0.3}},
		Taus:      []float64{0.05, 0.1},
		Deltas:    map[string]float64{"lmo": 15},
	}
	cs.Add(vsd, metrics.Integration{
		Metric: domain.MetricVSD,
		Curves: []metrics.Curve{
			{ErrorSignature: "error=vsd_ntop=-1_delta=15.000_tau=0.050", Recalls: []float64{0.1, 0.4, 0.8}},
			{ErrorSignature: "error=vsd_ntop=-1_delta=15.000_tau=0.100", Recalls: []float64{0.2, 0.5, 0.9}},
		},
	})

	p := NewCurvePlotter(t.TempDir())
	paths, err := p.Plot(context.Background(), cs)
	require.NoError(t, err)
	assert.Equal(t, []string{p.Path("m_lmo-test", domain.MetricVSD)}, paths)

	info, err := os.Stat(paths[0])
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestCurvePlotter_NilSet(t *testing.T) {
	paths, err := NewCurvePlotter(t.TempDir()).Plot(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, paths)
}

func TestThresholdAxis(t *testing.T) {
	tests := []struct {
		name string
		ths  []domain.Threshold
		want []float64
	}{
		{name: "increasing", ths: []domain.Threshold{{0.05}, {0.1}}, want: []float64{0.05, 0.1}},
		{name: "repeated first entry", ths: []domain.Threshold{{0.3, 1}, {0.3, 2}}, want: []float64{0, 1}},
		{name: "decreasing", ths: []domain.Threshold{{5}, {1}}, want: []float64{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, thresholdAxis(tt.ths))
		})
	}
}

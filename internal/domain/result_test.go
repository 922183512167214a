package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResultName(t *testing.T) {
	tests := []struct {
		filename    string
		wantName    string
		wantDataset string
		wantErr     bool
	}{
		{filename: "method_lmo-test.csv", wantName: "method_lmo-test", wantDataset: "lmo"},
		{filename: "/results/cosypose_ycbv-test.csv", wantName: "cosypose_ycbv-test", wantDataset: "ycbv"},
		{filename: "a_tless_extra-test.csv", wantName: "a_tless_extra-test", wantDataset: "tless"},
		{filename: "m_itodd", wantName: "m_itodd", wantDataset: "itodd"},
		{filename: "method.csv", wantErr: true},
		{filename: "method_-test.csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			name, dataset, err := ParseResultName(tt.filename)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantDataset, dataset)
		})
	}
}

func TestAggregateResult_Scores(t *testing.T) {
	r := AggregateResult{
		ResultName:  "m_lmo-test",
		Dataset:     "lmo",
		Recalls:     map[MetricType]float64{MetricVSD: 0.4, MetricMSSD: 0.6, MetricMSPD: 0.5},
		Composite:   0.5,
		AverageTime: 1.5,
	}

	assert.Equal(t, map[string]float64{
		"bop19_average_recall_vsd":     0.4,
		"bop19_average_recall_mssd":    0.6,
		"bop19_average_recall_mspd":    0.5,
		"bop19_average_recall":         0.5,
		"bop19_average_time_per_image": 1.5,
	}, r.Scores())

	assert.Equal(t, []string{
		"bop19_average_recall_mspd",
		"bop19_average_recall_mssd",
		"bop19_average_recall_vsd",
		"bop19_average_recall",
		"bop19_average_time_per_image",
	}, r.ScoreKeys())

	back, err := ResultFromScores(r.ResultName, r.Scores())
	require.NoError(t, err)
	assert.Equal(t, r, back)
}

func TestResultFromScores(t *testing.T) {
	_, err := ResultFromScores("m_lmo", map[string]float64{"bop19_average_recall_vsd": 0.1})
	assert.Error(t, err)

	r, err := ResultFromScores("m_lmo", map[string]float64{KeyAverageRecall: 0.3})
	require.NoError(t, err)
	assert.Equal(t, TimeUnavailable, r.AverageTime)
	assert.Empty(t, r.Recalls)
}

func TestScoreRecord_Value(t *testing.T) {
	recall, total := 0.25, 0.75

	tests := []struct {
		name   string
		rec    ScoreRecord
		want   float64
		wantOK bool
	}{
		{name: "recall", rec: ScoreRecord{Recall: &recall}, want: 0.25, wantOK: true},
		{name: "total recall", rec: ScoreRecord{TotalRecall: &total}, want: 0.75, wantOK: true},
		{name: "recall preferred", rec: ScoreRecord{Recall: &recall, TotalRecall: &total}, want: 0.25, wantOK: true},
		{name: "empty", rec: ScoreRecord{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.rec.Value()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetricType(t *testing.T) {
	assert.True(t, MetricVSD.IsSurface())
	assert.False(t, MetricMSSD.IsSurface())
	assert.True(t, MetricMSPD.Known())
	assert.False(t, MetricType("foo").Known())
	assert.True(t, HasCoreMetrics([]MetricType{MetricMSPD, MetricVSD, MetricMSSD, MetricAD}))
	assert.False(t, HasCoreMetrics([]MetricType{MetricVSD, MetricMSSD}))
}

func TestSurfaceMetric_Delta(t *testing.T) {
	m := SurfaceMetric{Kind: MetricVSD, Deltas: map[string]float64{"lmo": 15}}

	d, ok := m.Delta("lmo")
	assert.True(t, ok)
	assert.Equal(t, 15.0, d)

	_, ok = m.Delta("tless")
	assert.False(t, ok)
}

func TestImageKey(t *testing.T) {
	a := EstimationRecord{SceneID: 1, ImID: 7}.Image()
	b := ImageKey{SceneID: 2, ImID: 1}

	assert.Equal(t, "000001_000007", a.String())
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
}

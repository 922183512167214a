package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() domain.AggregateResult {
	return domain.AggregateResult{
		ResultName: "method_lmo-test",
		Dataset:    "lmo",
		Recalls: map[domain.MetricType]float64{
			domain.MetricVSD:  0.5,
			domain.MetricMSSD: 0.5,
			domain.MetricMSPD: 0.5,
		},
		Composite:   0.5,
		AverageTime: 1.5,
	}
}

func TestJsonFileStorer_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewJsonFileStorer(dir)

	require.NoError(t, s.Save(ctx, sampleResult()))

	data, err := os.ReadFile(filepath.Join(dir, "method_lmo-test", "scores_bop19.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"bop19_average_recall": 0.5,
		"bop19_average_recall_mspd": 0.5,
		"bop19_average_recall_mssd": 0.5,
		"bop19_average_recall_vsd": 0.5,
		"bop19_average_time_per_image": 1.5
	}`, string(data))

	got, err := s.Get(ctx, "method_lmo-test")
	require.NoError(t, err)
	assert.Equal(t, sampleResult(), got)
}

func TestJsonFileStorer_SaveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewJsonFileStorer(t.TempDir())
	path := s.Path("method_lmo-test")

	require.NoError(t, s.Save(ctx, sampleResult()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, sampleResult()))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestJsonFileStorer_GetMissing(t *testing.T) {
	_, err := NewJsonFileStorer(t.TempDir()).Get(context.Background(), "nope_lmo")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJsonFileStorer_List(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewJsonFileStorer(dir)

	b := sampleResult()
	b.ResultName = "b_tless-test"
	b.Dataset = "tless"
	require.NoError(t, s.Save(ctx, b))
	require.NoError(t, s.Save(ctx, sampleResult()))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "unscored_lmo-test"), 0o755))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b_tless-test", list[0].ResultName)
	assert.Equal(t, "method_lmo-test", list[1].ResultName)

	empty, err := NewJsonFileStorer(filepath.Join(dir, "missing")).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestResultID_IsStable(t *testing.T) {
	assert.Equal(t, ResultID("a_lmo"), ResultID("a_lmo"))
	assert.NotEqual(t, ResultID("a_lmo"), ResultID("b_lmo"))
}

func TestJsonFileStorer_Healthy(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	ctx := context.Background()
	assert.True(t, NewJsonFileStorer(dir).Healthy(ctx))
	assert.True(t, NewJsonFileStorer(filepath.Join(dir, "missing")).Healthy(ctx))
	assert.False(t, NewJsonFileStorer(file).Healthy(ctx))
}

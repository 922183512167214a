package composite

import (
	"errors"
	"testing"

	"github.com/DjordjeVuckovic/bop-eval/internal/apperr"
	"github.com/DjordjeVuckovic/bop-eval/internal/benchmark/timing"
	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposite(t *testing.T) {
	all := map[domain.MetricType]float64{
		domain.MetricVSD:  0.4,
		domain.MetricMSSD: 0.6,
		domain.MetricMSPD: 0.5,
	}

	t.Run("full", func(t *testing.T) {
		got, err := Composite(PolicyFull, all)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, got, 1e-12)
	})

	t.Run("single uses vsd only", func(t *testing.T) {
		got, err := Composite(PolicySingle, all)
		require.NoError(t, err)
		assert.InDelta(t, 0.4, got, 1e-12)
	})

	t.Run("single with other metrics absent", func(t *testing.T) {
		got, err := Composite(PolicySingle, map[domain.MetricType]float64{domain.MetricVSD: 0.4})
		require.NoError(t, err)
		assert.InDelta(t, 0.4, got, 1e-12)
	})

	t.Run("full with a metric missing", func(t *testing.T) {
		_, err := Composite(PolicyFull, map[domain.MetricType]float64{domain.MetricVSD: 0.4, domain.MetricMSSD: 0.6})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrMissingCompositeInput))

		var ce *apperr.MissingCompositeInputError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, []string{"mspd"}, ce.Missing)
	})

	t.Run("single without vsd", func(t *testing.T) {
		_, err := Composite(PolicySingle, map[domain.MetricType]float64{domain.MetricMSSD: 0.6})
		assert.True(t, errors.Is(err, apperr.ErrMissingCompositeInput))
	})
}

func TestSelectPolicy(t *testing.T) {
	assert.Equal(t, PolicyFull, SelectPolicy(map[domain.MetricType]float64{"vsd": 1, "mssd": 1, "mspd": 1}))
	assert.Equal(t, PolicyFull, SelectPolicy(map[domain.MetricType]float64{"vsd": 1, "mssd": 1, "mspd": 1, "ad": 1}))
	assert.Equal(t, PolicySingle, SelectPolicy(map[domain.MetricType]float64{"vsd": 1, "mssd": 1}))
	assert.Equal(t, PolicySingle, SelectPolicy(nil))
}

func TestScorer_Score(t *testing.T) {
	recalls := map[domain.MetricType]float64{
		domain.MetricVSD:  0.4,
		domain.MetricMSSD: 0.6,
		domain.MetricMSPD: 0.5,
	}

	got, err := NewScorer("").Score("m_lmo-test", "lmo", recalls, timing.Stats{Available: true, AverageTime: 1.5, Images: 2})
	require.NoError(t, err)

	want := domain.AggregateResult{
		ResultName:  "m_lmo-test",
		Dataset:     "lmo",
		Recalls:     recalls,
		Composite:   0.5,
		AverageTime: 1.5,
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b float64) bool { return a-b < 1e-12 && b-a < 1e-12 })); diff != "" {
		t.Errorf("Score() mismatch (-want +got):\n%s", diff)
	}

	recalls[domain.MetricVSD] = 0
	assert.Equal(t, 0.4, got.Recalls[domain.MetricVSD], "result must not alias the input map")
}

func TestScorer_ForcedPolicy(t *testing.T) {
	recalls := map[domain.MetricType]float64{domain.MetricVSD: 0.4, domain.MetricMSSD: 0.6, domain.MetricMSPD: 0.5}

	got, err := NewScorer(PolicySingle).Score("m_lmo-test", "lmo", recalls, timing.Stats{AverageTime: domain.TimeUnavailable})
	require.NoError(t, err)
	assert.Equal(t, 0.4, got.Composite)
	assert.Equal(t, domain.TimeUnavailable, got.AverageTime)

	_, err = NewScorer(PolicyFull).Score("m_lmo-test", "lmo", map[domain.MetricType]float64{domain.MetricVSD: 0.4}, timing.Stats{})
	assert.True(t, errors.Is(err, apperr.ErrMissingCompositeInput))
}

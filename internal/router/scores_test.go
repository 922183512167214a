package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/bop-eval/internal/apperr"
	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
	"github.com/DjordjeVuckovic/bop-eval/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/bop-eval/pkg/pagination"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	store := in_mem.NewInMemStorer()
	for _, r := range []domain.AggregateResult{
		{ResultName: "a_lmo-test", Dataset: "lmo", Recalls: map[domain.MetricType]float64{domain.MetricVSD: 0.4}, Composite: 0.4, AverageTime: 1},
		{ResultName: "b_tless-test", Dataset: "tless", Recalls: map[domain.MetricType]float64{domain.MetricVSD: 0.6}, Composite: 0.6, AverageTime: -1},
	} {
		require.NoError(t, store.Save(context.Background(), r))
	}

	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	NewScoresRouter(e, store).Bind()
	return e
}

func TestScoresRouter(t *testing.T) {
	e := newTestRouter(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		check      func(t *testing.T, body []byte)
	}{
		{
			name:       "list",
			target:     "/scores",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var resp pagination.OffsetResult[ScoresResponse]
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, 2, resp.Total)
				assert.Equal(t, "a_lmo-test", resp.Items[0].ResultName)
			},
		},
		{
			name:       "list filtered by dataset",
			target:     "/scores?dataset=tless",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var resp pagination.OffsetResult[ScoresResponse]
				require.NoError(t, json.Unmarshal(body, &resp))
				require.Equal(t, 1, resp.Total)
				assert.Equal(t, "b_tless-test", resp.Items[0].ResultName)
			},
		},
		{
			name:       "paginated",
			target:     "/scores?page=2&size=1",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var resp pagination.OffsetResult[ScoresResponse]
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, 2, resp.Total)
				require.Len(t, resp.Items, 1)
				assert.Equal(t, "b_tless-test", resp.Items[0].ResultName)
				assert.False(t, resp.HasMore)
			},
		},
		{
			name:       "huge page",
			target:     "/scores?page=9223372036854775807&size=1000",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var resp pagination.OffsetResult[ScoresResponse]
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, 2, resp.Total)
				assert.Empty(t, resp.Items)
			},
		},
		{
			name:       "bad page",
			target:     "/scores?page=abc",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "get",
			target:     "/scores/a_lmo-test",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var resp ScoresResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, 0.4, resp.Scores[domain.KeyAverageRecall])
				assert.Equal(t, 0.4, resp.Scores["bop19_average_recall_vsd"])
			},
		},
		{
			name:       "not found",
			target:     "/scores/missing_lmo",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.check != nil {
				tt.check(t, rec.Body.Bytes())
			}
		})
	}
}

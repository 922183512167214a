package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/DjordjeVuckovic/bop-eval/internal/apperr"
	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
	"github.com/DjordjeVuckovic/bop-eval/internal/storage"
	"github.com/DjordjeVuckovic/bop-eval/pkg/pagination"
	"github.com/labstack/echo/v4"
)

type ScoresRouter struct {
	e       *echo.Echo
	storage storage.Reader
}

func NewScoresRouter(e *echo.Echo, storage storage.Reader) *ScoresRouter {
	return &ScoresRouter{
		e:       e,
		storage: storage,
	}
}

func (r *ScoresRouter) Bind() {
	r.e.GET("/scores", r.listHandler)
	r.e.GET("/scores/:name", r.getHandler)
}

type ScoresResponse struct {
	ResultName string             `json:"result_name"`
	Dataset    string             `json:"dataset"`
	Scores     map[string]float64 `json:"scores"`
}

func toResponse(r domain.AggregateResult) ScoresResponse {
	return ScoresResponse{
		ResultName: r.ResultName,
		Dataset:    r.Dataset,
		Scores:     r.Scores(),
	}
}

func (r *ScoresRouter) listHandler(c echo.Context) error {
	var req pagination.OffsetRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid pagination parameters", err)
	}

	results, err := r.storage.List(c.Request().Context())
	if err != nil {
		return fmt.Errorf("list scores: %w", err)
	}

	dataset := c.QueryParam("dataset")
	items := make([]ScoresResponse, 0, len(results))
	for _, res := range results {
		if dataset != "" && res.Dataset != dataset {
			continue
		}
		items = append(items, toResponse(res))
	}

	return c.JSON(http.StatusOK, pagination.Paginate(items, req))
}

func (r *ScoresRouter) getHandler(c echo.Context) error {
	name := c.Param("name")

	res, err := r.storage.Get(c.Request().Context(), name)
	if errors.Is(err, storage.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "scores not found")
	}
	if err != nil {
		return fmt.Errorf("get scores %s: %w", name, err)
	}

	return c.JSON(http.StatusOK, toResponse(res))
}

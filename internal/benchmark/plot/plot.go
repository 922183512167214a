// Package plot renders recall curves as PNG images, one per metric type and
// submission, with one line per error signature.
package plot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/DjordjeVuckovic/bop-eval/internal/benchmark/metrics"
	"github.com/DjordjeVuckovic/bop-eval/internal/benchmark/signature"
	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

type CurvePlotter struct {
	outputDir string
}

func NewCurvePlotter(outputDir string) *CurvePlotter {
	return &CurvePlotter{outputDir: outputDir}
}

// Path is <outputDir>/<result_name>/recall_<metric>.png.
func (p *CurvePlotter) Path(resultName string, t domain.MetricType) string {
	return filepath.Join(p.outputDir, resultName, "recall_"+string(t)+".png")
}

// Plot writes one image per metric of cs and returns the written paths.
func (p *CurvePlotter) Plot(ctx context.Context, cs *metrics.CurveSet) ([]string, error) {
	if cs == nil {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Join(p.outputDir, cs.ResultName), 0o755); err != nil {
		return nil, fmt.Errorf("create plot dir: %w", err)
	}

	paths := make([]string, 0, len(cs.Metrics))
	for _, spec := range cs.Metrics {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path := p.Path(cs.ResultName, spec.Type())
		if err := plotMetric(cs, spec, path); err != nil {
			return paths, fmt.Errorf("plot %s: %w", spec.Type(), err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func plotMetric(cs *metrics.CurveSet, spec domain.ErrorMetricSpec, path string) error {
	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("%s - %s recall (min visib %s)", cs.ResultName, spec.Type(), signature.FormatFloat(cs.VisibGtMin))
	pl.X.Label.Text = "Correctness threshold"
	pl.Y.Label.Text = "Recall"
	pl.Y.Min = 0
	pl.Y.Max = 1

	xs := thresholdAxis(spec.Thresholds())
	for i, c := range cs.Curves[spec.Type()] {
		pts := make(plotter.XYs, 0, len(c.Recalls))
		for j, r := range c.Recalls {
			if j < len(xs) {
				pts = append(pts, plotter.XY{X: xs[j], Y: r})
			}
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)

		pl.Add(line, points)
		pl.Legend.Add(c.ErrorSignature, line, points)
	}

	pl.Legend.Top = true
	pl.Legend.Left = false

	return pl.Save(8*vg.Inch, 5*vg.Inch, path)
}

// thresholdAxis uses the first entry of each threshold tuple as the x value.
// Tuples whose first entries do not increase fall back to their index.
func thresholdAxis(ths []domain.Threshold) []float64 {
	xs := make([]float64, len(ths))
	for i, th := range ths {
		if len(th) > 0 {
			xs[i] = th[0]
		}
	}
	if slices.IsSorted(xs) && len(slices.Compact(slices.Clone(xs))) == len(xs) {
		return xs
	}
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}

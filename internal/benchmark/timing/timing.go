// Package timing checks the per-image runtimes reported with a result
// submission and reduces them to the average time per image.
package timing

import (
	"math"
	"slices"

	"github.com/DjordjeVuckovic/bop-eval/internal/apperr"
	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// Tolerance is the largest difference in seconds allowed between the times
// of two estimates of the same image.
const Tolerance = 0.001

type Stats struct {
	Available bool
	// AverageTime is domain.TimeUnavailable when Available is false.
	AverageTime float64
	Images      int
}

func unavailable() Stats {
	return Stats{Available: false, AverageTime: domain.TimeUnavailable}
}

// Validate groups the records by image and returns the mean image time.
//
// A single record without a time makes the whole submission unavailable.
// Otherwise every image must carry one time, up to Tolerance, and a
// disagreement fails with an *apperr.InconsistentTimingError.
func Validate(records []domain.EstimationRecord) (Stats, error) {
	if len(records) == 0 {
		return unavailable(), nil
	}
	for _, r := range records {
		if r.Time < 0 {
			return unavailable(), nil
		}
	}

	times := make(map[domain.ImageKey][]float64)
	for _, r := range records {
		key := r.Image()
		group, seen := times[key]
		if !seen {
			times[key] = []float64{r.Time}
			continue
		}
		if first := group[0]; math.Abs(first-r.Time) > Tolerance {
			return Stats{}, &apperr.InconsistentTimingError{
				SceneID:  key.SceneID,
				ImID:     key.ImID,
				Expected: first,
				Got:      r.Time,
			}
		}
		times[key] = append(group, r.Time)
	}

	keys := make([]domain.ImageKey, 0, len(times))
	for k := range times {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b domain.ImageKey) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})

	// The times of an image agree up to Tolerance, so their mean stands in
	// for the image.
	values := make([]float64, len(keys))
	for i, k := range keys {
		values[i] = stat.Mean(times[k], nil)
	}

	return Stats{
		Available:   true,
		AverageTime: stat.Mean(values, nil),
		Images:      len(values),
	}, nil
}

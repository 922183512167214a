package es

import (
	"maps"
	"time"

	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
	"github.com/DjordjeVuckovic/bop-eval/internal/storage"
)

// Document is the indexed form of a final score set.
type Document struct {
	ID          string             `json:"id"`
	ResultName  string             `json:"result_name"`
	Dataset     string             `json:"dataset"`
	Scores      map[string]float64 `json:"scores"`
	Recalls     map[string]float64 `json:"recalls"`
	Composite   float64            `json:"bop19_average_recall"`
	AverageTime float64            `json:"bop19_average_time_per_image"`
	IndexedAt   time.Time          `json:"indexed_at"`
}

func toDocument(r domain.AggregateResult, now time.Time) Document {
	recalls := make(map[string]float64, len(r.Recalls))
	for t, v := range r.Recalls {
		recalls[string(t)] = v
	}
	return Document{
		ID:          storage.ResultID(r.ResultName).String(),
		ResultName:  r.ResultName,
		Dataset:     r.Dataset,
		Scores:      r.Scores(),
		Recalls:     recalls,
		Composite:   r.Composite,
		AverageTime: r.AverageTime,
		IndexedAt:   now,
	}
}

func (d Document) toResult() (domain.AggregateResult, error) {
	return domain.ResultFromScores(d.ResultName, maps.Clone(d.Scores))
}

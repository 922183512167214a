package domain

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

const (
	KeyAverageRecall       = "bop19_average_recall"
	KeyAverageRecallPrefix = "bop19_average_recall_"
	KeyAverageTime         = "bop19_average_time_per_image"

	// TimeUnavailable is the average time reported when any estimate of the
	// submission lacks a runtime.
	TimeUnavailable = -1.0

	FinalScoresFilename = "scores_bop19.json"
)

// AggregateResult is the final score set of one result submission.
type AggregateResult struct {
	ResultName string
	Dataset    string
	// Recalls maps each evaluated metric to its average recall.
	Recalls     map[MetricType]float64
	Composite   float64
	AverageTime float64
}

// Scores renders the result as the keyed record persisted on disk.
func (r AggregateResult) Scores() map[string]float64 {
	scores := make(map[string]float64, len(r.Recalls)+2)
	for t, v := range r.Recalls {
		scores[KeyAverageRecallPrefix+string(t)] = v
	}
	scores[KeyAverageRecall] = r.Composite
	scores[KeyAverageTime] = r.AverageTime
	return scores
}

// ScoreKeys returns the keys of Scores in the order they are reported:
// per-metric recalls sorted by metric type, then the composite and the time.
func (r AggregateResult) ScoreKeys() []string {
	types := make([]string, 0, len(r.Recalls))
	for t := range r.Recalls {
		types = append(types, string(t))
	}
	slices.Sort(types)

	keys := make([]string, 0, len(types)+2)
	for _, t := range types {
		keys = append(keys, KeyAverageRecallPrefix+t)
	}
	return append(keys, KeyAverageRecall, KeyAverageTime)
}

// ResultFromScores rebuilds an AggregateResult from a persisted keyed record.
func ResultFromScores(resultName string, scores map[string]float64) (AggregateResult, error) {
	composite, ok := scores[KeyAverageRecall]
	if !ok {
		return AggregateResult{}, fmt.Errorf("result %q: missing %s", resultName, KeyAverageRecall)
	}
	avgTime, ok := scores[KeyAverageTime]
	if !ok {
		avgTime = TimeUnavailable
	}

	r := AggregateResult{
		ResultName:  resultName,
		Recalls:     make(map[MetricType]float64),
		Composite:   composite,
		AverageTime: avgTime,
	}
	if _, dataset, err := ParseResultName(resultName); err == nil {
		r.Dataset = dataset
	}
	for k, v := range scores {
		if t, found := strings.CutPrefix(k, KeyAverageRecallPrefix); found {
			r.Recalls[MetricType(t)] = v
		}
	}
	return r, nil
}

// ParseResultName derives the result name and the dataset from a results
// filename of the form <method>_<dataset>-<split>.csv.
func ParseResultName(filename string) (name, dataset string, err error) {
	base := filepath.Base(filename)
	name = strings.TrimSuffix(base, filepath.Ext(base))

	_, rest, found := strings.Cut(name, "_")
	if !found {
		return "", "", fmt.Errorf("result name %q has no '_' separated dataset token", name)
	}
	dataset, _, _ = strings.Cut(rest, "_")
	dataset, _, _ = strings.Cut(dataset, "-")
	if dataset == "" {
		return "", "", fmt.Errorf("result name %q has an empty dataset token", name)
	}
	return name, dataset, nil
}

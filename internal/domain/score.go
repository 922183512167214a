package domain

// ScoreRecord is the subset of a per-threshold score file this module reads.
// The eval stage writes "recall", older show outputs use "total_recall".
type ScoreRecord struct {
	Recall      *float64 `json:"recall,omitempty"`
	TotalRecall *float64 `json:"total_recall,omitempty"`
}

// Value returns the recall stored in the record.
func (s ScoreRecord) Value() (float64, bool) {
	if s.Recall != nil {
		return *s.Recall, true
	}
	if s.TotalRecall != nil {
		return *s.TotalRecall, true
	}
	return 0, false
}

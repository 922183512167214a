package report

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
	"gonum.org/v1/gonum/stat"
)

func WriteTable(r *Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== BOP19 Scores (%s) ===\n\n", r.Mode)

	writeScoresTable(tw, r)
	writeSummary(tw, r)
	writeCurvesTable(tw, r)

	tw.Flush()
}

func writeScoresTable(tw *tabwriter.Writer, r *Report) {
	header := []string{"Result", "Dataset"}
	for _, m := range r.Metrics {
		header = append(header, "AR_"+strings.ToUpper(m))
	}
	header = append(header, "AR", "Time/img", "Duration", "Status")
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, e := range r.Entries {
		row := []string{nameOf(e), e.Dataset}
		for _, m := range r.Metrics {
			if v, ok := e.Recalls[m]; ok {
				row = append(row, fmt.Sprintf("%.4f", v))
			} else {
				row = append(row, "N/A")
			}
		}
		row = append(row, fmtOptional(e.Composite, "%.4f"), fmtTime(e.AverageTime), e.Duration.Round(1000).String(), status(e))
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

// writeSummary prints the mean BOP score over the completed entries when the
// full set of core metrics was evaluated.
func writeSummary(tw *tabwriter.Writer, r *Report) {
	if !r.HasCoreMetrics() {
		return
	}

	var composites []float64
	for _, e := range r.Entries {
		if e.Composite != nil && e.Error == "" {
			composites = append(composites, *e.Composite)
		}
	}
	if len(composites) == 0 {
		return
	}

	fmt.Fprintf(tw, "Average BOP score over %d result(s): %.4f\n\n", len(composites), stat.Mean(composites, nil))
}

func writeCurvesTable(tw *tabwriter.Writer, r *Report) {
	if len(r.Curves) == 0 {
		return
	}

	fmt.Fprintf(tw, "--- Recall Curves ---\n\n")
	fmt.Fprintln(tw, strings.Join([]string{"Result", "Metric", "Error signature", "Recalls"}, "\t"))
	fmt.Fprintln(tw, strings.Join([]string{"---", "---", "---", "---"}, "\t"))

	for _, cs := range r.Curves {
		for _, m := range sortedKeys(cs.Curves) {
			bySig := cs.Curves[m]
			for _, sig := range sortedKeys(bySig) {
				vals := make([]string, len(bySig[sig]))
				for i, v := range bySig[sig] {
					vals[i] = fmt.Sprintf("%.3f", v)
				}
				fmt.Fprintln(tw, strings.Join([]string{cs.ResultName, m, sig, strings.Join(vals, " ")}, "\t"))
			}
		}
	}

	fmt.Fprintln(tw)
}

func nameOf(e Entry) string {
	if e.ResultName != "" {
		return e.ResultName
	}
	return e.Filename
}

func status(e Entry) string {
	if e.Error != "" {
		return "ERR"
	}
	return "OK"
}

func fmtOptional(v *float64, format string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf(format, *v)
}

func fmtTime(v *float64) string {
	if v == nil || *v == domain.TimeUnavailable {
		return "N/A"
	}
	return fmt.Sprintf("%.3fs", *v)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

package reader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/bop-eval/internal/domain"
)

// Columns of a BOP19 results file. The time column is optional; estimates
// without it report no running time.
var (
	headerWithTime    = []string{"scene_id", "im_id", "obj_id", "score", "R", "t", "time"}
	headerWithoutTime = headerWithTime[:6]
)

type CSVReader struct {
	reader io.Reader
}

func NewCSVReader(reader io.Reader) *CSVReader {
	return &CSVReader{
		reader: reader,
	}
}

// Read parses every estimate in the BOP19 CSV stream.
func (cr *CSVReader) Read() ([]domain.EstimationRecord, error) {
	csvReader := csv.NewReader(cr.reader)
	csvReader.TrimLeadingSpace = true

	headers, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	hasTime, err := checkHeader(headers)
	if err != nil {
		return nil, err
	}
	csvReader.FieldsPerRecord = len(headers)

	var records []domain.EstimationRecord
	for line := 2; ; line++ {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		rec, err := parseRow(row, hasTime)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func checkHeader(headers []string) (bool, error) {
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}
	switch {
	case slices.Equal(headers, headerWithTime):
		return true, nil
	case slices.Equal(headers, headerWithoutTime):
		return false, nil
	default:
		return false, fmt.Errorf("unexpected header %q, want %q", strings.Join(headers, ","), strings.Join(headerWithTime, ","))
	}
}

func parseRow(row []string, hasTime bool) (domain.EstimationRecord, error) {
	var (
		rec domain.EstimationRecord
		err error
	)
	if rec.SceneID, err = strconv.Atoi(row[0]); err != nil {
		return rec, fmt.Errorf("scene_id: %w", err)
	}
	if rec.ImID, err = strconv.Atoi(row[1]); err != nil {
		return rec, fmt.Errorf("im_id: %w", err)
	}
	if rec.ObjID, err = strconv.Atoi(row[2]); err != nil {
		return rec, fmt.Errorf("obj_id: %w", err)
	}
	if rec.Score, err = strconv.ParseFloat(row[3], 64); err != nil {
		return rec, fmt.Errorf("score: %w", err)
	}
	if err = parseVector(row[4], rec.Pose.R[:]); err != nil {
		return rec, fmt.Errorf("R: %w", err)
	}
	if err = parseVector(row[5], rec.Pose.T[:]); err != nil {
		return rec, fmt.Errorf("t: %w", err)
	}

	rec.Time = domain.TimeNotReported
	if hasTime {
		if rec.Time, err = strconv.ParseFloat(row[6], 64); err != nil {
			return rec, fmt.Errorf("time: %w", err)
		}
		if math.IsNaN(rec.Time) || math.IsInf(rec.Time, 0) {
			return rec, fmt.Errorf("time: %q is not a finite number", row[6])
		}
	}
	return rec, nil
}

func parseVector(s string, dst []float64) error {
	fields := strings.Fields(s)
	if len(fields) != len(dst) {
		return fmt.Errorf("expected %d values, got %d", len(dst), len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

// FileLoader reads results files from a directory.
type FileLoader struct {
	resultsPath string
}

func NewFileLoader(resultsPath string) *FileLoader {
	return &FileLoader{resultsPath: resultsPath}
}

// LoadEstimates reads the estimates of one results file. Relative filenames
// resolve against the results directory.
func (l *FileLoader) LoadEstimates(ctx context.Context, filename string) ([]domain.EstimationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filename
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.resultsPath, filename)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open results file: %w", err)
	}
	defer f.Close()

	records, err := NewCSVReader(f).Read()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

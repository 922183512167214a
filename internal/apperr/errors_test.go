package apperr_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/DjordjeVuckovic/bop-eval/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("field is required")

	if err.Error() != "field is required" {
		t.Errorf("expected 'field is required', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid config", inner)

	if err.Error() != "invalid config: parse failed" {
		t.Errorf("expected 'invalid config: parse failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("empty correct_th")

	wrapped := fmt.Errorf("failed to load: %w", original)
	doubleWrapped := fmt.Errorf("config error: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "empty correct_th" {
		t.Errorf("expected 'empty correct_th', got %q", ve.Message)
	}
}

func TestInvalidSpecError(t *testing.T) {
	err := fmt.Errorf("integrate: %w", apperr.NewInvalidSpec("vsd", "no vsd_deltas entry for dataset %q", "lmo"))

	if !errors.Is(err, apperr.ErrInvalidSpec) {
		t.Fatal("expected ErrInvalidSpec kind")
	}
	var se *apperr.InvalidSpecError
	if !errors.As(err, &se) {
		t.Fatal("errors.As should find InvalidSpecError")
	}
	if se.Metric != "vsd" {
		t.Errorf("expected metric vsd, got %q", se.Metric)
	}
	if se.Reason != `no vsd_deltas entry for dataset "lmo"` {
		t.Errorf("unexpected reason %q", se.Reason)
	}
}

func TestInconsistentTimingError(t *testing.T) {
	err := &apperr.InconsistentTimingError{SceneID: 1, ImID: 7, Expected: 2.0, Got: 2.1}

	if !errors.Is(err, apperr.ErrInconsistentTiming) {
		t.Fatal("expected ErrInconsistentTiming kind")
	}
	want := "inconsistent timing: the running time for scene 1 and image 7 is not the same for all estimates (2 vs 2.1)"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestMissingScoreError_UnwrapsBothKinds(t *testing.T) {
	err := &apperr.MissingScoreError{
		ErrorSignature: "error=mssd_ntop=-1",
		ScoreSignature: "th=0.050_min-visib=0.100",
		Path:           "/eval/x/error=mssd_ntop=-1/scores_th=0.050_min-visib=0.100.json",
		Err:            fs.ErrNotExist,
	}

	if !errors.Is(err, apperr.ErrMissingScore) {
		t.Error("expected ErrMissingScore kind")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("expected underlying fs.ErrNotExist")
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"invalid spec", apperr.NewInvalidSpec("vsd", "empty vsd_taus"), apperr.ErrInvalidSpec},
		{"timing", &apperr.InconsistentTimingError{}, apperr.ErrInconsistentTiming},
		{"missing score", &apperr.MissingScoreError{}, apperr.ErrMissingScore},
		{"composite", &apperr.MissingCompositeInputError{Policy: "full", Missing: []string{"mspd"}}, apperr.ErrMissingCompositeInput},
		{"plain", errors.New("disk full"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apperr.Kind(fmt.Errorf("wrapped: %w", tt.err)); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Failure kinds of a submission evaluation. Every typed error below unwraps to
// exactly one of them.
var (
	ErrInvalidSpec           = errors.New("invalid metric spec")
	ErrInconsistentTiming    = errors.New("inconsistent timing")
	ErrMissingScore          = errors.New("missing score record")
	ErrMissingCompositeInput = errors.New("missing composite input")
)

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// InvalidSpecError reports a metric configuration that lacks fields its
// integration rule needs.
type InvalidSpecError struct {
	Metric string
	Reason string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidSpec, e.Metric, e.Reason)
}

func (e *InvalidSpecError) Unwrap() error {
	return ErrInvalidSpec
}

func NewInvalidSpec(metric string, format string, args ...any) *InvalidSpecError {
	return &InvalidSpecError{Metric: metric, Reason: fmt.Sprintf(format, args...)}
}

// InconsistentTimingError reports two estimates of the same image that
// disagree on the image runtime.
type InconsistentTimingError struct {
	SceneID  int
	ImID     int
	Expected float64
	Got      float64
}

func (e *InconsistentTimingError) Error() string {
	return fmt.Sprintf("%s: the running time for scene %d and image %d is not the same for all estimates (%g vs %g)",
		ErrInconsistentTiming, e.SceneID, e.ImID, e.Expected, e.Got)
}

func (e *InconsistentTimingError) Unwrap() error {
	return ErrInconsistentTiming
}

// MissingScoreError reports a score record that the error-computation stage
// never produced.
type MissingScoreError struct {
	ErrorSignature string
	ScoreSignature string
	Path           string
	Err            error
}

func (e *MissingScoreError) Error() string {
	msg := fmt.Sprintf("%s: %s/scores_%s.json", ErrMissingScore, e.ErrorSignature, e.ScoreSignature)
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	return msg
}

func (e *MissingScoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMissingScore}
	}
	return []error{ErrMissingScore, e.Err}
}

// MissingCompositeInputError reports a composite policy whose required
// metrics were not all computed.
type MissingCompositeInputError struct {
	Policy  string
	Missing []string
}

func (e *MissingCompositeInputError) Error() string {
	return fmt.Sprintf("%s: %s composite needs %s", ErrMissingCompositeInput, e.Policy, strings.Join(e.Missing, ", "))
}

func (e *MissingCompositeInputError) Unwrap() error {
	return ErrMissingCompositeInput
}

// Kind returns the failure kind of err, or nil when err is not one of the
// evaluation failure kinds.
func Kind(err error) error {
	for _, k := range []error{ErrInvalidSpec, ErrInconsistentTiming, ErrMissingScore, ErrMissingCompositeInput} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

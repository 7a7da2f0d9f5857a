// Package errors provides the error and warning system shared by all
// elnet packages. The split mirrors scikit-learn's taxonomy: fatal
// conditions (bad shapes, impossible imputation) are errors surfaced at
// the API boundary, while recoverable numerical conditions
// (non-convergence, undefined metrics, degenerate features) are
// warnings routed through a process-wide handler.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("elnet-warning: %v\n", w)
	}
	// zerolog sink, installed lazily by pkg/log to avoid a circular import.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the process-wide warning handler.
// Use it to silence or redirect warnings such as ConvergenceWarning:
//
//	errors.SetWarningHandler(func(w error) {})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink. When set it
// takes precedence over the plain handler.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning through the configured sink.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types (recoverable conditions)
//
// ===========================================================================

// ConvergenceWarning reports that an optimizer hit its iteration cap
// before reaching the requested tolerance. The best iterate so far is
// still returned; the warning is informational.
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
	Tolerance  float64
}

func (w *ConvergenceWarning) Error() string {
	return fmt.Sprintf("%s did not converge within %d iterations (tol=%g). Consider increasing max iterations.",
		w.Algorithm, w.Iterations, w.Tolerance)
}

// MarshalZerologObject adds structured warning fields to a zerolog event.
func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Int("iterations", w.Iterations).
		Float64("tolerance", w.Tolerance).
		Str("type", "ConvergenceWarning")
}

// NewConvergenceWarning creates a new ConvergenceWarning.
func NewConvergenceWarning(algorithm string, iterations int, tolerance float64) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations, Tolerance: tolerance}
}

// UndefinedMetricWarning reports a metric whose denominator is zero,
// e.g. precision when no positive predictions were made. The metric
// value is NaN, never silently 0.
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined and set to NaN due to %s", w.Metric, w.Condition)
}

// MarshalZerologObject adds structured warning fields to a zerolog event.
func (w *UndefinedMetricWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("metric", w.Metric).
		Str("condition", w.Condition).
		Str("type", "UndefinedMetricWarning")
}

// NewUndefinedMetricWarning creates a new UndefinedMetricWarning.
func NewUndefinedMetricWarning(metric, condition string) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition}
}

// DegenerateFeatureWarning reports a zero-variance feature encountered
// during standardization. The feature is left unscaled.
type DegenerateFeatureWarning struct {
	Feature int
	Name    string
}

func (w *DegenerateFeatureWarning) Error() string {
	if w.Name != "" {
		return fmt.Sprintf("feature %d (%s) has zero variance and is left unscaled", w.Feature, w.Name)
	}
	return fmt.Sprintf("feature %d has zero variance and is left unscaled", w.Feature)
}

// MarshalZerologObject adds structured warning fields to a zerolog event.
func (w *DegenerateFeatureWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Int("feature", w.Feature).
		Str("name", w.Name).
		Str("type", "DegenerateFeatureWarning")
}

// NewDegenerateFeatureWarning creates a new DegenerateFeatureWarning.
func NewDegenerateFeatureWarning(feature int, name string) *DegenerateFeatureWarning {
	return &DegenerateFeatureWarning{Feature: feature, Name: name}
}

// ===========================================================================
//
//	Structured error types (fatal conditions)
//
// ===========================================================================

// InsufficientDataError indicates an operation that cannot proceed for
// lack of usable rows: zero complete rows for imputation, or a split
// that would leave a partition empty.
type InsufficientDataError struct {
	Op     string
	Need   string
	Have   int
	Detail string
}

func (e *InsufficientDataError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("elnet: %s: insufficient data: need %s, have %d (%s)", e.Op, e.Need, e.Have, e.Detail)
	}
	return fmt.Sprintf("elnet: %s: insufficient data: need %s, have %d", e.Op, e.Need, e.Have)
}

// NewInsufficientDataError creates an InsufficientDataError with a stack trace.
func NewInsufficientDataError(op, need string, have int, detail string) error {
	err := &InsufficientDataError{Op: op, Need: need, Have: have, Detail: detail}
	return errors.WithStack(err)
}

// DegenerateFeatureError is the strict-mode counterpart of
// DegenerateFeatureWarning: a zero-variance feature fails the fit.
type DegenerateFeatureError struct {
	Op      string
	Feature int
}

func (e *DegenerateFeatureError) Error() string {
	return fmt.Sprintf("elnet: %s: feature %d has zero variance", e.Op, e.Feature)
}

// NewDegenerateFeatureError creates a DegenerateFeatureError with a stack trace.
func NewDegenerateFeatureError(op string, feature int) error {
	err := &DegenerateFeatureError{Op: op, Feature: feature}
	return errors.WithStack(err)
}

// NotFittedError indicates Predict or Transform was called before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("elnet: %s: this estimator is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError indicates input dimensions that disagree with what an
// estimator expects or was fitted with.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("elnet: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError indicates an argument whose value is invalid for the
// operation, such as a negative lambda or non-binary labels.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("elnet: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// NumericalInstabilityError indicates NaN or Inf appeared during an
// optimization.
type NumericalInstabilityError struct {
	Operation string
	Values    []float64
	Iteration int
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("elnet: numerical instability detected in %s at iteration %d. Values: [%s]",
		e.Operation, e.Iteration, valStr)
}

// NewNumericalInstabilityError creates a NumericalInstabilityError with a stack trace.
func NewNumericalInstabilityError(operation string, values []float64, iteration int) error {
	err := &NumericalInstabilityError{Operation: operation, Values: values, Iteration: iteration}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error variables
//
// ===========================================================================

var (
	// ErrEmptyData indicates an empty matrix or vector was passed.
	ErrEmptyData = New("empty data")
)

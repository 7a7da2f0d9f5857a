package errors

import (
	"math"
	"testing"
)

func TestWarnRouting(t *testing.T) {
	var plain, sink []error
	SetWarningHandler(func(w error) { plain = append(plain, w) })
	defer SetWarningHandler(nil)

	Warn(NewConvergenceWarning("test", 10, 1e-4))
	if len(plain) != 1 {
		t.Fatalf("plain handler received %d warnings, want 1", len(plain))
	}

	// zerolog sink takes precedence once installed
	SetZerologWarnFunc(func(w error) { sink = append(sink, w) })
	defer SetZerologWarnFunc(nil)

	Warn(NewUndefinedMetricWarning("precision", "no predicted positives"))
	if len(sink) != 1 {
		t.Fatalf("sink received %d warnings, want 1", len(sink))
	}
	if len(plain) != 1 {
		t.Errorf("plain handler received %d warnings after sink install, want 1", len(plain))
	}
}

func TestErrorsAsThroughStack(t *testing.T) {
	err := NewDimensionError("test.Op", 3, 5, 1)

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Fatalf("As() failed on %v", err)
	}
	if dimErr.Expected != 3 || dimErr.Got != 5 {
		t.Errorf("DimensionError = %+v, want Expected=3 Got=5", dimErr)
	}

	wrapped := Wrap(err, "outer context")
	if !As(wrapped, &dimErr) {
		t.Error("As() failed through a Wrap layer")
	}
}

func TestNotFittedErrorMessage(t *testing.T) {
	err := NewNotFittedError("StandardScaler", "Transform")

	var notFitted *NotFittedError
	if !As(err, &notFitted) {
		t.Fatalf("As() failed on %v", err)
	}
	if notFitted.ModelName != "StandardScaler" || notFitted.Method != "Transform" {
		t.Errorf("NotFittedError = %+v", notFitted)
	}
}

func TestCheckNumericalStability(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		wantErr bool
	}{
		{"Finite values", []float64{1, -2, 0.5}, false},
		{"NaN", []float64{1, math.NaN()}, true},
		{"Positive infinity", []float64{math.Inf(1)}, true},
		{"Negative infinity", []float64{math.Inf(-1)}, true},
		{"Empty slice", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckNumericalStability("test", tt.values, 0)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckNumericalStability() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStabilizeExp(t *testing.T) {
	if got := StabilizeExp(1000); math.IsInf(got, 1) {
		t.Error("StabilizeExp(1000) overflowed to Inf")
	}
	if got := StabilizeExp(-1000); got != 0 {
		t.Errorf("StabilizeExp(-1000) = %v, want 0", got)
	}
	if got := StabilizeExp(1); math.Abs(got-math.E) > 1e-12 {
		t.Errorf("StabilizeExp(1) = %v, want e", got)
	}
}

func TestClipValue(t *testing.T) {
	if got := ClipValue(-0.5, 0, 1); got != 0 {
		t.Errorf("ClipValue(-0.5, 0, 1) = %v, want 0", got)
	}
	if got := ClipValue(1.5, 0, 1); got != 1 {
		t.Errorf("ClipValue(1.5, 0, 1) = %v, want 1", got)
	}
	if got := ClipValue(0.3, 0, 1); got != 0.3 {
		t.Errorf("ClipValue(0.3, 0, 1) = %v, want 0.3", got)
	}
}

package impute

import (
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/elnet-ml/elnet/dataset"
	"github.com/elnet-ml/elnet/pkg/errors"
)

func TestKNNImputerIdempotentOnCompleteData(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{1, 2, 3, 4, 5, 6, 7, 8})
	ds, err := dataset.New(x, []float64{0, 1, 0, 1}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	imputer, err := NewKNNImputer()
	if err != nil {
		t.Fatalf("NewKNNImputer() error = %v", err)
	}
	filled, err := imputer.FitTransform(ds)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	if !mat.Equal(ds.X(), filled.X()) {
		t.Error("imputing a complete dataset changed its features")
	}
}

func TestKNNImputerFillsWithinObservedRange(t *testing.T) {
	const rows = 100
	rng := rand.New(rand.NewPCG(13, 13))

	x := mat.NewDense(rows, 3, nil)
	y := make([]float64, rows)
	for i := 0; i < rows; i++ {
		for j := 0; j < 3; j++ {
			x.Set(i, j, 5+rng.NormFloat64())
		}
		y[i] = float64(i % 2)
	}

	// knock out 5 entries of feature 1
	missingRows := []int{3, 17, 42, 61, 88}
	min, max := x.At(0, 1), x.At(0, 1)
	for i := 0; i < rows; i++ {
		v := x.At(i, 1)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	for _, i := range missingRows {
		x.Set(i, 1, dataset.Missing)
	}

	ds, err := dataset.New(x, y, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	imputer, err := NewKNNImputer(WithNeighbors(10))
	if err != nil {
		t.Fatalf("NewKNNImputer() error = %v", err)
	}
	filled, err := imputer.FitTransform(ds)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	if filled.HasMissing() {
		t.Fatal("imputed dataset still has missing values")
	}
	if ds.MissingCount() != 5 {
		t.Fatalf("original dataset mutated: missing count = %d, want 5", ds.MissingCount())
	}
	for _, i := range missingRows {
		got := filled.X().At(i, 1)
		if got < min || got > max {
			t.Errorf("row %d imputed to %v, outside observed range [%v, %v]", i, got, min, max)
		}
	}
}

func TestKNNImputerNearestNeighborValue(t *testing.T) {
	// with k=1 the fill value is exactly the nearest complete row's value
	x := mat.NewDense(4, 2, []float64{
		0, 10,
		1, 20,
		10, 30,
		0.1, dataset.Missing,
	})
	ds, err := dataset.New(x, []float64{0, 1, 0, 1}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	imputer, err := NewKNNImputer(WithNeighbors(1))
	if err != nil {
		t.Fatalf("NewKNNImputer() error = %v", err)
	}
	filled, err := imputer.FitTransform(ds)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	if got := filled.X().At(3, 1); got != 10 {
		t.Errorf("imputed value = %v, want 10 (nearest neighbor)", got)
	}
}

func TestKNNImputerUsesAllRowsWhenFewerThanK(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{
		0, 10,
		2, 30,
		1, dataset.Missing,
	})
	ds, err := dataset.New(x, []float64{0, 1, 0}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	imputer, err := NewKNNImputer(WithNeighbors(50))
	if err != nil {
		t.Fatalf("NewKNNImputer() error = %v", err)
	}
	filled, err := imputer.FitTransform(ds)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	got := filled.X().At(2, 1)
	// equidistant from both complete rows: inverse-distance weights are
	// equal, so the fill is the midpoint
	if got < 19.99 || got > 20.01 {
		t.Errorf("imputed value = %v, want 20", got)
	}
}

func TestKNNImputerNoCompleteRows(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{
		1, dataset.Missing,
		dataset.Missing, 2,
	})
	ds, err := dataset.New(x, []float64{0, 1}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	imputer, err := NewKNNImputer()
	if err != nil {
		t.Fatalf("NewKNNImputer() error = %v", err)
	}
	_, err = imputer.FitTransform(ds)
	if err == nil {
		t.Fatal("FitTransform() expected error with zero complete rows")
	}
	var insufficientErr *errors.InsufficientDataError
	if !errors.As(err, &insufficientErr) {
		t.Errorf("error = %v, want InsufficientDataError", err)
	}
}

func TestNewKNNImputerValidation(t *testing.T) {
	if _, err := NewKNNImputer(WithNeighbors(0)); err == nil {
		t.Error("NewKNNImputer(k=0) expected error, got nil")
	}
}

package dataset

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		x       *mat.Dense
		y       []float64
		names   []string
		wantErr bool
	}{
		{
			name: "Valid binary dataset",
			x:    mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6}),
			y:    []float64{0, 1, 0},
		},
		{
			name: "Single-class labels accepted",
			x:    mat.NewDense(2, 1, []float64{1, 2}),
			y:    []float64{1, 1},
		},
		{
			name:  "Feature names",
			x:     mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
			y:     []float64{0, 1},
			names: []string{"clump", "size"},
		},
		{
			name:    "Nil matrix",
			x:       nil,
			y:       []float64{0},
			wantErr: true,
		},
		{
			name:    "Label length mismatch",
			x:       mat.NewDense(3, 2, nil),
			y:       []float64{0, 1},
			wantErr: true,
		},
		{
			name:    "More than two label values",
			x:       mat.NewDense(3, 1, []float64{1, 2, 3}),
			y:       []float64{0, 1, 2},
			wantErr: true,
		},
		{
			name:    "NaN label",
			x:       mat.NewDense(2, 1, []float64{1, 2}),
			y:       []float64{0, math.NaN()},
			wantErr: true,
		},
		{
			name:    "Name count mismatch",
			x:       mat.NewDense(2, 2, nil),
			y:       []float64{0, 1},
			names:   []string{"only-one"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.x, tt.y, tt.names)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	x := mat.NewDense(2, 1, []float64{1, 2})
	y := []float64{0, 1}
	ds, err := New(x, y, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	x.Set(0, 0, 99)
	y[0] = 99

	if got := ds.X().At(0, 0); got != 1 {
		t.Errorf("feature matrix not copied: got %v, want 1", got)
	}
	if got := ds.Labels()[0]; got != 0 {
		t.Errorf("labels not copied: got %v, want 0", got)
	}
}

func TestClasses(t *testing.T) {
	ds, err := New(mat.NewDense(4, 1, []float64{1, 2, 3, 4}), []float64{4, 2, 4, 2}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	classes := ds.Classes()
	if len(classes) != 2 || classes[0] != 2 || classes[1] != 4 {
		t.Errorf("Classes() = %v, want [2 4]", classes)
	}
}

func TestMissingCount(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{1, Missing, 3, 4, Missing, 6})
	ds, err := New(x, []float64{0, 1, 0}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := ds.MissingCount(); got != 2 {
		t.Errorf("MissingCount() = %d, want 2", got)
	}
	if !ds.HasMissing() {
		t.Error("HasMissing() = false, want true")
	}
}

func TestSubset(t *testing.T) {
	ds, err := New(mat.NewDense(4, 1, []float64{10, 20, 30, 40}), []float64{0, 1, 0, 1}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	sub, err := ds.Subset([]int{3, 1})
	if err != nil {
		t.Fatalf("Subset() error = %v", err)
	}
	if sub.Rows() != 2 {
		t.Fatalf("Subset() rows = %d, want 2", sub.Rows())
	}
	if sub.X().At(0, 0) != 40 || sub.X().At(1, 0) != 20 {
		t.Errorf("Subset() features = [%v %v], want [40 20]", sub.X().At(0, 0), sub.X().At(1, 0))
	}
	if sub.Labels()[0] != 1 || sub.Labels()[1] != 1 {
		t.Errorf("Subset() labels = %v, want [1 1]", sub.Labels())
	}

	if _, err := ds.Subset(nil); err == nil {
		t.Error("Subset(nil) expected error, got nil")
	}
	if _, err := ds.Subset([]int{7}); err == nil {
		t.Error("Subset(out of range) expected error, got nil")
	}
}

func TestWithFeatures(t *testing.T) {
	ds, err := New(mat.NewDense(2, 2, []float64{1, 2, 3, 4}), []float64{0, 1}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	next, err := ds.WithFeatures(mat.NewDense(2, 2, []float64{5, 6, 7, 8}))
	if err != nil {
		t.Fatalf("WithFeatures() error = %v", err)
	}
	if next.X().At(0, 0) != 5 {
		t.Errorf("WithFeatures() did not take replacement matrix")
	}
	if ds.X().At(0, 0) != 1 {
		t.Errorf("WithFeatures() mutated the original dataset")
	}

	if _, err := ds.WithFeatures(mat.NewDense(3, 2, nil)); err == nil {
		t.Error("WithFeatures(wrong rows) expected error, got nil")
	}
}

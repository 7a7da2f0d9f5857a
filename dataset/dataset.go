// Package dataset provides the in-memory container for tabular
// classification data: a numeric feature matrix paired with a binary
// label vector, plus deterministic train/test and k-fold partitioning.
//
// Missing feature values are represented by NaN until an imputer fills
// them in. Datasets are value objects: operations return new Datasets
// rather than mutating in place.
package dataset

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/elnet-ml/elnet/pkg/errors"
)

// Missing is the sentinel for an absent feature value.
var Missing = math.NaN()

// IsMissing reports whether v is the missing-value sentinel.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Dataset holds a feature matrix, one label per row, and optional
// feature names. It is read-only after construction.
type Dataset struct {
	x     *mat.Dense
	y     []float64
	names []string
}

// New validates and wraps a feature matrix and label vector.
// The label vector must have one entry per row and contain at most two
// distinct values; labels may not be NaN. Feature values may be NaN
// (missing) prior to imputation.
func New(X *mat.Dense, y []float64, names []string) (*Dataset, error) {
	if X == nil {
		return nil, errors.NewValueError("dataset.New", "feature matrix is nil")
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewValueError("dataset.New", "empty feature matrix")
	}
	if len(y) != r {
		return nil, errors.NewDimensionError("dataset.New", r, len(y), 0)
	}
	if names != nil && len(names) != c {
		return nil, errors.NewDimensionError("dataset.New", c, len(names), 1)
	}

	distinct := map[float64]struct{}{}
	for _, label := range y {
		if math.IsNaN(label) {
			return nil, errors.NewValueError("dataset.New", "label vector contains NaN")
		}
		distinct[label] = struct{}{}
		if len(distinct) > 2 {
			return nil, errors.NewValueError("dataset.New", "labels must be drawn from at most two values")
		}
	}

	ds := &Dataset{
		x: mat.DenseCopyOf(X),
		y: append([]float64(nil), y...),
	}
	if names != nil {
		ds.names = append([]string(nil), names...)
	}
	return ds, nil
}

// Rows returns the number of rows.
func (d *Dataset) Rows() int {
	r, _ := d.x.Dims()
	return r
}

// NumFeatures returns the number of feature columns.
func (d *Dataset) NumFeatures() int {
	_, c := d.x.Dims()
	return c
}

// X returns the feature matrix. Callers must not mutate it.
func (d *Dataset) X() *mat.Dense {
	return d.x
}

// Labels returns the label vector. Callers must not mutate it.
func (d *Dataset) Labels() []float64 {
	return d.y
}

// LabelVector returns the labels as a column vector.
func (d *Dataset) LabelVector() *mat.VecDense {
	return mat.NewVecDense(len(d.y), append([]float64(nil), d.y...))
}

// Names returns the feature names, or nil if none were provided.
func (d *Dataset) Names() []string {
	return d.names
}

// Classes returns the distinct label values in ascending order.
func (d *Dataset) Classes() []float64 {
	distinct := map[float64]struct{}{}
	for _, label := range d.y {
		distinct[label] = struct{}{}
	}
	classes := make([]float64, 0, len(distinct))
	for label := range distinct {
		classes = append(classes, label)
	}
	// at most two entries, a single compare sorts them
	if len(classes) == 2 && classes[0] > classes[1] {
		classes[0], classes[1] = classes[1], classes[0]
	}
	return classes
}

// HasMissing reports whether any feature value is missing.
func (d *Dataset) HasMissing() bool {
	return d.MissingCount() > 0
}

// MissingCount returns the number of missing feature values.
func (d *Dataset) MissingCount() int {
	r, c := d.x.Dims()
	count := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if IsMissing(d.x.At(i, j)) {
				count++
			}
		}
	}
	return count
}

// Clone returns a deep copy.
func (d *Dataset) Clone() *Dataset {
	clone := &Dataset{
		x: mat.DenseCopyOf(d.x),
		y: append([]float64(nil), d.y...),
	}
	if d.names != nil {
		clone.names = append([]string(nil), d.names...)
	}
	return clone
}

// Subset returns a new Dataset containing the given rows in order.
func (d *Dataset) Subset(indices []int) (*Dataset, error) {
	if len(indices) == 0 {
		return nil, errors.NewInsufficientDataError("Dataset.Subset", "at least 1 row", 0, "")
	}
	r, c := d.x.Dims()
	x := mat.NewDense(len(indices), c, nil)
	y := make([]float64, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= r {
			return nil, errors.NewValueError("Dataset.Subset", "row index out of range")
		}
		for j := 0; j < c; j++ {
			x.Set(i, j, d.x.At(idx, j))
		}
		y[i] = d.y[idx]
	}
	sub := &Dataset{x: x, y: y}
	if d.names != nil {
		sub.names = append([]string(nil), d.names...)
	}
	return sub, nil
}

// WithFeatures returns a new Dataset sharing this one's labels and
// names but carrying a replacement feature matrix of identical shape.
// Used by transformers that produce a modified copy of the features.
func (d *Dataset) WithFeatures(X *mat.Dense) (*Dataset, error) {
	r, c := d.x.Dims()
	xr, xc := X.Dims()
	if xr != r {
		return nil, errors.NewDimensionError("Dataset.WithFeatures", r, xr, 0)
	}
	if xc != c {
		return nil, errors.NewDimensionError("Dataset.WithFeatures", c, xc, 1)
	}
	next := &Dataset{
		x: mat.DenseCopyOf(X),
		y: append([]float64(nil), d.y...),
	}
	if d.names != nil {
		next.names = append([]string(nil), d.names...)
	}
	return next, nil
}

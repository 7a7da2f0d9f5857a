// Package preprocessing provides feature scaling fit on a reference
// set (normally the training partition) and reapplied unchanged to any
// other matrix. Applying parameters fit on one set to another may
// produce values outside [0,1] or beyond the reference range; that is
// expected for held-out data, not an error.
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/elnet-ml/elnet/core/model"
	"github.com/elnet-ml/elnet/pkg/errors"
)

// Transformer is the interface shared by the scalers.
type Transformer interface {
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (mat.Matrix, error)
	InverseTransform(X mat.Matrix) (mat.Matrix, error)
}

const zeroVarianceTol = 1e-12

// StandardScaler centers each feature on the reference mean and scales
// by the reference standard deviation.
//
// A zero-variance feature cannot be scaled. By default it is left
// unscaled (scale 1) and a DegenerateFeatureWarning is emitted; with
// strict mode the Fit fails with a DegenerateFeatureError.
type StandardScaler struct {
	state *model.StateManager

	// Mean holds each feature's reference mean.
	Mean []float64
	// Scale holds each feature's reference standard deviation, with
	// zero-variance features forced to 1.
	Scale []float64

	strict       bool
	featureNames []string
}

// StandardScalerOption configures a StandardScaler.
type StandardScalerOption func(*StandardScaler)

// WithStrictVariance makes Fit fail on zero-variance features instead
// of leaving them unscaled.
func WithStrictVariance() StandardScalerOption {
	return func(s *StandardScaler) {
		s.strict = true
	}
}

// WithFeatureNames attaches names used in degenerate-feature warnings.
func WithFeatureNames(names []string) StandardScalerOption {
	return func(s *StandardScaler) {
		s.featureNames = names
	}
}

// NewStandardScaler creates a StandardScaler.
func NewStandardScaler(opts ...StandardScalerOption) *StandardScaler {
	s := &StandardScaler{state: model.NewStateManager()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fit computes per-feature mean and standard deviation from the
// reference matrix.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "StandardScaler.Fit")
	}

	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		s.Mean[j] = sum / float64(r)
	}

	for j := 0; j < c; j++ {
		sumSquares := 0.0
		for i := 0; i < r; i++ {
			diff := X.At(i, j) - s.Mean[j]
			sumSquares += diff * diff
		}
		variance := sumSquares / float64(r)
		s.Scale[j] = math.Sqrt(variance)

		if s.Scale[j] < zeroVarianceTol {
			if s.strict {
				return errors.NewDegenerateFeatureError("StandardScaler.Fit", j)
			}
			name := ""
			if s.featureNames != nil && j < len(s.featureNames) {
				name = s.featureNames[j]
			}
			errors.Warn(errors.NewDegenerateFeatureWarning(j, name))
			s.Scale[j] = 1.0
		}
	}

	s.state.SetDimensions(c, r)
	s.state.SetFitted()
	return nil
}

// Transform standardizes X using the reference parameters.
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.state.RequireFitted("StandardScaler", "Transform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	nFeatures, _ := s.state.GetDimensions()
	if c != nFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", nFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}
	return result, nil
}

// FitTransform fits on X and transforms it.
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform maps standardized values back to the original scale.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.state.RequireFitted("StandardScaler", "InverseTransform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	nFeatures, _ := s.state.GetDimensions()
	if c != nFeatures {
		return nil, errors.NewDimensionError("StandardScaler.InverseTransform", nFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)*s.Scale[j]+s.Mean[j])
		}
	}
	return result, nil
}

// String returns a short description of the scaler.
func (s *StandardScaler) String() string {
	if !s.state.IsFitted() {
		return "StandardScaler()"
	}
	nFeatures, _ := s.state.GetDimensions()
	return fmt.Sprintf("StandardScaler(n_features=%d)", nFeatures)
}

// MinMaxScaler rescales each feature to [0,1] using the reference
// set's minimum and maximum. Constant features map to 0.
type MinMaxScaler struct {
	state *model.StateManager

	// DataMin holds each feature's reference minimum.
	DataMin []float64
	// DataMax holds each feature's reference maximum.
	DataMax []float64
	// Scale holds max-min per feature, with constant features forced to 1.
	Scale []float64
}

// NewMinMaxScaler creates a MinMaxScaler.
func NewMinMaxScaler() *MinMaxScaler {
	return &MinMaxScaler{state: model.NewStateManager()}
}

// Fit computes per-feature min and max from the reference matrix.
func (m *MinMaxScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "MinMaxScaler.Fit")
	}

	m.DataMin = make([]float64, c)
	m.DataMax = make([]float64, c)
	m.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		min := X.At(0, j)
		max := X.At(0, j)
		for i := 1; i < r; i++ {
			val := X.At(i, j)
			if val < min {
				min = val
			}
			if val > max {
				max = val
			}
		}

		m.DataMin[j] = min
		m.DataMax[j] = max
		m.Scale[j] = max - min
		if m.Scale[j] < zeroVarianceTol {
			m.Scale[j] = 1.0
		}
	}

	m.state.SetDimensions(c, r)
	m.state.SetFitted()
	return nil
}

// Transform rescales X using the reference parameters. Held-out values
// beyond the reference range map outside [0,1].
func (m *MinMaxScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.state.RequireFitted("MinMaxScaler", "Transform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	nFeatures, _ := m.state.GetDimensions()
	if c != nFeatures {
		return nil, errors.NewDimensionError("MinMaxScaler.Transform", nFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, (X.At(i, j)-m.DataMin[j])/m.Scale[j])
		}
	}
	return result, nil
}

// FitTransform fits on X and transforms it.
func (m *MinMaxScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// InverseTransform maps rescaled values back to the original range.
func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.state.RequireFitted("MinMaxScaler", "InverseTransform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	nFeatures, _ := m.state.GetDimensions()
	if c != nFeatures {
		return nil, errors.NewDimensionError("MinMaxScaler.InverseTransform", nFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)*m.Scale[j]+m.DataMin[j])
		}
	}
	return result, nil
}

// String returns a short description of the scaler.
func (m *MinMaxScaler) String() string {
	if !m.state.IsFitted() {
		return "MinMaxScaler()"
	}
	nFeatures, _ := m.state.GetDimensions()
	return fmt.Sprintf("MinMaxScaler(n_features=%d)", nFeatures)
}

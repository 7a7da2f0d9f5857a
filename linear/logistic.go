// Package linear implements elastic-net penalized logistic regression
// fit by cyclic coordinate descent, in the manner of glmnet: each
// outer iteration forms the quadratic approximation of the negative
// log-likelihood at the current estimate and sweeps every coordinate
// once with soft-thresholding, and lambda paths are fit from the
// largest penalty down with warm starts.
package linear

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/elnet-ml/elnet/core/model"
	"github.com/elnet-ml/elnet/pkg/errors"
)

const (
	// DefaultAlpha is pure lasso.
	DefaultAlpha = 1.0
	// DefaultLambda is the regularization strength used when none is
	// configured.
	DefaultLambda = 0.01
	// DefaultTolerance is the convergence tolerance on the maximum
	// absolute coefficient change per sweep.
	DefaultTolerance = 1e-7
	// DefaultMaxIter is the iteration cap.
	DefaultMaxIter = 1000

	// probClamp bounds fitted probabilities away from 0 and 1 so the
	// working weights in the quadratic approximation stay positive.
	probClamp = 1e-5
)

// ElasticNetLogistic is a binary classifier minimizing
//
//	-(1/n) Σ [y·log(p) + (1-y)·log(1-p)] + λ(α‖β‖₁ + (1-α)/2·‖β‖₂²)
//
// with p = sigmoid(intercept + X·β). The intercept is unpenalized.
// With α=1 some coefficients are driven exactly to zero; with α=0 all
// are shrunk but none zeroed.
type ElasticNetLogistic struct {
	state *model.StateManager

	alpha   float64
	lambda  float64
	tol     float64
	maxIter int

	intercept float64
	coef      []float64
	classes   [2]float64 // original label values, ascending; classes[1] is coded 1
	nIter     int
	converged bool
}

// NewElasticNetLogistic creates a classifier with the given options.
func NewElasticNetLogistic(opts ...Option) (*ElasticNetLogistic, error) {
	clf := &ElasticNetLogistic{
		state:   model.NewStateManager(),
		alpha:   DefaultAlpha,
		lambda:  DefaultLambda,
		tol:     DefaultTolerance,
		maxIter: DefaultMaxIter,
	}
	for _, opt := range opts {
		opt(clf)
	}

	if clf.alpha < 0 || clf.alpha > 1 {
		return nil, errors.NewValueError("linear.NewElasticNetLogistic", "alpha must be in [0, 1]")
	}
	if clf.lambda < 0 {
		return nil, errors.NewValueError("linear.NewElasticNetLogistic", "lambda must be non-negative")
	}
	if clf.tol <= 0 {
		return nil, errors.NewValueError("linear.NewElasticNetLogistic", "tol must be positive")
	}
	if clf.maxIter < 1 {
		return nil, errors.NewValueError("linear.NewElasticNetLogistic", "maxIter must be at least 1")
	}
	return clf, nil
}

// Fit trains the classifier on X (n×p) and the label column vector y.
// Labels must take exactly two distinct values; the larger value is
// treated as the coded 1 class.
func (clf *ElasticNetLogistic) Fit(X, y mat.Matrix) error {
	xcols, y01, err := clf.validateAndCode(X, y)
	if err != nil {
		return err
	}
	nSamples, nFeatures := X.Dims()

	beta := make([]float64, nFeatures)
	iters, converged, err := clf.descend(xcols, y01, beta, 0.0, clf.lambda)
	if err != nil {
		return err
	}

	clf.nIter = iters
	clf.converged = converged
	if !converged {
		errors.Warn(errors.NewConvergenceWarning("ElasticNetLogistic", clf.maxIter, clf.tol))
	}

	clf.state.SetDimensions(nFeatures, nSamples)
	clf.state.SetFitted()
	return nil
}

// validateAndCode checks shapes, extracts the two classes and returns
// the feature columns plus labels recoded to 0/1.
func (clf *ElasticNetLogistic) validateAndCode(X, y mat.Matrix) ([][]float64, []float64, error) {
	nSamples, nFeatures := X.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "ElasticNetLogistic.Fit")
	}
	yRows, yCols := y.Dims()
	if yRows != nSamples {
		return nil, nil, errors.NewDimensionError("ElasticNetLogistic.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return nil, nil, errors.NewValueError("ElasticNetLogistic.Fit", "y must be a column vector")
	}

	distinct := make(map[float64]struct{}, 2)
	for i := 0; i < nSamples; i++ {
		label := y.At(i, 0)
		if math.IsNaN(label) {
			return nil, nil, errors.NewValueError("ElasticNetLogistic.Fit", "labels contain NaN")
		}
		distinct[label] = struct{}{}
		if len(distinct) > 2 {
			return nil, nil, errors.NewValueError("ElasticNetLogistic.Fit", "labels must take exactly two distinct values")
		}
	}
	if len(distinct) != 2 {
		return nil, nil, errors.NewValueError("ElasticNetLogistic.Fit", "labels must take exactly two distinct values")
	}

	classes := make([]float64, 0, 2)
	for label := range distinct {
		classes = append(classes, label)
	}
	if classes[0] > classes[1] {
		classes[0], classes[1] = classes[1], classes[0]
	}
	clf.classes[0], clf.classes[1] = classes[0], classes[1]

	y01 := make([]float64, nSamples)
	for i := 0; i < nSamples; i++ {
		if y.At(i, 0) == clf.classes[1] {
			y01[i] = 1.0
		}
	}

	xcols := make([][]float64, nFeatures)
	for j := 0; j < nFeatures; j++ {
		xcols[j] = mat.Col(nil, j, X)
	}
	return xcols, y01, nil
}

// descend runs the coordinate descent at the given lambda, starting
// from beta and intercept (warm start). beta is updated in place; the
// final solution is stored on the receiver.
func (clf *ElasticNetLogistic) descend(xcols [][]float64, y01 []float64, beta []float64, intercept, lambda float64) (iters int, converged bool, err error) {
	n := len(y01)
	p := len(xcols)
	nf := float64(n)

	l1 := lambda * clf.alpha
	l2 := lambda * (1.0 - clf.alpha)

	// linear predictor, maintained incrementally across updates
	eta := make([]float64, n)
	for i := range eta {
		eta[i] = intercept
	}
	for j := 0; j < p; j++ {
		if beta[j] != 0 {
			floats.AddScaled(eta, beta[j], xcols[j])
		}
	}

	w := make([]float64, n)
	resid := make([]float64, n) // working residual z - eta

	for iter := 0; iter < clf.maxIter; iter++ {
		iters = iter + 1

		// quadratic approximation at the current estimate
		for i := 0; i < n; i++ {
			pi := sigmoid(eta[i])
			pi = errors.ClipValue(pi, probClamp, 1.0-probClamp)
			w[i] = pi * (1.0 - pi)
			resid[i] = (y01[i] - pi) / w[i]
		}

		maxChange := 0.0

		// unpenalized intercept update
		num := 0.0
		den := 0.0
		for i := 0; i < n; i++ {
			num += w[i] * resid[i]
			den += w[i]
		}
		db := num / den
		intercept += db
		for i := 0; i < n; i++ {
			eta[i] += db
			resid[i] -= db
		}
		maxChange = math.Abs(db)

		// cyclic coordinate sweep with soft-thresholding
		for j := 0; j < p; j++ {
			col := xcols[j]

			var xwr, xw2 float64
			for i := 0; i < n; i++ {
				wx := w[i] * col[i]
				xwr += wx * resid[i]
				xw2 += wx * col[i]
			}
			xwr /= nf
			xw2 /= nf

			betaNext := SoftThreshold(xwr+xw2*beta[j], l1) / (xw2 + l2)
			d := betaNext - beta[j]
			if d != 0 {
				for i := 0; i < n; i++ {
					eta[i] += d * col[i]
					resid[i] -= d * col[i]
				}
				beta[j] = betaNext
			}
			if math.Abs(d) > maxChange {
				maxChange = math.Abs(d)
			}
		}

		if err := errors.CheckNumericalStability("ElasticNetLogistic.Fit", beta, iter); err != nil {
			return iters, false, err
		}

		if maxChange < clf.tol {
			converged = true
			break
		}
	}

	clf.intercept = intercept
	clf.coef = append([]float64(nil), beta...)
	return iters, converged, nil
}

// DecisionFunction returns intercept + X·β per row.
func (clf *ElasticNetLogistic) DecisionFunction(X mat.Matrix) (*mat.VecDense, error) {
	if err := clf.state.RequireFitted("ElasticNetLogistic", "DecisionFunction"); err != nil {
		return nil, err
	}
	nSamples, nFeatures := X.Dims()
	wantFeatures, _ := clf.state.GetDimensions()
	if nFeatures != wantFeatures {
		return nil, errors.NewDimensionError("ElasticNetLogistic.DecisionFunction", wantFeatures, nFeatures, 1)
	}

	scores := mat.NewVecDense(nSamples, nil)
	for i := 0; i < nSamples; i++ {
		z := clf.intercept
		for j := 0; j < nFeatures; j++ {
			z += X.At(i, j) * clf.coef[j]
		}
		scores.SetVec(i, z)
	}
	return scores, nil
}

// PredictProba returns the probability of the positive (larger-valued)
// class per row.
func (clf *ElasticNetLogistic) PredictProba(X mat.Matrix) (*mat.VecDense, error) {
	scores, err := clf.DecisionFunction(X)
	if err != nil {
		return nil, err
	}
	for i := 0; i < scores.Len(); i++ {
		scores.SetVec(i, sigmoid(scores.AtVec(i)))
	}
	return scores, nil
}

// Predict thresholds the positive-class probability at 0.5 and returns
// the original label values.
func (clf *ElasticNetLogistic) Predict(X mat.Matrix) (*mat.VecDense, error) {
	probs, err := clf.PredictProba(X)
	if err != nil {
		return nil, err
	}
	for i := 0; i < probs.Len(); i++ {
		if probs.AtVec(i) >= 0.5 {
			probs.SetVec(i, clf.classes[1])
		} else {
			probs.SetVec(i, clf.classes[0])
		}
	}
	return probs, nil
}

// Score returns the mean accuracy of Predict(X) against y.
func (clf *ElasticNetLogistic) Score(X, y mat.Matrix) (float64, error) {
	predictions, err := clf.Predict(X)
	if err != nil {
		return 0, err
	}
	yRows, _ := y.Dims()
	if yRows != predictions.Len() {
		return 0, errors.NewDimensionError("ElasticNetLogistic.Score", predictions.Len(), yRows, 0)
	}

	correct := 0
	for i := 0; i < yRows; i++ {
		if predictions.AtVec(i) == y.At(i, 0) {
			correct++
		}
	}
	return float64(correct) / float64(yRows), nil
}

// Intercept returns the fitted intercept.
func (clf *ElasticNetLogistic) Intercept() float64 {
	return clf.intercept
}

// Coef returns a copy of the fitted coefficients, one per feature.
func (clf *ElasticNetLogistic) Coef() []float64 {
	return append([]float64(nil), clf.coef...)
}

// Classes returns the two label values in ascending order.
func (clf *ElasticNetLogistic) Classes() [2]float64 {
	return clf.classes
}

// NIter returns the number of coordinate sweeps the last fit ran.
func (clf *ElasticNetLogistic) NIter() int {
	return clf.nIter
}

// Converged reports whether the last fit reached tolerance before the
// iteration cap.
func (clf *ElasticNetLogistic) Converged() bool {
	return clf.converged
}

// Alpha returns the elastic-net mixing parameter.
func (clf *ElasticNetLogistic) Alpha() float64 {
	return clf.alpha
}

// Lambda returns the regularization strength.
func (clf *ElasticNetLogistic) Lambda() float64 {
	return clf.lambda
}

// SoftThreshold shrinks x toward zero by gamma, returning 0 when
// |x| <= gamma.
func SoftThreshold(x, gamma float64) float64 {
	res := math.Max(0, math.Abs(x)-gamma)
	if math.Signbit(x) {
		return -res
	}
	return res
}

// sigmoid computes the logistic function with overflow protection.
func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + errors.StabilizeExp(-z))
}

package linear

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/elnet-ml/elnet/pkg/errors"
)

// PathEntry is the solution at one lambda along a regularization path.
type PathEntry struct {
	Lambda     float64
	Intercept  float64
	Coef       []float64
	Iterations int
	Converged  bool
}

// FitPath fits the classifier at every lambda in the grid, from the
// largest penalty down, warm-starting each fit from the previous
// solution. Entries are returned in that decreasing-lambda order, and
// the receiver is left fitted at the last (smallest) lambda.
//
// The classifier's configured lambda is ignored here; alpha, tolerance
// and the iteration cap apply to every fit.
func (clf *ElasticNetLogistic) FitPath(X, y mat.Matrix, lambdas []float64) ([]PathEntry, error) {
	if len(lambdas) == 0 {
		return nil, errors.NewValueError("ElasticNetLogistic.FitPath", "lambda grid is empty")
	}
	for _, lambda := range lambdas {
		if lambda < 0 || math.IsNaN(lambda) {
			return nil, errors.NewValueError("ElasticNetLogistic.FitPath", "lambdas must be non-negative")
		}
	}

	xcols, y01, err := clf.validateAndCode(X, y)
	if err != nil {
		return nil, err
	}
	nSamples, nFeatures := X.Dims()

	grid := append([]float64(nil), lambdas...)
	sort.Sort(sort.Reverse(sort.Float64Slice(grid)))

	beta := make([]float64, nFeatures)
	intercept := 0.0
	entries := make([]PathEntry, 0, len(grid))

	for _, lambda := range grid {
		iters, converged, err := clf.descend(xcols, y01, beta, intercept, lambda)
		if err != nil {
			return nil, err
		}
		if !converged {
			errors.Warn(errors.NewConvergenceWarning("ElasticNetLogistic", clf.maxIter, clf.tol))
		}
		intercept = clf.intercept

		entries = append(entries, PathEntry{
			Lambda:     lambda,
			Intercept:  clf.intercept,
			Coef:       append([]float64(nil), beta...),
			Iterations: iters,
			Converged:  converged,
		})

		clf.nIter = iters
		clf.converged = converged
		clf.lambda = lambda
	}

	clf.state.SetDimensions(nFeatures, nSamples)
	clf.state.SetFitted()
	return entries, nil
}

// GeometricLambdas returns count lambdas spaced geometrically from max
// down to min inclusive.
func GeometricLambdas(max, min float64, count int) []float64 {
	if count <= 1 || min <= 0 || max <= min {
		return []float64{max}
	}
	lambdas := make([]float64, count)
	ratio := math.Pow(min/max, 1.0/float64(count-1))
	lambda := max
	for i := 0; i < count; i++ {
		lambdas[i] = lambda
		lambda *= ratio
	}
	lambdas[count-1] = min
	return lambdas
}

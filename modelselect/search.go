// Package modelselect selects elastic-net hyperparameters by k-fold
// cross-validation: every (alpha, lambda) grid point is fit once per
// fold, held-out accuracies are averaged, and the champion point is
// refit on the full training set.
//
// Each (grid point, fold) fit is an independent unit of work with no
// shared mutable state; units run in parallel and are merged by a
// plain reduction afterwards.
package modelselect

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/elnet-ml/elnet/core/parallel"
	"github.com/elnet-ml/elnet/dataset"
	"github.com/elnet-ml/elnet/linear"
	"github.com/elnet-ml/elnet/pkg/errors"
)

const (
	// DefaultFolds is the fold count used when none is configured.
	DefaultFolds = 10

	// accuracyTol treats mean accuracies this close as tied; ties go
	// to the larger lambda, preferring the simpler model.
	accuracyTol = 1e-9
)

// Point is one (alpha, lambda) hyperparameter combination. Immutable
// once generated.
type Point struct {
	Alpha  float64
	Lambda float64
}

// PointResult aggregates the fold-level accuracies for one grid point.
type PointResult struct {
	Point          Point
	FoldAccuracies []float64
	MeanAccuracy   float64
	StdAccuracy    float64
}

// Result is the outcome of a grid search.
type Result struct {
	// Points holds one aggregate per grid point, in grid order.
	Points []PointResult
	// Champion is the selected hyperparameter point.
	Champion Point
	// Model is the champion refit on the full training set.
	Model *linear.ElasticNetLogistic
	// Fits is the number of cross-validation fits performed,
	// |grid| x folds, excluding the final refit.
	Fits int
}

// GridSearch runs cross-validated selection over an (alpha, lambda)
// grid.
type GridSearch struct {
	alphas  []float64
	lambdas []float64
	folds   int
	seed    int64
	tol     float64
	maxIter int
}

// GridSearchOption configures a GridSearch.
type GridSearchOption func(*GridSearch)

// WithFolds sets the fold count K.
func WithFolds(k int) GridSearchOption {
	return func(g *GridSearch) {
		g.folds = k
	}
}

// WithSeed sets the seed for the fold assignment.
func WithSeed(seed int64) GridSearchOption {
	return func(g *GridSearch) {
		g.seed = seed
	}
}

// WithFitTol sets the convergence tolerance passed to every fit.
func WithFitTol(tol float64) GridSearchOption {
	return func(g *GridSearch) {
		g.tol = tol
	}
}

// WithFitMaxIter sets the iteration cap passed to every fit.
func WithFitMaxIter(maxIter int) GridSearchOption {
	return func(g *GridSearch) {
		g.maxIter = maxIter
	}
}

// NewGridSearch creates a grid search over the given alpha and lambda
// grids.
func NewGridSearch(alphas, lambdas []float64, opts ...GridSearchOption) (*GridSearch, error) {
	g := &GridSearch{
		alphas:  append([]float64(nil), alphas...),
		lambdas: append([]float64(nil), lambdas...),
		folds:   DefaultFolds,
		tol:     linear.DefaultTolerance,
		maxIter: linear.DefaultMaxIter,
	}
	for _, opt := range opts {
		opt(g)
	}

	if len(g.alphas) == 0 {
		return nil, errors.NewValueError("modelselect.NewGridSearch", "alpha grid is empty")
	}
	if len(g.lambdas) == 0 {
		return nil, errors.NewValueError("modelselect.NewGridSearch", "lambda grid is empty")
	}
	for _, alpha := range g.alphas {
		if alpha < 0 || alpha > 1 {
			return nil, errors.NewValueError("modelselect.NewGridSearch", "alphas must be in [0, 1]")
		}
	}
	for _, lambda := range g.lambdas {
		if lambda <= 0 {
			return nil, errors.NewValueError("modelselect.NewGridSearch", "lambdas must be positive")
		}
	}
	if g.folds < 2 {
		return nil, errors.NewValueError("modelselect.NewGridSearch", "fold count must be at least 2")
	}
	return g, nil
}

// Run executes the search on ds and returns the per-point aggregates,
// the champion point and the refit champion model.
func (g *GridSearch) Run(ds *dataset.Dataset) (*Result, error) {
	folds, err := dataset.KFold(ds.Rows(), g.folds, g.seed)
	if err != nil {
		return nil, err
	}

	points := make([]Point, 0, len(g.alphas)*len(g.lambdas))
	for _, alpha := range g.alphas {
		for _, lambda := range g.lambdas {
			points = append(points, Point{Alpha: alpha, Lambda: lambda})
		}
	}

	// one independent unit per (point, fold) pair
	units := len(points) * g.folds
	accuracies := make([]float64, units)
	unitErrs := make([]error, units)

	parallel.Parallelize(units, func(start, end int) {
		for u := start; u < end; u++ {
			pointIdx := u / g.folds
			foldIdx := u % g.folds
			accuracies[u], unitErrs[u] = g.fitUnit(ds, points[pointIdx], folds[foldIdx])
		}
	})

	for _, err := range unitErrs {
		if err != nil {
			return nil, err
		}
	}

	result := &Result{
		Points: make([]PointResult, len(points)),
		Fits:   units,
	}
	bestIdx := 0
	for p, point := range points {
		foldAccs := make([]float64, g.folds)
		copy(foldAccs, accuracies[p*g.folds:(p+1)*g.folds])

		mean, std := meanStd(foldAccs)
		result.Points[p] = PointResult{
			Point:          point,
			FoldAccuracies: foldAccs,
			MeanAccuracy:   mean,
			StdAccuracy:    std,
		}

		if p == 0 {
			continue
		}
		best := result.Points[bestIdx]
		switch {
		case mean > best.MeanAccuracy+accuracyTol:
			bestIdx = p
		case math.Abs(mean-best.MeanAccuracy) <= accuracyTol && point.Lambda > best.Point.Lambda:
			bestIdx = p
		}
	}
	result.Champion = result.Points[bestIdx].Point

	// refit once on the full training set at the champion point
	model, err := g.fit(ds.X(), ds.LabelVector(), result.Champion)
	if err != nil {
		return nil, err
	}
	result.Model = model

	return result, nil
}

// fitUnit fits one grid point with one fold held out and returns the
// held-out accuracy.
func (g *GridSearch) fitUnit(ds *dataset.Dataset, point Point, fold dataset.Fold) (float64, error) {
	train, err := ds.Subset(fold.Train)
	if err != nil {
		return 0, err
	}
	test, err := ds.Subset(fold.Test)
	if err != nil {
		return 0, err
	}

	clf, err := g.fit(train.X(), train.LabelVector(), point)
	if err != nil {
		return 0, err
	}
	return clf.Score(test.X(), test.LabelVector())
}

func (g *GridSearch) fit(X, y mat.Matrix, point Point) (*linear.ElasticNetLogistic, error) {
	clf, err := linear.NewElasticNetLogistic(
		linear.WithAlpha(point.Alpha),
		linear.WithLambda(point.Lambda),
		linear.WithTol(g.tol),
		linear.WithMaxIter(g.maxIter),
	)
	if err != nil {
		return nil, err
	}
	if err := clf.Fit(X, y); err != nil {
		return nil, err
	}
	return clf, nil
}

func meanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	if len(values) < 2 {
		return mean, 0
	}
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return mean, math.Sqrt(sumSq / float64(len(values)-1))
}

package linear

// Option is a function that configures ElasticNetLogistic
type Option func(*ElasticNetLogistic)

// WithAlpha sets the elastic-net mixing parameter in [0,1].
// 1 is pure L1 (lasso), 0 is pure L2 (ridge).
func WithAlpha(alpha float64) Option {
	return func(clf *ElasticNetLogistic) {
		clf.alpha = alpha
	}
}

// WithLambda sets the regularization strength.
func WithLambda(lambda float64) Option {
	return func(clf *ElasticNetLogistic) {
		clf.lambda = lambda
	}
}

// WithTol sets the convergence tolerance on the maximum absolute
// coefficient change per sweep.
func WithTol(tol float64) Option {
	return func(clf *ElasticNetLogistic) {
		clf.tol = tol
	}
}

// WithMaxIter sets the iteration cap. Exceeding it emits a
// ConvergenceWarning; the best iterate so far is kept.
func WithMaxIter(maxIter int) Option {
	return func(clf *ElasticNetLogistic) {
		clf.maxIter = maxIter
	}
}

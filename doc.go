// Package elnet provides cross-validated elastic-net classification for Go.
//
// elnet fits L1/L2-penalized logistic regression by cyclic coordinate
// descent, selects regularization hyperparameters by k-fold
// cross-validated accuracy, and reports held-out confusion-matrix
// metrics. The design follows the glmnet family of tools: lambda paths
// are fit from the largest penalty down, warm-starting each fit from
// the previous solution.
//
// # Packages
//
//   - dataset: feature-matrix/label container, train/test split, k-fold assignment
//   - impute: distance-weighted k-nearest-neighbor imputation
//   - preprocessing: standardization and min-max scaling
//   - linear: elastic-net penalized logistic regression
//   - modelselect: cross-validated (alpha, lambda) grid search
//   - metrics: confusion counts, accuracy, precision, recall
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/elnet-ml/elnet/dataset"
//	    "github.com/elnet-ml/elnet/linear"
//	    "github.com/elnet-ml/elnet/modelselect"
//	)
//
//	func main() {
//	    ds, err := dataset.New(X, y, nil)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    search, err := modelselect.NewGridSearch(
//	        []float64{1.0},
//	        linear.GeometricLambdas(1.0, 1e-4, 20),
//	        modelselect.WithFolds(10),
//	        modelselect.WithSeed(42),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    result, err := search.Run(ds)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("champion: alpha=%g lambda=%g\n",
//	        result.Champion.Alpha, result.Champion.Lambda)
//	}
//
// Shape and label errors are fatal at the API boundary. Numerical
// non-convergence and undefined metrics are routed through the warning
// handler in pkg/errors rather than failing the run.
package elnet

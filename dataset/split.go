package dataset

import (
	"math/rand/v2"

	"github.com/elnet-ml/elnet/pkg/errors"
)

// Fold holds the row indices for one cross-validation fold: Test is
// the held-out block, Train is everything else.
type Fold struct {
	Train []int
	Test  []int
}

// TrainTestSplit partitions ds into train and test by assigning each
// row independently to train with the given probability. The split is
// deterministic for a fixed seed and row order, and the two partitions
// are disjoint and exhaustive.
func TrainTestSplit(ds *Dataset, fraction float64, seed int64) (train, test *Dataset, err error) {
	if fraction <= 0 || fraction >= 1 {
		return nil, nil, errors.NewValueError("dataset.TrainTestSplit", "fraction must be in (0, 1)")
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	n := ds.Rows()
	trainIdx := make([]int, 0, n)
	testIdx := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if rng.Float64() < fraction {
			trainIdx = append(trainIdx, i)
		} else {
			testIdx = append(testIdx, i)
		}
	}

	if len(trainIdx) == 0 {
		return nil, nil, errors.NewInsufficientDataError("dataset.TrainTestSplit", "non-empty train partition", 0, "")
	}
	if len(testIdx) == 0 {
		return nil, nil, errors.NewInsufficientDataError("dataset.TrainTestSplit", "non-empty test partition", 0, "")
	}

	train, err = ds.Subset(trainIdx)
	if err != nil {
		return nil, nil, err
	}
	test, err = ds.Subset(testIdx)
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

// KFold assigns n rows to k folds via a seeded shuffle followed by
// contiguous block assignment. Every row lands in exactly one test
// block, and fold sizes differ by at most one: the first n%k folds
// hold ceil(n/k) rows, the rest floor(n/k).
func KFold(n, k int, seed int64) ([]Fold, error) {
	if k < 2 {
		return nil, errors.NewValueError("dataset.KFold", "k must be at least 2")
	}
	if n < k {
		return nil, errors.NewInsufficientDataError("dataset.KFold", "at least k rows", n, "every fold must be non-empty")
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	rng.Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	folds := make([]Fold, k)
	foldSize := n / k
	remainder := n % k

	current := 0
	for f := 0; f < k; f++ {
		size := foldSize
		if f < remainder {
			size++
		}

		test := make([]int, size)
		copy(test, indices[current:current+size])

		train := make([]int, 0, n-size)
		train = append(train, indices[:current]...)
		train = append(train, indices[current+size:]...)

		folds[f] = Fold{Train: train, Test: test}
		current += size
	}

	return folds, nil
}

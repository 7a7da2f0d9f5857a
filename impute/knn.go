// Package impute fills missing feature values using a distance-weighted
// k-nearest-neighbor estimate computed over the complete-case rows.
package impute

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/elnet-ml/elnet/dataset"
	"github.com/elnet-ml/elnet/pkg/errors"
)

const (
	// DefaultNeighbors is the neighbor count used when none is configured.
	DefaultNeighbors = 5

	distanceEpsilon = 1e-12
	zeroScaleTol    = 1e-12
)

// KNNImputer estimates each missing value as the inverse-distance
// weighted average of that feature over the k nearest complete rows.
// Distances are Euclidean over standardized features, restricted to the
// dimensions observed in the incomplete row and normalized by the
// number of dimensions compared.
//
// The imputation is deterministic and depends only on row content, and
// it is idempotent on datasets without missing values.
type KNNImputer struct {
	k int
}

// KNNImputerOption configures a KNNImputer.
type KNNImputerOption func(*KNNImputer)

// WithNeighbors sets the neighbor count.
func WithNeighbors(k int) KNNImputerOption {
	return func(im *KNNImputer) {
		im.k = k
	}
}

// NewKNNImputer creates a KNNImputer.
func NewKNNImputer(opts ...KNNImputerOption) (*KNNImputer, error) {
	im := &KNNImputer{k: DefaultNeighbors}
	for _, opt := range opts {
		opt(im)
	}
	if im.k < 1 {
		return nil, errors.NewValueError("impute.NewKNNImputer", "neighbor count must be at least 1")
	}
	return im, nil
}

// FitTransform returns a new dataset with every missing feature value
// filled in. The input dataset is not mutated. If fewer than k complete
// rows exist all of them are used; with zero complete rows the
// imputation fails with an InsufficientDataError.
func (im *KNNImputer) FitTransform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if !ds.HasMissing() {
		return ds.Clone(), nil
	}

	X := ds.X()
	r, c := X.Dims()

	complete := make([]int, 0, r)
	incomplete := make([]int, 0)
	for i := 0; i < r; i++ {
		missing := false
		for j := 0; j < c; j++ {
			if dataset.IsMissing(X.At(i, j)) {
				missing = true
				break
			}
		}
		if missing {
			incomplete = append(incomplete, i)
		} else {
			complete = append(complete, i)
		}
	}

	if len(complete) == 0 {
		return nil, errors.NewInsufficientDataError("KNNImputer.FitTransform",
			"at least 1 complete row", 0, "every row has a missing value")
	}

	mean, scale := observedMoments(X, r, c)

	filled := mat.DenseCopyOf(X)
	for _, i := range incomplete {
		im.fillRow(filled, X, i, c, complete, mean, scale)
	}

	return ds.WithFeatures(filled)
}

// neighbor pairs a complete row index with its distance to the row
// being imputed.
type neighbor struct {
	row  int
	dist float64
}

func (im *KNNImputer) fillRow(filled *mat.Dense, X *mat.Dense, i, c int, complete []int, mean, scale []float64) {
	observed := make([]int, 0, c)
	for j := 0; j < c; j++ {
		if !dataset.IsMissing(X.At(i, j)) {
			observed = append(observed, j)
		}
	}

	// A row with no observed features has no distances to compare;
	// fall back to the per-feature mean of the complete rows.
	if len(observed) == 0 {
		for j := 0; j < c; j++ {
			sum := 0.0
			for _, ci := range complete {
				sum += X.At(ci, j)
			}
			filled.Set(i, j, sum/float64(len(complete)))
		}
		return
	}

	neighbors := make([]neighbor, len(complete))
	for n, ci := range complete {
		sum := 0.0
		for _, j := range observed {
			diff := (X.At(i, j) - X.At(ci, j)) / scale[j]
			sum += diff * diff
		}
		neighbors[n] = neighbor{row: ci, dist: math.Sqrt(sum / float64(len(observed)))}
	}

	sort.Slice(neighbors, func(a, b int) bool {
		if neighbors[a].dist != neighbors[b].dist {
			return neighbors[a].dist < neighbors[b].dist
		}
		return neighbors[a].row < neighbors[b].row
	})

	k := im.k
	if k > len(neighbors) {
		k = len(neighbors)
	}
	nearest := neighbors[:k]

	for j := 0; j < c; j++ {
		if !dataset.IsMissing(X.At(i, j)) {
			continue
		}
		weightSum := 0.0
		weighted := 0.0
		for _, nb := range nearest {
			w := 1.0 / (nb.dist + distanceEpsilon)
			weightSum += w
			weighted += w * X.At(nb.row, j)
		}
		filled.Set(i, j, weighted/weightSum)
	}
}

// observedMoments computes per-feature mean and standard deviation over
// the observed (non-missing) entries, used only to standardize the
// distance computation. Zero-variance features get scale 1.
func observedMoments(X *mat.Dense, r, c int) (mean, scale []float64) {
	mean = make([]float64, c)
	scale = make([]float64, c)
	for j := 0; j < c; j++ {
		sum := 0.0
		count := 0
		for i := 0; i < r; i++ {
			v := X.At(i, j)
			if dataset.IsMissing(v) {
				continue
			}
			sum += v
			count++
		}
		if count > 0 {
			mean[j] = sum / float64(count)
		}

		sumSquares := 0.0
		for i := 0; i < r; i++ {
			v := X.At(i, j)
			if dataset.IsMissing(v) {
				continue
			}
			diff := v - mean[j]
			sumSquares += diff * diff
		}
		if count > 0 {
			scale[j] = math.Sqrt(sumSquares / float64(count))
		}
		if scale[j] < zeroScaleTol {
			scale[j] = 1.0
		}
	}
	return mean, scale
}

package linear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elnet-ml/elnet/pkg/errors"
)

func TestFitPath(t *testing.T) {
	X, y := separableData(200, 17)

	clf, err := NewElasticNetLogistic(WithAlpha(1.0))
	require.NoError(t, err)

	lambdas := []float64{1e-4, 50, 0.1, 1} // deliberately unsorted
	entries, err := clf.FitPath(X, y, lambdas)
	require.NoError(t, err)
	require.Len(t, entries, len(lambdas))

	// entries come back in decreasing lambda order
	for i := 1; i < len(entries); i++ {
		assert.Greater(t, entries[i-1].Lambda, entries[i].Lambda)
	}

	// at the dominating penalty every coefficient is zero
	for j, c := range entries[0].Coef {
		assert.Zero(t, c, "coefficient %d at lambda=%v", j, entries[0].Lambda)
	}

	// the lightly penalized end recovers the boundary
	last := entries[len(entries)-1]
	assert.Greater(t, last.Coef[0], 0.0)
	assert.Greater(t, last.Coef[1], 0.0)

	// the receiver is left fitted at the smallest lambda
	assert.Equal(t, last.Lambda, clf.Lambda())
	score, err := clf.Score(X, y)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, score, 0.95)
}

func TestFitPathEntriesAreIndependent(t *testing.T) {
	X, y := separableData(100, 29)

	clf, err := NewElasticNetLogistic()
	require.NoError(t, err)

	entries, err := clf.FitPath(X, y, []float64{1, 0.01})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// each entry holds its own coefficient copy
	entries[0].Coef[0] = 999
	assert.NotEqual(t, 999.0, entries[1].Coef[0])
	assert.NotEqual(t, 999.0, clf.Coef()[0])
}

func TestFitPathValidation(t *testing.T) {
	X, y := separableData(20, 1)

	clf, err := NewElasticNetLogistic()
	require.NoError(t, err)

	_, err = clf.FitPath(X, y, nil)
	require.Error(t, err)
	var valueErr *errors.ValueError
	assert.True(t, errors.As(err, &valueErr))

	_, err = clf.FitPath(X, y, []float64{0.1, -1})
	require.Error(t, err)
	assert.True(t, errors.As(err, &valueErr))
}

func TestGeometricLambdas(t *testing.T) {
	lambdas := GeometricLambdas(0.5, 1e-4, 20)
	require.Len(t, lambdas, 20)

	assert.Equal(t, 0.5, lambdas[0])
	assert.Equal(t, 1e-4, lambdas[19])
	for i := 1; i < len(lambdas); i++ {
		assert.Less(t, lambdas[i], lambdas[i-1])
	}

	// constant ratio between neighbors
	ratio := lambdas[1] / lambdas[0]
	for i := 2; i < len(lambdas); i++ {
		assert.InDelta(t, ratio, lambdas[i]/lambdas[i-1], 1e-9)
	}

	assert.Equal(t, []float64{2.0}, GeometricLambdas(2.0, 1, 1))
}

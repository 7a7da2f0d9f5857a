// Package metrics provides confusion-matrix based evaluation for
// binary classifiers. The positive class is always configured by the
// caller, never inferred from the data: with label encodings such as
// benign=2 / malignant=4 an inferred choice silently inverts precision
// and recall.
//
// Metrics with a zero denominator are NaN, reported through the
// warning handler; NaN is deliberately distinct from 0.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/elnet-ml/elnet/pkg/errors"
)

// ConfusionCounts tallies binary predictions against ground truth.
type ConfusionCounts struct {
	TP int
	TN int
	FP int
	FN int
}

// Confusion tallies predictions against truth, counting the given
// label value as positive.
func Confusion(yTrue, yPred *mat.VecDense, positive float64) (ConfusionCounts, error) {
	var counts ConfusionCounts
	if yTrue == nil || yTrue.Len() == 0 {
		return counts, errors.Wrap(errors.ErrEmptyData, "metrics.Confusion")
	}
	if yPred == nil || yPred.Len() != yTrue.Len() {
		got := 0
		if yPred != nil {
			got = yPred.Len()
		}
		return counts, errors.NewDimensionError("metrics.Confusion", yTrue.Len(), got, 0)
	}

	for i := 0; i < yTrue.Len(); i++ {
		actualPos := yTrue.AtVec(i) == positive
		predictedPos := yPred.AtVec(i) == positive
		switch {
		case actualPos && predictedPos:
			counts.TP++
		case !actualPos && !predictedPos:
			counts.TN++
		case !actualPos && predictedPos:
			counts.FP++
		default:
			counts.FN++
		}
	}
	return counts, nil
}

// Total returns the number of tallied predictions.
func (c ConfusionCounts) Total() int {
	return c.TP + c.TN + c.FP + c.FN
}

// Accuracy returns (TP+TN)/total, or NaN for an empty tally.
func (c ConfusionCounts) Accuracy() float64 {
	total := c.Total()
	if total == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("accuracy", "no samples"))
		return math.NaN()
	}
	return float64(c.TP+c.TN) / float64(total)
}

// Precision returns TP/(TP+FP), or NaN when no positive predictions
// were made.
func (c ConfusionCounts) Precision() float64 {
	if c.TP+c.FP == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("precision", "no predicted positives"))
		return math.NaN()
	}
	return float64(c.TP) / float64(c.TP+c.FP)
}

// Recall returns TP/(TP+FN), or NaN when no positive samples exist.
func (c ConfusionCounts) Recall() float64 {
	if c.TP+c.FN == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("recall", "no actual positives"))
		return math.NaN()
	}
	return float64(c.TP) / float64(c.TP+c.FN)
}

// Accuracy computes the fraction of exactly matching labels.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yTrue.Len() == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "metrics.Accuracy")
	}
	if yPred == nil || yPred.Len() != yTrue.Len() {
		got := 0
		if yPred != nil {
			got = yPred.Len()
		}
		return 0, errors.NewDimensionError("metrics.Accuracy", yTrue.Len(), got, 0)
	}

	correct := 0
	for i := 0; i < yTrue.Len(); i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(yTrue.Len()), nil
}

// Predictor is any fitted classifier producing one label per row.
type Predictor interface {
	Predict(X mat.Matrix) (*mat.VecDense, error)
}

// Transformer applies previously fitted preprocessing parameters.
type Transformer interface {
	Transform(X mat.Matrix) (mat.Matrix, error)
}

// EvaluateModel applies preprocessing fit on the training partition
// (never refit here), predicts labels for X, and tallies confusion
// counts against y. Pass a nil transformer to evaluate on X as-is.
func EvaluateModel(clf Predictor, transformer Transformer, X mat.Matrix, y *mat.VecDense, positive float64) (ConfusionCounts, error) {
	var err error
	if transformer != nil {
		X, err = transformer.Transform(X)
		if err != nil {
			return ConfusionCounts{}, err
		}
	}
	predictions, err := clf.Predict(X)
	if err != nil {
		return ConfusionCounts{}, err
	}
	return Confusion(y, predictions, positive)
}

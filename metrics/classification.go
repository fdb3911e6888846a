// Package metrics provides evaluation metrics for the classification and
// regression workflows. All functions validate dimensions and report
// failures through the structured error types in pkg/errors.
package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ysatoh/mlpipe/pkg/errors"
)

// SubsetAccuracy computes exact-match accuracy over multilabel indicator
// matrices: a sample counts as correct only when every label position
// matches. Predictions identical to ground truth score 1.0; predictions
// disagreeing on every label of every sample score 0.0.
func SubsetAccuracy(yTrue, yPred mat.Matrix) (float64, error) {
	r, c, err := sameShape("SubsetAccuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	correct := 0
	for i := 0; i < r; i++ {
		match := true
		for j := 0; j < c; j++ {
			if (yTrue.At(i, j) > 0.5) != (yPred.At(i, j) > 0.5) {
				match = false
				break
			}
		}
		if match {
			correct++
		}
	}
	return float64(correct) / float64(r), nil
}

// HammingLoss computes the fraction of label positions that disagree
// between prediction and ground truth.
func HammingLoss(yTrue, yPred mat.Matrix) (float64, error) {
	r, c, err := sameShape("HammingLoss", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	wrong := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if (yTrue.At(i, j) > 0.5) != (yPred.At(i, j) > 0.5) {
				wrong++
			}
		}
	}
	return float64(wrong) / float64(r*c), nil
}

// CoverageError computes how far down the score-ranked label list one must
// go, on average, to cover every true label of each sample. yTrue is a
// binary indicator matrix and scores holds per-label confidence values.
// Samples with no true labels contribute zero.
func CoverageError(yTrue, scores mat.Matrix) (float64, error) {
	r, c, err := sameShape("CoverageError", yTrue, scores)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for i := 0; i < r; i++ {
		depth := 0
		for j := 0; j < c; j++ {
			if yTrue.At(i, j) <= 0.5 {
				continue
			}
			// Rank of label j: the number of labels scored at least as
			// high, itself included.
			rank := 0
			for k := 0; k < c; k++ {
				if scores.At(i, k) >= scores.At(i, j) {
					rank++
				}
			}
			if rank > depth {
				depth = rank
			}
		}
		total += float64(depth)
	}
	return total / float64(r), nil
}

func sameShape(op string, a, b mat.Matrix) (int, int, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar == 0 || ac == 0 {
		return 0, 0, errors.NewValueError(op, "empty matrix")
	}
	if ar != br {
		return 0, 0, errors.NewDimensionError(op, ar, br, 0)
	}
	if ac != bc {
		return 0, 0, errors.NewDimensionError(op, ac, bc, 1)
	}
	return ar, ac, nil
}

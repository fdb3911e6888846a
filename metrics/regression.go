package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ysatoh/mlpipe/pkg/errors"
)

// MSE computes the mean squared error between two column vectors.
func MSE(yTrue, yPred mat.Matrix) (float64, error) {
	n, err := columnLength("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.At(i, 0) - yPred.At(i, 0)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE computes the root mean squared error between two column vectors.
func RMSE(yTrue, yPred mat.Matrix) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE computes the mean absolute error between two column vectors.
func MAE(yTrue, yPred mat.Matrix) (float64, error) {
	n, err := columnLength("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.At(i, 0) - yPred.At(i, 0))
	}
	return sum / float64(n), nil
}

// R2Score computes the coefficient of determination R². Identical
// predictions score exactly 1.0.
func R2Score(yTrue, yPred mat.Matrix) (float64, error) {
	n, err := columnLength("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var mean float64
	for i := 0; i < n; i++ {
		mean += yTrue.At(i, 0)
	}
	mean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.At(i, 0)
		yPredVal := yPred.At(i, 0)
		tss += (yTrueVal - mean) * (yTrueVal - mean)
		rss += (yTrueVal - yPredVal) * (yTrueVal - yPredVal)
	}

	if tss == 0 {
		return 0, errors.Newf("R2Score: total sum of squares is zero (no variance in yTrue)")
	}
	return 1 - rss/tss, nil
}

func columnLength(op string, yTrue, yPred mat.Matrix) (int, error) {
	tr, tc := yTrue.Dims()
	pr, pc := yPred.Dims()
	if tr == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	if tc != 1 || pc != 1 {
		return 0, errors.NewValueError(op, "must be a column vector (n×1 matrix)")
	}
	if pr != tr {
		return 0, errors.NewDimensionError(op, tr, pr, 0)
	}
	return tr, nil
}

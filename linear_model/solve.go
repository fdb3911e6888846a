package linear_model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ysatoh/mlpipe/core/parallel"
	"github.com/ysatoh/mlpipe/pkg/errors"
)

// designMatrix prepends an all-ones intercept column when requested.
func designMatrix(X mat.Matrix, fitIntercept bool) mat.Matrix {
	if !fitIntercept {
		return X
	}

	nSamples, nFeatures := X.Dims()
	XFit := mat.NewDense(nSamples, nFeatures+1, nil)

	const parallelThreshold = 1000
	parallel.ParallelizeWithThreshold(nSamples, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			XFit.Set(i, 0, 1.0)
			for j := 0; j < nFeatures; j++ {
				XFit.Set(i, j+1, X.At(i, j))
			}
		}
	})
	return XFit
}

// solveNormalEquation solves (XᵀX + ridge·I)⁻¹Xᵀy with ridge = 0, falling
// back to a tiny diagonal regularization when XᵀX is singular. It also
// returns the singular values of XᵀX and the rank implied by tol.
func solveNormalEquation(X, y mat.Matrix, tol float64) (*mat.Dense, []float64, int, error) {
	return solveRidge(X, y, 0, tol)
}

func solveRidge(X, y mat.Matrix, alpha, tol float64) (*mat.Dense, []float64, int, error) {
	_, cols := X.Dims()
	_, yCols := y.Dims()

	var XT mat.Dense
	XT.CloneFrom(X.T())

	var XTX mat.Dense
	XTX.Mul(&XT, X)

	if alpha > 0 {
		for i := 0; i < cols; i++ {
			XTX.Set(i, i, XTX.At(i, i)+alpha)
		}
	}

	var svd mat.SVD
	ok := svd.Factorize(&XTX, mat.SVDFull)
	if !ok {
		return nil, nil, 0, errors.New("SVD factorization failed")
	}
	singular := svd.Values(nil)
	rank := 0
	for _, s := range singular {
		if s > tol {
			rank++
		}
	}

	var XTXInv mat.Dense
	if err := XTXInv.Inverse(&XTX); err != nil {
		// Singular system: nudge the diagonal and retry once.
		for i := 0; i < cols; i++ {
			XTX.Set(i, i, XTX.At(i, i)+1e-10)
		}
		if err := XTXInv.Inverse(&XTX); err != nil {
			return nil, nil, 0, errors.Wrap(errors.ErrSingularMatrix, "matrix inversion failed even with regularization")
		}
	}

	var XTy mat.Dense
	XTy.Mul(&XT, y)

	coef := mat.NewDense(cols, yCols, nil)
	coef.Mul(&XTXInv, &XTy)
	return coef, singular, rank, nil
}

// splitCoefficients separates the intercept row from the coefficient rows
// of a normal-equation solution.
func splitCoefficients(coef *mat.Dense, fitIntercept bool) (*mat.Dense, *mat.Dense) {
	rows, cols := coef.Dims()

	if !fitIntercept {
		return mat.DenseCopyOf(coef), mat.NewDense(1, cols, nil)
	}

	intercept := mat.NewDense(1, cols, nil)
	for j := 0; j < cols; j++ {
		intercept.Set(0, j, coef.At(0, j))
	}

	weights := mat.NewDense(rows-1, cols, nil)
	for i := 1; i < rows; i++ {
		for j := 0; j < cols; j++ {
			weights.Set(i-1, j, coef.At(i, j))
		}
	}
	return weights, intercept
}

// predictLinear computes X·coef + intercept row by row.
func predictLinear(X mat.Matrix, coef, intercept *mat.Dense, nSamples, nTargets int) *mat.Dense {
	_, nFeatures := X.Dims()
	predictions := mat.NewDense(nSamples, nTargets, nil)

	const parallelThreshold = 1000
	parallel.ParallelizeWithThreshold(nSamples, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for t := 0; t < nTargets; t++ {
				pred := intercept.At(0, t)
				for j := 0; j < nFeatures; j++ {
					pred += X.At(i, j) * coef.At(j, t)
				}
				predictions.Set(i, t, pred)
			}
		}
	})
	return predictions
}

// r2Average computes the coefficient of determination per target column and
// averages the results.
func r2Average(y, yPred mat.Matrix) (float64, error) {
	nSamples, nTargets := y.Dims()
	pRows, pCols := yPred.Dims()
	if pRows != nSamples || pCols != nTargets {
		return 0, errors.NewDimensionError("Score", nSamples, pRows, 0)
	}

	totalR2 := 0.0
	for j := 0; j < nTargets; j++ {
		mean := 0.0
		for i := 0; i < nSamples; i++ {
			mean += y.At(i, j)
		}
		mean /= float64(nSamples)

		ssRes, ssTot := 0.0, 0.0
		for i := 0; i < nSamples; i++ {
			yTrue := y.At(i, j)
			ssRes += (yTrue - yPred.At(i, j)) * (yTrue - yPred.At(i, j))
			ssTot += (yTrue - mean) * (yTrue - mean)
		}
		if ssTot == 0 {
			return 0, errors.Newf("Score: no variance in target %d", j)
		}
		totalR2 += 1 - ssRes/ssTot
	}
	return totalR2 / float64(nTargets), nil
}

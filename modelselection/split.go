// Package modelselection provides the single split and cross-validation
// contract shared by every workflow: seeded train/test splitting, k-fold
// splitting, cross-validated scoring and exhaustive grid search.
package modelselection

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/ysatoh/mlpipe/pkg/errors"
)

// SplitIndices partitions [0, n) into train and test index sets using a
// deterministic seeded shuffle. The same n, testSize and seed always yield
// the same partition; the subsets are disjoint, cover every index, and the
// test size matches the requested fraction within rounding.
func SplitIndices(n int, testSize float64, seed int64) (trainIdx, testIdx []int, err error) {
	if n < 2 {
		return nil, nil, errors.NewValueError("SplitIndices", "need at least two samples to split")
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, errors.NewValidationError("testSize", "must be in (0, 1)", testSize)
	}

	nTest := int(math.Round(float64(n) * testSize))
	if nTest < 1 {
		nTest = 1
	}
	if nTest > n-1 {
		nTest = n - 1
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	r.Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	testIdx = append([]int(nil), indices[:nTest]...)
	trainIdx = append([]int(nil), indices[nTest:]...)
	sort.Ints(testIdx)
	sort.Ints(trainIdx)
	return trainIdx, testIdx, nil
}

// TrainTestSplit partitions X and y row-wise into train and evaluation
// subsets. See SplitIndices for the determinism guarantees.
func TrainTestSplit(X, y mat.Matrix, testSize float64, seed int64) (XTrain, XTest, yTrain, yTest *mat.Dense, err error) {
	nSamples, _ := X.Dims()
	yRows, _ := y.Dims()
	if yRows != nSamples {
		return nil, nil, nil, nil, errors.NewDimensionError("TrainTestSplit", nSamples, yRows, 0)
	}

	trainIdx, testIdx, err := SplitIndices(nSamples, testSize, seed)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return Subset(X, trainIdx), Subset(X, testIdx), Subset(y, trainIdx), Subset(y, testIdx), nil
}

// Subset copies the given rows of m, in index order, into a new matrix.
func Subset(m mat.Matrix, indices []int) *mat.Dense {
	_, cols := m.Dims()
	out := mat.NewDense(len(indices), cols, nil)
	for i, idx := range indices {
		for j := 0; j < cols; j++ {
			out.Set(i, j, m.At(idx, j))
		}
	}
	return out
}

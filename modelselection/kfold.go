package modelselection

import (
	"math/rand/v2"

	"github.com/ysatoh/mlpipe/pkg/errors"
)

// Fold is one train/test index partition produced by a splitter.
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// KFold splits samples into k consecutive folds. Each fold serves as the
// test set exactly once while the remaining folds form the training set.
type KFold struct {
	// NSplits is the number of folds.
	NSplits int

	// Shuffle shuffles sample order before folding.
	Shuffle bool

	// RandomSeed seeds the shuffle; the same seed yields the same folds.
	RandomSeed int64
}

// NewKFold creates a KFold splitter with the common defaults: five folds,
// seeded shuffling.
func NewKFold(nSplits int, seed int64) *KFold {
	if nSplits <= 1 {
		nSplits = 5
	}
	return &KFold{NSplits: nSplits, Shuffle: true, RandomSeed: seed}
}

// Split partitions [0, n) into NSplits folds. Every index appears in
// exactly one test set, and the fold sizes differ by at most one.
func (kf *KFold) Split(n int) ([]Fold, error) {
	if kf.NSplits < 2 {
		return nil, errors.NewValidationError("NSplits", "must be at least 2", kf.NSplits)
	}
	if n < kf.NSplits {
		return nil, errors.NewValueError("KFold.Split",
			"cannot have more folds than samples")
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if kf.Shuffle {
		r := rand.New(rand.NewPCG(uint64(kf.RandomSeed), uint64(kf.RandomSeed)))
		r.Shuffle(n, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	foldSizes := make([]int, kf.NSplits)
	base := n / kf.NSplits
	rem := n % kf.NSplits
	for i := range foldSizes {
		foldSizes[i] = base
		if i < rem {
			foldSizes[i]++
		}
	}

	folds := make([]Fold, kf.NSplits)
	start := 0
	for i, size := range foldSizes {
		end := start + size
		test := append([]int(nil), indices[start:end]...)
		train := make([]int, 0, n-size)
		train = append(train, indices[:start]...)
		train = append(train, indices[end:]...)
		folds[i] = Fold{TrainIndices: train, TestIndices: test}
		start = end
	}
	return folds, nil
}

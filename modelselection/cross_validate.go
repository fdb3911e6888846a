package modelselection

import (
	"sync"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/ysatoh/mlpipe/pkg/errors"
	"github.com/ysatoh/mlpipe/pkg/log"
)

// Estimator is the capability set cross-validation requires of a model.
type Estimator interface {
	Fit(X, y mat.Matrix) error
	Predict(X mat.Matrix) (mat.Matrix, error)
	Score(X, y mat.Matrix) (float64, error)
}

// Tunable is an estimator whose hyperparameters can be set by name, as
// required by grid search and automated search.
type Tunable interface {
	Estimator
	SetParams(params map[string]interface{}) error
}

// CVResult holds per-fold scores from a cross-validation run.
type CVResult struct {
	// FoldScores holds one score per fold, in fold order.
	FoldScores []float64
}

// MeanScore returns the mean of the fold scores.
func (r *CVResult) MeanScore() float64 {
	if len(r.FoldScores) == 0 {
		return 0
	}
	return stat.Mean(r.FoldScores, nil)
}

// StdScore returns the sample standard deviation of the fold scores.
func (r *CVResult) StdScore() float64 {
	if len(r.FoldScores) < 2 {
		return 0
	}
	return stat.StdDev(r.FoldScores, nil)
}

// CrossValidateScore trains and scores a fresh estimator from the factory
// on each fold. Folds run concurrently; the first fold error aborts the
// result.
func CrossValidateScore(factory func() Estimator, X, y mat.Matrix, splitter *KFold) (*CVResult, error) {
	if factory == nil {
		return nil, errors.NewValueError("CrossValidateScore", "estimator factory is nil")
	}
	nSamples, _ := X.Dims()
	yRows, _ := y.Dims()
	if yRows != nSamples {
		return nil, errors.NewDimensionError("CrossValidateScore", nSamples, yRows, 0)
	}
	if splitter == nil {
		splitter = NewKFold(5, 0)
	}

	folds, err := splitter.Split(nSamples)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(folds))
	errs := make([]error, len(folds))
	var wg sync.WaitGroup
	for i, fold := range folds {
		wg.Add(1)
		go func(i int, fold Fold) {
			defer wg.Done()
			scores[i], errs[i] = scoreFold(factory(), X, y, fold)
		}(i, fold)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, errors.Wrapf(err, "fold %d failed", i)
		}
	}

	result := &CVResult{FoldScores: scores}
	log.GetLogger().Debug("cross-validation complete",
		log.OperationKey, "CrossValidateScore",
		log.FoldKey, len(folds),
		log.ScoreKey, result.MeanScore(),
	)
	return result, nil
}

func scoreFold(est Estimator, X, y mat.Matrix, fold Fold) (float64, error) {
	XTrain := Subset(X, fold.TrainIndices)
	yTrain := Subset(y, fold.TrainIndices)
	XTest := Subset(X, fold.TestIndices)
	yTest := Subset(y, fold.TestIndices)

	if err := est.Fit(XTrain, yTrain); err != nil {
		return 0, err
	}
	return est.Score(XTest, yTest)
}

package modelselection

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/ysatoh/mlpipe/core/model"
	"github.com/ysatoh/mlpipe/pkg/errors"
	"github.com/ysatoh/mlpipe/pkg/log"
)

// ParamGrid maps a parameter name to the candidate values to try.
type ParamGrid map[string][]interface{}

// Combinations expands the grid into the full cross product of parameter
// assignments. The order is deterministic: parameter names are visited in
// sorted order, values in declaration order.
func (g ParamGrid) Combinations() []map[string]interface{} {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)

	combos := []map[string]interface{}{{}}
	for _, name := range names {
		values := g[name]
		next := make([]map[string]interface{}, 0, len(combos)*len(values))
		for _, combo := range combos {
			for _, value := range values {
				expanded := make(map[string]interface{}, len(combo)+1)
				for k, v := range combo {
					expanded[k] = v
				}
				expanded[name] = value
				next = append(next, expanded)
			}
		}
		combos = next
	}
	return combos
}

// CandidateResult records the cross-validated outcome of one parameter
// combination.
type CandidateResult struct {
	Params     map[string]interface{}
	FoldScores []float64
	MeanScore  float64
	StdScore   float64
}

// GridSearchCV exhaustively evaluates every combination in a parameter grid
// with cross-validation, then refits a final estimator with the best
// combination on the full training data. Higher scores are better.
type GridSearchCV struct {
	model.BaseEstimator

	// Factory creates a fresh candidate estimator for each evaluation.
	Factory func() Tunable

	// Grid holds the candidate values per parameter name.
	Grid ParamGrid

	// CV controls the fold structure; nil defaults to 5 shuffled folds.
	CV *KFold

	// Results holds one entry per evaluated combination, in evaluation
	// order.
	Results []CandidateResult

	// BestParams, BestScore and BestEstimator describe the winning
	// combination after Fit.
	BestParams    map[string]interface{}
	BestScore     float64
	BestEstimator Tunable
}

// NewGridSearchCV creates a grid search over the given factory and grid.
func NewGridSearchCV(factory func() Tunable, grid ParamGrid, cv *KFold) *GridSearchCV {
	if cv == nil {
		cv = NewKFold(5, 0)
	}
	return &GridSearchCV{Factory: factory, Grid: grid, CV: cv}
}

// Fit evaluates every parameter combination and refits the best one.
func (gs *GridSearchCV) Fit(X, y mat.Matrix) error {
	if gs.Factory == nil {
		return errors.NewValueError("GridSearchCV.Fit", "estimator factory is nil")
	}
	if len(gs.Grid) == 0 {
		return errors.NewValueError("GridSearchCV.Fit", "parameter grid is empty")
	}
	for name, values := range gs.Grid {
		if len(values) == 0 {
			return errors.NewValidationError(name, "has no candidate values", nil)
		}
	}

	combos := gs.Grid.Combinations()
	logger := log.GetLogger()
	logger.Info("grid search started",
		log.OperationKey, "GridSearchCV.Fit",
		log.IterationKey, len(combos),
	)

	gs.Results = make([]CandidateResult, 0, len(combos))
	best := -1
	for i, params := range combos {
		scores, err := gs.evaluate(params, X, y)
		if err != nil {
			return errors.Wrapf(err, "candidate %d %v failed", i, params)
		}

		result := CandidateResult{
			Params:     params,
			FoldScores: scores,
			MeanScore:  stat.Mean(scores, nil),
		}
		if len(scores) > 1 {
			result.StdScore = stat.StdDev(scores, nil)
		}
		gs.Results = append(gs.Results, result)

		logger.Debug("candidate evaluated",
			log.OperationKey, "GridSearchCV.Fit",
			log.IterationKey, i,
			log.ScoreKey, result.MeanScore,
		)

		if best < 0 || result.MeanScore > gs.Results[best].MeanScore {
			best = i
		}
	}

	gs.BestParams = gs.Results[best].Params
	gs.BestScore = gs.Results[best].MeanScore

	refit := gs.Factory()
	if err := refit.SetParams(gs.BestParams); err != nil {
		return errors.Wrap(err, "refit parameter assignment failed")
	}
	if err := refit.Fit(X, y); err != nil {
		return errors.Wrap(err, "refit on full data failed")
	}
	gs.BestEstimator = refit

	gs.SetFitted()
	logger.Info("grid search complete",
		log.OperationKey, "GridSearchCV.Fit",
		log.ScoreKey, gs.BestScore,
	)
	return nil
}

func (gs *GridSearchCV) evaluate(params map[string]interface{}, X, y mat.Matrix) ([]float64, error) {
	// Parameter assignment happens inside the wrapped factory so every
	// fold sees a fresh, identically configured candidate.
	configured := func() Estimator {
		est := gs.Factory()
		if err := est.SetParams(params); err != nil {
			return &failedCandidate{err: err}
		}
		return est
	}

	result, err := CrossValidateScore(configured, X, y, gs.CV)
	if err != nil {
		return nil, err
	}
	return result.FoldScores, nil
}

// Predict delegates to the refitted best estimator.
func (gs *GridSearchCV) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !gs.IsFitted() {
		return nil, errors.NewNotFittedError("GridSearchCV", "Predict")
	}
	return gs.BestEstimator.Predict(X)
}

// Score delegates to the refitted best estimator.
func (gs *GridSearchCV) Score(X, y mat.Matrix) (float64, error) {
	if !gs.IsFitted() {
		return 0, errors.NewNotFittedError("GridSearchCV", "Score")
	}
	return gs.BestEstimator.Score(X, y)
}

// failedCandidate propagates a parameter assignment error from inside a
// fold worker as a fit error.
type failedCandidate struct {
	err error
}

func (f *failedCandidate) Fit(X, y mat.Matrix) error { return f.err }

func (f *failedCandidate) Predict(X mat.Matrix) (mat.Matrix, error) { return nil, f.err }

func (f *failedCandidate) Score(X, y mat.Matrix) (float64, error) { return 0, f.err }

// String returns a readable representation.
func (gs *GridSearchCV) String() string {
	if !gs.IsFitted() {
		return "GridSearchCV()"
	}
	return fmt.Sprintf("GridSearchCV(best_score=%.4f, candidates=%d)", gs.BestScore, len(gs.Results))
}

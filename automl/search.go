// Package automl provides budgeted automated model search: seeded random
// sampling over a hyperparameter space, cross-validated scoring of each
// trial, and export of the winning fitted pipeline to a file.
package automl

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/ysatoh/mlpipe/core/model"
	"github.com/ysatoh/mlpipe/modelselection"
	"github.com/ysatoh/mlpipe/pkg/errors"
	"github.com/ysatoh/mlpipe/pkg/log"
)

// Space maps a parameter name to the candidate values random search may
// sample for it.
type Space map[string][]interface{}

// Trial records one sampled parameter assignment and its cross-validated
// outcome.
type Trial struct {
	Params     map[string]interface{}
	FoldScores []float64
	MeanScore  float64
	Duration   time.Duration
}

// Search runs seeded random search over a hyperparameter space under a
// wall-clock budget. Each trial samples one assignment, scores it with
// cross-validation, and the best assignment is refitted on the full data.
// Higher scores are better.
type Search struct {
	model.BaseEstimator

	// Factory creates a fresh candidate estimator for each trial.
	Factory func() modelselection.Tunable

	// Space holds the candidate values per parameter name.
	Space Space

	// Budget bounds the total wall-clock time. The budget is checked
	// between trials; at least one trial always runs.
	Budget time.Duration

	// MaxIterations bounds the number of trials regardless of budget.
	// Zero means no iteration cap.
	MaxIterations int

	// Seed makes the sampled trial sequence reproducible.
	Seed uint64

	// CV controls the fold structure; nil defaults to 5 shuffled folds.
	CV *modelselection.KFold

	// Trials holds every completed trial, in execution order.
	Trials []Trial

	// BestParams, BestScore and BestEstimator describe the winning trial
	// after Run.
	BestParams    map[string]interface{}
	BestScore     float64
	BestEstimator modelselection.Tunable
}

// NewSearch creates a budgeted random search.
func NewSearch(factory func() modelselection.Tunable, space Space, budget time.Duration) *Search {
	return &Search{
		Factory: factory,
		Space:   space,
		Budget:  budget,
		CV:      modelselection.NewKFold(5, 0),
	}
}

// Run executes the search on the full training data.
func (s *Search) Run(X, y mat.Matrix) error {
	if s.Factory == nil {
		return errors.NewValueError("Search.Run", "estimator factory is nil")
	}
	if len(s.Space) == 0 {
		return errors.NewValueError("Search.Run", "search space is empty")
	}
	if s.Budget <= 0 {
		return errors.NewValidationError("Budget", "must be positive", s.Budget)
	}

	names := make([]string, 0, len(s.Space))
	for name, values := range s.Space {
		if len(values) == 0 {
			return errors.NewValidationError(name, "has no candidate values", nil)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	logger := log.GetLogger()
	logger.Info("automated search started",
		log.OperationKey, "Search.Run",
		log.DurationMsKey, s.Budget.Milliseconds(),
	)

	r := rand.New(rand.NewPCG(s.Seed, s.Seed))
	start := time.Now()
	s.Trials = s.Trials[:0]
	best := -1

	for i := 0; ; i++ {
		if i > 0 && time.Since(start) >= s.Budget {
			break
		}
		if s.MaxIterations > 0 && i >= s.MaxIterations {
			break
		}

		params := s.sample(names, r)
		trialStart := time.Now()
		scores, err := s.evaluate(params, X, y)
		if err != nil {
			return errors.Wrapf(err, "trial %d %v failed", i, params)
		}

		trial := Trial{
			Params:     params,
			FoldScores: scores,
			MeanScore:  stat.Mean(scores, nil),
			Duration:   time.Since(trialStart),
		}
		s.Trials = append(s.Trials, trial)

		logger.Debug("trial complete",
			log.OperationKey, "Search.Run",
			log.IterationKey, i,
			log.ScoreKey, trial.MeanScore,
			log.DurationMsKey, trial.Duration.Milliseconds(),
		)

		if best < 0 || trial.MeanScore > s.Trials[best].MeanScore {
			best = len(s.Trials) - 1
		}
	}

	s.BestParams = s.Trials[best].Params
	s.BestScore = s.Trials[best].MeanScore

	refit := s.Factory()
	if err := refit.SetParams(s.BestParams); err != nil {
		return errors.Wrap(err, "refit parameter assignment failed")
	}
	if err := refit.Fit(X, y); err != nil {
		return errors.Wrap(err, "refit on full data failed")
	}
	s.BestEstimator = refit

	s.SetFitted()
	logger.Info("automated search complete",
		log.OperationKey, "Search.Run",
		log.IterationKey, len(s.Trials),
		log.ScoreKey, s.BestScore,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *Search) sample(names []string, r *rand.Rand) map[string]interface{} {
	params := make(map[string]interface{}, len(names))
	for _, name := range names {
		values := s.Space[name]
		params[name] = values[r.IntN(len(values))]
	}
	return params
}

func (s *Search) evaluate(params map[string]interface{}, X, y mat.Matrix) ([]float64, error) {
	configured := func() modelselection.Estimator {
		est := s.Factory()
		if err := est.SetParams(params); err != nil {
			return failedTrial{err: err}
		}
		return est
	}

	result, err := modelselection.CrossValidateScore(configured, X, y, s.CV)
	if err != nil {
		return nil, err
	}
	return result.FoldScores, nil
}

// Predict delegates to the refitted best estimator.
func (s *Search) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("Search", "Predict")
	}
	return s.BestEstimator.Predict(X)
}

// Score delegates to the refitted best estimator.
func (s *Search) Score(X, y mat.Matrix) (float64, error) {
	if !s.IsFitted() {
		return 0, errors.NewNotFittedError("Search", "Score")
	}
	return s.BestEstimator.Score(X, y)
}

// String returns a readable representation.
func (s *Search) String() string {
	if !s.IsFitted() {
		return "Search()"
	}
	return fmt.Sprintf("Search(best_score=%.4f, trials=%d)", s.BestScore, len(s.Trials))
}

type failedTrial struct {
	err error
}

func (f failedTrial) Fit(X, y mat.Matrix) error { return f.err }

func (f failedTrial) Predict(X mat.Matrix) (mat.Matrix, error) { return nil, f.err }

func (f failedTrial) Score(X, y mat.Matrix) (float64, error) { return 0, f.err }

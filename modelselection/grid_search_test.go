package modelselection

import (
	"reflect"
	"testing"

	"github.com/ysatoh/mlpipe/dataset"
	"github.com/ysatoh/mlpipe/linear_model"
)

func TestParamGridCombinations(t *testing.T) {
	grid := ParamGrid{
		"alpha":         {0.1, 1.0},
		"fit_intercept": {true, false},
	}

	combos := grid.Combinations()
	if len(combos) != 4 {
		t.Fatalf("len(combos) = %d, want 4", len(combos))
	}

	// Names are visited in sorted order, values in declaration order.
	want := []map[string]interface{}{
		{"alpha": 0.1, "fit_intercept": true},
		{"alpha": 0.1, "fit_intercept": false},
		{"alpha": 1.0, "fit_intercept": true},
		{"alpha": 1.0, "fit_intercept": false},
	}
	if !reflect.DeepEqual(combos, want) {
		t.Errorf("Combinations() = %v, want %v", combos, want)
	}
}

func TestParamGridSingleParameter(t *testing.T) {
	combos := ParamGrid{"alpha": {1.0, 2.0, 3.0}}.Combinations()
	if len(combos) != 3 {
		t.Errorf("len(combos) = %d, want 3", len(combos))
	}
}

func TestGridSearchCVFit(t *testing.T) {
	X, y := dataset.MakeRegression(80, 2, 0.1, 42)

	gs := NewGridSearchCV(func() Tunable {
		return linear_model.NewRidge()
	}, ParamGrid{
		"alpha": {0.01, 1.0, 1000.0},
	}, NewKFold(4, 42))

	if err := gs.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if len(gs.Results) != 3 {
		t.Fatalf("len(Results) = %d, want 3", len(gs.Results))
	}
	if gs.BestParams == nil || gs.BestEstimator == nil {
		t.Fatal("best candidate not recorded")
	}

	// The best mean score must match the best recorded candidate.
	for _, result := range gs.Results {
		if result.MeanScore > gs.BestScore {
			t.Errorf("candidate %v scored %v above BestScore %v",
				result.Params, result.MeanScore, gs.BestScore)
		}
	}

	// A heavy penalty on near-noiseless linear data cannot win.
	if gs.BestParams["alpha"] == 1000.0 {
		t.Errorf("BestParams = %v, extreme regularization should lose", gs.BestParams)
	}

	score, err := gs.Score(X, y)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if score < 0.9 {
		t.Errorf("refit Score() = %v, want > 0.9", score)
	}
}

func TestGridSearchCVErrors(t *testing.T) {
	X, y := dataset.MakeRegression(20, 2, 0.1, 1)

	gs := NewGridSearchCV(nil, ParamGrid{"alpha": {1.0}}, nil)
	if err := gs.Fit(X, y); err == nil {
		t.Error("Fit() without a factory should fail")
	}

	gs = NewGridSearchCV(func() Tunable { return linear_model.NewRidge() }, ParamGrid{}, nil)
	if err := gs.Fit(X, y); err == nil {
		t.Error("Fit() with an empty grid should fail")
	}

	gs = NewGridSearchCV(func() Tunable { return linear_model.NewRidge() },
		ParamGrid{"fit_intercept": {}}, nil)
	if err := gs.Fit(X, y); err == nil {
		t.Error("Fit() with an empty candidate list should fail")
	}

	gs = NewGridSearchCV(func() Tunable { return linear_model.NewRidge() },
		ParamGrid{"bogus": {1.0}}, nil)
	if err := gs.Fit(X, y); err == nil {
		t.Error("Fit() should surface unknown parameter names")
	}

	gs = NewGridSearchCV(func() Tunable { return linear_model.NewRidge() },
		ParamGrid{"alpha": {1.0}}, nil)
	if _, err := gs.Predict(X); err == nil {
		t.Error("Predict() before Fit should fail")
	}
}

package linear_model

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestLogisticRegressionSeparableData(t *testing.T) {
	// Linearly separable in one dimension.
	X := mat.NewDense(8, 1, []float64{-4, -3, -2, -1, 1, 2, 3, 4})
	y := mat.NewDense(8, 1, []float64{0, 0, 0, 0, 1, 1, 1, 1})

	lr := NewLogisticRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	score, err := lr.Score(X, y)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if score != 1.0 {
		t.Errorf("Score() = %v, want 1.0 on separable data", score)
	}

	proba, err := lr.PredictProba(X)
	if err != nil {
		t.Fatalf("PredictProba() error = %v", err)
	}
	rows, cols := proba.Dims()
	if rows != 8 || cols != 2 {
		t.Fatalf("PredictProba() dims = %d×%d, want 8×2", rows, cols)
	}
	for i := 0; i < rows; i++ {
		sum := proba.At(i, 0) + proba.At(i, 1)
		if math.Abs(sum-1.0) > 1e-10 {
			t.Errorf("row %d probabilities sum to %v", i, sum)
		}
	}
	if proba.At(0, 1) >= 0.5 {
		t.Errorf("P(1|x=-4) = %v, want < 0.5", proba.At(0, 1))
	}
	if proba.At(7, 1) <= 0.5 {
		t.Errorf("P(1|x=4) = %v, want > 0.5", proba.At(7, 1))
	}
}

func TestLogisticRegressionSingleClassFallback(t *testing.T) {
	// All-negative training columns occur for rare labels on small folds.
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{0, 0, 0, 0})

	lr := NewLogisticRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	pred, err := lr.Predict(X)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	for i := 0; i < 4; i++ {
		if pred.At(i, 0) != 0 {
			t.Errorf("Predict()[%d] = %v, want 0", i, pred.At(i, 0))
		}
	}
}

func TestLogisticRegressionRejectsNonBinaryTargets(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{0, 1, 2})

	lr := NewLogisticRegression()
	if err := lr.Fit(X, y); err == nil {
		t.Error("Fit() should reject targets outside {0, 1}")
	}
}

func TestLogisticRegressionDimensionErrors(t *testing.T) {
	lr := NewLogisticRegression()

	if _, err := lr.Predict(mat.NewDense(1, 1, nil)); err == nil {
		t.Error("Predict() before Fit should fail")
	}

	X := mat.NewDense(4, 2, []float64{0, 0, 0, 1, 1, 0, 1, 1})
	y := mat.NewDense(4, 1, []float64{0, 0, 1, 1})
	if err := lr.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	if _, err := lr.Predict(mat.NewDense(1, 3, nil)); err == nil {
		t.Error("Predict() should reject feature mismatch")
	}
}

func TestLogisticRegressionSetParams(t *testing.T) {
	lr := NewLogisticRegression()
	err := lr.SetParams(map[string]interface{}{
		"c":             0.5,
		"learning_rate": 0.1,
		"max_iter":      200,
		"tol":           1e-4,
		"fit_intercept": false,
	})
	if err != nil {
		t.Fatalf("SetParams() error = %v", err)
	}
	if lr.C != 0.5 || lr.LearningRate != 0.1 || lr.MaxIter != 200 || lr.Tol != 1e-4 || lr.FitIntercept {
		t.Errorf("SetParams() not applied: %+v", lr)
	}

	if err := lr.SetParams(map[string]interface{}{"c": "high"}); err == nil {
		t.Error("SetParams() should reject wrong type")
	}
}

package linear_model

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestLinearRegressionFit(t *testing.T) {
	// y = 2x + 3
	X := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
	y := mat.NewDense(5, 1, []float64{5, 7, 9, 11, 13})

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if got := lr.Coef.At(0, 0); math.Abs(got-2.0) > 1e-6 {
		t.Errorf("Coef = %v, want 2.0", got)
	}
	if got := lr.Intercept.At(0, 0); math.Abs(got-3.0) > 1e-6 {
		t.Errorf("Intercept = %v, want 3.0", got)
	}

	pred, err := lr.Predict(mat.NewDense(2, 1, []float64{6, 7}))
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if got := pred.At(0, 0); math.Abs(got-15.0) > 1e-6 {
		t.Errorf("Predict(6) = %v, want 15.0", got)
	}
	if got := pred.At(1, 0); math.Abs(got-17.0) > 1e-6 {
		t.Errorf("Predict(7) = %v, want 17.0", got)
	}

	score, err := lr.Score(X, y)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if math.Abs(score-1.0) > 1e-6 {
		t.Errorf("Score() = %v, want 1.0", score)
	}
}

func TestLinearRegressionNoIntercept(t *testing.T) {
	// y = 2x through the origin.
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{2, 4, 6, 8})

	lr := NewLinearRegression(WithFitIntercept(false))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if got := lr.Coef.At(0, 0); math.Abs(got-2.0) > 1e-6 {
		t.Errorf("Coef = %v, want 2.0", got)
	}
	if got := lr.Intercept.At(0, 0); math.Abs(got) > 1e-6 {
		t.Errorf("Intercept = %v, want 0", got)
	}
}

func TestLinearRegressionMultipleFeatures(t *testing.T) {
	// y = 1*x1 + 2*x2 + 1
	X := mat.NewDense(5, 2, []float64{
		1, 1,
		2, 1,
		1, 2,
		3, 2,
		2, 3,
	})
	y := mat.NewDense(5, 1, []float64{4, 5, 6, 8, 9})

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if got := lr.Coef.At(0, 0); math.Abs(got-1.0) > 1e-6 {
		t.Errorf("Coef[0] = %v, want 1.0", got)
	}
	if got := lr.Coef.At(1, 0); math.Abs(got-2.0) > 1e-6 {
		t.Errorf("Coef[1] = %v, want 2.0", got)
	}
}

func TestLinearRegressionErrors(t *testing.T) {
	lr := NewLinearRegression()

	if _, err := lr.Predict(mat.NewDense(1, 1, nil)); err == nil {
		t.Error("Predict() before Fit should fail")
	}

	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(2, 1, []float64{1, 2})
	if err := lr.Fit(X, y); err == nil {
		t.Error("Fit() should reject row mismatch")
	}

	if err := lr.Fit(X, mat.NewDense(3, 1, []float64{1, 2, 3})); err != nil {
		t.Fatal(err)
	}
	if _, err := lr.Predict(mat.NewDense(1, 2, nil)); err == nil {
		t.Error("Predict() should reject feature mismatch")
	}
}

func TestLinearRegressionSetParams(t *testing.T) {
	lr := NewLinearRegression()
	if err := lr.SetParams(map[string]interface{}{"fit_intercept": false}); err != nil {
		t.Fatalf("SetParams() error = %v", err)
	}
	if lr.FitIntercept {
		t.Error("SetParams() did not apply fit_intercept")
	}
	if err := lr.SetParams(map[string]interface{}{"unknown": 1}); err == nil {
		t.Error("SetParams() should reject unknown parameter")
	}
}

package multiclass

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/ysatoh/mlpipe/linear_model"
)

func newTestOVR() *OneVsRestClassifier {
	return NewOneVsRestClassifier(func() BinaryClassifier {
		return linear_model.NewLogisticRegression()
	})
}

// Two separable labels: label 0 held when x0 > 0, label 1 held when x1 > 0.
func separableData() (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(8, 2, []float64{
		2, -2,
		3, -1,
		2, 2,
		3, 1,
		-2, 2,
		-3, 1,
		-2, -2,
		-1, -3,
	})
	Y := mat.NewDense(8, 2, []float64{
		1, 0,
		1, 0,
		1, 1,
		1, 1,
		0, 1,
		0, 1,
		0, 0,
		0, 0,
	})
	return X, Y
}

func TestOneVsRestFitPredict(t *testing.T) {
	X, Y := separableData()

	ovr := newTestOVR()
	if err := ovr.Fit(X, Y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if ovr.NLabels != 2 {
		t.Fatalf("NLabels = %d, want 2", ovr.NLabels)
	}

	pred, err := ovr.Predict(X)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if !mat.Equal(pred, Y) {
		t.Errorf("Predict() = %v, want %v", mat.Formatted(pred), mat.Formatted(Y))
	}

	score, err := ovr.Score(X, Y)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if score != 1.0 {
		t.Errorf("Score() = %v, want 1.0 on separable data", score)
	}
}

func TestOneVsRestPredictProba(t *testing.T) {
	X, Y := separableData()

	ovr := newTestOVR()
	if err := ovr.Fit(X, Y); err != nil {
		t.Fatal(err)
	}

	P, err := ovr.PredictProba(X)
	if err != nil {
		t.Fatalf("PredictProba() error = %v", err)
	}
	rows, cols := P.Dims()
	if rows != 8 || cols != 2 {
		t.Fatalf("PredictProba() dims = %d×%d, want 8×2", rows, cols)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			p := P.At(i, j)
			if p < 0 || p > 1 {
				t.Errorf("P(%d,%d) = %v, out of [0,1]", i, j, p)
			}
			want := Y.At(i, j) > 0.5
			if (p > 0.5) != want {
				t.Errorf("P(%d,%d) = %v disagrees with label %v", i, j, p, Y.At(i, j))
			}
		}
	}
}

func TestOneVsRestParamsForwarded(t *testing.T) {
	X, Y := separableData()

	ovr := newTestOVR()
	if err := ovr.SetParams(map[string]interface{}{"max_iter": 5}); err != nil {
		t.Fatalf("SetParams() error = %v", err)
	}
	if err := ovr.Fit(X, Y); err != nil {
		t.Fatal(err)
	}

	for j, est := range ovr.Estimators {
		lr, ok := est.(*linear_model.LogisticRegression)
		if !ok {
			t.Fatalf("estimator %d has unexpected type %T", j, est)
		}
		if lr.MaxIter != 5 {
			t.Errorf("estimator %d MaxIter = %d, want 5", j, lr.MaxIter)
		}
	}
}

func TestOneVsRestSetParamsValidation(t *testing.T) {
	ovr := newTestOVR()
	if err := ovr.SetParams(map[string]interface{}{"bogus": 1}); err == nil {
		t.Error("SetParams() should reject a parameter the base estimator does not know")
	}
}

func TestOneVsRestErrors(t *testing.T) {
	ovr := newTestOVR()

	if _, err := ovr.Predict(mat.NewDense(1, 2, nil)); err == nil {
		t.Error("Predict() before Fit should fail")
	}

	X := mat.NewDense(2, 1, []float64{1, 2})
	if err := ovr.Fit(X, mat.NewDense(3, 1, nil)); err == nil {
		t.Error("Fit() should reject row mismatch")
	}

	bad := NewOneVsRestClassifier(nil)
	if err := bad.Fit(X, mat.NewDense(2, 1, []float64{0, 1})); err == nil {
		t.Error("Fit() without a constructor should fail")
	}
}

package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestStandardScalerFitTransform(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{2, 4, 6, 8})

	s := NewStandardScaler()
	Xt, err := s.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	if math.Abs(s.Mean[0]-5.0) > 1e-10 {
		t.Errorf("Mean = %v, want 5.0", s.Mean[0])
	}

	r, _ := Xt.Dims()
	var sum, sumSq float64
	for i := 0; i < r; i++ {
		sum += Xt.At(i, 0)
		sumSq += Xt.At(i, 0) * Xt.At(i, 0)
	}
	if math.Abs(sum) > 1e-10 {
		t.Errorf("transformed mean = %v, want 0", sum/float64(r))
	}
	if math.Abs(sumSq/float64(r)-1.0) > 1e-10 {
		t.Errorf("transformed variance = %v, want 1", sumSq/float64(r))
	}
}

func TestStandardScalerConstantFeature(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1, 7,
		2, 7,
		3, 7,
	})

	s := NewStandardScaler()
	Xt, err := s.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	// The constant column keeps scale 1, so every value centers to zero.
	for i := 0; i < 3; i++ {
		if got := Xt.At(i, 1); math.Abs(got) > 1e-10 {
			t.Errorf("At(%d,1) = %v, want 0", i, got)
		}
	}
}

func TestStandardScalerInverseTransform(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
	})

	s := NewStandardScaler()
	Xt, err := s.FitTransform(X)
	if err != nil {
		t.Fatal(err)
	}
	back, err := s.InverseTransform(Xt)
	if err != nil {
		t.Fatalf("InverseTransform() error = %v", err)
	}
	if !mat.EqualApprox(X, back, 1e-10) {
		t.Errorf("round trip differs: %v", mat.Formatted(back))
	}
}

func TestStandardScalerWithoutCentering(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{3, 5})

	s := NewStandardScaler()
	if err := s.SetParams(map[string]interface{}{"with_mean": false}); err != nil {
		t.Fatal(err)
	}
	if err := s.Fit(X); err != nil {
		t.Fatal(err)
	}
	if s.Mean[0] != 0 {
		t.Errorf("Mean = %v, want 0 when centering is off", s.Mean[0])
	}
}

func TestStandardScalerNotFitted(t *testing.T) {
	s := NewStandardScaler()
	if _, err := s.Transform(mat.NewDense(1, 1, nil)); err == nil {
		t.Error("Transform() on unfitted scaler should fail")
	}
}

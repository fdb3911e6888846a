package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   mat.Matrix
		yPred   mat.Matrix
		want    float64
		wantErr bool
	}{
		{
			name:  "perfect prediction",
			yTrue: mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5}),
			yPred: mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5}),
			want:  0.0,
		},
		{
			name:  "uniform half error",
			yTrue: mat.NewDense(4, 1, []float64{1, 2, 3, 4}),
			yPred: mat.NewDense(4, 1, []float64{1.5, 2.5, 2.5, 3.5}),
			want:  0.25,
		},
		{
			name:    "length mismatch",
			yTrue:   mat.NewDense(3, 1, []float64{1, 2, 3}),
			yPred:   mat.NewDense(2, 1, []float64{1, 2}),
			wantErr: true,
		},
		{
			name:    "multiple columns rejected",
			yTrue:   mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
			yPred:   mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
			wantErr: true,
		},
		{
			name:    "empty",
			yTrue:   &mat.Dense{},
			yPred:   &mat.Dense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MSE() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("MSE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRMSE(t *testing.T) {
	yTrue := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	yPred := mat.NewDense(4, 1, []float64{1.5, 2.5, 2.5, 3.5})

	got, err := RMSE(yTrue, yPred)
	if err != nil {
		t.Fatalf("RMSE() error = %v", err)
	}
	if math.Abs(got-0.5) > 1e-10 {
		t.Errorf("RMSE() = %v, want 0.5", got)
	}
}

func TestMAE(t *testing.T) {
	yTrue := mat.NewDense(3, 1, []float64{10, 20, 30})
	yPred := mat.NewDense(3, 1, []float64{12, 18, 33})

	got, err := MAE(yTrue, yPred)
	if err != nil {
		t.Fatalf("MAE() error = %v", err)
	}
	want := 7.0 / 3.0
	if math.Abs(got-want) > 1e-10 {
		t.Errorf("MAE() = %v, want %v", got, want)
	}
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   mat.Matrix
		yPred   mat.Matrix
		want    float64
		wantErr bool
	}{
		{
			name:  "perfect prediction scores exactly one",
			yTrue: mat.NewDense(4, 1, []float64{1, 2, 3, 4}),
			yPred: mat.NewDense(4, 1, []float64{1, 2, 3, 4}),
			want:  1.0,
		},
		{
			name:  "mean prediction scores zero",
			yTrue: mat.NewDense(4, 1, []float64{1, 2, 3, 4}),
			yPred: mat.NewDense(4, 1, []float64{2.5, 2.5, 2.5, 2.5}),
			want:  0.0,
		},
		{
			name:    "constant target has no defined score",
			yTrue:   mat.NewDense(3, 1, []float64{5, 5, 5}),
			yPred:   mat.NewDense(3, 1, []float64{5, 5, 5}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := R2Score(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("R2Score() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("R2Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

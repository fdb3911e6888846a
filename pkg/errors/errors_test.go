package errors

import (
	"strings"
	"testing"
)

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("Ridge", "Predict")

	var notFitted *NotFittedError
	if !As(err, &notFitted) {
		t.Fatalf("As() failed for %T", err)
	}
	if notFitted.ModelName != "Ridge" || notFitted.Method != "Predict" {
		t.Errorf("fields = %+v", notFitted)
	}
	if !strings.Contains(err.Error(), "not fitted") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestDimensionError(t *testing.T) {
	tests := []struct {
		name     string
		axis     int
		wantWord string
	}{
		{name: "rows axis", axis: 0, wantWord: "rows"},
		{name: "features axis", axis: 1, wantWord: "features"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDimensionError("Fit", 10, 5, tt.axis)

			var dimErr *DimensionError
			if !As(err, &dimErr) {
				t.Fatalf("As() failed for %T", err)
			}
			if dimErr.Expected != 10 || dimErr.Got != 5 {
				t.Errorf("fields = %+v", dimErr)
			}
			if !strings.Contains(err.Error(), tt.wantWord) {
				t.Errorf("Error() = %q, want substring %q", err.Error(), tt.wantWord)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("alpha", "must be non-negative", -1.0)

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Fatalf("As() failed for %T", err)
	}
	if valErr.ParamName != "alpha" || valErr.Value != -1.0 {
		t.Errorf("fields = %+v", valErr)
	}
}

func TestModelErrorUnwrap(t *testing.T) {
	err := NewModelError("Fit", "empty data", ErrEmptyData)

	if !Is(err, ErrEmptyData) {
		t.Error("Is() should find the wrapped sentinel")
	}

	var modelErr *ModelError
	if !As(err, &modelErr) {
		t.Fatalf("As() failed for %T", err)
	}
	if modelErr.Op != "Fit" {
		t.Errorf("Op = %q", modelErr.Op)
	}
}

func TestDataError(t *testing.T) {
	err := NewDataError("train.csv", "missing required column 'text'")

	var dataErr *DataError
	if !As(err, &dataErr) {
		t.Fatalf("As() failed for %T", err)
	}
	if dataErr.Source != "train.csv" {
		t.Errorf("Source = %q", dataErr.Source)
	}
	if !strings.Contains(err.Error(), "train.csv") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWrapPreservesChain(t *testing.T) {
	base := NewValueError("Score", "empty vector")
	wrapped := Wrapf(base, "fold %d failed", 2)

	var valErr *ValueError
	if !As(wrapped, &valErr) {
		t.Error("As() should see through Wrapf")
	}
	if !strings.Contains(wrapped.Error(), "fold 2 failed") {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}

package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ysatoh/mlpipe/core/model"
	"github.com/ysatoh/mlpipe/pkg/errors"
)

// TfidfTransformer reweights a term-count matrix by inverse document
// frequency and normalizes each row. The idf vector is learned once during
// Fit and replayed unchanged at transform time.
type TfidfTransformer struct {
	model.BaseEstimator

	// SmoothIDF adds one to document frequencies, as if an extra document
	// contained every term once, preventing zero divisions.
	SmoothIDF bool

	// SublinearTF replaces term counts tf with 1 + ln(tf).
	SublinearTF bool

	// Norm is the row normalization: "l2" or "none".
	Norm string

	// IDF is the learned inverse document frequency vector.
	IDF []float64

	// NFeatures is the number of columns seen during Fit.
	NFeatures int
}

// NewTfidfTransformer creates a TfidfTransformer with smooth idf and L2
// row normalization.
func NewTfidfTransformer() *TfidfTransformer {
	return &TfidfTransformer{
		SmoothIDF: true,
		Norm:      "l2",
	}
}

// Fit learns the idf vector from a term-count matrix.
func (t *TfidfTransformer) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("TfidfTransformer.Fit", "empty data", errors.ErrEmptyData)
	}

	t.NFeatures = c
	t.IDF = make([]float64, c)

	for j := 0; j < c; j++ {
		df := 0
		for i := 0; i < r; i++ {
			if X.At(i, j) > 0 {
				df++
			}
		}
		n, d := float64(r), float64(df)
		if t.SmoothIDF {
			n, d = n+1, d+1
		}
		if d == 0 {
			// Term absent from every document; leave its weight neutral.
			t.IDF[j] = 1
			continue
		}
		t.IDF[j] = math.Log(n/d) + 1
	}

	t.SetFitted()
	return nil
}

// Transform applies the learned idf weighting and row normalization.
func (t *TfidfTransformer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !t.IsFitted() {
		return nil, errors.NewNotFittedError("TfidfTransformer", "Transform")
	}

	r, c := X.Dims()
	if c != t.NFeatures {
		return nil, errors.NewDimensionError("TfidfTransformer.Transform", t.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			tf := X.At(i, j)
			if tf > 0 && t.SublinearTF {
				tf = 1 + math.Log(tf)
			}
			result.Set(i, j, tf*t.IDF[j])
		}

		if t.Norm == "l2" {
			norm := 0.0
			for j := 0; j < c; j++ {
				v := result.At(i, j)
				norm += v * v
			}
			if norm > 0 {
				norm = math.Sqrt(norm)
				for j := 0; j < c; j++ {
					result.Set(i, j, result.At(i, j)/norm)
				}
			}
		}
	}
	return result, nil
}

// FitTransform fits on X and transforms it in one call.
func (t *TfidfTransformer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := t.Fit(X); err != nil {
		return nil, err
	}
	return t.Transform(X)
}

// GetParams returns the transformer's hyperparameters.
func (t *TfidfTransformer) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"smooth_idf":   t.SmoothIDF,
		"sublinear_tf": t.SublinearTF,
		"norm":         t.Norm,
	}
}

// SetParams sets the transformer's hyperparameters.
func (t *TfidfTransformer) SetParams(params map[string]interface{}) error {
	for name, value := range params {
		switch name {
		case "smooth_idf":
			val, ok := value.(bool)
			if !ok {
				return errors.NewValidationError(name, "expected bool", value)
			}
			t.SmoothIDF = val
		case "sublinear_tf":
			val, ok := value.(bool)
			if !ok {
				return errors.NewValidationError(name, "expected bool", value)
			}
			t.SublinearTF = val
		case "norm":
			val, ok := value.(string)
			if !ok {
				return errors.NewValidationError(name, "expected string", value)
			}
			if val != "l2" && val != "none" {
				return errors.NewValidationError(name, "must be 'l2' or 'none'", value)
			}
			t.Norm = val
		default:
			return errors.NewValidationError(name, "unknown parameter", value)
		}
	}
	return nil
}

// String returns a readable representation.
func (t *TfidfTransformer) String() string {
	return fmt.Sprintf("TfidfTransformer(smooth_idf=%t, sublinear_tf=%t, norm=%s)",
		t.SmoothIDF, t.SublinearTF, t.Norm)
}

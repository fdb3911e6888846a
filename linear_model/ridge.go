package linear_model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ysatoh/mlpipe/core/model"
	"github.com/ysatoh/mlpipe/pkg/errors"
)

// Ridge fits L2-regularized least squares in closed form:
// coefficients = (XᵀX + αI)⁻¹Xᵀy. The intercept column is not penalized
// beyond the shared α, which is adequate for the standardized inputs the
// regression pipeline feeds it.
type Ridge struct {
	model.BaseEstimator

	// Alpha is the L2 regularization strength.
	Alpha float64

	// FitIntercept controls whether an intercept term is estimated.
	FitIntercept bool

	// Coef holds the learned coefficients (n_features × n_targets).
	Coef *mat.Dense

	// Intercept holds the learned intercept terms (1 × n_targets).
	Intercept *mat.Dense

	// NFeaturesIn is the number of features seen during Fit.
	NFeaturesIn int

	// NTargets is the number of target columns seen during Fit.
	NTargets int
}

// RidgeOption configures a Ridge.
type RidgeOption func(*Ridge)

// WithAlpha sets the regularization strength.
func WithAlpha(alpha float64) RidgeOption {
	return func(r *Ridge) { r.Alpha = alpha }
}

// WithRidgeFitIntercept sets whether an intercept is estimated.
func WithRidgeFitIntercept(fit bool) RidgeOption {
	return func(r *Ridge) { r.FitIntercept = fit }
}

// NewRidge creates a Ridge with α=1 and an intercept.
func NewRidge(opts ...RidgeOption) *Ridge {
	r := &Ridge{
		Alpha:        1.0,
		FitIntercept: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fit solves the regularized least squares problem.
func (r *Ridge) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()

	if nSamples == 0 || nFeatures == 0 {
		return errors.NewModelError("Ridge.Fit", "empty data", errors.ErrEmptyData)
	}
	if yRows != nSamples {
		return errors.NewDimensionError("Ridge.Fit", nSamples, yRows, 0)
	}
	if r.Alpha < 0 {
		return errors.NewValidationError("alpha", "must be non-negative", r.Alpha)
	}

	r.NFeaturesIn = nFeatures
	r.NTargets = yCols

	XFit := designMatrix(X, r.FitIntercept)

	coef, _, _, err := solveRidge(XFit, y, r.Alpha, 1e-6)
	if err != nil {
		return errors.NewModelError("Ridge.Fit", "regularized solve failed", err)
	}
	r.Coef, r.Intercept = splitCoefficients(coef, r.FitIntercept)

	r.SetFitted()
	return nil
}

// Predict returns predictions for the given samples.
func (r *Ridge) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError("Ridge", "Predict")
	}

	nSamples, nFeatures := X.Dims()
	if nFeatures != r.NFeaturesIn {
		return nil, errors.NewDimensionError("Ridge.Predict", r.NFeaturesIn, nFeatures, 1)
	}

	return predictLinear(X, r.Coef, r.Intercept, nSamples, r.NTargets), nil
}

// Score returns the coefficient of determination R² of the prediction.
func (r *Ridge) Score(X, y mat.Matrix) (float64, error) {
	yPred, err := r.Predict(X)
	if err != nil {
		return 0, err
	}
	return r2Average(y, yPred)
}

// GetParams returns the model's hyperparameters.
func (r *Ridge) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"alpha":         r.Alpha,
		"fit_intercept": r.FitIntercept,
	}
}

// SetParams sets the model's hyperparameters.
func (r *Ridge) SetParams(params map[string]interface{}) error {
	for name, value := range params {
		switch name {
		case "alpha":
			val, ok := value.(float64)
			if !ok {
				return errors.NewValidationError(name, "expected float64", value)
			}
			r.Alpha = val
		case "fit_intercept":
			val, ok := value.(bool)
			if !ok {
				return errors.NewValidationError(name, "expected bool", value)
			}
			r.FitIntercept = val
		default:
			return errors.NewValidationError(name, "unknown parameter", value)
		}
	}
	return nil
}

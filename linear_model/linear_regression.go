// Package linear_model provides the stock linear estimators used by the
// workflows: ordinary least squares, ridge regression and binary logistic
// regression.
package linear_model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ysatoh/mlpipe/core/model"
	"github.com/ysatoh/mlpipe/pkg/errors"
)

// LinearRegression fits ordinary least squares via the normal equation.
// It supports multiple targets; learned attributes follow scikit-learn
// naming.
type LinearRegression struct {
	model.BaseEstimator

	// FitIntercept controls whether an intercept term is estimated.
	FitIntercept bool

	// Coef holds the learned coefficients (n_features × n_targets).
	Coef *mat.Dense

	// Intercept holds the learned intercept terms (1 × n_targets).
	Intercept *mat.Dense

	// Rank is the effective rank of XᵀX determined from its singular
	// values.
	Rank int

	// Singular holds the singular values of XᵀX.
	Singular []float64

	// NFeaturesIn is the number of features seen during Fit.
	NFeaturesIn int

	// NTargets is the number of target columns seen during Fit.
	NTargets int

	tol float64
}

// LinearRegressionOption configures a LinearRegression.
type LinearRegressionOption func(*LinearRegression)

// WithFitIntercept sets whether an intercept is estimated.
func WithFitIntercept(fit bool) LinearRegressionOption {
	return func(lr *LinearRegression) { lr.FitIntercept = fit }
}

// NewLinearRegression creates a LinearRegression with an intercept.
func NewLinearRegression(opts ...LinearRegressionOption) *LinearRegression {
	lr := &LinearRegression{
		FitIntercept: true,
		tol:          1e-6,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit solves the least squares problem on the training data.
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()

	if nSamples == 0 || nFeatures == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if yRows != nSamples {
		return errors.NewDimensionError("LinearRegression.Fit", nSamples, yRows, 0)
	}

	lr.NFeaturesIn = nFeatures
	lr.NTargets = yCols

	XFit := designMatrix(X, lr.FitIntercept)

	coef, singular, rank, err := solveNormalEquation(XFit, y, lr.tol)
	if err != nil {
		return errors.NewModelError("LinearRegression.Fit", "normal equation solve failed", err)
	}
	lr.Singular = singular
	lr.Rank = rank
	lr.Coef, lr.Intercept = splitCoefficients(coef, lr.FitIntercept)

	lr.SetFitted()
	return nil
}

// Predict returns predictions for the given samples.
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "Predict")
	}

	nSamples, nFeatures := X.Dims()
	if nFeatures != lr.NFeaturesIn {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.NFeaturesIn, nFeatures, 1)
	}

	return predictLinear(X, lr.Coef, lr.Intercept, nSamples, lr.NTargets), nil
}

// Score returns the coefficient of determination R² of the prediction,
// averaged over targets.
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return r2Average(y, yPred)
}

// GetParams returns the model's hyperparameters.
func (lr *LinearRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"fit_intercept": lr.FitIntercept,
	}
}

// SetParams sets the model's hyperparameters.
func (lr *LinearRegression) SetParams(params map[string]interface{}) error {
	for name, value := range params {
		switch name {
		case "fit_intercept":
			val, ok := value.(bool)
			if !ok {
				return errors.NewValidationError(name, "expected bool", value)
			}
			lr.FitIntercept = val
		default:
			return errors.NewValidationError(name, "unknown parameter", value)
		}
	}
	return nil
}

// Package model provides the shared interfaces and base types that every
// estimator, transformer and pipeline in the library builds on.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Scorer is the interface for models that can compute a scalar quality
// metric for predictions against ground truth (R² for regressors,
// accuracy for classifiers).
type Scorer interface {
	Score(X, y mat.Matrix) (float64, error)
}

// Regressor combines the capabilities of regression models.
type Regressor interface {
	Estimator
	Scorer
}

// Classifier combines the capabilities of classification models.
type Classifier interface {
	Estimator
	Scorer

	// PredictProba returns probability estimates for each class.
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}

// ParameterGetter is the interface for models that expose their
// hyperparameters.
type ParameterGetter interface {
	GetParams() map[string]interface{}
}

// ParameterSetter is the interface for models whose hyperparameters can be
// modified after construction, used by grid and budgeted searches.
type ParameterSetter interface {
	SetParams(params map[string]interface{}) error
}

package model

import "gonum.org/v1/gonum/mat"

// Fitter is the interface for models that learn from training data.
type Fitter interface {
	// Fit trains the model on the given samples and targets.
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for models that predict on new data.
type Predictor interface {
	// Predict returns predictions for the given samples.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Estimator is the capability set shared by every supervised model:
// it can be fitted, it can predict, and it knows whether it was fitted.
type Estimator interface {
	Fitter
	Predictor
	IsFitted() bool
}

package linear_model

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ysatoh/mlpipe/core/model"
	"github.com/ysatoh/mlpipe/pkg/errors"
)

// LogisticRegression is a binary classifier trained by batch gradient
// descent on the L2-regularized log loss. Targets must be 0/1 in a single
// column; the one-vs-rest wrapper in the multiclass package drives one
// instance per label for multilabel problems.
type LogisticRegression struct {
	model.BaseEstimator

	// C is the inverse regularization strength.
	C float64

	// LearningRate is the gradient descent step size.
	LearningRate float64

	// MaxIter bounds the number of gradient descent iterations.
	MaxIter int

	// Tol stops training when the loss improvement falls below it.
	Tol float64

	// FitIntercept controls whether an intercept term is estimated.
	FitIntercept bool

	// Coef holds the learned feature weights.
	Coef []float64

	// Intercept holds the learned intercept term.
	Intercept float64

	// NFeaturesIn is the number of features seen during Fit.
	NFeaturesIn int

	// NIter is the number of iterations actually run.
	NIter int
}

// LogisticRegressionOption configures a LogisticRegression.
type LogisticRegressionOption func(*LogisticRegression)

// WithC sets the inverse regularization strength.
func WithC(c float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) { lr.C = c }
}

// WithLearningRate sets the gradient descent step size.
func WithLearningRate(rate float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) { lr.LearningRate = rate }
}

// WithMaxIter sets the iteration bound.
func WithMaxIter(maxIter int) LogisticRegressionOption {
	return func(lr *LogisticRegression) { lr.MaxIter = maxIter }
}

// WithTol sets the convergence tolerance.
func WithTol(tol float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) { lr.Tol = tol }
}

// NewLogisticRegression creates a LogisticRegression with scikit-learn-like
// defaults (C=1, intercept on).
func NewLogisticRegression(opts ...LogisticRegressionOption) *LogisticRegression {
	lr := &LogisticRegression{
		C:            1.0,
		LearningRate: 0.5,
		MaxIter:      1000,
		Tol:          1e-6,
		FitIntercept: true,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// Fit trains the classifier on 0/1 targets.
func (lr *LogisticRegression) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()

	if nSamples == 0 || nFeatures == 0 {
		return errors.NewModelError("LogisticRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if yRows != nSamples {
		return errors.NewDimensionError("LogisticRegression.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewDimensionError("LogisticRegression.Fit", 1, yCols, 1)
	}

	positives := 0
	for i := 0; i < nSamples; i++ {
		v := y.At(i, 0)
		if v != 0 && v != 1 {
			return errors.NewValueError("LogisticRegression.Fit", "targets must be 0 or 1")
		}
		if v == 1 {
			positives++
		}
	}

	lr.NFeaturesIn = nFeatures
	lr.Coef = make([]float64, nFeatures)
	lr.Intercept = 0
	lr.NIter = 0

	// A single-class training column occurs for rare labels on small
	// folds; fall back to an intercept-only model at the class prior.
	if positives == 0 || positives == nSamples {
		prior := (float64(positives) + 0.5) / (float64(nSamples) + 1)
		lr.Intercept = math.Log(prior / (1 - prior))
		lr.SetFitted()
		return nil
	}

	lambda := 0.0
	if lr.C > 0 {
		lambda = 1 / lr.C
	}
	n := float64(nSamples)
	prevLoss := math.Inf(1)

	for iter := 0; iter < lr.MaxIter; iter++ {
		gradW := make([]float64, nFeatures)
		gradB := 0.0
		loss := 0.0

		for i := 0; i < nSamples; i++ {
			z := lr.Intercept
			for j := 0; j < nFeatures; j++ {
				z += X.At(i, j) * lr.Coef[j]
			}
			p := sigmoid(z)
			diff := p - y.At(i, 0)
			for j := 0; j < nFeatures; j++ {
				gradW[j] += diff * X.At(i, j)
			}
			gradB += diff

			const eps = 1e-15
			p = math.Min(math.Max(p, eps), 1-eps)
			if y.At(i, 0) == 1 {
				loss -= math.Log(p)
			} else {
				loss -= math.Log(1 - p)
			}
		}

		for j := 0; j < nFeatures; j++ {
			gradW[j] = gradW[j]/n + lambda*lr.Coef[j]/n
			loss += lambda * lr.Coef[j] * lr.Coef[j] / (2 * n)
			lr.Coef[j] -= lr.LearningRate * gradW[j]
		}
		if lr.FitIntercept {
			lr.Intercept -= lr.LearningRate * gradB / n
		}
		loss /= n
		lr.NIter = iter + 1

		if math.Abs(prevLoss-loss) < lr.Tol {
			break
		}
		prevLoss = loss
	}

	lr.SetFitted()
	return nil
}

// decision computes the linear decision value for one sample row.
func (lr *LogisticRegression) decision(X mat.Matrix, i int) float64 {
	z := lr.Intercept
	for j := 0; j < lr.NFeaturesIn; j++ {
		z += X.At(i, j) * lr.Coef[j]
	}
	return z
}

// PredictProba returns class probabilities with columns [P(0), P(1)].
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LogisticRegression", "PredictProba")
	}

	nSamples, nFeatures := X.Dims()
	if nFeatures != lr.NFeaturesIn {
		return nil, errors.NewDimensionError("LogisticRegression.PredictProba", lr.NFeaturesIn, nFeatures, 1)
	}

	proba := mat.NewDense(nSamples, 2, nil)
	for i := 0; i < nSamples; i++ {
		p := sigmoid(lr.decision(X, i))
		proba.Set(i, 0, 1-p)
		proba.Set(i, 1, p)
	}
	return proba, nil
}

// Predict returns 0/1 class predictions at the 0.5 probability threshold.
func (lr *LogisticRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	proba, err := lr.PredictProba(X)
	if err != nil {
		return nil, err
	}

	nSamples, _ := proba.Dims()
	pred := mat.NewDense(nSamples, 1, nil)
	for i := 0; i < nSamples; i++ {
		if proba.At(i, 1) >= 0.5 {
			pred.Set(i, 0, 1)
		}
	}
	return pred, nil
}

// Score returns the classification accuracy against 0/1 targets.
func (lr *LogisticRegression) Score(X, y mat.Matrix) (float64, error) {
	pred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	nSamples, _ := y.Dims()
	if nSamples == 0 {
		return 0, errors.NewValueError("LogisticRegression.Score", "empty data")
	}
	correct := 0
	for i := 0; i < nSamples; i++ {
		if pred.At(i, 0) == y.At(i, 0) {
			correct++
		}
	}
	return float64(correct) / float64(nSamples), nil
}

// GetParams returns the model's hyperparameters.
func (lr *LogisticRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"c":             lr.C,
		"learning_rate": lr.LearningRate,
		"max_iter":      lr.MaxIter,
		"tol":           lr.Tol,
		"fit_intercept": lr.FitIntercept,
	}
}

// SetParams sets the model's hyperparameters.
func (lr *LogisticRegression) SetParams(params map[string]interface{}) error {
	for name, value := range params {
		switch name {
		case "c":
			val, ok := value.(float64)
			if !ok {
				return errors.NewValidationError(name, "expected float64", value)
			}
			lr.C = val
		case "learning_rate":
			val, ok := value.(float64)
			if !ok {
				return errors.NewValidationError(name, "expected float64", value)
			}
			lr.LearningRate = val
		case "max_iter":
			val, ok := value.(int)
			if !ok {
				return errors.NewValidationError(name, "expected int", value)
			}
			lr.MaxIter = val
		case "tol":
			val, ok := value.(float64)
			if !ok {
				return errors.NewValidationError(name, "expected float64", value)
			}
			lr.Tol = val
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

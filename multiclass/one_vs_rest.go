// Package multiclass adapts binary classifiers to multilabel problems by
// fitting one independent classifier per label column.
package multiclass

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ysatoh/mlpipe/core/model"
	"github.com/ysatoh/mlpipe/core/parallel"
	"github.com/ysatoh/mlpipe/metrics"
	"github.com/ysatoh/mlpipe/pkg/errors"
)

// BinaryClassifier is the capability set a base estimator must provide:
// fit on 0/1 column targets, predict 0/1 columns, and expose class
// probabilities with columns [P(0), P(1)].
type BinaryClassifier interface {
	model.Estimator
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}

// OneVsRestClassifier fits one binary classifier per column of a multilabel
// indicator target. Predictions stack the per-label 0/1 columns back into
// an indicator matrix of the same width.
type OneVsRestClassifier struct {
	model.BaseEstimator

	// Estimators holds the fitted per-label classifiers, in label order.
	Estimators []BinaryClassifier

	// NLabels is the indicator width seen during Fit.
	NLabels int

	newEstimator func() BinaryClassifier
	params       map[string]interface{}
}

// NewOneVsRestClassifier creates a OneVsRestClassifier cloning fresh base
// estimators from the given constructor at fit time.
func NewOneVsRestClassifier(newEstimator func() BinaryClassifier) *OneVsRestClassifier {
	return &OneVsRestClassifier{newEstimator: newEstimator}
}

// Fit trains one base classifier per label column of the indicator matrix Y.
func (o *OneVsRestClassifier) Fit(X, Y mat.Matrix) error {
	if o.newEstimator == nil {
		return errors.NewValueError("OneVsRestClassifier.Fit", "no base estimator constructor (was this model restored from a file?)")
	}

	nSamples, _ := X.Dims()
	yRows, nLabels := Y.Dims()
	if nSamples == 0 {
		return errors.NewModelError("OneVsRestClassifier.Fit", "empty data", errors.ErrEmptyData)
	}
	if yRows != nSamples {
		return errors.NewDimensionError("OneVsRestClassifier.Fit", nSamples, yRows, 0)
	}
	if nLabels == 0 {
		return errors.NewValueError("OneVsRestClassifier.Fit", "indicator matrix has no label columns")
	}

	o.NLabels = nLabels
	o.Estimators = make([]BinaryClassifier, nLabels)
	errs := make([]error, nLabels)

	// Per-label fits are independent; chunk them across cores.
	const parallelThreshold = 4
	parallel.ParallelizeWithThreshold(nLabels, parallelThreshold, func(start, end int) {
		for j := start; j < end; j++ {
			est := o.newEstimator()
			if len(o.params) > 0 {
				if setter, ok := est.(model.ParameterSetter); ok {
					if err := setter.SetParams(o.params); err != nil {
						errs[j] = err
						continue
					}
				}
			}

			yCol := mat.NewDense(nSamples, 1, nil)
			for i := 0; i < nSamples; i++ {
				yCol.Set(i, 0, Y.At(i, j))
			}
			if err := est.Fit(X, yCol); err != nil {
				errs[j] = errors.Wrapf(err, "label %d fit failed", j)
				continue
			}
			o.Estimators[j] = est
		}
	})

	for _, err := range errs {
		if err != nil {
			o.Reset()
			return err
		}
	}

	o.SetFitted()
	return nil
}

// Predict returns an n×NLabels 0/1 indicator matrix.
func (o *OneVsRestClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !o.IsFitted() {
		return nil, errors.NewNotFittedError("OneVsRestClassifier", "Predict")
	}

	nSamples, _ := X.Dims()
	Y := mat.NewDense(nSamples, o.NLabels, nil)
	for j, est := range o.Estimators {
		pred, err := est.Predict(X)
		if err != nil {
			return nil, errors.Wrapf(err, "label %d prediction failed", j)
		}
		for i := 0; i < nSamples; i++ {
			Y.Set(i, j, pred.At(i, 0))
		}
	}
	return Y, nil
}

// PredictProba returns an n×NLabels matrix of positive-class probabilities
// per label, suitable for rank-based metrics such as coverage error.
func (o *OneVsRestClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !o.IsFitted() {
		return nil, errors.NewNotFittedError("OneVsRestClassifier", "PredictProba")
	}

	nSamples, _ := X.Dims()
	P := mat.NewDense(nSamples, o.NLabels, nil)
	for j, est := range o.Estimators {
		proba, err := est.PredictProba(X)
		if err != nil {
			return nil, errors.Wrapf(err, "label %d probability failed", j)
		}
		_, cols := proba.Dims()
		for i := 0; i < nSamples; i++ {
			P.Set(i, j, proba.At(i, cols-1))
		}
	}
	return P, nil
}

// Score returns the subset accuracy against a multilabel indicator target.
func (o *OneVsRestClassifier) Score(X, Y mat.Matrix) (float64, error) {
	pred, err := o.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.SubsetAccuracy(Y, pred)
}

// GetParams returns the parameters applied to the base estimators.
func (o *OneVsRestClassifier) GetParams() map[string]interface{} {
	params := make(map[string]interface{}, len(o.params))
	for k, v := range o.params {
		params[k] = v
	}
	return params
}

// SetParams stores base-estimator parameters; they are applied to every
// clone created by the next Fit.
func (o *OneVsRestClassifier) SetParams(params map[string]interface{}) error {
	if o.newEstimator != nil {
		// Validate against a throwaway clone so bad names fail here
		// rather than mid-fit.
		if setter, ok := o.newEstimator().(model.ParameterSetter); ok {
			if err := setter.SetParams(params); err != nil {
				return err
			}
		}
	}
	if o.params == nil {
		o.params = make(map[string]interface{}, len(params))
	}
	for k, v := range params {
		o.params[k] = v
	}
	return nil
}

// String returns a readable representation.
func (o *OneVsRestClassifier) String() string {
	if !o.IsFitted() {
		return "OneVsRestClassifier()"
	}
	return fmt.Sprintf("OneVsRestClassifier(n_labels=%d)", o.NLabels)
}

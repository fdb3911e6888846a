// Package pipeline composes transform stages and a final estimator into a
// single unit with the {fit, predict, score} capability set. A single Fit
// call drives every stage in order; Predict and Score replay the learned
// stage cascade before delegating to the final estimator.
package pipeline

import (
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/ysatoh/mlpipe/core/model"
	"github.com/ysatoh/mlpipe/pkg/errors"
)

// Stage is a named transform step.
type Stage struct {
	Name        string
	Transformer model.Transformer
}

// Pipeline chains zero or more transform stages into a final estimator.
// Stage and estimator failures, including panics inside delegated code,
// surface to the caller as errors; there is no retry or partial result.
type Pipeline struct {
	model.BaseEstimator

	// Stages are the transform steps, applied in order.
	Stages []Stage

	// FinalName is the name of the final estimator for parameter routing.
	FinalName string

	// Final is the estimator fitted on the output of the last stage.
	Final model.Estimator
}

// New creates a Pipeline from the given transform stages. The final
// estimator is attached with WithEstimator.
func New(stages ...Stage) *Pipeline {
	return &Pipeline{Stages: stages}
}

// WithEstimator attaches the named final estimator and returns the
// pipeline for chaining.
func (p *Pipeline) WithEstimator(name string, est model.Estimator) *Pipeline {
	p.FinalName = name
	p.Final = est
	return p
}

// Fit drives FitTransform through every stage in order, then fits the
// final estimator on the transformed training data.
func (p *Pipeline) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "Pipeline.Fit")

	if p.Final == nil {
		return errors.NewValueError("Pipeline.Fit", "no final estimator attached")
	}
	for _, stage := range p.Stages {
		if stage.Transformer == nil {
			return errors.NewValueError("Pipeline.Fit", "stage '"+stage.Name+"' has no transformer")
		}
	}

	Xt := X
	for _, stage := range p.Stages {
		Xt, err = stage.Transformer.FitTransform(Xt)
		if err != nil {
			return errors.Wrapf(err, "stage '%s' fit failed", stage.Name)
		}
	}

	if err := p.Final.Fit(Xt, y); err != nil {
		return errors.Wrapf(err, "estimator '%s' fit failed", p.FinalName)
	}

	p.SetFitted()
	return nil
}

// Transform replays the learned stage cascade on new data.
func (p *Pipeline) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "Transform")
	}
	return p.applyStages(X)
}

func (p *Pipeline) applyStages(X mat.Matrix) (mat.Matrix, error) {
	Xt := X
	var err error
	for _, stage := range p.Stages {
		Xt, err = stage.Transformer.Transform(Xt)
		if err != nil {
			return nil, errors.Wrapf(err, "stage '%s' transform failed", stage.Name)
		}
	}
	return Xt, nil
}

// Predict replays the learned stages and delegates to the final estimator.
func (p *Pipeline) Predict(X mat.Matrix) (result mat.Matrix, err error) {
	defer errors.Recover(&err, "Pipeline.Predict")

	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "Predict")
	}
	Xt, err := p.applyStages(X)
	if err != nil {
		return nil, err
	}
	return p.Final.Predict(Xt)
}

// PredictProba replays the learned stages and delegates to the final
// estimator's probability output. It fails when the estimator does not
// expose probabilities.
func (p *Pipeline) PredictProba(X mat.Matrix) (result mat.Matrix, err error) {
	defer errors.Recover(&err, "Pipeline.PredictProba")

	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "PredictProba")
	}
	clf, ok := p.Final.(model.Classifier)
	if !ok {
		return nil, errors.NewValueError("Pipeline.PredictProba", "final estimator does not expose probabilities")
	}
	Xt, err := p.applyStages(X)
	if err != nil {
		return nil, err
	}
	return clf.PredictProba(Xt)
}

// Score replays the learned stages and delegates to the final estimator's
// scoring contract.
func (p *Pipeline) Score(X, y mat.Matrix) (score float64, err error) {
	defer errors.Recover(&err, "Pipeline.Score")

	if !p.IsFitted() {
		return 0, errors.NewNotFittedError("Pipeline", "Score")
	}
	scorer, ok := p.Final.(model.Scorer)
	if !ok {
		return 0, errors.NewValueError("Pipeline.Score", "final estimator does not implement Score")
	}
	Xt, err := p.applyStages(X)
	if err != nil {
		return 0, err
	}
	return scorer.Score(Xt, y)
}

// GetParams collects the parameters of every stage and the final
// estimator, prefixed with "<stage>__".
func (p *Pipeline) GetParams() map[string]interface{} {
	params := make(map[string]interface{})
	collect := func(name string, component interface{}) {
		getter, ok := component.(model.ParameterGetter)
		if !ok {
			return
		}
		for k, v := range getter.GetParams() {
			params[name+"__"+k] = v
		}
	}
	for _, stage := range p.Stages {
		collect(stage.Name, stage.Transformer)
	}
	if p.Final != nil {
		collect(p.FinalName, p.Final)
	}
	return params
}

// SetParams routes "<stage>__<param>" keys to the named stage or final
// estimator. Unknown stage names or parameters fail with a
// ValidationError.
func (p *Pipeline) SetParams(params map[string]interface{}) error {
	routed := make(map[string]map[string]interface{})
	for key, value := range params {
		name, param, ok := strings.Cut(key, "__")
		if !ok {
			return errors.NewValidationError(key, "expected '<stage>__<param>' form", value)
		}
		if routed[name] == nil {
			routed[name] = make(map[string]interface{})
		}
		routed[name][param] = value
	}

	for name, stageParams := range routed {
		component, ok := p.component(name)
		if !ok {
			return errors.NewValidationError(name, "no stage or estimator with this name", stageParams)
		}
		setter, ok := component.(model.ParameterSetter)
		if !ok {
			return errors.NewValidationError(name, "component does not accept parameters", stageParams)
		}
		if err := setter.SetParams(stageParams); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) component(name string) (interface{}, bool) {
	for _, stage := range p.Stages {
		if stage.Name == name {
			return stage.Transformer, true
		}
	}
	if p.Final != nil && name == p.FinalName {
		return p.Final, true
	}
	return nil, false
}

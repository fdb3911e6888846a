package automl

import (
	"encoding/gob"

	"github.com/ysatoh/mlpipe/core/model"
	"github.com/ysatoh/mlpipe/linear_model"
	"github.com/ysatoh/mlpipe/multiclass"
	"github.com/ysatoh/mlpipe/pipeline"
	"github.com/ysatoh/mlpipe/preprocessing"
)

func init() {
	// Pipeline stages and final estimators travel through interface-typed
	// fields, so their concrete types must be registered for gob.
	gob.Register(&pipeline.Pipeline{})
	gob.Register(&preprocessing.TfidfTransformer{})
	gob.Register(&preprocessing.StandardScaler{})
	gob.Register(&linear_model.LinearRegression{})
	gob.Register(&linear_model.Ridge{})
	gob.Register(&linear_model.LogisticRegression{})
	gob.Register(&multiclass.OneVsRestClassifier{})
}

// ExportPipeline writes a fitted pipeline to a file. The file can be
// reloaded with LoadPipeline in a later process for prediction.
func ExportPipeline(p *pipeline.Pipeline, filename string) error {
	return model.SaveModel(p, filename)
}

// LoadPipeline restores a pipeline written by ExportPipeline. The restored
// pipeline keeps its fitted state and learned stage parameters and can
// predict immediately.
func LoadPipeline(filename string) (*pipeline.Pipeline, error) {
	p := &pipeline.Pipeline{}
	if err := model.LoadModel(p, filename); err != nil {
		return nil, err
	}
	return p, nil
}

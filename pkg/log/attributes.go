package log

// Standard attribute keys for ML structured logging. Using shared keys
// keeps log output queryable across packages.
const (
	// OperationKey identifies the operation being performed ("fit",
	// "predict", "transform", "grid_search", "automl_search").
	OperationKey = "operation"

	// ModelNameKey identifies the estimator or transformer type.
	ModelNameKey = "model"

	// SamplesKey is the number of samples involved in the operation.
	SamplesKey = "samples"

	// FeaturesKey is the number of features involved in the operation.
	FeaturesKey = "features"

	// LabelsKey is the number of label columns for multilabel targets.
	LabelsKey = "labels"

	// ScoreKey is a scalar evaluation result.
	ScoreKey = "score"

	// FoldKey is a cross-validation fold index.
	FoldKey = "fold"

	// IterationKey is a search iteration index.
	IterationKey = "iteration"

	// DurationMsKey is an elapsed time in milliseconds.
	DurationMsKey = "duration_ms"

	// DroppedKey is a count of records dropped during ingestion filtering.
	DroppedKey = "dropped"
)

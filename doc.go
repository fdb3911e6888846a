// Package mlpipe provides batch machine-learning workflow building blocks
// for Go: dataset ingestion, multilabel encoding, train/test splitting,
// composable fit/predict pipelines, cross-validated hyperparameter search,
// and evaluation reporting.
//
// The API follows scikit-learn conventions so the two canonical workflows
// read the same way they would in Python.
//
// Multilabel text classification:
//
//	records, err := dataset.LoadCSV("reports.csv", dataset.CSVOptions{
//	    TextColumn:  "text",
//	    LabelColumn: "categories",
//	})
//	mlb := preprocessing.NewMultiLabelBinarizer()
//	Y, err := mlb.FitTransform(dataset.LabelSets(records))
//
//	vect := preprocessing.NewCountVectorizer()
//	X, err := vect.FitTransform(dataset.Texts(records))
//
//	pipe := pipeline.New(
//	    pipeline.Stage{Name: "tfidf", Transformer: preprocessing.NewTfidfTransformer()},
//	).WithEstimator("clf", multiclass.NewOneVsRestClassifier(func() multiclass.BinaryClassifier {
//	    return linear_model.NewLogisticRegression()
//	}))
//	err = pipe.Fit(XTrain, YTrain)
//
// Tabular regression:
//
//	reg := linear_model.NewLinearRegression()
//	err := reg.Fit(XTrain, yTrain)
//	r2, err := reg.Score(XTest, yTest)
//
// All feature and label data is carried as gonum mat.Matrix values. Every
// estimator and transformer reports failures through the structured error
// types in pkg/errors, and pipeline, modelselection and automl drive them
// purely through the {fit, predict, score} capability set.
//
// # Packages
//
//   - dataset: CSV ingestion, label filtering, synthetic data
//   - preprocessing: MultiLabelBinarizer, CountVectorizer, TfidfTransformer, StandardScaler
//   - pipeline: composed transform/estimator stages with a single Fit
//   - modelselection: TrainTestSplit, KFold, cross-validation, GridSearchCV
//   - linear_model: LinearRegression, Ridge, LogisticRegression
//   - multiclass: OneVsRestClassifier for multilabel targets
//   - metrics: classification and regression metrics
//   - automl: time-budgeted configuration search with pipeline export
//   - report: textual evaluation reports and score-curve plots
//   - core/model, core/parallel, pkg/errors, pkg/log: shared foundations
package mlpipe

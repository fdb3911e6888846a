// Package report renders human-readable evaluation summaries for fitted
// models: bounded per-example listings, per-label tallies, aggregate
// metrics, and an optional score-curve plot.
package report

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/ysatoh/mlpipe/metrics"
	"github.com/ysatoh/mlpipe/pkg/errors"
)

const textPreviewLen = 60

// Classification writes a multilabel evaluation report: up to maxExamples
// per-example lines, a per-label tally, and aggregate metrics. yTrue and
// yPred are n×k indicator matrices; labels names the k columns. scores may
// carry n×k per-label confidence values, adding the rank-based coverage
// error to the aggregates; pass nil when the model exposes no probabilities.
func Classification(w io.Writer, texts []string, yTrue, yPred, scores mat.Matrix, labels []string, maxExamples int) error {
	n, k := yTrue.Dims()
	pr, pc := yPred.Dims()
	if pr != n || pc != k {
		return errors.NewDimensionError("report.Classification", n*k, pr*pc, 0)
	}
	if len(labels) != k {
		return errors.NewDimensionError("report.Classification", k, len(labels), 1)
	}
	if len(texts) != n {
		return errors.NewDimensionError("report.Classification", n, len(texts), 0)
	}

	fmt.Fprintf(w, "Classification report (%d samples, %d labels)\n\n", n, k)

	shown := n
	if maxExamples > 0 && maxExamples < n {
		shown = maxExamples
	}
	for i := 0; i < shown; i++ {
		marker := "✗"
		if rowsEqual(yTrue, yPred, i, k) {
			marker = "✓"
		}
		fmt.Fprintf(w, "%s %s\n    true: %s\n    pred: %s\n",
			marker, preview(texts[i]),
			joinHeld(yTrue, i, labels),
			joinHeld(yPred, i, labels))
	}
	if shown < n {
		fmt.Fprintf(w, "... %d more samples\n", n-shown)
	}

	fmt.Fprintf(w, "\nPer-label results:\n")
	for j, label := range labels {
		var support, correct int
		for i := 0; i < n; i++ {
			if yTrue.At(i, j) > 0.5 {
				support++
			}
			if (yTrue.At(i, j) > 0.5) == (yPred.At(i, j) > 0.5) {
				correct++
			}
		}
		fmt.Fprintf(w, "  %-40s support=%-4d accuracy=%.3f\n",
			label, support, float64(correct)/float64(n))
	}

	subset, err := metrics.SubsetAccuracy(yTrue, yPred)
	if err != nil {
		return err
	}
	hamming, err := metrics.HammingLoss(yTrue, yPred)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nSubset accuracy: %.4f\nHamming loss:    %.4f\n", subset, hamming)

	if scores != nil {
		coverage, err := metrics.CoverageError(yTrue, scores)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Coverage error:  %.4f\n", coverage)
	}
	return nil
}

// Regression writes a regression evaluation report: up to maxExamples
// per-example lines and aggregate error metrics. yTrue and yPred are n×1
// column vectors.
func Regression(w io.Writer, yTrue, yPred mat.Matrix, maxExamples int) error {
	mse, err := metrics.MSE(yTrue, yPred)
	if err != nil {
		return err
	}
	rmse, err := metrics.RMSE(yTrue, yPred)
	if err != nil {
		return err
	}
	mae, err := metrics.MAE(yTrue, yPred)
	if err != nil {
		return err
	}

	n, _ := yTrue.Dims()
	fmt.Fprintf(w, "Regression report (%d samples)\n\n", n)

	shown := n
	if maxExamples > 0 && maxExamples < n {
		shown = maxExamples
	}
	for i := 0; i < shown; i++ {
		t := yTrue.At(i, 0)
		p := yPred.At(i, 0)
		fmt.Fprintf(w, "  true=%10.4f  pred=%10.4f  error=%10.4f\n", t, p, p-t)
	}
	if shown < n {
		fmt.Fprintf(w, "  ... %d more samples\n", n-shown)
	}

	fmt.Fprintf(w, "\nMSE:  %.4f\nRMSE: %.4f\nMAE:  %.4f\n", mse, rmse, mae)

	// R² is undefined when the target has no variance; skip it rather
	// than fail the whole report.
	if r2, err := metrics.R2Score(yTrue, yPred); err == nil {
		fmt.Fprintf(w, "R²:   %.4f\n", r2)
	}
	return nil
}

func rowsEqual(yTrue, yPred mat.Matrix, i, k int) bool {
	for j := 0; j < k; j++ {
		if (yTrue.At(i, j) > 0.5) != (yPred.At(i, j) > 0.5) {
			return false
		}
	}
	return true
}

func joinHeld(y mat.Matrix, i int, labels []string) string {
	var held []string
	for j, label := range labels {
		if y.At(i, j) > 0.5 {
			held = append(held, label)
		}
	}
	if len(held) == 0 {
		return "(none)"
	}
	return strings.Join(held, ", ")
}

func preview(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= textPreviewLen {
		return string(runes)
	}
	return string(runes[:textPreviewLen]) + "..."
}

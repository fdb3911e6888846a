// Package preprocessing provides the transform stages used ahead of model
// fitting: multilabel binarization, text vectorization, tf-idf weighting
// and feature scaling.
package preprocessing

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/ysatoh/mlpipe/core/model"
	"github.com/ysatoh/mlpipe/pkg/errors"
)

// MultiLabelBinarizer encodes variable-size label sets as fixed-width
// binary indicator vectors over a sorted label vocabulary.
//
// The vocabulary is derived once during Fit from the full label set;
// fitting twice on the same input yields the identical vocabulary ordering
// and therefore identical vectors. The encoding is invertible through
// InverseTransform.
type MultiLabelBinarizer struct {
	model.BaseEstimator

	// Classes is the sorted distinct label vocabulary fixed at Fit.
	Classes []string

	index map[string]int
}

// NewMultiLabelBinarizer creates an unfitted MultiLabelBinarizer.
func NewMultiLabelBinarizer() *MultiLabelBinarizer {
	return &MultiLabelBinarizer{}
}

// Fit derives the sorted distinct label vocabulary from the given label
// sets.
func (m *MultiLabelBinarizer) Fit(labelSets [][]string) error {
	if len(labelSets) == 0 {
		return errors.NewModelError("MultiLabelBinarizer.Fit", "empty data", errors.ErrEmptyData)
	}

	seen := make(map[string]bool)
	for _, labels := range labelSets {
		for _, label := range labels {
			seen[label] = true
		}
	}

	m.Classes = make([]string, 0, len(seen))
	for label := range seen {
		m.Classes = append(m.Classes, label)
	}
	sort.Strings(m.Classes)

	m.rebuildIndex()
	m.SetFitted()
	return nil
}

func (m *MultiLabelBinarizer) rebuildIndex() {
	m.index = make(map[string]int, len(m.Classes))
	for i, label := range m.Classes {
		m.index[label] = i
	}
}

// Transform projects every label set onto a binary indicator matrix of
// shape len(labelSets)×len(Classes). Labels not present in the fitted
// vocabulary are ignored.
func (m *MultiLabelBinarizer) Transform(labelSets [][]string) (*mat.Dense, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MultiLabelBinarizer", "Transform")
	}
	if m.index == nil {
		// A binarizer restored from a serialized pipeline carries Classes
		// but not the derived lookup map.
		m.rebuildIndex()
	}

	Y := mat.NewDense(len(labelSets), len(m.Classes), nil)
	for i, labels := range labelSets {
		for _, label := range labels {
			if j, ok := m.index[label]; ok {
				Y.Set(i, j, 1)
			}
		}
	}
	return Y, nil
}

// FitTransform fits the vocabulary and transforms the same label sets.
func (m *MultiLabelBinarizer) FitTransform(labelSets [][]string) (*mat.Dense, error) {
	if err := m.Fit(labelSets); err != nil {
		return nil, err
	}
	return m.Transform(labelSets)
}

// InverseTransform reconstructs the label subsets from an indicator matrix
// using the fitted vocabulary ordering. Values above 0.5 count as held.
func (m *MultiLabelBinarizer) InverseTransform(Y mat.Matrix) ([][]string, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MultiLabelBinarizer", "InverseTransform")
	}

	r, c := Y.Dims()
	if c != len(m.Classes) {
		return nil, errors.NewDimensionError("MultiLabelBinarizer.InverseTransform", len(m.Classes), c, 1)
	}

	sets := make([][]string, r)
	for i := 0; i < r; i++ {
		var labels []string
		for j := 0; j < c; j++ {
			if Y.At(i, j) > 0.5 {
				labels = append(labels, m.Classes[j])
			}
		}
		sets[i] = labels
	}
	return sets, nil
}

// GetParams returns the binarizer's parameters.
func (m *MultiLabelBinarizer) GetParams() map[string]interface{} {
	return map[string]interface{}{}
}

// String returns a readable representation.
func (m *MultiLabelBinarizer) String() string {
	if !m.IsFitted() {
		return "MultiLabelBinarizer()"
	}
	return fmt.Sprintf("MultiLabelBinarizer(n_classes=%d)", len(m.Classes))
}

package preprocessing

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/mat"

	"github.com/ysatoh/mlpipe/core/model"
	"github.com/ysatoh/mlpipe/core/parallel"
	"github.com/ysatoh/mlpipe/pkg/errors"
)

// CountVectorizer converts a collection of text documents into a matrix of
// term counts. The vocabulary is the sorted set of distinct terms observed
// during Fit; terms unseen at fit time are ignored at transform time.
type CountVectorizer struct {
	model.BaseEstimator

	// Lowercase folds documents to lower case before tokenization.
	Lowercase bool

	// MinDF drops terms that appear in fewer than MinDF documents.
	MinDF int

	// MaxFeatures caps the vocabulary at the most frequent terms
	// (0 means unlimited).
	MaxFeatures int

	// Vocabulary is the sorted term vocabulary fixed at Fit.
	Vocabulary []string

	index map[string]int
}

// NewCountVectorizer creates a CountVectorizer with defaults matching the
// usual text workflow: lowercasing on, no frequency cutoffs.
func NewCountVectorizer() *CountVectorizer {
	return &CountVectorizer{
		Lowercase: true,
		MinDF:     1,
	}
}

// tokenize splits a document into terms: maximal runs of letters or digits,
// at least two runes long.
func (v *CountVectorizer) tokenize(doc string) []string {
	if v.Lowercase {
		doc = strings.ToLower(doc)
	}
	tokens := strings.FieldsFunc(doc, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	terms := tokens[:0]
	for _, t := range tokens {
		if len([]rune(t)) >= 2 {
			terms = append(terms, t)
		}
	}
	return terms
}

// Fit learns the term vocabulary from the documents.
func (v *CountVectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return errors.NewModelError("CountVectorizer.Fit", "empty data", errors.ErrEmptyData)
	}

	minDF := v.MinDF
	if minDF < 1 {
		minDF = 1
	}

	docFreq := make(map[string]int)
	termFreq := make(map[string]int)
	for _, doc := range docs {
		inDoc := make(map[string]bool)
		for _, term := range v.tokenize(doc) {
			termFreq[term]++
			if !inDoc[term] {
				inDoc[term] = true
				docFreq[term]++
			}
		}
	}

	vocab := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df >= minDF {
			vocab = append(vocab, term)
		}
	}

	if v.MaxFeatures > 0 && len(vocab) > v.MaxFeatures {
		// Keep the most frequent terms; ties resolved alphabetically so
		// the vocabulary stays deterministic.
		sort.Slice(vocab, func(i, j int) bool {
			if termFreq[vocab[i]] != termFreq[vocab[j]] {
				return termFreq[vocab[i]] > termFreq[vocab[j]]
			}
			return vocab[i] < vocab[j]
		})
		vocab = vocab[:v.MaxFeatures]
	}
	sort.Strings(vocab)

	if len(vocab) == 0 {
		return errors.NewValueError("CountVectorizer.Fit", "empty vocabulary after pruning")
	}

	v.Vocabulary = vocab
	v.rebuildIndex()
	v.SetFitted()
	return nil
}

func (v *CountVectorizer) rebuildIndex() {
	v.index = make(map[string]int, len(v.Vocabulary))
	for i, term := range v.Vocabulary {
		v.index[term] = i
	}
}

// Transform maps documents to a len(docs)×len(Vocabulary) term-count
// matrix.
func (v *CountVectorizer) Transform(docs []string) (*mat.Dense, error) {
	if !v.IsFitted() {
		return nil, errors.NewNotFittedError("CountVectorizer", "Transform")
	}
	if v.index == nil {
		v.rebuildIndex()
	}

	X := mat.NewDense(len(docs), len(v.Vocabulary), nil)
	const parallelThreshold = 200
	parallel.ParallelizeWithThreshold(len(docs), parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for _, term := range v.tokenize(docs[i]) {
				if j, ok := v.index[term]; ok {
					X.Set(i, j, X.At(i, j)+1)
				}
			}
		}
	})
	return X, nil
}

// FitTransform fits the vocabulary and transforms the same documents.
func (v *CountVectorizer) FitTransform(docs []string) (*mat.Dense, error) {
	if err := v.Fit(docs); err != nil {
		return nil, err
	}
	return v.Transform(docs)
}

// GetParams returns the vectorizer's hyperparameters.
func (v *CountVectorizer) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"lowercase":    v.Lowercase,
		"min_df":       v.MinDF,
		"max_features": v.MaxFeatures,
	}
}

// SetParams sets the vectorizer's hyperparameters.
func (v *CountVectorizer) SetParams(params map[string]interface{}) error {
	for name, value := range params {
		switch name {
		case "lowercase":
			val, ok := value.(bool)
			if !ok {
				return errors.NewValidationError(name, "expected bool", value)
			}
			v.Lowercase = val
		case "min_df":
			val, ok := value.(int)
			if !ok {
				return errors.NewValidationError(name, "expected int", value)
			}
			v.MinDF = val
		case "max_features":
			val, ok := value.(int)
			if !ok {
				return errors.NewValidationError(name, "expected int", value)
			}
			v.MaxFeatures = val
		default:
			return errors.NewValidationError(name, "unknown parameter", value)
		}
	}
	return nil
}

// String returns a readable representation.
func (v *CountVectorizer) String() string {
	if !v.IsFitted() {
		return fmt.Sprintf("CountVectorizer(lowercase=%t, min_df=%d)", v.Lowercase, v.MinDF)
	}
	return fmt.Sprintf("CountVectorizer(lowercase=%t, min_df=%d, vocabulary_size=%d)",
		v.Lowercase, v.MinDF, len(v.Vocabulary))
}

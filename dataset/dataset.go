// Package dataset provides one-shot batch ingestion of training data:
// CSV files with a free-text field and a delimited category field, plus a
// synthetic generator for regression workflows.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/ysatoh/mlpipe/pkg/errors"
	"github.com/ysatoh/mlpipe/pkg/log"
)

// Record is one ingested example: a text body and its set of labels.
// Records are immutable after load.
type Record struct {
	Text   string
	Labels []string
}

// CSVOptions configures ingestion. TextColumn and LabelColumn are required
// header names. LabelSeparator defaults to ",". ReservedLabels are
// non-informative tokens discarded during filtering; when nil it defaults
// to {"Other"}. A record whose label set is empty after filtering is
// dropped entirely.
type CSVOptions struct {
	TextColumn     string
	LabelColumn    string
	LabelSeparator string
	ReservedLabels []string
}

func (o *CSVOptions) reserved() map[string]bool {
	tokens := o.ReservedLabels
	if tokens == nil {
		tokens = []string{"Other"}
	}
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

// LoadCSV reads records from a CSV file. Ingestion is a one-shot batch
// operation: a missing file, unreadable header or missing required column
// is fatal and returns a DataError.
func LoadCSV(path string, opts CSVOptions) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewDataError(path, "cannot open file: "+err.Error())
	}
	defer file.Close()

	records, err := ReadRecords(file, opts)
	if err != nil {
		var dataErr *errors.DataError
		if errors.As(err, &dataErr) && dataErr.Source == "csv" {
			return nil, errors.NewDataError(path, dataErr.Reason)
		}
		return nil, err
	}
	return records, nil
}

// ReadRecords reads records from an io.Reader containing CSV data with a
// header row. See LoadCSV for the error contract.
func ReadRecords(r io.Reader, opts CSVOptions) ([]Record, error) {
	if opts.TextColumn == "" || opts.LabelColumn == "" {
		return nil, errors.NewValidationError("CSVOptions", "TextColumn and LabelColumn are required", opts)
	}

	sep := opts.LabelSeparator
	if sep == "" {
		sep = ","
	}
	reserved := opts.reserved()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewDataError("csv", "cannot read header: "+err.Error())
	}

	textIdx, labelIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case opts.TextColumn:
			textIdx = i
		case opts.LabelColumn:
			labelIdx = i
		}
	}
	if textIdx < 0 {
		return nil, errors.NewDataError("csv", "missing required column '"+opts.TextColumn+"'")
	}
	if labelIdx < 0 {
		return nil, errors.NewDataError("csv", "missing required column '"+opts.LabelColumn+"'")
	}

	var records []Record
	dropped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewDataError("csv", "malformed row: "+err.Error())
		}
		if textIdx >= len(row) || labelIdx >= len(row) {
			return nil, errors.NewDataError("csv", "row has fewer fields than the header")
		}

		labels := parseLabels(row[labelIdx], sep, reserved)
		if len(labels) == 0 {
			// Degenerate label set after filtering: silently excluded.
			dropped++
			continue
		}
		records = append(records, Record{
			Text:   row[textIdx],
			Labels: labels,
		})
	}

	log.GetLogger().Info("csv ingestion complete",
		log.OperationKey, "ingest",
		log.SamplesKey, len(records),
		log.DroppedKey, dropped,
	)
	return records, nil
}

// parseLabels splits a delimited label field into a deduplicated label set,
// discarding empty tokens and reserved non-informative tokens.
func parseLabels(field, sep string, reserved map[string]bool) []string {
	var labels []string
	seen := make(map[string]bool)
	for _, token := range strings.Split(field, sep) {
		token = strings.TrimSpace(token)
		if token == "" || reserved[token] || seen[token] {
			continue
		}
		seen[token] = true
		labels = append(labels, token)
	}
	return labels
}

// Texts returns the text field of each record, in order.
func Texts(records []Record) []string {
	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Text
	}
	return texts
}

// LabelSets returns the label set of each record, in order.
func LabelSets(records []Record) [][]string {
	sets := make([][]string, len(records))
	for i, r := range records {
		sets[i] = r.Labels
	}
	return sets
}

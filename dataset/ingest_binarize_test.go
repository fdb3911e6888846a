package dataset_test

import (
	"reflect"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/ysatoh/mlpipe/dataset"
	"github.com/ysatoh/mlpipe/preprocessing"
)

// Ingestion and binarization together: the record left with only reserved
// labels disappears, and the survivors encode over the sorted vocabulary.
func TestIngestThenBinarize(t *testing.T) {
	csv := "text,category\n" +
		"freedom of speech violation,\"Civil and Political Rights\"\n" +
		"unfair trial,\"Civil and Political Rights,Judicial System\"\n" +
		"no labels here,Other\n"

	records, err := dataset.ReadRecords(strings.NewReader(csv), dataset.CSVOptions{
		TextColumn:  "text",
		LabelColumn: "category",
	})
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2 (reserved-only record dropped)", len(records))
	}

	mlb := preprocessing.NewMultiLabelBinarizer()
	Y, err := mlb.FitTransform(dataset.LabelSets(records))
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	wantClasses := []string{"Civil and Political Rights", "Judicial System"}
	if !reflect.DeepEqual(mlb.Classes, wantClasses) {
		t.Errorf("Classes = %v, want %v", mlb.Classes, wantClasses)
	}

	want := mat.NewDense(2, 2, []float64{
		1, 0,
		1, 1,
	})
	if !mat.Equal(Y, want) {
		t.Errorf("indicator matrix = %v, want %v", mat.Formatted(Y), mat.Formatted(want))
	}

	back, err := mlb.InverseTransform(Y)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, dataset.LabelSets(records)) {
		t.Errorf("InverseTransform() = %v, want the original label sets", back)
	}
}

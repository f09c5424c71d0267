package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/epi"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/model"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Variant:      model.SIR,
		Compartments: []string{"S", "I", "R"},
		Times:        []float64{0, 1},
		States: []epi.State{
			{990, 10, 0},
			{980, 15, 5},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testResult()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	wantHeader := []string{"time", "S", "I", "R"}
	for i, h := range wantHeader {
		if records[0][i] != h {
			t.Errorf("header[%d] = %s, want %s", i, records[0][i], h)
		}
	}
	if records[1][0] != "0.000000" || records[2][2] != "15.000000" {
		t.Errorf("unexpected rows: %v", records[1:])
	}
}

func TestWriteTidyCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTidyCSV(&buf, testResult()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	// header + 2 time points x 3 compartments
	if len(records) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(records))
	}
	if records[0][1] != "compartment" {
		t.Errorf("header = %v", records[0])
	}
	// second time point, I compartment
	if records[5][0] != "1.000000" || records[5][1] != "I" || records[5][2] != "15.000000" {
		t.Errorf("row = %v", records[5])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	metrics := map[string]float64{"peak_infected": 15}
	if err := WriteJSON(&buf, 1000, testResult(), metrics); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if doc.Variant != "sir" || doc.Population != 1000 {
		t.Errorf("document identity: %+v", doc)
	}
	if len(doc.Times) != 2 || len(doc.States) != 2 {
		t.Errorf("document series: %d times, %d states", len(doc.Times), len(doc.States))
	}
	if doc.States[1][1] != 15 {
		t.Errorf("states[1][1] = %f, want 15", doc.States[1][1])
	}
	if doc.Metrics["peak_infected"] != 15 {
		t.Errorf("metrics lost: %v", doc.Metrics)
	}
}

func TestCurvesSVG(t *testing.T) {
	svg := CurvesSVG(testResult(), 640, 480)

	if !strings.HasPrefix(svg, `<?xml`) || !strings.Contains(svg, "</svg>") {
		t.Error("output must be a complete SVG document")
	}
	if got := strings.Count(svg, "<polyline"); got != 3 {
		t.Errorf("expected 3 polylines, got %d", got)
	}
	for _, color := range []string{"#4c9be8", "#e84c4c", "#4ce88a"} {
		if !strings.Contains(svg, color) {
			t.Errorf("missing curve color %s", color)
		}
	}
}

func TestCurvesSVG_Empty(t *testing.T) {
	empty := &sim.Result{Variant: model.SIR, Compartments: []string{"S", "I", "R"}}
	if svg := CurvesSVG(empty, 640, 480); svg != "" {
		t.Error("empty result must render nothing")
	}
}

// Package export renders finished results for external consumers: tabular
// CSV (wide or tidy long format), JSON, and an SVG chart of the compartment
// curves.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/sim"
)

// Document is the JSON export schema for one run.
type Document struct {
	Variant      string             `json:"variant"`
	Population   float64            `json:"population"`
	Compartments []string           `json:"compartments"`
	Times        []float64          `json:"times"`
	States       [][]float64        `json:"states"`
	Metrics      map[string]float64 `json:"metrics,omitempty"`
}

func WriteJSON(w io.Writer, population float64, result *sim.Result, metrics map[string]float64) error {
	doc := Document{
		Variant:      string(result.Variant),
		Population:   population,
		Compartments: result.Compartments,
		Times:        result.Times,
		States:       make([][]float64, len(result.States)),
		Metrics:      metrics,
	}
	for i, s := range result.States {
		doc.States[i] = s
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteCSV emits one row per time point with one column per compartment.
func WriteCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := append([]string{"time"}, result.Compartments...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range result.States {
		row := []string{formatFloat(result.Times[i])}
		for _, val := range result.States[i] {
			row = append(row, formatFloat(val))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

// WriteTidyCSV emits long format: one row per (time, compartment, value),
// the shape plotting libraries want.
func WriteTidyCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"time", "compartment", "value"}); err != nil {
		return err
	}

	for i := range result.States {
		t := formatFloat(result.Times[i])
		for j, name := range result.Compartments {
			row := []string{t, name, formatFloat(result.States[i][j])}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

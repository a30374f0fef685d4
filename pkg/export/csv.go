// Package export turns a serialized record into the submission artifacts:
// a CSV in the fixed Section/Record #/Field/Value schema and a printable PDF
// summary.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/goliatone/go-surveyform/pkg/engine"
)

// CSVHeader is the fixed column layout of the long-format export.
var CSVHeader = []string{"Section", "Record #", "Field", "Value"}

// CSV renders the record as UTF-8 CSV, one row per tuple, preserving tuple
// order so repeated exports of the same record are byte-identical.
func CSV(rec engine.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(CSVHeader); err != nil {
		return nil, fmt.Errorf("export: write csv header: %w", err)
	}
	for _, t := range rec.Tuples {
		row := []string{t.Section, strconv.Itoa(t.Record), t.FieldKey, t.Value}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("export: write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseCSV reconstructs the serialized tuples from a CSV export. It is the
// inverse of CSV and exists so downstream tooling (and the round-trip tests)
// can consume the artifact without string munging.
func ParseCSV(data []byte) ([]engine.Tuple, error) {
	r := csv.NewReader(bytes.NewReader(data))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("export: parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("export: parse csv: missing header")
	}
	tuples := make([]engine.Tuple, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(CSVHeader) {
			return nil, fmt.Errorf("export: parse csv: expected %d columns, got %d", len(CSVHeader), len(row))
		}
		record, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("export: parse csv: record number %q: %w", row[1], err)
		}
		tuples = append(tuples, engine.Tuple{
			Section:  row[0],
			Record:   record,
			FieldKey: row[2],
			Value:    row[3],
		})
	}
	return tuples, nil
}

package surveys

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/goliatone/go-surveyform/pkg/engine"
)

// AnalyticsHeader is the column layout of the research analytics export.
var AnalyticsHeader = []string{
	"question_id", "response_text", "likert_response",
	"experience_years", "proficiency", "frequency", "complexity", "timestamp",
}

// sectionAbbreviations maps research section titles to short question ids.
var sectionAbbreviations = map[string]string{
	"Prescriptive Knowledge":          "PK",
	"Human vs. Non-Human Actors":      "HNH",
	"Complexity and Decomposition":    "CD",
	"Types of Causality":              "TC",
	"Mechanisms for Goal Achievement": "MGA",
	"Justificatory Knowledge":         "JK",
	"Boundary Conditions":             "BC",
	"Trust":                           "T",
}

// AnalyticsCSV renders the investment research submission into a long-format
// CSV with one row per research section. Likert answers contribute the
// ordinal, remaining answers are joined into the response text, and every row
// carries the participant characterization columns.
func AnalyticsCSV(rec engine.Record, submittedAt time.Time) ([]byte, error) {
	experience := tupleValue(rec, "investment_experience_years")
	proficiency := tupleValue(rec, "investment_proficiency")
	frequency := tupleValue(rec, "investment_frequency")
	complexity := tupleValue(rec, "portfolio_complexity")
	timestamp := submittedAt.Format("2006-01-02 15:04:05")

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(AnalyticsHeader); err != nil {
		return nil, fmt.Errorf("surveys: write analytics header: %w", err)
	}

	for _, title := range sectionOrder(rec) {
		if title == SectionParticipant || title == SectionAdditionalComments {
			continue
		}
		questionID := sectionAbbreviations[title]
		if questionID == "" {
			questionID = fallbackQuestionID(title)
		}

		likert := ""
		text := ""
		for _, t := range rec.Tuples {
			if t.Section != title || t.Value == "" {
				continue
			}
			if n, ok := likertAnswer(t.Value); ok {
				likert = strconv.Itoa(n)
			} else if text != "" {
				text += "; " + t.Value
			} else {
				text = t.Value
			}
		}
		if likert == "" && text == "" {
			continue
		}

		row := []string{questionID, text, likert,
			experience, proficiency, frequency, complexity, timestamp}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("surveys: write analytics row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("surveys: flush analytics csv: %w", err)
	}
	return buf.Bytes(), nil
}

// likertAnswer recognises stored scale anchors, which always carry the
// "N - Label" form with N in 1..5. Free text that merely starts with a digit
// stays in the response text.
func likertAnswer(value string) (int, bool) {
	if len(value) < 3 || value[0] < '1' || value[0] > '5' {
		return 0, false
	}
	if value[1:3] != " -" {
		return 0, false
	}
	return int(value[0] - '0'), true
}

func tupleValue(rec engine.Record, key string) string {
	for _, t := range rec.Tuples {
		if t.FieldKey == key {
			return t.Value
		}
	}
	return ""
}

func sectionOrder(rec engine.Record) []string {
	seen := map[string]bool{}
	var order []string
	for _, t := range rec.Tuples {
		if !seen[t.Section] {
			seen[t.Section] = true
			order = append(order, t.Section)
		}
	}
	return order
}

func fallbackQuestionID(title string) string {
	runes := []rune(title)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	id := ""
	for _, r := range runes {
		if r >= 'a' && r <= 'z' {
			r -= 32
		}
		id += string(r)
	}
	return id
}

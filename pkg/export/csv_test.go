package export_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-surveyform/pkg/engine"
	"github.com/goliatone/go-surveyform/pkg/export"
)

func sampleRecord() engine.Record {
	return engine.Record{
		FormID: "investment_research",
		Title:  "Investment Decision-Making Research Survey",
		Tuples: []engine.Tuple{
			{Section: "Trust", Record: 1, FieldKey: "trust", Value: "5 - Strongly Agree"},
			{Section: "Trust", Record: 1, FieldKey: "trust_comments", Value: ""},
			{Section: "Contact", Record: 2, FieldKey: "city", Value: "Cape Town"},
		},
	}
}

func TestCSVSchema(t *testing.T) {
	data, err := export.CSV(sampleRecord())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Section,Record #,Field,Value", lines[0])
	assert.Equal(t, "Trust,1,trust,5 - Strongly Agree", lines[1])
	assert.Equal(t, "Trust,1,trust_comments,", lines[2])
	assert.Equal(t, "Contact,2,city,Cape Town", lines[3])
}

func TestCSVQuotesEmbeddedCommas(t *testing.T) {
	rec := sampleRecord()
	rec.Tuples[0].Value = "agree, mostly"
	data, err := export.CSV(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"agree, mostly"`)
}

func TestCSVRoundTrip(t *testing.T) {
	rec := sampleRecord()
	rec.Tuples = append(rec.Tuples, engine.Tuple{
		Section: "Notes", Record: 1, FieldKey: "essay",
		Value: "line one\nline two, with comma and \"quotes\"",
	})

	data, err := export.CSV(rec)
	require.NoError(t, err)

	got, err := export.ParseCSV(data)
	require.NoError(t, err)
	assert.Equal(t, rec.Tuples, got)
}

func TestCSVIsDeterministic(t *testing.T) {
	first, err := export.CSV(sampleRecord())
	require.NoError(t, err)
	second, err := export.CSV(sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseCSVRejectsMalformedInput(t *testing.T) {
	_, err := export.ParseCSV(nil)
	require.Error(t, err)

	_, err = export.ParseCSV([]byte("Section,Record #,Field,Value\nTrust,NaN,trust,5"))
	require.Error(t, err)
}

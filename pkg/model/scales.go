package model

import (
	"strconv"
	"strings"
)

// Likert anchor labels used by the built-in surveys. The leading empty entry
// renders as the unanswered state in select widgets.
var (
	AgreementScale = []string{
		"",
		"1 - Strongly Disagree",
		"2 - Disagree",
		"3 - Neutral",
		"4 - Agree",
		"5 - Strongly Agree",
	}

	TrustScale = []string{
		"",
		"1 - Completely Untrustworthy",
		"2 - Somewhat Untrustworthy",
		"3 - Neutral",
		"4 - Somewhat Trustworthy",
		"5 - Completely Trustworthy",
	}

	SatisfactionScale = []string{
		"",
		"1 - Very Dissatisfied",
		"2 - Dissatisfied",
		"3 - Neutral",
		"4 - Satisfied",
		"5 - Very Satisfied",
	}
)

// LikertOrdinal extracts the leading 1..5 ordinal from a stored anchor label
// such as "4 - Agree". It returns 0 and false for blank values and values
// that do not begin with an integer.
func LikertOrdinal(value string) (int, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}
	head := trimmed
	if idx := strings.IndexAny(trimmed, " -"); idx > 0 {
		head = trimmed[:idx]
	}
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}
	return n, true
}

// LikertField builds a likert question bound to the provided scale. The scale
// defaults to AgreementScale when nil.
func LikertField(key, label string, required bool, scale []string, help string) Field {
	if scale == nil {
		scale = AgreementScale
	}
	return Field{
		Key:      key,
		Label:    label,
		Kind:     FieldKindLikert,
		Required: required,
		Help:     help,
		Options:  append([]string(nil), scale...),
	}
}

package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-surveyform/pkg/model"
)

// Options carries per-request rendering instructions: the POST target,
// validation errors to surface inline, and an optional theme selection.
type Options struct {
	// Action is the form POST target.
	Action string

	// SubmitLabel overrides the submit button text.
	SubmitLabel string

	// Errors are surfaced inline next to their fields, keyed by field key.
	Errors []model.ValidationError

	// HiddenFields are emitted alongside the visible inputs (session id,
	// page marker).
	HiddenFields map[string]string

	// Theme supplies go-theme design tokens emitted as CSS custom
	// properties. Nil renders the unthemed default.
	Theme *theme.Selection
}

// FieldErrors groups the error messages by field key for inline display.
func (o Options) FieldErrors() map[string][]string {
	if len(o.Errors) == 0 {
		return nil
	}
	out := make(map[string][]string, len(o.Errors))
	for _, e := range o.Errors {
		out[e.FieldKey] = append(out[e.FieldKey], e.Message)
	}
	return out
}

// ThemeTokens flattens the selected theme's tokens, or nil without a theme.
func (o Options) ThemeTokens() map[string]string {
	if o.Theme == nil || o.Theme.Manifest == nil || len(o.Theme.Manifest.Tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(o.Theme.Manifest.Tokens))
	for name, value := range o.Theme.Manifest.Tokens {
		out[name] = value
	}
	return out
}

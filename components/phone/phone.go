// Package phone provides the reusable contact-number section component.
package phone

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-surveyform/pkg/component"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/session"
)

// ComponentID is the registry id form specs reference.
const ComponentID = "phone"

// DefaultTitle is used when the component reference carries no title config.
const DefaultTitle = "Contact Number"

var nonDigit = regexp.MustCompile(`\D`)

// Component implements the phone section: a dialing code plus a number, with
// the South African +27 rule (9 digits, no leading zero).
type Component struct{}

// New constructs the phone component.
func New() *Component {
	return &Component{}
}

func (c *Component) fields(dial string) []model.Field {
	numberLabel := "Phone Number (digits only)"
	if strings.TrimSpace(dial) == "+27" {
		numberLabel = "Phone Number (must be 9 digits, no leading 0)"
	}
	return []model.Field{
		{Key: "code", Label: "Dialing Code", Kind: model.FieldKindText, Required: true, Help: "e.g., +27"},
		{Key: "number", Label: numberLabel, Kind: model.FieldKindText, Required: true},
	}
}

// Render returns the instance's bindings with prior values read back.
func (c *Component) Render(store *session.Store, scope component.Scope, cfg component.Config) []component.Binding {
	dial := store.Get(scope.Key("code"))
	bindings := make([]component.Binding, 0, 2)
	for _, f := range c.fields(dial) {
		key := scope.Key(f.Key)
		bindings = append(bindings, component.Binding{
			StateKey: key,
			Field:    f,
			Value:    store.Get(key),
		})
	}
	return bindings
}

// Validate aggregates the sub-field failures for this instance.
func (c *Component) Validate(store *session.Store, scope component.Scope, cfg component.Config) []model.ValidationError {
	title := cfg.String("title", DefaultTitle)
	dial := strings.TrimSpace(store.Get(scope.Key("code")))
	number := strings.TrimSpace(store.Get(scope.Key("number")))

	var errs []model.ValidationError
	if dial == "" {
		errs = append(errs, model.ValidationError{
			Section:  title,
			FieldKey: "code",
			Kind:     model.ErrorMissingRequired,
			Message:  "Dialing Code is required",
		})
	}
	if number == "" {
		errs = append(errs, model.ValidationError{
			Section:  title,
			FieldKey: "number",
			Kind:     model.ErrorMissingRequired,
			Message:  "Phone Number is required",
		})
	}
	if dial != "" && number != "" && !numberOK(dial, number) {
		errs = append(errs, model.ValidationError{
			Section:  title,
			FieldKey: "number",
			Kind:     model.ErrorMalformedText,
			Message:  "Phone Number is invalid for the specified dialing code",
		})
	}
	return errs
}

// Serialize returns the instance's flat answers.
func (c *Component) Serialize(store *session.Store, scope component.Scope, cfg component.Config) []component.Pair {
	return []component.Pair{
		{Key: "code", Value: store.Get(scope.Key("code"))},
		{Key: "number", Value: store.Get(scope.Key("number"))},
	}
}

func numberOK(dial, number string) bool {
	digits := nonDigit.ReplaceAllString(number, "")
	if dial == "+27" {
		return len(digits) == 9 && !strings.HasPrefix(digits, "0")
	}
	return len(digits) >= 6 && len(digits) <= 15
}

// Register adds the component to the registry under ComponentID.
func Register(registry *component.Registry) error {
	return registry.Register(ComponentID, New())
}

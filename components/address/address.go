// Package address provides the reusable physical-address section component.
package address

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-surveyform/pkg/component"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/session"
)

// ComponentID is the registry id form specs reference.
const ComponentID = "address"

// DefaultTitle is used when the component reference carries no title config.
const DefaultTitle = "Physical Address"

var saProvinces = []string{
	"", "Eastern Cape", "Free State", "Gauteng", "KwaZulu-Natal",
	"Limpopo", "Mpumalanga", "North West", "Northern Cape", "Western Cape",
}

var saPostalCode = regexp.MustCompile(`^\d{4}$`)

// Component implements the address section: street, suburb, city, province,
// country, and postal code, with South African postal and province rules.
type Component struct{}

// New constructs the address component.
func New() *Component {
	return &Component{}
}

func (c *Component) fields(country string) []model.Field {
	province := model.Field{Key: "province", Label: "Province/State/Region", Kind: model.FieldKindText}
	postal := model.Field{Key: "code", Label: "Postal Code", Kind: model.FieldKindText}
	if country == "South Africa" {
		province = model.Field{Key: "province", Label: "Province", Kind: model.FieldKindSelect, Options: saProvinces}
		postal.Label = "Postal Code (must be 4 digits)"
	}
	return []model.Field{
		{Key: "unit_no", Label: "Unit Number (optional)", Kind: model.FieldKindText},
		{Key: "complex", Label: "Complex Name (optional)", Kind: model.FieldKindText},
		{Key: "street_no", Label: "Street Number", Kind: model.FieldKindText, Required: true},
		{Key: "street_name", Label: "Street Name", Kind: model.FieldKindText, Required: true},
		{Key: "suburb", Label: "Suburb", Kind: model.FieldKindText, Required: true},
		{Key: "city", Label: "City", Kind: model.FieldKindText, Required: true},
		province,
		{Key: "country", Label: "Country", Kind: model.FieldKindText, Required: true},
		postal,
	}
}

// Render returns the instance's bindings with prior values read back, so a
// revisited page shows earlier input. Safe to call any number of times.
func (c *Component) Render(store *session.Store, scope component.Scope, cfg component.Config) []component.Binding {
	country := strings.TrimSpace(store.Get(scope.Key("country")))
	bindings := make([]component.Binding, 0, 9)
	for _, f := range c.fields(country) {
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
	var errs []model.ValidationError

	require := func(key, label string) {
		if strings.TrimSpace(store.Get(scope.Key(key))) == "" {
			errs = append(errs, model.ValidationError{
				Section:  title,
				FieldKey: key,
				Kind:     model.ErrorMissingRequired,
				Message:  fmt.Sprintf("%s is required", label),
			})
		}
	}

	require("street_no", "Street Number")
	require("street_name", "Street Name")
	require("suburb", "Suburb")
	require("city", "City")
	require("country", "Country")

	country := strings.TrimSpace(store.Get(scope.Key("country")))
	if country == "South Africa" && strings.TrimSpace(store.Get(scope.Key("province"))) == "" {
		errs = append(errs, model.ValidationError{
			Section:  title,
			FieldKey: "province",
			Kind:     model.ErrorMissingRequired,
			Message:  "Province is required for South Africa",
		})
	}

	if !postalOK(store.Get(scope.Key("code")), country) {
		errs = append(errs, model.ValidationError{
			Section:  title,
			FieldKey: "code",
			Kind:     model.ErrorMalformedText,
			Message:  "Postal Code is invalid",
		})
	}

	return errs
}

// Serialize returns the instance's flat answers in declaration order.
func (c *Component) Serialize(store *session.Store, scope component.Scope, cfg component.Config) []component.Pair {
	country := strings.TrimSpace(store.Get(scope.Key("country")))
	pairs := make([]component.Pair, 0, 9)
	for _, f := range c.fields(country) {
		pairs = append(pairs, component.Pair{
			Key:   f.Key,
			Value: store.Get(scope.Key(f.Key)),
		})
	}
	return pairs
}

func postalOK(code, country string) bool {
	code = strings.TrimSpace(code)
	if country == "South Africa" {
		return saPostalCode.MatchString(code)
	}
	return code != "" && len(code) <= 10
}

// Register adds the component to the registry under ComponentID.
func Register(registry *component.Registry) error {
	return registry.Register(ComponentID, New())
}

package address_test

import (
	"testing"

	"github.com/goliatone/go-surveyform/components/address"
	"github.com/goliatone/go-surveyform/pkg/component"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/session"
)

func scope() component.Scope {
	return component.Scope{Namespace: "survey", InstanceID: "home"}
}

func filledStore(country, postal string) *session.Store {
	store := session.NewStore()
	sc := scope()
	store.Set(sc.Key("street_no"), "12")
	store.Set(sc.Key("street_name"), "Long Street")
	store.Set(sc.Key("suburb"), "Gardens")
	store.Set(sc.Key("city"), "Cape Town")
	store.Set(sc.Key("province"), "Western Cape")
	store.Set(sc.Key("country"), country)
	store.Set(sc.Key("code"), postal)
	return store
}

func TestAddressValidateSouthAfricanRules(t *testing.T) {
	comp := address.New()

	cases := []struct {
		name     string
		country  string
		postal   string
		wantKeys []string
	}{
		{name: "valid sa address", country: "South Africa", postal: "8001"},
		{name: "sa postal too short", country: "South Africa", postal: "801", wantKeys: []string{"code"}},
		{name: "sa postal not digits", country: "South Africa", postal: "80o1", wantKeys: []string{"code"}},
		{name: "foreign postal accepted", country: "Germany", postal: "10115"},
		{name: "foreign postal empty", country: "Germany", postal: "", wantKeys: []string{"code"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := comp.Validate(filledStore(tc.country, tc.postal), scope(), nil)
			if len(errs) != len(tc.wantKeys) {
				t.Fatalf("expected %d errors, got %v", len(tc.wantKeys), errs)
			}
			for i, key := range tc.wantKeys {
				if errs[i].FieldKey != key {
					t.Fatalf("expected error on %q, got %+v", key, errs[i])
				}
			}
		})
	}
}

func TestAddressValidateRequiresProvinceForSouthAfrica(t *testing.T) {
	comp := address.New()
	store := filledStore("South Africa", "8001")
	store.Set(scope().Key("province"), "")

	errs := comp.Validate(store, scope(), nil)
	if len(errs) != 1 {
		t.Fatalf("expected a single province error, got %v", errs)
	}
	if errs[0].FieldKey != "province" || errs[0].Kind != model.ErrorMissingRequired {
		t.Fatalf("unexpected error %+v", errs[0])
	}
}

func TestAddressValidateEmptyInstance(t *testing.T) {
	comp := address.New()
	errs := comp.Validate(session.NewStore(), scope(), nil)
	if len(errs) == 0 {
		t.Fatal("expected missing required errors")
	}
	for _, e := range errs {
		if e.Section != address.DefaultTitle {
			t.Fatalf("expected default section title, got %q", e.Section)
		}
	}
}

func TestAddressRenderSwitchesProvinceWidget(t *testing.T) {
	comp := address.New()

	bindings := comp.Render(filledStore("South Africa", "8001"), scope(), nil)
	var province component.Binding
	for _, b := range bindings {
		if b.Field.Key == "province" {
			province = b
		}
	}
	if province.Field.Kind != model.FieldKindSelect {
		t.Fatalf("expected SA province select, got %q", province.Field.Kind)
	}
	if len(province.Field.Options) == 0 {
		t.Fatal("expected province options populated")
	}

	bindings = comp.Render(filledStore("Germany", "10115"), scope(), nil)
	for _, b := range bindings {
		if b.Field.Key == "province" && b.Field.Kind != model.FieldKindText {
			t.Fatalf("expected free-text province outside SA, got %q", b.Field.Kind)
		}
	}
}

func TestAddressSerializeKeepsDeclarationOrder(t *testing.T) {
	comp := address.New()
	pairs := comp.Serialize(filledStore("South Africa", "8001"), scope(), nil)

	wantOrder := []string{"unit_no", "complex", "street_no", "street_name", "suburb", "city", "province", "country", "code"}
	if len(pairs) != len(wantOrder) {
		t.Fatalf("expected %d pairs, got %d", len(wantOrder), len(pairs))
	}
	for i, key := range wantOrder {
		if pairs[i].Key != key {
			t.Fatalf("expected pair %d to be %q, got %q", i, key, pairs[i].Key)
		}
	}
}

func TestAddressRegister(t *testing.T) {
	registry := component.NewRegistry()
	if err := address.Register(registry); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !registry.Has(address.ComponentID) {
		t.Fatal("expected address component registered")
	}
}

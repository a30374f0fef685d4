package component_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-surveyform/pkg/component"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/session"
)

type noopComponent struct{}

func (noopComponent) Render(*session.Store, component.Scope, component.Config) []component.Binding {
	return nil
}

func (noopComponent) Validate(*session.Store, component.Scope, component.Config) []model.ValidationError {
	return nil
}

func (noopComponent) Serialize(*session.Store, component.Scope, component.Config) []component.Pair {
	return nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := component.NewRegistry()
	if err := registry.Register("noop", noopComponent{}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if !registry.Has("noop") {
		t.Fatal("expected component to be registered")
	}
	if _, err := registry.Get("noop"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := registry.Get("missing"); err == nil {
		t.Fatal("expected missing component to error")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := component.NewRegistry()
	registry.MustRegister("noop", noopComponent{})
	if err := registry.Register("noop", noopComponent{}); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestRegistryRejectsEmptyInputs(t *testing.T) {
	registry := component.NewRegistry()
	if err := registry.Register("", noopComponent{}); err == nil {
		t.Fatal("expected empty id to fail")
	}
	if err := registry.Register("noop", nil); err == nil {
		t.Fatal("expected nil component to fail")
	}
}

func TestRegistryListIsSorted(t *testing.T) {
	registry := component.NewRegistry()
	registry.MustRegister("phone", noopComponent{})
	registry.MustRegister("address", noopComponent{})

	want := []string{"address", "phone"}
	if diff := cmp.Diff(want, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestScopeKey(t *testing.T) {
	scope := component.Scope{Namespace: "survey", InstanceID: "home"}
	if got := scope.Key("street"); got != "survey__home__street" {
		t.Fatalf("unexpected scope key %q", got)
	}
}

func TestConfigHelpers(t *testing.T) {
	cfg := component.Config{"title": "Work Address", "optional": true}
	if got := cfg.String("title", "fallback"); got != "Work Address" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := cfg.String("missing", "fallback"); got != "fallback" {
		t.Fatalf("unexpected fallback %q", got)
	}
	if !cfg.Bool("optional", false) {
		t.Fatal("expected bool value read back")
	}

	var nilCfg component.Config
	if got := nilCfg.String("title", "fallback"); got != "fallback" {
		t.Fatalf("expected nil config fallback, got %q", got)
	}
}

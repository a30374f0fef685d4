// Package engine orchestrates rendering a FormSpec into a display model,
// running validation over the session answer store, and serializing answers
// into the export-ready record.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-surveyform/pkg/component"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/session"
)

// Option customises the engine configuration.
type Option func(*Engine)

// WithComponents injects the component registry used to resolve section
// component references.
func WithComponents(registry *component.Registry) Option {
	return func(e *Engine) {
		if registry != nil {
			e.components = registry
		}
	}
}

// Engine dispatches over a FormSpec's sections: plain fields are handled
// inline, component references resolve through the registry. The engine holds
// no per-session state; the answer store is threaded through every call.
type Engine struct {
	components *component.Registry
}

// New constructs an Engine applying any provided options. A missing registry
// is initialised empty so specs without components work out of the box.
func New(options ...Option) *Engine {
	e := &Engine{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.components == nil {
		e.components = component.NewRegistry()
	}
	return e
}

// Components exposes the registry so callers can wire additional components
// before registering specs.
func (e *Engine) Components() *component.Registry {
	return e.components
}

// CheckSpec validates the FormSpec's structural invariants and resolves every
// component reference against the registry. Call it once at load time;
// render, validate, and serialize assume it passed.
func (e *Engine) CheckSpec(spec model.FormSpec) error {
	if err := model.Validate(spec); err != nil {
		return err
	}
	for _, sec := range spec.Sections {
		for _, ref := range sec.Components {
			if !e.components.Has(ref.ComponentID) {
				return fmt.Errorf("engine: form spec %q: component %q not registered", spec.ID, ref.ComponentID)
			}
		}
	}
	return nil
}

// RenderForm walks spec.Sections in order and produces the display model,
// reading prior values back from the store so a revisited page shows earlier
// input. Purely a display-time operation, no validation performed.
func (e *Engine) RenderForm(ctx context.Context, spec model.FormSpec, ns string, store *session.Store) (RenderedForm, error) {
	if ctx == nil {
		return RenderedForm{}, errors.New("engine: context is required")
	}
	if err := ctx.Err(); err != nil {
		return RenderedForm{}, err
	}
	if store == nil {
		return RenderedForm{}, errors.New("engine: answer store is required")
	}

	form := RenderedForm{
		ID:        spec.ID,
		Title:     spec.Title,
		Namespace: ns,
	}
	for _, sec := range spec.Sections {
		rendered := RenderedSection{Title: sec.Title}
		for _, f := range sec.Fields {
			rendered.Fields = append(rendered.Fields, bindField(ns, f, store))
		}
		for _, ref := range sec.Components {
			comp, err := e.components.Get(ref.ComponentID)
			if err != nil {
				return RenderedForm{}, fmt.Errorf("engine: render section %q: %w", sec.Title, err)
			}
			scope := component.Scope{Namespace: ns, InstanceID: ref.InstanceID}
			for _, binding := range comp.Render(store, scope, component.Config(ref.Config)) {
				rendered.Fields = append(rendered.Fields, RenderedField{
					StateKey: binding.StateKey,
					FieldKey: binding.Field.Key,
					Label:    binding.Field.Label,
					Kind:     binding.Field.Kind,
					Required: binding.Field.Required,
					Help:     binding.Field.Help,
					Options:  binding.Field.Options,
					Value:    binding.Value,
					Values:   binding.Values,
				})
			}
		}
		form.Sections = append(form.Sections, rendered)
	}
	return form, nil
}

func bindField(ns string, f model.Field, store *session.Store) RenderedField {
	key := session.Key(ns, f.Key)
	rendered := RenderedField{
		StateKey: key,
		FieldKey: f.Key,
		Label:    f.Label,
		Kind:     f.Kind,
		Required: f.Required,
		Help:     f.Help,
		Options:  f.Options,
		Value:    store.Get(key),
	}
	if f.Kind == model.FieldKindMultiselect {
		rendered.Values = store.GetList(key)
	}
	return rendered
}

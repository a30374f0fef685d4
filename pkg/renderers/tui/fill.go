package tui

import (
	"context"
	"fmt"

	"github.com/goliatone/go-surveyform/pkg/engine"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/session"
)

// FillOptions tunes one terminal fill run.
type FillOptions struct {
	// DevMode bypasses validation, mirroring the web flow's explicit toggle.
	DevMode bool
	// MaxPasses bounds the prompt-validate loop; 0 means three passes.
	MaxPasses int
}

// Filler walks a form spec over terminal prompts, persisting every answer
// into the session store as it goes.
type Filler struct {
	engine *engine.Engine
	driver PromptDriver
}

// NewFiller builds a Filler; a nil driver falls back to survey/v2 prompts.
func NewFiller(eng *engine.Engine, driver PromptDriver) (*Filler, error) {
	if eng == nil {
		return nil, fmt.Errorf("tui: engine is required")
	}
	if driver == nil {
		driver = NewSurveyDriver()
	}
	return &Filler{engine: eng, driver: driver}, nil
}

// Fill prompts for every field in section order, then validates. Failed
// validation prints every error and prompts again, so the terminal flow keeps
// the collect-all-errors behavior of the web flow.
func (f *Filler) Fill(ctx context.Context, spec model.FormSpec, ns string, store *session.Store, opts FillOptions) error {
	if ctx == nil {
		return fmt.Errorf("tui: context is required")
	}
	if store == nil {
		return fmt.Errorf("tui: answer store is required")
	}

	passes := opts.MaxPasses
	if passes <= 0 {
		passes = 3
	}

	for pass := 0; pass < passes; pass++ {
		form, err := f.engine.RenderForm(ctx, spec, ns, store)
		if err != nil {
			return err
		}
		if err := f.promptForm(ctx, form, store); err != nil {
			return err
		}

		errs := f.engine.Validate(spec, ns, store, engine.ValidateOptions{DevMode: opts.DevMode})
		if len(errs) == 0 {
			return nil
		}
		if err := f.driver.Info(ctx, fmt.Sprintf("%d answer(s) need attention:", len(errs))); err != nil {
			return err
		}
		for _, e := range errs {
			if err := f.driver.Info(ctx, "  - "+e.Error()); err != nil {
				return err
			}
		}
	}
	return fmt.Errorf("tui: validation still failing after %d passes", passes)
}

func (f *Filler) promptForm(ctx context.Context, form engine.RenderedForm, store *session.Store) error {
	if err := f.driver.Info(ctx, form.Title); err != nil {
		return err
	}
	for _, sec := range form.Sections {
		if err := f.driver.Info(ctx, "\n== "+sec.Title+" =="); err != nil {
			return err
		}
		for _, field := range sec.Fields {
			if err := f.promptField(ctx, field, store); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Filler) promptField(ctx context.Context, field engine.RenderedField, store *session.Store) error {
	message := field.Label
	if field.Required {
		message += " *"
	}

	switch field.Kind {
	case model.FieldKindLikert, model.FieldKindSelect:
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      field.Options,
			DefaultIndex: indexOf(field.Options, field.Value),
			Help:         field.Help,
		})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(field.Options) {
			store.Set(field.StateKey, field.Options[idx])
		}
	case model.FieldKindMultiselect:
		indices, err := f.driver.MultiSelect(ctx, SelectConfig{
			Message:  message,
			Options:  field.Options,
			Defaults: indicesOf(field.Options, field.Values),
			Help:     field.Help,
		})
		if err != nil {
			return err
		}
		selections := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(field.Options) {
				selections = append(selections, field.Options[idx])
			}
		}
		store.SetList(field.StateKey, selections)
	case model.FieldKindTextarea:
		out, err := f.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: field.Value,
			Help:    field.Help,
		})
		if err != nil {
			return err
		}
		store.Set(field.StateKey, out)
	case model.FieldKindCheckbox:
		checked, err := f.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: field.Value == "yes",
			Help:    field.Help,
		})
		if err != nil {
			return err
		}
		if checked {
			store.Set(field.StateKey, "yes")
		} else {
			store.Set(field.StateKey, "")
		}
	default:
		out, err := f.driver.Input(ctx, InputConfig{
			Message: message,
			Default: field.Value,
			Help:    field.Help,
		})
		if err != nil {
			return err
		}
		store.Set(field.StateKey, out)
	}
	return nil
}

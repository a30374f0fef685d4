// Package html renders survey pages as standalone HTML forms.
package html

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-surveyform/pkg/engine"
	"github.com/goliatone/go-surveyform/pkg/render"
	rendertemplate "github.com/goliatone/go-surveyform/pkg/render/template"
	"github.com/goliatone/go-surveyform/pkg/render/template/gotemplate"
)

// Option customises the renderer construction.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer produces the survey page markup from a rendered form.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

// Name identifies the renderer in the registry.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType reports the MIME type of the rendered output.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws the form with any prior values and inline errors.
func (r *Renderer) Render(ctx context.Context, form engine.RenderedForm, options render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, fmt.Errorf("html renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", viewModel(form, options))
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// viewModel flattens the rendered form into plain maps and strings so the
// template engine never depends on package types.
func viewModel(form engine.RenderedForm, options render.Options) map[string]any {
	fieldErrors := options.FieldErrors()

	sections := make([]map[string]any, 0, len(form.Sections))
	for _, sec := range form.Sections {
		fields := make([]map[string]any, 0, len(sec.Fields))
		for _, f := range sec.Fields {
			fields = append(fields, map[string]any{
				"state_key": f.StateKey,
				"key":       f.FieldKey,
				"label":     f.Label,
				"kind":      string(f.Kind),
				"required":  f.Required,
				"help":      f.Help,
				"options":   f.Options,
				"value":     f.Value,
				"values":    f.Values,
				"errors":    fieldErrors[f.FieldKey],
			})
		}
		sections = append(sections, map[string]any{
			"title":  sec.Title,
			"fields": fields,
		})
	}

	submitLabel := options.SubmitLabel
	if submitLabel == "" {
		submitLabel = "Save and Continue"
	}

	return map[string]any{
		"title":        form.Title,
		"namespace":    form.Namespace,
		"sections":     sections,
		"action":       options.Action,
		"submit_label": submitLabel,
		"hidden":       options.HiddenFields,
		"theme_tokens": options.ThemeTokens(),
		"has_errors":   len(options.Errors) > 0,
		"error_count":  len(options.Errors),
	}
}

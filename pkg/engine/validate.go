package engine

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-surveyform/pkg/component"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/session"
)

// ValidateOptions tunes a validation pass. DevMode bypasses every failure and
// must be an explicit opt-in; it exists so the submission pipeline can be
// exercised without filling the whole questionnaire.
type ValidateOptions struct {
	DevMode bool
}

// Validate runs every field and component check in section order, collecting
// all failures rather than stopping at the first so the user sees every
// missing or invalid answer at once. A nil result means the form is ok.
func (e *Engine) Validate(spec model.FormSpec, ns string, store *session.Store, opts ValidateOptions) []model.ValidationError {
	if opts.DevMode {
		return nil
	}

	var errs []model.ValidationError
	for _, sec := range spec.Sections {
		for _, f := range sec.Fields {
			if err, ok := validateField(sec.Title, f, ns, store); !ok {
				errs = append(errs, err)
			}
		}
		for _, ref := range sec.Components {
			comp, err := e.components.Get(ref.ComponentID)
			if err != nil {
				// CheckSpec catches unregistered components at load time;
				// surface it as a section failure if it slips through.
				errs = append(errs, model.ValidationError{
					Section:  sec.Title,
					FieldKey: ref.ComponentID,
					Kind:     model.ErrorMalformedText,
					Message:  err.Error(),
				})
				continue
			}
			scope := component.Scope{Namespace: ns, InstanceID: ref.InstanceID}
			errs = append(errs, comp.Validate(store, scope, component.Config(ref.Config))...)
		}
	}
	return errs
}

// validateField applies the per-kind rules. Text and textarea answers are
// intentionally never validated, regardless of the Required flag.
func validateField(section string, f model.Field, ns string, store *session.Store) (model.ValidationError, bool) {
	switch f.Kind {
	case model.FieldKindText, model.FieldKindTextarea:
		return model.ValidationError{}, true
	}

	key := session.Key(ns, f.Key)

	if f.Kind == model.FieldKindMultiselect {
		if f.Required && len(store.GetList(key)) == 0 {
			return missingRequired(section, f), false
		}
		return model.ValidationError{}, true
	}

	raw := strings.TrimSpace(store.Get(key))

	if raw == "" {
		if f.Required {
			return missingRequired(section, f), false
		}
		return model.ValidationError{}, true
	}

	if f.Kind == model.FieldKindLikert {
		n, ok := model.LikertOrdinal(raw)
		if !ok {
			return model.ValidationError{
				Section:  section,
				FieldKey: f.Key,
				Kind:     model.ErrorMalformedText,
				Message:  fmt.Sprintf("%s has an unreadable answer", f.Label),
			}, false
		}
		if n < 1 || n > 5 {
			return model.ValidationError{
				Section:  section,
				FieldKey: f.Key,
				Kind:     model.ErrorOutOfRange,
				Message:  fmt.Sprintf("%s must be between 1 and 5", f.Label),
			}, false
		}
	}

	return model.ValidationError{}, true
}

func missingRequired(section string, f model.Field) model.ValidationError {
	return model.ValidationError{
		Section:  section,
		FieldKey: f.Key,
		Kind:     model.ErrorMissingRequired,
		Message:  fmt.Sprintf("%s is required", f.Label),
	}
}

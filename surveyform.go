package surveyform

import (
	"github.com/goliatone/go-surveyform/components/address"
	"github.com/goliatone/go-surveyform/components/phone"
	"github.com/goliatone/go-surveyform/pkg/component"
	"github.com/goliatone/go-surveyform/pkg/engine"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/session"
	"github.com/goliatone/go-surveyform/pkg/submit"
	"github.com/goliatone/go-surveyform/pkg/surveys"
)

// FormSpec aliases the declarative survey definition for root-package callers.
type FormSpec = model.FormSpec

// Section aliases one titled group of questions.
type Section = model.Section

// Field aliases a single question.
type Field = model.Field

// ValidationError aliases a single reported answer failure.
type ValidationError = model.ValidationError

// Record aliases the serialized submission payload.
type Record = engine.Record

// Artifacts aliases the exports produced by a submission.
type Artifacts = submit.Artifacts

// NewEngine builds a form engine with the built-in components (address,
// phone) registered. Most callers want this over engine.New.
func NewEngine(options ...engine.Option) *engine.Engine {
	registry := component.NewRegistry()
	address.Register(registry)
	phone.Register(registry)
	base := []engine.Option{engine.WithComponents(registry)}
	return engine.New(append(base, options...)...)
}

// NewStore returns an empty namespaced answer store.
func NewStore() *session.Store {
	return session.NewStore()
}

// InvestmentResearch returns the built-in investment research survey spec.
func InvestmentResearch() FormSpec {
	return surveys.InvestmentResearch()
}

// Collect validates the stored answers and serializes them into a record in
// one call. Validation failures are returned without a record; dev mode
// bypasses validation entirely.
func Collect(eng *engine.Engine, spec FormSpec, ns string, store *session.Store, devMode bool) (Record, []ValidationError, error) {
	errs := eng.Validate(spec, ns, store, engine.ValidateOptions{DevMode: devMode})
	if len(errs) > 0 {
		return Record{}, errs, nil
	}
	rec, err := eng.Serialize(spec, ns, store)
	if err != nil {
		return Record{}, nil, err
	}
	return rec, nil, nil
}

package engine

import (
	"fmt"

	"github.com/goliatone/go-surveyform/pkg/component"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/session"
)

// Tuple is one serialized answer: section title, record number within the
// section, field key, and the raw stored value.
type Tuple struct {
	Section  string
	Record   int
	FieldKey string
	Value    string
}

// Record is the flattened, export-ready representation of all answers to one
// survey instance. It is produced once from a read-only answer store at
// submission time and immutable afterwards.
type Record struct {
	FormID string
	Title  string
	Tuples []Tuple
}

// Serialize reads the final answer store and emits one tuple per (section,
// record, field) in section-declaration order. A section's plain fields form
// record 1; each component instance in the same section takes the next record
// number, which disambiguates logically repeated groups such as multiple
// addresses.
//
// Callers must only serialize after Validate returned ok (or with dev mode
// active); Serialize itself does not re-check, so the record may carry empty
// required values otherwise.
func (e *Engine) Serialize(spec model.FormSpec, ns string, store *session.Store) (Record, error) {
	if store == nil {
		return Record{}, fmt.Errorf("engine: answer store is required")
	}

	rec := Record{FormID: spec.ID, Title: spec.Title}
	for _, sec := range spec.Sections {
		recordNo := 0
		if len(sec.Fields) > 0 {
			recordNo = 1
			for _, f := range sec.Fields {
				rec.Tuples = append(rec.Tuples, Tuple{
					Section:  sec.Title,
					Record:   recordNo,
					FieldKey: f.Key,
					Value:    store.Get(session.Key(ns, f.Key)),
				})
			}
		}
		for _, ref := range sec.Components {
			comp, err := e.components.Get(ref.ComponentID)
			if err != nil {
				return Record{}, fmt.Errorf("engine: serialize section %q: %w", sec.Title, err)
			}
			recordNo++
			scope := component.Scope{Namespace: ns, InstanceID: ref.InstanceID}
			for _, pair := range comp.Serialize(store, scope, component.Config(ref.Config)) {
				rec.Tuples = append(rec.Tuples, Tuple{
					Section:  sec.Title,
					Record:   recordNo,
					FieldKey: pair.Key,
					Value:    pair.Value,
				})
			}
		}
	}
	return rec, nil
}

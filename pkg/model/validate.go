package model

import (
	"errors"
	"fmt"
)

var (
	errSpecIDMissing    = errors.New("form spec: id is required")
	errSpecTitleMissing = errors.New("form spec: title is required")
	errSpecNoSections   = errors.New("form spec: at least one section is required")
)

// Validate checks the structural invariants a FormSpec must hold before it is
// registered: non-empty identifiers, unique field keys within a section, and
// instance ids unique among sections referencing the same component. Specs
// are resolved once at load time, so a failure here is a programming or
// authoring error, not user input.
func Validate(spec FormSpec) error {
	if spec.ID == "" {
		return errSpecIDMissing
	}
	if spec.Title == "" {
		return errSpecTitleMissing
	}
	if len(spec.Sections) == 0 {
		return errSpecNoSections
	}

	instances := make(map[string]string)
	for _, sec := range spec.Sections {
		if sec.Title == "" {
			return fmt.Errorf("form spec %q: section title is required", spec.ID)
		}
		seen := make(map[string]struct{}, len(sec.Fields))
		for _, f := range sec.Fields {
			if f.Key == "" {
				return fmt.Errorf("form spec %q: section %q: field key is required", spec.ID, sec.Title)
			}
			if f.Kind == "" {
				return fmt.Errorf("form spec %q: field %q: kind is required", spec.ID, f.Key)
			}
			if _, dup := seen[f.Key]; dup {
				return fmt.Errorf("form spec %q: section %q: duplicate field key %q", spec.ID, sec.Title, f.Key)
			}
			seen[f.Key] = struct{}{}
		}
		for _, ref := range sec.Components {
			if ref.ComponentID == "" {
				return fmt.Errorf("form spec %q: section %q: component id is required", spec.ID, sec.Title)
			}
			instance := ref.InstanceID
			if instance == "" {
				return fmt.Errorf("form spec %q: section %q: component %q: instance id is required", spec.ID, sec.Title, ref.ComponentID)
			}
			key := ref.ComponentID + "\x00" + instance
			if prev, dup := instances[key]; dup {
				return fmt.Errorf("form spec %q: instance id %q reused for component %q (sections %q and %q)", spec.ID, instance, ref.ComponentID, prev, sec.Title)
			}
			instances[key] = sec.Title
		}
	}
	return nil
}

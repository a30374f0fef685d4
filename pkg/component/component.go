// Package component defines the contract for reusable form sections and the
// registry that resolves them by id at FormSpec load time.
package component

import (
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/session"
)

// Scope identifies one component instance inside one survey namespace. Every
// stored sub-field key is derived through Scope.Key so two instances of the
// same component never share state.
type Scope struct {
	Namespace  string
	InstanceID string
}

// Key returns the namespaced state key for one of the instance's sub-fields.
func (s Scope) Key(field string) string {
	return session.InstanceKey(s.Namespace, s.InstanceID, field)
}

// Config carries per-instance settings from the FormSpec's component
// reference (for example a custom title).
type Config map[string]any

// String returns the string config value for key, or fallback when unset.
func (c Config) String(key, fallback string) string {
	if c == nil {
		return fallback
	}
	if v, ok := c[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// Bool returns the boolean config value for key, or fallback when unset.
func (c Config) Bool(key string, fallback bool) bool {
	if c == nil {
		return fallback
	}
	if v, ok := c[key].(bool); ok {
		return v
	}
	return fallback
}

// Binding is one renderable sub-field produced by a component: the field
// definition plus the namespaced state key it reads from and writes to, and
// the value currently stored there.
type Binding struct {
	StateKey string
	Field    model.Field
	Value    string
	Values   []string
}

// Pair is one serialized sub-field answer. Components emit pairs in their
// declaration order so the serialized record stays deterministic.
type Pair struct {
	Key   string
	Value string
}

// SectionComponent is the capability set a reusable section implements.
// Implementations must be idempotent to re-render: Render only reads the
// store, and it may run zero or many times in one session.
type SectionComponent interface {
	// Render returns the instance's sub-field bindings with any prior values
	// read back from the store.
	Render(store *session.Store, scope Scope, cfg Config) []Binding

	// Validate aggregates the sub-field validation failures for the instance.
	// An empty slice means the instance is acceptable.
	Validate(store *session.Store, scope Scope, cfg Config) []model.ValidationError

	// Serialize returns the instance's flat key/value answers.
	Serialize(store *session.Store, scope Scope, cfg Config) []Pair
}

package engine

import "github.com/goliatone/go-surveyform/pkg/model"

// RenderedField is one question bound to its namespaced state key with any
// prior value read back from the store. Renderers (HTML, TUI) consume these
// without knowing about namespaces or components.
type RenderedField struct {
	StateKey string
	FieldKey string
	Label    string
	Kind     model.FieldKind
	Required bool
	Help     string
	Options  []string
	Value    string
	Values   []string
}

// RenderedSection carries a section's bound fields in declaration order.
type RenderedSection struct {
	Title  string
	Fields []RenderedField
}

// RenderedForm is the display model for one FormSpec in one namespace.
type RenderedForm struct {
	ID        string
	Title     string
	Namespace string
	Sections  []RenderedSection
}

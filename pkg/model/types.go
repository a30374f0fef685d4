package model

// FieldKind enumerates the supported question widgets.
type FieldKind string

const (
	FieldKindLikert      FieldKind = "likert"
	FieldKindText        FieldKind = "text"
	FieldKindTextarea    FieldKind = "textarea"
	FieldKindSelect      FieldKind = "select"
	FieldKindMultiselect FieldKind = "multiselect"
	FieldKindNumber      FieldKind = "number"
	FieldKindDate        FieldKind = "date"
	FieldKindCheckbox    FieldKind = "checkbox"
)

// Field describes a single question. Fields are plain data; rendering,
// validation, and serialization live in the engine and renderer packages so
// the schema never grows behavior.
type Field struct {
	Key      string    `yaml:"key" json:"key"`
	Label    string    `yaml:"label" json:"label"`
	Kind     FieldKind `yaml:"kind" json:"kind"`
	Required bool      `yaml:"required,omitempty" json:"required,omitempty"`
	Help     string    `yaml:"help,omitempty" json:"help,omitempty"`
	Options  []string  `yaml:"options,omitempty" json:"options,omitempty"`
}

// ComponentRef points a section at a reusable component registered under
// ComponentID. InstanceID keeps multiple uses of the same component (for
// example a billing and a shipping address) from sharing stored answers.
type ComponentRef struct {
	ComponentID string         `yaml:"component" json:"component"`
	InstanceID  string         `yaml:"instance,omitempty" json:"instance,omitempty"`
	Config      map[string]any `yaml:"config,omitempty" json:"config,omitempty"`
}

// Section groups ordered fields and/or component instances under a title.
type Section struct {
	Title      string         `yaml:"title" json:"title"`
	Fields     []Field        `yaml:"fields,omitempty" json:"fields,omitempty"`
	Components []ComponentRef `yaml:"components,omitempty" json:"components,omitempty"`
}

// FormSpec is one complete survey definition. Specs are created at process
// start (or loaded from disk) and treated as read-only afterwards.
type FormSpec struct {
	ID       string    `yaml:"id" json:"id"`
	Title    string    `yaml:"title" json:"title"`
	Sections []Section `yaml:"sections" json:"sections"`
}

// Section returns the section with the given title, if present.
func (s FormSpec) Section(title string) (Section, bool) {
	for _, sec := range s.Sections {
		if sec.Title == title {
			return sec, true
		}
	}
	return Section{}, false
}

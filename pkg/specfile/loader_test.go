package specfile_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/specfile"
)

const sampleYAML = `
id: customer_feedback
title: Customer Feedback
sections:
  - title: Service
    fields:
      - key: rating
        label: How satisfied are you?
        kind: likert
        required: true
        options: ["", "1 - Very Dissatisfied", "2 - Dissatisfied", "3 - Neutral", "4 - Satisfied", "5 - Very Satisfied"]
        help: 1 low, 5 high
      - key: comments
        label: Anything else?
        kind: textarea
  - title: Contact
    components:
      - component: address
        instance: home
        config:
          title: Home Address
`

func TestParse(t *testing.T) {
	spec, err := specfile.Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if spec.ID != "customer_feedback" {
		t.Fatalf("unexpected id %q", spec.ID)
	}
	if len(spec.Sections) != 2 {
		t.Fatalf("expected two sections, got %d", len(spec.Sections))
	}

	rating := spec.Sections[0].Fields[0]
	if rating.Kind != model.FieldKindLikert || !rating.Required {
		t.Fatalf("unexpected rating field %+v", rating)
	}
	if len(rating.Options) != 6 {
		t.Fatalf("expected 6 options, got %d", len(rating.Options))
	}

	ref := spec.Sections[1].Components[0]
	if ref.ComponentID != "address" || ref.InstanceID != "home" {
		t.Fatalf("unexpected component ref %+v", ref)
	}
	if got := ref.Config["title"]; got != "Home Address" {
		t.Fatalf("expected config title, got %v", got)
	}
}

func TestParseRejectsInvalidSpec(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{name: "not yaml", yaml: "{{nope"},
		{name: "missing id", yaml: "title: X\nsections:\n  - title: S\n    fields:\n      - key: k\n        kind: text\n"},
		{name: "missing kind", yaml: "id: x\ntitle: X\nsections:\n  - title: S\n    fields:\n      - key: k\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := specfile.Parse([]byte(tc.yaml)); err == nil {
				t.Fatal("expected parse failure")
			}
		})
	}
}

func TestParseReader(t *testing.T) {
	spec, err := specfile.ParseReader(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("parse reader: %v", err)
	}
	if spec.ID != "customer_feedback" {
		t.Fatalf("unexpected id %q", spec.ID)
	}
}

func TestLoadFS(t *testing.T) {
	second := strings.Replace(sampleYAML, "customer_feedback", "second_survey", 1)
	fsys := fstest.MapFS{
		"specs/feedback.yaml": {Data: []byte(sampleYAML)},
		"specs/second.yml":    {Data: []byte(second)},
		"specs/notes.txt":     {Data: []byte("ignored")},
	}

	specs, err := specfile.LoadFS(fsys, "specs")
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}

	var ids []string
	for id := range specs {
		ids = append(ids, id)
	}
	want := map[string]bool{"customer_feedback": true, "second_survey": true}
	if len(ids) != 2 {
		t.Fatalf("expected two specs, got %v", ids)
	}
	for _, id := range ids {
		if !want[id] {
			t.Fatalf("unexpected spec id %q", id)
		}
	}
}

func TestLoadFSRejectsDuplicateIDs(t *testing.T) {
	fsys := fstest.MapFS{
		"specs/a.yaml": {Data: []byte(sampleYAML)},
		"specs/b.yaml": {Data: []byte(sampleYAML)},
	}
	if _, err := specfile.LoadFS(fsys, "specs"); err == nil {
		t.Fatal("expected duplicate id failure")
	}
}

package model_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-surveyform/pkg/model"
)

func validSpec() model.FormSpec {
	return model.FormSpec{
		ID:    "demo",
		Title: "Demo Survey",
		Sections: []model.Section{
			{
				Title: "About",
				Fields: []model.Field{
					{Key: "name", Label: "Name", Kind: model.FieldKindText},
					{Key: "mood", Label: "Mood", Kind: model.FieldKindSelect, Options: []string{"", "good", "bad"}},
				},
				Components: []model.ComponentRef{
					{ComponentID: "address", InstanceID: "home"},
				},
			},
		},
	}
}

func TestValidateAcceptsWellFormedSpec(t *testing.T) {
	if err := model.Validate(validSpec()); err != nil {
		t.Fatalf("expected valid spec, got %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*model.FormSpec)
		wantSub string
	}{
		{
			name:    "missing id",
			mutate:  func(s *model.FormSpec) { s.ID = "" },
			wantSub: "id is required",
		},
		{
			name:    "missing title",
			mutate:  func(s *model.FormSpec) { s.Title = "" },
			wantSub: "title is required",
		},
		{
			name:    "no sections",
			mutate:  func(s *model.FormSpec) { s.Sections = nil },
			wantSub: "at least one section",
		},
		{
			name: "duplicate field key",
			mutate: func(s *model.FormSpec) {
				s.Sections[0].Fields = append(s.Sections[0].Fields,
					model.Field{Key: "name", Label: "Name again", Kind: model.FieldKindText})
			},
			wantSub: "duplicate field key",
		},
		{
			name: "missing field kind",
			mutate: func(s *model.FormSpec) {
				s.Sections[0].Fields[0].Kind = ""
			},
			wantSub: "kind is required",
		},
		{
			name: "component without instance",
			mutate: func(s *model.FormSpec) {
				s.Sections[0].Components[0].InstanceID = ""
			},
			wantSub: "instance id is required",
		},
		{
			name: "instance id reused",
			mutate: func(s *model.FormSpec) {
				s.Sections = append(s.Sections, model.Section{
					Title: "Other",
					Components: []model.ComponentRef{
						{ComponentID: "address", InstanceID: "home"},
					},
				})
			},
			wantSub: "reused",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := validSpec()
			tc.mutate(&spec)
			err := model.Validate(spec)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("expected error containing %q, got %v", tc.wantSub, err)
			}
		})
	}
}

func TestValidateAllowsSameInstanceForDifferentComponents(t *testing.T) {
	spec := validSpec()
	spec.Sections[0].Components = append(spec.Sections[0].Components,
		model.ComponentRef{ComponentID: "phone", InstanceID: "home"})
	if err := model.Validate(spec); err != nil {
		t.Fatalf("expected instance reuse across components to pass, got %v", err)
	}
}

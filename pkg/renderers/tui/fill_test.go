package tui_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-surveyform/pkg/engine"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/renderers/tui"
	"github.com/goliatone/go-surveyform/pkg/session"
)

// scriptedDriver answers prompts from canned responses, keyed by the prompt
// message prefix. Unmatched prompts return the zero answer.
type scriptedDriver struct {
	selects   map[string]int
	inputs    map[string]string
	textareas map[string]string
	confirms  map[string]bool
	infos     []string
}

func (d *scriptedDriver) lookupSelect(message string) int {
	for prefix, idx := range d.selects {
		if strings.HasPrefix(message, prefix) {
			return idx
		}
	}
	return 0
}

func (d *scriptedDriver) Input(ctx context.Context, cfg tui.InputConfig) (string, error) {
	for prefix, out := range d.inputs {
		if strings.HasPrefix(cfg.Message, prefix) {
			return out, nil
		}
	}
	return "", nil
}

func (d *scriptedDriver) Select(ctx context.Context, cfg tui.SelectConfig) (int, error) {
	return d.lookupSelect(cfg.Message), nil
}

func (d *scriptedDriver) MultiSelect(ctx context.Context, cfg tui.SelectConfig) ([]int, error) {
	return nil, nil
}

func (d *scriptedDriver) Confirm(ctx context.Context, cfg tui.ConfirmConfig) (bool, error) {
	for prefix, out := range d.confirms {
		if strings.HasPrefix(cfg.Message, prefix) {
			return out, nil
		}
	}
	return false, nil
}

func (d *scriptedDriver) TextArea(ctx context.Context, cfg tui.TextAreaConfig) (string, error) {
	for prefix, out := range d.textareas {
		if strings.HasPrefix(cfg.Message, prefix) {
			return out, nil
		}
	}
	return "", nil
}

func (d *scriptedDriver) Info(ctx context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func fillSpec() model.FormSpec {
	return model.FormSpec{
		ID:    "survey",
		Title: "Terminal Survey",
		Sections: []model.Section{
			{
				Title: "Trust",
				Fields: []model.Field{
					model.LikertField("trust", "Would you trust this?", true, model.TrustScale, ""),
					{Key: "notes", Label: "Notes", Kind: model.FieldKindTextarea},
				},
			},
		},
	}
}

func TestFillStoresAnswers(t *testing.T) {
	driver := &scriptedDriver{
		selects:   map[string]int{"Would you trust this?": 5},
		textareas: map[string]string{"Notes": "all good"},
	}
	filler, err := tui.NewFiller(engine.New(), driver)
	if err != nil {
		t.Fatalf("new filler: %v", err)
	}

	store := session.NewStore()
	err = filler.Fill(context.Background(), fillSpec(), "survey", store, tui.FillOptions{})
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	if got := store.Get(session.Key("survey", "trust")); got != "5 - Completely Trustworthy" {
		t.Fatalf("unexpected trust answer %q", got)
	}
	if got := store.Get(session.Key("survey", "notes")); got != "all good" {
		t.Fatalf("unexpected notes answer %q", got)
	}
}

func TestFillRepromptsUntilValid(t *testing.T) {
	// first pass picks the blank option, so validation fails once
	driver := &scriptedDriver{selects: map[string]int{}}
	filler, err := tui.NewFiller(engine.New(), driver)
	if err != nil {
		t.Fatalf("new filler: %v", err)
	}

	store := session.NewStore()
	err = filler.Fill(context.Background(), fillSpec(), "survey", store, tui.FillOptions{MaxPasses: 2})
	if err == nil {
		t.Fatal("expected exhausted passes to fail")
	}
	if !strings.Contains(err.Error(), "still failing") {
		t.Fatalf("unexpected error %v", err)
	}

	var reported bool
	for _, msg := range driver.infos {
		if strings.Contains(msg, "need attention") {
			reported = true
		}
	}
	if !reported {
		t.Fatal("expected validation failures reported to the prompt")
	}
}

func TestFillDevModeSkipsValidation(t *testing.T) {
	driver := &scriptedDriver{}
	filler, err := tui.NewFiller(engine.New(), driver)
	if err != nil {
		t.Fatalf("new filler: %v", err)
	}

	store := session.NewStore()
	err = filler.Fill(context.Background(), fillSpec(), "survey", store, tui.FillOptions{DevMode: true})
	if err != nil {
		t.Fatalf("expected dev mode fill to pass, got %v", err)
	}
}

func TestNewFillerRequiresEngine(t *testing.T) {
	if _, err := tui.NewFiller(nil, &scriptedDriver{}); err == nil {
		t.Fatal("expected nil engine to fail")
	}
}

package classify

import (
	"strings"
	"testing"
)

func TestDefaultModelIsValid(t *testing.T) {
	model := DefaultModel()
	if err := model.validate(); err != nil {
		t.Fatalf("DefaultModel() invalid: %v", err)
	}
	if len(model.Categories) != 12 {
		t.Fatalf("expected 12 categories, got %d", len(model.Categories))
	}
	if len(model.AffinityKeywords) == 0 {
		t.Fatalf("expected affinity keywords")
	}
}

func TestLoadModel(t *testing.T) {
	const doc = `
categories:
  - id: depot_operations
    weight: 1.1
    keywords:
      - depot
      - stabling
      - shunting
  - id: incident_reports
    weight: 1.2
    keywords:
      - incident
      - near miss
affinity_keywords:
  - kochi metro
  - aluva
`
	model, err := LoadModel(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadModel() error = %v", err)
	}
	if len(model.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(model.Categories))
	}
	if model.Categories[0].ID != "depot_operations" || model.Categories[0].Weight != 1.1 {
		t.Fatalf("unexpected first category: %+v", model.Categories[0])
	}
	if len(model.AffinityKeywords) != 2 {
		t.Fatalf("unexpected affinity keywords: %v", model.AffinityKeywords)
	}
}

func TestLoadModelRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"no categories", `affinity_keywords: [kochi]`},
		{"empty id", "categories:\n  - id: \"\"\n    weight: 1.0\n    keywords: [a]"},
		{"duplicate id", "categories:\n  - id: dup\n    weight: 1.0\n    keywords: [a]\n  - id: dup\n    weight: 1.0\n    keywords: [b]"},
		{"no keywords", "categories:\n  - id: empty\n    weight: 1.0\n    keywords: []"},
		{"bad weight", "categories:\n  - id: bad\n    weight: 0\n    keywords: [a]"},
		{"not yaml", `{{{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadModel(strings.NewReader(tc.doc)); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

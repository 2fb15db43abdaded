// Package classify scores railway document text against a fixed keyword
// category model and derives ranked classification results.
package classify

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Category is one railway-document subtype: a stable id, an ordered keyword
// list and a trust-weighted multiplier.
type Category struct {
	ID       string   `yaml:"id"`
	Keywords []string `yaml:"keywords"`
	Weight   float64  `yaml:"weight"`
}

// Model is the immutable classification configuration: categories in
// declaration order plus the operator-affinity keyword set. Build it once at
// process start and share it read-only.
type Model struct {
	Categories       []Category `yaml:"categories"`
	AffinityKeywords []string   `yaml:"affinity_keywords"`
}

// DefaultModel returns the built-in railway category table.
func DefaultModel() Model {
	return Model{
		Categories: []Category{
			{
				ID: "safety_manual",
				Keywords: []string{
					"safety", "hazard", "risk", "emergency", "accident", "incident",
					"emergency response", "safety protocol", "hazard identification",
					"risk assessment", "safety training", "accident prevention",
					"occupational safety", "personal protective equipment", "ppe",
					"emergency evacuation", "fire safety", "first aid",
				},
				Weight: 1.2,
			},
			{
				ID: "technical_documentation",
				Keywords: []string{
					"specifications", "technical", "engineering", "maintenance", "repair",
					"technical specifications", "engineering drawings", "maintenance manual",
					"repair procedures", "technical standards", "system specifications",
					"component specifications", "installation guide", "troubleshooting",
					"calibration", "testing procedures", "quality control",
				},
				Weight: 1.0,
			},
			{
				ID: "operational_procedures",
				Keywords: []string{
					"operation", "procedure", "protocol", "guideline", "instruction",
					"operating procedures", "standard operating procedure", "sop",
					"operational guidelines", "work instructions", "process flow",
					"operational manual", "duty instructions", "shift procedures",
					"operational safety", "control procedures",
				},
				Weight: 1.1,
			},
			{
				ID: "schedule_timetable",
				Keywords: []string{
					"schedule", "timetable", "departure", "arrival", "route",
					"train schedule", "service timetable", "departure time",
					"arrival time", "route map", "frequency", "service interval",
					"peak hours", "off-peak", "holiday schedule", "special service",
				},
				Weight: 0.9,
			},
			{
				ID: "compliance_regulatory",
				Keywords: []string{
					"compliance", "regulation", "standard", "requirement", "audit",
					"regulatory compliance", "safety standards", "industry standards",
					"compliance audit", "regulatory requirements", "certification",
					"inspection", "quality assurance", "standard procedures",
					"legal requirements", "regulatory framework",
				},
				Weight: 1.1,
			},
			{
				ID: "training_manual",
				Keywords: []string{
					"training", "education", "course", "certification", "qualification",
					"training manual", "training program", "educational material",
					"certification course", "qualification requirements", "skill development",
					"competency", "learning objectives", "training schedule",
					"assessment", "examination", "practical training",
				},
				Weight: 0.8,
			},
			{
				ID: "infrastructure",
				Keywords: []string{
					"track", "signal", "station", "platform", "bridge", "tunnel",
					"railway track", "signaling system", "station infrastructure",
					"platform design", "bridge construction", "tunnel engineering",
					"overhead lines", "power supply", "track maintenance",
					"signal maintenance", "infrastructure development",
					"civil engineering", "structural design",
				},
				Weight: 1.0,
			},
			{
				ID: "rolling_stock",
				Keywords: []string{
					"locomotive", "coach", "wagon", "train", "vehicle",
					"rolling stock", "train composition", "locomotive maintenance",
					"coach design", "passenger coach", "freight wagon",
					"multiple unit", "emu", "dmu", "electric multiple unit",
					"diesel multiple unit", "bogies", "traction system",
				},
				Weight: 1.0,
			},
			{
				ID: "passenger_services",
				Keywords: []string{
					"passenger", "ticket", "booking", "service", "customer",
					"passenger services", "ticketing system", "reservation",
					"customer service", "passenger amenities", "accessibility",
					"passenger information", "announcements", "passenger safety",
					"boarding", "alighting", "passenger comfort",
				},
				Weight: 0.7,
			},
			{
				ID: "freight_operations",
				Keywords: []string{
					"freight", "cargo", "goods", "loading", "unloading",
					"freight operations", "cargo handling", "goods transportation",
					"loading procedures", "unloading procedures", "freight yard",
					"cargo terminal", "container handling", "bulk cargo",
					"freight scheduling", "goods wagon",
				},
				Weight: 0.8,
			},
			{
				ID: "signaling_communication",
				Keywords: []string{
					"signaling", "communication", "control", "interlocking", "block",
					"signal control", "communication system", "train control",
					"automatic block signaling", "centralized traffic control",
					"radio communication", "data communication", "control room",
					"dispatching", "train detection", "level crossing",
				},
				Weight: 1.1,
			},
			{
				ID: "electrical_systems",
				Keywords: []string{
					"electrical", "power", "traction", "substation", "overhead",
					"electrical system", "power supply", "traction power",
					"electrical substation", "overhead equipment", "pantograph",
					"electrical maintenance", "power distribution", "25kv",
					"electrical safety", "earthing", "insulation",
				},
				Weight: 1.0,
			},
		},
		AffinityKeywords: []string{
			"kmrl", "kochi metro", "kerala", "metro rail", "rapid transit",
			"kochi", "ernakulam", "aluva", "maharajas college", "palarivattom",
			"edappally", "kalamassery", "cochin", "metro station",
		},
	}
}

// LoadModel decodes a model override from YAML.
func LoadModel(r io.Reader) (Model, error) {
	var m Model
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return Model{}, fmt.Errorf("decode category model: %w", err)
	}
	if err := m.validate(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// LoadModelFile reads a YAML model override from disk.
func LoadModelFile(path string) (Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return Model{}, fmt.Errorf("open category model: %w", err)
	}
	defer f.Close()
	return LoadModel(f)
}

func (m Model) validate() error {
	if len(m.Categories) == 0 {
		return fmt.Errorf("category model: no categories defined")
	}
	seen := make(map[string]struct{}, len(m.Categories))
	for _, c := range m.Categories {
		if c.ID == "" {
			return fmt.Errorf("category model: category with empty id")
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("category model: duplicate category id %q", c.ID)
		}
		seen[c.ID] = struct{}{}
		if len(c.Keywords) == 0 {
			return fmt.Errorf("category model: category %q has no keywords", c.ID)
		}
		if c.Weight <= 0 {
			return fmt.Errorf("category model: category %q has non-positive weight %v", c.ID, c.Weight)
		}
	}
	return nil
}

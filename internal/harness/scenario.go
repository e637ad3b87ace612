// Package harness runs declarative conformance scenarios against the tag
// engine.
//
// A scenario seeds a fixture store with reminders, applies a sequence of
// add/remove steps with expected outcomes, and snapshots the final tag
// state for golden-file comparison. Scenarios are YAML files under
// testdata/scenarios.
package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Reminders are seeded into the fixture store before any step runs.
	Reminders []ReminderSeed `yaml:"reminders"`

	// Steps are applied in order.
	Steps []Step `yaml:"steps"`
}

// ReminderSeed describes one reminder to seed.
type ReminderSeed struct {
	// ID is the external identifier.
	ID string `yaml:"id"`

	// Title is the display title.
	Title string `yaml:"title,omitempty"`
}

// Step is a single tag mutation with an optional expected outcome.
type Step struct {
	// Op is "add" or "remove".
	Op string `yaml:"op"`

	// Tag is the tag name as the user would type it.
	Tag string `yaml:"tag"`

	// Reminder is the external reminder identifier.
	Reminder string `yaml:"reminder"`

	// Want, when set, asserts the operation's changed/unchanged result.
	Want *bool `yaml:"want,omitempty"`
}

// LoadScenario reads and validates one scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// LoadScenarioDir loads every *.yaml scenario under dir, sorted by file
// name for stable test ordering.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var scenarios []*Scenario
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("missing name")
	}
	if len(s.Reminders) == 0 {
		return fmt.Errorf("no reminders seeded")
	}

	seeded := make(map[string]bool, len(s.Reminders))
	for i, r := range s.Reminders {
		if r.ID == "" {
			return fmt.Errorf("reminder %d has no id", i)
		}
		seeded[r.ID] = true
	}

	for i, step := range s.Steps {
		if step.Op != "add" && step.Op != "remove" {
			return fmt.Errorf("step %d: unknown op %q", i, step.Op)
		}
		if step.Tag == "" {
			return fmt.Errorf("step %d: missing tag", i)
		}
		if !seeded[step.Reminder] {
			return fmt.Errorf("step %d: reminder %q not seeded", i, step.Reminder)
		}
	}
	return nil
}

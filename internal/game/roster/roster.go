// Package roster builds the participants of an encounter from a YAML roster.
package roster

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/rpgbattle/internal/game/unit"
)

// Entry describes one participant.
type Entry struct {
	// Archetype is an archetype ID or display name from the catalog.
	Archetype string `yaml:"archetype"`
	// Level defaults to 1 when omitted.
	Level int `yaml:"level"`
	// Name overrides the archetype's display name.
	Name string `yaml:"name"`
	// HP, when set, replaces the starting hp (clamped to max hp).
	HP *int `yaml:"hp"`
}

// Roster is the on-disk encounter description.
type Roster struct {
	Participants []Entry `yaml:"participants"`
}

// Validate checks the roster's structural invariants.
//
// Postcondition: Returns nil iff there is at least one participant, every
// entry names an archetype, no level is negative (0 selects level 1), and hp
// overrides are positive. Name uniqueness depends on the catalog and is
// checked by Build.
func (r *Roster) Validate() error {
	if len(r.Participants) == 0 {
		return fmt.Errorf("roster: participants must not be empty")
	}
	for i, e := range r.Participants {
		if e.Archetype == "" {
			return fmt.Errorf("roster entry %d: archetype must not be empty", i)
		}
		if e.Level < 0 {
			return fmt.Errorf("roster entry %d (%s): level must be >= 0 (0 means level 1), got %d", i, e.Archetype, e.Level)
		}
		if e.HP != nil && *e.HP < 1 {
			return fmt.Errorf("roster entry %d (%s): hp must be >= 1", i, e.Archetype)
		}
	}
	return nil
}

// Parse decodes and validates a roster from raw YAML bytes.
//
// Postcondition: Returns a validated *Roster or an error.
func Parse(data []byte) (*Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing roster YAML: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Build instantiates every entry against cat, in roster order.
//
// Precondition: cat must be non-nil.
// Postcondition: Returns one unit per entry or an error naming the first
// unknown archetype or duplicate name.
func (r *Roster) Build(cat *unit.Catalog) ([]*unit.Unit, error) {
	units := make([]*unit.Unit, 0, len(r.Participants))
	seen := make(map[string]int, len(r.Participants))
	for i, e := range r.Participants {
		level := e.Level
		if level == 0 {
			level = 1
		}
		u, err := cat.New(e.Archetype, level)
		if err != nil {
			return nil, fmt.Errorf("roster entry %d: %w", i, err)
		}
		if e.Name != "" {
			u.Name = e.Name
		}
		if e.HP != nil {
			u.SetHP(*e.HP)
		}
		key := strings.ToLower(u.Name)
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("roster entry %d: name %q already used by entry %d", i, u.Name, prev)
		}
		seen[key] = i
		units = append(units, u)
	}
	return units, nil
}

// Load reads the roster file at path and builds its participants against cat.
//
// Precondition: path must be a readable YAML file; cat must be non-nil.
// Postcondition: Returns the participants in file order, or an error.
func Load(path string, cat *unit.Catalog) ([]*unit.Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %q: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return r.Build(cat)
}

// Find returns the unit whose name matches name case-insensitively.
func Find(units []*unit.Unit, name string) (*unit.Unit, bool) {
	for _, u := range units {
		if strings.EqualFold(u.Name, name) {
			return u, true
		}
	}
	return nil, false
}

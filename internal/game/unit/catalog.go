package unit

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Archetype IDs of the built-in catalog.
const (
	Hero        = "hero"
	Warrior     = "warrior"
	Mage        = "mage"
	Cleric      = "cleric"
	Rogue       = "rogue"
	Monster     = "monster"
	RedDragon   = "red_dragon"
	GreenDragon = "green_dragon"
	Vampire     = "vampire"
	Skeleton    = "skeleton"
	Troll       = "troll"
	Orc         = "orc"
)

//go:embed content/archetypes.yaml
var builtinArchetypes []byte

// Catalog indexes archetype descriptors by ID.
//
// Invariant: each ID is registered at most once; every entry passed Validate.
type Catalog struct {
	byID  map[string]*Archetype
	order []string
}

// LoadCatalog parses a YAML list of archetypes and validates each entry.
//
// Precondition: data must be a YAML sequence of Archetype documents.
// Postcondition: Returns a Catalog containing every entry, or an error on the
// first parse, validation, or duplicate-ID failure.
func LoadCatalog(data []byte) (*Catalog, error) {
	var archetypes []*Archetype
	if err := yaml.Unmarshal(data, &archetypes); err != nil {
		return nil, fmt.Errorf("parsing archetype catalog: %w", err)
	}
	c := &Catalog{byID: make(map[string]*Archetype, len(archetypes))}
	for _, a := range archetypes {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.byID[a.ID]; exists {
			return nil, fmt.Errorf("archetype %q registered twice", a.ID)
		}
		c.byID[a.ID] = a
		c.order = append(c.order, a.ID)
	}
	return c, nil
}

// DefaultCatalog returns the built-in catalog of heroes and monsters.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(builtinArchetypes)
}

// MustDefaultCatalog is DefaultCatalog that panics on error.
func MustDefaultCatalog() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic("unit: built-in archetype catalog is invalid: " + err.Error())
	}
	return c
}

// Lookup returns the archetype whose ID matches key, falling back to a
// case-insensitive match on Name.
func (c *Catalog) Lookup(key string) (*Archetype, bool) {
	if a, ok := c.byID[key]; ok {
		return a, true
	}
	for _, id := range c.order {
		if strings.EqualFold(c.byID[id].Name, key) {
			return c.byID[id], true
		}
	}
	return nil, false
}

// IDs returns archetype IDs in catalog order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// New creates a unit of the archetype named by key at the given level.
//
// Precondition: level >= 1.
// Postcondition: Returns a fresh unit at full hp/mp, or an error if key is unknown.
func (c *Catalog) New(key string, level int) (*Unit, error) {
	a, ok := c.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("unknown archetype %q", key)
	}
	return New(a, level)
}

// MustNew is New that panics on error.
func (c *Catalog) MustNew(key string, level int) *Unit {
	u, err := c.New(key, level)
	if err != nil {
		panic(err)
	}
	return u
}

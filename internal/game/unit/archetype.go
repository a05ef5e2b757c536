package unit

import (
	"fmt"
	"slices"
)

// Kind distinguishes heroes from monsters.
type Kind string

const (
	KindHero    Kind = "hero"
	KindMonster Kind = "monster"
)

// Stat names used as keys in archetype modifier and multiplier tables.
const (
	StatStrength     = "strength"
	StatConstitution = "constitution"
	StatIntelligence = "intelligence"
	StatSpeed        = "speed"
)

var statNames = []string{StatStrength, StatConstitution, StatIntelligence, StatSpeed}

// Trait is a behavior flag consulted by the shared damage and healing routines.
type Trait string

const (
	// TraitDamageReduction reduces all incoming damage by DamageReduction, floored at zero.
	TraitDamageReduction Trait = "damage_reduction"
	// TraitInvertedHealing makes HealDamage harm the unit instead of healing it.
	TraitInvertedHealing Trait = "inverted_healing"
)

// DamageReduction is the flat amount absorbed by units with TraitDamageReduction.
const DamageReduction = 5

// Generic base values applied before archetype adjustments.
const (
	HeroBaseStat    = 6
	HeroBaseHP      = 100
	HeroBaseMP      = 50
	MonsterBaseStat = 8
	MonsterBaseHP   = 10
)

// Archetype is the data-driven descriptor of a hero class or monster species.
//
// Heroes use additive Modifiers, monsters use multiplicative Multipliers.
// A zero BaseHP or BaseMP means the generic base applies.
type Archetype struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Kind        Kind               `yaml:"kind"`
	Family      string             `yaml:"family"`
	BaseHP      int                `yaml:"base_hp"`
	BaseMP      int                `yaml:"base_mp"`
	Modifiers   map[string]int     `yaml:"modifiers"`
	Multipliers map[string]float64 `yaml:"multipliers"`
	Abilities   []string           `yaml:"abilities"`
	ActionCycle []string           `yaml:"action_cycle"`
	Traits      []Trait            `yaml:"traits"`
}

// HasTrait reports whether the archetype carries trait t.
func (a *Archetype) HasTrait(t Trait) bool {
	return slices.Contains(a.Traits, t)
}

// HasAbility reports whether name is in the archetype's ability set.
func (a *Archetype) HasAbility(name string) bool {
	return slices.Contains(a.Abilities, name)
}

// Modifier returns the additive modifier for stat, or 0.
func (a *Archetype) Modifier(stat string) int {
	return a.Modifiers[stat]
}

// Multiplier returns the multiplicative factor for stat, or 1.
func (a *Archetype) Multiplier(stat string) float64 {
	if m, ok := a.Multipliers[stat]; ok {
		return m
	}
	return 1
}

func (a *Archetype) baseHP() int {
	if a.BaseHP > 0 {
		return a.BaseHP
	}
	if a.Kind == KindMonster {
		return MonsterBaseHP
	}
	return HeroBaseHP
}

func (a *Archetype) baseMP() int {
	if a.Kind == KindMonster {
		return 0
	}
	if a.BaseMP > 0 {
		return a.BaseMP
	}
	return HeroBaseMP
}

// Validate checks the descriptor's invariants.
//
// Postcondition: Returns nil iff ID and Name are non-empty, Kind is known,
// every stat key is recognized, multipliers are positive, the ability set is
// non-empty and every ActionCycle entry is in the ability set.
func (a *Archetype) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("archetype: id must not be empty")
	}
	if a.Name == "" {
		return fmt.Errorf("archetype %q: name must not be empty", a.ID)
	}
	if a.Kind != KindHero && a.Kind != KindMonster {
		return fmt.Errorf("archetype %q: kind must be one of [hero, monster], got %q", a.ID, a.Kind)
	}
	for stat := range a.Modifiers {
		if !slices.Contains(statNames, stat) {
			return fmt.Errorf("archetype %q: unknown modifier stat %q", a.ID, stat)
		}
	}
	for stat, m := range a.Multipliers {
		if !slices.Contains(statNames, stat) {
			return fmt.Errorf("archetype %q: unknown multiplier stat %q", a.ID, stat)
		}
		if m <= 0 {
			return fmt.Errorf("archetype %q: multiplier for %s must be > 0, got %v", a.ID, stat, m)
		}
	}
	if len(a.Abilities) == 0 {
		return fmt.Errorf("archetype %q: abilities must not be empty", a.ID)
	}
	for _, name := range a.ActionCycle {
		if !a.HasAbility(name) {
			return fmt.Errorf("archetype %q: action cycle entry %q is not one of its abilities", a.ID, name)
		}
	}
	for _, t := range a.Traits {
		if t != TraitDamageReduction && t != TraitInvertedHealing {
			return fmt.Errorf("archetype %q: unknown trait %q", a.ID, t)
		}
	}
	return nil
}

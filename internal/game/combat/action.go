package combat

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/rpgbattle/internal/game/unit"
)

// CostKind identifies which pool an ability draws from.
type CostKind int

const (
	CostNone CostKind = iota
	CostMP
	// CostHP abilities always succeed; the actor takes the cost as self-inflicted damage.
	CostHP
)

// Targeting identifies who an ability lands on.
type Targeting int

const (
	// TargetChosen abilities act on the target picked by the caller.
	TargetChosen Targeting = iota
	// TargetSelf abilities ignore the supplied target and act on the actor.
	TargetSelf
)

// EffectKind distinguishes damaging from healing abilities.
type EffectKind int

const (
	EffectDamage EffectKind = iota
	EffectHealing
)

// Ability is one named action bound to an archetype's capability table.
//
// Amount is a pure function of the actor's current stats. Requires, when
// non-nil, is the ability-specific target predicate checked after the
// generic "target is alive" rule.
type Ability struct {
	Name      string
	Kind      EffectKind
	CostKind  CostKind
	Cost      func(actor *unit.Unit) int
	Targeting Targeting
	Requires  func(target *unit.Unit) error
	Amount    func(actor *unit.Unit) int

	// Drain heals the actor (non-inverted) by the amount dealt.
	Drain bool
	// Wither permanently lowers the target's MaxHP by the amount dealt.
	Wither bool
}

// Label returns the display name used in descriptions, e.g. "shield slam".
func (a Ability) Label() string {
	return strings.ReplaceAll(a.Name, "_", " ")
}

func flat(n int) func(*unit.Unit) int { return func(*unit.Unit) int { return n } }

func requireUnhurt(target *unit.Unit) error {
	if !target.IsUnhurt() {
		return fmt.Errorf("%w: %s must be undamaged", ErrInvalidTarget, target.Name)
	}
	return nil
}

// abilities is the handler table shared by every archetype. An archetype's
// capability table is the subset named in its descriptor.
var abilities = map[string]Ability{
	"fight": {
		Amount: func(a *unit.Unit) int { return a.Strength },
	},

	// Warrior
	"shield_slam": {
		CostKind: CostMP, Cost: flat(5),
		Amount: func(a *unit.Unit) int { return a.Strength * 3 / 2 },
	},
	"reckless_charge": {
		CostKind: CostHP, Cost: flat(4),
		Amount: func(a *unit.Unit) int { return 2 * a.Strength },
	},

	// Mage
	"fireball": {
		CostKind: CostMP, Cost: flat(8),
		Amount: func(a *unit.Unit) int { return 6 + a.Intelligence/2 },
	},
	"frostbolt": {
		CostKind: CostMP, Cost: flat(3),
		Amount: func(a *unit.Unit) int { return 3 + a.Level },
	},

	// Cleric
	"heal": {
		Kind:     EffectHealing,
		CostKind: CostMP, Cost: flat(4),
		Amount: func(a *unit.Unit) int { return a.Constitution },
	},
	"smite": {
		CostKind: CostMP, Cost: flat(7),
		Amount: func(a *unit.Unit) int { return 4 + (a.Intelligence+a.Constitution)/2 },
	},

	// Rogue
	"backstab": {
		Requires: requireUnhurt,
		Amount:   func(a *unit.Unit) int { return 2 * a.Strength },
	},
	"rapid_strike": {
		CostKind: CostMP, Cost: flat(5),
		Amount: func(a *unit.Unit) int { return 4 + a.Speed },
	},

	// Dragons
	"tail_swipe": {
		Amount: func(a *unit.Unit) int { return a.Strength + a.Speed },
	},
	"fire_breath": {
		Amount: func(a *unit.Unit) int { return a.Intelligence * 5 / 2 },
	},
	"poison_breath": {
		Amount: func(a *unit.Unit) int { return (a.Intelligence + a.Constitution) * 3 / 2 },
	},

	// Undead
	"life_drain": {
		Drain:  true,
		Amount: func(a *unit.Unit) int { return a.Intelligence * 3 / 2 },
	},
	"bite": {
		Drain:  true,
		Wither: true,
		Amount: func(a *unit.Unit) int { return a.Speed / 2 },
	},
	"bash": {
		Amount: func(a *unit.Unit) int { return a.Strength * 2 },
	},

	// Humanoids
	"slash": {
		Amount: func(a *unit.Unit) int { return a.Strength + a.Speed },
	},
	"regenerate": {
		Kind:      EffectHealing,
		Targeting: TargetSelf,
		Amount:    func(a *unit.Unit) int { return a.Constitution },
	},
	"blood_rage": {
		CostKind: CostHP, Cost: func(a *unit.Unit) int { return a.Constitution / 2 },
		Amount: func(a *unit.Unit) int { return a.Strength * 2 },
	},
}

// Lookup returns the ability named name from u's capability table.
//
// Postcondition: Returns false iff u's archetype does not list name or no
// handler is registered for it.
func Lookup(u *unit.Unit, name string) (Ability, bool) {
	if !u.HasAbility(name) {
		return Ability{}, false
	}
	a, ok := abilities[name]
	if !ok {
		return Ability{}, false
	}
	a.Name = name
	return a, true
}

// Abilities returns u's capability table in archetype order.
func Abilities(u *unit.Unit) []Ability {
	var out []Ability
	for _, name := range u.Archetype.Abilities {
		if a, ok := Lookup(u, name); ok {
			out = append(out, a)
		}
	}
	return out
}

// CheckCatalog verifies that every ability named by an archetype in cat has a handler.
//
// Postcondition: Returns nil iff every archetype's ability set is fully resolvable.
func CheckCatalog(cat *unit.Catalog) error {
	var missing []string
	for _, id := range cat.IDs() {
		a, _ := cat.Lookup(id)
		for _, name := range a.Abilities {
			if _, ok := abilities[name]; !ok {
				missing = append(missing, fmt.Sprintf("%s.%s", id, name))
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("abilities without a handler: %s", strings.Join(missing, ", "))
	}
	return nil
}

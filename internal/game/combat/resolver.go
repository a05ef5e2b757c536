package combat

import (
	"fmt"

	"github.com/cory-johannsen/rpgbattle/internal/game/unit"
)

// Action records one successful ability invocation.
type Action struct {
	Actor   *unit.Unit
	Target  *unit.Unit
	Ability Ability
	// Amount is the formula result applied to the target. Damage reduction
	// may make the hp actually lost smaller.
	Amount int
	// SelfDamage is the hp cost paid by the actor, if any.
	SelfDamage int
}

// Lines returns the human-readable description of the action.
func (a Action) Lines() []string {
	var lines []string
	switch a.Ability.Kind {
	case EffectHealing:
		lines = append(lines, fmt.Sprintf("%s heals %s with %s for %d health!",
			a.Actor.Name, a.Target.Name, a.Ability.Label(), a.Amount))
	default:
		lines = append(lines, fmt.Sprintf("%s hits %s with %s for %d damage!",
			a.Actor.Name, a.Target.Name, a.Ability.Label(), a.Amount))
	}
	if a.Ability.Wither {
		lines = append(lines, fmt.Sprintf("%s loses %d max health!", a.Target.Name, a.Amount))
	}
	if a.Ability.Drain {
		lines = append(lines, fmt.Sprintf("%s drains %d health!", a.Actor.Name, a.Amount))
	}
	if a.SelfDamage > 0 {
		lines = append(lines, fmt.Sprintf("%s takes %d self-inflicted damage!", a.Actor.Name, a.SelfDamage))
	}
	return lines
}

// Use resolves the ability named name from actor against target.
//
// Resolution order: capability check, target check (alive, then the
// ability's own predicate), mana cost, amount, application, side effects.
// Self-targeted abilities ignore target and may be passed nil.
//
// Precondition: actor must be non-nil.
// Postcondition: On error, no unit is modified and the error wraps one of
// ErrInvalidCommand, ErrInvalidTarget, or ErrInsufficientMP.
func Use(actor *unit.Unit, name string, target *unit.Unit) (Action, error) {
	ab, ok := Lookup(actor, name)
	if !ok {
		return Action{}, fmt.Errorf("%w: %s cannot use %q", ErrInvalidCommand, actor.Name, name)
	}
	if ab.Targeting == TargetSelf {
		target = actor
	}
	if target == nil {
		return Action{}, fmt.Errorf("%w: %s needs a target", ErrInvalidTarget, ab.Label())
	}
	if target.IsDead() {
		return Action{}, fmt.Errorf("%w: %s is dead", ErrInvalidTarget, target.Name)
	}
	if ab.Requires != nil {
		if err := ab.Requires(target); err != nil {
			return Action{}, err
		}
	}

	cost := 0
	if ab.Cost != nil {
		cost = ab.Cost(actor)
	}
	if ab.CostKind == CostMP && !actor.SpendMP(cost) {
		return Action{}, fmt.Errorf("%w: %s needs %d mp for %s, has %d",
			ErrInsufficientMP, actor.Name, cost, ab.Label(), actor.MP)
	}

	act := Action{Actor: actor, Target: target, Ability: ab, Amount: ab.Amount(actor)}
	switch {
	case ab.Kind == EffectHealing && target == actor:
		actor.Restore(act.Amount)
	case ab.Kind == EffectHealing:
		target.HealDamage(act.Amount)
	default:
		target.TakeDamage(act.Amount)
	}

	if ab.Wither {
		target.ReduceMaxHP(act.Amount)
	}
	if ab.Drain {
		actor.Restore(act.Amount)
	}
	if ab.CostKind == CostHP && cost > 0 {
		actor.TakeDamage(cost)
		act.SelfDamage = cost
	}
	return act, nil
}

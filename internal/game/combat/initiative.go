package combat

import (
	"cmp"
	"slices"

	"github.com/cory-johannsen/rpgbattle/internal/game/unit"
)

// Initiative is the rotating turn order of live combatants.
//
// The order is sorted once, ascending by speed with ties kept in input
// order; the unit at the tail acts next. After that it only rotates and
// shrinks, so later speed changes never reorder it.
type Initiative struct {
	order []*unit.Unit
}

// NewInitiative orders the living units of participants by ascending speed.
//
// Postcondition: Units() is non-decreasing in Speed; dead participants are omitted.
func NewInitiative(participants []*unit.Unit) *Initiative {
	order := make([]*unit.Unit, 0, len(participants))
	for _, u := range participants {
		if u != nil && !u.IsDead() {
			order = append(order, u)
		}
	}
	slices.SortStableFunc(order, func(a, b *unit.Unit) int {
		return cmp.Compare(a.Speed, b.Speed)
	})
	return &Initiative{order: order}
}

// Current returns the unit that acts next, or nil when the order is empty.
func (in *Initiative) Current() *unit.Unit {
	if len(in.order) == 0 {
		return nil
	}
	return in.order[len(in.order)-1]
}

// Rotate moves the unit that just acted from the tail to the head.
func (in *Initiative) Rotate() {
	n := len(in.order)
	if n < 2 {
		return
	}
	last := in.order[n-1]
	copy(in.order[1:], in.order[:n-1])
	in.order[0] = last
}

// Prune removes every dead unit, keeping the relative order of the rest.
//
// Postcondition: Returns the removed units in their former order.
func (in *Initiative) Prune() []*unit.Unit {
	var dead []*unit.Unit
	alive := in.order[:0]
	for _, u := range in.order {
		if u.IsDead() {
			dead = append(dead, u)
			continue
		}
		alive = append(alive, u)
	}
	clear(in.order[len(alive):])
	in.order = alive
	return dead
}

// Units returns a copy of the order, head first; the last element acts next.
func (in *Initiative) Units() []*unit.Unit {
	return slices.Clone(in.order)
}

// Contains reports whether u is still in the order.
func (in *Initiative) Contains(u *unit.Unit) bool {
	return slices.Contains(in.order, u)
}

// Heroes returns the heroes still in the order.
func (in *Initiative) Heroes() []*unit.Unit {
	return in.filter((*unit.Unit).IsHero)
}

// Monsters returns the monsters still in the order.
func (in *Initiative) Monsters() []*unit.Unit {
	return in.filter((*unit.Unit).IsMonster)
}

// Len returns the number of units in the order.
func (in *Initiative) Len() int { return len(in.order) }

func (in *Initiative) filter(keep func(*unit.Unit) bool) []*unit.Unit {
	var out []*unit.Unit
	for _, u := range in.order {
		if keep(u) {
			out = append(out, u)
		}
	}
	return out
}

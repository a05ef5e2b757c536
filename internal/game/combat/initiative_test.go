package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/rpgbattle/internal/game/combat"
	"github.com/cory-johannsen/rpgbattle/internal/game/unit"
)

func names(units []*unit.Unit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.Name
	}
	return out
}

func TestNewInitiative_AscendingSpeedFastestLast(t *testing.T) {
	warrior := newUnit(t, unit.Warrior, 1)
	mage := newUnit(t, unit.Mage, 1)
	orc := newUnit(t, unit.Orc, 1)
	dragon := newUnit(t, unit.GreenDragon, 1)

	in := combat.NewInitiative([]*unit.Unit{warrior, mage, orc, dragon})
	assert.Equal(t, []string{"Warrior", "Mage", "Orc", "GreenDragon"}, names(in.Units()))
	assert.Same(t, dragon, in.Current())
}

func TestNewInitiative_SkipsDead(t *testing.T) {
	orc := newUnit(t, unit.Orc, 1)
	orc.HP = 0
	warrior := newUnit(t, unit.Warrior, 1)

	in := combat.NewInitiative([]*unit.Unit{orc, warrior, nil})
	assert.Equal(t, 1, in.Len())
	assert.False(t, in.Contains(orc))
}

func TestInitiative_RotateMovesTailToHead(t *testing.T) {
	a, b, c := newUnit(t, unit.Warrior, 1), newUnit(t, unit.Mage, 1), newUnit(t, unit.Rogue, 1)
	in := combat.NewInitiative([]*unit.Unit{a, b, c})
	require.Equal(t, []*unit.Unit{a, b, c}, in.Units())

	in.Rotate()
	assert.Equal(t, []*unit.Unit{c, a, b}, in.Units())
	assert.Same(t, b, in.Current())
}

func TestInitiative_RotateIgnoresSpeedChanges(t *testing.T) {
	a, b := newUnit(t, unit.Warrior, 1), newUnit(t, unit.Rogue, 1)
	in := combat.NewInitiative([]*unit.Unit{a, b})
	a.Speed = 100

	in.Rotate()
	assert.Equal(t, []*unit.Unit{b, a}, in.Units())
}

func TestInitiative_PruneRemovesAllDead(t *testing.T) {
	units := []*unit.Unit{
		newUnit(t, unit.Skeleton, 1),
		newUnit(t, unit.Warrior, 1),
		newUnit(t, unit.Mage, 1),
		newUnit(t, unit.Orc, 1),
	}
	in := combat.NewInitiative(units)
	units[0].HP = 0
	units[3].HP = 0

	dead := in.Prune()
	assert.ElementsMatch(t, []*unit.Unit{units[0], units[3]}, dead)
	assert.Equal(t, []string{"Warrior", "Mage"}, names(in.Units()))
	assert.Len(t, in.Heroes(), 2)
	assert.Empty(t, in.Monsters())
}

func TestInitiative_CurrentEmpty(t *testing.T) {
	in := combat.NewInitiative(nil)
	assert.Nil(t, in.Current())
	in.Rotate()
	assert.Empty(t, in.Prune())
}

func TestProperty_InitiativeStableAscending(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(rt, "n")
		cat := unit.MustDefaultCatalog()
		units := make([]*unit.Unit, n)
		index := make(map[*unit.Unit]int, n)
		for i := range units {
			u := cat.MustNew(unit.Hero, 1)
			u.Speed = rapid.IntRange(0, 5).Draw(rt, "speed")
			units[i] = u
			index[u] = i
		}

		order := combat.NewInitiative(units).Units()
		require.Len(rt, order, n)
		for i := 1; i < len(order); i++ {
			prev, cur := order[i-1], order[i]
			if prev.Speed > cur.Speed {
				rt.Fatalf("speed decreases at %d: %d > %d", i, prev.Speed, cur.Speed)
			}
			if prev.Speed == cur.Speed && index[prev] > index[cur] {
				rt.Fatalf("tie at %d not kept in input order", i)
			}
		}
	})
}

func TestProperty_RotateFullCycleRestoresOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "n")
		cat := unit.MustDefaultCatalog()
		units := make([]*unit.Unit, n)
		for i := range units {
			units[i] = cat.MustNew(unit.Monster, rapid.IntRange(1, 5).Draw(rt, "level"))
		}
		in := combat.NewInitiative(units)
		before := in.Units()
		for range n {
			in.Rotate()
		}
		assert.Equal(rt, before, in.Units())
	})
}

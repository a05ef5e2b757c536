package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/rpgbattle/internal/game/combat"
	"github.com/cory-johannsen/rpgbattle/internal/game/dice"
	"github.com/cory-johannsen/rpgbattle/internal/game/unit"
)

func TestFirstPicker(t *testing.T) {
	a, b := newUnit(t, unit.Warrior, 1), newUnit(t, unit.Mage, 1)
	assert.Same(t, a, combat.FirstPicker.Pick([]*unit.Unit{a, b}))
}

func TestRandomPicker_SeededIsReproducible(t *testing.T) {
	cat := unit.MustDefaultCatalog()
	heroes := []*unit.Unit{cat.MustNew(unit.Warrior, 1), cat.MustNew(unit.Mage, 1), cat.MustNew(unit.Cleric, 1)}
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		p1 := combat.NewRandomPicker(dice.NewSeededSource(seed))
		p2 := combat.NewRandomPicker(dice.NewSeededSource(seed))
		for range 10 {
			got := p1.Pick(heroes)
			assert.Same(rt, got, p2.Pick(heroes))
			assert.Contains(rt, heroes, got)
		}
	})
}

package combat

import (
	"github.com/cory-johannsen/rpgbattle/internal/game/dice"
	"github.com/cory-johannsen/rpgbattle/internal/game/unit"
)

// TargetPicker chooses the hero a monster's offensive ability lands on.
type TargetPicker interface {
	// Pick returns one of candidates.
	//
	// Precondition: len(candidates) > 0 and every candidate is a living hero.
	Pick(candidates []*unit.Unit) *unit.Unit
}

// PickerFunc adapts a function to TargetPicker.
type PickerFunc func(candidates []*unit.Unit) *unit.Unit

// Pick calls f.
func (f PickerFunc) Pick(candidates []*unit.Unit) *unit.Unit { return f(candidates) }

// RandomPicker picks uniformly using a dice.Source.
type RandomPicker struct {
	src dice.Source
}

// NewRandomPicker returns a picker drawing from src.
//
// Precondition: src must be non-nil.
func NewRandomPicker(src dice.Source) *RandomPicker {
	return &RandomPicker{src: src}
}

// Pick returns a uniformly chosen candidate.
func (p *RandomPicker) Pick(candidates []*unit.Unit) *unit.Unit {
	return candidates[p.src.Intn(len(candidates))]
}

// FirstPicker always picks the first candidate; useful for deterministic tests and replays.
var FirstPicker = PickerFunc(func(candidates []*unit.Unit) *unit.Unit { return candidates[0] })

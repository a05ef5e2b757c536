// Package combat implements the turn-based encounter engine: ability
// resolution, scripted monster turns, the initiative scheduler, and the
// battle state machine.
package combat

import (
	"errors"
	"strings"
)

// Validation failures. None of them mutate any unit.
var (
	// ErrInvalidCommand means the acting unit has no ability by that name.
	ErrInvalidCommand = errors.New("invalid command")
	// ErrInvalidTarget means the target is dead, not in the battle, or
	// violates the ability's targeting rule.
	ErrInvalidTarget = errors.New("invalid target")
	// ErrInsufficientMP means the actor cannot pay the ability's mana cost.
	ErrInsufficientMP = errors.New("insufficient mp")
	// ErrBattleOver means the encounter already reached Victory or Defeat.
	ErrBattleOver = errors.New("battle is over")
	// ErrNotHeroTurn means a command was issued while a monster is at the front.
	ErrNotHeroTurn = errors.New("not a hero's turn")
)

// Outcome is the encounter status reported with every Result.
type Outcome int

const (
	Ongoing Outcome = iota
	Victory
	Defeat
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Result is the description of everything that happened during one Start or
// Execute call, tagged with the encounter outcome at the end of the call.
type Result struct {
	Text    string
	Outcome Outcome
}

// Concluded reports whether the encounter reached a terminal outcome.
func (r Result) Concluded() bool { return r.Outcome != Ongoing }

// Lines splits Text into its individual lines.
func (r Result) Lines() []string {
	if r.Text == "" {
		return nil
	}
	return strings.Split(r.Text, "\n")
}

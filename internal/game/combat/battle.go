package combat

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/cory-johannsen/rpgbattle/internal/game/dice"
	"github.com/cory-johannsen/rpgbattle/internal/game/unit"
	"github.com/cory-johannsen/rpgbattle/internal/observability"
	"github.com/cory-johannsen/rpgbattle/internal/telemetry"
)

// State is the battle state machine's current phase.
type State int

const (
	// StateAwaitingCommand means a hero is at the front and Execute may be called.
	StateAwaitingCommand State = iota
	// StateResolvingMonsterTurns means a monster is at the front; Start resolves it.
	StateResolvingMonsterTurns
	StateVictory
	StateDefeat
)

// String returns a human-readable state label.
func (s State) String() string {
	switch s {
	case StateAwaitingCommand:
		return "awaiting_command"
	case StateResolvingMonsterTurns:
		return "resolving_monster_turns"
	case StateVictory:
		return "victory"
	case StateDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Battle is one encounter. It exclusively owns the initiative order and is
// the only mutator of unit hp/mp/xp while the encounter runs.
//
// A Battle is driven synchronously by a single caller and is not safe for
// concurrent use.
type Battle struct {
	participants []*unit.Unit
	order        *Initiative
	picker       TargetPicker
	logger       *zap.Logger
	tracer       trace.Tracer
	outcome      Outcome
	turns        int
}

// NewBattle creates an encounter over participants.
//
// A nil picker picks uniformly with a crypto-backed source; a nil logger logs nothing.
//
// Postcondition: CurrentAttacker() is the fastest living participant, with
// ties going to the one listed last.
func NewBattle(participants []*unit.Unit, picker TargetPicker, logger *zap.Logger) *Battle {
	if picker == nil {
		picker = NewRandomPicker(dice.NewCryptoSource())
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	participants = slices.DeleteFunc(slices.Clone(participants), func(u *unit.Unit) bool { return u == nil })
	return &Battle{
		participants: participants,
		order:        NewInitiative(participants),
		picker:       picker,
		logger:       logger,
		tracer:       telemetry.Tracer("combat"),
	}
}

// Participants returns every unit the battle was created with, dead or alive.
func (b *Battle) Participants() []*unit.Unit { return slices.Clone(b.participants) }

// Order returns the live initiative order; the last element acts next.
func (b *Battle) Order() []*unit.Unit { return b.order.Units() }

// CurrentAttacker returns the unit at the front of the initiative order, or nil.
func (b *Battle) CurrentAttacker() *unit.Unit { return b.order.Current() }

// Outcome returns the encounter outcome so far.
func (b *Battle) Outcome() Outcome { return b.outcome }

// State returns the current phase of the state machine.
func (b *Battle) State() State {
	switch b.outcome {
	case Victory:
		return StateVictory
	case Defeat:
		return StateDefeat
	}
	if cur := b.order.Current(); cur != nil && cur.IsHero() {
		return StateAwaitingCommand
	}
	return StateResolvingMonsterTurns
}

// Start resolves monster turns until a hero is at the front or the
// encounter ends.
//
// Postcondition: On success, either State() == StateAwaitingCommand or the
// Result is concluded. Returns ErrBattleOver after a terminal outcome.
func (b *Battle) Start(ctx context.Context) (Result, error) {
	if b.outcome != Ongoing {
		return Result{}, ErrBattleOver
	}
	ctx, span := b.tracer.Start(ctx, "battle.start")
	defer span.End()

	var lines []string
	if err := b.advance(ctx, &lines); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return b.result(lines), err
	}
	return b.result(lines), nil
}

// Execute makes the hero at the front use command on target, then resolves
// every following monster turn until input is needed again.
//
// Postcondition: On a validation error (ErrInvalidCommand, ErrInvalidTarget,
// ErrInsufficientMP, ErrNotHeroTurn, ErrBattleOver) no state has changed.
// Otherwise the Result holds every line produced since the command.
func (b *Battle) Execute(ctx context.Context, command string, target *unit.Unit) (Result, error) {
	if b.outcome != Ongoing {
		return Result{}, ErrBattleOver
	}
	actor := b.order.Current()
	if actor == nil || !actor.IsHero() {
		return Result{}, ErrNotHeroTurn
	}
	if _, ok := Lookup(actor, command); !ok {
		return Result{}, fmt.Errorf("%w: %s cannot use %q", ErrInvalidCommand, actor.Name, command)
	}
	if target != nil && !b.order.Contains(target) {
		if slices.Contains(b.participants, target) {
			return Result{}, fmt.Errorf("%w: %s is dead", ErrInvalidTarget, target.Name)
		}
		return Result{}, fmt.Errorf("%w: %s is not in this battle", ErrInvalidTarget, target.Name)
	}

	ctx, span := b.tracer.Start(ctx, "battle.execute", trace.WithAttributes(
		attribute.String("actor", actor.Name),
		attribute.String("command", command),
	))
	defer span.End()

	var lines []string
	if err := b.turn(ctx, actor, command, target, &lines); err != nil {
		return Result{}, err
	}
	if b.endTurn(&lines) {
		return b.result(lines), nil
	}
	if err := b.advance(ctx, &lines); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return b.result(lines), err
	}
	return b.result(lines), nil
}

// advance runs monster turns until a hero is at the front or the encounter ends.
func (b *Battle) advance(ctx context.Context, lines *[]string) error {
	if b.checkOutcome(lines) {
		return nil
	}
	for {
		cur := b.order.Current()
		if cur.IsHero() {
			*lines = append(*lines, fmt.Sprintf("%s's turn!", cur.Name))
			return nil
		}
		if err := b.monsterTurn(ctx, cur, lines); err != nil {
			return err
		}
		if b.endTurn(lines) {
			return nil
		}
	}
}

// monsterTurn advances m's action cycle and uses the ability it lands on.
func (b *Battle) monsterTurn(ctx context.Context, m *unit.Unit, lines *[]string) error {
	name := m.NextAction()
	ab, ok := Lookup(m, name)
	if !ok {
		return fmt.Errorf("monster turn: %w: %s cannot use %q", ErrInvalidCommand, m.Name, name)
	}
	var target *unit.Unit
	if ab.Targeting != TargetSelf {
		heroes := b.livingHeroes()
		if len(heroes) == 0 {
			return fmt.Errorf("monster turn: %w: no living hero for %s", ErrInvalidTarget, m.Name)
		}
		target = b.picker.Pick(heroes)
	}
	if err := b.turn(ctx, m, name, target, lines); err != nil {
		return fmt.Errorf("monster turn: %w", err)
	}
	return nil
}

// turn resolves one ability use and records its description.
func (b *Battle) turn(ctx context.Context, actor *unit.Unit, name string, target *unit.Unit, lines *[]string) error {
	_, span := b.tracer.Start(ctx, "battle.turn")
	defer span.End()

	act, err := Use(actor, name, target)
	if err != nil {
		b.logger.Debug("ability rejected",
			zap.String("actor", actor.Name),
			zap.String("ability", name),
			zap.Error(err),
		)
		span.RecordError(err)
		return err
	}
	b.turns++
	span.SetAttributes(
		attribute.String("actor", actor.Name),
		attribute.String("ability", name),
		attribute.String("target", act.Target.Name),
		attribute.Int("amount", act.Amount),
		attribute.Int("turn", b.turns),
	)
	b.logger.Debug("ability used",
		zap.Int("turn", b.turns),
		zap.String("ability", name),
		zap.Int("amount", act.Amount),
		observability.Unit("actor", actor),
		observability.Unit("target", act.Target),
	)
	*lines = append(*lines, act.Lines()...)
	return nil
}

// endTurn rotates the order, processes deaths and rewards, and checks for a
// terminal outcome.
//
// Postcondition: Returns true iff the encounter just concluded.
func (b *Battle) endTurn(lines *[]string) bool {
	b.order.Rotate()
	for _, dead := range b.order.Prune() {
		*lines = append(*lines, fmt.Sprintf("%s dies!", dead.Name))
		b.logger.Info("unit died", observability.Unit("unit", dead))
		if dead.IsMonster() {
			b.reward(dead.XPValue(), lines)
		}
	}
	return b.checkOutcome(lines)
}

// reward grants the full xp value to every living hero.
func (b *Battle) reward(xp int, lines *[]string) {
	*lines = append(*lines, fmt.Sprintf("%d XP rewarded!", xp))
	for _, h := range b.livingHeroes() {
		from := h.Level
		gained := h.GainXP(xp)
		for lvl := from + 1; lvl <= from+gained; lvl++ {
			*lines = append(*lines, fmt.Sprintf("%s is now level %d!", h.Name, lvl))
		}
		if gained > 0 {
			b.logger.Info("hero leveled up",
				zap.String("hero", h.Name),
				zap.Int("from", from),
				zap.Int("to", h.Level),
			)
		}
	}
}

// checkOutcome raises Defeat when no hero remains and Victory when no monster remains.
func (b *Battle) checkOutcome(lines *[]string) bool {
	switch {
	case len(b.order.Heroes()) == 0:
		b.outcome = Defeat
		*lines = append(*lines, "Defeat!")
	case len(b.order.Monsters()) == 0:
		b.outcome = Victory
		*lines = append(*lines, "Victory!")
	default:
		return false
	}
	b.logger.Info("battle concluded",
		zap.Stringer("outcome", b.outcome),
		zap.Int("turns", b.turns),
	)
	return true
}

// livingHeroes returns living heroes still in the order, in participant order.
func (b *Battle) livingHeroes() []*unit.Unit {
	var out []*unit.Unit
	for _, u := range b.participants {
		if u.IsHero() && !u.IsDead() && b.order.Contains(u) {
			out = append(out, u)
		}
	}
	return out
}

func (b *Battle) result(lines []string) Result {
	return Result{Text: strings.Join(lines, "\n"), Outcome: b.outcome}
}

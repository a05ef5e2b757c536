// Package unit implements the hero and monster data model: stat derivation
// from archetype descriptors, hp/mp pools, leveling, and the death test.
package unit

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Unit is one combatant, hero or monster.
//
// Invariant: 0 <= HP <= MaxHP and 0 <= MP <= MaxMP. Monsters have MaxMP == 0
// and never accumulate XP.
type Unit struct {
	ID        string
	Name      string
	Archetype *Archetype

	Level        int
	Strength     int
	Constitution int
	Intelligence int
	Speed        int

	HP    int
	MaxHP int
	MP    int
	MaxMP int
	XP    int

	cycle *Cycle
}

// New creates a unit of archetype a at the given level.
//
// Heroes start from the generic base plus additive modifiers and reach level
// through level-1 sequential level-ups. Monsters derive every stat in closed
// form: floor(base*m) + floor((level-1)*m).
//
// Precondition: a must be non-nil and valid.
// Postcondition: HP == MaxHP, MP == MaxMP, XP == 0, Level == level.
func New(a *Archetype, level int) (*Unit, error) {
	if a == nil {
		return nil, fmt.Errorf("unit: archetype must not be nil")
	}
	if level < 1 {
		return nil, fmt.Errorf("unit %q: level must be >= 1, got %d", a.ID, level)
	}
	u := &Unit{
		ID:        uuid.NewString(),
		Name:      a.Name,
		Archetype: a,
		Level:     1,
	}
	if a.Kind == KindMonster {
		u.Level = level
		u.deriveMonster()
		u.cycle = NewCycle(a.ActionCycle)
		return u, nil
	}

	u.Strength = HeroBaseStat + a.Modifier(StatStrength)
	u.Constitution = HeroBaseStat + a.Modifier(StatConstitution)
	u.Intelligence = HeroBaseStat + a.Modifier(StatIntelligence)
	u.Speed = HeroBaseStat + a.Modifier(StatSpeed)
	u.MaxHP = a.baseHP() + u.Constitution/2
	u.MaxMP = a.baseMP() + u.Intelligence/2
	u.HP, u.MP = u.MaxHP, u.MaxMP
	for u.Level < level {
		// Synthetic grant so the rollover in LevelUp leaves XP at zero.
		u.XP += u.XPForNextLevel()
		u.LevelUp()
	}
	return u, nil
}

// deriveMonster recomputes stats and pools for the current level.
func (u *Unit) deriveMonster() {
	a := u.Archetype
	grow := func(stat string) int {
		m := a.Multiplier(stat)
		return int(math.Floor(MonsterBaseStat*m)) + int(math.Floor(float64(u.Level-1)*m))
	}
	u.Strength = grow(StatStrength)
	u.Constitution = grow(StatConstitution)
	u.Intelligence = grow(StatIntelligence)
	u.Speed = grow(StatSpeed)
	u.MaxHP = a.baseHP() + u.Constitution*(u.Level-1)/2
	u.HP = u.MaxHP
	u.MaxMP, u.MP = 0, 0
}

// IsHero reports whether the unit is a hero.
func (u *Unit) IsHero() bool { return u.Archetype.Kind == KindHero }

// IsMonster reports whether the unit is a monster.
func (u *Unit) IsMonster() bool { return u.Archetype.Kind == KindMonster }

// IsDead reports whether the unit is out of hit points.
func (u *Unit) IsDead() bool { return u.HP <= 0 }

// IsUnhurt reports whether the unit is at full health.
func (u *Unit) IsUnhurt() bool { return u.HP >= u.MaxHP }

// HasAbility reports whether name is in the unit's ability set.
func (u *Unit) HasAbility(name string) bool { return u.Archetype.HasAbility(name) }

// XPForNextLevel returns the XP total at which the next level is gained.
//
// Postcondition: Returns 10 * Level.
func (u *Unit) XPForNextLevel() int {
	return 10 * u.Level
}

// LevelUp advances the unit by one level and fully restores it.
//
// Heroes gain 1 plus any positive archetype modifier in every stat, then
// MaxHP += Constitution/2 and MaxMP += Intelligence/2 using the new values.
// XP is reduced by the pre-level-up threshold. Monsters re-derive in closed form.
//
// Postcondition: Level is incremented; HP == MaxHP; MP == MaxMP; no stat decreased.
func (u *Unit) LevelUp() {
	if u.IsMonster() {
		u.Level++
		u.deriveMonster()
		return
	}
	threshold := u.XPForNextLevel()
	u.Level++
	a := u.Archetype
	u.Strength += 1 + max(0, a.Modifier(StatStrength))
	u.Constitution += 1 + max(0, a.Modifier(StatConstitution))
	u.Intelligence += 1 + max(0, a.Modifier(StatIntelligence))
	u.Speed += 1 + max(0, a.Modifier(StatSpeed))
	u.MaxHP += u.Constitution / 2
	u.MaxMP += u.Intelligence / 2
	u.HP, u.MP = u.MaxHP, u.MaxMP
	u.XP -= threshold
}

// GainXP adds amount to XP and levels up while the threshold is met.
//
// Precondition: amount >= 0.
// Postcondition: XP < XPForNextLevel(); returns the number of levels gained.
// Monsters ignore XP and always return 0.
func (u *Unit) GainXP(amount int) int {
	if u.IsMonster() || amount <= 0 {
		return 0
	}
	u.XP += amount
	gained := 0
	for u.XP >= u.XPForNextLevel() {
		u.LevelUp()
		gained++
	}
	return gained
}

// TakeDamage reduces HP by amount, flooring at zero. Units with
// TraitDamageReduction absorb DamageReduction points first.
//
// Postcondition: 0 <= HP.
func (u *Unit) TakeDamage(amount int) {
	if u.Archetype.HasTrait(TraitDamageReduction) {
		amount -= DamageReduction
	}
	u.lose(amount)
}

// HealDamage increases HP by amount, capped at MaxHP. Units with
// TraitInvertedHealing lose amount HP instead.
func (u *Unit) HealDamage(amount int) {
	if u.Archetype.HasTrait(TraitInvertedHealing) {
		u.lose(amount)
		return
	}
	u.Restore(amount)
}

// Restore is the non-inverted heal used by a unit's own healing abilities.
//
// Postcondition: HP <= MaxHP.
func (u *Unit) Restore(amount int) {
	if amount <= 0 {
		return
	}
	u.HP = min(u.MaxHP, u.HP+amount)
}

// ReduceMaxHP permanently lowers MaxHP by amount and clamps HP to it.
//
// Postcondition: 0 <= MaxHP and HP <= MaxHP.
func (u *Unit) ReduceMaxHP(amount int) {
	if amount <= 0 {
		return
	}
	u.MaxHP = max(0, u.MaxHP-amount)
	u.HP = min(u.HP, u.MaxHP)
}

// SpendMP deducts amount from MP.
//
// Postcondition: Returns false and leaves MP unchanged if MP < amount.
func (u *Unit) SpendMP(amount int) bool {
	if u.MP < amount {
		return false
	}
	u.MP -= amount
	return true
}

// SetHP sets HP, clamped to [0, MaxHP].
func (u *Unit) SetHP(hp int) {
	u.HP = min(max(0, hp), u.MaxHP)
}

func (u *Unit) lose(amount int) {
	if amount <= 0 {
		return
	}
	u.HP = max(0, u.HP-amount)
}

// XPValue returns the XP awarded to each living hero when this monster dies.
//
// Postcondition: Returns floor(average of the four stats) + MaxHP mod 10.
func (u *Unit) XPValue() int {
	sum := u.Strength + u.Constitution + u.Intelligence + u.Speed
	return sum/4 + u.MaxHP%10
}

// NextAction advances the monster's action cycle and returns the ability to use.
//
// Postcondition: Returns "fight" for units without a declared cycle.
func (u *Unit) NextAction() string {
	if u.cycle == nil {
		u.cycle = NewCycle(nil)
	}
	return u.cycle.Next()
}

// Cycle exposes the unit's action cycle, or nil for heroes.
func (u *Unit) Cycle() *Cycle { return u.cycle }

// String returns the display name.
func (u *Unit) String() string { return u.Name }

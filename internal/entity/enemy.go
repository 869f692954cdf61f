package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/BoredWeaver/TrialRPG-sub000/internal/gamedata"
)

// Enemy is a battle-scoped hostile entity materialized from a template by
// the builder. Base holds the level-scaled derived stats before status
// modifiers; Recompute always rebuilds Derived from that snapshot, so
// status math stays level-correct no matter how often effects churn.
type Enemy struct {
	ID    string
	Name  string
	Glyph rune
	Color tcell.Color
	Level int
	Boss  bool

	Base    Derived
	Derived Derived

	HP, MP      int
	ElementMods map[string]float64
	Spells      []string
	Exp         int
	Drops       []gamedata.Drop

	Statuses  []Status
	Cooldowns map[string]int

	// DeathProcessed guarantees death side effects fire exactly once.
	DeathProcessed bool

	// Summon bookkeeping. JustSummoned enemies sit out the enemy turn
	// that created them.
	Summoned     bool
	SummonOwner  string
	JustSummoned bool
}

// GetName returns the enemy's display name.
func (e *Enemy) GetName() string { return e.Name }

// IsAlive returns true while the enemy has HP remaining.
func (e *Enemy) IsAlive() bool { return e.HP > 0 }

// GetHP returns current HP.
func (e *Enemy) GetHP() int { return e.HP }

// GetMP returns current MP.
func (e *Enemy) GetMP() int { return e.MP }

// SetHP floors and clamps the value into [0, MaxHP]. Non-finite input
// coerces to 0.
func (e *Enemy) SetHP(v float64) { e.HP = clampPool(v, e.Derived.MaxHP) }

// SetMP floors and clamps the value into [0, MaxMP].
func (e *Enemy) SetMP(v float64) { e.MP = clampPool(v, e.Derived.MaxMP) }

// AddStatus pushes a status (same-ID push replaces; TurnsLeft <= 0 is a
// no-op) and recomputes derived stats.
func (e *Enemy) AddStatus(s Status) {
	e.Statuses = addStatus(e.Statuses, s)
	e.Recompute()
}

// GetStatuses returns the active status list.
func (e *Enemy) GetStatuses() []Status { return e.Statuses }

// DecayStatuses ages every status by one turn, drops the expired, and
// always recomputes derived stats.
func (e *Enemy) DecayStatuses() {
	e.Statuses = decayStatuses(e.Statuses)
	e.Recompute()
}

// TickCooldowns advances the enemy's spell cooldowns by one turn.
func (e *Enemy) TickCooldowns() { tickCooldowns(e.Cooldowns) }

// SetCooldown starts a cooldown; turns <= 0 writes nothing.
func (e *Enemy) SetCooldown(id string, turns int) { setCooldown(e.Cooldowns, id, turns) }

// Cooldown returns turns remaining, 0 when ready.
func (e *Enemy) Cooldown(id string) int { return e.Cooldowns[id] }

// Stunned reports whether any active status is a stun.
func (e *Enemy) Stunned() bool { return hasStun(e.Statuses) }

// Recompute rebuilds Derived from the Base snapshot plus active status
// modifiers. Enemies have no attribute layer; every modifier is a flat
// delta on a derived field, and a modifier with no stat token lands on atk.
func (e *Enemy) Recompute() {
	d := e.Base
	for _, s := range e.Statuses {
		if !s.Modifier() {
			continue
		}
		switch s.Stat.Class {
		case gamedata.StatDerived:
			d = d.AddField(s.Stat.Field, s.Value)
		case gamedata.StatNone:
			d = d.AddField(gamedata.FieldAtk, s.Value)
		}
	}
	if d.MaxHP < 1 {
		d.MaxHP = 1
	}
	if d.MaxMP < 0 {
		d.MaxMP = 0
	}
	e.Derived = d

	e.HP = clampPool(float64(e.HP), d.MaxHP)
	e.MP = clampPool(float64(e.MP), d.MaxMP)
}

// Clone returns an independent copy of the enemy.
func (e *Enemy) Clone() *Enemy {
	next := *e
	next.Spells = append([]string(nil), e.Spells...)
	next.Drops = append([]gamedata.Drop(nil), e.Drops...)
	next.Statuses = append([]Status(nil), e.Statuses...)
	next.Cooldowns = cloneCooldowns(e.Cooldowns)
	if e.ElementMods != nil {
		next.ElementMods = make(map[string]float64, len(e.ElementMods))
		for element, mult := range e.ElementMods {
			next.ElementMods[element] = mult
		}
	}
	return &next
}

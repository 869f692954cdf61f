package entity

import (
	"math"

	"github.com/BoredWeaver/TrialRPG-sub000/internal/gamedata"
)

// Player is the battle entity for the hero. It carries its own derivation
// basis (base attributes and resolved equipment bonuses) so Recompute is
// self-contained whenever statuses change.
type Player struct {
	ID    string
	Name  string
	Level int

	// Attrs are the allocated base attributes; Final is Attrs plus
	// equipment and status modifiers, refreshed by Recompute. Crit rolls
	// read Final, never Attrs.
	Attrs Attributes
	Final Attributes

	Equip   []gamedata.StatBonus
	Derived Derived

	HP, MP    int
	Spells    []string
	Statuses  []Status
	Cooldowns map[string]int
}

// NewPlayer creates a player with empty battle state. The caller is
// expected to Recompute and fill the pools before use.
func NewPlayer(id, name string, level int, attrs Attributes, equip []gamedata.StatBonus) *Player {
	p := &Player{
		ID:        id,
		Name:      name,
		Level:     level,
		Attrs:     attrs,
		Equip:     equip,
		Cooldowns: make(map[string]int),
	}
	p.Recompute()
	p.HP = p.Derived.MaxHP
	p.MP = p.Derived.MaxMP
	return p
}

// GetName returns the player's display name.
func (p *Player) GetName() string { return p.Name }

// IsAlive returns true while the player has HP remaining.
func (p *Player) IsAlive() bool { return p.HP > 0 }

// GetHP returns current HP.
func (p *Player) GetHP() int { return p.HP }

// GetMP returns current MP.
func (p *Player) GetMP() int { return p.MP }

// SetHP floors and clamps the value into [0, MaxHP]. Non-finite input
// coerces to 0.
func (p *Player) SetHP(v float64) { p.HP = clampPool(v, p.Derived.MaxHP) }

// SetMP floors and clamps the value into [0, MaxMP]. Non-finite input
// coerces to 0.
func (p *Player) SetMP(v float64) { p.MP = clampPool(v, p.Derived.MaxMP) }

// AddStatus pushes a status (same-ID push replaces; TurnsLeft <= 0 is a
// no-op) and recomputes derived stats.
func (p *Player) AddStatus(s Status) {
	p.Statuses = addStatus(p.Statuses, s)
	p.Recompute()
}

// GetStatuses returns the active status list.
func (p *Player) GetStatuses() []Status { return p.Statuses }

// DecayStatuses ages every status by one turn, drops the expired, and
// always recomputes derived stats.
func (p *Player) DecayStatuses() {
	p.Statuses = decayStatuses(p.Statuses)
	p.Recompute()
}

// TickCooldowns advances the player's ability cooldowns by one turn.
func (p *Player) TickCooldowns() { tickCooldowns(p.Cooldowns) }

// SetCooldown starts a cooldown; turns <= 0 writes nothing.
func (p *Player) SetCooldown(id string, turns int) { setCooldown(p.Cooldowns, id, turns) }

// Cooldown returns turns remaining, 0 when ready.
func (p *Player) Cooldown(id string) int { return p.Cooldowns[id] }

// Stunned reports whether any active status is a stun.
func (p *Player) Stunned() bool { return hasStun(p.Statuses) }

// Recompute rebuilds the derived combat stats from base attributes,
// equipment, and active statuses, then re-clamps the pools to the new
// maxima. Attribute-class modifiers feed the derivation formula;
// derived-class modifiers land as flat deltas on top.
func (p *Player) Recompute() {
	attrs := p.Attrs
	for _, b := range p.Equip {
		if b.Ref.Class == gamedata.StatAttribute {
			attrs = attrs.AddTo(b.Ref.Attr, b.Value)
		}
	}
	for _, s := range p.Statuses {
		if s.Modifier() && s.Stat.Class == gamedata.StatAttribute {
			attrs = attrs.AddTo(s.Stat.Attr, s.Value)
		}
	}
	p.Final = attrs

	d := DeriveStats(attrs, p.Level)
	for _, b := range p.Equip {
		if b.Ref.Class == gamedata.StatDerived {
			d = d.AddField(b.Ref.Field, b.Value)
		}
	}
	for _, s := range p.Statuses {
		if !s.Modifier() {
			continue
		}
		switch s.Stat.Class {
		case gamedata.StatDerived:
			d = d.AddField(s.Stat.Field, s.Value)
		case gamedata.StatNone:
			// A modifier with no stat token still has to do something
			// visible; it lands on atk.
			d = d.AddField(gamedata.FieldAtk, s.Value)
		}
	}
	if d.MaxHP < 1 {
		d.MaxHP = 1
	}
	if d.MaxMP < 0 {
		d.MaxMP = 0
	}
	p.Derived = d

	p.HP = clampPool(float64(p.HP), d.MaxHP)
	p.MP = clampPool(float64(p.MP), d.MaxMP)
}

// Clone returns an independent copy of the player.
func (p *Player) Clone() *Player {
	next := *p
	next.Equip = append([]gamedata.StatBonus(nil), p.Equip...)
	next.Spells = append([]string(nil), p.Spells...)
	next.Statuses = append([]Status(nil), p.Statuses...)
	next.Cooldowns = cloneCooldowns(p.Cooldowns)
	return &next
}

// clampPool floors a pool value to an integer and clamps it into [0, max].
// NaN and infinities coerce to 0 so broken content can never poison a pool.
func clampPool(v float64, max int) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	n := int(math.Floor(v))
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}

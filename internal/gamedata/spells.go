package gamedata

// =============================================================================
// SPELL & EFFECT SYSTEM
// =============================================================================
//
// Spells are data-driven actions defined in spells.json and shared by the
// player and enemies. A spell has a kind (what it fundamentally does), a
// delivery shape (single target or AOE), and an optional list of effect
// entries applied on top of the base resolution.
//
// Kinds:
//   - damage: reduces target HP through the physical or magical pipeline
//   - heal:   restores caster HP
//   - mana:   restores caster MP (item-side kind, kept here for symmetry)
//
// Effect entries:
//   - dot:    flat damage at the owner's turn start for N turns
//   - stun:   owner skips its action while active
//   - buff:   positive stat delta (base attribute or derived field)
//   - debuff: negative stat delta
//   - summon: materializes new enemies mid-battle (never a spell kind itself)
//
// Stat tokens on buff/debuff entries are free-form in JSON and resolved into
// a closed StatRef exactly once when the catalog loads; see stats.go.
//
// Damage resolution (single target):
//   base  = max(1, round(attackStat × powerMult) - targetDefense)
//   final = max(1, floor(base × elementMult)) [× critMult on a crit roll]
// where attackStat/targetDefense are atk/def for physical and mAtk/mDef for
// magical. AOE spells run the whole pipeline independently per living enemy.
//
// Healing: max(1, round(casterMAtk × powerMult)).

// AbilityKind represents what a spell or item fundamentally does.
type AbilityKind string

const (
	KindDamage AbilityKind = "damage"
	KindHeal   AbilityKind = "heal"
	KindMana   AbilityKind = "mana"
	KindEquip  AbilityKind = "equip"
)

// TargetShape represents how a spell is delivered.
type TargetShape string

const (
	TargetSingle TargetShape = "single"
	TargetAOE    TargetShape = "aoe"
)

// DamageType represents which defense stat mitigates the damage.
type DamageType string

const (
	DamagePhysical DamageType = "physical"
	DamageMagical  DamageType = "magical"
)

// EffectKind represents an effect entry attached to a spell or item.
type EffectKind string

const (
	EffectDOT    EffectKind = "dot"
	EffectStun   EffectKind = "stun"
	EffectBuff   EffectKind = "buff"
	EffectDebuff EffectKind = "debuff"
	EffectSummon EffectKind = "summon"
)

// SummonDef describes a summon directive carried by an effect entry.
// Level precedence: explicit Level, else summoner level + LevelOffset.
type SummonDef struct {
	BaseID      string `json:"baseId"`
	Count       int    `json:"count"`
	Level       int    `json:"level,omitempty"`
	LevelOffset int    `json:"levelOffset,omitempty"`
}

// EffectDef is one effect entry on a spell or item.
type EffectDef struct {
	Kind   EffectKind `json:"type"`
	Stat   string     `json:"stat,omitempty"`
	Value  int        `json:"value,omitempty"`
	Turns  int        `json:"turns,omitempty"`
	Summon *SummonDef `json:"summon,omitempty"`

	// StatRef is the resolved form of Stat, filled at catalog load.
	StatRef StatRef `json:"-"`
}

// resolve normalizes an effect entry after JSON decoding.
func (e *EffectDef) resolve() {
	e.StatRef = ResolveStatToken(e.Stat)
	if e.Kind == EffectSummon && e.Summon != nil && e.Summon.Count <= 0 {
		e.Summon.Count = 1
	}
}

// SpellDef defines a spell loaded from spells.json.
type SpellDef struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Kind        AbilityKind `json:"kind"`
	Target      TargetShape `json:"target,omitempty"`
	Element     string      `json:"element,omitempty"`
	DamageType  DamageType  `json:"damageType,omitempty"`
	PowerMult   float64     `json:"powerMult"`
	MPCost      int         `json:"mpCost"`
	Cooldown    int         `json:"cooldown"`
	CanCrit     *bool       `json:"canCrit,omitempty"`
	Effects     []EffectDef `json:"effects,omitempty"`
}

// IsAOE returns true if the spell hits every living enemy.
func (s *SpellDef) IsAOE() bool {
	return s.Target == TargetAOE
}

// CritEligible returns whether the spell may critically hit.
// Spells are crit-eligible unless the content opts out.
func (s *SpellDef) CritEligible() bool {
	return s.CanCrit == nil || *s.CanCrit
}

// Physical returns true if the spell is mitigated by def rather than mDef.
func (s *SpellDef) Physical() bool {
	return s.DamageType == DamagePhysical
}

// SpellsFile represents the structure of spells.json.
type SpellsFile struct {
	Spells []SpellDef `json:"spells"`
}

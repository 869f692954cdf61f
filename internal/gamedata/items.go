package gamedata

// ItemDef defines an item loaded from items.json.
//
// Consumables (heal/mana/damage) are usable in battle and restore or deal a
// flat Power amount; they never scale with caster stats. Equipment (equip
// kind) is not usable in battle: it carries a Slot and a Bonus map whose
// tokens are resolved into StatRefs at catalog load and applied by the
// equipment resolver when the player is built.
type ItemDef struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Kind        AbilityKind    `json:"kind"`
	Power       int            `json:"power,omitempty"`
	Element     string         `json:"element,omitempty"`
	DamageType  DamageType     `json:"damageType,omitempty"`
	Cooldown    int            `json:"cooldown,omitempty"`
	CanCrit     *bool          `json:"canCrit,omitempty"`
	Effects     []EffectDef    `json:"effects,omitempty"`
	Slot        string         `json:"slot,omitempty"`
	Bonus       map[string]int `json:"bonus,omitempty"`

	// BonusRefs is the resolved form of Bonus, filled at catalog load.
	BonusRefs []StatBonus `json:"-"`
}

// StatBonus is a resolved equipment bonus.
type StatBonus struct {
	Ref   StatRef
	Value int
}

// Consumable returns true if the item can be used during battle.
func (i *ItemDef) Consumable() bool {
	switch i.Kind {
	case KindHeal, KindMana, KindDamage:
		return true
	}
	return false
}

// CritEligible returns whether a damage item may critically hit.
func (i *ItemDef) CritEligible() bool {
	return i.CanCrit == nil || *i.CanCrit
}

// Physical returns true if the item's damage is mitigated by def.
func (i *ItemDef) Physical() bool {
	return i.DamageType == DamagePhysical
}

// resolve normalizes an item after JSON decoding.
func (i *ItemDef) resolve() {
	for idx := range i.Effects {
		i.Effects[idx].resolve()
	}
	if len(i.Bonus) == 0 {
		return
	}
	i.BonusRefs = make([]StatBonus, 0, len(i.Bonus))
	for token, value := range i.Bonus {
		i.BonusRefs = append(i.BonusRefs, StatBonus{Ref: ResolveStatToken(token), Value: value})
	}
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

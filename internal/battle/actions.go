package battle

import (
	"context"
	"math"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BoredWeaver/TrialRPG-sub000/internal/combat"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/entity"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/gamedata"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/telemetry"
)

// PlayerAttack resolves a basic physical attack against one enemy. A
// negative target selects the first living enemy. On success the turn
// passes to the enemies.
func (eng *Engine) PlayerAttack(ctx context.Context, s *State, target int) (*State, error) {
	if err := guardPlayerAction(s); err != nil {
		return s, err
	}
	idx, err := resolveTarget(s, target)
	if err != nil {
		return s, err
	}

	_, span := telemetry.Tracer("battle").Start(ctx, "battle.player_action")
	span.SetAttributes(attribute.String("action", "attack"))
	defer span.End()

	t := eng.begin(s)
	t.s.TurnCount++

	p := t.s.Player
	e := t.enemy(idx)
	base := combat.CalcDamage(p.Derived.Atk, e.Derived.Def)
	final, _ := combat.ApplyElement(base, "physical", e.ElementMods)
	crit, mult := eng.rollPlayerCrit(p, true)
	if crit {
		final = critApply(final, mult)
	}
	e.SetHP(float64(e.HP - final))
	if crit {
		t.logf("Critical! %s hits %s for %d damage.", p.Name, e.Name, final)
	} else {
		t.logf("%s hits %s for %d damage.", p.Name, e.Name, final)
	}
	span.SetAttributes(attribute.Int("damage", final), attribute.Bool("crit", crit))

	eng.processDeaths(t)
	eng.prune(t)
	if !eng.checkEnd(t) {
		eng.endPlayerTurn(t)
	}
	return t.s, nil
}

// CanCast is the castability predicate the presentation layer checks
// before offering a spell: known, off cooldown, affordable, and for heal
// spells, actually useful.
func (eng *Engine) CanCast(s *State, spellID string) bool {
	return eng.castable(s, spellID) == nil
}

func (eng *Engine) castable(s *State, spellID string) error {
	spell := eng.cat.Spells.GetByID(spellID)
	if spell == nil || !s.Progress.KnowsSpell(spellID) {
		return ErrUnknownSpell
	}
	if s.Player.Cooldown(spellID) > 0 {
		return ErrSpellOnCooldown
	}
	if s.Player.MP < spell.MPCost {
		return ErrInsufficientMP
	}
	if spell.Kind == gamedata.KindHeal && s.Player.HP >= s.Player.Derived.MaxHP {
		return ErrFullHealth
	}
	return nil
}

// PlayerCast casts one of the player's known spells. Damage spells hit
// one enemy or, for AOE, every living enemy with an independent crit and
// element roll per target; heal spells restore the caster. Declared
// effects land after the base resolution: statuses on the affected
// entities, summon directives on the battle.
func (eng *Engine) PlayerCast(ctx context.Context, s *State, spellID string, target int) (*State, error) {
	if err := guardPlayerAction(s); err != nil {
		return s, err
	}
	if err := eng.castable(s, spellID); err != nil {
		return s, err
	}
	spell := eng.cat.Spells.GetByID(spellID)

	var targets []int
	if spell.Kind == gamedata.KindDamage {
		if spell.IsAOE() {
			for i, e := range s.Enemies {
				if e.IsAlive() {
					targets = append(targets, i)
				}
			}
			if len(targets) == 0 {
				return s, ErrInvalidTarget
			}
		} else {
			idx, err := resolveTarget(s, target)
			if err != nil {
				return s, err
			}
			targets = []int{idx}
		}
	}

	_, span := telemetry.Tracer("battle").Start(ctx, "battle.player_action")
	span.SetAttributes(
		attribute.String("action", "cast"),
		attribute.String("spell", spellID),
		attribute.Int("targets", len(targets)),
	)
	defer span.End()

	t := eng.begin(s)
	t.s.TurnCount++

	p := t.player()
	p.SetMP(float64(p.MP - spell.MPCost))
	p.SetCooldown(spellID, spell.Cooldown)

	switch spell.Kind {
	case gamedata.KindDamage:
		for _, idx := range targets {
			eng.spellHit(t, spell, idx)
		}
	case gamedata.KindHeal:
		amount := powerOf(p.Derived.MAtk, spell.PowerMult)
		p.SetHP(float64(p.HP + amount))
		t.logf("%s casts %s and recovers %d HP.", p.Name, spell.Name, amount)
	default:
		// Mana-kind spells do not exist in content; treat as a restore
		// for symmetry with items.
		amount := powerOf(p.Derived.MAtk, spell.PowerMult)
		p.SetMP(float64(p.MP + amount))
		t.logf("%s casts %s and recovers %d MP.", p.Name, spell.Name, amount)
	}

	eng.applyEffects(t, spell.Effects, spell.ID, targets, "player", p.Level)

	eng.processDeaths(t)
	eng.prune(t)
	if !eng.checkEnd(t) {
		eng.endPlayerTurn(t)
	}
	return t.s, nil
}

// spellHit runs the full damage pipeline for one spell against one enemy.
func (eng *Engine) spellHit(t *txn, spell *gamedata.SpellDef, idx int) {
	p := t.s.Player
	e := t.enemy(idx)

	var base int
	if spell.Physical() {
		base = powerOf(p.Derived.Atk, spell.PowerMult) - e.Derived.Def
	} else {
		base = powerOf(p.Derived.MAtk, spell.PowerMult) - e.Derived.MDef
	}
	if base < 1 {
		base = 1
	}
	final, _ := combat.ApplyElement(base, spell.Element, e.ElementMods)
	crit, mult := eng.rollPlayerCrit(p, spell.CritEligible())
	if crit {
		final = critApply(final, mult)
	}
	e.SetHP(float64(e.HP - final))
	if crit {
		t.logf("Critical! %s's %s sears %s for %d damage.", p.Name, spell.Name, e.Name, final)
	} else {
		t.logf("%s's %s hits %s for %d damage.", p.Name, spell.Name, e.Name, final)
	}
}

// CanUseItem is the usability predicate for consumables.
func (eng *Engine) CanUseItem(s *State, itemID string) bool {
	return eng.usable(s, itemID) == nil
}

func (eng *Engine) usable(s *State, itemID string) error {
	item := eng.cat.Items.GetByID(itemID)
	if item == nil || !item.Consumable() {
		return ErrUnknownItem
	}
	if s.Progress.ItemCount(itemID) <= 0 {
		return ErrNoUses
	}
	if s.Player.Cooldown(itemID) > 0 {
		return ErrItemOnCooldown
	}
	if item.Kind == gamedata.KindHeal && s.Player.HP >= s.Player.Derived.MaxHP {
		return ErrFullHealth
	}
	return nil
}

// PlayerUseItem consumes one of an inventory item: heal and mana items
// restore the player by their flat power, damage items hit one enemy.
// The inventory count drops by one whether or not the item carries a
// cooldown.
func (eng *Engine) PlayerUseItem(ctx context.Context, s *State, itemID string, target int) (*State, error) {
	if err := guardPlayerAction(s); err != nil {
		return s, err
	}
	if err := eng.usable(s, itemID); err != nil {
		return s, err
	}
	item := eng.cat.Items.GetByID(itemID)

	var targets []int
	if item.Kind == gamedata.KindDamage {
		idx, err := resolveTarget(s, target)
		if err != nil {
			return s, err
		}
		targets = []int{idx}
	}

	_, span := telemetry.Tracer("battle").Start(ctx, "battle.player_action")
	span.SetAttributes(
		attribute.String("action", "item"),
		attribute.String("item", itemID),
	)
	defer span.End()

	t := eng.begin(s)
	t.s.TurnCount++

	t.progress().ConsumeItem(itemID)
	p := t.player()
	p.SetCooldown(itemID, item.Cooldown)

	switch item.Kind {
	case gamedata.KindHeal:
		p.SetHP(float64(p.HP + item.Power))
		t.logf("%s uses %s and recovers %d HP.", p.Name, item.Name, item.Power)
	case gamedata.KindMana:
		p.SetMP(float64(p.MP + item.Power))
		t.logf("%s uses %s and recovers %d MP.", p.Name, item.Name, item.Power)
	case gamedata.KindDamage:
		idx := targets[0]
		e := t.enemy(idx)
		final, _ := combat.ApplyElement(item.Power, item.Element, e.ElementMods)
		crit, mult := eng.rollPlayerCrit(p, item.CritEligible())
		if crit {
			final = critApply(final, mult)
		}
		e.SetHP(float64(e.HP - final))
		t.logf("%s uses %s on %s for %d damage.", p.Name, item.Name, e.Name, final)
	}

	eng.applyEffects(t, item.Effects, item.ID, targets, "player", p.Level)

	eng.processDeaths(t)
	eng.prune(t)
	if !eng.checkEnd(t) {
		eng.endPlayerTurn(t)
	}
	return t.s, nil
}

// AllocateStat spends one unspent point on STR, DEX, MAG, or CON and
// rederives combat stats. Pools re-clamp to the new maxima, they are
// never restored. Allocation is a menu action: it does not end the turn.
func (eng *Engine) AllocateStat(ctx context.Context, s *State, attr gamedata.Attr) (*State, error) {
	if err := guardPlayerAction(s); err != nil {
		return s, err
	}
	switch attr {
	case gamedata.AttrSTR, gamedata.AttrDEX, gamedata.AttrMAG, gamedata.AttrCON:
	default:
		return s, ErrUnknownStat
	}
	if s.Progress.UnspentPoints <= 0 {
		return s, ErrNoUnspentPoints
	}

	t := eng.begin(s)
	rec := t.progress()
	rec.UnspentPoints--
	rec.Attrs = rec.Attrs.AddTo(attr, 1)
	p := t.player()
	p.Attrs = rec.Attrs
	p.Recompute()
	t.logf("%s grows: %s +1.", p.Name, attr)
	return t.s, nil
}

// rollPlayerCrit rolls a crit with the player's final DEX and crit stats.
func (eng *Engine) rollPlayerCrit(p *entity.Player, eligible bool) (bool, float64) {
	if !eligible {
		return false, 1
	}
	chance := combat.CritChance(p.Final.DEX, p.Final.CRIT)
	if !combat.RollCrit(eng.rng, chance) {
		return false, 1
	}
	return true, combat.CritMult(p.Final.CRITDMG)
}

// critApply multiplies damage by a crit multiplier, floored, min 1.
func critApply(damage int, mult float64) int {
	out := int(math.Floor(float64(damage) * mult))
	if out < 1 {
		return 1
	}
	return out
}

// powerOf rounds stat × mult, min 1.
func powerOf(stat int, mult float64) int {
	out := int(math.Round(float64(stat) * mult))
	if out < 1 {
		return 1
	}
	return out
}

package battle

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BoredWeaver/TrialRPG-sub000/internal/combat"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/entity"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/gamedata"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/telemetry"
)

// EnemyAct runs the full enemy turn: every living enemy in roster order
// gets its start-of-turn pass (DOT ticks, stun check) and, unless skipped
// or freshly summoned, one AI action; the loop stops early if the player
// falls. Afterwards deaths are processed, the roster pruned, and the
// player's own start-of-turn pass decides whether the turn actually
// returns to the player or a stun hands it straight back to the enemies.
func (eng *Engine) EnemyAct(ctx context.Context, s *State) (*State, error) {
	if s.Over {
		return s, ErrBattleOver
	}
	if s.Turn != TurnEnemy {
		return s, ErrNotEnemyTurn
	}

	_, span := telemetry.Tracer("battle").Start(ctx, "battle.enemy_turn")
	defer span.End()

	t := eng.begin(s)
	t.s.TurnCount++

	acted := 0
	for i := 0; i < len(t.s.Enemies); i++ {
		if t.s.Enemies[i].HP <= 0 || t.s.Enemies[i].JustSummoned {
			continue
		}
		e := t.enemy(i)
		report := combat.StartOfTurn(e)
		for _, line := range report.Lines {
			t.logf("%s", line)
		}
		if report.Died {
			// Pending death; processed after the loop.
			continue
		}
		if report.Skipped {
			t.logf("%s is stunned and cannot act!", e.Name)
			e.DecayStatuses()
			continue
		}
		eng.enemyAction(t, i)
		e.DecayStatuses()
		acted++
		if t.s.Player.HP <= 0 {
			break
		}
	}
	span.SetAttributes(
		attribute.Int("enemies_acted", acted),
		attribute.Int("player_hp_after", t.s.Player.HP),
	)

	// Summons appended this turn become eligible next enemy turn.
	for i := range t.s.Enemies {
		if t.s.Enemies[i].JustSummoned {
			t.enemy(i).JustSummoned = false
		}
	}

	eng.processDeaths(t)
	eng.prune(t)
	if eng.checkEnd(t) {
		return t.s, nil
	}

	eng.playerTurnStart(t)
	return t.s, nil
}

// enemyAction selects and executes one action for the enemy at index i:
// the first spell in declared order whose cooldown is 0, else a basic
// physical attack. Enemies carry no MP gate; spell order is the whole of
// the AI policy. The target is always the player.
func (eng *Engine) enemyAction(t *txn, i int) {
	e := t.enemy(i)

	var spell *gamedata.SpellDef
	for _, id := range e.Spells {
		if e.Cooldown(id) == 0 {
			if def := eng.cat.Spells.GetByID(id); def != nil {
				spell = def
				break
			}
		}
	}

	if spell == nil {
		eng.enemyBasicAttack(t, e)
		return
	}

	switch spell.Kind {
	case gamedata.KindHeal:
		amount := powerOf(e.Derived.MAtk, spell.PowerMult)
		e.SetHP(float64(e.HP + amount))
		t.logf("%s casts %s and recovers %d HP.", e.Name, spell.Name, amount)
	default:
		p := t.player()
		var base int
		if spell.Physical() {
			base = powerOf(e.Derived.Atk, spell.PowerMult) - p.Derived.Def
		} else {
			base = powerOf(e.Derived.MAtk, spell.PowerMult) - p.Derived.MDef
		}
		if base < 1 {
			base = 1
		}
		// The player carries no element modifier table; the multiplier
		// step is a pass-through kept for symmetry.
		final, _ := combat.ApplyElement(base, spell.Element, nil)
		if spell.CritEligible() && combat.RollCrit(eng.rng, combat.CritChance(0, 0)) {
			final = critApply(final, combat.CritMult(0))
			t.logf("Critical! %s's %s hits %s for %d damage.", e.Name, spell.Name, p.Name, final)
		} else {
			t.logf("%s's %s hits %s for %d damage.", e.Name, spell.Name, p.Name, final)
		}
		p.SetHP(float64(p.HP - final))
		eng.applyEffects(t, spell.Effects, spell.ID, nil, e.ID, e.Level)
	}

	e.SetCooldown(spell.ID, spell.Cooldown)
}

// enemyBasicAttack is the fallback physical swing.
func (eng *Engine) enemyBasicAttack(t *txn, e *entity.Enemy) {
	p := t.player()
	base := combat.CalcDamage(e.Derived.Atk, p.Derived.Def)
	final, _ := combat.ApplyElement(base, "physical", nil)
	if combat.RollCrit(eng.rng, combat.CritChance(0, 0)) {
		final = critApply(final, combat.CritMult(0))
		t.logf("Critical! %s strikes %s for %d damage.", e.Name, p.Name, final)
	} else {
		t.logf("%s strikes %s for %d damage.", e.Name, p.Name, final)
	}
	p.SetHP(float64(p.HP - final))
}

package battle

import (
	"github.com/BoredWeaver/TrialRPG-sub000/internal/entity"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/gamedata"
)

// applyEffects lands a spell or item's declared effect entries after the
// base resolution. Status entries go onto the enemy targets when there
// are any, otherwise onto the player (self-delivery and enemy casts both
// take that path). Summon directives fire once per entry, owned by the
// triggering entity.
func (eng *Engine) applyEffects(t *txn, effects []gamedata.EffectDef, source string, enemyTargets []int, ownerID string, ownerLevel int) {
	for _, ef := range effects {
		if ef.Kind == gamedata.EffectSummon {
			if ef.Summon != nil {
				eng.summon(t, ownerID, ownerLevel, ef.Summon)
			}
			continue
		}
		status := statusFromEffect(ef, source)
		if len(enemyTargets) == 0 {
			t.player().AddStatus(status)
			if status.TurnsLeft > 0 {
				t.logf("%s is affected by %s.", t.s.Player.Name, source)
			}
			continue
		}
		for _, idx := range enemyTargets {
			e := t.enemy(idx)
			if e.HP <= 0 {
				continue
			}
			e.AddStatus(status)
			if status.TurnsLeft > 0 {
				t.logf("%s is affected by %s.", e.Name, source)
			}
		}
	}
}

// statusFromEffect converts an effect entry into a runtime status. The
// id folds in the effect kind so one ability can stack a debuff and a
// DOT without the refresh rule collapsing them.
func statusFromEffect(ef gamedata.EffectDef, source string) entity.Status {
	return entity.Status{
		ID:        source + ":" + string(ef.Kind),
		Kind:      ef.Kind,
		Stat:      ef.StatRef,
		Value:     ef.Value,
		TurnsLeft: ef.Turns,
		Source:    source,
	}
}

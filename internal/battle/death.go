package battle

import (
	"github.com/BoredWeaver/TrialRPG-sub000/internal/entity"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/progress"
)

// processDeaths runs death side effects for every enemy at 0 HP whose
// death has not been processed yet: the log line, the EXP grant (which
// may level the player up), and drops into the inventory. DeathProcessed
// makes a second pass over the same corpse a no-op.
func (eng *Engine) processDeaths(t *txn) {
	for i := range t.s.Enemies {
		if t.s.Enemies[i].HP > 0 || t.s.Enemies[i].DeathProcessed {
			continue
		}
		e := t.enemy(i)
		e.DeathProcessed = true
		t.logf("%s falls!", e.Name)
		eng.grantExp(t, e.Exp)
		eng.grantDrops(t, e)
	}
}

// prune removes every enemy at 0 HP from the roster. Callers must run
// processDeaths first; pruning is pure removal.
func (eng *Engine) prune(t *txn) {
	living := t.s.Enemies[:0]
	for _, e := range t.s.Enemies {
		if e.HP > 0 {
			living = append(living, e)
		}
	}
	t.s.Enemies = living
}

// grantExp feeds EXP into the progression and applies any level-ups to
// the battle entity: full rederive with pools reset to max on a gained
// level, plain re-clamp otherwise.
func (eng *Engine) grantExp(t *txn, exp int) {
	if exp <= 0 {
		return
	}
	rec := t.progress()
	pendingBefore := len(rec.PendingSpells)
	levels := progress.GrantExp(rec, eng.cat.Balance, exp)
	t.s.ExpEarned += exp
	t.logf("Gained %d EXP.", exp)

	if levels == 0 {
		return
	}
	p := t.player()
	p.Level = rec.Level
	p.Attrs = rec.Attrs
	p.Recompute()
	p.HP = p.Derived.MaxHP
	p.MP = p.Derived.MaxMP
	t.logf("%s reaches level %d!", p.Name, p.Level)
	eng.notify.Toast(
		p.Name+" reached level "+itoa(p.Level)+"!", SeveritySuccess)
	if len(rec.PendingSpells) > pendingBefore {
		eng.notify.Toast("A new spell choice awaits.", SeverityInfo)
	}
}

// grantDrops moves an enemy's drop table into the inventory.
func (eng *Engine) grantDrops(t *txn, e *entity.Enemy) {
	if len(e.Drops) == 0 {
		return
	}
	rec := t.progress()
	for _, drop := range e.Drops {
		qty := drop.Qty
		if qty <= 0 {
			qty = 1
		}
		rec.AddItem(drop.ItemID, qty)
		name := drop.ItemID
		if def := eng.cat.Items.GetByID(drop.ItemID); def != nil {
			name = def.Name
		}
		t.logf("Looted %dx %s.", qty, name)
		eng.notify.Collect(drop.ItemID, qty)
	}
}

// itoa is a small int-to-string helper.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	if i < 0 {
		return "-" + itoa(-i)
	}
	digits := ""
	for i > 0 {
		digits = string(rune('0'+i%10)) + digits
		i /= 10
	}
	return digits
}

package battle

import (
	"strings"

	"github.com/google/uuid"

	"github.com/BoredWeaver/TrialRPG-sub000/internal/entity"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/gamedata"
)

// summon materializes a summon directive: N enemies built at the
// directive's level (explicit, else summoner level plus offset) under the
// battle's scaling, appended to the roster. Summons are tagged with a
// collision-free runtime id and sit out the enemy turn that created them.
func (eng *Engine) summon(t *txn, ownerID string, ownerLevel int, def *gamedata.SummonDef) {
	level := def.Level
	if level <= 0 {
		if ownerLevel < 1 {
			ownerLevel = 1
		}
		level = ownerLevel + def.LevelOffset
	}
	if level < 1 {
		level = 1
	}

	count := def.Count
	if count <= 0 {
		count = 1
	}

	var names []string
	for i := 0; i < count; i++ {
		e, err := entity.BuildEnemy(eng.cat,
			entity.EnemyRef{ID: def.BaseID, Level: level}, t.s.Scaling)
		if err != nil {
			// Unknown base ids are rejected at catalog load; nothing
			// sensible can be spawned here.
			continue
		}
		e.ID = def.BaseID + "-" + uuid.NewString()[:8]
		e.Summoned = true
		e.SummonOwner = ownerID
		e.JustSummoned = true
		t.s.Enemies = append(t.s.Enemies, e)
		t.adopt(e)
		names = append(names, e.Name)
	}
	if len(names) == 0 {
		return
	}
	t.logf("%d summoned: %s!", len(names), strings.Join(names, ", "))
	eng.notify.Toast(itoa(len(names))+" enemies join the battle!", SeverityWarning)
}

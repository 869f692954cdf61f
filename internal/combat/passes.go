package combat

import (
	"fmt"

	"github.com/BoredWeaver/TrialRPG-sub000/internal/entity"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/gamedata"
)

// Combatant is what the turn passes need from a fighter. Both the player
// and enemies implement it on top of their own stat models.
type Combatant interface {
	GetName() string
	GetHP() int
	SetHP(v float64)
	GetStatuses() []entity.Status
	DecayStatuses()
	TickCooldowns()
	Stunned() bool
}

var (
	_ Combatant = (*entity.Player)(nil)
	_ Combatant = (*entity.Enemy)(nil)
)

// TurnStart reports what the start-of-turn pass did to a combatant.
type TurnStart struct {
	// Died: a damage-over-time effect dropped the owner to 0 HP. The
	// stun check is skipped; the dead do not get stunned.
	Died bool
	// Skipped: an active stun forbids the owner from acting this turn.
	// The caller must still decay the owner's statuses.
	Skipped bool
	// Lines are human-readable log lines for each DOT application.
	Lines []string
}

// StartOfTurn runs a combatant's turn-start pass: cooldowns tick once,
// every active DOT lands as flat damage, then the stun check runs.
func StartOfTurn(c Combatant) TurnStart {
	var report TurnStart

	c.TickCooldowns()

	for _, s := range c.GetStatuses() {
		if s.Kind != gamedata.EffectDOT || s.Value <= 0 {
			continue
		}
		c.SetHP(float64(c.GetHP() - s.Value))
		report.Lines = append(report.Lines,
			fmt.Sprintf("%s suffers %d damage (%s)", c.GetName(), s.Value, s.ID))
		if c.GetHP() <= 0 {
			report.Died = true
			return report
		}
	}

	report.Skipped = c.Stunned()
	return report
}

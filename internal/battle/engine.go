package battle

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BoredWeaver/TrialRPG-sub000/internal/combat"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/entity"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/gamedata"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/progress"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/telemetry"
)

// Engine resolves battles against a read-only content catalog. It holds
// no battle state itself; every entry point takes the current state and
// returns the next one, so a single engine serves any number of
// sequential battles.
type Engine struct {
	cat    *gamedata.Catalog
	rng    *rand.Rand
	notify Notifier
}

// New creates an engine. A nil rng gets a time-seeded one; a nil
// notifier discards events.
func New(cat *gamedata.Catalog, rng *rand.Rand, notify Notifier) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if notify == nil {
		notify = NopNotifier{}
	}
	return &Engine{cat: cat, rng: rng, notify: notify}
}

// StartOptions tune a battle at creation.
type StartOptions struct {
	// Scaling is threaded into every enemy built for this battle,
	// including mid-battle summons.
	Scaling entity.Scaling
}

// Start builds the player from the progression record (nil falls back to
// the starting loadout), builds the enemies, and returns the opening
// state with the player's start-of-turn pass already run. A stunned
// player hands the opening turn straight to the enemies.
func (eng *Engine) Start(ctx context.Context, rec *progress.Record, refs []entity.EnemyRef, opts StartOptions) (*State, error) {
	tracer := telemetry.Tracer("battle")
	_, span := tracer.Start(ctx, "battle.start")
	defer span.End()

	if rec == nil {
		rec = progress.DefaultRecord(eng.cat.Balance)
	} else {
		rec = rec.Clone()
	}

	player := progress.BuildPlayer(eng.cat, rec)
	enemies, err := entity.BuildEnemies(eng.cat, refs, opts.Scaling)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownEnemy, err)
	}

	span.SetAttributes(
		attribute.Int("enemy_count", len(enemies)),
		attribute.Int("player_level", player.Level),
		attribute.Int("dungeon_level", opts.Scaling.DungeonLevel),
	)

	s := &State{
		Player:   player,
		Enemies:  enemies,
		Turn:     TurnPlayer,
		Progress: rec,
		Scaling:  opts.Scaling,
	}

	t := eng.begin(s)
	for _, e := range enemies {
		t.adopt(e)
	}
	t.adoptPlayer()

	names := make([]string, len(enemies))
	for i, e := range enemies {
		names[i] = e.Name
	}
	t.logf("Battle begins! You face %s.", strings.Join(names, ", "))

	eng.playerTurnStart(t)
	return t.s, nil
}

// playerTurnStart runs the player's start-of-turn pass and routes the
// turn accordingly: a DOT death ends the battle, a stun hands the turn to
// the enemies with LastStart.Skipped set.
func (eng *Engine) playerTurnStart(t *txn) {
	p := t.player()
	report := combat.StartOfTurn(p)
	for _, line := range report.Lines {
		t.logf("%s", line)
	}
	t.s.LastStart = StartReport{}
	if report.Died {
		eng.checkEnd(t)
		return
	}
	if report.Skipped {
		t.logf("%s is stunned and cannot act!", p.Name)
		t.s.LastStart = StartReport{Skipped: true}
		p.DecayStatuses()
		t.s.Turn = TurnEnemy
		return
	}
	t.s.Turn = TurnPlayer
}

// guardPlayerAction rejects actions outside the player's turn.
func guardPlayerAction(s *State) error {
	if s.Over {
		return ErrBattleOver
	}
	if s.Turn != TurnPlayer {
		return ErrNotPlayerTurn
	}
	return nil
}

// resolveTarget maps a requested index onto a living enemy. A negative
// index selects the first living enemy.
func resolveTarget(s *State, target int) (int, error) {
	if target < 0 {
		if i := s.FirstLivingEnemy(); i >= 0 {
			return i, nil
		}
		return -1, ErrInvalidTarget
	}
	if target >= len(s.Enemies) || !s.Enemies[target].IsAlive() {
		return -1, ErrInvalidTarget
	}
	return target, nil
}

// checkEnd evaluates the end conditions and finalizes the state when the
// battle is decided. Enemies-cleared wins even if the player dropped to
// 0 HP in the same resolution.
func (eng *Engine) checkEnd(t *txn) bool {
	if t.s.Over {
		return true
	}
	switch {
	case t.s.LivingEnemies() == 0:
		t.s.Over = true
		t.s.Outcome = OutcomeWin
		t.logf("Victory! %s is triumphant.", t.s.Player.Name)
	case t.s.Player.HP <= 0:
		t.s.Over = true
		t.s.Outcome = OutcomeLoss
		t.logf("%s has fallen...", t.s.Player.Name)
	default:
		return false
	}
	eng.notify.BattleEnd(Summary{
		Outcome:   t.s.Outcome,
		TurnCount: t.s.TurnCount,
		ExpEarned: t.s.ExpEarned,
	})
	return true
}

// endPlayerTurn runs the player's end-of-turn decay and hands the round
// to the enemies.
func (eng *Engine) endPlayerTurn(t *txn) {
	t.player().DecayStatuses()
	t.s.LastStart = StartReport{}
	t.s.Turn = TurnEnemy
}

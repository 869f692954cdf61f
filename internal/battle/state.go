// Package battle is the combat resolution engine: it owns the battle
// state machine and resolves player actions, enemy turns, status effects,
// summons, deaths, and win/loss detection into new, fully derived states.
//
// States are immutable from the caller's perspective: every entry point
// returns a new *State and leaves its input untouched. Internally the
// engine copies on write; the top-level state and its slices are cloned
// per action, entities only when they are actually mutated.
package battle

import (
	"fmt"

	"github.com/BoredWeaver/TrialRPG-sub000/internal/entity"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/progress"
)

// maxLogLines bounds the battle log to the most recent lines.
const maxLogLines = 50

// Turn identifies whose side of the round is active.
type Turn int

const (
	TurnPlayer Turn = iota
	TurnEnemy
)

// String returns a human-readable turn name.
func (t Turn) String() string {
	switch t {
	case TurnPlayer:
		return "player"
	case TurnEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of a battle.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	default:
		return "unknown"
	}
}

// StartReport records what happened during the player's last
// start-of-turn pass; the presentation layer reads Skipped to explain
// why the player could not act.
type StartReport struct {
	Skipped bool
}

// State is one immutable snapshot of a battle. Enemy order is insertion
// order and doubles as turn order.
type State struct {
	Player  *entity.Player
	Enemies []*entity.Enemy

	Turn    Turn
	Over    bool
	Outcome Outcome

	Log []string

	// Progress is the battle's working copy of the player's
	// progression; the caller persists it after the battle.
	Progress *progress.Record

	Scaling   entity.Scaling
	TurnCount int
	ExpEarned int
	LastStart StartReport
}

// LivingEnemies returns the count of enemies still standing.
func (s *State) LivingEnemies() int {
	count := 0
	for _, e := range s.Enemies {
		if e.IsAlive() {
			count++
		}
	}
	return count
}

// FirstLivingEnemy returns the index of the first living enemy, or -1.
func (s *State) FirstLivingEnemy() int {
	for i, e := range s.Enemies {
		if e.IsAlive() {
			return i
		}
	}
	return -1
}

// txn is one copy-on-write action in flight: the top-level state and its
// slices are already fresh, entities are cloned the first time they are
// mutated. owned tracks pointers this action may freely mutate.
type txn struct {
	eng           *Engine
	s             *State
	playerOwned   bool
	progressOwned bool
	owned         map[*entity.Enemy]struct{}
}

func (eng *Engine) begin(s *State) *txn {
	next := *s
	next.Enemies = append([]*entity.Enemy(nil), s.Enemies...)
	next.Log = append([]string(nil), s.Log...)
	return &txn{eng: eng, s: &next, owned: make(map[*entity.Enemy]struct{})}
}

// player returns a mutable player, cloning it on first use.
func (t *txn) player() *entity.Player {
	if !t.playerOwned {
		t.s.Player = t.s.Player.Clone()
		t.playerOwned = true
	}
	return t.s.Player
}

// progress returns a mutable progression record, cloning it on first use.
func (t *txn) progress() *progress.Record {
	if !t.progressOwned {
		t.s.Progress = t.s.Progress.Clone()
		t.progressOwned = true
	}
	return t.s.Progress
}

// enemy returns a mutable enemy at index i, cloning it on first use.
func (t *txn) enemy(i int) *entity.Enemy {
	e := t.s.Enemies[i]
	if _, ok := t.owned[e]; !ok {
		e = e.Clone()
		t.s.Enemies[i] = e
		t.owned[e] = struct{}{}
	}
	return e
}

// adopt registers an enemy created during this action as freely mutable.
func (t *txn) adopt(e *entity.Enemy) {
	t.owned[e] = struct{}{}
}

// adoptPlayer marks freshly built player and progress values as mutable
// without a defensive clone.
func (t *txn) adoptPlayer() {
	t.playerOwned = true
	t.progressOwned = true
}

// logf appends a formatted line to the battle log, trimming to the cap.
func (t *txn) logf(format string, args ...any) {
	t.s.Log = append(t.s.Log, fmt.Sprintf(format, args...))
	if len(t.s.Log) > maxLogLines {
		t.s.Log = t.s.Log[len(t.s.Log)-maxLogLines:]
	}
}

package entity

import "github.com/BoredWeaver/TrialRPG-sub000/internal/gamedata"

// Status is an active effect on a combatant: damage over time, a stun, or
// a stat modifier. Statuses decay once per owner turn and are dropped when
// TurnsLeft reaches 0.
type Status struct {
	ID        string
	Kind      gamedata.EffectKind
	Stat      gamedata.StatRef
	Value     int
	TurnsLeft int
	Source    string
}

// Modifier reports whether the status changes stats (buff or debuff).
func (s Status) Modifier() bool {
	return s.Kind == gamedata.EffectBuff || s.Kind == gamedata.EffectDebuff
}

// addStatus pushes a status onto the list. Pushing with the same ID as an
// active status replaces it (a refresh); different IDs stack. A status with
// TurnsLeft <= 0 is silently dropped.
func addStatus(statuses []Status, s Status) []Status {
	if s.TurnsLeft <= 0 {
		return statuses
	}
	for i, existing := range statuses {
		if existing.ID == s.ID {
			statuses[i] = s
			return statuses
		}
	}
	return append(statuses, s)
}

// decayStatuses decrements every status by one turn and drops the expired.
func decayStatuses(statuses []Status) []Status {
	remaining := statuses[:0]
	for _, s := range statuses {
		s.TurnsLeft--
		if s.TurnsLeft > 0 {
			remaining = append(remaining, s)
		}
	}
	return remaining
}

// hasStun reports whether any active status is a stun.
func hasStun(statuses []Status) bool {
	for _, s := range statuses {
		if s.Kind == gamedata.EffectStun {
			return true
		}
	}
	return false
}

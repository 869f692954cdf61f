// Package combat provides the pure numeric core of battle resolution:
// the damage formula, elemental multipliers, crit math, and the
// start-of-turn / end-of-turn status passes shared by every combatant.
package combat

import (
	"math"
	"math/rand"
)

// Crit tuning. Chance comes from DEX plus flat crit points on top of a
// 5% base; the multiplier from crit-damage points on top of ×1.5.
const (
	CritChanceBase     = 0.05
	CritChancePerDEX   = 0.004
	CritChancePerPoint = 0.01
	CritChanceCap      = 0.5

	CritMultBase     = 1.5
	CritMultPerPoint = 0.01
	CritMultMin      = 1.0
	CritMultMax      = 3.0
)

// CalcDamage is the physical baseline: attack minus defense, never
// below 1. A wall of defense still takes chip damage.
func CalcDamage(atk, def int) int {
	dmg := atk - def
	if dmg < 1 {
		return 1
	}
	return dmg
}

// ElementMult looks up the target's multiplier for an element. A nil
// table or an absent element means 1.0.
func ElementMult(mods map[string]float64, element string) float64 {
	if mods == nil {
		return 1.0
	}
	mult, ok := mods[element]
	if !ok {
		return 1.0
	}
	return mult
}

// ApplyElement multiplies base damage by the target's element modifier,
// floors, and clamps the result to at least 1.
func ApplyElement(base int, element string, mods map[string]float64) (final int, mult float64) {
	mult = ElementMult(mods, element)
	final = int(math.Floor(float64(base) * mult))
	if final < 1 {
		final = 1
	}
	return final, mult
}

// CritChance computes the crit probability from DEX and flat crit points,
// clamped into [0, CritChanceCap].
func CritChance(dex, crit int) float64 {
	chance := CritChanceBase + float64(dex)*CritChancePerDEX + float64(crit)*CritChancePerPoint
	if chance < 0 {
		return 0
	}
	if chance > CritChanceCap {
		return CritChanceCap
	}
	return chance
}

// CritMult computes the crit damage multiplier from crit-damage points,
// clamped into [CritMultMin, CritMultMax].
func CritMult(critDmg int) float64 {
	mult := CritMultBase + float64(critDmg)*CritMultPerPoint
	if mult < CritMultMin {
		return CritMultMin
	}
	if mult > CritMultMax {
		return CritMultMax
	}
	return mult
}

// RollCrit rolls a crit against the given chance.
func RollCrit(rng *rand.Rand, chance float64) bool {
	return rng.Float64() < chance
}

package combat

import (
	"math"
	"math/rand"
	"testing"

	"github.com/BoredWeaver/TrialRPG-sub000/internal/entity"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/gamedata"
)

func TestCalcDamage(t *testing.T) {
	// 10 attack vs 2 defense: 10 - 2 = 8
	if got := CalcDamage(10, 2); got != 8 {
		t.Errorf("Expected 8 damage, got %d", got)
	}
}

func TestCalcDamageFloor(t *testing.T) {
	// Defense can exceed attack arbitrarily; damage never drops below 1.
	if got := CalcDamage(2, 10); got != 1 {
		t.Errorf("Expected minimum 1 damage, got %d", got)
	}
	if got := CalcDamage(0, 1000000); got != 1 {
		t.Errorf("Expected minimum 1 damage, got %d", got)
	}
}

func TestElementMult(t *testing.T) {
	mods := map[string]float64{"fire": 1.5, "physical": 0.5}

	if got := ElementMult(mods, "fire"); got != 1.5 {
		t.Errorf("Expected 1.5, got %v", got)
	}
	// Absent element and nil table both default to 1.0.
	if got := ElementMult(mods, "ice"); got != 1.0 {
		t.Errorf("Expected default 1.0, got %v", got)
	}
	if got := ElementMult(nil, "fire"); got != 1.0 {
		t.Errorf("Expected default 1.0 for nil table, got %v", got)
	}
}

func TestApplyElement(t *testing.T) {
	mods := map[string]float64{"physical": 0.5, "fire": 1.5}

	// 7 × 0.5 = 3.5, floored to 3
	final, mult := ApplyElement(7, "physical", mods)
	if final != 3 || mult != 0.5 {
		t.Errorf("Expected (3, 0.5), got (%d, %v)", final, mult)
	}

	// 10 × 1.5 = 15
	final, _ = ApplyElement(10, "fire", mods)
	if final != 15 {
		t.Errorf("Expected 15, got %d", final)
	}

	// A zero multiplier still deals chip damage: 10 × 0 clamps to 1.
	final, _ = ApplyElement(10, "poison", map[string]float64{"poison": 0})
	if final != 1 {
		t.Errorf("Expected clamp to 1, got %d", final)
	}
}

func TestCritChanceBounds(t *testing.T) {
	// Base case: 0.05 + 10×0.004 + 5×0.01 = 0.14
	if got := CritChance(10, 5); math.Abs(got-0.14) > 1e-9 {
		t.Errorf("Expected 0.14, got %v", got)
	}
	// Extreme stats clamp to the cap.
	if got := CritChance(1000, 1000); got != CritChanceCap {
		t.Errorf("Expected cap %v, got %v", CritChanceCap, got)
	}
	// Heavily debuffed stats clamp to 0.
	if got := CritChance(-1000, 0); got != 0 {
		t.Errorf("Expected 0, got %v", got)
	}
}

func TestCritMultBounds(t *testing.T) {
	// 1.5 + 20×0.01 = 1.7
	if got := CritMult(20); math.Abs(got-1.7) > 1e-9 {
		t.Errorf("Expected 1.7, got %v", got)
	}
	if got := CritMult(1000); got != CritMultMax {
		t.Errorf("Expected max %v, got %v", CritMultMax, got)
	}
	if got := CritMult(-1000); got != CritMultMin {
		t.Errorf("Expected min %v, got %v", CritMultMin, got)
	}
}

func TestRollCritDeterministic(t *testing.T) {
	// Two identically seeded rngs must agree roll for roll.
	rng1 := rand.New(rand.NewSource(12345))
	rng2 := rand.New(rand.NewSource(12345))
	for i := 0; i < 100; i++ {
		if RollCrit(rng1, 0.3) != RollCrit(rng2, 0.3) {
			t.Fatalf("Roll %d diverged between identical seeds", i)
		}
	}
}

// testEnemy builds a bare enemy with the given pools for pass tests.
func testEnemy(hp int) *entity.Enemy {
	e := &entity.Enemy{
		Name:      "Training Dummy",
		Base:      entity.Derived{Atk: 5, Def: 2, MaxHP: hp, MaxMP: 0},
		Cooldowns: map[string]int{},
	}
	e.Derived = e.Base
	e.HP = hp
	return e
}

func TestStartOfTurnDOT(t *testing.T) {
	e := testEnemy(20)
	e.AddStatus(entity.Status{ID: "bleed", Kind: gamedata.EffectDOT, Value: 3, TurnsLeft: 2})

	report := StartOfTurn(e)

	// 20 - 3 = 17
	if e.HP != 17 {
		t.Errorf("Expected HP 17 after DOT, got %d", e.HP)
	}
	if report.Died || report.Skipped {
		t.Errorf("Expected no death and no skip, got %+v", report)
	}
	if len(report.Lines) != 1 {
		t.Errorf("Expected 1 log line, got %d", len(report.Lines))
	}
}

func TestStartOfTurnDOTDeath(t *testing.T) {
	e := testEnemy(3)
	e.AddStatus(entity.Status{ID: "bleed", Kind: gamedata.EffectDOT, Value: 5, TurnsLeft: 3})
	// A stun is also active, but the dead do not get stun-checked.
	e.AddStatus(entity.Status{ID: "stun", Kind: gamedata.EffectStun, TurnsLeft: 1})

	report := StartOfTurn(e)

	if !report.Died {
		t.Error("Expected Died=true when a DOT drops HP to 0")
	}
	if report.Skipped {
		t.Error("Stun logic must not run after death")
	}
	if e.HP != 0 {
		t.Errorf("Expected HP clamped to 0, got %d", e.HP)
	}
}

func TestStartOfTurnStunSkip(t *testing.T) {
	e := testEnemy(20)
	e.AddStatus(entity.Status{ID: "stun", Kind: gamedata.EffectStun, TurnsLeft: 1})

	report := StartOfTurn(e)
	if !report.Skipped {
		t.Error("Expected Skipped=true with an active stun")
	}

	// Decay still runs for a skipped entity; the stun expires and the
	// entity can act next turn.
	e.DecayStatuses()
	if len(e.GetStatuses()) != 0 {
		t.Errorf("Expected stun to expire, %d statuses remain", len(e.GetStatuses()))
	}
	if StartOfTurn(e).Skipped {
		t.Error("Expected the entity to act after the stun expired")
	}
}

func TestStartOfTurnTicksCooldowns(t *testing.T) {
	e := testEnemy(20)
	e.SetCooldown("howl", 2)

	StartOfTurn(e)
	if got := e.Cooldown("howl"); got != 1 {
		t.Errorf("Expected cooldown 1 after one tick, got %d", got)
	}
	StartOfTurn(e)
	if got := e.Cooldown("howl"); got != 0 {
		t.Errorf("Expected cooldown gone after two ticks, got %d", got)
	}
}

package entity

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/BoredWeaver/TrialRPG-sub000/internal/gamedata"
)

// growthLevelCap limits exponential growth curves: levels beyond 21 keep
// the level-21 multiplier so misconfigured content cannot run away.
const growthLevelCap = 20

// EnemyRef names one enemy to build. ID may carry a "-lvN" suffix
// (case-insensitive); an explicit Level > 0 wins over the suffix.
type EnemyRef struct {
	ID    string
	Level int
}

// Scaling is the context the builder scales enemies against. It is
// threaded explicitly through every build call; there is no process-wide
// override to leak between dungeon runs. A DungeonLevel > 0 strictly
// overrides any per-ref level, and the built enemy keeps the bare base id.
type Scaling struct {
	DungeonLevel int
	ExpMult      float64
}

var levelSuffix = regexp.MustCompile(`(?i)^(.+)-lv(\d+)$`)

// ParseEnemyRef splits a raw id into its base id and suffix level.
// "goblin-lv5" parses to {goblin 5}; a bare id parses with Level 0
// (meaning unspecified, built at level 1).
func ParseEnemyRef(raw string) EnemyRef {
	m := levelSuffix.FindStringSubmatch(raw)
	if m == nil {
		return EnemyRef{ID: raw}
	}
	level, err := strconv.Atoi(m[2])
	if err != nil || level < 1 {
		return EnemyRef{ID: raw}
	}
	return EnemyRef{ID: m[1], Level: level}
}

// BuildEnemy resolves a ref against the template catalog and materializes
// a runtime enemy: level picked per the scaling rules, growth curves
// applied, pools full, Base snapshot captured from the scaled values.
func BuildEnemy(cat *gamedata.Catalog, ref EnemyRef, sc Scaling) (*Enemy, error) {
	parsed := ParseEnemyRef(ref.ID)

	id := ref.ID
	level := ref.Level
	if level <= 0 {
		level = parsed.Level
	}
	if level <= 0 {
		level = 1
	}
	if sc.DungeonLevel > 0 {
		level = sc.DungeonLevel
		id = parsed.ID
	}

	def := cat.Enemies.GetByID(parsed.ID)
	if def == nil {
		return nil, fmt.Errorf("unknown enemy template %q", parsed.ID)
	}

	base := Derived{
		Atk:   scaleLinear(def.Stats.Atk, def.Growth.Atk, level),
		Def:   def.Stats.Def,
		MAtk:  scaleLinear(def.Stats.MAtk, def.Growth.MAtk, level),
		MDef:  def.Stats.MDef,
		MaxHP: scaleExp(def.Stats.MaxHP, def.Growth.HP, level),
		MaxMP: scaleLinear(def.Stats.MaxMP, def.Growth.MP, level),
	}
	if base.MaxHP < 1 {
		base.MaxHP = 1
	}

	exp := float64(scaleExp(def.Exp, def.Growth.Exp, level))
	if def.Boss {
		exp *= 1.5
	}
	if sc.ExpMult > 0 {
		exp *= sc.ExpMult
	}

	e := &Enemy{
		ID:          id,
		Name:        def.Name,
		Glyph:       def.GlyphRune(),
		Color:       def.TCellColor(),
		Level:       level,
		Boss:        def.Boss,
		Base:        base,
		Derived:     base,
		HP:          base.MaxHP,
		MP:          base.MaxMP,
		ElementMods: def.Mods(),
		Spells:      append([]string(nil), def.Spells...),
		Exp:         int(math.Round(exp)),
		Drops:       append([]gamedata.Drop(nil), def.Drops...),
		Cooldowns:   make(map[string]int),
	}
	return e, nil
}

// BuildEnemies resolves a list of refs in order.
func BuildEnemies(cat *gamedata.Catalog, refs []EnemyRef, sc Scaling) ([]*Enemy, error) {
	enemies := make([]*Enemy, 0, len(refs))
	for _, ref := range refs {
		e, err := BuildEnemy(cat, ref, sc)
		if err != nil {
			return nil, err
		}
		enemies = append(enemies, e)
	}
	return enemies, nil
}

// scaleExp applies the exponential curve base × (1+rate)^(level-1), with
// the exponent capped at growthLevelCap.
func scaleExp(base int, rate float64, level int) int {
	steps := level - 1
	if steps < 0 {
		steps = 0
	}
	if steps > growthLevelCap {
		steps = growthLevelCap
	}
	return int(math.Round(float64(base) * math.Pow(1+rate, float64(steps))))
}

// scaleLinear applies the linear curve base × (1 + rate×(level-1)).
func scaleLinear(base int, rate float64, level int) int {
	steps := level - 1
	if steps < 0 {
		steps = 0
	}
	return int(math.Round(float64(base) * (1 + rate*float64(steps))))
}

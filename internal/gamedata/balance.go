package gamedata

import "math"

// Balance holds the tunable numbers that are content, not code: the EXP
// curve, spell-choice rewards, the starting loadout used when no saved
// progression exists, and dungeon pacing. Loaded from balance.yaml.
type Balance struct {
	ExpCurve     ExpCurve         `yaml:"expCurve"`
	SpellRewards map[int][]string `yaml:"spellRewards"`
	Starting     StartingLoadout  `yaml:"starting"`
	Dungeon      DungeonPacing    `yaml:"dungeon"`
}

// ExpCurve defines EXP required per level: base × growth^(level-1).
type ExpCurve struct {
	Base   int     `yaml:"base"`
	Growth float64 `yaml:"growth"`
}

// StartingLoadout is the fresh-character template.
type StartingLoadout struct {
	Name      string            `yaml:"name"`
	STR       int               `yaml:"str"`
	DEX       int               `yaml:"dex"`
	MAG       int               `yaml:"mag"`
	CON       int               `yaml:"con"`
	Spells    []string          `yaml:"spells"`
	Inventory map[string]int    `yaml:"inventory"`
	Equipped  map[string]string `yaml:"equipped"`
	Gold      int               `yaml:"gold"`
}

// DungeonPacing tunes the floor run the shell generates.
type DungeonPacing struct {
	EncountersPerFloor int     `yaml:"encountersPerFloor"`
	MaxGroupSize       int     `yaml:"maxGroupSize"`
	ExpMultStep        float64 `yaml:"expMultStep"`
}

// ExpToNext returns the EXP needed to advance from the given level.
func (b *Balance) ExpToNext(level int) int {
	if level < 1 {
		level = 1
	}
	need := float64(b.ExpCurve.Base) * math.Pow(b.ExpCurve.Growth, float64(level-1))
	if need < 1 || math.IsNaN(need) || math.IsInf(need, 0) {
		return 1
	}
	return int(need)
}

// RewardsAt returns the spell choices offered at the given level, if any.
func (b *Balance) RewardsAt(level int) []string {
	return b.SpellRewards[level]
}

// ExpMultForDepth returns the run-wide EXP multiplier for a floor depth.
func (b *Balance) ExpMultForDepth(depth int) float64 {
	if depth <= 1 || b.Dungeon.ExpMultStep <= 0 {
		return 1.0
	}
	return 1.0 + b.Dungeon.ExpMultStep*float64(depth-1)
}

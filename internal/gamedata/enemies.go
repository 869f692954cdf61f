package gamedata

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// FlexFloat decodes a JSON number that content files sometimes quote
// ("0.5" instead of 0.5). Element multiplier tables are the usual offender.
type FlexFloat float64

// UnmarshalJSON accepts a number or a numeric string.
func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("invalid multiplier %q: %w", string(b), err)
	}
	*f = FlexFloat(v)
	return nil
}

// BaseStats are an enemy template's level-1 derived stats.
type BaseStats struct {
	Atk   int `json:"atk"`
	Def   int `json:"def"`
	MAtk  int `json:"mAtk"`
	MDef  int `json:"mDef"`
	MaxHP int `json:"maxHP"`
	MaxMP int `json:"maxMP"`
}

// GrowthRates control per-level scaling of a template. HP and EXP grow
// exponentially, atk/mAtk/maxMP linearly; def/mDef never scale.
type GrowthRates struct {
	HP   float64 `json:"hp"`
	Atk  float64 `json:"atk"`
	MAtk float64 `json:"mAtk"`
	MP   float64 `json:"mp"`
	Exp  float64 `json:"exp"`
}

// Drop is one guaranteed item reward on an enemy template.
type Drop struct {
	ItemID string `json:"itemId"`
	Qty    int    `json:"qty"`
}

// EnemyDef defines an enemy template loaded from enemies.json.
type EnemyDef struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Glyph       string               `json:"glyph"`
	Color       string               `json:"color"`
	Boss        bool                 `json:"boss,omitempty"`
	SpawnWeight int                  `json:"spawnWeight"`
	Stats       BaseStats            `json:"stats"`
	Growth      GrowthRates          `json:"growth"`
	Exp         int                  `json:"exp"`
	Drops       []Drop               `json:"drops,omitempty"`
	ElementMods map[string]FlexFloat `json:"elementMods,omitempty"`
	Spells      []string             `json:"spells,omitempty"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (e *EnemyDef) GlyphRune() rune {
	if len(e.Glyph) == 0 {
		return '?'
	}
	return rune(e.Glyph[0])
}

// TCellColor returns the template's color, falling back to white.
func (e *EnemyDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(e.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// Mods returns the element multiplier table as plain floats.
func (e *EnemyDef) Mods() map[string]float64 {
	if len(e.ElementMods) == 0 {
		return nil
	}
	mods := make(map[string]float64, len(e.ElementMods))
	for element, mult := range e.ElementMods {
		mods[element] = float64(mult)
	}
	return mods
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// Package entity provides the battle combatants: the player, enemies, and
// the stat model both are built from.
package entity

import "github.com/BoredWeaver/TrialRPG-sub000/internal/gamedata"

// Attributes are the base stat axes a player grows. STR/DEX/MAG/CON are
// allocatable; the rest only ever arrive through equipment or statuses.
type Attributes struct {
	STR     int
	DEX     int
	MAG     int
	CON     int
	INT     int
	WIS     int
	LUC     int
	CRIT    int
	CRITDMG int
}

// Add returns the component-wise sum of two attribute sets.
func (a Attributes) Add(b Attributes) Attributes {
	a.STR += b.STR
	a.DEX += b.DEX
	a.MAG += b.MAG
	a.CON += b.CON
	a.INT += b.INT
	a.WIS += b.WIS
	a.LUC += b.LUC
	a.CRIT += b.CRIT
	a.CRITDMG += b.CRITDMG
	return a
}

// Get returns the value on the given axis.
func (a Attributes) Get(attr gamedata.Attr) int {
	switch attr {
	case gamedata.AttrSTR:
		return a.STR
	case gamedata.AttrDEX:
		return a.DEX
	case gamedata.AttrMAG:
		return a.MAG
	case gamedata.AttrCON:
		return a.CON
	case gamedata.AttrINT:
		return a.INT
	case gamedata.AttrWIS:
		return a.WIS
	case gamedata.AttrLUC:
		return a.LUC
	case gamedata.AttrCRIT:
		return a.CRIT
	case gamedata.AttrCRITDMG:
		return a.CRITDMG
	default:
		return 0
	}
}

// AddTo adds a delta on the given axis and returns the updated set.
func (a Attributes) AddTo(attr gamedata.Attr, delta int) Attributes {
	switch attr {
	case gamedata.AttrSTR:
		a.STR += delta
	case gamedata.AttrDEX:
		a.DEX += delta
	case gamedata.AttrMAG:
		a.MAG += delta
	case gamedata.AttrCON:
		a.CON += delta
	case gamedata.AttrINT:
		a.INT += delta
	case gamedata.AttrWIS:
		a.WIS += delta
	case gamedata.AttrLUC:
		a.LUC += delta
	case gamedata.AttrCRIT:
		a.CRIT += delta
	case gamedata.AttrCRITDMG:
		a.CRITDMG += delta
	}
	return a
}

// Derived are the combat stats everything in battle actually reads.
type Derived struct {
	Atk   int
	Def   int
	MAtk  int
	MDef  int
	MaxHP int
	MaxMP int
}

// AddField adds a delta on the given derived field and returns the result.
func (d Derived) AddField(field gamedata.DerivedField, delta int) Derived {
	switch field {
	case gamedata.FieldAtk:
		d.Atk += delta
	case gamedata.FieldDef:
		d.Def += delta
	case gamedata.FieldMAtk:
		d.MAtk += delta
	case gamedata.FieldMDef:
		d.MDef += delta
	case gamedata.FieldMaxHP:
		d.MaxHP += delta
	case gamedata.FieldMaxMP:
		d.MaxMP += delta
	}
	return d
}

// DeriveStats computes combat stats from attributes and level. This is the
// single derivation formula: the player builder, stat allocation, level-ups,
// and status recomputation all route through it.
func DeriveStats(attrs Attributes, level int) Derived {
	if level < 1 {
		level = 1
	}
	d := Derived{
		Atk:   3 + attrs.STR*2 + attrs.DEX/2,
		Def:   1 + attrs.CON/2 + attrs.STR/4,
		MAtk:  3 + attrs.MAG*2 + attrs.INT,
		MDef:  1 + attrs.WIS + attrs.CON/4,
		MaxHP: 30 + attrs.CON*10 + level*6 + attrs.STR*2,
		MaxMP: 10 + attrs.MAG*4 + attrs.WIS*2 + level*3,
	}
	// Degenerate attribute sets (heavy debuffs) must not produce an
	// unusable pool ceiling.
	if d.MaxHP < 1 {
		d.MaxHP = 1
	}
	if d.MaxMP < 0 {
		d.MaxMP = 0
	}
	return d
}

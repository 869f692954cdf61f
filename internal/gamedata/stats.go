package gamedata

import "strings"

// Attr identifies a base attribute axis on a player.
type Attr int

const (
	AttrSTR Attr = iota
	AttrDEX
	AttrMAG
	AttrCON
	AttrINT
	AttrWIS
	AttrLUC
	AttrCRIT
	AttrCRITDMG
)

// String returns the canonical token for the attribute.
func (a Attr) String() string {
	switch a {
	case AttrSTR:
		return "STR"
	case AttrDEX:
		return "DEX"
	case AttrMAG:
		return "MAG"
	case AttrCON:
		return "CON"
	case AttrINT:
		return "INT"
	case AttrWIS:
		return "WIS"
	case AttrLUC:
		return "LUC"
	case AttrCRIT:
		return "CRIT"
	case AttrCRITDMG:
		return "CRITDMG"
	default:
		return "unknown"
	}
}

// DerivedField identifies a derived combat stat.
type DerivedField int

const (
	FieldAtk DerivedField = iota
	FieldDef
	FieldMAtk
	FieldMDef
	FieldMaxHP
	FieldMaxMP
)

// String returns the canonical token for the derived field.
func (f DerivedField) String() string {
	switch f {
	case FieldAtk:
		return "atk"
	case FieldDef:
		return "def"
	case FieldMAtk:
		return "mAtk"
	case FieldMDef:
		return "mDef"
	case FieldMaxHP:
		return "maxHP"
	case FieldMaxMP:
		return "maxMP"
	default:
		return "unknown"
	}
}

// StatClass discriminates what a status or bonus token refers to.
type StatClass int

const (
	// StatNone marks effects that do not modify a stat (dot, stun, summon).
	StatNone StatClass = iota
	// StatAttribute modifies a base attribute before derivation.
	StatAttribute
	// StatDerived modifies a derived combat stat after derivation.
	StatDerived
)

// StatRef is a resolved stat reference. Content files carry free-form stat
// tokens; they are resolved into this closed form exactly once, at load time.
type StatRef struct {
	Class StatClass
	Attr  Attr
	Field DerivedField
}

// String returns the token of whatever the reference points at.
func (r StatRef) String() string {
	switch r.Class {
	case StatAttribute:
		return r.Attr.String()
	case StatDerived:
		return r.Field.String()
	default:
		return ""
	}
}

var attrTokens = map[string]Attr{
	"str":     AttrSTR,
	"dex":     AttrDEX,
	"mag":     AttrMAG,
	"con":     AttrCON,
	"int":     AttrINT,
	"wis":     AttrWIS,
	"luc":     AttrLUC,
	"crit":    AttrCRIT,
	"critdmg": AttrCRITDMG,
}

var derivedTokens = map[string]DerivedField{
	"atk":     FieldAtk,
	"attack":  FieldAtk,
	"def":     FieldDef,
	"defense": FieldDef,
	"matk":    FieldMAtk,
	"magic":   FieldMAtk,
	"mdef":    FieldMDef,
	"maxhp":   FieldMaxHP,
	"hp":      FieldMaxHP,
	"maxmp":   FieldMaxMP,
	"mp":      FieldMaxMP,
}

// ParseAttrToken resolves a base-attribute token (case-insensitive).
func ParseAttrToken(token string) (Attr, bool) {
	a, ok := attrTokens[strings.ToLower(strings.TrimSpace(token))]
	return a, ok
}

// ResolveStatToken resolves a stat token from content into a StatRef.
// An empty token resolves to StatNone. An unrecognized non-empty token
// resolves to the derived atk field; that fallback is deliberate and keeps
// misspelled content dealing visible damage instead of silently doing nothing.
func ResolveStatToken(token string) StatRef {
	tok := strings.ToLower(strings.TrimSpace(token))
	if tok == "" {
		return StatRef{Class: StatNone}
	}
	if attr, ok := attrTokens[tok]; ok {
		return StatRef{Class: StatAttribute, Attr: attr}
	}
	if field, ok := derivedTokens[tok]; ok {
		return StatRef{Class: StatDerived, Field: field}
	}
	return StatRef{Class: StatDerived, Field: FieldAtk}
}

// Package progress holds the player's persistent progression: level, EXP,
// attributes, spells known, inventory, gold, and equipment. The record is
// what the external store persists between battles; the battle engine
// reads it to build the player entity and writes EXP, drops, and level-ups
// back into it.
package progress

import (
	"github.com/BoredWeaver/TrialRPG-sub000/internal/entity"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/gamedata"
)

// SpellChoice is a pending level-up reward: the player picks one of the
// options later. The engine records choices, it never auto-resolves them.
type SpellChoice struct {
	Level   int      `json:"level"`
	Options []string `json:"options"`
}

// Record is the persisted progression state.
type Record struct {
	Name          string            `json:"name"`
	Level         int               `json:"level"`
	Exp           int               `json:"exp"`
	UnspentPoints int               `json:"unspentPoints"`
	Attrs         entity.Attributes `json:"attrs"`
	Spells        []string          `json:"spells"`
	Inventory     map[string]int    `json:"inventory"`
	Gold          int               `json:"gold"`
	Equipped      map[string]string `json:"equipped"`
	PendingSpells []SpellChoice     `json:"pendingSpells,omitempty"`
}

// DefaultRecord builds a fresh level-1 record from the balance file's
// starting loadout.
func DefaultRecord(b *gamedata.Balance) *Record {
	rec := &Record{
		Name:  b.Starting.Name,
		Level: 1,
		Attrs: entity.Attributes{
			STR: b.Starting.STR,
			DEX: b.Starting.DEX,
			MAG: b.Starting.MAG,
			CON: b.Starting.CON,
		},
		Spells:    append([]string(nil), b.Starting.Spells...),
		Inventory: make(map[string]int, len(b.Starting.Inventory)),
		Equipped:  make(map[string]string, len(b.Starting.Equipped)),
		Gold:      b.Starting.Gold,
	}
	if rec.Name == "" {
		rec.Name = "Adventurer"
	}
	for id, qty := range b.Starting.Inventory {
		rec.Inventory[id] = qty
	}
	for slot, id := range b.Starting.Equipped {
		rec.Equipped[slot] = id
	}
	return rec
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	next := *r
	next.Spells = append([]string(nil), r.Spells...)
	next.PendingSpells = append([]SpellChoice(nil), r.PendingSpells...)
	next.Inventory = make(map[string]int, len(r.Inventory))
	for id, qty := range r.Inventory {
		next.Inventory[id] = qty
	}
	next.Equipped = make(map[string]string, len(r.Equipped))
	for slot, id := range r.Equipped {
		next.Equipped[slot] = id
	}
	return &next
}

// KnowsSpell reports whether the spell is in the known list.
func (r *Record) KnowsSpell(id string) bool {
	for _, s := range r.Spells {
		if s == id {
			return true
		}
	}
	return false
}

// ItemCount returns how many of an item the inventory holds.
func (r *Record) ItemCount(id string) int {
	return r.Inventory[id]
}

// AddItem adds qty of an item to the inventory.
func (r *Record) AddItem(id string, qty int) {
	if qty <= 0 {
		return
	}
	if r.Inventory == nil {
		r.Inventory = make(map[string]int)
	}
	r.Inventory[id] += qty
}

// ConsumeItem removes one of an item, deleting the entry at zero.
// Returns false when none are held.
func (r *Record) ConsumeItem(id string) bool {
	count := r.Inventory[id]
	if count <= 0 {
		return false
	}
	if count == 1 {
		delete(r.Inventory, id)
	} else {
		r.Inventory[id] = count - 1
	}
	return true
}

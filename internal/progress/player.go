package progress

import (
	"github.com/BoredWeaver/TrialRPG-sub000/internal/entity"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/gamedata"
)

// EquipmentBonuses resolves the equipped-slot mapping into the flat list
// of stat bonuses the player entity carries. Unknown item ids and items
// that are not equipment are skipped; a broken save must not break the
// build.
func EquipmentBonuses(cat *gamedata.Catalog, equipped map[string]string) []gamedata.StatBonus {
	var bonuses []gamedata.StatBonus
	for _, itemID := range equipped {
		def := cat.Items.GetByID(itemID)
		if def == nil || def.Kind != gamedata.KindEquip {
			continue
		}
		bonuses = append(bonuses, def.BonusRefs...)
	}
	return bonuses
}

// BuildPlayer materializes the battle entity from a progression record.
// A nil record falls back to the balance file's starting loadout.
func BuildPlayer(cat *gamedata.Catalog, rec *Record) *entity.Player {
	if rec == nil {
		rec = DefaultRecord(cat.Balance)
	}
	p := entity.NewPlayer("player", rec.Name, rec.Level, rec.Attrs,
		EquipmentBonuses(cat, rec.Equipped))
	p.Spells = append([]string(nil), rec.Spells...)
	return p
}

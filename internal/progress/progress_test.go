package progress

import (
	"testing"

	"github.com/BoredWeaver/TrialRPG-sub000/data"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/gamedata"
)

func TestDefaultRecord(t *testing.T) {
	cat := gamedata.MustLoadCatalog(data.FS())
	rec := DefaultRecord(cat.Balance)

	if rec.Level != 1 || rec.Exp != 0 || rec.UnspentPoints != 0 {
		t.Errorf("Expected a fresh level-1 record, got %+v", rec)
	}
	if rec.Attrs.STR != 4 || rec.Attrs.DEX != 3 || rec.Attrs.MAG != 4 || rec.Attrs.CON != 4 {
		t.Errorf("Starting attributes mismatch: %+v", rec.Attrs)
	}
	if !rec.KnowsSpell("firebolt") {
		t.Error("Expected firebolt known from the start")
	}
	if rec.ItemCount("potion") != 2 {
		t.Errorf("Expected 2 starting potions, got %d", rec.ItemCount("potion"))
	}
	if rec.Equipped["weapon"] != "short-sword" {
		t.Errorf("Expected the short sword equipped, got %q", rec.Equipped["weapon"])
	}
}

func TestGrantExpSingleLevel(t *testing.T) {
	cat := gamedata.MustLoadCatalog(data.FS())
	rec := DefaultRecord(cat.Balance)

	// Level 1 needs 20 EXP. Granting 25 leaves 5 toward level 3.
	levels := GrantExp(rec, cat.Balance, 25)
	if levels != 1 {
		t.Fatalf("Expected 1 level gained, got %d", levels)
	}
	if rec.Level != 2 || rec.Exp != 5 {
		t.Errorf("Expected level 2 with 5 EXP, got level %d with %d", rec.Level, rec.Exp)
	}
	if rec.UnspentPoints != 1 {
		t.Errorf("Expected 1 unspent point, got %d", rec.UnspentPoints)
	}

	// Level 2 is a reward level offering mend. The grant records the
	// choice, it never auto-picks.
	if len(rec.PendingSpells) != 1 {
		t.Fatalf("Expected 1 pending choice, got %d", len(rec.PendingSpells))
	}
	choice := rec.PendingSpells[0]
	if choice.Level != 2 || len(choice.Options) != 1 || choice.Options[0] != "mend" {
		t.Errorf("Expected mend offered at level 2, got %+v", choice)
	}
	if rec.KnowsSpell("mend") {
		t.Error("The grant must not learn the spell automatically")
	}
}

func TestGrantExpMultiLevel(t *testing.T) {
	cat := gamedata.MustLoadCatalog(data.FS())
	rec := DefaultRecord(cat.Balance)

	// 20 + 27 = 47 carries the record through two level-ups exactly.
	levels := GrantExp(rec, cat.Balance, 47)
	if levels != 2 {
		t.Fatalf("Expected 2 levels gained, got %d", levels)
	}
	if rec.Level != 3 || rec.Exp != 0 {
		t.Errorf("Expected level 3 with 0 EXP, got level %d with %d", rec.Level, rec.Exp)
	}
	if rec.UnspentPoints != 2 {
		t.Errorf("Expected 2 unspent points, got %d", rec.UnspentPoints)
	}
	// Both reward levels were crossed; both choices are pending.
	if len(rec.PendingSpells) != 2 {
		t.Errorf("Expected 2 pending choices, got %d", len(rec.PendingSpells))
	}
}

func TestGrantExpNoop(t *testing.T) {
	cat := gamedata.MustLoadCatalog(data.FS())
	rec := DefaultRecord(cat.Balance)

	if GrantExp(rec, cat.Balance, 0) != 0 || GrantExp(rec, cat.Balance, -5) != 0 {
		t.Error("Expected zero and negative grants to be no-ops")
	}
	if rec.Exp != 0 {
		t.Errorf("Expected EXP untouched, got %d", rec.Exp)
	}
}

type flatCurve struct{}

func (flatCurve) ExpToNext(level int) int      { return 1 }
func (flatCurve) RewardsAt(level int) []string { return nil }

func TestGrantExpBounded(t *testing.T) {
	rec := &Record{Level: 1}

	// A degenerate curve that always needs 1 EXP would loop forever on a
	// huge grant; the bound stops it.
	levels := GrantExp(rec, flatCurve{}, 1000000)
	if levels != levelUpBound {
		t.Errorf("Expected the level-up loop bounded at %d, got %d", levelUpBound, levels)
	}
}

func TestConsumeItem(t *testing.T) {
	cat := gamedata.MustLoadCatalog(data.FS())
	rec := DefaultRecord(cat.Balance)

	if !rec.ConsumeItem("potion") {
		t.Fatal("Expected the first potion consumed")
	}
	if rec.ItemCount("potion") != 1 {
		t.Errorf("Expected 1 potion left, got %d", rec.ItemCount("potion"))
	}
	rec.ConsumeItem("potion")
	if _, ok := rec.Inventory["potion"]; ok {
		t.Error("Expected the entry deleted at zero")
	}
	if rec.ConsumeItem("potion") {
		t.Error("Expected consuming an empty stack to fail")
	}
}

func TestEquipmentBonuses(t *testing.T) {
	cat := gamedata.MustLoadCatalog(data.FS())

	bonuses := EquipmentBonuses(cat, map[string]string{
		"weapon": "short-sword",
		"armor":  "leather-vest",
		"charm":  "potion",  // not equipment, skipped
		"ring":   "unknown", // unknown id, skipped
	})
	// short-sword: atk +3; leather-vest: def +2, maxHP +10.
	if len(bonuses) != 3 {
		t.Fatalf("Expected 3 bonuses, got %d", len(bonuses))
	}
}

func TestBuildPlayer(t *testing.T) {
	cat := gamedata.MustLoadCatalog(data.FS())

	// nil record falls back to the starting loadout: derived Atk 12 plus
	// the short sword's +3.
	p := BuildPlayer(cat, nil)
	if p.Derived.Atk != 15 {
		t.Errorf("Expected Atk 15 with the short sword, got %d", p.Derived.Atk)
	}
	if p.HP != p.Derived.MaxHP || p.MP != p.Derived.MaxMP {
		t.Error("Expected a fresh player at full pools")
	}
	if len(p.Spells) != 1 || p.Spells[0] != "firebolt" {
		t.Errorf("Expected the starting spell list, got %v", p.Spells)
	}
}

func TestCloneIndependence(t *testing.T) {
	cat := gamedata.MustLoadCatalog(data.FS())
	rec := DefaultRecord(cat.Balance)

	clone := rec.Clone()
	clone.AddItem("ether", 1)
	clone.Spells = append(clone.Spells, "mend")
	clone.Equipped["armor"] = "leather-vest"

	if rec.ItemCount("ether") != 0 {
		t.Error("Clone inventory write leaked into the original")
	}
	if rec.KnowsSpell("mend") {
		t.Error("Clone spell write leaked into the original")
	}
	if _, ok := rec.Equipped["armor"]; ok {
		t.Error("Clone equipment write leaked into the original")
	}
}

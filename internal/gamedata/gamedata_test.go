package gamedata

import (
	"encoding/json"
	"math/rand"
	"testing"
	"testing/fstest"

	"github.com/BoredWeaver/TrialRPG-sub000/data"
)

// minimalContent is a tiny self-consistent content set for error-path
// tests; individual cases break one file at a time.
func minimalContent() fstest.MapFS {
	return fstest.MapFS{
		"spells.json": &fstest.MapFile{Data: []byte(`{"spells": [
			{"id": "zap", "name": "Zap", "kind": "damage", "target": "single",
			 "element": "fire", "damageType": "magical", "powerMult": 1.0, "mpCost": 1}
		]}`)},
		"items.json": &fstest.MapFile{Data: []byte(`{"items": [
			{"id": "bread", "name": "Bread", "kind": "heal", "power": 5}
		]}`)},
		"enemies.json": &fstest.MapFile{Data: []byte(`{"enemies": [
			{"id": "rat", "name": "Rat", "glyph": "r", "color": "#888888",
			 "spawnWeight": 1,
			 "stats": {"atk": 2, "def": 0, "mAtk": 0, "mDef": 0, "maxHP": 4, "maxMP": 0},
			 "growth": {"hp": 0.1, "atk": 0.1, "mAtk": 0, "mp": 0, "exp": 0.1},
			 "exp": 1}
		]}`)},
		"balance.yaml": &fstest.MapFile{Data: []byte("expCurve:\n  base: 10\n  growth: 1.5\n")},
	}
}

func TestLoadCatalog(t *testing.T) {
	cat, err := LoadCatalog(data.FS())
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}

	if cat.Spells.Count() == 0 || cat.Items.Count() == 0 || cat.Enemies.Count() == 0 {
		t.Fatal("Expected every registry populated")
	}
	for _, id := range []string{"firebolt", "flamewave", "gravecall", "stone-gaze"} {
		if cat.Spells.GetByID(id) == nil {
			t.Errorf("Expected spell %q in the catalog", id)
		}
	}
	for _, id := range []string{"goblin", "necromancer", "skeleton"} {
		if cat.Enemies.GetByID(id) == nil {
			t.Errorf("Expected enemy %q in the catalog", id)
		}
	}
	if cat.Items.GetByID("potion") == nil {
		t.Error("Expected item potion in the catalog")
	}
	if cat.Balance == nil || cat.Balance.ExpCurve.Base == 0 {
		t.Error("Expected the balance file loaded")
	}
}

func TestLoadCatalogMinimal(t *testing.T) {
	cat, err := LoadCatalog(minimalContent())
	if err != nil {
		t.Fatalf("LoadCatalog failed on minimal content: %v", err)
	}
	if cat.Enemies.GetByID("rat") == nil {
		t.Error("Expected the rat loaded")
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	fsys := minimalContent()
	delete(fsys, "spells.json")
	if _, err := LoadCatalog(fsys); err == nil {
		t.Error("Expected an error with spells.json missing")
	}
}

func TestLoadCatalogBadJSON(t *testing.T) {
	fsys := minimalContent()
	fsys["enemies.json"] = &fstest.MapFile{Data: []byte(`{"enemies": [`)}
	if _, err := LoadCatalog(fsys); err == nil {
		t.Error("Expected a parse error")
	}
}

func TestLoadCatalogDanglingReference(t *testing.T) {
	// Broken cross-references fail at startup, not mid-battle.
	fsys := minimalContent()
	fsys["enemies.json"] = &fstest.MapFile{Data: []byte(`{"enemies": [
		{"id": "rat", "name": "Rat", "glyph": "r", "color": "#888888",
		 "spawnWeight": 1,
		 "stats": {"atk": 2, "def": 0, "mAtk": 0, "mDef": 0, "maxHP": 4, "maxMP": 0},
		 "growth": {"hp": 0.1, "atk": 0.1, "mAtk": 0, "mp": 0, "exp": 0.1},
		 "exp": 1, "spells": ["meteor"]}
	]}`)}
	if _, err := LoadCatalog(fsys); err == nil {
		t.Error("Expected a validation error for the unknown spell")
	}
}

func TestGetByIDMissing(t *testing.T) {
	cat := MustLoadCatalog(data.FS())
	if cat.Spells.GetByID("meteor") != nil {
		t.Error("Expected nil for an unknown spell")
	}
	if cat.Items.GetByID("elixir") != nil {
		t.Error("Expected nil for an unknown item")
	}
	if cat.Enemies.GetByID("dragon") != nil {
		t.Error("Expected nil for an unknown enemy")
	}
}

func TestFlexFloat(t *testing.T) {
	var mods map[string]FlexFloat
	// Quoted and bare numbers in the same table.
	raw := `{"physical": "0.5", "fire": 1.5}`
	if err := json.Unmarshal([]byte(raw), &mods); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if mods["physical"] != 0.5 {
		t.Errorf("Expected quoted 0.5, got %v", mods["physical"])
	}
	if mods["fire"] != 1.5 {
		t.Errorf("Expected bare 1.5, got %v", mods["fire"])
	}

	var bad FlexFloat
	if err := json.Unmarshal([]byte(`"half"`), &bad); err == nil {
		t.Error("Expected an error for a non-numeric string")
	}
}

func TestSlimeStringMultiplier(t *testing.T) {
	// The slime template quotes its physical multiplier in enemies.json;
	// the loaded table must carry it as a plain float.
	cat := MustLoadCatalog(data.FS())
	mods := cat.Enemies.GetByID("slime").Mods()
	if mods["physical"] != 0.5 {
		t.Errorf("Expected physical 0.5, got %v", mods["physical"])
	}
}

func TestResolveStatToken(t *testing.T) {
	cases := []struct {
		token string
		want  StatRef
	}{
		{"str", StatRef{Class: StatAttribute, Attr: AttrSTR}},
		{" STR ", StatRef{Class: StatAttribute, Attr: AttrSTR}},
		{"critdmg", StatRef{Class: StatAttribute, Attr: AttrCRITDMG}},
		{"atk", StatRef{Class: StatDerived, Field: FieldAtk}},
		{"attack", StatRef{Class: StatDerived, Field: FieldAtk}},
		{"maxHP", StatRef{Class: StatDerived, Field: FieldMaxHP}},
		{"hp", StatRef{Class: StatDerived, Field: FieldMaxHP}},
		{"", StatRef{Class: StatNone}},
		// Misspelled tokens land on atk so broken content stays visible.
		{"strenght", StatRef{Class: StatDerived, Field: FieldAtk}},
	}
	for _, c := range cases {
		if got := ResolveStatToken(c.token); got != c.want {
			t.Errorf("ResolveStatToken(%q) = %+v, want %+v", c.token, got, c.want)
		}
	}
}

func TestEffectResolution(t *testing.T) {
	cat := MustLoadCatalog(data.FS())

	// frost-lance carries a debuff on "atk"; the token must be resolved at
	// load into a derived-field reference.
	frost := cat.Spells.GetByID("frost-lance")
	if len(frost.Effects) != 1 {
		t.Fatalf("Expected 1 effect on frost-lance, got %d", len(frost.Effects))
	}
	ref := frost.Effects[0].StatRef
	if ref.Class != StatDerived || ref.Field != FieldAtk {
		t.Errorf("Expected resolved atk reference, got %+v", ref)
	}

	// stone-gaze's stun has no stat token.
	gaze := cat.Spells.GetByID("stone-gaze")
	if gaze.Effects[0].StatRef.Class != StatNone {
		t.Errorf("Expected StatNone for a stun, got %+v", gaze.Effects[0].StatRef)
	}
}

func TestEquipmentBonusResolution(t *testing.T) {
	cat := MustLoadCatalog(data.FS())

	sword := cat.Items.GetByID("short-sword")
	if len(sword.BonusRefs) != 1 {
		t.Fatalf("Expected 1 resolved bonus, got %d", len(sword.BonusRefs))
	}
	b := sword.BonusRefs[0]
	if b.Ref.Class != StatDerived || b.Ref.Field != FieldAtk || b.Value != 3 {
		t.Errorf("Expected atk +3, got %+v", b)
	}

	charm := cat.Items.GetByID("lucky-charm")
	if len(charm.BonusRefs) != 2 {
		t.Fatalf("Expected 2 resolved bonuses, got %d", len(charm.BonusRefs))
	}
	for _, b := range charm.BonusRefs {
		if b.Ref.Class != StatAttribute {
			t.Errorf("Expected attribute-class bonus, got %+v", b)
		}
	}
}

func TestCritEligibleDefault(t *testing.T) {
	cat := MustLoadCatalog(data.FS())

	// Spells are crit-eligible unless the content opts out.
	if !cat.Spells.GetByID("firebolt").CritEligible() {
		t.Error("Expected firebolt crit-eligible by default")
	}
	if cat.Spells.GetByID("stone-gaze").CritEligible() {
		t.Error("Expected stone-gaze to opt out of crits")
	}
	if cat.Items.GetByID("fire-bomb").CritEligible() {
		t.Error("Expected fire-bomb to opt out of crits")
	}
}

func TestConsumable(t *testing.T) {
	cat := MustLoadCatalog(data.FS())
	if !cat.Items.GetByID("potion").Consumable() {
		t.Error("Expected potion consumable")
	}
	if cat.Items.GetByID("short-sword").Consumable() {
		t.Error("Expected equipment not consumable")
	}
}

func TestSpawnRandomDeterministic(t *testing.T) {
	cat := MustLoadCatalog(data.FS())

	rng1 := rand.New(rand.NewSource(42))
	rng2 := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		a := cat.Enemies.SpawnRandom(rng1)
		b := cat.Enemies.SpawnRandom(rng2)
		if a.ID != b.ID {
			t.Fatalf("Spawn %d diverged between identical seeds: %s vs %s", i, a.ID, b.ID)
		}
		// Bosses carry spawnWeight 0 and never roll.
		if a.Boss {
			t.Fatalf("Spawn %d produced the boss %s", i, a.ID)
		}
	}
}

func TestBosses(t *testing.T) {
	cat := MustLoadCatalog(data.FS())
	bosses := cat.Enemies.Bosses()
	if len(bosses) != 1 || bosses[0].ID != "necromancer" {
		t.Errorf("Expected exactly the necromancer, got %d bosses", len(bosses))
	}
}

func TestExpCurve(t *testing.T) {
	cat := MustLoadCatalog(data.FS())
	b := cat.Balance

	// base 20, growth 1.35: level 1 needs 20, level 2 needs 27.
	if got := b.ExpToNext(1); got != 20 {
		t.Errorf("Expected 20, got %d", got)
	}
	if got := b.ExpToNext(2); got != 27 {
		t.Errorf("Expected 27, got %d", got)
	}
	// Degenerate input clamps to level 1.
	if b.ExpToNext(0) != b.ExpToNext(1) {
		t.Error("Expected level 0 to clamp to level 1")
	}
}

func TestSpellRewards(t *testing.T) {
	cat := MustLoadCatalog(data.FS())

	got := cat.Balance.RewardsAt(3)
	if len(got) != 2 || got[0] != "flamewave" || got[1] != "frost-lance" {
		t.Errorf("Expected [flamewave frost-lance] at level 3, got %v", got)
	}
	if cat.Balance.RewardsAt(4) != nil {
		t.Error("Expected no rewards at level 4")
	}
}

func TestExpMultForDepth(t *testing.T) {
	cat := MustLoadCatalog(data.FS())

	if got := cat.Balance.ExpMultForDepth(1); got != 1.0 {
		t.Errorf("Expected 1.0 at depth 1, got %v", got)
	}
	// step 0.1: depth 3 runs at 1.2.
	if got := cat.Balance.ExpMultForDepth(3); got != 1.2 {
		t.Errorf("Expected 1.2 at depth 3, got %v", got)
	}
}

package dungeon

import (
	"context"
	"math/rand"
	"testing"

	"github.com/BoredWeaver/TrialRPG-sub000/data"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/gamedata"
)

func TestGenerateFloor(t *testing.T) {
	cat := gamedata.MustLoadCatalog(data.FS())
	ctx := context.Background()

	floor := GenerateFloor(ctx, cat, 1, rand.New(rand.NewSource(1)))

	if floor.Depth != 1 {
		t.Errorf("Expected depth 1, got %d", floor.Depth)
	}
	// Balance pacing: 3 roamer encounters plus the boss.
	if len(floor.Encounters) != 4 {
		t.Fatalf("Expected 4 encounters, got %d", len(floor.Encounters))
	}

	last := floor.Encounters[len(floor.Encounters)-1]
	if !last.Boss {
		t.Error("Expected the floor to close with a boss fight")
	}
	if len(last.Refs) != 1 || last.Refs[0].ID != "necromancer" {
		t.Errorf("Expected the necromancer at the end, got %+v", last.Refs)
	}

	for i, enc := range floor.Encounters[:len(floor.Encounters)-1] {
		if enc.Boss {
			t.Errorf("Encounter %d flagged as a boss fight", i)
		}
		if len(enc.Refs) < 1 || len(enc.Refs) > cat.Balance.Dungeon.MaxGroupSize {
			t.Errorf("Encounter %d has %d enemies, want 1..%d",
				i, len(enc.Refs), cat.Balance.Dungeon.MaxGroupSize)
		}
		for _, ref := range enc.Refs {
			def := cat.Enemies.GetByID(ref.ID)
			if def == nil {
				t.Errorf("Encounter %d references unknown enemy %q", i, ref.ID)
			} else if def.Boss {
				t.Errorf("Encounter %d rolled the boss %q as a roamer", i, ref.ID)
			}
		}
	}
}

func TestGenerateFloorDeterministic(t *testing.T) {
	cat := gamedata.MustLoadCatalog(data.FS())
	ctx := context.Background()

	a := GenerateFloor(ctx, cat, 2, rand.New(rand.NewSource(99)))
	b := GenerateFloor(ctx, cat, 2, rand.New(rand.NewSource(99)))

	if len(a.Encounters) != len(b.Encounters) {
		t.Fatalf("Encounter counts diverged: %d vs %d", len(a.Encounters), len(b.Encounters))
	}
	for i := range a.Encounters {
		ra, rb := a.Encounters[i].Refs, b.Encounters[i].Refs
		if len(ra) != len(rb) {
			t.Fatalf("Encounter %d sizes diverged: %d vs %d", i, len(ra), len(rb))
		}
		for j := range ra {
			if ra[j] != rb[j] {
				t.Errorf("Encounter %d ref %d diverged: %+v vs %+v", i, j, ra[j], rb[j])
			}
		}
	}
}

func TestFloorScaling(t *testing.T) {
	cat := gamedata.MustLoadCatalog(data.FS())
	ctx := context.Background()

	floor := GenerateFloor(ctx, cat, 3, rand.New(rand.NewSource(1)))
	sc := floor.Scaling()

	if sc.DungeonLevel != 3 {
		t.Errorf("Expected dungeon level 3, got %d", sc.DungeonLevel)
	}
	// step 0.1: depth 3 runs at 1.2.
	if sc.ExpMult != 1.2 {
		t.Errorf("Expected EXP multiplier 1.2, got %v", sc.ExpMult)
	}

	// Degenerate depth clamps to 1.
	shallow := GenerateFloor(ctx, cat, 0, rand.New(rand.NewSource(1)))
	if shallow.Depth != 1 {
		t.Errorf("Expected depth clamped to 1, got %d", shallow.Depth)
	}
}

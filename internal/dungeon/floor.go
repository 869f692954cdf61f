// Package dungeon models a run as floors of encounters. The grid itself
// lives outside this system; a floor is the collaborator the battle
// engine needs: who you fight, in what order, and at what scaling.
package dungeon

import (
	"context"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BoredWeaver/TrialRPG-sub000/internal/entity"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/gamedata"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/telemetry"
)

// Encounter is one battle on a floor.
type Encounter struct {
	Refs []entity.EnemyRef
	Boss bool
}

// Floor is one depth level of a run: a fixed sequence of encounters
// ending in a boss fight. Depth doubles as the dungeon-level scaling
// override for every enemy built on this floor.
type Floor struct {
	Depth      int
	Encounters []Encounter
	ExpMult    float64
}

// Scaling returns the scaling context battles on this floor use.
func (f *Floor) Scaling() entity.Scaling {
	return entity.Scaling{DungeonLevel: f.Depth, ExpMult: f.ExpMult}
}

// GenerateFloor rolls a floor's encounters from the catalog's spawn
// weights: pacing comes from the balance file, group sizes are uniform
// in [1, maxGroupSize], and the floor closes with a boss picked in
// rotation by depth. Generation is deterministic for a given rng state.
func GenerateFloor(ctx context.Context, cat *gamedata.Catalog, depth int, rng *rand.Rand) *Floor {
	tracer := telemetry.Tracer("dungeon")
	_, span := tracer.Start(ctx, "dungeon.generate_floor")
	defer span.End()

	if depth < 1 {
		depth = 1
	}

	pacing := cat.Balance.Dungeon
	encounters := pacing.EncountersPerFloor
	if encounters < 1 {
		encounters = 1
	}
	groupMax := pacing.MaxGroupSize
	if groupMax < 1 {
		groupMax = 1
	}

	floor := &Floor{
		Depth:   depth,
		ExpMult: cat.Balance.ExpMultForDepth(depth),
	}

	for i := 0; i < encounters; i++ {
		size := 1 + rng.Intn(groupMax)
		refs := make([]entity.EnemyRef, 0, size)
		for j := 0; j < size; j++ {
			def := cat.Enemies.SpawnRandom(rng)
			if def == nil || def.Boss {
				continue
			}
			refs = append(refs, entity.EnemyRef{ID: def.ID})
		}
		if len(refs) == 0 {
			continue
		}
		floor.Encounters = append(floor.Encounters, Encounter{Refs: refs})
	}

	if bosses := cat.Enemies.Bosses(); len(bosses) > 0 {
		boss := bosses[(depth-1)%len(bosses)]
		floor.Encounters = append(floor.Encounters, Encounter{
			Refs: []entity.EnemyRef{{ID: boss.ID}},
			Boss: true,
		})
	}

	span.SetAttributes(
		attribute.Int("dungeon.depth", depth),
		attribute.Int("dungeon.encounter_count", len(floor.Encounters)),
		attribute.Float64("dungeon.exp_mult", floor.ExpMult),
	)
	return floor
}

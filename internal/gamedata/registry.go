package gamedata

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
)

// EnemyRegistry holds loaded enemy templates and provides spawning utilities.
type EnemyRegistry struct {
	enemies     []EnemyDef
	byID        map[string]*EnemyDef
	totalWeight int
}

// NewEnemyRegistry creates a registry from loaded enemy templates.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	registry := &EnemyRegistry{
		enemies: enemies,
		byID:    make(map[string]*EnemyDef, len(enemies)),
	}
	for i := range enemies {
		registry.byID[enemies[i].ID] = &enemies[i]
		registry.totalWeight += enemies[i].SpawnWeight
	}
	return registry
}

// SpawnRandom selects a random non-boss template using weighted probability.
// Templates with higher spawnWeight are more likely to be selected.
func (r *EnemyRegistry) SpawnRandom(rng *rand.Rand) *EnemyDef {
	if r.totalWeight <= 0 || len(r.enemies) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.enemies {
		cumulative += r.enemies[i].SpawnWeight
		if roll < cumulative {
			return &r.enemies[i]
		}
	}

	// Fallback (shouldn't happen)
	return &r.enemies[0]
}

// Bosses returns every template flagged as a boss, in file order.
func (r *EnemyRegistry) Bosses() []*EnemyDef {
	var bosses []*EnemyDef
	for i := range r.enemies {
		if r.enemies[i].Boss {
			bosses = append(bosses, &r.enemies[i])
		}
	}
	return bosses
}

// GetByID returns the template with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	return r.byID[id]
}

// All returns all enemy templates.
func (r *EnemyRegistry) All() []EnemyDef {
	return r.enemies
}

// Count returns the number of templates in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}

// =============================================================================
// SpellRegistry
// =============================================================================

// SpellRegistry holds loaded spell definitions and provides lookup utilities.
type SpellRegistry struct {
	spells map[string]*SpellDef
	all    []SpellDef
}

// NewSpellRegistry creates a registry from loaded spell definitions.
func NewSpellRegistry(spells []SpellDef) *SpellRegistry {
	registry := &SpellRegistry{
		spells: make(map[string]*SpellDef, len(spells)),
		all:    spells,
	}
	for i := range spells {
		registry.spells[spells[i].ID] = &spells[i]
	}
	return registry
}

// GetByID returns the spell with the given ID, or nil if not found.
func (r *SpellRegistry) GetByID(id string) *SpellDef {
	return r.spells[id]
}

// GetMultiple returns spell definitions for a list of IDs.
// Missing IDs are silently skipped.
func (r *SpellRegistry) GetMultiple(ids []string) []*SpellDef {
	result := make([]*SpellDef, 0, len(ids))
	for _, id := range ids {
		if spell := r.spells[id]; spell != nil {
			result = append(result, spell)
		}
	}
	return result
}

// All returns all spell definitions.
func (r *SpellRegistry) All() []SpellDef {
	return r.all
}

// Count returns the number of spells in the registry.
func (r *SpellRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// ItemRegistry
// =============================================================================

// ItemRegistry holds loaded item definitions and provides lookup utilities.
type ItemRegistry struct {
	items map[string]*ItemDef
	all   []ItemDef
}

// NewItemRegistry creates a registry from loaded item definitions.
func NewItemRegistry(items []ItemDef) *ItemRegistry {
	registry := &ItemRegistry{
		items: make(map[string]*ItemDef, len(items)),
		all:   items,
	}
	for i := range items {
		registry.items[items[i].ID] = &items[i]
	}
	return registry
}

// GetByID returns the item with the given ID, or nil if not found.
func (r *ItemRegistry) GetByID(id string) *ItemDef {
	return r.items[id]
}

// All returns all item definitions.
func (r *ItemRegistry) All() []ItemDef {
	return r.all
}

// Count returns the number of items in the registry.
func (r *ItemRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// Catalog
// =============================================================================

// Catalog bundles every loaded content registry plus the balance file.
// It is read-only after load; the engine and the shell share one instance.
type Catalog struct {
	Spells  *SpellRegistry
	Items   *ItemRegistry
	Enemies *EnemyRegistry
	Balance *Balance
}

// LoadCatalog loads and resolves all content from the given filesystem.
// Stat tokens and equipment bonuses are resolved here, once.
func LoadCatalog(fsys fs.FS) (*Catalog, error) {
	spells, err := LoadSpells(fsys)
	if err != nil {
		return nil, err
	}
	if len(spells) == 0 {
		return nil, errors.New("no spells loaded from spells.json")
	}
	for i := range spells {
		for j := range spells[i].Effects {
			spells[i].Effects[j].resolve()
		}
	}

	items, err := LoadItems(fsys)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].resolve()
	}

	enemies, err := LoadEnemies(fsys)
	if err != nil {
		return nil, err
	}
	if len(enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.json")
	}

	balance, err := LoadBalance(fsys)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{
		Spells:  NewSpellRegistry(spells),
		Items:   NewItemRegistry(items),
		Enemies: NewEnemyRegistry(enemies),
		Balance: balance,
	}
	if err := cat.validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// MustLoadCatalog loads the catalog, panicking on error.
func MustLoadCatalog(fsys fs.FS) *Catalog {
	cat, err := LoadCatalog(fsys)
	if err != nil {
		panic(err)
	}
	return cat
}

// validate checks cross-file references so broken content fails at startup
// instead of mid-battle.
func (c *Catalog) validate() error {
	for _, enemy := range c.Enemies.All() {
		for _, spellID := range enemy.Spells {
			if c.Spells.GetByID(spellID) == nil {
				return fmt.Errorf("enemy %s references unknown spell %s", enemy.ID, spellID)
			}
		}
		for _, drop := range enemy.Drops {
			if c.Items.GetByID(drop.ItemID) == nil {
				return fmt.Errorf("enemy %s drops unknown item %s", enemy.ID, drop.ItemID)
			}
		}
	}
	for _, spell := range c.Spells.All() {
		for _, effect := range spell.Effects {
			if effect.Kind == EffectSummon {
				if effect.Summon == nil {
					return fmt.Errorf("spell %s has a summon effect without a summon spec", spell.ID)
				}
				if c.Enemies.GetByID(effect.Summon.BaseID) == nil {
					return fmt.Errorf("spell %s summons unknown enemy %s", spell.ID, effect.Summon.BaseID)
				}
			}
		}
	}
	return nil
}

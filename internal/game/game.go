package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/BoredWeaver/TrialRPG-sub000/data"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/battle"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/dungeon"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/gamedata"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/logging"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/progress"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/store"
	"github.com/BoredWeaver/TrialRPG-sub000/internal/ui"
)

// allocKeys maps allocation keys to the four growable attributes.
var allocKeys = map[rune]gamedata.Attr{
	'q': gamedata.AttrSTR,
	'w': gamedata.AttrDEX,
	'e': gamedata.AttrMAG,
	'r': gamedata.AttrCON,
}

// Game owns the shell: the terminal, the catalog, the store, and the
// engine. It drives exactly one engine entry point per key press and is
// the single caller, so the engine's serialize-your-calls contract holds
// by construction.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	cat      *gamedata.Catalog
	engine   *battle.Engine
	saves    store.Store
	log      *logging.Logger
	rng      *rand.Rand
	cfg      Config

	state     State
	rec       *progress.Record
	depth     int
	floor     *dungeon.Floor
	encounter int
	bs        *battle.State

	spellIdx  int
	itemIdx   int
	lastToast string
	running   bool
}

// New creates a game instance.
func New(cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.Slot == "" {
		cfg.Slot = "default"
	}

	var saves store.Store
	if cfg.SavePath != "" {
		saves, err = store.OpenSQLite(cfg.SavePath)
		if err != nil {
			screen.Close()
			return nil, err
		}
	} else {
		saves = store.NewMemoryStore()
	}

	g := &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		cat:      gamedata.MustLoadCatalog(data.FS()),
		saves:    saves,
		log:      logging.New("trialrpg"),
		rng:      rand.New(rand.NewSource(seed)),
		cfg:      cfg,
		state:    StateFloor,
		depth:    1,
		running:  true,
	}
	g.engine = battle.New(g.cat, g.rng, g)
	return g, nil
}

// Run executes the main loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()
	defer g.saves.Close()

	rec, ok, err := g.saves.Load(ctx, g.cfg.Slot)
	if err != nil {
		g.log.Error("load failed, starting fresh", logging.Fields{"error": err.Error()})
	}
	if !ok || rec == nil {
		rec = progress.DefaultRecord(g.cat.Balance)
	}
	g.rec = rec
	g.floor = dungeon.GenerateFloor(ctx, g.cat, g.depth, g.rng)

	for g.running {
		g.render()
		switch ev := g.screen.PollEvent().(type) {
		case *tcell.EventKey:
			g.handleKey(ctx, ev)
		case *tcell.EventResize:
			g.screen.Sync()
		}
	}
	return g.save(ctx)
}

func (g *Game) render() {
	switch g.state {
	case StateFloor:
		g.renderer.RenderFloor(g.depth, g.encounter, len(g.floor.Encounters),
			"[enter] fight   [esc] quit   "+g.lastToast)
	case StateBattle:
		hint := "[a]ttack [1-9] target [c/x] spell [i/u] item [q/w/e/r] +stat [esc] quit"
		if g.bs.Over {
			hint = "[enter] continue"
		}
		g.renderer.RenderBattle(g.bs, g.depth, hint+"   "+g.lastToast)
	case StateGameOver:
		g.renderer.RenderMessage("You have fallen. The dungeon keeps its dead.",
			"[n]ew run   [esc] quit")
	}
}

func (g *Game) handleKey(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		g.running = false
		return
	}
	switch g.state {
	case StateFloor:
		if ev.Key() == tcell.KeyEnter || ev.Rune() == ' ' {
			g.startEncounter(ctx)
		}
	case StateBattle:
		g.handleBattleKey(ctx, ev)
	case StateGameOver:
		if ev.Rune() == 'n' || ev.Rune() == 'N' {
			g.newRun(ctx)
		}
	}
}

func (g *Game) startEncounter(ctx context.Context) {
	enc := g.floor.Encounters[g.encounter]
	bs, err := g.engine.Start(ctx, g.rec, enc.Refs, battle.StartOptions{
		Scaling: g.floor.Scaling(),
	})
	if err != nil {
		g.log.Error("battle start failed", logging.Fields{"error": err.Error()})
		return
	}
	g.bs = bs
	g.state = StateBattle
	g.runEnemyTurns(ctx)
}

func (g *Game) handleBattleKey(ctx context.Context, ev *tcell.EventKey) {
	if g.bs.Over {
		if ev.Key() == tcell.KeyEnter || ev.Rune() == ' ' {
			g.finishBattle(ctx)
		}
		return
	}
	if g.bs.Turn != battle.TurnPlayer {
		return
	}

	var (
		next *battle.State
		err  error
	)
	switch r := ev.Rune(); {
	case r == 'a':
		next, err = g.engine.PlayerAttack(ctx, g.bs, -1)
	case r >= '1' && r <= '9':
		next, err = g.engine.PlayerAttack(ctx, g.bs, int(r-'1'))
	case r == 'c':
		g.cycleSpell()
		return
	case r == 'x':
		if spell := g.selectedSpell(); spell != "" {
			next, err = g.engine.PlayerCast(ctx, g.bs, spell, -1)
		}
	case r == 'i':
		g.cycleItem()
		return
	case r == 'u':
		if item := g.selectedItem(); item != "" {
			next, err = g.engine.PlayerUseItem(ctx, g.bs, item, -1)
		}
	default:
		if attr, ok := allocKeys[r]; ok {
			next, err = g.engine.AllocateStat(ctx, g.bs, attr)
		}
	}
	if next == nil {
		return
	}
	if err != nil {
		g.lastToast = err.Error()
		return
	}
	g.bs = next
	g.runEnemyTurns(ctx)
}

// runEnemyTurns drives the engine through enemy turns until the round
// comes back to the player or the battle ends. A stunned player can hand
// the turn straight back to the enemies, hence the loop.
func (g *Game) runEnemyTurns(ctx context.Context) {
	for !g.bs.Over && g.bs.Turn == battle.TurnEnemy {
		next, err := g.engine.EnemyAct(ctx, g.bs)
		if err != nil {
			g.log.Error("enemy turn failed", logging.Fields{"error": err.Error()})
			return
		}
		g.bs = next
		g.render()
	}
}

func (g *Game) finishBattle(ctx context.Context) {
	if g.bs.Outcome == battle.OutcomeLoss {
		g.state = StateGameOver
		return
	}
	// The battle's working copy of progression becomes canonical.
	g.rec = g.bs.Progress
	if err := g.save(ctx); err != nil {
		g.log.Error("save failed", logging.Fields{"error": err.Error()})
	}
	g.bs = nil
	g.encounter++
	if g.encounter >= len(g.floor.Encounters) {
		g.depth++
		g.encounter = 0
		g.floor = dungeon.GenerateFloor(ctx, g.cat, g.depth, g.rng)
		g.lastToast = "You descend deeper..."
	}
	g.state = StateFloor
}

func (g *Game) newRun(ctx context.Context) {
	g.rec = progress.DefaultRecord(g.cat.Balance)
	g.depth = 1
	g.encounter = 0
	g.floor = dungeon.GenerateFloor(ctx, g.cat, g.depth, g.rng)
	g.bs = nil
	g.lastToast = ""
	g.state = StateFloor
}

func (g *Game) save(ctx context.Context) error {
	if g.rec == nil {
		return nil
	}
	return g.saves.Save(ctx, g.cfg.Slot, g.rec)
}

// cycleSpell advances the spell selection through the known list.
func (g *Game) cycleSpell() {
	known := g.bs.Progress.Spells
	if len(known) == 0 {
		return
	}
	g.spellIdx = (g.spellIdx + 1) % len(known)
	g.lastToast = "Spell: " + g.spellName(known[g.spellIdx])
}

func (g *Game) selectedSpell() string {
	known := g.bs.Progress.Spells
	if len(known) == 0 {
		return ""
	}
	if g.spellIdx >= len(known) {
		g.spellIdx = 0
	}
	return known[g.spellIdx]
}

func (g *Game) spellName(id string) string {
	if def := g.cat.Spells.GetByID(id); def != nil {
		return def.Name
	}
	return id
}

// cycleItem advances the item selection through the consumables held.
func (g *Game) cycleItem() {
	held := g.heldConsumables()
	if len(held) == 0 {
		return
	}
	g.itemIdx = (g.itemIdx + 1) % len(held)
	g.lastToast = "Item: " + g.cat.Items.GetByID(held[g.itemIdx]).Name
}

func (g *Game) selectedItem() string {
	held := g.heldConsumables()
	if len(held) == 0 {
		return ""
	}
	if g.itemIdx >= len(held) {
		g.itemIdx = 0
	}
	return held[g.itemIdx]
}

// heldConsumables lists usable inventory items in catalog order.
func (g *Game) heldConsumables() []string {
	var held []string
	for _, def := range g.cat.Items.All() {
		if def.Consumable() && g.bs.Progress.ItemCount(def.ID) > 0 {
			held = append(held, def.ID)
		}
	}
	return held
}

// =============================================================================
// battle.Notifier implementation
// =============================================================================

// Toast surfaces an engine notification on the hint line.
func (g *Game) Toast(msg string, severity battle.Severity) {
	g.lastToast = msg
	g.log.Info("toast", logging.Fields{"msg": msg, "severity": string(severity)})
}

// Collect logs loot pickups.
func (g *Game) Collect(itemID string, qty int) {
	g.log.Info("collect", logging.Fields{"item": itemID, "qty": qty})
}

// BattleEnd logs the outcome summary.
func (g *Game) BattleEnd(sum battle.Summary) {
	g.log.Info("battle_end", logging.Fields{
		"outcome": sum.Outcome.String(),
		"turns":   sum.TurnCount,
		"exp":     sum.ExpEarned,
	})
}

var _ battle.Notifier = (*Game)(nil)

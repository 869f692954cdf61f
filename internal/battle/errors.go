package battle

import "errors"

// Action errors. Every rejected entry point returns the input state
// unchanged together with one of these sentinels; a caller that ignores
// the error gets a silent no-op, a test can assert the exact reason
// with errors.Is.
var (
	ErrBattleOver      = errors.New("battle is over")
	ErrNotPlayerTurn   = errors.New("not the player's turn")
	ErrNotEnemyTurn    = errors.New("not the enemy turn")
	ErrUnknownSpell    = errors.New("unknown spell")
	ErrSpellOnCooldown = errors.New("spell is on cooldown")
	ErrInsufficientMP  = errors.New("insufficient MP")
	ErrFullHealth      = errors.New("already at full health")
	ErrInvalidTarget   = errors.New("invalid target")
	ErrUnknownItem     = errors.New("unknown item")
	ErrItemOnCooldown  = errors.New("item is on cooldown")
	ErrNoUses          = errors.New("none left in inventory")
	ErrNoUnspentPoints = errors.New("no unspent stat points")
	ErrUnknownStat     = errors.New("unknown stat")
	ErrUnknownEnemy    = errors.New("unknown enemy")
)

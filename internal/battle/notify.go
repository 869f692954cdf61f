package battle

// Severity grades toast notifications for the presentation layer.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

// Summary is the battle-outcome event emitted once when a battle ends.
type Summary struct {
	Outcome   Outcome
	TurnCount int
	ExpEarned int
}

// Notifier receives side-channel events from the engine: user-facing
// toasts, loot pickups, and the end-of-battle summary. None of these are
// required for correctness; they exist for the UI and telemetry.
type Notifier interface {
	Toast(msg string, severity Severity)
	Collect(itemID string, qty int)
	BattleEnd(summary Summary)
}

// NopNotifier discards every event.
type NopNotifier struct{}

func (NopNotifier) Toast(string, Severity) {}
func (NopNotifier) Collect(string, int)    {}
func (NopNotifier) BattleEnd(Summary)      {}

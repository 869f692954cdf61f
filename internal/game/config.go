package game

// Config holds shell configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible floors
	// and crit rolls. A seed of 0 means a random seed will be generated.
	Seed int64

	// SavePath is the SQLite save database; empty keeps progression in
	// memory only.
	SavePath string

	// Slot is the save slot name; defaults to "default".
	Slot string
}

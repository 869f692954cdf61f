// Package store persists player progression between runs. The battle
// engine never touches it; the shell loads a record before a battle and
// saves the state's working copy afterwards.
package store

import (
	"context"

	"github.com/BoredWeaver/TrialRPG-sub000/internal/progress"
)

// Store is the persistence boundary for progression records, keyed by
// save slot. Load reports (nil, false, nil) for a slot that has never
// been saved.
type Store interface {
	Load(ctx context.Context, slot string) (*progress.Record, bool, error)
	Save(ctx context.Context, slot string, rec *progress.Record) error
	Close() error
}

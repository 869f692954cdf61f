package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/sync/singleflight"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BoredWeaver/TrialRPG-sub000/internal/progress"
)

// saveSlot is the single persisted table: one JSON blob per slot.
type saveSlot struct {
	ID        uint   `gorm:"primaryKey"`
	Slot      string `gorm:"uniqueIndex"`
	Data      []byte
	UpdatedAt time.Time
}

// SQLiteStore persists records in a local SQLite database. Writes retry
// with exponential backoff because SQLite surfaces transient "database is
// locked" errors under concurrent file access; reads for the same slot
// are deduped through singleflight.
type SQLiteStore struct {
	db    *gorm.DB
	loads singleflight.Group
}

// OpenSQLite opens (or creates) the database at path and migrates the
// save table.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open save database: %w", err)
	}
	if err := db.AutoMigrate(&saveSlot{}); err != nil {
		return nil, fmt.Errorf("migrate save database: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load reads and decodes the record in the slot. Concurrent loads of the
// same slot share one query.
func (s *SQLiteStore) Load(ctx context.Context, slot string) (*progress.Record, bool, error) {
	v, err, _ := s.loads.Do(slot, func() (any, error) {
		var row saveSlot
		err := s.db.WithContext(ctx).Where("slot = ?", slot).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("load slot %s: %w", slot, err)
		}
		var rec progress.Record
		if err := json.Unmarshal(row.Data, &rec); err != nil {
			return nil, fmt.Errorf("decode slot %s: %w", slot, err)
		}
		return &rec, nil
	})
	if err != nil {
		return nil, false, err
	}
	if v == nil {
		return nil, false, nil
	}
	return v.(*progress.Record), true, nil
}

// Save encodes and upserts the record, retrying transient failures.
func (s *SQLiteStore) Save(ctx context.Context, slot string, rec *progress.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", slot, err)
	}

	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		err := s.db.WithContext(ctx).
			Where(saveSlot{Slot: slot}).
			Assign(map[string]any{"data": data}).
			FirstOrCreate(&saveSlot{Slot: slot, Data: data}).Error
		return struct{}{}, err
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(5),
	)
	if err != nil {
		return fmt.Errorf("save slot %s: %w", slot, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

var _ Store = (*SQLiteStore)(nil)

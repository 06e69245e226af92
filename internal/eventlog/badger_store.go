// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package eventlog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/sitepulse/internal/logging"
	"github.com/tomtom215/sitepulse/internal/models"
)

// Keys are "event:<20-digit sequence>" so that lexical key order equals
// append order. The sequence is leased from BadgerDB in blocks.
const (
	keyPrefix     = "event:"
	sequenceKey   = "meta:event_seq"
	sequenceLease = 1000
)

// BadgerConfig configures the BadgerDB backend.
type BadgerConfig struct {
	// Path is the directory BadgerDB stores its files in. Ignored when InMemory is set.
	Path string

	// InMemory keeps all data in memory (tests only).
	InMemory bool

	// SyncWrites forces fsync after every write.
	SyncWrites bool

	// GCRatio is the discard ratio passed to RunValueLogGC. Default 0.5.
	GCRatio float64
}

// BadgerStore keeps one key per event in BadgerDB.
type BadgerStore struct {
	db      *badger.DB
	seq     *badger.Sequence
	gcRatio float64
	now     func() time.Time

	mu     sync.RWMutex
	closed bool
}

// OpenBadger opens (or creates) the BadgerDB event log.
func OpenBadger(cfg BadgerConfig) (*BadgerStore, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	seq, err := db.GetSequence([]byte(sequenceKey), sequenceLease)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("lease event sequence: %w", err)
	}

	gcRatio := cfg.GCRatio
	if gcRatio <= 0 || gcRatio >= 1 {
		gcRatio = 0.5
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("Event log opened")

	return &BadgerStore{db: db, seq: seq, gcRatio: gcRatio, now: time.Now}, nil
}

func eventKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", keyPrefix, seq))
}

// Append implements Store.
func (s *BadgerStore) Append(ctx context.Context, event *models.AnalyticsEvent) error {
	if event == nil {
		return ErrNilEvent
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	stamp(event, s.now())

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	n, err := s.seq.Next()
	if err != nil {
		return fmt.Errorf("next event sequence: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(eventKey(n), data)
	})
	if err != nil {
		return fmt.Errorf("write to BadgerDB: %w", err)
	}
	return nil
}

// All implements Store.
func (s *BadgerStore) All(ctx context.Context) ([]models.AnalyticsEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	events := make([]models.AnalyticsEvent, 0)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			item := it.Item()
			var event models.AnalyticsEvent
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &event)
			})
			if err != nil {
				logging.Warn().Err(err).Str("key", string(item.Key())).Msg("Skipping undecodable event")
				continue
			}
			events = append(events, event)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

// RunGC reclaims value log space until BadgerDB reports nothing left to rewrite.
func (s *BadgerStore) RunGC() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	for {
		err := s.db.RunValueLogGC(s.gcRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Close implements Store. Closing twice is a no-op.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.seq.Release(); err != nil {
		logging.Warn().Err(err).Msg("Failed to release event sequence")
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	logging.Info().Msg("Event log closed")
	return nil
}

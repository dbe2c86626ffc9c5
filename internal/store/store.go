// Package store is the optional embedded key-value layer backing the plan
// cache, per-IP rate limiting, piece metadata, and usage counters. It is
// built on BadgerDB; every caller treats it as best-effort. A nil or
// unavailable store degrades to cache-free, fail-open behavior, never an
// error surfaced to the client.
package store

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

const (
	planCacheTTL = time.Hour
	pieceTTL     = 24 * time.Hour

	planPrefix  = "mistral:response:"
	piecePrefix = "piece:"
	ratePrefix  = "rate_limit:"
	statsPrefix = "stats:"
)

// Store wraps a Badger database.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the store at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a memory-only store. Used in tests and as a fallback
// when no store directory is writable.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory store: %w", err)
	}
	return &Store{db: db}, nil
}

// Available reports whether the store can serve requests. Safe on nil.
func (s *Store) Available() bool {
	return s != nil && s.db != nil
}

// Close releases the database. Safe on nil.
func (s *Store) Close() error {
	if !s.Available() {
		return nil
	}
	return s.db.Close()
}

func (s *Store) setWithTTL(key string, value []byte, ttl time.Duration) error {
	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), value).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
}

func (s *Store) get(key string) ([]byte, bool) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, false
	}
	return val, true
}

// CachePlan stores a validated advisory plan for one hour.
func (s *Store) CachePlan(mood string, innovation float64, planJSON []byte) bool {
	if !s.Available() {
		return false
	}
	key := planCacheKey(mood, innovation)
	return s.setWithTTL(key, planJSON, planCacheTTL) == nil
}

// CachedPlan retrieves a previously cached advisory plan.
func (s *Store) CachedPlan(mood string, innovation float64) ([]byte, bool) {
	if !s.Available() {
		return nil, false
	}
	return s.get(planCacheKey(mood, innovation))
}

func planCacheKey(mood string, innovation float64) string {
	return planPrefix + mood + ":" + strconv.FormatFloat(innovation, 'g', -1, 64)
}

// PutPiece stores generated-piece metadata for 24 hours.
func (s *Store) PutPiece(id string, metadata []byte) bool {
	if !s.Available() {
		return false
	}
	return s.setWithTTL(piecePrefix+id, metadata, pieceTTL) == nil
}

// GetPiece retrieves piece metadata by ID.
func (s *Store) GetPiece(id string) ([]byte, bool) {
	if !s.Available() {
		return nil, false
	}
	return s.get(piecePrefix + id)
}

// Allow implements fixed-window rate limiting: at most max requests per
// window for the given key. Fails open: an unavailable store or a write
// error allows the request.
func (s *Store) Allow(key string, max int, window time.Duration) bool {
	if !s.Available() {
		return true
	}

	count := int64(1)
	err := s.db.Update(func(txn *badger.Txn) error {
		fullKey := []byte(ratePrefix + key)
		ttl := window

		item, err := txn.Get(fullKey)
		if err == nil {
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			count = decodeCount(val) + 1
			// Keep the original window: reuse the remaining TTL.
			if exp := item.ExpiresAt(); exp > 0 {
				remaining := time.Until(time.Unix(int64(exp), 0))
				if remaining > 0 {
					ttl = remaining
				}
			}
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		entry := badger.NewEntry(fullKey, encodeCount(count)).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return true
	}
	return count <= int64(max)
}

// IncrStat bumps a named usage counter. Best-effort.
func (s *Store) IncrStat(name string) {
	if !s.Available() {
		return
	}
	_ = s.db.Update(func(txn *badger.Txn) error {
		fullKey := []byte(statsPrefix + name)
		count := int64(0)
		if item, err := txn.Get(fullKey); err == nil {
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			count = decodeCount(val)
		}
		return txn.Set(fullKey, encodeCount(count+1))
	})
}

// Stats returns a snapshot of all usage counters.
func (s *Store) Stats() map[string]int64 {
	stats := make(map[string]int64)
	if !s.Available() {
		return stats
	}
	_ = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(statsPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
			item := it.Item()
			name := strings.TrimPrefix(string(item.Key()), statsPrefix)
			val, err := item.ValueCopy(nil)
			if err != nil {
				continue
			}
			stats[name] = decodeCount(val)
		}
		return nil
	})
	return stats
}

func encodeCount(v int64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(v))
	return buf
}

func decodeCount(val []byte) int64 {
	if len(val) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(val))
}

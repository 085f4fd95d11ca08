package statefile

import (
	"context"
	"os"
	"strconv"
	"sync"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/andikarh/parlaybot/internal/domain/fixture"
	"github.com/andikarh/parlaybot/internal/domain/prediction"
	"github.com/andikarh/parlaybot/internal/platform/logging"
)

// SelectionEntry is one chat's persisted confirmed selection.
type SelectionEntry struct {
	Leagues  []int64 `json:"leagues"`
	Fixtures []int64 `json:"fixtures"`
}

// SelectionStore keeps every chat's confirmed selection in a single JSON
// file, rewritten whole on every change. A missing or malformed file reads
// as empty state.
type SelectionStore struct {
	mu     sync.Mutex
	path   string
	logger *logging.Logger
}

func NewSelectionStore(path string, logger *logging.Logger) *SelectionStore {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SelectionStore{path: path, logger: logger}
}

func (s *SelectionStore) SaveSelection(ctx context.Context, chatID int64, leagues []int64, fixtures []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.readAll(ctx)
	entries[chatKey(chatID)] = SelectionEntry{Leagues: leagues, Fixtures: fixtures}
	return s.writeAll(entries)
}

func (s *SelectionStore) ClearSelection(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.readAll(ctx)
	if _, ok := entries[chatKey(chatID)]; !ok {
		return nil
	}
	delete(entries, chatKey(chatID))
	return s.writeAll(entries)
}

// LoadSelection returns the chat's persisted selection, if present.
func (s *SelectionStore) LoadSelection(ctx context.Context, chatID int64) ([]int64, []int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.readAll(ctx)[chatKey(chatID)]
	return entry.Leagues, entry.Fixtures, ok
}

func (s *SelectionStore) readAll(ctx context.Context) map[string]SelectionEntry {
	entries := make(map[string]SelectionEntry)
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WarnContext(ctx, "read selection file", "path", s.path, "error", err)
		}
		return entries
	}
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		s.logger.WarnContext(ctx, "selection file malformed, starting empty", "path", s.path, "error", err)
		return make(map[string]SelectionEntry)
	}
	return entries
}

func (s *SelectionStore) writeAll(entries map[string]SelectionEntry) error {
	raw, err := sonic.Marshal(entries)
	if err != nil {
		return crerr.Wrap(err, "encode selection state")
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return crerr.Wrap(err, "write selection file")
	}
	return nil
}

func chatKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

// CacheEntry holds one calendar day's fixtures and finished prediction
// records.
type CacheEntry struct {
	Fixtures    []fixture.Fixture   `json:"fixtures"`
	Predictions []prediction.Record `json:"predictions"`
}

// CacheStore is the date-keyed daily cache. Keys use the YYYY-MM-DD local
// date; every load evicts keys strictly before today and rewrites the file
// when anything was dropped.
type CacheStore struct {
	mu     sync.Mutex
	path   string
	logger *logging.Logger
}

func NewCacheStore(path string, logger *logging.Logger) *CacheStore {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &CacheStore{path: path, logger: logger}
}

// Lookup returns today's cache entry, if one survived eviction.
func (c *CacheStore) Lookup(ctx context.Context, today string) (CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.load(ctx, today)
	entry, ok := entries[today]
	return entry, ok
}

// Save records today's entry, dropping anything stale in the same write.
func (c *CacheStore) Save(ctx context.Context, today string, entry CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.load(ctx, today)
	entries[today] = entry

	raw, err := sonic.Marshal(entries)
	if err != nil {
		return crerr.Wrap(err, "encode daily cache")
	}
	if err := os.WriteFile(c.path, raw, 0o644); err != nil {
		return crerr.Wrap(err, "write cache file")
	}
	return nil
}

// load reads the cache file and evicts expired keys. The file is rewritten
// immediately when eviction removed anything, so a later crash cannot
// resurrect stale days. Dates compare lexically; the YYYY-MM-DD layout
// makes that equivalent to chronological order.
func (c *CacheStore) load(ctx context.Context, today string) map[string]CacheEntry {
	entries := make(map[string]CacheEntry)
	raw, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.WarnContext(ctx, "read cache file", "path", c.path, "error", err)
		}
		return entries
	}
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		c.logger.WarnContext(ctx, "cache file malformed, starting empty", "path", c.path, "error", err)
		return make(map[string]CacheEntry)
	}

	evicted := false
	for key := range entries {
		if key < today {
			delete(entries, key)
			evicted = true
		}
	}
	if evicted {
		if raw, err := sonic.Marshal(entries); err == nil {
			if err := os.WriteFile(c.path, raw, 0o644); err != nil {
				c.logger.WarnContext(ctx, "rewrite cache after eviction", "path", c.path, "error", err)
			}
		}
	}
	return entries
}

package internal

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal/types"
)

const cacheFileName = "derivations.gob"

// CacheEntry is one stored derivation.
type CacheEntry struct {
	Result       *types.Result
	CreatedAt    time.Time
	LastAccessed time.Time
}

// Cache persists finished derivations keyed by the input expression.
// Derivations are deterministic, so an entry stays valid until it
// expires or the cache is invalidated.
type Cache struct {
	cacheDir string
	entries  map[string]CacheEntry
	mutex    sync.RWMutex
	maxAge   time.Duration
}

// NewCache opens the cache stored under cacheDir, creating the
// directory when needed.
func NewCache(cacheDir string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		cacheDir: cacheDir,
		entries:  make(map[string]CacheEntry),
	}

	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}

	return cache, nil
}

func (c *Cache) load() error {
	cacheFile := filepath.Join(c.cacheDir, cacheFileName)
	file, err := os.Open(cacheFile)
	if os.IsNotExist(err) {
		return nil // cache file doesn't exist yet. This is fine.
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&c.entries); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}

	return nil
}

func (c *Cache) save() error {
	cacheFile := filepath.Join(c.cacheDir, cacheFileName)
	file, err := os.Create(cacheFile)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}

	return nil
}

// Set stores the derivation for the given input expression.
func (c *Cache) Set(input string, result *types.Result) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	c.entries[cacheKey(input)] = CacheEntry{
		Result:       result,
		CreatedAt:    now,
		LastAccessed: now,
	}

	return c.save()
}

// Get returns the stored derivation for the given input expression.
func (c *Cache) Get(input string) (*types.Result, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	key := cacheKey(input)
	entry, exists := c.entries[key]
	if !exists {
		return nil, false
	}

	if c.isEntryExpired(entry) {
		delete(c.entries, key)
		return nil, false
	}

	entry.LastAccessed = time.Now()
	c.entries[key] = entry

	return entry.Result, true
}

func (c *Cache) isEntryExpired(entry CacheEntry) bool {
	return c.maxAge > 0 && time.Since(entry.CreatedAt) > c.maxAge
}

// SetMaxAge bounds how long entries stay valid. Zero or a negative
// duration keeps entries until InvalidateAll.
func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = duration
}

// Len reports the number of stored derivations.
func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}

// InvalidateAll drops every stored derivation.
func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]CacheEntry)
	_ = c.save() // ignore error as this is a manual operation
}

func cacheKey(input string) string {
	return strings.TrimSpace(input)
}

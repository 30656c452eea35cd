package speech

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/hammamikhairi/redchef/internal/logger"
)

// AudioCache keeps synthesized audio in memory and, optionally, on disk.
// Keys are sha256(voice + ":" + text), so switching voices misses until
// switched back.
//
// The disk directory is always read when set; new entries are written
// to it only when diskWrite is true. Narrations of a recipe cooked in a
// previous run start instantly.
type AudioCache struct {
	mu        sync.RWMutex
	entries   map[string][]byte
	log       *logger.Logger
	voice     string
	dir       string
	diskWrite bool
	stats     CacheStats
}

// CacheStats counts lookups.
type CacheStats struct {
	Hits   int64
	Misses int64
}

// NewAudioCache creates a cache for the given voice. An empty dir keeps
// everything in memory.
func NewAudioCache(voice, dir string, diskWrite bool, log *logger.Logger) *AudioCache {
	c := &AudioCache{
		entries:   make(map[string][]byte),
		log:       log,
		voice:     voice,
		dir:       dir,
		diskWrite: diskWrite,
	}
	if dir != "" && diskWrite {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Error("cache: create %s: %v", dir, err)
		}
	}
	return c
}

// Get returns cached audio for text. Disk hits are promoted to memory.
func (c *AudioCache) Get(text string) ([]byte, bool) {
	key := c.key(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if data, ok := c.entries[key]; ok {
		c.stats.Hits++
		return data, true
	}
	if c.dir != "" {
		if data, err := os.ReadFile(c.path(key)); err == nil {
			c.entries[key] = data
			c.stats.Hits++
			c.log.Debug("cache: disk hit %s", key[:12])
			return data, true
		}
	}
	c.stats.Misses++
	return nil, false
}

// Put stores audio for text in memory and, if enabled, on disk.
func (c *AudioCache) Put(text string, audio []byte) {
	key := c.key(text)

	c.mu.Lock()
	c.entries[key] = audio
	c.mu.Unlock()

	if c.dir == "" || !c.diskWrite {
		return
	}
	if err := os.WriteFile(c.path(key), audio, 0o644); err != nil {
		c.log.Error("cache: write %s: %v", key[:12], err)
	}
}

// Has reports whether text is cached without touching the stats.
func (c *AudioCache) Has(text string) bool {
	key := c.key(text)
	c.mu.RLock()
	_, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return true
	}
	if c.dir == "" {
		return false
	}
	_, err := os.Stat(c.path(key))
	return err == nil
}

// Stats returns a copy of the lookup counters.
func (c *AudioCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

func (c *AudioCache) key(text string) string {
	h := sha256.Sum256([]byte(c.voice + ":" + text))
	return hex.EncodeToString(h[:])
}

func (c *AudioCache) path(key string) string {
	return filepath.Join(c.dir, key+".wav")
}

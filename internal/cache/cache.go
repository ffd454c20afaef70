// Package cache tracks which Gmail messages have already been analyzed so
// repeated runs do not re-categorize (and re-bill) the same alerts. The state
// survives between runs in a small JSON file.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// Cache is a file-backed set of processed message IDs with retention-based
// pruning. Safe for concurrent use.
type Cache struct {
	mu        sync.RWMutex
	path      string
	processed map[string]time.Time
	retention time.Duration
}

type state struct {
	Processed map[string]time.Time `json:"processed"`
}

// Load reads the cache state from path, starting empty when the file does not
// exist yet. Entries older than retention are pruned on load; a retention of
// zero keeps everything.
func Load(path string, retention time.Duration) (*Cache, error) {
	c := &Cache{
		path:      path,
		processed: make(map[string]time.Time),
		retention: retention,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file %s: %w", path, err)
	}

	var s state
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("corrupt state file %s: %w", path, err)
	}
	if s.Processed != nil {
		c.processed = s.Processed
	}

	c.prune()
	return c, nil
}

// HasProcessed reports whether a message ID was already analyzed.
func (c *Cache) HasProcessed(messageID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.processed[messageID]
	return ok
}

// MarkProcessed records a message ID as analyzed.
func (c *Cache) MarkProcessed(messageID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.processed[messageID] = time.Now()
}

// Len returns the number of tracked message IDs.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.processed)
}

// Save writes the state back to disk.
func (c *Cache) Save() error {
	c.mu.Lock()
	c.pruneLocked()
	data, err := json.MarshalIndent(state{Processed: c.processed}, "", "  ")
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", c.path, err)
	}
	return nil
}

func (c *Cache) prune() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked()
}

func (c *Cache) pruneLocked() {
	if c.retention <= 0 {
		return
	}

	cutoff := time.Now().Add(-c.retention)
	for id, at := range c.processed {
		if at.Before(cutoff) {
			delete(c.processed, id)
		}
	}
}

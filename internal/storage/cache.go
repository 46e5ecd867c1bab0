package storage

import (
	"sync"
	"time"

	"github.com/lagsuite/ghosthq/internal/models"
)

// Cache holds recently scanned project structures so bursts of dashboard
// requests don't rescan the same tree. Entries are short-lived and every
// mutation (and any watcher event) invalidates eagerly, so the structure
// endpoint stays a read-through projection rather than a stored entity.
type Cache struct {
	mu         sync.RWMutex
	structures map[string]cacheEntry
	ttl        time.Duration
}

type cacheEntry struct {
	structure *models.ProjectStructure
	expires   time.Time
}

// NewCache initializes a structure cache with the given entry lifetime.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &Cache{
		structures: make(map[string]cacheEntry),
		ttl:        ttl,
	}
}

// Get returns the cached structure for a project directory, if fresh.
func (c *Cache) Get(projectAbs string) (*models.ProjectStructure, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.structures[projectAbs]
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.structure, true
}

// Set caches a freshly scanned structure.
func (c *Cache) Set(projectAbs string, s *models.ProjectStructure) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.structures[projectAbs] = cacheEntry{structure: s, expires: time.Now().Add(c.ttl)}
}

// Invalidate drops the cached structure for one project.
func (c *Cache) Invalidate(projectAbs string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.structures, projectAbs)
}

// InvalidateAll clears the entire cache.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.structures = make(map[string]cacheEntry)
}

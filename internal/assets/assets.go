// Package assets loads and caches decoded images by path.
package assets

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Faultbox/pagesketch/internal/engine/texture"
	"github.com/Faultbox/pagesketch/internal/logger"
)

// Manager decodes images once per path. Concurrent requests for the same
// path share one decode.
type Manager struct {
	cache  *Cache
	group  singleflight.Group
	decode func(path string) (*texture.Image, error)
	log    *zap.Logger
}

// NewManager creates a manager that decodes with texture.Load.
func NewManager() *Manager {
	return &Manager{
		cache:  NewCache(),
		decode: texture.Load,
		log:    logger.Named("assets"),
	}
}

// Load returns the decoded image at path, from cache when possible.
func (m *Manager) Load(path string) (*texture.Image, error) {
	if img, ok := m.cache.Get(path); ok {
		return img, nil
	}

	v, err, shared := m.group.Do(path, func() (any, error) {
		img, err := m.decode(path)
		if err != nil {
			return nil, err
		}
		m.cache.Set(path, img)
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	m.log.Debug("image decoded", zap.String("path", path), zap.Bool("shared", shared))
	return v.(*texture.Image), nil
}

// Cache returns the manager's cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Cache is an in-memory map of decoded images.
type Cache struct {
	data map[string]*texture.Image
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*texture.Image),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (*texture.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	img, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return img, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, img *texture.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = img
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear empties the cache and resets its statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*texture.Image)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

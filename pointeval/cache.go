package pointeval

import (
	"sync"

	"github.com/jychang48/firedrake/fespace"
)

type cacheKey struct {
	meshID, spaceID uint64
}

/*
Cache holds Evaluators keyed by (mesh serial, space serial). The ids are
process-unique and never reused, so a stale entry can only ever miss, not
alias newer state. There is no implicit invalidation: whoever mutates mesh
geometry owns the cache and calls Invalidate. Rebuilding on every query
would swamp the query cost for large meshes, which is the whole reason the
cache exists.
*/
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]*Evaluator
}

func NewCache() (c *Cache) {
	c = &Cache{
		entries: make(map[cacheKey]*Evaluator),
	}
	return
}

// Evaluator returns the cached Evaluator for fs, building and storing one
// on first use. Concurrent first calls may build twice; one rendition wins
// and both are valid.
func (c *Cache) Evaluator(fs *fespace.FunctionSpace) (ev *Evaluator) {
	var (
		key = cacheKey{meshID: fs.Msh.ID, spaceID: fs.ID}
		ok  bool
	)
	c.mu.RLock()
	ev, ok = c.entries[key]
	c.mu.RUnlock()
	if ok {
		return
	}
	ev = NewEvaluator(fs)
	c.mu.Lock()
	if prior, exists := c.entries[key]; exists {
		ev = prior
	} else {
		c.entries[key] = ev
	}
	c.mu.Unlock()
	return
}

// Invalidate drops the entry for fs, forcing the next query to rebuild
func (c *Cache) Invalidate(fs *fespace.FunctionSpace) {
	c.mu.Lock()
	delete(c.entries, cacheKey{meshID: fs.Msh.ID, spaceID: fs.ID})
	c.mu.Unlock()
}

// InvalidateAll empties the cache
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[cacheKey]*Evaluator)
	c.mu.Unlock()
}

// Len reports the number of cached evaluators
func (c *Cache) Len() (n int) {
	c.mu.RLock()
	n = len(c.entries)
	c.mu.RUnlock()
	return
}

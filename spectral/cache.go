package spectral

import "sync"

type cacheKey struct {
	alpha, beta float64
	n           int
}

// CoefficientCache maps (α, β, N) to a published, immutable Recurrence.
// Entries are never invalidated. It is owned by one Evaluator.
type CoefficientCache struct {
	mu     sync.RWMutex
	tables map[cacheKey]*Recurrence
}

func NewCoefficientCache() *CoefficientCache {
	return &CoefficientCache{
		tables: make(map[cacheKey]*Recurrence),
	}
}

// Get returns the cached recurrence for (jp, N), building it on a miss.
// Concurrent misses on one key may each build a table, only the first one
// published is ever returned.
func (c *CoefficientCache) Get(jp JacobiParameters, N int) (rec *Recurrence, err error) {
	var (
		key = cacheKey{jp.Alpha, jp.Beta, N}
		ok  bool
	)
	c.mu.RLock()
	rec, ok = c.tables[key]
	c.mu.RUnlock()
	if ok {
		return
	}
	if rec, err = NewRecurrence(jp, N); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if published, ok := c.tables[key]; ok {
		return published, nil
	}
	c.tables[key] = rec
	return
}

func (c *CoefficientCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}

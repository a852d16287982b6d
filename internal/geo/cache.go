package geo

import "sync"

// SuggestionCache memoizes suggestion lists by exact query string so that
// retyping the same prefix within a session skips the network round trip.
// It is unbounded and never invalidated; it lives only as long as the
// process.
type SuggestionCache struct {
	mu   sync.RWMutex
	data map[string][]Place
}

func NewSuggestionCache() *SuggestionCache {
	return &SuggestionCache{
		data: make(map[string][]Place),
	}
}

// Get returns the cached list for an exact query string.
func (c *SuggestionCache) Get(query string) ([]Place, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list, ok := c.data[query]
	return list, ok
}

// Put records the list last returned for a query, replacing any previous
// entry for the same exact string.
func (c *SuggestionCache) Put(query string, list []Place) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[query] = list
}

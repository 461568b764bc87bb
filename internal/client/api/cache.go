package api

import "sync"

// tagCache holds raw response bodies keyed by resource tag and request key.
// Mutations call Invalidate with the resource's tag, which drops every entry
// under it so the next read refetches; there are no direct cache writes from
// mutations and no optimistic updates.
type tagCache struct {
	mu      sync.Mutex
	entries map[string]map[string][]byte
}

func (c *tagCache) get(tag, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	byKey, ok := c.entries[tag]
	if !ok {
		return nil, false
	}
	b, ok := byKey[key]
	return b, ok
}

func (c *tagCache) put(tag, key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string]map[string][]byte)
	}
	if c.entries[tag] == nil {
		c.entries[tag] = make(map[string][]byte)
	}
	c.entries[tag][key] = body
}

func (c *tagCache) invalidate(tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, tag)
}

// Invalidate drops all cached queries tagged with the resource, forcing the
// next list or detail read to hit the backend.
func (c *Client) Invalidate(res Resource) {
	c.cache.invalidate(res.Tag)
}

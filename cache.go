package possibletypes

import (
	"sync"
)

// typeCache maps the name of a concrete type to the names of the abstract types it
// satisfies. It only ever grows: entries are never evicted and an existing entry is
// never replaced, so an incomplete response can't erase what an earlier one taught us.
type typeCache struct {
	types map[string][]string
	// every check-then-insert happens under the write lock
	mutex sync.RWMutex
}

func newTypeCache() *typeCache {
	return &typeCache{
		types: map[string][]string{},
	}
}

// has returns whether or not the type is a key in the cache
func (c *typeCache) has(name string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	_, ok := c.types[name]
	return ok
}

// unknown returns the names that are not keys of the cache, preserving their order
func (c *typeCache) unknown(names []string) []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	missing := []string{}
	for _, name := range names {
		if _, ok := c.types[name]; !ok {
			missing = append(missing, name)
		}
	}

	return missing
}

// satisfies returns true if we know that the concrete type satisfies the abstract one
func (c *typeCache) satisfies(concrete string, abstract string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	for _, name := range c.types[concrete] {
		if name == abstract {
			return true
		}
	}

	return false
}

// setIfAbsent records the abstract types of a concrete type unless the concrete type is
// already known. It returns true if the entry was written.
func (c *typeCache) setIfAbsent(concrete string, abstracts []string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.types[concrete]; ok {
		return false
	}

	entry := make([]string, 0, len(abstracts))
	for _, name := range abstracts {
		if !contains(entry, name) {
			entry = append(entry, name)
		}
	}
	c.types[concrete] = entry

	return true
}

// ensure creates an empty entry for the type if there isn't one. It returns true if the
// entry was created.
func (c *typeCache) ensure(name string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.types[name]; ok {
		return false
	}
	c.types[name] = []string{}

	return true
}

// addPossibleType records that the concrete type satisfies the abstract one, creating the
// entry for the concrete type if necessary. It returns true if the abstract type was added.
func (c *typeCache) addPossibleType(concrete string, abstract string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry := c.types[concrete]
	if entry == nil {
		entry = []string{}
	}

	if contains(entry, abstract) {
		c.types[concrete] = entry
		return false
	}

	c.types[concrete] = append(entry, abstract)
	return true
}

// snapshot returns a deep copy of the cache contents
func (c *typeCache) snapshot() map[string][]string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	result := make(map[string][]string, len(c.types))
	for concrete, abstracts := range c.types {
		result[concrete] = append([]string{}, abstracts...)
	}

	return result
}

func contains(list []string, target string) bool {
	for _, name := range list {
		if name == target {
			return true
		}
	}

	return false
}

package assets

import (
	"container/list"
	"sync"
)

// Entry is a cached file.
type Entry struct {
	Data []byte
	Sum  uint64
}

type cacheItem struct {
	key   string
	entry Entry
}

// Cache is a byte-budgeted LRU of file contents.
type Cache struct {
	budget int64
	size   int64
	items  map[string]*list.Element
	order  *list.List // front is most recent
	mu     sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a cache holding at most budget bytes. A budget of zero
// disables caching.
func NewCache(budget int64) *Cache {
	return &Cache{
		budget: budget,
		items:  make(map[string]*list.Element),
		order:  list.New(),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.misses++
		return Entry{}, false
	}
	c.hits++
	c.order.MoveToFront(el)
	return el.Value.(*cacheItem).entry, true
}

// Set stores an item, evicting least recently used entries to stay in
// budget. Items larger than the whole budget are not cached.
func (c *Cache) Set(key string, data []byte, sum uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := int64(len(data))
	if n > c.budget {
		return
	}
	if el, ok := c.items[key]; ok {
		c.remove(el)
	}
	for c.size+n > c.budget {
		c.remove(c.order.Back())
	}
	c.items[key] = c.order.PushFront(&cacheItem{key: key, entry: Entry{Data: data, Sum: sum}})
	c.size += n
}

func (c *Cache) remove(el *list.Element) {
	item := c.order.Remove(el).(*cacheItem)
	delete(c.items, item.key)
	c.size -= int64(len(item.entry.Data))
}

// Len returns the number of cached items.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Size returns the cached byte total.
func (c *Cache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.order.Init()
	c.size = 0
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

package embed

import (
	"container/list"
	"time"
)

const (
	maxCacheEntries   = 100
	maxCacheSizeBytes = 50 * 1024 * 1024
)

type cacheEntry struct {
	path     string
	mtime    time.Time
	expanded string
}

// expansionCache is an LRU over expanded note markdown, keyed by absolute
// path and validated by mtime. Bounded both by entry count and total bytes.
type expansionCache struct {
	evictList *list.List
	items     map[string]*list.Element
	sizeBytes int
}

func newExpansionCache() *expansionCache {
	return &expansionCache{
		evictList: list.New(),
		items:     make(map[string]*list.Element),
	}
}

// get returns the cached expansion when present and still current for the
// given mtime. A stale entry counts as a miss and is left for eviction.
func (c *expansionCache) get(path string, mtime time.Time) (string, bool) {
	ele, hit := c.items[path]
	if !hit {
		return "", false
	}
	entry := ele.Value.(*cacheEntry)
	if !entry.mtime.Equal(mtime) {
		return "", false
	}
	c.evictList.MoveToFront(ele)
	return entry.expanded, true
}

func (c *expansionCache) put(path string, mtime time.Time, expanded string) {
	if ele, hit := c.items[path]; hit {
		entry := ele.Value.(*cacheEntry)
		c.sizeBytes -= len(entry.expanded)
		entry.mtime = mtime
		entry.expanded = expanded
		c.sizeBytes += len(expanded)
		c.evictList.MoveToFront(ele)
	} else {
		ele := c.evictList.PushFront(&cacheEntry{path: path, mtime: mtime, expanded: expanded})
		c.items[path] = ele
		c.sizeBytes += len(expanded)
	}

	for (c.evictList.Len() > maxCacheEntries || c.sizeBytes > maxCacheSizeBytes) &&
		c.evictList.Len() > 1 {
		c.removeOldest()
	}
}

func (c *expansionCache) removeOldest() {
	ele := c.evictList.Back()
	if ele == nil {
		return
	}
	entry := ele.Value.(*cacheEntry)
	c.evictList.Remove(ele)
	delete(c.items, entry.path)
	c.sizeBytes -= len(entry.expanded)
}

func (c *expansionCache) len() int {
	return c.evictList.Len()
}

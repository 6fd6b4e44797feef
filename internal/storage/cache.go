/*
MIT License

Copyright (c) 2025 Yuval Adar <adary@adary.org>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package storage

import (
	"container/list"
	"sync"
	"time"
)

// BackupCache keeps the snapshot listing of one file in memory and holds
// recently viewed snapshot contents with LRU eviction.
type BackupCache struct {
	storage *Storage
	path    string

	metaItems   []BackupMeta
	lastRefresh time.Time

	contentList *list.List
	contentMap  map[string]*list.Element
	maxContent  int

	mu sync.RWMutex
}

type contentEntry struct {
	id      string
	content string
}

func NewBackupCache(storage *Storage, path string, maxContent int) *BackupCache {
	if maxContent <= 0 {
		maxContent = 8
	}

	cache := &BackupCache{
		storage:     storage,
		path:        path,
		contentList: list.New(),
		contentMap:  make(map[string]*list.Element),
		maxContent:  maxContent,
	}
	cache.Refresh()

	return cache
}

// Refresh reloads the snapshot listing from storage.
func (c *BackupCache) Refresh() {
	items := c.storage.List(c.path)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.metaItems = items
	c.lastRefresh = time.Now()
}

// Items returns a copy of the cached listing, newest first.
func (c *BackupCache) Items() []BackupMeta {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]BackupMeta, len(c.metaItems))
	copy(result, c.metaItems)
	return result
}

func (c *BackupCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.metaItems)
}

// Content returns the snapshot text for id, loading it on a miss.
func (c *BackupCache) Content(id string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.contentMap[id]; ok {
		c.contentList.MoveToFront(elem)
		return elem.Value.(*contentEntry).content, nil
	}

	b, err := c.storage.Get(id)
	if err != nil {
		return "", err
	}
	c.put(id, b.Content)
	return b.Content, nil
}

func (c *BackupCache) put(id, content string) {
	elem := c.contentList.PushFront(&contentEntry{id: id, content: content})
	c.contentMap[id] = elem

	for c.contentList.Len() > c.maxContent {
		oldest := c.contentList.Back()
		c.contentList.Remove(oldest)
		delete(c.contentMap, oldest.Value.(*contentEntry).id)
	}
}

// Evict drops cached content for id, e.g. after the snapshot was deleted.
func (c *BackupCache) Evict(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.contentMap[id]; ok {
		c.contentList.Remove(elem)
		delete(c.contentMap, id)
	}
}

func (c *BackupCache) cached(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.contentMap[id]
	return ok
}

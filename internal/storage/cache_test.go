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
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestNewBackupCache(t *testing.T) {
	storage, _ := createTestStorage(t)
	storage.Add("/a", "one", "")
	storage.Add("/a", "two", "")
	storage.Add("/b", "other", "")

	cache := NewBackupCache(storage, "/a", 2)
	if cache.Len() != 2 {
		t.Errorf("Expected 2 items, got %d", cache.Len())
	}
	if cache.maxContent != 2 {
		t.Errorf("Expected maxContent 2, got %d", cache.maxContent)
	}

	if NewBackupCache(storage, "/a", 0).maxContent != 8 {
		t.Error("Expected default maxContent for non-positive size")
	}
}

func TestBackupCache_Content(t *testing.T) {
	storage, _ := createTestStorage(t)
	id, _ := storage.Add("/a", "snapshot", "")

	cache := NewBackupCache(storage, "/a", 2)
	content, err := cache.Content(id)
	if err != nil {
		t.Fatalf("Content failed: %v", err)
	}
	if content != "snapshot" {
		t.Errorf("Expected 'snapshot', got '%s'", content)
	}
	if !cache.cached(id) {
		t.Error("Expected content to be cached after load")
	}

	// Served from cache even after the row is gone
	storage.Delete(id)
	if content, err := cache.Content(id); err != nil || content != "snapshot" {
		t.Errorf("Expected cached content, got %q, %v", content, err)
	}

	cache.Evict(id)
	if _, err := cache.Content(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after evict, got %v", err)
	}
}

func TestBackupCache_LRUEviction(t *testing.T) {
	storage, _ := createTestStorage(t)

	var ids []string
	for i := 0; i < 3; i++ {
		id, _ := storage.Add("/a", fmt.Sprintf("content %d", i), "")
		ids = append(ids, id)
	}

	cache := NewBackupCache(storage, "/a", 2)
	cache.Content(ids[0])
	cache.Content(ids[1])
	cache.Content(ids[0])
	cache.Content(ids[2])

	if !cache.cached(ids[0]) {
		t.Error("Expected recently used entry to stay cached")
	}
	if cache.cached(ids[1]) {
		t.Error("Expected least recently used entry to be evicted")
	}
	if !cache.cached(ids[2]) {
		t.Error("Expected newest entry to be cached")
	}
}

func TestBackupCache_Refresh(t *testing.T) {
	storage, _ := createTestStorage(t)
	cache := NewBackupCache(storage, "/a", 2)

	if cache.Len() != 0 {
		t.Fatalf("Expected empty cache, got %d", cache.Len())
	}

	storage.Add("/a", "new", "")
	if cache.Len() != 0 {
		t.Error("Expected listing to stay stale until Refresh")
	}

	cache.Refresh()
	items := cache.Items()
	if len(items) != 1 {
		t.Fatalf("Expected 1 item after refresh, got %d", len(items))
	}

	items[0].Note = "modified"
	if cache.Items()[0].Note == "modified" {
		t.Error("Items should return a copy")
	}
}

func TestBackupCache_ConcurrentAccess(t *testing.T) {
	storage, _ := createTestStorage(t)
	id, _ := storage.Add("/a", "content", "")
	cache := NewBackupCache(storage, "/a", 2)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.Content(id)
			cache.Items()
			cache.Len()
		}()
	}
	wg.Wait()

	if !cache.cached(id) {
		t.Error("Expected content to be cached")
	}
}

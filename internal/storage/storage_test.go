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
	"os"
	"path/filepath"
	"testing"
)

func createTestStorage(t *testing.T) (*Storage, string) {
	tmpDir := t.TempDir()

	storage, err := New(filepath.Join(tmpDir, "grubtamer", "backups.db"), 3)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	t.Cleanup(func() {
		storage.Close()
	})

	return storage, tmpDir
}

func TestNew(t *testing.T) {
	storage, tmpDir := createTestStorage(t)

	if storage.maxEntries != 3 {
		t.Errorf("Expected maxEntries to be 3, got %d", storage.maxEntries)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, "grubtamer", "backups.db")); err != nil {
		t.Errorf("Expected database file to be created: %v", err)
	}
}

func TestNewDefaultPath(t *testing.T) {
	tmpDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	t.Cleanup(func() {
		os.Setenv("HOME", originalHome)
	})

	storage, err := New("", 0)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer storage.Close()

	if storage.maxEntries != 50 {
		t.Errorf("Expected default maxEntries 50, got %d", storage.maxEntries)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, ".config", "grubtamer", "backups.db")); err != nil {
		t.Errorf("Expected database under HOME: %v", err)
	}
}

func TestAddAndGet(t *testing.T) {
	storage, _ := createTestStorage(t)

	id, err := storage.Add("/boot/grub/themes/GrubTamer/theme.txt", "title-text: \"A\"\n", "before save")
	if err != nil {
		t.Fatalf("Failed to add backup: %v", err)
	}

	b, err := storage.Get(id)
	if err != nil {
		t.Fatalf("Failed to get backup: %v", err)
	}
	if b.Content != "title-text: \"A\"\n" {
		t.Errorf("Unexpected content: %q", b.Content)
	}
	if b.Note != "before save" {
		t.Errorf("Expected note 'before save', got '%s'", b.Note)
	}
	if b.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

func TestAddEmptyPath(t *testing.T) {
	storage, _ := createTestStorage(t)

	if _, err := storage.Add("", "x", ""); err == nil {
		t.Error("Expected error for empty path")
	}
}

func TestAddDuplicateContent(t *testing.T) {
	storage, _ := createTestStorage(t)

	first, err := storage.Add("/etc/default/grub", "GRUB_TIMEOUT=5\n", "one")
	if err != nil {
		t.Fatalf("Failed to add backup: %v", err)
	}
	second, err := storage.Add("/etc/default/grub", "GRUB_TIMEOUT=5\n", "two")
	if err != nil {
		t.Fatalf("Failed to add duplicate backup: %v", err)
	}

	if first != second {
		t.Errorf("Expected duplicate to reuse id %s, got %s", first, second)
	}
	if count := storage.Count("/etc/default/grub"); count != 1 {
		t.Errorf("Expected 1 backup, got %d", count)
	}

	b, _ := storage.Get(first)
	if b.Note != "two" {
		t.Errorf("Expected note to be refreshed, got '%s'", b.Note)
	}
}

func TestMaxEntriesPerPath(t *testing.T) {
	storage, _ := createTestStorage(t)

	for i := 0; i < 5; i++ {
		if _, err := storage.Add("/a", fmt.Sprintf("content %d", i), ""); err != nil {
			t.Fatalf("Failed to add backup %d: %v", i, err)
		}
	}
	if _, err := storage.Add("/b", "other", ""); err != nil {
		t.Fatalf("Failed to add backup: %v", err)
	}

	if count := storage.Count("/a"); count != 3 {
		t.Errorf("Expected 3 backups of /a, got %d", count)
	}
	if count := storage.Count("/b"); count != 1 {
		t.Errorf("Expected 1 backup of /b, got %d", count)
	}
	if count := storage.Count(""); count != 4 {
		t.Errorf("Expected 4 backups total, got %d", count)
	}

	latest, err := storage.Latest("/a")
	if err != nil {
		t.Fatalf("Failed to get latest: %v", err)
	}
	if latest.Content != "content 4" {
		t.Errorf("Expected newest content 'content 4', got '%s'", latest.Content)
	}
}

func TestListOrdering(t *testing.T) {
	storage, _ := createTestStorage(t)

	storage.Add("/a", "first", "")
	storage.Add("/a", "second", "")
	storage.Add("/b", "third", "")

	items := storage.List("/a")
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}

	first, _ := storage.Get(items[0].ID)
	if first.Content != "second" {
		t.Errorf("Expected newest first, got '%s'", first.Content)
	}
	if items[0].Size != len("second") {
		t.Errorf("Expected size %d, got %d", len("second"), items[0].Size)
	}

	if all := storage.List(""); len(all) != 3 {
		t.Errorf("Expected 3 items across paths, got %d", len(all))
	}
}

func TestGetNotFound(t *testing.T) {
	storage, _ := createTestStorage(t)

	if _, err := storage.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := storage.Latest("/nothing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	storage, _ := createTestStorage(t)

	id, _ := storage.Add("/a", "content", "")
	if err := storage.Delete(id); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if _, err := storage.Get(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected deleted backup to be gone, got %v", err)
	}
	if err := storage.Delete(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestClose(t *testing.T) {
	storage, err := New(filepath.Join(t.TempDir(), "backups.db"), 5)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	if err := storage.Close(); err != nil {
		t.Errorf("Close returned error: %v", err)
	}
}

package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStorePutAndGet(t *testing.T) {
	store := openTestStore(t)

	if _, found, err := store.Get("missing"); err != nil || found {
		t.Fatalf("Expected missing key, got found=%v err=%v", found, err)
	}

	if err := store.Put("achievements_0", `{"unlocked":{}}`); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	value, found, err := store.Get("achievements_0")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !found {
		t.Fatal("Expected key to be found")
	}
	if value != `{"unlocked":{}}` {
		t.Errorf("Unexpected value: %s", value)
	}
}

func TestStorePutOverwrites(t *testing.T) {
	store := openTestStore(t)

	store.Put("k", "one")
	store.Put("k", "two")

	value, _, _ := store.Get("k")
	if value != "two" {
		t.Errorf("Expected overwritten value 'two', got %q", value)
	}
}

func TestStoreDelete(t *testing.T) {
	store := openTestStore(t)

	store.Put("k", "v")
	if err := store.Delete("k"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, found, _ := store.Get("k"); found {
		t.Error("Expected key to be deleted")
	}

	// Deleting again is fine
	if err := store.Delete("k"); err != nil {
		t.Errorf("Delete() of missing key failed: %v", err)
	}
}

func TestStoreKeys(t *testing.T) {
	store := openTestStore(t)

	store.Put("achievements_1", "b")
	store.Put("achievements_0", "a")
	store.Put("meta_progression", "m")

	keys, err := store.Keys("achievements_")
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("Expected 2 keys, got %d: %v", len(keys), keys)
	}
	if keys[0] != "achievements_0" || keys[1] != "achievements_1" {
		t.Errorf("Keys not in expected order: %v", keys)
	}
}

func TestStoreInMemory(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer store.Close()

	store.Put("k", "v")
	if value, found, _ := store.Get("k"); !found || value != "v" {
		t.Errorf("Expected in-memory value to persist, got %q found=%v", value, found)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.Put("meta_progression", `{"totalCoreShards":5}`)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	value, found, _ := store.Get("meta_progression")
	if !found || value != `{"totalCoreShards":5}` {
		t.Errorf("Expected value to survive reopen, got %q", value)
	}
}

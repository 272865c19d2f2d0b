package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/dungeon-progress/internal/storage"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestCommandErrorsAreReturned(t *testing.T) {
	db := filepath.Join(t.TempDir(), "progress.db")

	err := execute(t, "--db", db, "buy", "nope")
	if err == nil || !strings.Contains(err.Error(), "unknown perk") {
		t.Errorf("Expected unknown perk error, got %v", err)
	}

	err = execute(t, "--db", db, "profile", "delete", "9", "--yes")
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("Expected out of range error, got %v", err)
	}

	err = execute(t, "--db", db, "profile", "delete", "x", "--yes")
	if err == nil || !strings.Contains(err.Error(), "invalid profile index") {
		t.Errorf("Expected invalid index error, got %v", err)
	}
}

func TestProfileListReadsSavedSlots(t *testing.T) {
	db := filepath.Join(t.TempDir(), "progress.db")
	st, err := storage.Open(db)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := st.Put("achievements_1", `{"unlocked":{"first_kill":1}}`); err != nil {
		t.Fatal(err)
	}
	st.Close()

	if err := execute(t, "--db", db, "profile", "list"); err != nil {
		t.Errorf("Expected profile list to succeed, got %v", err)
	}
}

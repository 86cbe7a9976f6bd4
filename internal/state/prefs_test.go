package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFile(t *testing.T) {
	prefs := Load(t.TempDir())

	if prefs.Diff.ContextLines != 3 {
		t.Errorf("default ContextLines = %d, want 3", prefs.Diff.ContextLines)
	}
	if prefs.Diff.Unified {
		t.Error("default Unified = true, want false")
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "prefs.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	prefs := Load(dir)
	if prefs.Diff.ContextLines != 3 {
		t.Errorf("corrupt file should fall back to defaults, got ContextLines = %d", prefs.Diff.ContextLines)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	in := &Prefs{Diff: DiffPrefs{ContextLines: 7, Unified: true}}
	if err := Save(dir, in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out := Load(dir)
	if out.Diff.ContextLines != 7 {
		t.Errorf("ContextLines = %d, want 7", out.Diff.ContextLines)
	}
	if !out.Diff.Unified {
		t.Error("Unified = false, want true")
	}
}

func TestSave_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	if err := Save(dir, DefaultPrefs()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "prefs.json")); err != nil {
		t.Errorf("prefs file not created: %v", err)
	}
}

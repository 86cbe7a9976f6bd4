// Package state persists editor preferences that carry across sessions.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/drafter/internal/logger"
)

// Prefs holds persistent diff-review preferences.
type Prefs struct {
	Diff DiffPrefs `json:"diff"`
}

// DiffPrefs holds how change review output is rendered.
type DiffPrefs struct {
	ContextLines int  `json:"context_lines"`
	Unified      bool `json:"unified"`
}

// DefaultPrefs returns the default preferences.
func DefaultPrefs() *Prefs {
	return &Prefs{
		Diff: DiffPrefs{
			ContextLines: 3,
			Unified:      false,
		},
	}
}

// Load reads preferences from {dataDir}/prefs.json.
// Returns defaults if the file doesn't exist or cannot be parsed.
func Load(dataDir string) *Prefs {
	path := filepath.Join(dataDir, "prefs.json")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultPrefs()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read prefs file: %v", err)
		return DefaultPrefs()
	}

	var prefs Prefs
	if err := json.Unmarshal(data, &prefs); err != nil {
		logger.Warn("Failed to parse prefs JSON: %v", err)
		return DefaultPrefs()
	}

	return &prefs
}

// Save writes preferences to {dataDir}/prefs.json, creating the data
// directory if needed.
func Save(dataDir string, prefs *Prefs) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, "prefs.json")

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling prefs: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing prefs file: %w", err)
	}

	logger.Debug("Prefs saved to %s", path)
	return nil
}

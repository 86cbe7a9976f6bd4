package diff

import (
	"fmt"

	"github.com/aymanbagabas/go-udiff"
)

// Unified renders a unified diff between a and b with default context.
// Equal inputs yield an empty string.
func Unified(oldLabel, newLabel, a, b string) string {
	return udiff.Unified(oldLabel, newLabel, a, b)
}

// UnifiedContext renders a unified diff with an explicit number of context
// lines around each change.
func UnifiedContext(oldLabel, newLabel, a, b string, contextLines int) (string, error) {
	if contextLines < 0 {
		contextLines = 0
	}
	edits := udiff.Strings(a, b)
	out, err := udiff.ToUnified(oldLabel, newLabel, a, edits, contextLines)
	if err != nil {
		return "", fmt.Errorf("rendering unified diff: %w", err)
	}
	return out, nil
}

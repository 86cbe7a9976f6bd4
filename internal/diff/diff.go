// Package diff implements the line-based diff engine used for change review.
// It computes a minimal edit script between two content snapshots and groups
// the result into side-by-side display blocks bounded by a context window.
package diff

import "strings"

// Kind classifies a diffed line.
type Kind int

const (
	KindContext Kind = iota // line present in both inputs
	KindAdd                 // line present only in the new input
	KindRemove              // line present only in the old input
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindContext:
		return "context"
	case KindAdd:
		return "add"
	case KindRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Hunk is a maximal run of lines sharing one classification.
// Concatenating the lines of all context and remove hunks reconstructs the
// old input; context and add hunks reconstruct the new input.
type Hunk struct {
	Kind  Kind     `json:"kind"`
	Lines []string `json:"lines"`
}

// ComputeHunks computes the line-level diff between a and b as an ordered
// hunk sequence. The alignment is minimal-edit-distance (longest common
// subsequence over lines), with ties broken toward emitting removals before
// additions at a given position so leading and trailing common runs are
// preserved. The result is deterministic for identical inputs.
//
// Empty inputs are valid: two empty strings yield no hunks, otherwise each
// input contributes at least one (possibly empty) line.
func ComputeHunks(a, b string) []Hunk {
	if a == "" && b == "" {
		return nil
	}

	aLines := splitLines(a)
	bLines := splitLines(b)
	n, m := len(aLines), len(bLines)

	// lcs[i][j] holds the LCS length of aLines[i:] and bLines[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if aLines[i] == bLines[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var hunks []Hunk
	emit := func(kind Kind, line string) {
		if len(hunks) > 0 && hunks[len(hunks)-1].Kind == kind {
			last := &hunks[len(hunks)-1]
			last.Lines = append(last.Lines, line)
			return
		}
		hunks = append(hunks, Hunk{Kind: kind, Lines: []string{line}})
	}

	// Walk the table front to back. On a tie, consuming from a first keeps
	// removals ahead of additions.
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case aLines[i] == bLines[j]:
			emit(KindContext, aLines[i])
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			emit(KindRemove, aLines[i])
			i++
		default:
			emit(KindAdd, bLines[j])
			j++
		}
	}
	for ; i < n; i++ {
		emit(KindRemove, aLines[i])
	}
	for ; j < m; j++ {
		emit(KindAdd, bLines[j])
	}

	return hunks
}

// splitLines splits content into lines with terminators stripped.
// An empty string still yields a single empty line.
func splitLines(s string) []string {
	return strings.Split(s, "\n")
}

package diff

import (
	"fmt"
	"strings"
)

// LabeledLine is a single display line with its classification.
type LabeledLine struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// InlineBlock is a side-by-side grouping of diffed lines bounded by a
// context window. Left holds context and removed lines (the old side),
// Right holds context and added lines (the new side), in original order.
type InlineBlock struct {
	Left  []LabeledLine `json:"left"`
	Right []LabeledLine `json:"right"`
}

// BuildInlineBlocks groups a hunk sequence into display blocks. Each block
// carries up to contextSize context lines before its first change and after
// its last change; a new block starts wherever the run of context lines
// between two changed regions exceeds 2*contextSize. A hunk sequence with
// no changed lines yields no blocks.
func BuildInlineBlocks(hunks []Hunk, contextSize int) []InlineBlock {
	if contextSize < 0 {
		contextSize = 0
	}

	var flat []LabeledLine
	for _, h := range hunks {
		for _, line := range h.Lines {
			flat = append(flat, LabeledLine{Kind: h.Kind, Text: line})
		}
	}

	var changed []int
	for i, line := range flat {
		if line.Kind != KindContext {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	var blocks []InlineBlock
	flush := func(start, end int) {
		// Widen the region by up to contextSize context lines on each end.
		lo := start
		for pad := 0; lo > 0 && pad < contextSize && flat[lo-1].Kind == KindContext; pad++ {
			lo--
		}
		hi := end
		for pad := 0; hi < len(flat)-1 && pad < contextSize && flat[hi+1].Kind == KindContext; pad++ {
			hi++
		}

		var blk InlineBlock
		for _, line := range flat[lo : hi+1] {
			switch line.Kind {
			case KindContext:
				blk.Left = append(blk.Left, line)
				blk.Right = append(blk.Right, line)
			case KindRemove:
				blk.Left = append(blk.Left, line)
			case KindAdd:
				blk.Right = append(blk.Right, line)
			}
		}
		blocks = append(blocks, blk)
	}

	groupStart := changed[0]
	prev := changed[0]
	for _, idx := range changed[1:] {
		gap := 0
		for k := prev + 1; k < idx; k++ {
			if flat[k].Kind == KindContext {
				gap++
			}
		}
		if gap > 2*contextSize {
			flush(groupStart, prev)
			groupStart = idx
		}
		prev = idx
	}
	flush(groupStart, prev)

	return blocks
}

// FormatBlocks renders inline blocks as plain text for CLI and tool output.
// Removed lines are prefixed with "-", added lines with "+", context lines
// with two spaces; blocks are separated by a "..." marker.
func FormatBlocks(blocks []InlineBlock) string {
	var sb strings.Builder
	for i, blk := range blocks {
		if i > 0 {
			sb.WriteString("...\n")
		}
		li, ri := 0, 0
		for li < len(blk.Left) || ri < len(blk.Right) {
			switch {
			case li < len(blk.Left) && blk.Left[li].Kind == KindRemove:
				fmt.Fprintf(&sb, "- %s\n", blk.Left[li].Text)
				li++
			case ri < len(blk.Right) && blk.Right[ri].Kind == KindAdd:
				fmt.Fprintf(&sb, "+ %s\n", blk.Right[ri].Text)
				ri++
			default:
				// Context lines advance both sides together.
				fmt.Fprintf(&sb, "  %s\n", blk.Left[li].Text)
				li++
				ri++
			}
		}
	}
	return sb.String()
}

package models

import (
	"fmt"
	"strings"
)

// HunkSource indicates which diff a hunk was parsed from
type HunkSource string

const (
	HunkStaged   HunkSource = "staged"
	HunkUnstaged HunkSource = "unstaged"
)

// DiffHunk represents one @@ ... @@ region of a unified diff
type DiffHunk struct {
	FilePath string
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	// Content lines, each prefixed with '+', '-' or ' '
	Content []string
	Source  HunkSource
}

// Header reconstructs the canonical hunk header from the numeric fields.
// Format: @@ -{oldStart},{oldLines} +{newStart},{newLines} @@
func (h *DiffHunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
}

// Key is a stable identity for a hunk within one run: path plus both start
// lines uniquely identify a region of a single working-tree diff.
func (h *DiffHunk) Key() string {
	return fmt.Sprintf("%s:%d:%d", h.FilePath, h.OldStart, h.NewStart)
}

// Context joins the hunk's content lines into the text used as embedding input.
func (h *DiffHunk) Context() string {
	return strings.Join(h.Content, "\n")
}

// Validate checks that the content lines reconstruct the header counts:
// '-' and context lines must sum to OldLines, '+' and context lines to NewLines.
func (h *DiffHunk) Validate() error {
	var oldCount, newCount int
	for _, line := range h.Content {
		if line == "" {
			oldCount++
			newCount++
			continue
		}
		switch line[0] {
		case '-':
			oldCount++
		case '+':
			newCount++
		default:
			oldCount++
			newCount++
		}
	}
	if oldCount != h.OldLines || newCount != h.NewLines {
		return fmt.Errorf("hunk %s: content counts -%d +%d do not match header %s", h.Key(), oldCount, newCount, h.Header())
	}
	return nil
}

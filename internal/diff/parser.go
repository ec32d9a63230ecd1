// Package diff parses git unified-diff output into discrete hunks.
package diff

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pders01/git-split/internal/models"
)

// hunkHeaderRe matches @@ -oldStart[,oldLines] +newStart[,newLines] @@.
// Git omits the count when it is exactly 1.
var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// ParseHunks parses a file's unified diff text into ordered hunks, each
// tagged with the given source (staged or unstaged).
//
// The /dev/null sentinel in --- / +++ file headers denotes file creation or
// deletion; the real path side is substituted so every hunk carries the
// actual file path. Diffs with no parseable hunk structure (binary files,
// deleted files diffed against an absent tree) yield zero hunks; callers
// fall back to whole-file staging for such paths.
func ParseHunks(filePath, diffText string, source models.HunkSource) []models.DiffHunk {
	if strings.TrimSpace(diffText) == "" {
		return nil
	}

	var hunks []models.DiffHunk
	var current *models.DiffHunk

	path := filePath
	for _, line := range strings.Split(diffText, "\n") {
		// While the header counts say more content lines are due, nothing is
		// a file header: a removed line whose content starts with "-- "
		// renders as "--- " and must stay hunk content.
		collecting := current != nil && moreContentExpected(current)
		switch {
		case strings.HasPrefix(line, "diff --git"):
			current = nil
		case !collecting && (strings.HasPrefix(line, "--- ") || strings.HasPrefix(line, "+++ ")):
			if p := headerPath(line); p != "" {
				path = p
			}
		case strings.HasPrefix(line, "@@"):
			m := hunkHeaderRe.FindStringSubmatch(line)
			if m == nil {
				current = nil
				continue
			}
			hunks = append(hunks, models.DiffHunk{
				FilePath: path,
				OldStart: atoi(m[1]),
				OldLines: atoiDefault(m[2], 1),
				NewStart: atoi(m[3]),
				NewLines: atoiDefault(m[4], 1),
				Source:   source,
			})
			current = &hunks[len(hunks)-1]
		case current != nil:
			if line == `\ No newline at end of file` {
				continue
			}
			if line == "" && !collecting {
				// Trailing blank from the final newline split, not hunk content.
				current = nil
				continue
			}
			current.Content = append(current.Content, line)
		}
	}

	return hunks
}

// headerPath extracts the path from a ---/+++ header line, returning ""
// for the /dev/null sentinel so the other side's path is kept.
func headerPath(line string) string {
	p := strings.TrimSpace(line[4:])
	if p == "/dev/null" {
		return ""
	}
	p = strings.TrimPrefix(p, "a/")
	p = strings.TrimPrefix(p, "b/")
	return p
}

// moreContentExpected reports whether the hunk's header counts say more
// content lines should follow.
func moreContentExpected(h *models.DiffHunk) bool {
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
	return oldCount < h.OldLines || newCount < h.NewLines
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	return atoi(s)
}

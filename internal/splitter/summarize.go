package splitter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pders01/git-split/internal/models"
)

// defaultMaxImportantLines caps the summarized diff lines sent to the
// language model per file.
const defaultMaxImportantLines = 15

const maxSymbolNames = 3

// symbolPatterns detect function/class definitions per language, keyed by
// file extension.
var symbolPatterns = map[string]*regexp.Regexp{
	".go":   regexp.MustCompile(`^\s*func\s+(?:\([^)]*\)\s*)?(\w+)|^\s*type\s+(\w+)`),
	".py":   regexp.MustCompile(`^\s*(?:def|class)\s+(\w+)`),
	".rb":   regexp.MustCompile(`^\s*(?:def|class|module)\s+(\w+)`),
	".js":   regexp.MustCompile(`(?:function|class)\s+(\w+)|(?:const|let|var)\s+(\w+)\s*=`),
	".ts":   regexp.MustCompile(`(?:function|class|interface)\s+(\w+)|(?:const|let|var)\s+(\w+)\s*=`),
	".java": regexp.MustCompile(`(?:class|interface|enum)\s+(\w+)`),
	".c":    regexp.MustCompile(`^\w[\w\s\*]*\s(\w+)\s*\(`),
	".cpp":  regexp.MustCompile(`(?:class|struct)\s+(\w+)|^\w[\w\s\*:]*\s(\w+)\s*\(`),
}

var genericSymbolPattern = regexp.MustCompile(`(?:func|def|function|class)\s+(\w+)`)

var importPattern = regexp.MustCompile(`^\s*(?:import\s|from\s+\S+\s+import|#include\b|require\b|use\s)`)

// summarizeDiff reduces a file's diff to a bounded summary for the
// language-model prompt: a one-line +N -M count, up to three added and
// three removed symbol names, and a capped set of important changed lines.
// This bounds prompt size independent of diff size.
func summarizeDiff(fc *models.FileChange, maxLines int) string {
	if maxLines <= 0 {
		maxLines = defaultMaxImportantLines
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s): +%d -%d\n", fc.Path, fc.ChangeType, fc.LinesAdded, fc.LinesRemoved)

	added, removed := changedSymbols(fc)
	if len(added) > 0 {
		fmt.Fprintf(&b, "Added: %s\n", strings.Join(added, ", "))
	}
	if len(removed) > 0 {
		fmt.Fprintf(&b, "Removed: %s\n", strings.Join(removed, ", "))
	}

	important := importantLines(fc.DiffContent, maxLines)
	if len(important) > 0 {
		b.WriteString("Key lines:\n")
		for _, line := range important {
			b.WriteString("  " + line + "\n")
		}
	}

	return b.String()
}

// changedSymbols extracts up to three added and three removed function or
// class names from the diff, using the per-language pattern for the file's
// extension.
func changedSymbols(fc *models.FileChange) (added, removed []string) {
	pattern, ok := symbolPatterns[strings.ToLower(filepath.Ext(fc.Path))]
	if !ok {
		pattern = genericSymbolPattern
	}

	for _, line := range strings.Split(fc.DiffContent, "\n") {
		if len(line) < 2 {
			continue
		}
		marker, body := line[0], line[1:]
		if (marker != '+' && marker != '-') || strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
			continue
		}
		name := firstSubmatch(pattern, body)
		if name == "" {
			continue
		}
		if marker == '+' && len(added) < maxSymbolNames {
			added = append(added, name)
		} else if marker == '-' && len(removed) < maxSymbolNames {
			removed = append(removed, name)
		}
	}
	return added, removed
}

func firstSubmatch(pattern *regexp.Regexp, s string) string {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	for _, group := range m[1:] {
		if group != "" {
			return group
		}
	}
	return ""
}

// importantLines keeps up to max changed lines that look structurally
// significant: definitions, imports, or non-trivial logic lines.
func importantLines(diffText string, max int) []string {
	var lines []string
	for _, line := range strings.Split(diffText, "\n") {
		if len(lines) >= max {
			break
		}
		if len(line) < 2 {
			continue
		}
		marker := line[0]
		if marker != '+' && marker != '-' {
			continue
		}
		if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
			continue
		}
		if isImportantLine(line[1:]) {
			lines = append(lines, line)
		}
	}
	return lines
}

func isImportantLine(body string) bool {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return false
	}
	if genericSymbolPattern.MatchString(trimmed) || importPattern.MatchString(trimmed) {
		return true
	}
	return len(trimmed) > 3 && strings.ContainsAny(trimmed, "{};=")
}

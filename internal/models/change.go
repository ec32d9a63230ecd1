package models

// ChangeType classifies how a file differs from HEAD
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeDeleted  ChangeType = "deleted"
)

// FileChange represents all pending changes to a single file.
// Before/After content is best-effort: Before is empty for added files,
// After is empty for deleted files.
type FileChange struct {
	Path         string
	ChangeType   ChangeType
	Before       string
	After        string
	DiffContent  string
	LinesAdded   int
	LinesRemoved int
	Hunks        []DiffHunk
}

// CountDiffLines counts added and removed lines in unified diff text,
// excluding the +++/--- file header lines.
func CountDiffLines(diff string) (added, removed int) {
	start := 0
	for i := 0; i <= len(diff); i++ {
		if i == len(diff) || diff[i] == '\n' {
			line := diff[start:i]
			start = i + 1
			if len(line) == 0 {
				continue
			}
			switch line[0] {
			case '+':
				if len(line) < 3 || line[:3] != "+++" {
					added++
				}
			case '-':
				if len(line) < 3 || line[:3] != "---" {
					removed++
				}
			}
		}
	}
	return added, removed
}

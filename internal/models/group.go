package models

import "fmt"

// ClusterMember ties a hunk to the FileChange that owns it
type ClusterMember struct {
	Hunk      *DiffHunk
	FileIndex int
}

// CommitGroup is the unit of execution: one logical commit to be staged and
// created. Consumed exactly once by the executor, then discarded.
type CommitGroup struct {
	FeatureName   string
	Description   string
	Files         []*FileChange
	Hunks         []*DiffHunk
	CommitTitle   string
	CommitMessage string
}

// FilePaths returns the paths touched by the group, in order.
func (g *CommitGroup) FilePaths() []string {
	paths := make([]string, 0, len(g.Files))
	for _, f := range g.Files {
		paths = append(paths, f.Path)
	}
	return paths
}

// ProgressLevel tags progress messages emitted by the pipeline
type ProgressLevel string

const (
	ProgressInfo    ProgressLevel = "info"
	ProgressSuccess ProgressLevel = "success"
	ProgressWarning ProgressLevel = "warning"
	ProgressError   ProgressLevel = "error"
)

// ProgressFunc receives human-readable status strings at each pipeline stage.
// A nil ProgressFunc is valid and discards all messages.
type ProgressFunc func(level ProgressLevel, message string)

// Report invokes the callback if one is set.
func (p ProgressFunc) Report(level ProgressLevel, format string, args ...any) {
	if p != nil {
		p(level, fmt.Sprintf(format, args...))
	}
}

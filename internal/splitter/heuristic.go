package splitter

import (
	"path/filepath"
	"strings"

	"github.com/pders01/git-split/internal/models"
)

// topDirGroups maps well-known top-level directory names onto the small
// fixed grouping vocabulary.
var topDirGroups = map[string]string{
	"frontend":      "frontend",
	"client":        "frontend",
	"ui":            "frontend",
	"src":           "frontend",
	"components":    "frontend",
	"backend":       "backend",
	"server":        "backend",
	"api":           "backend",
	"services":      "backend",
	"docs":          "documentation",
	"documentation": "documentation",
	"readme":        "documentation",
	"tests":         "testing",
	"test":          "testing",
	"spec":          "testing",
	"config":        "configuration",
	"conf":          "configuration",
	"settings":      "configuration",
	"scripts":       "utilities",
	"tools":         "utilities",
	"utils":         "utilities",
}

var extensionGroups = map[string]string{
	".py":   "code",
	".js":   "code",
	".ts":   "code",
	".jsx":  "code",
	".tsx":  "code",
	".go":   "code",
	".java": "code",
	".cpp":  "code",
	".c":    "code",
	".md":   "documentation",
	".txt":  "documentation",
	".rst":  "documentation",
	".json": "configuration",
	".yaml": "configuration",
	".yml":  "configuration",
	".toml": "configuration",
	".ini":  "configuration",
}

// GroupKey assigns a file to a deterministic heuristic bucket: first by
// top-level directory, then by extension family, else "other". A pure
// function of the path, so repeated runs bucket identically.
func GroupKey(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 1 {
		if group, ok := topDirGroups[strings.ToLower(parts[0])]; ok {
			return group
		}
	}
	if group, ok := extensionGroups[strings.ToLower(filepath.Ext(path))]; ok {
		return group
	}
	return "other"
}

// heuristicGroups buckets files by GroupKey, preserving first-seen bucket
// order. Used for files whose hunks could not enter clustering and, when
// the embedding model is unavailable, for the whole change set. Each
// group's hunk list carries the files' hunks so hunk-level staging still
// applies where possible.
func (s *Splitter) heuristicGroups(changes []*models.FileChange) []*models.CommitGroup {
	var order []string
	buckets := make(map[string]*models.CommitGroup)

	for _, fc := range changes {
		key := GroupKey(fc.Path)
		group, ok := buckets[key]
		if !ok {
			group = &models.CommitGroup{
				FeatureName: key,
				Description: "Changes related to " + key,
			}
			buckets[key] = group
			order = append(order, key)
		}
		group.Files = append(group.Files, fc)
		for i := range fc.Hunks {
			group.Hunks = append(group.Hunks, &fc.Hunks[i])
		}
	}

	groups := make([]*models.CommitGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, buckets[key])
	}
	return groups
}

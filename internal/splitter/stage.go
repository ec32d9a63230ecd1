package splitter

import (
	"strings"

	"github.com/pders01/git-split/internal/models"
)

// stageGroup stages exactly the group's hunks. Per file: deleted files are
// staged via removal, files with no selected hunks (new files) are staged
// whole, and files with selected hunks get a patch restricted to those
// hunks applied directly to the index. Whole-file staging is strictly the
// fallback when the patch does not apply. Staging failures are reported
// and degrade, they never abort the run.
func (s *Splitter) stageGroup(group *models.CommitGroup) {
	byPath := make(map[string][]*models.DiffHunk)
	for _, h := range group.Hunks {
		byPath[h.FilePath] = append(byPath[h.FilePath], h)
	}

	for _, fc := range group.Files {
		hunks := byPath[fc.Path]
		switch {
		case fc.ChangeType == models.ChangeDeleted:
			if err := s.git.RemoveFile(fc.Path); err != nil {
				s.report(models.ProgressWarning, "Could not stage removal of %s: %v", fc.Path, err)
			}
		case len(hunks) == 0 || len(hunks) == len(fc.Hunks):
			// Nothing to select between: the whole file belongs to this group.
			if err := s.git.AddFile(fc.Path); err != nil {
				s.report(models.ProgressWarning, "Could not stage %s: %v", fc.Path, err)
			}
		default:
			if err := s.git.ApplyCached(buildPatch(fc.Path, hunks)); err != nil {
				s.report(models.ProgressWarning, "Patch staging failed for %s, staging whole file: %v", fc.Path, err)
				if err := s.git.AddFile(fc.Path); err != nil {
					s.report(models.ProgressWarning, "Could not stage %s: %v", fc.Path, err)
				}
			}
		}
	}
}

// buildPatch reconstructs a unified-diff patch containing only the
// selected hunks, using each hunk's canonical header so git can re-identify
// the region it came from.
func buildPatch(path string, hunks []*models.DiffHunk) string {
	var b strings.Builder

	b.WriteString("diff --git a/" + path + " b/" + path + "\n")
	b.WriteString("--- a/" + path + "\n")
	b.WriteString("+++ b/" + path + "\n")
	for _, h := range hunks {
		b.WriteString(h.Header() + "\n")
		for _, line := range h.Content {
			b.WriteString(line + "\n")
		}
	}

	return b.String()
}

package splitter

import (
	"github.com/samber/lo"

	"github.com/pders01/git-split/internal/diff"
	"github.com/pders01/git-split/internal/models"
)

// extractChanges enumerates every changed path and builds a FileChange for
// each. The result is the de-duplicated union of unstaged, staged and
// untracked paths in first-seen order. Extraction is read-only; a failure
// to read one file's diff or content records partial information instead of
// aborting the pass.
func (s *Splitter) extractChanges() ([]*models.FileChange, error) {
	unstaged, err := s.git.UnstagedFiles()
	if err != nil {
		return nil, err
	}
	staged, err := s.git.StagedFiles()
	if err != nil {
		return nil, err
	}
	untracked, err := s.git.UntrackedFiles()
	if err != nil {
		return nil, err
	}

	paths := lo.Uniq(append(append(unstaged, staged...), untracked...))

	changes := make([]*models.FileChange, 0, len(paths))
	for _, path := range paths {
		changes = append(changes, s.extractFile(path))
	}
	return changes, nil
}

// extractFile classifies one path and gathers its diff, content and hunks.
func (s *Splitter) extractFile(path string) *models.FileChange {
	fc := &models.FileChange{Path: path, ChangeType: s.classify(path)}

	if fc.ChangeType != models.ChangeAdded {
		if before, err := s.git.Show("HEAD", path); err == nil {
			fc.Before = before
		}
	}
	if fc.ChangeType != models.ChangeDeleted {
		if after, err := s.git.ReadWorktreeFile(path); err == nil {
			fc.After = after
		}
	}

	stagedDiff, err := s.git.DiffFileStaged(path)
	if err != nil {
		s.report(models.ProgressWarning, "Could not read staged diff for %s: %v", path, err)
	}

	var unstagedDiff string
	if fc.ChangeType == models.ChangeDeleted {
		// The working copy is gone; diff against HEAD instead.
		unstagedDiff, err = s.git.DiffFileHEAD(path)
	} else {
		unstagedDiff, err = s.git.DiffFile(path)
	}
	if err != nil {
		s.report(models.ProgressWarning, "Could not read diff for %s: %v", path, err)
	}

	fc.DiffContent = unstagedDiff
	if fc.DiffContent == "" {
		fc.DiffContent = stagedDiff
	}
	fc.LinesAdded, fc.LinesRemoved = models.CountDiffLines(fc.DiffContent)

	// Deleted files have no hunk structure worth clustering; they are
	// staged whole via removal.
	if fc.ChangeType != models.ChangeDeleted {
		fc.Hunks = append(
			diff.ParseHunks(path, stagedDiff, models.HunkStaged),
			diff.ParseHunks(path, unstagedDiff, models.HunkUnstaged)...,
		)
	}

	return fc
}

// classify determines the change type by comparing working-tree presence
// against HEAD: tree-only is added, HEAD-only is deleted, both is modified.
func (s *Splitter) classify(path string) models.ChangeType {
	inTree := s.git.ExistsInWorktree(path)
	atHead := s.git.ExistsAt("HEAD", path)
	switch {
	case inTree && !atHead:
		return models.ChangeAdded
	case !inTree && atHead:
		return models.ChangeDeleted
	default:
		return models.ChangeModified
	}
}

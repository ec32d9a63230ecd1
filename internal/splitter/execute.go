package splitter

import (
	"context"
	"fmt"
	"time"

	"github.com/pders01/git-split/internal/models"
)

// execute materializes the groups as commits, strictly sequentially. A
// backup branch is created from the current commit before any staging or
// committing begins; if that fails the whole run aborts untouched. A
// failure on one group is recorded and the loop continues, so partial
// success is expected and reported.
func (s *Splitter) execute(ctx context.Context, groups []*models.CommitGroup) error {
	branch, err := s.git.CurrentBranch()
	if err != nil {
		return err
	}

	backup, err := s.createBackupBranch()
	if err != nil {
		return fmt.Errorf("failed to create backup branch, aborting before any commit: %w", err)
	}
	s.report(models.ProgressInfo, "Created backup branch %s", backup)

	successes := 0
	for i, group := range groups {
		if ctx.Err() != nil {
			s.report(models.ProgressWarning, "Run cancelled; revert with: git reset --hard %s", backup)
			return ctx.Err()
		}
		if s.commitGroup(i, len(groups), group) {
			successes++
		}
	}

	if s.opts.Push && successes > 0 {
		if err := s.git.Push(branch); err != nil {
			s.report(models.ProgressWarning, "Push failed, commits are retained locally: %v", err)
		} else {
			s.report(models.ProgressSuccess, "Pushed %s to origin", branch)
		}
	}

	level := models.ProgressSuccess
	if successes < len(groups) {
		level = models.ProgressWarning
	}
	s.report(level, "Created %d/%d commits. Backup branch: %s (revert with: git reset --hard %s)",
		successes, len(groups), backup, backup)
	return nil
}

// commitGroup resets the index, stages the group, verifies something is
// actually staged (with a last-resort whole-file attempt) and commits.
func (s *Splitter) commitGroup(i, total int, group *models.CommitGroup) bool {
	s.report(models.ProgressInfo, "Committing group %d/%d: %s", i+1, total, group.CommitTitle)

	if err := s.git.ResetIndex(); err != nil {
		s.report(models.ProgressError, "Could not reset index for %s: %v", group.FeatureName, err)
		return false
	}

	if len(group.Hunks) > 0 {
		s.stageGroup(group)
	} else {
		s.stageWholeFiles(group)
	}

	staged, err := s.git.HasStagedChanges()
	if err != nil {
		s.report(models.ProgressError, "Could not inspect index for %s: %v", group.FeatureName, err)
		return false
	}
	if !staged {
		s.stageWholeFiles(group)
		if staged, _ = s.git.HasStagedChanges(); !staged {
			s.report(models.ProgressWarning, "Nothing staged for %s, skipping group", group.FeatureName)
			return false
		}
	}

	message := group.CommitTitle + "\n\n" + group.CommitMessage
	if err := s.git.Commit(message); err != nil {
		s.report(models.ProgressError, "Commit failed for %s: %v", group.FeatureName, err)
		return false
	}

	s.report(models.ProgressSuccess, "Committed: %s", group.CommitTitle)
	return true
}

// stageWholeFiles is the legacy fallback: stage each of the group's files
// in full, honoring deletions.
func (s *Splitter) stageWholeFiles(group *models.CommitGroup) {
	for _, fc := range group.Files {
		var err error
		if fc.ChangeType == models.ChangeDeleted {
			err = s.git.RemoveFile(fc.Path)
		} else {
			err = s.git.AddFile(fc.Path)
		}
		if err != nil {
			s.report(models.ProgressWarning, "Could not stage %s: %v", fc.Path, err)
		}
	}
}

// createBackupBranch creates a uniquely named branch at the current commit.
// The timestamp suffix is bumped if a same-second run already took the name.
func (s *Splitter) createBackupBranch() (string, error) {
	ts := time.Now().Unix()
	name := fmt.Sprintf("%s-%d", s.opts.BackupPrefix, ts)
	for i := 1; s.git.BranchExists(name); i++ {
		name = fmt.Sprintf("%s-%d-%d", s.opts.BackupPrefix, ts, i)
	}
	if err := s.git.CreateBranch(name); err != nil {
		return "", err
	}
	return name, nil
}

package git

import (
	"strings"
	"testing"

	"github.com/pders01/git-split/internal/testutil"
)

func TestFileListing(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	client := NewClient(repo.Path)

	if !client.IsRepo() {
		t.Fatal("IsRepo() = false for a git repository")
	}

	repo.CreateFile("tracked.txt", "one\n")
	repo.Commit("add tracked file")

	repo.CreateFile("tracked.txt", "two\n")
	repo.CreateFile("untracked.txt", "new\n")

	unstaged, err := client.UnstagedFiles()
	if err != nil {
		t.Fatalf("UnstagedFiles failed: %v", err)
	}
	if len(unstaged) != 1 || unstaged[0] != "tracked.txt" {
		t.Errorf("unstaged = %v", unstaged)
	}

	untracked, err := client.UntrackedFiles()
	if err != nil {
		t.Fatalf("UntrackedFiles failed: %v", err)
	}
	if len(untracked) != 1 || untracked[0] != "untracked.txt" {
		t.Errorf("untracked = %v", untracked)
	}

	repo.Git("add", "tracked.txt")
	staged, err := client.StagedFiles()
	if err != nil {
		t.Fatalf("StagedFiles failed: %v", err)
	}
	if len(staged) != 1 || staged[0] != "tracked.txt" {
		t.Errorf("staged = %v", staged)
	}
}

func TestShowAndExistence(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	client := NewClient(repo.Path)

	repo.CreateFile("file.txt", "committed content\n")
	repo.Commit("add file")

	content, err := client.Show("HEAD", "file.txt")
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if content != "committed content\n" {
		t.Errorf("Show = %q", content)
	}

	if !client.ExistsAt("HEAD", "file.txt") {
		t.Error("ExistsAt = false for committed file")
	}
	if client.ExistsAt("HEAD", "missing.txt") {
		t.Error("ExistsAt = true for missing file")
	}

	if _, err := client.Show("HEAD", "missing.txt"); err == nil {
		t.Error("Show succeeded for a path absent at HEAD")
	}

	if !client.ExistsInWorktree("file.txt") {
		t.Error("ExistsInWorktree = false for present file")
	}
	if client.ExistsInWorktree("missing.txt") {
		t.Error("ExistsInWorktree = true for absent file")
	}
}

func TestDiffAndStaging(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	client := NewClient(repo.Path)

	repo.CreateFile("file.txt", "original\n")
	repo.Commit("add file")
	repo.CreateFile("file.txt", "changed\n")

	diff, err := client.DiffFile("file.txt")
	if err != nil {
		t.Fatalf("DiffFile failed: %v", err)
	}
	if !strings.Contains(diff, "-original") || !strings.Contains(diff, "+changed") {
		t.Errorf("unexpected diff:\n%s", diff)
	}

	staged, err := client.HasStagedChanges()
	if err != nil {
		t.Fatalf("HasStagedChanges failed: %v", err)
	}
	if staged {
		t.Error("HasStagedChanges = true with empty index")
	}

	if err := client.AddFile("file.txt"); err != nil {
		t.Fatalf("AddFile failed: %v", err)
	}
	if staged, _ = client.HasStagedChanges(); !staged {
		t.Error("HasStagedChanges = false after AddFile")
	}

	if err := client.ResetIndex(); err != nil {
		t.Fatalf("ResetIndex failed: %v", err)
	}
	if staged, _ = client.HasStagedChanges(); staged {
		t.Error("HasStagedChanges = true after ResetIndex")
	}
}

func TestApplyCached(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	client := NewClient(repo.Path)

	repo.CreateFile("file.txt", "line one\n")
	repo.Commit("add file")
	repo.CreateFile("file.txt", "line two\n")

	patch := "diff --git a/file.txt b/file.txt\n" +
		"--- a/file.txt\n" +
		"+++ b/file.txt\n" +
		"@@ -1,1 +1,1 @@\n" +
		"-line one\n" +
		"+line two\n"

	if err := client.ApplyCached(patch); err != nil {
		t.Fatalf("ApplyCached failed: %v", err)
	}
	if staged, _ := client.HasStagedChanges(); !staged {
		t.Error("patch did not stage anything")
	}

	if err := client.ApplyCached("not a patch"); err == nil {
		t.Error("ApplyCached accepted garbage input")
	}
}

func TestRemoveFileStagesDeletion(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	client := NewClient(repo.Path)

	repo.CreateFile("doomed.txt", "bye\n")
	repo.Commit("add doomed file")
	repo.DeleteFile("doomed.txt")

	if err := client.RemoveFile("doomed.txt"); err != nil {
		t.Fatalf("RemoveFile failed: %v", err)
	}
	if staged, _ := client.HasStagedChanges(); !staged {
		t.Error("deletion not staged")
	}

	if err := client.Commit("remove doomed file"); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if client.ExistsAt("HEAD", "doomed.txt") {
		t.Error("file still present at HEAD after deletion commit")
	}
}

func TestBranchOperations(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	client := NewClient(repo.Path)

	if err := client.CreateBranch("backup-before-split-123"); err != nil {
		t.Fatalf("CreateBranch failed: %v", err)
	}
	if !client.BranchExists("backup-before-split-123") {
		t.Error("created branch does not exist")
	}
	if client.BranchExists("nope") {
		t.Error("BranchExists = true for missing branch")
	}

	branches, err := client.ListBranches("backup-before-split-*")
	if err != nil {
		t.Fatalf("ListBranches failed: %v", err)
	}
	if len(branches) != 1 || branches[0] != "backup-before-split-123" {
		t.Errorf("branches = %v", branches)
	}

	// Creating a branch twice fails.
	if err := client.CreateBranch("backup-before-split-123"); err == nil {
		t.Error("duplicate CreateBranch succeeded")
	}
}

func TestResetHard(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	client := NewClient(repo.Path)

	client.CreateBranch("savepoint")

	repo.CreateFile("extra.txt", "content\n")
	repo.Commit("extra commit")
	if repo.CommitCount() != 2 {
		t.Fatalf("setup: commit count = %d", repo.CommitCount())
	}

	if err := client.ResetHard("savepoint"); err != nil {
		t.Fatalf("ResetHard failed: %v", err)
	}
	if repo.CommitCount() != 1 {
		t.Errorf("commit count after reset = %d, want 1", repo.CommitCount())
	}
}

func TestCurrentBranchAndSubject(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	client := NewClient(repo.Path)

	branch, err := client.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch failed: %v", err)
	}
	if branch == "" || branch == "HEAD" {
		t.Errorf("branch = %q", branch)
	}

	subject, err := client.Subject("HEAD")
	if err != nil {
		t.Fatalf("Subject failed: %v", err)
	}
	if subject != "Initial commit" {
		t.Errorf("subject = %q", subject)
	}
}

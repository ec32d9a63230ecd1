package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// TempGitRepo creates a temporary git repository for testing
type TempGitRepo struct {
	Path string
	T    *testing.T
}

// NewTempGitRepo creates a new temporary git repository with one initial commit
func NewTempGitRepo(t *testing.T) *TempGitRepo {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "git-split-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	repo := &TempGitRepo{Path: tmpDir, T: t}

	repo.Git("init")
	repo.Git("config", "user.name", "Test User")
	repo.Git("config", "user.email", "test@example.com")
	repo.Git("config", "commit.gpgsign", "false")

	repo.CreateFile("README.md", "# Test Repository\n")
	repo.Git("add", ".")
	repo.Git("commit", "-m", "Initial commit")

	return repo
}

// Git runs a git command in the repository and fails the test on error
func (r *TempGitRepo) Git(args ...string) string {
	r.T.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = r.Path
	output, err := cmd.CombinedOutput()
	if err != nil {
		r.T.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, output)
	}
	return string(output)
}

// CreateFile creates a file in the repository
func (r *TempGitRepo) CreateFile(name, content string) {
	r.T.Helper()
	path := filepath.Join(r.Path, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		r.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		r.T.Fatalf("failed to create file: %v", err)
	}
}

// DeleteFile removes a file from the working tree
func (r *TempGitRepo) DeleteFile(name string) {
	r.T.Helper()
	if err := os.Remove(filepath.Join(r.Path, name)); err != nil {
		r.T.Fatalf("failed to delete file: %v", err)
	}
}

// Commit stages and commits all changes
func (r *TempGitRepo) Commit(message string) {
	r.T.Helper()
	r.Git("add", ".")
	r.Git("commit", "-m", message)
}

// Branches returns all branches in the repository
func (r *TempGitRepo) Branches() []string {
	r.T.Helper()

	var branches []string
	for _, line := range strings.Split(r.Git("branch", "--list"), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "* "))
		if line != "" {
			branches = append(branches, line)
		}
	}
	return branches
}

// BranchExists checks if a branch exists
func (r *TempGitRepo) BranchExists(branch string) bool {
	r.T.Helper()
	cmd := exec.Command("git", "rev-parse", "--verify", "--quiet", branch)
	cmd.Dir = r.Path
	return cmd.Run() == nil
}

// CommitCount returns the number of commits on HEAD
func (r *TempGitRepo) CommitCount() int {
	r.T.Helper()
	out := strings.TrimSpace(r.Git("rev-list", "--count", "HEAD"))
	n, err := strconv.Atoi(out)
	if err != nil {
		r.T.Fatalf("failed to parse commit count %q: %v", out, err)
	}
	return n
}

// CommitSubjects returns the subject lines of all commits, newest first
func (r *TempGitRepo) CommitSubjects() []string {
	r.T.Helper()

	var subjects []string
	for _, line := range strings.Split(r.Git("log", "--format=%s"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			subjects = append(subjects, line)
		}
	}
	return subjects
}

// CommittedFiles returns the files touched by a commit ref
func (r *TempGitRepo) CommittedFiles(ref string) []string {
	r.T.Helper()

	var files []string
	for _, line := range strings.Split(r.Git("show", "--name-only", "--format=", ref), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files
}

// IsClean reports whether the working tree and index have no changes
func (r *TempGitRepo) IsClean() bool {
	r.T.Helper()
	return strings.TrimSpace(r.Git("status", "--porcelain")) == ""
}

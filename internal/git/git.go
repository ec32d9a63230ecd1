// Package git is a thin version-control client backed by the git binary.
// All subprocess execution goes through run/output so argument handling
// stays in one place; arguments are passed as an argv vector, never through
// a shell, so paths and commit messages need no quoting.
package git

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Client executes git commands in a fixed working directory.
type Client struct {
	dir string
}

// NewClient creates a client rooted at dir. An empty dir means the
// current working directory.
func NewClient(dir string) *Client {
	return &Client{dir: dir}
}

// Dir returns the client's working directory.
func (c *Client) Dir() string {
	return c.dir
}

func (c *Client) command(args ...string) *exec.Cmd {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.dir
	return cmd
}

// run executes git and returns a descriptive error including stderr.
func (c *Client) run(args ...string) error {
	var stderr bytes.Buffer
	cmd := c.command(args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// output executes git and returns its stdout.
func (c *Client) output(args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := c.command(args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// IsRepo checks if the directory is inside a git repository
func (c *Client) IsRepo() bool {
	return c.command("rev-parse", "--git-dir").Run() == nil
}

// CurrentBranch returns the current branch name
func (c *Client) CurrentBranch() (string, error) {
	out, err := c.output("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// UnstagedFiles returns paths with unstaged modifications.
func (c *Client) UnstagedFiles() ([]string, error) {
	out, err := c.output("diff", "--name-only")
	if err != nil {
		return nil, fmt.Errorf("failed to list unstaged files: %w", err)
	}
	return splitLines(out), nil
}

// StagedFiles returns paths with staged modifications.
func (c *Client) StagedFiles() ([]string, error) {
	out, err := c.output("diff", "--cached", "--name-only")
	if err != nil {
		return nil, fmt.Errorf("failed to list staged files: %w", err)
	}
	return splitLines(out), nil
}

// UntrackedFiles returns untracked paths not excluded by ignore rules.
func (c *Client) UntrackedFiles() ([]string, error) {
	out, err := c.output("ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, fmt.Errorf("failed to list untracked files: %w", err)
	}
	return splitLines(out), nil
}

// Show returns a file's content at a ref. Returns an error for paths that
// do not exist at the ref (expected for added files).
func (c *Client) Show(ref, path string) (string, error) {
	out, err := c.output("show", ref+":"+path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s at %s: %w", path, ref, err)
	}
	return out, nil
}

// ExistsAt reports whether a path exists at a ref.
func (c *Client) ExistsAt(ref, path string) bool {
	return c.command("cat-file", "-e", ref+":"+path).Run() == nil
}

// ExistsInWorktree reports whether a path exists in the working tree.
func (c *Client) ExistsInWorktree(path string) bool {
	_, err := os.Stat(filepath.Join(c.dir, path))
	return err == nil
}

// ReadWorktreeFile reads a file from the working tree.
func (c *Client) ReadWorktreeFile(path string) (string, error) {
	data, err := os.ReadFile(filepath.Join(c.dir, path))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// DiffFile returns the unstaged unified diff for a path.
func (c *Client) DiffFile(path string) (string, error) {
	out, err := c.output("diff", "--unified=3", "--", path)
	if err != nil {
		return "", fmt.Errorf("failed to diff %s: %w", path, err)
	}
	return out, nil
}

// DiffFileStaged returns the staged unified diff for a path.
func (c *Client) DiffFileStaged(path string) (string, error) {
	out, err := c.output("diff", "--cached", "--unified=3", "--", path)
	if err != nil {
		return "", fmt.Errorf("failed to diff staged %s: %w", path, err)
	}
	return out, nil
}

// DiffFileHEAD diffs a path against HEAD; used for deleted files whose
// working copy no longer exists.
func (c *Client) DiffFileHEAD(path string) (string, error) {
	out, err := c.output("diff", "HEAD", "--unified=3", "--", path)
	if err != nil {
		return "", fmt.Errorf("failed to diff %s against HEAD: %w", path, err)
	}
	return out, nil
}

// AddFile stages a whole file (records deletions too).
func (c *Client) AddFile(path string) error {
	if err := c.run("add", "--", path); err != nil {
		return fmt.Errorf("failed to add %s: %w", path, err)
	}
	return nil
}

// RemoveFile stages removal of a tracked path whose working copy is gone.
func (c *Client) RemoveFile(path string) error {
	if err := c.run("rm", "--cached", "--quiet", "--", path); err != nil {
		return fmt.Errorf("failed to stage removal of %s: %w", path, err)
	}
	return nil
}

// ApplyCached applies a unified-diff patch directly to the index.
func (c *Client) ApplyCached(patch string) error {
	var stderr bytes.Buffer
	cmd := c.command("apply", "--cached", "--whitespace=nowarn", "-")
	cmd.Stdin = strings.NewReader(patch)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to apply patch to index: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// ResetIndex unstages everything, leaving the working tree untouched.
func (c *Client) ResetIndex() error {
	if err := c.run("reset", "--quiet"); err != nil {
		return fmt.Errorf("failed to reset index: %w", err)
	}
	return nil
}

// HasStagedChanges reports whether anything is in the index.
func (c *Client) HasStagedChanges() (bool, error) {
	err := c.command("diff", "--cached", "--quiet").Run()
	if err == nil {
		return false, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return true, nil
	}
	return false, fmt.Errorf("failed to check staged changes: %w", err)
}

// HasUncommittedChanges checks if there are uncommitted changes
func (c *Client) HasUncommittedChanges() (bool, error) {
	out, err := c.output("status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to check git status: %w", err)
	}
	return strings.TrimSpace(out) != "", nil
}

// CreateBranch creates a branch at the current commit without checking it out.
func (c *Client) CreateBranch(branch string) error {
	if err := c.run("branch", branch); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", branch, err)
	}
	return nil
}

// BranchExists checks if a branch exists
func (c *Client) BranchExists(branch string) bool {
	return c.command("rev-parse", "--verify", "--quiet", branch).Run() == nil
}

// ListBranches returns all branches matching a pattern
func (c *Client) ListBranches(pattern string) ([]string, error) {
	out, err := c.output("branch", "--list", pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	var branches []string
	for _, line := range splitLines(out) {
		line = strings.TrimPrefix(line, "* ")
		line = strings.TrimSpace(line)
		if line != "" {
			branches = append(branches, line)
		}
	}
	return branches, nil
}

// Subject returns the subject line of a ref's tip commit.
func (c *Client) Subject(ref string) (string, error) {
	out, err := c.output("log", "-1", "--format=%s", ref)
	if err != nil {
		return "", fmt.Errorf("failed to read subject of %s: %w", ref, err)
	}
	return strings.TrimSpace(out), nil
}

// Commit creates a commit with the given message
func (c *Client) Commit(message string) error {
	if err := c.run("commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// ResetHard hard-resets the current branch to a ref.
func (c *Client) ResetHard(ref string) error {
	if err := c.run("reset", "--hard", ref); err != nil {
		return fmt.Errorf("failed to reset to %s: %w", ref, err)
	}
	return nil
}

// Push pushes a branch to origin.
func (c *Client) Push(branch string) error {
	if err := c.run("push", "origin", branch); err != nil {
		return fmt.Errorf("failed to push %s: %w", branch, err)
	}
	return nil
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

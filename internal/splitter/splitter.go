// Package splitter decomposes an uncommitted working tree into logically
// cohesive commits. The pipeline runs strictly downstream: extract changed
// files, parse diff hunks, embed hunk text, cluster by cosine similarity,
// synthesize a commit message per cluster, then stage and commit each group.
// Files the clustering stage cannot place re-enter grouping through a
// path/extension heuristic.
package splitter

import (
	"context"
	"fmt"
	"time"

	"github.com/pders01/git-split/internal/cluster"
	"github.com/pders01/git-split/internal/models"
)

// Embedder produces one fixed-length vector per input text, preserving order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Generator accepts a system and user prompt and returns generated text.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Git is the version-control surface the pipeline consumes. Implemented by
// *git.Client; the pipeline never shells out directly.
type Git interface {
	CurrentBranch() (string, error)
	UnstagedFiles() ([]string, error)
	StagedFiles() ([]string, error)
	UntrackedFiles() ([]string, error)
	Show(ref, path string) (string, error)
	ExistsAt(ref, path string) bool
	ExistsInWorktree(path string) bool
	ReadWorktreeFile(path string) (string, error)
	DiffFile(path string) (string, error)
	DiffFileStaged(path string) (string, error)
	DiffFileHEAD(path string) (string, error)
	AddFile(path string) error
	RemoveFile(path string) error
	ApplyCached(patch string) error
	ResetIndex() error
	HasStagedChanges() (bool, error)
	CreateBranch(branch string) error
	BranchExists(branch string) bool
	Commit(message string) error
	Push(branch string) error
}

// Options configures a Splitter. Zero values fall back to defaults.
type Options struct {
	// NewEmbedder constructs the embedding client; it is invoked lazily on
	// first use and the result is owned by the splitter for the run.
	NewEmbedder func() (Embedder, error)
	// NewGenerator constructs the language-model client, lazily. A
	// construction failure routes every synthesis through the deterministic
	// fallback message.
	NewGenerator func() (Generator, error)
	// Threshold is the clustering similarity threshold (default 0.30).
	Threshold float64
	// RequestDelay is the pause between consecutive language-model calls.
	RequestDelay time.Duration
	// MaxImportantLines caps the summarized diff lines per file in the
	// synthesis prompt (default 15).
	MaxImportantLines int
	// BackupPrefix names backup branches (default "backup-before-split").
	BackupPrefix string
	// Push pushes the current branch after a run with at least one commit.
	Push bool
	// DryRun stops after synthesis: groups are returned but no branch is
	// created, nothing is staged and nothing is committed.
	DryRun bool
	// Progress receives status messages; nil discards them.
	Progress models.ProgressFunc
}

// Splitter runs the intelligent commit splitting pipeline against one
// repository. A Splitter is single-threaded: the git index and working tree
// are a single-writer resource for the duration of a run.
type Splitter struct {
	git       Git
	opts      Options
	embedder  Embedder
	generator Generator
	genFailed bool
}

// New creates a Splitter for the given repository client.
func New(g Git, opts Options) *Splitter {
	if opts.Threshold == 0 {
		opts.Threshold = cluster.DefaultThreshold
	}
	if opts.BackupPrefix == "" {
		opts.BackupPrefix = "backup-before-split"
	}
	return &Splitter{git: g, opts: opts}
}

func (s *Splitter) report(level models.ProgressLevel, format string, args ...any) {
	s.opts.Progress.Report(level, format, args...)
}

// Run executes the full pipeline and returns the commit groups it
// produced. With DryRun set it returns the planned groups without touching
// the repository; otherwise each group is staged and committed, guarded by
// a backup branch, and optionally pushed.
func (s *Splitter) Run(ctx context.Context) ([]*models.CommitGroup, error) {
	s.report(models.ProgressInfo, "Extracting file changes...")
	changes, err := s.extractChanges()
	if err != nil {
		return nil, fmt.Errorf("failed to extract changes: %w", err)
	}
	if len(changes) == 0 {
		s.report(models.ProgressInfo, "No changes detected in working tree")
		return nil, nil
	}
	s.report(models.ProgressInfo, "Found %d files with changes", len(changes))

	groups := s.groupChanges(ctx, changes)
	s.report(models.ProgressInfo, "Identified %d logical commit groups", len(groups))

	s.synthesizeAll(ctx, groups)

	if s.opts.DryRun {
		s.report(models.ProgressInfo, "Dry run: no commits created")
		return groups, nil
	}

	if err := s.execute(ctx, groups); err != nil {
		return groups, err
	}
	return groups, nil
}

// groupChanges partitions every hunk into commit groups: the cluster path
// for embeddable hunks, the heuristic path for files without them. When the
// embedding model is unavailable every file is routed through the heuristic
// fallback instead.
func (s *Splitter) groupChanges(ctx context.Context, changes []*models.FileChange) []*models.CommitGroup {
	var clusterable []models.ClusterMember
	var hunkless []*models.FileChange

	for i, fc := range changes {
		if len(fc.Hunks) == 0 {
			hunkless = append(hunkless, fc)
			continue
		}
		for j := range fc.Hunks {
			clusterable = append(clusterable, models.ClusterMember{Hunk: &fc.Hunks[j], FileIndex: i})
		}
	}

	var groups []*models.CommitGroup
	if len(clusterable) > 0 {
		clustered, err := s.clusterHunks(ctx, changes, clusterable)
		if err != nil {
			s.report(models.ProgressWarning, "Embedding unavailable, falling back to heuristic grouping: %v", err)
			return s.heuristicGroups(changes)
		}
		groups = clustered
	}

	return append(groups, s.heuristicGroups(hunkless)...)
}

// clusterHunks embeds every hunk's context and greedily clusters the
// vectors, producing one commit group per cluster.
func (s *Splitter) clusterHunks(ctx context.Context, changes []*models.FileChange, members []models.ClusterMember) ([]*models.CommitGroup, error) {
	embedder, err := s.lazyEmbedder()
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(members))
	for i, m := range members {
		texts[i] = m.Hunk.Context()
	}

	s.report(models.ProgressInfo, "Embedding %d hunks...", len(texts))
	vectors, err := embedder.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d hunks", len(vectors), len(texts))
	}

	clusters := cluster.Greedy(vectors, s.opts.Threshold)
	s.report(models.ProgressInfo, "Clustered %d hunks into %d groups (threshold %.2f)", len(members), len(clusters), s.opts.Threshold)

	groups := make([]*models.CommitGroup, 0, len(clusters))
	for i, c := range clusters {
		group := &models.CommitGroup{
			FeatureName: fmt.Sprintf("change-group-%d", i+1),
			Description: fmt.Sprintf("%d related hunks, %.0f%% similarity", len(c.Indexes), c.AvgSimilarity*100),
		}
		seen := make(map[int]bool)
		for _, idx := range c.Indexes {
			m := members[idx]
			group.Hunks = append(group.Hunks, m.Hunk)
			if !seen[m.FileIndex] {
				seen[m.FileIndex] = true
				group.Files = append(group.Files, changes[m.FileIndex])
			}
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (s *Splitter) lazyEmbedder() (Embedder, error) {
	if s.embedder != nil {
		return s.embedder, nil
	}
	if s.opts.NewEmbedder == nil {
		return nil, fmt.Errorf("no embedder configured")
	}
	e, err := s.opts.NewEmbedder()
	if err != nil {
		return nil, err
	}
	s.embedder = e
	return e, nil
}

func (s *Splitter) lazyGenerator() (Generator, error) {
	if s.generator != nil {
		return s.generator, nil
	}
	if s.genFailed {
		return nil, fmt.Errorf("language model unavailable")
	}
	if s.opts.NewGenerator == nil {
		s.genFailed = true
		return nil, fmt.Errorf("no generator configured")
	}
	g, err := s.opts.NewGenerator()
	if err != nil {
		s.genFailed = true
		return nil, err
	}
	s.generator = g
	return g, nil
}

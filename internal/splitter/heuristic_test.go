package splitter

import (
	"testing"

	"github.com/pders01/git-split/internal/models"
)

func TestGroupKeyVocabulary(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"frontend/app.tsx", "frontend"},
		{"client/index.js", "frontend"},
		{"src/components/Button.tsx", "frontend"},
		{"backend/handler.go", "backend"},
		{"api/routes.py", "backend"},
		{"docs/guide.md", "documentation"},
		{"tests/unit_test.go", "testing"},
		{"config/app.yaml", "configuration"},
		{"scripts/deploy.sh", "utilities"},
		{"main.go", "code"},
		{"notes.md", "documentation"},
		{"settings.json", "configuration"},
		{"Makefile", "other"},
		{"vendor/thing.xyz", "other"},
	}

	for _, tc := range cases {
		if got := GroupKey(tc.path); got != tc.want {
			t.Errorf("GroupKey(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

// The heuristic rule is a pure function of the path: repeated runs must
// assign the same bucket.
func TestGroupKeyDeterministic(t *testing.T) {
	paths := []string{"frontend/a.ts", "weird.bin", "docs/readme.md", "x/y/z.go"}
	for _, path := range paths {
		first := GroupKey(path)
		for i := 0; i < 5; i++ {
			if got := GroupKey(path); got != first {
				t.Fatalf("GroupKey(%q) changed between runs: %q vs %q", path, first, got)
			}
		}
	}
}

func TestHeuristicGroupsBucketing(t *testing.T) {
	s := New(nil, Options{})

	changes := []*models.FileChange{
		{Path: "docs/a.md"},
		{Path: "docs/b.md"},
		{Path: "backend/server.go", Hunks: []models.DiffHunk{{FilePath: "backend/server.go", OldStart: 1, NewStart: 1}}},
	}

	groups := s.heuristicGroups(changes)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	if groups[0].FeatureName != "documentation" || len(groups[0].Files) != 2 {
		t.Errorf("first group = %s with %d files", groups[0].FeatureName, len(groups[0].Files))
	}
	if groups[1].FeatureName != "backend" || len(groups[1].Files) != 1 {
		t.Errorf("second group = %s with %d files", groups[1].FeatureName, len(groups[1].Files))
	}
	// File hunks ride along so hunk-level staging still applies.
	if len(groups[1].Hunks) != 1 {
		t.Errorf("backend group carries %d hunks, want 1", len(groups[1].Hunks))
	}
}

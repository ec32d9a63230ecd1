package diff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pders01/git-split/internal/models"
)

const modifiedDiff = `diff --git a/pkg/util.go b/pkg/util.go
index 1234567..89abcde 100644
--- a/pkg/util.go
+++ b/pkg/util.go
@@ -1,5 +1,6 @@
 package util

+import "fmt"

 func Old() {
 }
@@ -20,3 +21,2 @@ func Other() {
 	a := 1
-	b := 2
-	use(a, b)
+	use(a)
`

func TestParseHunksModifiedFile(t *testing.T) {
	hunks := ParseHunks("pkg/util.go", modifiedDiff, models.HunkUnstaged)

	if len(hunks) != 2 {
		t.Fatalf("expected 2 hunks, got %d", len(hunks))
	}

	first := hunks[0]
	if first.FilePath != "pkg/util.go" {
		t.Errorf("file path = %q", first.FilePath)
	}
	if first.OldStart != 1 || first.OldLines != 5 || first.NewStart != 1 || first.NewLines != 6 {
		t.Errorf("first hunk fields = -%d,%d +%d,%d", first.OldStart, first.OldLines, first.NewStart, first.NewLines)
	}
	if first.Source != models.HunkUnstaged {
		t.Errorf("source = %q", first.Source)
	}

	second := hunks[1]
	if second.OldStart != 20 || second.OldLines != 3 || second.NewStart != 21 || second.NewLines != 2 {
		t.Errorf("second hunk fields = -%d,%d +%d,%d", second.OldStart, second.OldLines, second.NewStart, second.NewLines)
	}

	for i, h := range hunks {
		if err := h.Validate(); err != nil {
			t.Errorf("hunk %d fails line-count invariant: %v", i, err)
		}
	}
}

// Reconstructing the canonical header from a parsed hunk's numeric fields
// must reproduce the header the hunk was parsed from.
func TestHunkHeaderRoundTrip(t *testing.T) {
	hunks := ParseHunks("pkg/util.go", modifiedDiff, models.HunkUnstaged)

	var headers []string
	for _, line := range strings.Split(modifiedDiff, "\n") {
		if m := hunkHeaderRe.FindString(line); m != "" {
			headers = append(headers, m)
		}
	}

	if len(headers) != len(hunks) {
		t.Fatalf("found %d headers for %d hunks", len(headers), len(hunks))
	}
	for i, h := range hunks {
		if h.Header() != headers[i] {
			t.Errorf("hunk %d: Header() = %q, original %q", i, h.Header(), headers[i])
		}
	}
}

func TestParseHunksOmittedCounts(t *testing.T) {
	// Git omits the line count when it is exactly 1.
	diffText := "--- a/f.txt\n+++ b/f.txt\n@@ -1 +1 @@\n-old\n+new\n"
	hunks := ParseHunks("f.txt", diffText, models.HunkUnstaged)

	if len(hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(hunks))
	}
	h := hunks[0]
	if h.OldLines != 1 || h.NewLines != 1 {
		t.Errorf("counts = %d/%d, want 1/1", h.OldLines, h.NewLines)
	}
	if h.Header() != "@@ -1,1 +1,1 @@" {
		t.Errorf("Header() = %q", h.Header())
	}
}

func TestParseHunksNewFileDevNull(t *testing.T) {
	diffText := `diff --git a/newfile.txt b/newfile.txt
new file mode 100644
index 0000000..e69de29
--- /dev/null
+++ b/newfile.txt
@@ -0,0 +1,2 @@
+hello
+world
`
	hunks := ParseHunks("newfile.txt", diffText, models.HunkStaged)

	if len(hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(hunks))
	}
	// The /dev/null sentinel must be replaced by the real path.
	if hunks[0].FilePath != "newfile.txt" {
		t.Errorf("file path = %q, want newfile.txt", hunks[0].FilePath)
	}
	if err := hunks[0].Validate(); err != nil {
		t.Errorf("hunk fails line-count invariant: %v", err)
	}
}

func TestParseHunksDeletedFileDevNull(t *testing.T) {
	diffText := `diff --git a/gone.txt b/gone.txt
deleted file mode 100644
index e69de29..0000000
--- a/gone.txt
+++ /dev/null
@@ -1,2 +0,0 @@
-hello
-world
`
	hunks := ParseHunks("gone.txt", diffText, models.HunkUnstaged)

	if len(hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(hunks))
	}
	if hunks[0].FilePath != "gone.txt" {
		t.Errorf("file path = %q, want gone.txt", hunks[0].FilePath)
	}
}

func TestParseHunksEmptyDiff(t *testing.T) {
	if hunks := ParseHunks("f.txt", "", models.HunkUnstaged); hunks != nil {
		t.Errorf("expected nil for empty diff, got %d hunks", len(hunks))
	}
	if hunks := ParseHunks("f.txt", "   \n", models.HunkUnstaged); hunks != nil {
		t.Errorf("expected nil for blank diff, got %d hunks", len(hunks))
	}
}

func TestParseHunksNoNewlineMarker(t *testing.T) {
	diffText := "--- a/f.txt\n+++ b/f.txt\n@@ -1,1 +1,1 @@\n-old\n+new\n\\ No newline at end of file\n"
	hunks := ParseHunks("f.txt", diffText, models.HunkUnstaged)

	if len(hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(hunks))
	}
	for _, line := range hunks[0].Content {
		if strings.HasPrefix(line, `\`) {
			t.Errorf("no-newline marker leaked into content: %q", line)
		}
	}
	if err := hunks[0].Validate(); err != nil {
		t.Errorf("hunk fails line-count invariant: %v", err)
	}
}

// A removed SQL comment line renders as "--- ..." in the diff, which looks
// like a file header. It must be kept as hunk content, and the path of
// later hunks must stay intact.
func TestParseHunksDashCommentContent(t *testing.T) {
	diffText := `diff --git a/query.sql b/query.sql
--- a/query.sql
+++ b/query.sql
@@ -1,3 +1,2 @@
--- old comment
 SELECT id
 FROM users
@@ -10,3 +9,3 @@
 WHERE active
--- stale note
+-- fresh note
 ORDER BY id
`
	hunks := ParseHunks("query.sql", diffText, models.HunkUnstaged)

	if len(hunks) != 2 {
		t.Fatalf("expected 2 hunks, got %d", len(hunks))
	}
	for i, h := range hunks {
		if err := h.Validate(); err != nil {
			t.Errorf("hunk %d fails line-count invariant: %v", i, err)
		}
		if h.FilePath != "query.sql" {
			t.Errorf("hunk %d: file path = %q, want query.sql", i, h.FilePath)
		}
	}
	if got := hunks[0].Content[0]; got != "--- old comment" {
		t.Errorf("removed comment line = %q, want it kept as content", got)
	}
}

func TestParseHunksManyHeaders(t *testing.T) {
	// A larger synthetic diff: every parsed hunk must satisfy both the
	// line-count invariant and the header round-trip.
	var b strings.Builder
	b.WriteString("--- a/big.txt\n+++ b/big.txt\n")
	for i := 0; i < 10; i++ {
		old := 1 + i*20
		fmt.Fprintf(&b, "@@ -%d,3 +%d,4 @@\n context\n-removed\n+added\n+another\n context\n", old, old+i)
	}

	hunks := ParseHunks("big.txt", b.String(), models.HunkUnstaged)
	if len(hunks) != 10 {
		t.Fatalf("expected 10 hunks, got %d", len(hunks))
	}
	for i, h := range hunks {
		if err := h.Validate(); err != nil {
			t.Errorf("hunk %d: %v", i, err)
		}
		want := fmt.Sprintf("@@ -%d,3 +%d,4 @@", 1+i*20, 1+i*20+i)
		if h.Header() != want {
			t.Errorf("hunk %d: Header() = %q, want %q", i, h.Header(), want)
		}
	}
}

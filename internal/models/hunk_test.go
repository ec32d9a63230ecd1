package models

import "testing"

func TestHunkHeader(t *testing.T) {
	h := DiffHunk{FilePath: "a.go", OldStart: 10, OldLines: 7, NewStart: 12, NewLines: 9}

	want := "@@ -10,7 +12,9 @@"
	if got := h.Header(); got != want {
		t.Errorf("Header() = %q, want %q", got, want)
	}
}

func TestHunkKey(t *testing.T) {
	h := DiffHunk{FilePath: "dir/a.go", OldStart: 3, NewStart: 5}
	if got := h.Key(); got != "dir/a.go:3:5" {
		t.Errorf("Key() = %q", got)
	}
}

func TestHunkValidate(t *testing.T) {
	h := DiffHunk{
		OldStart: 1, OldLines: 3, NewStart: 1, NewLines: 3,
		Content: []string{" a", "-b", "+c", " d"},
	}
	if err := h.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	h.OldLines = 5
	if err := h.Validate(); err == nil {
		t.Error("Validate() accepted wrong old line count")
	}
}

func TestHunkContext(t *testing.T) {
	h := DiffHunk{Content: []string{"+foo", " bar"}}
	if got := h.Context(); got != "+foo\n bar" {
		t.Errorf("Context() = %q", got)
	}
}

func TestCountDiffLines(t *testing.T) {
	diff := "--- a/f\n+++ b/f\n@@ -1,2 +1,3 @@\n context\n-removed\n+added one\n+added two\n"
	added, removed := CountDiffLines(diff)
	if added != 2 || removed != 1 {
		t.Errorf("CountDiffLines() = +%d -%d, want +2 -1", added, removed)
	}
}

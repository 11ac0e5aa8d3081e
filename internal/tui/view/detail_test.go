package view

import (
	"strings"
	"testing"

	"github.com/glabrego/lobsters-cli/internal/lobsters"
	tuitheme "github.com/glabrego/lobsters-cli/internal/tui/theme"
)

func TestDetailLines_FocusesSelectedComment(t *testing.T) {
	post := samplePost()
	post.Description = "<p>Some context from the submitter.</p>"
	post.Comments = []lobsters.Comment{
		{Author: "bob", CommentPlain: "top level"},
		{Author: "carol", Depth: 1, CommentPlain: "reply"},
	}

	lines, focus := DetailLines(DetailParams{Post: post, CommentSelected: 1, Now: testNow, Width: 60, UI: DefaultUIOptions()}, tuitheme.Default())
	header := stripANSI(lines[focus])
	if !strings.HasPrefix(header, "  ▶ carol") {
		t.Fatalf("expected focus on carol's indented header, got %q", header)
	}
	plain := stripANSI(strings.Join(lines, "\n"))
	if !strings.Contains(plain, "Some context from the submitter.") {
		t.Fatalf("expected description in popup, got:\n%s", plain)
	}
	if !strings.Contains(plain, "https://www.example.com/scheduler") {
		t.Fatalf("expected destination URL in popup, got:\n%s", plain)
	}
}

func TestDetailLines_LoadingAndEmpty(t *testing.T) {
	th := tuitheme.Default()
	lines, focus := DetailLines(DetailParams{Post: samplePost(), Loading: true, Spinner: "*", Width: 60}, th)
	if focus != 0 || stripANSI(lines[len(lines)-1]) != "* loading comments" {
		t.Fatalf("unexpected loading popup: %q (focus %d)", lines, focus)
	}

	lines, _ = DetailLines(DetailParams{Post: samplePost(), Width: 60}, th)
	if stripANSI(lines[len(lines)-1]) != "No comments" {
		t.Fatalf("expected empty comments notice, got %q", stripANSI(lines[len(lines)-1]))
	}
}

func TestBoxLines_PadsAndClips(t *testing.T) {
	got := BoxLines([]string{"a", "bb", "cccccc"}, 1, 4, 3)
	want := []string{"bb  ", "c...", "    "}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("BoxLines = %q, want %q", got, want)
	}
}

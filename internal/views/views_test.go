package views

import (
	"strings"
	"testing"

	"github.com/sandeepkv93/dashd/internal/model"
)

func TestRenderSectionsOffsets(t *testing.T) {
	out, offsets := RenderSections(model.ThemeDark, []SectionData{
		{Title: "A", Body: "line1\nline2", Open: true, Selected: true},
		{Title: "B", Body: "hidden", Open: false},
		{Title: "C", Body: "x", Open: true},
	})
	if len(offsets) != 3 {
		t.Fatalf("expected 3 offsets, got %v", offsets)
	}
	lines := strings.Split(out, "\n")
	for i, off := range offsets {
		want := []string{"A", "B", "C"}[i]
		if !strings.Contains(lines[off], want) {
			t.Fatalf("offset %d points at %q, want header %q", off, lines[off], want)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Fatal("closed section body should not render")
	}
	if !strings.Contains(lines[0], ">") || !strings.Contains(lines[0], chevronOpen) {
		t.Fatalf("expected selected open header, got %q", lines[0])
	}
	if !strings.Contains(lines[offsets[1]], chevronClosed) {
		t.Fatalf("expected closed chevron, got %q", lines[offsets[1]])
	}
}

func TestMarkdownRendererFallsBackOnEmpty(t *testing.T) {
	r := NewMarkdownRenderer(model.ThemeLight, 60)
	if r.Render("   ") != "" {
		t.Fatal("expected empty render for blank markdown")
	}
	var nilRenderer *MarkdownRenderer
	if nilRenderer.Render("plain") != "plain" {
		t.Fatal("nil renderer should return raw text")
	}
}

func TestMarkdownRendererKeepsText(t *testing.T) {
	r := NewMarkdownRenderer(model.ThemeDark, 60)
	out := r.Render("- [LeetCode](https://leetcode.com) two-sum")
	if !strings.Contains(out, "LeetCode") {
		t.Fatalf("expected list text in output: %q", out)
	}
}

func TestRenderAppIncludesParts(t *testing.T) {
	out := RenderApp(AppData{
		Theme:      model.ThemeSystem,
		Header:     "dashd",
		Title:      "Your Personalized Dashboard",
		BulkAction: "Collapse all",
		Body:       "body",
		StatusLine: "saved",
		Footer:     "keys",
	})
	for _, want := range []string{"dashd", "Your Personalized Dashboard", "[a] Collapse all", "body", "saved", "keys"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %q", want, out)
		}
	}
}

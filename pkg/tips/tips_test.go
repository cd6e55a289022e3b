package tips

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	tip, err := Get(1)
	if err != nil || tip.Title != "Try meditation" {
		t.Fatalf("unexpected first tip %+v (%v)", tip, err)
	}
	if _, err := Get(0); err == nil {
		t.Fatalf("expected error for 0")
	}
	if _, err := Get(len(All()) + 1); err == nil {
		t.Fatalf("expected error past the end")
	}
}

func TestListMarkdown(t *testing.T) {
	md := ListMarkdown()
	for i, tip := range All() {
		if !strings.Contains(md, tip.Title) {
			t.Fatalf("tip %d missing from list", i+1)
		}
	}
}

func TestRender(t *testing.T) {
	out, err := Render(DetailMarkdown(All()[1]), 60, false)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "walk") {
		t.Fatalf("rendered output lost content: %q", out)
	}
	plain, _ := Render("# x", 0, true)
	if plain != "# x" {
		t.Fatalf("plain render must return markdown unchanged")
	}
}

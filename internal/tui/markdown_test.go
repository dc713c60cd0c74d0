package tui

import (
	"strings"
	"testing"
)

func TestMarkdownRenderer_PlainTextPassesThrough(t *testing.T) {
	md := NewMarkdownRenderer()
	out := md.Render("Form A is due in week 2.", 60)
	if !strings.Contains(out, "Form A is due in week 2.") {
		t.Fatalf("plain text mangled: %q", out)
	}
	if strings.Contains(out, "<p>") {
		t.Fatalf("html leaked into output: %q", out)
	}
}

func TestMarkdownRenderer_ListsBecomeBullets(t *testing.T) {
	md := NewMarkdownRenderer()
	out := md.Render("- Form A\n- Form B\n", 60)
	if strings.Count(out, "•") != 2 {
		t.Fatalf("expected two bullets: %q", out)
	}
}

func TestMarkdownRenderer_EntitiesDecoded(t *testing.T) {
	md := NewMarkdownRenderer()
	out := md.Render("deadline & penalty: submit < week 6", 60)
	if !strings.Contains(out, "&") || strings.Contains(out, "&amp;") {
		t.Fatalf("entities not decoded: %q", out)
	}
}

func TestMarkdownRenderer_CodeBlocksSurvive(t *testing.T) {
	md := NewMarkdownRenderer()
	out := md.Render("Use:\n\n```bash\ncurl localhost:8000/health\n```\n", 60)
	if !strings.Contains(out, "curl localhost:8000/health") {
		t.Fatalf("code block content lost: %q", out)
	}
	if strings.Contains(out, "CODE_BLOCK") {
		t.Fatalf("placeholder token leaked: %q", out)
	}
}

package htmldiff

import (
	"strings"
	"testing"
)

func TestUnified(t *testing.T) {
	before := "<ul>\n<li data-id=\"1\">Alpha</li>\n\n<li data-id=\"2\">Beta</li>\n</ul>\n"
	after := "<ul>\n<li data-id=\"2\">Beta</li>\n\n<li data-id=\"2\">Beta</li>\n</ul>\n"

	got := Unified(before, after)
	want := "  <ul>\n- <li data-id=\"1\">Alpha</li>\n+ <li data-id=\"2\">Beta</li>\n  <li data-id=\"2\">Beta</li>\n  </ul>\n"
	if got != want {
		t.Fatalf("unexpected diff:\n%s\nwant:\n%s", got, want)
	}
	if Unified(before, before) != NoChanges {
		t.Fatalf("identical input should report no changes")
	}
}

func TestInline(t *testing.T) {
	got := Inline(`<p>Alpha</p>`, `<p>Gamma</p>`)
	if !strings.Contains(got, "[-") || !strings.Contains(got, "{+") {
		t.Fatalf("expected change markers, got %q", got)
	}
	if !strings.HasPrefix(got, "<p>") || !strings.HasSuffix(got, "</p>") {
		t.Fatalf("unchanged text should be kept, got %q", got)
	}
	if Inline("same", "same") != "same" {
		t.Fatalf("identical input should be returned unchanged")
	}
}

func TestChanged(t *testing.T) {
	removed, added := Changed("a\nb\nc\n", "a\nx\ny\nc\n")
	if removed != 1 || added != 2 {
		t.Fatalf("expected 1 removed and 2 added, got %d/%d", removed, added)
	}
	if r, a := Changed("a", "a"); r != 0 || a != 0 {
		t.Fatalf("identical input should count nothing")
	}
}

package markdown

import (
	"strings"
	"testing"
)

func TestToHTMLBasics(t *testing.T) {
	html, err := ToHTML("# Heading\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("ToHTML error: %v", err)
	}
	if !strings.Contains(html, "<h1") {
		t.Errorf("missing heading in output: %s", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("missing bold in output: %s", html)
	}
}

func TestToHTMLEscapesRawHTML(t *testing.T) {
	html, err := ToHTML(`before <script>alert("x")</script> after`)
	if err != nil {
		t.Fatalf("ToHTML error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("raw script tag passed through: %s", html)
	}
}

func TestToHTMLGFMTable(t *testing.T) {
	src := "| a | b |\n|---|---|\n| 1 | 2 |"
	html, err := ToHTML(src)
	if err != nil {
		t.Fatalf("ToHTML error: %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Errorf("GFM table not rendered: %s", html)
	}
}

func TestToHTMLCodeHighlighting(t *testing.T) {
	src := "```go\nfunc main() {}\n```"
	html, err := ToHTML(src)
	if err != nil {
		t.Fatalf("ToHTML error: %v", err)
	}
	// The highlighter emits inline styles instead of a bare <pre><code>.
	if !strings.Contains(html, "style=") {
		t.Errorf("code block not highlighted: %s", html)
	}
}

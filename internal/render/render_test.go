package render

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-dynamic-embed/pkg/dom"
	"github.com/goliatone/go-dynamic-embed/pkg/interfaces"
)

func TestHTMLRenderMarkdownAppendsFragment(t *testing.T) {
	r := NewHTML(interfaces.ParseOptions{})
	container := dom.NewElement("div", "dynamic-embed")

	err := r.RenderMarkdown(context.Background(), "# Daily-1.md\n\nHello **world**\n\n---\n", container, "")
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}

	children := container.Children()
	if len(children) != 3 {
		t.Fatalf("expected h1, p and hr, got %d children", len(children))
	}
	if children[0].Tag() != "h1" || children[1].Tag() != "p" || children[2].Tag() != "hr" {
		t.Fatalf("unexpected structure: %s %s %s", children[0].Tag(), children[1].Tag(), children[2].Tag())
	}
	if id, _ := children[0].Attr("id"); id == "" {
		t.Fatalf("expected auto heading id")
	}
}

func TestHTMLRebasesRelativeLinks(t *testing.T) {
	r := NewHTML(interfaces.ParseOptions{})

	out, err := r.Convert([]byte("[a](other.md) [b](https://example.com/x) [c](#top) ![i](img/p.png)"), "journal/2024/today.md")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`href="journal/2024/other.md"`,
		`href="https://example.com/x"`,
		`href="#top"`,
		`src="journal/2024/img/p.png"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %s in %s", want, html)
		}
	}
}

func TestHTMLSafeModeEscapesRawHTML(t *testing.T) {
	r := NewHTML(interfaces.ParseOptions{SafeMode: true})

	out, err := r.Convert([]byte("<script>alert(1)</script>\n"), "")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Fatalf("expected raw html to be omitted, got %s", out)
	}
}

func TestHTMLHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewHTML(interfaces.ParseOptions{}).RenderMarkdown(ctx, "text", dom.NewElement("div"), "")
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestRebaseLink(t *testing.T) {
	cases := []struct {
		source, dest, want string
	}{
		{"", "a.md", "a.md"},
		{"root.md", "a.md", "a.md"},
		{"notes/today.md", "../a.md", "a.md"},
		{"notes/today.md", "/abs.md", "/abs.md"},
		{"notes/today.md", "mailto:me@example.com", "mailto:me@example.com"},
	}
	for _, tc := range cases {
		if got := RebaseLink(tc.source, tc.dest); got != tc.want {
			t.Fatalf("RebaseLink(%q, %q) = %q, want %q", tc.source, tc.dest, got, tc.want)
		}
	}
}

func TestCollectExtensionsDeduplicatesAndIgnoresUnknown(t *testing.T) {
	exts := collectExtensions([]string{"table", "TABLE", "unknown", " footnote "})
	if len(exts) != 2 {
		t.Fatalf("expected 2 extensions, got %d", len(exts))
	}
	if len(collectExtensions(nil)) != 3 {
		t.Fatalf("expected default extension set")
	}
}

func TestSourceAppendsVerbatimText(t *testing.T) {
	container := dom.NewElement("div")
	body := "# Title\n\n<b>raw</b>\n"

	if err := NewSource().RenderMarkdown(context.Background(), body, container, "x.md"); err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if container.Text() != body {
		t.Fatalf("expected verbatim text, got %q", container.Text())
	}
}

package parser

import (
	"strings"
	"testing"

	"github.com/richtext-labs/ptrender/internal/ptext"
)

const sampleHTML = `<html><head><title>ignored</title></head><body>
<h2>Section</h2>
<p>Plain <strong>bold</strong> and <a href="https://example.com">a link</a>.</p>
<pre><code class="language-python">print(1)</code></pre>
<script>alert(1)</script>
</body></html>`

func parseHTML(t *testing.T, src string) *ptext.Document {
	t.Helper()
	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(src), "test.html")
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestHTMLParser_Blocks(t *testing.T) {
	doc := parseHTML(t, sampleHTML)
	if len(doc.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d: %+v", len(doc.Blocks), doc.Blocks)
	}

	if doc.Blocks[0].Style != "h2" || doc.Blocks[0].Text() != "Section" {
		t.Errorf("heading block wrong: %+v", doc.Blocks[0])
	}
	if doc.Blocks[2].Type != "code" {
		t.Fatalf("expected code block, got %q", doc.Blocks[2].Type)
	}
	if lang, _ := doc.Blocks[2].ExtraString("language"); lang != "python" {
		t.Errorf("expected language python, got %q", lang)
	}
}

func TestHTMLParser_InlineMarksAndLinks(t *testing.T) {
	doc := parseHTML(t, sampleHTML)
	para := doc.Blocks[1]

	var bold bool
	for _, sp := range para.Children {
		if sp.HasMark("strong") && sp.Text == "bold" {
			bold = true
		}
	}
	if !bold {
		t.Errorf("expected a bold span: %+v", para.Children)
	}

	if len(para.MarkDefs) != 1 || para.MarkDefs[0].Href != "https://example.com" {
		t.Fatalf("expected one link markDef, got %+v", para.MarkDefs)
	}
	key := para.MarkDefs[0].Key
	var linked bool
	for _, sp := range para.Children {
		if sp.HasMark(key) {
			linked = true
		}
	}
	if !linked {
		t.Errorf("no span references the link definition: %+v", para.Children)
	}
}

func TestHTMLParser_ScriptDropped(t *testing.T) {
	doc := parseHTML(t, sampleHTML)
	for _, b := range doc.Blocks {
		if strings.Contains(b.Text(), "alert") {
			t.Errorf("script content leaked into blocks: %+v", b)
		}
	}
}

func TestCollapseSpace_EdgeWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"interior run", "a  \n  b", "a b"},
		{"space edges", " a b ", " a b "},
		{"newline edges", "\na b\n", " a b "},
		{"carriage return edges", "\r\na b\r\n", " a b "},
		{"whitespace only", " \r\n\t ", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := collapseSpace(tc.in); got != tc.want {
				t.Errorf("collapseSpace(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestHTMLParser_CRLFKeepsWordSeparation(t *testing.T) {
	doc := parseHTML(t, "<html><body><p>Plain <strong>bold</strong>\r\nand more.</p></body></html>")
	text := doc.Blocks[0].Text()
	if !strings.Contains(text, "bold and") {
		t.Errorf("separating space lost around CRLF text node: %q", text)
	}
}

func TestHTMLParser_Empty(t *testing.T) {
	p := &HTMLParser{}
	if _, err := p.Parse(strings.NewReader("<html><body></body></html>"), "empty.html"); err == nil {
		t.Error("expected an error for empty input")
	}
}

package parser

import (
	"strings"
	"testing"

	"github.com/richtext-labs/ptrender/internal/ptext"
)

const sampleMarkdown = "# Title\n\nPlain with **bold** and *italic* and `code`.\n\n" +
	"See [the docs](https://example.com/docs).\n\n" +
	"```go\nfmt.Println(1)\n```\n"

func parseMarkdown(t *testing.T, src string) *ptext.Document {
	t.Helper()
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(src), "test.md")
	if err != nil {
		t.Fatalf("parse markdown: %v", err)
	}
	return doc
}

func TestMarkdownParser_Blocks(t *testing.T) {
	doc := parseMarkdown(t, sampleMarkdown)
	if len(doc.Blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d: %+v", len(doc.Blocks), doc.Blocks)
	}

	if doc.Blocks[0].Style != "h1" || doc.Blocks[0].Text() != "Title" {
		t.Errorf("heading block wrong: %+v", doc.Blocks[0])
	}
	if doc.Blocks[1].Style != "normal" {
		t.Errorf("expected normal paragraph, got style %q", doc.Blocks[1].Style)
	}
	if doc.Blocks[3].Type != "code" {
		t.Fatalf("expected code block, got %q", doc.Blocks[3].Type)
	}
	if lang, _ := doc.Blocks[3].ExtraString("language"); lang != "go" {
		t.Errorf("expected language go, got %q", lang)
	}
	if got := doc.Blocks[3].Text(); !strings.Contains(got, "fmt.Println(1)") {
		t.Errorf("code content wrong: %q", got)
	}
}

func TestMarkdownParser_InlineMarks(t *testing.T) {
	doc := parseMarkdown(t, sampleMarkdown)
	para := doc.Blocks[1]

	var bold, italic, code bool
	for _, sp := range para.Children {
		switch {
		case sp.HasMark("strong"):
			bold = bold || sp.Text == "bold"
		case sp.HasMark("em"):
			italic = italic || sp.Text == "italic"
		case sp.HasMark("code"):
			code = code || sp.Text == "code"
		}
	}
	if !bold || !italic || !code {
		t.Errorf("missing inline marks (bold=%v italic=%v code=%v): %+v", bold, italic, code, para.Children)
	}
}

func TestMarkdownParser_Links(t *testing.T) {
	doc := parseMarkdown(t, sampleMarkdown)
	para := doc.Blocks[2]

	if len(para.MarkDefs) != 1 {
		t.Fatalf("expected 1 link markDef, got %d", len(para.MarkDefs))
	}
	def := para.MarkDefs[0]
	if def.Type != "link" || def.Href != "https://example.com/docs" {
		t.Errorf("markDef wrong: %+v", def)
	}

	var linked bool
	for _, sp := range para.Children {
		if sp.HasMark(def.Key) && sp.Text == "the docs" {
			linked = true
		}
	}
	if !linked {
		t.Errorf("no span references the link definition: %+v", para.Children)
	}
}

func TestMarkdownParser_DecodableOutput(t *testing.T) {
	// Converter output must survive the core pipeline: encode, decode,
	// validate.
	doc := parseMarkdown(t, sampleMarkdown)
	out, err := ptext.EncodeString(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	again, err := ptext.DecodeString(out)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := ptext.NewValidator(nil).Validate(again); err != nil {
		t.Errorf("converted document fails validation: %v", err)
	}
}

func TestMarkdownParser_Empty(t *testing.T) {
	p := &MarkdownParser{}
	if _, err := p.Parse(strings.NewReader("   \n"), "empty.md"); err == nil {
		t.Error("expected an error for empty input")
	}
}

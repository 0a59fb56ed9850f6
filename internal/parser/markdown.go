package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/richtext-labs/ptrender/internal/ptext"
)

// MarkdownParser converts Markdown using goldmark. Headings map to hN
// blocks, fenced code to code blocks, and emphasis/code-span/link inlines
// to span marks and link mark definitions.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*ptext.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	doc := &ptext.Document{}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			level := node.Level
			if level > 6 {
				level = 6
			}
			spans, defs := collectInlines(node, src)
			if len(spans) == 0 {
				continue
			}
			doc.Blocks = append(doc.Blocks, textBlock(fmt.Sprintf("h%d", level), spans, defs))

		case *ast.FencedCodeBlock:
			code := blockLines(node, src)
			if strings.TrimSpace(code) == "" {
				continue
			}
			doc.Blocks = append(doc.Blocks, codeBlock(code, string(node.Language(src))))

		case *ast.CodeBlock:
			code := blockLines(node, src)
			if strings.TrimSpace(code) == "" {
				continue
			}
			doc.Blocks = append(doc.Blocks, codeBlock(code, ""))

		case *ast.Paragraph:
			spans, defs := collectInlines(node, src)
			if len(spans) == 0 {
				continue
			}
			doc.Blocks = append(doc.Blocks, textBlock("normal", spans, defs))

		default:
			// Lists, blockquotes, tables: flatten to plain paragraphs.
			t := strings.TrimSpace(extractText(n, src))
			if t != "" {
				doc.Blocks = append(doc.Blocks, paragraph(t))
			}
		}
	}

	if len(doc.Blocks) == 0 {
		return nil, fmt.Errorf("markdown document %s has no content", filename)
	}
	return doc, nil
}

// collectInlines flattens the inline tree below n into spans with marks.
// Nested emphasis stacks marks; links contribute a mark definition whose
// key the nested spans reference.
func collectInlines(n ast.Node, src []byte) ([]ptext.Span, []ptext.MarkDef) {
	var spans []ptext.Span
	var defs []ptext.MarkDef

	var walk func(n ast.Node, marks []string)
	walk = func(n ast.Node, marks []string) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch node := c.(type) {
			case *ast.Text:
				t := string(node.Value(src))
				if node.HardLineBreak() || node.SoftLineBreak() {
					t += "\n"
				}
				if t != "" {
					spans = append(spans, markedSpan(t, marks))
				}
			case *ast.String:
				if len(node.Value) > 0 {
					spans = append(spans, markedSpan(string(node.Value), marks))
				}
			case *ast.Emphasis:
				mark := "em"
				if node.Level >= 2 {
					mark = "strong"
				}
				walk(node, append(marks, mark))
			case *ast.CodeSpan:
				walk(node, append(marks, "code"))
			case *ast.Link:
				def := ptext.MarkDef{Type: "link", Key: newKey(), Href: string(node.Destination)}
				defs = append(defs, def)
				walk(node, append(marks, def.Key))
			case *ast.AutoLink:
				href := string(node.URL(src))
				def := ptext.MarkDef{Type: "link", Key: newKey(), Href: href}
				defs = append(defs, def)
				spans = append(spans, markedSpan(string(node.Label(src)), append(marks, def.Key)))
			default:
				walk(node, marks)
			}
		}
	}
	walk(n, nil)

	return spans, defs
}

// blockLines concatenates the raw source lines of a block node.
func blockLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return buf.String()
}

// extractText gets the plain text content of a goldmark AST subtree.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.FirstChild() == nil {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
			if c.Type() == ast.TypeBlock {
				buf.WriteByte('\n')
			}
		}
	}
	return buf.String()
}

package parser

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/richtext-labs/ptrender/internal/ptext"
)

// HTMLParser converts HTML documents. Heading tags map to hN blocks, p/li/
// blockquote to paragraphs, pre to code blocks; inline formatting tags
// become span marks and anchors become link mark definitions.
type HTMLParser struct{}

// inlineMarks maps inline HTML tags to standard mark names.
var inlineMarks = map[string]string{
	"strong": "strong",
	"b":      "strong",
	"em":     "em",
	"i":      "em",
	"u":      "underline",
	"s":      "strike",
	"del":    "strike",
	"strike": "strike",
	"code":   "code",
}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*ptext.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &ptext.Document{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				spans, defs := htmlInlines(n)
				if len(spans) > 0 {
					doc.Blocks = append(doc.Blocks, textBlock(fmt.Sprintf("h%d", level), spans, defs))
				}
				return
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "pre":
				code := textContent(n)
				if strings.TrimSpace(code) != "" {
					doc.Blocks = append(doc.Blocks, codeBlock(code, codeLanguage(n)))
				}
				return
			case "p", "li", "blockquote", "td":
				spans, defs := htmlInlines(n)
				if len(spans) > 0 {
					doc.Blocks = append(doc.Blocks, textBlock("normal", spans, defs))
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(root); body != nil {
		walk(body)
	} else {
		walk(root)
	}

	if len(doc.Blocks) == 0 {
		return nil, fmt.Errorf("html document %s has no content", filename)
	}
	return doc, nil
}

// htmlInlines flattens the inline content of a container element into spans
// with marks, collecting link definitions along the way.
func htmlInlines(n *html.Node) ([]ptext.Span, []ptext.MarkDef) {
	var spans []ptext.Span
	var defs []ptext.MarkDef

	var walk func(n *html.Node, marks []string)
	walk = func(n *html.Node, marks []string) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				t := collapseSpace(c.Data)
				if t != "" {
					spans = append(spans, markedSpan(t, marks))
				}
			case html.ElementNode:
				if mark, ok := inlineMarks[c.Data]; ok {
					walk(c, append(marks, mark))
					continue
				}
				if c.Data == "a" {
					if href := attrValue(c, "href"); href != "" {
						def := ptext.MarkDef{Type: "link", Key: newKey(), Href: href}
						defs = append(defs, def)
						walk(c, append(marks, def.Key))
						continue
					}
				}
				if c.Data == "br" {
					spans = append(spans, markedSpan("\n", marks))
					continue
				}
				walk(c, marks)
			}
		}
	}
	walk(n, nil)

	return spans, defs
}

// codeLanguage reads a language-* class off a pre's nested code element.
func codeLanguage(pre *html.Node) string {
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "code" {
			for _, cls := range strings.Fields(attrValue(c, "class")) {
				if lang, ok := strings.CutPrefix(cls, "language-"); ok {
					return lang
				}
			}
		}
	}
	return ""
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// collapseSpace folds runs of whitespace into single spaces, dropping
// text nodes that are whitespace only.
func collapseSpace(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	fields := strings.Fields(s)
	out := strings.Join(fields, " ")
	if unicode.IsSpace(rune(s[0])) {
		out = " " + out
	}
	if unicode.IsSpace(rune(s[len(s)-1])) {
		out += " "
	}
	return out
}

package render

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/richtext-labs/ptrender/internal/blocks"
	"github.com/richtext-labs/ptrender/internal/ptext"
	"github.com/richtext-labs/ptrender/internal/runs"
)

// HTMLRenderer emits semantic HTML: headings, paragraphs, and pre/code
// blocks, with runs wrapped in inline style tags.
type HTMLRenderer struct {
	cfg Config
}

// NewHTMLRenderer builds a renderer over the given style config.
func NewHTMLRenderer(cfg Config) *HTMLRenderer {
	return &HTMLRenderer{cfg: cfg}
}

func (r *HTMLRenderer) Render(w io.Writer, bs []blocks.Block) error {
	for _, b := range bs {
		if err := r.renderBlock(w, b); err != nil {
			return err
		}
	}
	return nil
}

func (r *HTMLRenderer) renderBlock(w io.Writer, b blocks.Block) error {
	attr := r.styleAttr(b.StyleKey())

	switch cb := b.(type) {
	case blocks.Heading:
		inner, err := renderRunsHTML(cb.Children(), cb.MarkDefs())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "<h%d%s>%s</h%d>\n", cb.Level, attr, inner, cb.Level)
		return err
	case blocks.CodeBlock:
		class := ""
		if cb.Language != "" {
			class = fmt.Sprintf(` class="language-%s"`, html.EscapeString(cb.Language))
		}
		_, err := fmt.Fprintf(w, "<pre%s><code%s>%s</code></pre>\n",
			attr, class, html.EscapeString(cb.Text()))
		return err
	case blocks.Paragraph:
		inner, err := renderRunsHTML(cb.Children(), cb.MarkDefs())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "<p%s>%s</p>\n", attr, inner)
		return err
	}
	return fmt.Errorf("unhandled block kind %v", b.Kind())
}

func renderRunsHTML(spans []ptext.Span, markDefs []ptext.MarkDef) (string, error) {
	rs, err := runs.Build(spans, markDefs)
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	for _, run := range rs {
		buf.WriteString(runHTML(run))
	}
	return buf.String(), nil
}

// runHTML wraps escaped run text in inline tags, innermost first, with the
// link anchor outermost.
func runHTML(r runs.Run) string {
	out := html.EscapeString(r.Text)
	a := r.Attrs
	if a.Monospace {
		out = "<code>" + out + "</code>"
	}
	if a.Strikethrough {
		out = "<s>" + out + "</s>"
	}
	if a.Underline && a.LinkHref == "" {
		out = "<u>" + out + "</u>"
	}
	if a.Italic {
		out = "<em>" + out + "</em>"
	}
	if a.Bold {
		out = "<strong>" + out + "</strong>"
	}
	if a.LinkHref != "" {
		out = fmt.Sprintf(`<a href=%q>%s</a>`, html.EscapeString(a.LinkHref), out)
	}
	return out
}

// styleAttr turns a configured style into an inline style attribute.
func (r *HTMLRenderer) styleAttr(key string) string {
	s, ok := r.cfg.StyleFor(key)
	if !ok {
		return ""
	}
	var props []string
	if s.Foreground != "" {
		props = append(props, "color:"+s.Foreground)
	}
	if s.Background != "" {
		props = append(props, "background-color:"+s.Background)
	}
	if s.Font != "" {
		props = append(props, "font-family:"+s.Font)
	}
	if s.Alignment != "" {
		props = append(props, "text-align:"+s.Alignment)
	}
	if len(props) == 0 {
		return ""
	}
	return fmt.Sprintf(` style=%q`, strings.Join(props, ";"))
}

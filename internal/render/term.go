package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/richtext-labs/ptrender/internal/blocks"
	"github.com/richtext-labs/ptrender/internal/runs"
)

// ANSI fallbacks for the named colors the run builder can emit.
var namedColors = map[string]lipgloss.Color{
	"blue":  lipgloss.Color("4"),
	"red":   lipgloss.Color("1"),
	"green": lipgloss.Color("2"),
}

// TermRenderer emits styled terminal output via lipgloss. Degrades to plain
// text on dumb terminals, which lipgloss handles itself.
type TermRenderer struct {
	cfg Config
}

// NewTermRenderer builds a renderer over the given style config.
func NewTermRenderer(cfg Config) *TermRenderer {
	return &TermRenderer{cfg: cfg}
}

func (r *TermRenderer) Render(w io.Writer, bs []blocks.Block) error {
	for i, b := range bs {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.renderBlock(w, b); err != nil {
			return err
		}
	}
	return nil
}

func (r *TermRenderer) renderBlock(w io.Writer, b blocks.Block) error {
	blockStyle := r.blockStyle(b.StyleKey())

	if cb, ok := b.(blocks.CodeBlock); ok {
		code := blockStyle.Faint(true).Render(cb.Text())
		_, err := fmt.Fprintln(w, code)
		return err
	}

	rs, err := runs.Build(b.Children(), b.MarkDefs())
	if err != nil {
		return err
	}
	for _, run := range rs {
		if _, err := io.WriteString(w, r.runText(blockStyle, run)); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func (r *TermRenderer) blockStyle(key string) lipgloss.Style {
	st := lipgloss.NewStyle()
	switch key {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		st = st.Bold(true)
	}
	if s, ok := r.cfg.StyleFor(key); ok {
		if s.Foreground != "" {
			st = st.Foreground(termColor(s.Foreground))
		}
		if s.Background != "" {
			st = st.Background(termColor(s.Background))
		}
		if s.Padding > 0 {
			st = st.PaddingLeft(s.Padding)
		}
	}
	return st
}

func (r *TermRenderer) runText(blockStyle lipgloss.Style, run runs.Run) string {
	st := blockStyle
	a := run.Attrs
	if a.Bold {
		st = st.Bold(true)
	}
	if a.Italic {
		st = st.Italic(true)
	}
	if a.Underline {
		st = st.Underline(true)
	}
	if a.Strikethrough {
		st = st.Strikethrough(true)
	}
	if a.Monospace {
		st = st.Faint(true)
	}
	if a.Foreground != "" {
		st = st.Foreground(termColor(a.Foreground))
	}
	out := st.Render(run.Text)
	if a.LinkHref != "" {
		out += st.Faint(true).Render(" (" + a.LinkHref + ")")
	}
	return out
}

func termColor(name string) lipgloss.Color {
	if c, ok := namedColors[name]; ok {
		return c
	}
	return lipgloss.Color(name)
}

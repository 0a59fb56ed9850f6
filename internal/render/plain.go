package render

import (
	"io"

	"github.com/richtext-labs/ptrender/internal/blocks"
)

// PlainRenderer strips all styling and emits block text separated by blank
// lines. Code blocks are emitted verbatim.
type PlainRenderer struct{}

func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

func (r *PlainRenderer) Render(w io.Writer, bs []blocks.Block) error {
	for i, b := range bs {
		if i > 0 {
			if _, err := io.WriteString(w, "\n\n"); err != nil {
				return err
			}
		}
		var text string
		if cb, ok := b.(blocks.CodeBlock); ok {
			text = cb.Text()
		} else {
			for _, sp := range b.Children() {
				text += sp.Text
			}
		}
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

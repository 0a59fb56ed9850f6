// Package render provides reference renderer adapters over classified
// blocks: HTML, ANSI terminal, and plain text. Styling is resolved through
// an immutable Config keyed by the block's style key.
package render

import (
	"io"

	"github.com/richtext-labs/ptrender/internal/blocks"
	"github.com/richtext-labs/ptrender/internal/ptext"
)

// Style is a bundle of presentation attributes for one style key. Zero
// values mean "use the renderer's default".
type Style struct {
	Font        string
	Foreground  string
	Background  string
	LineSpacing float64
	Padding     int
	Alignment   string
}

// Config maps style keys ("normal", "h1".."h6", "code") to styles. Config
// values are immutable: WithStyle returns a modified copy and never mutates
// shared state, so a Config can be shared across concurrent renders.
type Config struct {
	styles map[string]Style
}

// NewConfig returns an empty style configuration.
func NewConfig() Config {
	return Config{}
}

// WithStyle returns a copy of the config with the given style set.
func (c Config) WithStyle(key string, s Style) Config {
	styles := make(map[string]Style, len(c.styles)+1)
	for k, v := range c.styles {
		styles[k] = v
	}
	styles[key] = s
	return Config{styles: styles}
}

// StyleFor looks up the style for a key.
func (c Config) StyleFor(key string) (Style, bool) {
	s, ok := c.styles[key]
	return s, ok
}

// Renderer turns classified blocks into output on w.
type Renderer interface {
	Render(w io.Writer, bs []blocks.Block) error
}

// Document runs the full pipeline on raw Portable Text JSON: decode,
// validate, classify, render. Errors from the first failing stage surface
// unchanged; anything uncategorized crossing the adapter boundary is
// wrapped as a RenderingFailure so callers always see the closed taxonomy.
func Document(w io.Writer, jsonText string, r Renderer, v *ptext.Validator) error {
	doc, err := ptext.DecodeString(jsonText)
	if err != nil {
		return err
	}
	if v == nil {
		v = ptext.NewValidator(nil)
	}
	if err := v.Validate(doc); err != nil {
		return err
	}
	cbs, err := blocks.ClassifyAll(doc.Blocks)
	if err != nil {
		return err
	}
	if err := r.Render(w, cbs); err != nil {
		if ptext.KindOf(err) != 0 {
			return err
		}
		return ptext.WrapError(ptext.RenderingFailure, "render document", err)
	}
	return nil
}

// Package runs flattens a block's span sequence plus mark definitions into
// an ordered sequence of styled text runs. Each input span maps to exactly
// one output run; runs are never split or merged, so concatenating run text
// always reproduces the block's text in order.
package runs

import (
	"fmt"
	"net/url"

	"github.com/richtext-labs/ptrender/internal/ptext"
)

// DefaultLinkColor is the foreground applied to link runs when nothing
// overrides it.
const DefaultLinkColor = "blue"

// Attributes is the resolved style overlay for one run. Marks are applied
// in span order; a later mark wins when two set the same attribute.
type Attributes struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Monospace     bool
	LinkHref      string // "" means no link
	Foreground    string // "" means renderer default
}

// IsZero reports whether no attribute is set.
func (a Attributes) IsZero() bool {
	return a == Attributes{}
}

// Run is a contiguous piece of output text carrying its resolved attributes.
type Run struct {
	Key   string
	Text  string
	Attrs Attributes
}

// Build resolves marks for every span against the owning block's mark
// definitions. A mark reference is looked up in markDefs first; only when
// no definition matches is it treated as a standard mark name. Unknown
// standard marks and unknown definition types are ignored, and a link
// definition with a missing or unparseable href is skipped silently: a
// single bad link must not abort rendering of an otherwise-valid document.
//
// An empty span sequence yields an empty run sequence. Build is pure and
// safe to call repeatedly; render loops re-derive runs on every pass.
func Build(spans []ptext.Span, markDefs []ptext.MarkDef) ([]Run, error) {
	defs := make(map[string]ptext.MarkDef, len(markDefs))
	for _, md := range markDefs {
		defs[md.Key] = md
	}

	out := make([]Run, 0, len(spans))
	for i := range spans {
		sp := &spans[i]

		var attrs Attributes
		for _, mark := range sp.Marks {
			if def, ok := defs[mark]; ok {
				applyDefinition(&attrs, def)
				continue
			}
			applyStandard(&attrs, mark)
		}

		key := sp.Key
		if key == "" {
			key = fmt.Sprintf("span-%d", i)
		}
		out = append(out, Run{Key: key, Text: sp.Text, Attrs: attrs})
	}
	return out, nil
}

func applyStandard(attrs *Attributes, name string) {
	switch name {
	case "strong":
		attrs.Bold = true
	case "em":
		attrs.Italic = true
	case "underline":
		attrs.Underline = true
	case "strike", "strikethrough":
		attrs.Strikethrough = true
	case "code":
		attrs.Monospace = true
	}
	// Unknown mark names are ignored for forward compatibility.
}

func applyDefinition(attrs *Attributes, def ptext.MarkDef) {
	// Only link definitions carry semantics today; other types are
	// annotation kinds this core does not yet understand.
	if def.Type != "link" {
		return
	}
	if !validHref(def.Href) {
		return
	}
	attrs.LinkHref = def.Href
	attrs.Underline = true
	attrs.Foreground = DefaultLinkColor
}

func validHref(href string) bool {
	if href == "" {
		return false
	}
	u, err := url.Parse(href)
	return err == nil && u.Scheme != ""
}

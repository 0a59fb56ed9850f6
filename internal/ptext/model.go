// Package ptext implements the Portable Text document model: decoding raw
// JSON into typed blocks, validating structural invariants, and lossless
// re-encoding. Unknown schema extensions are preserved in per-record Extra
// bags so documents round-trip without loss.
package ptext

import "strings"

// Document is the root container: an ordered sequence of blocks.
// A document must hold at least one block; Decode and Validator both
// enforce this. Documents are immutable after decode by convention.
type Document struct {
	Blocks []Block
}

// Block is one structural unit before classification.
//
// Children distinguishes "absent" (nil) from "explicitly empty" (non-nil,
// zero length); the validator rejects the latter.
type Block struct {
	Type     string    // wire "_type", required
	Key      string    // wire "_key", required
	Style    string    // "" means unset; defaults to "normal" at classification
	MarkDefs []MarkDef // definitions referenced by span marks
	Children []Span    // inline content
	Level    *int      // reserved for list blocks
	ListItem string    // reserved for list blocks

	// Extra holds every JSON field not in the schema above, verbatim.
	Extra map[string]any
}

// Span is atomic inline content within a block.
type Span struct {
	Type  string   // wire "_type", required, conventionally "span"
	Key   string   // wire "_key"; synthesized at decode when absent
	Text  string   // required; may be empty
	Marks []string // standard mark names or markDef keys

	Extra map[string]any
}

// MarkDef carries out-of-band annotation data for a mark, scoped to one
// block. Only type "link" is given semantic meaning by the run builder.
type MarkDef struct {
	Type string // wire "_type", required
	Key  string // wire "_key", required
	Href string // meaningful for type "link"

	Extra map[string]any
}

// StyleOrDefault returns the declared style, or "normal" when unset.
func (b *Block) StyleOrDefault() string {
	if b.Style == "" {
		return "normal"
	}
	return b.Style
}

// Text concatenates the raw text of all child spans, marks ignored.
func (b *Block) Text() string {
	var buf strings.Builder
	for i := range b.Children {
		buf.WriteString(b.Children[i].Text)
	}
	return buf.String()
}

// ExtraString reads a string-valued field from the Extra bag. Returns
// ("", false) when the field is absent or holds a non-string value; it
// never fails.
func (b *Block) ExtraString(key string) (string, bool) {
	v, ok := b.Extra[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// MarkDefByKey looks up a mark definition by its key.
func (b *Block) MarkDefByKey(key string) (MarkDef, bool) {
	for i := range b.MarkDefs {
		if b.MarkDefs[i].Key == key {
			return b.MarkDefs[i], true
		}
	}
	return MarkDef{}, false
}

// HasMark reports whether the span lists the given mark.
func (s *Span) HasMark(mark string) bool {
	for _, m := range s.Marks {
		if m == mark {
			return true
		}
	}
	return false
}

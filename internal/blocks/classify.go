// Package blocks maps generic decoded blocks onto the closed set of
// renderable variants: Paragraph, Heading, and CodeBlock.
package blocks

import (
	"fmt"
	"strings"

	"github.com/richtext-labs/ptrender/internal/ptext"
)

// Kind tags a classified block.
type Kind int

const (
	KindParagraph Kind = iota + 1
	KindHeading
	KindCode
)

func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindCode:
		return "code"
	}
	return "unknown"
}

// Block is a classified block. The implementation set is closed; renderers
// switch exhaustively on Kind.
type Block interface {
	Kind() Kind
	Key() string
	// StyleKey is the lookup key a renderer uses against its style config:
	// the block's declared style string, or its type name when styleless.
	StyleKey() string
	Children() []ptext.Span
	MarkDefs() []ptext.MarkDef
}

type base struct {
	key      string
	children []ptext.Span
	markDefs []ptext.MarkDef
}

func (b base) Key() string { return b.key }
func (b base) Children() []ptext.Span { return b.children }
func (b base) MarkDefs() []ptext.MarkDef { return b.markDefs }

// Paragraph is a block with style "normal" (or no style at all).
type Paragraph struct {
	base
}

func (Paragraph) Kind() Kind { return KindParagraph }
func (Paragraph) StyleKey() string { return "normal" }

// Heading is a block styled "h1".."h6".
type Heading struct {
	base
	Level int
}

func (Heading) Kind() Kind { return KindHeading }
func (h Heading) StyleKey() string { return fmt.Sprintf("h%d", h.Level) }

// CodeBlock holds verbatim code. Span text is concatenated raw; marks are
// ignored for code content.
type CodeBlock struct {
	base
	Language string
}

func (CodeBlock) Kind() Kind { return KindCode }
func (CodeBlock) StyleKey() string { return "code" }

// Text returns the code content: raw span text concatenated in order.
func (c CodeBlock) Text() string {
	var buf strings.Builder
	for i := range c.children {
		buf.WriteString(c.children[i].Text)
	}
	return buf.String()
}

// Classify maps a generic block onto a concrete variant. It is safe to call
// without a prior validation pass: every variant re-checks that the block
// carries non-empty children.
func Classify(b *ptext.Block) (Block, error) {
	switch b.Type {
	case "block":
		return classifyStyled(b)
	case "code":
		if err := requireChildren(b); err != nil {
			return nil, err
		}
		lang, _ := b.ExtraString("language")
		return CodeBlock{base: baseOf(b), Language: lang}, nil
	default:
		return nil, ptext.NewError(ptext.UnsupportedBlockType, b.Key,
			fmt.Sprintf("unsupported block type %q", b.Type))
	}
}

func classifyStyled(b *ptext.Block) (Block, error) {
	style := b.Style

	// Heading styles are exactly "h" plus one character; anything longer
	// (like "h10") is not attempted as a heading.
	if len(style) == 2 && style[0] == 'h' {
		c := style[1]
		if c < '1' || c > '6' {
			return nil, ptext.NewError(ptext.MalformedStructure, b.Key,
				fmt.Sprintf("invalid heading level in style %q", style))
		}
		if err := requireChildren(b); err != nil {
			return nil, err
		}
		return Heading{base: baseOf(b), Level: int(c - '0')}, nil
	}

	switch style {
	case "", "normal":
		if err := requireChildren(b); err != nil {
			return nil, err
		}
		return Paragraph{base: baseOf(b)}, nil
	default:
		return nil, ptext.NewError(ptext.UnsupportedBlockType, b.Key,
			fmt.Sprintf("unsupported block style %q", style))
	}
}

// ClassifyAll classifies every block, failing fast on the first one that
// does not map to a known variant. There is no partial-success mode.
func ClassifyAll(bs []ptext.Block) ([]Block, error) {
	out := make([]Block, 0, len(bs))
	for i := range bs {
		cb, err := Classify(&bs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, cb)
	}
	return out, nil
}

func baseOf(b *ptext.Block) base {
	return base{key: b.Key, children: b.Children, markDefs: b.MarkDefs}
}

func requireChildren(b *ptext.Block) error {
	if len(b.Children) == 0 {
		return ptext.NewError(ptext.MissingRequiredField, b.Key, "block has no children")
	}
	return nil
}

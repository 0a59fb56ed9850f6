package ptext

import "log/slog"

// Validator checks document- and block-level invariants beyond what decoding
// enforces. It is independently callable: callers may construct Document
// values outside the decoder and still get the authoritative checks.
type Validator struct {
	log *slog.Logger
}

// NewValidator returns a validator. A nil logger silences the non-fatal
// warnings (empty span text) without affecting validation results.
func NewValidator(log *slog.Logger) *Validator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Validator{log: log}
}

// Validate checks the whole document, fail-fast on the first bad block.
func (v *Validator) Validate(doc *Document) error {
	if doc == nil || len(doc.Blocks) == 0 {
		return pathErr(MalformedStructure, "blocks", "document must contain at least one block")
	}
	for i := range doc.Blocks {
		if err := v.ValidateBlock(&doc.Blocks[i]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateBlock checks one block. An absent children field is allowed (no
// content); an explicitly empty children array is rejected. A block-type
// record that declares a style must carry content.
func (v *Validator) ValidateBlock(b *Block) error {
	if b.Children != nil && len(b.Children) == 0 {
		return NewError(MalformedStructure, b.Key, "children present but empty")
	}
	if b.Type == "block" && b.Style != "" && len(b.Children) == 0 {
		return NewError(MissingRequiredField, b.Key, "styled block has no children")
	}
	for i := range b.Children {
		if b.Children[i].Text == "" {
			v.log.Warn("span has empty text",
				"block", b.Key,
				"span", b.Children[i].Key,
				"index", i,
			)
		}
	}
	return nil
}

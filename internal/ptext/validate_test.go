package ptext

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestValidate_EmptyDocument(t *testing.T) {
	v := NewValidator(nil)
	if err := v.Validate(&Document{}); KindOf(err) != MalformedStructure {
		t.Errorf("expected MalformedStructure for empty document, got %v", err)
	}
	if err := v.Validate(nil); KindOf(err) != MalformedStructure {
		t.Errorf("expected MalformedStructure for nil document, got %v", err)
	}
}

func TestValidateBlock(t *testing.T) {
	span := Span{Type: "span", Key: "s", Text: "x"}

	tests := []struct {
		name  string
		block Block
		kind  Kind // 0 means valid
	}{
		{"plain paragraph", Block{Type: "block", Key: "k", Style: "normal", Children: []Span{span}}, 0},
		{"no children field", Block{Type: "block", Key: "k"}, 0},
		{"explicit empty children", Block{Type: "block", Key: "k", Children: []Span{}}, MalformedStructure},
		{"styled without children", Block{Type: "block", Key: "k", Style: "h2"}, MissingRequiredField},
		{"custom type without children", Block{Type: "figure", Key: "k"}, 0},
	}

	v := NewValidator(nil)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateBlock(&tc.block)
			if KindOf(err) != tc.kind {
				t.Errorf("expected kind %v, got %v (%v)", tc.kind, KindOf(err), err)
			}
		})
	}
}

func TestValidateBlock_EmptySpanTextWarnsOnly(t *testing.T) {
	var buf bytes.Buffer
	v := NewValidator(slog.New(slog.NewTextHandler(&buf, nil)))

	b := Block{Type: "block", Key: "k", Style: "normal", Children: []Span{{Type: "span", Key: "s", Text: ""}}}
	if err := v.ValidateBlock(&b); err != nil {
		t.Fatalf("empty span text must not be an error, got %v", err)
	}
	if !strings.Contains(buf.String(), "span has empty text") {
		t.Errorf("expected a warning to be logged, got: %s", buf.String())
	}
}

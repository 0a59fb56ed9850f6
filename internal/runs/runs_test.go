package runs

import (
	"strings"
	"testing"

	"github.com/richtext-labs/ptrender/internal/ptext"
)

func span(text string, marks ...string) ptext.Span {
	return ptext.Span{Type: "span", Text: text, Marks: marks}
}

func linkDef(key, href string) ptext.MarkDef {
	return ptext.MarkDef{Type: "link", Key: key, Href: href}
}

func TestBuild_OneRunPerSpan(t *testing.T) {
	spans := []ptext.Span{
		span("world "),
		span("bold", "strong"),
		span(" and code", "code", "em"),
	}
	got, err := Build(spans, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(spans) {
		t.Fatalf("expected %d runs, got %d", len(spans), len(got))
	}
	if !got[1].Attrs.Bold {
		t.Error("strong mark should set Bold")
	}
	if !got[2].Attrs.Monospace || !got[2].Attrs.Italic {
		t.Errorf("expected monospace italic run, got %+v", got[2].Attrs)
	}
}

func TestBuild_TextConcatenationPreserved(t *testing.T) {
	spans := []ptext.Span{
		span("one ", "strong"),
		span(""),
		span("two", "nonsense-mark"),
		span(" three", "em", "strike"),
	}
	got, err := Build(spans, []ptext.MarkDef{linkDef("l1", "https://example.com")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var want, have strings.Builder
	for _, s := range spans {
		want.WriteString(s.Text)
	}
	for _, r := range got {
		have.WriteString(r.Text)
	}
	if want.String() != have.String() {
		t.Errorf("run text %q != span text %q", have.String(), want.String())
	}
}

func TestBuild_StandardMarks(t *testing.T) {
	tests := []struct {
		mark string
		get  func(Attributes) bool
	}{
		{"strong", func(a Attributes) bool { return a.Bold }},
		{"em", func(a Attributes) bool { return a.Italic }},
		{"underline", func(a Attributes) bool { return a.Underline }},
		{"strike", func(a Attributes) bool { return a.Strikethrough }},
		{"strikethrough", func(a Attributes) bool { return a.Strikethrough }},
		{"code", func(a Attributes) bool { return a.Monospace }},
	}
	for _, tc := range tests {
		t.Run(tc.mark, func(t *testing.T) {
			got, err := Build([]ptext.Span{span("x", tc.mark)}, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.get(got[0].Attrs) {
				t.Errorf("mark %q not applied: %+v", tc.mark, got[0].Attrs)
			}
		})
	}
}

func TestBuild_UnknownMarkIgnored(t *testing.T) {
	got, err := Build([]ptext.Span{span("x", "sparkle")}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got[0].Attrs.IsZero() {
		t.Errorf("unknown mark must not set attributes: %+v", got[0].Attrs)
	}
}

func TestBuild_LinkMark(t *testing.T) {
	got, err := Build(
		[]ptext.Span{span("click", "l1")},
		[]ptext.MarkDef{linkDef("l1", "https://example.com/a")},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := got[0].Attrs
	if a.LinkHref != "https://example.com/a" {
		t.Errorf("expected link href, got %q", a.LinkHref)
	}
	if !a.Underline || a.Foreground != DefaultLinkColor {
		t.Errorf("link should underline and color blue: %+v", a)
	}
}

func TestBuild_BadLinkIsSoftFailure(t *testing.T) {
	tests := []struct {
		name string
		href string
	}{
		{"missing href", ""},
		{"unparseable", "http://exa mple.com/%zz"},
		{"no scheme", "example.com/path"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Build(
				[]ptext.Span{span("click", "l1")},
				[]ptext.MarkDef{linkDef("l1", tc.href)},
			)
			if err != nil {
				t.Fatalf("bad link must not be an error, got %v", err)
			}
			if got[0].Attrs.LinkHref != "" {
				t.Errorf("bad link must not apply an href: %+v", got[0].Attrs)
			}
		})
	}
}

func TestBuild_MarkDefTakesPrecedenceOverStandardName(t *testing.T) {
	// A markDef keyed "strong" shadows the standard bold mark.
	got, err := Build(
		[]ptext.Span{span("x", "strong")},
		[]ptext.MarkDef{linkDef("strong", "https://example.com")},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := got[0].Attrs
	if a.Bold {
		t.Error("definition lookup must happen before standard-name matching")
	}
	if a.LinkHref == "" {
		t.Error("expected the link definition to apply")
	}
}

func TestBuild_UnknownDefinitionTypeIgnored(t *testing.T) {
	got, err := Build(
		[]ptext.Span{span("x", "c1")},
		[]ptext.MarkDef{{Type: "comment", Key: "c1", Extra: map[string]any{"body": "hm"}}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got[0].Attrs.IsZero() {
		t.Errorf("unknown definition type must not set attributes: %+v", got[0].Attrs)
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	got, err := Build(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no runs, got %d", len(got))
	}
}

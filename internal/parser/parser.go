// Package parser converts external document formats (markdown, HTML, DOCX,
// PDF, plain text) into Portable Text documents.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/richtext-labs/ptrender/internal/ptext"
)

// Parser converts raw document bytes into a Portable Text document.
type Parser interface {
	Parse(r io.Reader, filename string) (*ptext.Document, error)
}

// SupportedExtensions lists file extensions this package can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// newKey synthesizes a block/span/markDef key.
func newKey() string {
	return uuid.NewString()
}

// textBlock builds a styled block from pre-built spans.
func textBlock(style string, spans []ptext.Span, markDefs []ptext.MarkDef) ptext.Block {
	return ptext.Block{
		Type:     "block",
		Key:      newKey(),
		Style:    style,
		Children: spans,
		MarkDefs: markDefs,
	}
}

// paragraph builds a normal block holding one unmarked span.
func paragraph(text string) ptext.Block {
	return textBlock("normal", []ptext.Span{plainSpan(text)}, nil)
}

// codeBlock builds a code block with an optional language.
func codeBlock(code, language string) ptext.Block {
	b := ptext.Block{
		Type:     "code",
		Key:      newKey(),
		Children: []ptext.Span{plainSpan(code)},
	}
	if language != "" {
		b.Extra = map[string]any{"language": language}
	}
	return b
}

func plainSpan(text string) ptext.Span {
	return ptext.Span{Type: "span", Key: newKey(), Text: text}
}

func markedSpan(text string, marks []string) ptext.Span {
	sp := plainSpan(text)
	if len(marks) > 0 {
		sp.Marks = append([]string(nil), marks...)
	}
	return sp
}

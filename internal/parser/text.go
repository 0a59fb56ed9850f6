package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/richtext-labs/ptrender/internal/ptext"
)

// TextParser converts plain text: blank-line-separated paragraphs become
// normal blocks.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*ptext.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	doc := &ptext.Document{}
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			doc.Blocks = append(doc.Blocks, paragraph(current.String()))
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(doc.Blocks) == 0 {
		return nil, fmt.Errorf("text document %s has no content", filename)
	}
	return doc, nil
}

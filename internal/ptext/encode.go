package ptext

import (
	"bytes"
	"encoding/json"
	"io"
)

// Encode serializes the document back to its wire shape. Known fields and
// Extra bags are both re-emitted, so a decode/encode cycle is lossless.
func Encode(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// EncodeString is a convenience wrapper for Encode.
func EncodeString(doc *Document) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"blocks": d.Blocks})
}

func (b Block) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(b.Extra)+7)
	for k, v := range b.Extra {
		m[k] = v
	}

	m["_type"] = b.Type
	m["_key"] = b.Key
	if b.Style != "" {
		m["style"] = b.Style
	}
	if b.Children != nil {
		m["children"] = b.Children
	}
	if b.MarkDefs != nil {
		m["markDefs"] = b.MarkDefs
	}
	if b.Level != nil {
		m["level"] = *b.Level
	}
	if b.ListItem != "" {
		m["listItem"] = b.ListItem
	}

	return json.Marshal(m)
}

func (s Span) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(s.Extra)+4)
	for k, v := range s.Extra {
		m[k] = v
	}

	m["_type"] = s.Type
	m["text"] = s.Text
	if s.Key != "" {
		m["_key"] = s.Key
	}
	if s.Marks != nil {
		m["marks"] = s.Marks
	}

	return json.Marshal(m)
}

func (md MarkDef) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(md.Extra)+3)
	for k, v := range md.Extra {
		m[k] = v
	}

	m["_type"] = md.Type
	m["_key"] = md.Key
	if md.Href != "" {
		m["href"] = md.Href
	}

	return json.Marshal(m)
}

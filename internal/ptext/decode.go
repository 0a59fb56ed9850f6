package ptext

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Decode parses a JSON Portable Text document of the shape
// {"blocks": [...]}. It fails with kind InvalidInput when the payload is
// not valid UTF-8, not well-formed JSON, lacks a non-empty blocks array,
// or any record is missing a required field. Unknown object keys are
// captured into the Extra bags rather than causing failure.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, WrapError(InvalidInput, "read input", err)
	}
	if !utf8.Valid(data) {
		return nil, pathErr(InvalidInput, "", "input is not valid UTF-8")
	}

	root, err := decodeObject(data)
	if err != nil {
		return nil, WrapError(InvalidInput, "parse document", err)
	}

	rawBlocks, ok := root["blocks"]
	if !ok {
		return nil, pathErr(InvalidInput, "blocks", "key not found: expected array of blocks")
	}
	arr, ok := rawBlocks.([]any)
	if !ok {
		return nil, pathErr(InvalidInput, "blocks", "type mismatch: expected array")
	}
	if len(arr) == 0 {
		return nil, pathErr(InvalidInput, "blocks", "document must contain at least one block")
	}

	doc := &Document{Blocks: make([]Block, 0, len(arr))}
	for i, item := range arr {
		path := fmt.Sprintf("blocks[%d]", i)
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, pathErr(InvalidInput, path, "type mismatch: expected object")
		}
		b, err := decodeBlock(obj, path)
		if err != nil {
			return nil, err
		}
		doc.Blocks = append(doc.Blocks, b)
	}
	return doc, nil
}

// DecodeString is a convenience wrapper for Decode.
func DecodeString(s string) (*Document, error) {
	return Decode(strings.NewReader(s))
}

func decodeBlock(obj map[string]any, path string) (Block, error) {
	b := Block{}

	typ, err := requiredString(obj, "_type", path)
	if err != nil {
		return Block{}, err
	}
	key, err := requiredString(obj, "_key", path)
	if err != nil {
		return Block{}, err
	}
	b.Type = typ
	b.Key = key

	for k, v := range obj {
		switch k {
		case "_type", "_key":
		case "style":
			s, err := asString(v, path+".style")
			if err != nil {
				return Block{}, err
			}
			b.Style = s
		case "children":
			arr, ok := v.([]any)
			if !ok {
				return Block{}, pathErr(InvalidInput, path+".children", "type mismatch: expected array")
			}
			// Preserved as non-nil even when empty; the validator
			// distinguishes explicit-empty from absent.
			b.Children = make([]Span, 0, len(arr))
			for i, item := range arr {
				spath := fmt.Sprintf("%s.children[%d]", path, i)
				sobj, ok := item.(map[string]any)
				if !ok {
					return Block{}, pathErr(InvalidInput, spath, "type mismatch: expected object")
				}
				sp, err := decodeSpan(sobj, spath)
				if err != nil {
					return Block{}, err
				}
				b.Children = append(b.Children, sp)
			}
		case "markDefs":
			arr, ok := v.([]any)
			if !ok {
				return Block{}, pathErr(InvalidInput, path+".markDefs", "type mismatch: expected array")
			}
			b.MarkDefs = make([]MarkDef, 0, len(arr))
			for i, item := range arr {
				mpath := fmt.Sprintf("%s.markDefs[%d]", path, i)
				mobj, ok := item.(map[string]any)
				if !ok {
					return Block{}, pathErr(InvalidInput, mpath, "type mismatch: expected object")
				}
				md, err := decodeMarkDef(mobj, mpath)
				if err != nil {
					return Block{}, err
				}
				b.MarkDefs = append(b.MarkDefs, md)
			}
		case "level":
			num, ok := v.(json.Number)
			if !ok {
				return Block{}, pathErr(InvalidInput, path+".level", "type mismatch: expected integer")
			}
			n, err := num.Int64()
			if err != nil {
				return Block{}, pathErr(InvalidInput, path+".level", "type mismatch: expected integer")
			}
			level := int(n)
			b.Level = &level
		case "listItem":
			s, err := asString(v, path+".listItem")
			if err != nil {
				return Block{}, err
			}
			b.ListItem = s
		default:
			if b.Extra == nil {
				b.Extra = make(map[string]any)
			}
			b.Extra[k] = v
		}
	}

	return b, nil
}

func decodeSpan(obj map[string]any, path string) (Span, error) {
	sp := Span{}

	typ, err := requiredString(obj, "_type", path)
	if err != nil {
		return Span{}, err
	}
	sp.Type = typ

	text, ok := obj["text"]
	if !ok {
		return Span{}, pathErr(InvalidInput, path+".text", "key not found: span requires text")
	}
	sp.Text, err = asString(text, path+".text")
	if err != nil {
		return Span{}, err
	}

	for k, v := range obj {
		switch k {
		case "_type", "text":
		case "_key":
			s, err := asString(v, path+"._key")
			if err != nil {
				return Span{}, err
			}
			sp.Key = s
		case "marks":
			arr, ok := v.([]any)
			if !ok {
				return Span{}, pathErr(InvalidInput, path+".marks", "type mismatch: expected array of strings")
			}
			marks := make([]string, 0, len(arr))
			for _, m := range arr {
				ms, ok := m.(string)
				if !ok {
					return Span{}, pathErr(InvalidInput, path+".marks", "type mismatch: expected array of strings")
				}
				marks = append(marks, ms)
			}
			sp.Marks = marks
		default:
			if sp.Extra == nil {
				sp.Extra = make(map[string]any)
			}
			sp.Extra[k] = v
		}
	}

	// Span keys do not need global uniqueness; synthesize one so every
	// output run has a stable identity.
	if sp.Key == "" {
		sp.Key = uuid.NewString()
	}

	return sp, nil
}

func decodeMarkDef(obj map[string]any, path string) (MarkDef, error) {
	md := MarkDef{}

	typ, err := requiredString(obj, "_type", path)
	if err != nil {
		return MarkDef{}, err
	}
	key, err := requiredString(obj, "_key", path)
	if err != nil {
		return MarkDef{}, err
	}
	md.Type = typ
	md.Key = key

	for k, v := range obj {
		switch k {
		case "_type", "_key":
		case "href":
			s, err := asString(v, path+".href")
			if err != nil {
				return MarkDef{}, err
			}
			md.Href = s
		default:
			if md.Extra == nil {
				md.Extra = make(map[string]any)
			}
			md.Extra[k] = v
		}
	}

	return md, nil
}

func requiredString(obj map[string]any, key, path string) (string, error) {
	v, ok := obj[key]
	if !ok {
		return "", pathErr(InvalidInput, path+"."+key, "key not found: required field missing")
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", pathErr(InvalidInput, path+"."+key, "type mismatch: expected non-empty string")
	}
	return s, nil
}

func asString(v any, path string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", pathErr(InvalidInput, path, "type mismatch: expected string")
	}
	return s, nil
}

// decodeObject parses a JSON object keeping numbers as json.Number so
// re-encoding does not lose precision.
func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("expected JSON object")
	}
	return obj, nil
}

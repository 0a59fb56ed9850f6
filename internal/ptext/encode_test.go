package ptext

import (
	"reflect"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"sample document", sampleDoc},
		{"extra fields", `{"blocks": [{"_type": "block", "_key": "k", "style": "normal", "customWeight": 7, "meta": {"a": [1, 2.5, true, null]}, "children": [{"_type": "span", "_key": "s", "text": "x", "region": "west"}]}]}`},
		{"level and listItem", `{"blocks": [{"_type": "block", "_key": "k", "level": 2, "listItem": "bullet", "children": [{"_type": "span", "_key": "s", "text": "x"}]}]}`},
		{"explicit empty arrays", `{"blocks": [{"_type": "block", "_key": "k", "markDefs": [], "children": [{"_type": "span", "_key": "s", "text": "x", "marks": []}]}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := DecodeString(tc.in)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			out, err := EncodeString(doc)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			again, err := DecodeString(out)
			if err != nil {
				t.Fatalf("re-decode: %v", err)
			}
			if !reflect.DeepEqual(doc, again) {
				t.Errorf("round trip not stable:\nfirst:  %+v\nsecond: %+v", doc, again)
			}
		})
	}
}

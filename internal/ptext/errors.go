package ptext

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure. The set is closed: callers can branch
// on KindOf without worrying about kinds appearing at runtime that are not
// listed here.
type Kind int

const (
	// InvalidInput: the raw text is not valid UTF-8, not well-formed JSON,
	// lacks the top-level blocks array, or a required field is missing at
	// decode time.
	InvalidInput Kind = iota + 1
	// UnsupportedBlockType: a block's type or style maps to no known variant.
	UnsupportedBlockType
	// UnsupportedMarkType is reserved. No current code path raises it;
	// unknown marks are ignored during run building.
	UnsupportedMarkType
	// MissingRequiredField: a field required for a block's declared kind is
	// absent or empty.
	MissingRequiredField
	// MalformedStructure: the document or block shape violates an invariant
	// not covered by the other kinds (empty document, explicit-empty
	// children, invalid heading level).
	MalformedStructure
	// RenderingFailure wraps uncategorized errors crossing the renderer
	// adapter boundary.
	RenderingFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case UnsupportedBlockType:
		return "unsupported_block_type"
	case UnsupportedMarkType:
		return "unsupported_mark_type"
	case MissingRequiredField:
		return "missing_required_field"
	case MalformedStructure:
		return "malformed_structure"
	case RenderingFailure:
		return "rendering_failure"
	}
	return "unknown"
}

// Error is a structured pipeline error: a kind, the offending JSON path or
// block key, and a human-readable detail. Never returned as a plain string
// so callers can branch on Kind.
type Error struct {
	Kind   Kind
	Path   string // JSON path, e.g. "blocks[2].children[0].text"
	Key    string // offending block key, when known
	Detail string
	Err    error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Detail
	if e.Err != nil {
		if msg != "" {
			msg += ": " + e.Err.Error()
		} else {
			msg = e.Err.Error()
		}
	}
	switch {
	case e.Path != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Path, msg)
	case e.Key != "":
		return fmt.Sprintf("%s: block %q: %s", e.Kind, e.Key, msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind carried by err, or 0 when err is not a pipeline
// error.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}

// NewError builds a pipeline error for the given block key. It is exported
// for the classifier and renderer packages, which share the taxonomy.
func NewError(kind Kind, key, detail string) *Error {
	return &Error{Kind: kind, Key: key, Detail: detail}
}

// WrapError attaches a kind to an uncategorized error. A nil err returns nil.
func WrapError(kind Kind, detail string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Detail: detail, Err: err}
}

func pathErr(kind Kind, path, detail string) *Error {
	return &Error{Kind: kind, Path: path, Detail: detail}
}

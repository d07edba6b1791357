// Package typing tracks the attributes the next inserted text receives and
// stamps them onto freshly inserted ranges.
package typing

import (
	"fmt"

	"github.com/dshills/richtext/internal/engine/attr"
)

// State is the pending typing attributes. It is a value: every change
// produces a new State.
type State struct {
	LineKind  attr.Kind
	CharKinds attr.Set
}

// NewState creates a state, keeping only kinds of the right level. A
// boldItalic member is expanded to bold and italic.
func NewState(line attr.Kind, chars attr.Set) State {
	if !line.IsLine() {
		line = attr.None
	}
	return State{LineKind: line, CharKinds: normalizeChars(chars)}
}

// WithLineKind returns a copy with the line kind replaced.
func (s State) WithLineKind(kind attr.Kind) State {
	return NewState(kind, s.CharKinds)
}

// WithCharKinds returns a copy with the character kinds replaced.
func (s State) WithCharKinds(chars attr.Set) State {
	return NewState(s.LineKind, chars)
}

// WeightKind returns the single kind representing the bold/italic members:
// BoldItalic when both are present, Bold or Italic alone, else None.
func (s State) WeightKind() attr.Kind {
	bold, italic := s.CharKinds.Has(attr.Bold), s.CharKinds.Has(attr.Italic)
	switch {
	case bold && italic:
		return attr.BoldItalic
	case bold:
		return attr.Bold
	case italic:
		return attr.Italic
	default:
		return attr.None
	}
}

// IsZero reports whether the state carries no attributes.
func (s State) IsZero() bool {
	return s.LineKind == attr.None && s.CharKinds.IsEmpty()
}

// String returns a human-readable representation of the state.
func (s State) String() string {
	return fmt.Sprintf("State{line=%s chars=%s}", s.LineKind, s.CharKinds)
}

func normalizeChars(chars attr.Set) attr.Set {
	var out attr.Set
	for _, k := range chars.Kinds() {
		switch {
		case k == attr.BoldItalic:
			out = out.With(attr.Bold).With(attr.Italic)
		case k.IsChar():
			out = out.With(k)
		}
	}
	return out
}

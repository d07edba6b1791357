package span

import (
	"fmt"

	"github.com/dshills/richtext/internal/engine/attr"
	"github.com/dshills/richtext/internal/engine/document"
)

// Span is a range of the document tagged with one attribute kind.
type Span struct {
	Kind  attr.Kind
	Start int
	End   int
}

// New creates a span.
func New(kind attr.Kind, start, end int) Span {
	return Span{Kind: kind, Start: start, End: end}
}

// Range returns the span's range.
func (s Span) Range() document.Range {
	return document.Range{Start: s.Start, End: s.End}
}

// Len returns the length of the span.
func (s Span) Len() int { return s.End - s.Start }

// IsValid reports whether the span is non-empty and well ordered.
func (s Span) IsValid() bool {
	return s.Start >= 0 && s.Start < s.End && s.Kind.IsValid() && s.Kind != attr.None
}

// Covers reports whether the span fully covers [start, end).
func (s Span) Covers(start, end int) bool {
	return s.Start <= start && s.End >= end
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("%s[%d:%d)", s.Kind, s.Start, s.End)
}

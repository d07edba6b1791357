// Package selection reports which attributes hold over a caret or a range.
//
// A caret and a range are judged differently. A range reports a kind active
// only when one span of that kind covers the whole range. A caret reports a
// character kind active when the rune before it carries the kind and the
// caret sits strictly inside the span, so a caret exactly at the end of a
// styled run reads as unstyled. A caret reports a line kind active when the
// kind covers the caret's line. A caret at offset 0 reports nothing.
package selection

import (
	"github.com/dshills/richtext/internal/engine/attr"
	"github.com/dshills/richtext/internal/engine/document"
	"github.com/dshills/richtext/internal/engine/span"
)

// SpanSource is the read side of a span store.
type SpanSource interface {
	Overlapping(kind attr.Kind, start, end int, touching bool) []span.Span
	Length() int
}

// LineSource resolves the line around an offset.
type LineSource interface {
	LineRange(offset int) document.Range
}

// Status is a snapshot of the attributes active over a selection.
type Status struct {
	Start       int
	End         int
	Active      map[attr.Kind]bool
	UniqueStyle string
}

// IsActive reports whether kind is active.
func (s Status) IsActive(kind attr.Kind) bool {
	return s.Active[kind]
}

// IsCaret reports whether the selection is degenerate.
func (s Status) IsCaret() bool {
	return s.Start == s.End
}

// ActiveKinds returns the active kinds as a set.
func (s Status) ActiveKinds() attr.Set {
	var set attr.Set
	for k, on := range s.Active {
		if on {
			set = set.With(k)
		}
	}
	return set
}

// Equal reports whether two snapshots describe the same state.
func (s Status) Equal(other Status) bool {
	return s.Start == other.Start && s.End == other.End &&
		s.UniqueStyle == other.UniqueStyle && s.ActiveKinds() == other.ActiveKinds()
}

// Field names of the flattened status.
const (
	FieldSelStart        = "selStart"
	FieldSelEnd          = "selEnd"
	FieldIsHeadline1     = "isHeadline1"
	FieldIsHeadline2     = "isHeadline2"
	FieldIsHeadline3     = "isHeadline3"
	FieldIsList          = "isList"
	FieldIsOrderedList   = "isOrderedList"
	FieldIsQuote         = "isQuote"
	FieldIsCodeBlock     = "isCodeBlock"
	FieldIsBold          = "isBold"
	FieldIsItalic        = "isItalic"
	FieldIsUnderline     = "isUnderline"
	FieldIsStrikeThrough = "isStrikeThrough"
	FieldStyle           = "style"
)

var fieldKinds = []struct {
	field string
	kind  attr.Kind
}{
	{FieldIsHeadline1, attr.Headline1},
	{FieldIsHeadline2, attr.Headline2},
	{FieldIsHeadline3, attr.Headline3},
	{FieldIsList, attr.ListBullet},
	{FieldIsOrderedList, attr.ListOrdered},
	{FieldIsQuote, attr.Quote},
	{FieldIsCodeBlock, attr.CodeBlock},
	{FieldIsBold, attr.Bold},
	{FieldIsItalic, attr.Italic},
	{FieldIsUnderline, attr.Underline},
	{FieldIsStrikeThrough, attr.Strikethrough},
}

// Fields flattens the status into the selection-changed notification payload.
func (s Status) Fields() map[string]any {
	out := make(map[string]any, len(fieldKinds)+3)
	out[FieldSelStart] = s.Start
	out[FieldSelEnd] = s.End
	for _, fk := range fieldKinds {
		out[fk.field] = s.Active[fk.kind]
	}
	out[FieldStyle] = s.UniqueStyle
	return out
}

// FieldNames returns the keys of Fields in a stable order.
func FieldNames() []string {
	names := []string{FieldSelStart, FieldSelEnd}
	for _, fk := range fieldKinds {
		names = append(names, fk.field)
	}
	return append(names, FieldStyle)
}

// Inspector computes selection status snapshots.
type Inspector struct {
	spans SpanSource
	lines LineSource
}

// NewInspector creates an inspector over spans and lines.
func NewInspector(spans SpanSource, lines LineSource) *Inspector {
	return &Inspector{spans: spans, lines: lines}
}

// Status computes the status of [start, end). Offsets are clamped and a
// reversed selection is normalized.
func (i *Inspector) Status(start, end int) Status {
	r := document.NewRange(start, end).Clamp(i.spans.Length())
	st := Status{
		Start:  r.Start,
		End:    r.End,
		Active: make(map[attr.Kind]bool),
	}

	for _, kind := range attr.All() {
		st.Active[kind] = i.active(kind, r)
	}

	// boldItalic reads as both bold and italic.
	if st.Active[attr.BoldItalic] {
		st.Active[attr.Bold] = true
		st.Active[attr.Italic] = true
	}

	st.UniqueStyle = UniqueStyle(st.Active)
	return st
}

// UniqueStyle returns the wire name of the highest-precedence active kind,
// or "" when none is active.
func UniqueStyle(active map[attr.Kind]bool) string {
	for _, k := range attr.Precedence() {
		if active[k] {
			return k.String()
		}
	}
	return ""
}

func (i *Inspector) active(kind attr.Kind, r document.Range) bool {
	if !r.IsEmpty() {
		return i.covered(kind, r.Start, r.End)
	}

	p := r.Start
	if p == 0 {
		return false
	}
	if kind.IsLine() {
		line := i.lines.LineRange(p)
		if line.IsEmpty() {
			return false
		}
		return i.covered(kind, line.Start, line.End)
	}
	for _, sp := range i.spans.Overlapping(kind, p-1, p, false) {
		if sp.Start <= p-1 && sp.End > p {
			return true
		}
	}
	return false
}

func (i *Inspector) covered(kind attr.Kind, start, end int) bool {
	for _, sp := range i.spans.Overlapping(kind, start, end, false) {
		if sp.Covers(start, end) {
			return true
		}
	}
	return false
}

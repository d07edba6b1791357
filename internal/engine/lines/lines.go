// Package lines applies line-level attributes over whole lines.
package lines

import (
	"github.com/dshills/richtext/internal/engine/attr"
	"github.com/dshills/richtext/internal/engine/document"
	"github.com/dshills/richtext/internal/engine/span"
)

// Document is the part of a document the formatter needs.
type Document interface {
	LinesRange(start, end int) document.Range
}

// Formatter expands selections to whole lines before toggling line kinds.
type Formatter struct {
	doc     Document
	applier *span.Applier
}

// NewFormatter creates a formatter.
func NewFormatter(doc Document, applier *span.Applier) *Formatter {
	return &Formatter{doc: doc, applier: applier}
}

// ResolveLines expands [selStart, selEnd) to the lines it touches: from the
// first rune of its first line to just past the newline of its last line.
func (f *Formatter) ResolveLines(selStart, selEnd int) document.Range {
	return f.doc.LinesRange(selStart, selEnd)
}

// SetTextType makes kind the only line kind over the selected lines. None
// clears every line kind. The resolved range is returned.
func (f *Formatter) SetTextType(kind attr.Kind, selStart, selEnd int) document.Range {
	r := f.ResolveLines(selStart, selEnd)
	if r.IsEmpty() {
		return r
	}
	for _, other := range attr.LineKinds() {
		if other != kind {
			f.applier.Clear(other, r.Start, r.End)
		}
	}
	if kind.IsLine() {
		f.applier.Toggle(kind, r.Start, r.End, true)
	}
	return r
}

// Rejoin restores whole-line coverage on the line containing offset after a
// deletion joined two lines. The line kind found at the line's first rune is
// extended over the joined line; without one the line is cleared.
func (f *Formatter) Rejoin(offset int) attr.Kind {
	r := f.ResolveLines(offset, offset)
	if r.IsEmpty() {
		return attr.None
	}
	kind := attr.None
	for _, k := range attr.LineKinds() {
		if len(f.applier.Store().Overlapping(k, r.Start, r.Start, false)) > 0 {
			kind = k
			break
		}
	}
	f.SetTextType(kind, r.Start, r.Start)
	return kind
}

// ApplyTextType toggles kind over the selected lines: when kind already
// covers them every line kind is cleared, otherwise kind replaces whatever
// line kind they had. It returns the line kind now in effect.
func (f *Formatter) ApplyTextType(kind attr.Kind, selStart, selEnd int) attr.Kind {
	if !kind.IsLine() {
		f.SetTextType(attr.None, selStart, selEnd)
		return attr.None
	}
	if f.HasTextType(kind, selStart, selEnd) {
		f.SetTextType(attr.None, selStart, selEnd)
		return attr.None
	}
	f.SetTextType(kind, selStart, selEnd)
	return kind
}

// HasTextType reports whether kind covers every selected line. Empty lines
// carry no spans and never report true.
func (f *Formatter) HasTextType(kind attr.Kind, selStart, selEnd int) bool {
	r := f.ResolveLines(selStart, selEnd)
	if r.IsEmpty() {
		return false
	}
	_, ok := f.applier.Store().Covering(kind, r.Start, r.End)
	return ok
}

// TextTypeAt returns the line kind of the line containing offset, or None.
func (f *Formatter) TextTypeAt(offset int) attr.Kind {
	r := f.ResolveLines(offset, offset)
	if r.IsEmpty() {
		return attr.None
	}
	for _, kind := range attr.LineKinds() {
		if _, ok := f.applier.Store().Covering(kind, r.Start, r.End); ok {
			return kind
		}
	}
	return attr.None
}

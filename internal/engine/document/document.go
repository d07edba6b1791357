package document

import (
	"strings"
	"sync/atomic"
)

// RevisionID identifies one state of a document.
type RevisionID uint64

var revisionCounter uint64

// NewRevisionID returns a process-unique revision ID.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}

// Document is a mutable rune sequence.
// It is not safe for concurrent use; the owning editor serializes access.
type Document struct {
	text     []rune
	revision RevisionID
}

// New creates an empty document.
func New() *Document {
	return &Document{revision: NewRevisionID()}
}

// NewFromString creates a document holding s. Line endings are normalized to '\n'.
func NewFromString(s string) *Document {
	d := New()
	d.text = []rune(normalizeLineEndings(s))
	return d
}

// Len returns the number of runes in the document.
func (d *Document) Len() int {
	return len(d.text)
}

// IsEmpty reports whether the document holds no text.
func (d *Document) IsEmpty() bool {
	return len(d.text) == 0
}

// Text returns the entire content.
func (d *Document) Text() string {
	return string(d.text)
}

// Slice returns the text in [start, end), clamped to the document.
func (d *Document) Slice(start, end int) string {
	r := NewRange(start, end).Clamp(len(d.text))
	return string(d.text[r.Start:r.End])
}

// RuneAt returns the rune at offset.
func (d *Document) RuneAt(offset int) (rune, bool) {
	if offset < 0 || offset >= len(d.text) {
		return 0, false
	}
	return d.text[offset], true
}

// Revision returns the current revision ID.
func (d *Document) Revision() RevisionID {
	return d.revision
}

// Clamp limits an offset to the document.
func (d *Document) Clamp(offset int) int {
	return ClampOffset(offset, len(d.text))
}

// ClampRange normalizes and clamps a range to the document.
func (d *Document) ClampRange(start, end int) Range {
	return NewRange(start, end).Clamp(len(d.text))
}

// Insert inserts text at offset.
func (d *Document) Insert(offset int, text string) Change {
	return d.Replace(offset, offset, text)
}

// Delete removes the text in [start, end).
func (d *Document) Delete(start, end int) Change {
	return d.Replace(start, end, "")
}

// Replace replaces the text in [start, end) with text. The range is clamped
// to the document; the returned Change reports the range actually replaced.
func (d *Document) Replace(start, end int, text string) Change {
	r := d.ClampRange(start, end)
	ins := []rune(normalizeLineEndings(text))

	if r.IsEmpty() && len(ins) == 0 {
		return Change{Type: ChangeNone, Range: r, NewRange: r, Revision: d.revision}
	}

	old := string(d.text[r.Start:r.End])

	out := make([]rune, 0, len(d.text)-r.Len()+len(ins))
	out = append(out, d.text[:r.Start]...)
	out = append(out, ins...)
	out = append(out, d.text[r.End:]...)
	d.text = out
	d.revision = NewRevisionID()

	c := Change{
		Range:    r,
		NewRange: Range{Start: r.Start, End: r.Start + len(ins)},
		OldText:  old,
		NewText:  string(ins),
		Revision: d.revision,
	}
	switch {
	case r.IsEmpty():
		c.Type = ChangeInsert
	case len(ins) == 0:
		c.Type = ChangeDelete
	default:
		c.Type = ChangeReplace
	}
	return c
}

// SetText replaces the whole content.
func (d *Document) SetText(s string) Change {
	return d.Replace(0, len(d.text), s)
}

// LineStart returns the offset of the first rune of the line containing offset.
func (d *Document) LineStart(offset int) int {
	offset = d.Clamp(offset)
	for i := offset - 1; i >= 0; i-- {
		if d.text[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// LineEnd returns the offset just past the line containing offset, including
// its newline if it has one.
func (d *Document) LineEnd(offset int) int {
	offset = d.Clamp(offset)
	for i := offset; i < len(d.text); i++ {
		if d.text[i] == '\n' {
			return i + 1
		}
	}
	return len(d.text)
}

// LineRange returns the range of the line containing offset, newline included.
func (d *Document) LineRange(offset int) Range {
	return Range{Start: d.LineStart(offset), End: d.LineEnd(offset)}
}

// LineContentEnd returns the offset of the newline ending the line containing
// offset, or the document length for the last line.
func (d *Document) LineContentEnd(offset int) int {
	offset = d.Clamp(offset)
	for i := offset; i < len(d.text); i++ {
		if d.text[i] == '\n' {
			return i
		}
	}
	return len(d.text)
}

// LinesRange expands [start, end) to whole lines. A non-empty range ending
// just after a newline does not pull in the following line.
func (d *Document) LinesRange(start, end int) Range {
	r := d.ClampRange(start, end)
	last := r.End
	if !r.IsEmpty() && d.text[r.End-1] == '\n' {
		last = r.End - 1
	}
	return Range{Start: d.LineStart(r.Start), End: d.LineEnd(last)}
}

// LineCount returns the number of lines. An empty document has one line.
func (d *Document) LineCount() int {
	n := 1
	for _, r := range d.text {
		if r == '\n' {
			n++
		}
	}
	return n
}

// Lines returns the range of every line in order.
func (d *Document) Lines() []Range {
	var out []Range
	start := 0
	for i, r := range d.text {
		if r == '\n' {
			out = append(out, Range{Start: start, End: i + 1})
			start = i + 1
		}
	}
	return append(out, Range{Start: start, End: len(d.text)})
}

func normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

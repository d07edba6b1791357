package typing

import (
	"github.com/dshills/richtext/internal/engine/attr"
	"github.com/dshills/richtext/internal/engine/lines"
	"github.com/dshills/richtext/internal/engine/span"
)

// Selection reports the current selection.
type Selection interface {
	Selection() (start, end int)
}

// Tracker holds the typing state of one editor.
type Tracker struct {
	state   State
	applier *span.Applier
	lines   *lines.Formatter
	sel     Selection
}

// NewTracker creates a tracker with an empty state.
func NewTracker(applier *span.Applier, formatter *lines.Formatter, sel Selection) *Tracker {
	return &Tracker{applier: applier, lines: formatter, sel: sel}
}

// State returns the current typing state.
func (t *Tracker) State() State {
	return t.state
}

// SetState replaces the typing state without touching the document.
func (t *Tracker) SetState(s State) {
	t.state = NewState(s.LineKind, s.CharKinds)
}

// SetTextType makes kind the pending line kind and applies it to the
// selected lines. Setting the kind that already covers the selected lines
// toggles it off. None behaves like ClearTextType.
func (t *Tracker) SetTextType(kind attr.Kind) {
	if !kind.IsLine() {
		t.ClearTextType()
		return
	}
	start, end := t.sel.Selection()
	if t.lines.ResolveLines(start, end).IsEmpty() {
		if t.state.LineKind == kind {
			kind = attr.None
		}
		t.state = t.state.WithLineKind(kind)
		return
	}
	t.state = t.state.WithLineKind(t.lines.ApplyTextType(kind, start, end))
}

// ClearTextType drops the pending line kind and clears the selected lines.
func (t *Tracker) ClearTextType() {
	t.state = t.state.WithLineKind(attr.None)
	t.FormatSelectionLines()
}

// SetTextStyle replaces the pending character kinds and applies them to the
// current selection.
func (t *Tracker) SetTextStyle(kinds attr.Set) {
	t.state = t.state.WithCharKinds(kinds)
	t.FormatSelectionCursor()
}

// ClearTextStyle drops every pending character kind and clears them from
// the current selection.
func (t *Tracker) ClearTextStyle() {
	t.state = t.state.WithCharKinds(0)
	t.FormatSelectionCursor()
}

// FormatSelectionLines stamps the pending line kind onto the selected lines.
func (t *Tracker) FormatSelectionLines() {
	start, end := t.sel.Selection()
	t.lines.SetTextType(t.state.LineKind, start, end)
}

// FormatSelectionCursor stamps the pending character kinds onto the selection.
func (t *Tracker) FormatSelectionCursor() {
	start, end := t.sel.Selection()
	t.stampChars(start, end)
}

// OnTextInserted stamps the typing state onto the inserted range [start, end).
func (t *Tracker) OnTextInserted(start, end int) {
	if end <= start {
		return
	}
	t.lines.SetTextType(t.state.LineKind, start, end)
	t.stampChars(start, end)
}

// OnTextDeleted renumbers spans after [start, end) was removed, drops the
// spans the deletion emptied and re-covers the line that now holds start.
// The typing state is left alone.
func (t *Tracker) OnTextDeleted(start, end int) {
	if end <= start {
		return
	}
	t.applier.Store().Collapse(start, end)
	for _, k := range attr.All() {
		t.applier.Toggle(k, start, start, true)
	}
	t.lines.Rejoin(start)
}

// stampChars clears the weight kinds over [start, end), then applies the
// pending character kinds. Bold and italic together become boldItalic.
func (t *Tracker) stampChars(start, end int) {
	if end <= start {
		return
	}
	for _, k := range []attr.Kind{attr.Bold, attr.Italic, attr.BoldItalic} {
		t.applier.Clear(k, start, end)
	}
	if w := t.state.WeightKind(); w != attr.None {
		t.applier.Toggle(w, start, end, true)
	}
	for _, k := range []attr.Kind{attr.Underline, attr.Strikethrough} {
		if t.state.CharKinds.Has(k) {
			t.applier.Toggle(k, start, end, true)
		} else {
			t.applier.Clear(k, start, end)
		}
	}
}

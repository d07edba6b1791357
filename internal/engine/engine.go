package engine

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/richtext/internal/engine/attr"
	"github.com/dshills/richtext/internal/engine/delta"
	"github.com/dshills/richtext/internal/engine/document"
	"github.com/dshills/richtext/internal/engine/lines"
	"github.com/dshills/richtext/internal/engine/markdown"
	"github.com/dshills/richtext/internal/engine/selection"
	"github.com/dshills/richtext/internal/engine/span"
	"github.com/dshills/richtext/internal/engine/typing"
)

// Re-export commonly used types for convenience.
type (
	// Kind identifies a formatting attribute.
	Kind = attr.Kind

	// Range is a half-open rune range.
	Range = document.Range

	// Span is an attribute span.
	Span = span.Span

	// Status is a selection status snapshot.
	Status = selection.Status

	// TypingState is the pending typing attributes.
	TypingState = typing.State

	// Delta is the document in delta form.
	Delta = delta.Delta
)

// DividerText is the placeholder rune a divider line holds.
const DividerText = "\u200b"

// editFlags select the follow-up work of an edit.
type editFlags uint8

const (
	stampTyping editFlags = 1 << iota // stamp the typing state on inserted text
	autoFormat                        // run Markdown shortcuts on inserted text
)

// Editor is a rich-text editing core: a document, its attribute spans, the
// current selection and the pending typing attributes.
type Editor struct {
	id uuid.UUID

	// Core components
	doc       *document.Document
	store     *span.Store
	applier   *span.Applier
	lines     *lines.Formatter
	inspector *selection.Inspector
	typing    *typing.Tracker
	markdown  *markdown.AutoFormatter

	// Selection
	selStart   int
	selEnd     int
	lastStatus selection.Status

	observers []*observerEntry
	logger    Logger

	// Configuration
	readOnly        bool
	placeholder     string
	markdownEnabled bool
	strict          bool

	// Initialization
	initContent string
	initDelta   *delta.Delta
}

// New creates an Editor with the given options.
func New(opts ...Option) *Editor {
	e := &Editor{
		logger:          nopLogger{},
		markdownEnabled: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.id == uuid.Nil {
		e.id = uuid.New()
	}

	e.doc = document.NewFromString(e.initContent)
	e.store = span.NewStore(
		span.WithLength(e.doc.Len()),
		span.WithStrictInvariants(e.strict),
		span.WithLogger(e.logger),
	)
	e.applier = span.NewApplier(e.store)
	e.lines = lines.NewFormatter(e.doc, e.applier)
	e.inspector = selection.NewInspector(e.store, e.doc)
	e.typing = typing.NewTracker(e.applier, e.lines, e)
	e.markdown = markdown.New(markdownTarget{e}, markdown.WithEnabled(e.markdownEnabled))

	if e.initDelta != nil {
		e.loadDelta(*e.initDelta)
	}
	e.lastStatus = e.inspector.Status(e.selStart, e.selEnd)
	return e
}

// ============================================================================
// Read operations
// ============================================================================

// ID returns the editor instance ID.
func (e *Editor) ID() uuid.UUID { return e.id }

// Text returns the document text.
func (e *Editor) Text() string { return e.doc.Text() }

// Len returns the document length in runes.
func (e *Editor) Len() int { return e.doc.Len() }

// IsEmpty reports whether the document is empty.
func (e *Editor) IsEmpty() bool { return e.doc.IsEmpty() }

// Slice returns the text in [start, end), clamped to the document.
func (e *Editor) Slice(start, end int) string { return e.doc.Slice(start, end) }

// Document returns the underlying document. Callers must not mutate it.
func (e *Editor) Document() *document.Document { return e.doc }

// Selection returns the current selection.
func (e *Editor) Selection() (start, end int) { return e.selStart, e.selEnd }

// Spans returns every span ordered by start.
func (e *Editor) Spans() []Span { return e.store.All() }

// SpansOverlapping returns the spans of kind intersecting [start, end).
func (e *Editor) SpansOverlapping(kind Kind, start, end int) []Span {
	return e.store.Overlapping(kind, start, end, false)
}

// TypingState returns the pending typing attributes.
func (e *Editor) TypingState() TypingState { return e.typing.State() }

// Status returns the status of the current selection.
func (e *Editor) Status() Status { return e.inspector.Status(e.selStart, e.selEnd) }

// StatusAt returns the status of an arbitrary selection.
func (e *Editor) StatusAt(start, end int) Status { return e.inspector.Status(start, end) }

// LineKindAt returns the line kind of the line containing offset.
func (e *Editor) LineKindAt(offset int) Kind { return e.lines.TextTypeAt(offset) }

// Delta returns the document in delta form.
func (e *Editor) Delta() Delta { return delta.FromDocument(e.doc.Text(), e.store.All()) }

// Placeholder returns the placeholder text.
func (e *Editor) Placeholder() string { return e.placeholder }

// IsReadOnly reports whether mutations are rejected.
func (e *Editor) IsReadOnly() bool { return e.readOnly }

// SetReadOnly toggles read-only mode.
func (e *Editor) SetReadOnly(readOnly bool) { e.readOnly = readOnly }

// SetPlaceholder sets the placeholder text.
func (e *Editor) SetPlaceholder(placeholder string) { e.placeholder = placeholder }

// MarkdownEnabled reports whether Markdown shortcuts are applied.
func (e *Editor) MarkdownEnabled() bool { return e.markdown.Enabled() }

// SetMarkdownEnabled turns Markdown shortcuts on or off.
func (e *Editor) SetMarkdownEnabled(enabled bool) {
	e.markdownEnabled = enabled
	e.markdown.SetEnabled(enabled)
}

// AddObserver registers an observer and returns a function removing it.
func (e *Editor) AddObserver(o Observer) func() {
	entry := &observerEntry{o}
	e.observers = append(e.observers, entry)
	return func() {
		for i, existing := range e.observers {
			if existing == entry {
				e.observers = append(e.observers[:i:i], e.observers[i+1:]...)
				return
			}
		}
	}
}

// ============================================================================
// Formatting commands
// ============================================================================

// SetTextType makes kind the pending line kind and applies it to the
// selected lines. attr.None clears the line kind.
func (e *Editor) SetTextType(kind Kind) error {
	if err := e.writable("setTextType"); err != nil {
		return err
	}
	if kind == attr.None {
		return e.ClearTextType()
	}
	if !kind.IsLine() || kind == attr.Divider {
		e.logger.Warn("set text type with non-line attribute %s", kind)
		return fmt.Errorf("set text type %s: %w", kind, ErrWrongLevel)
	}
	e.typing.SetTextType(kind)
	e.logger.Debug("text type set to %s", e.typing.State().LineKind)
	e.syncSelection(false)
	return nil
}

// SetTextTypeName is SetTextType by wire name. "normal" clears the line kind.
func (e *Editor) SetTextTypeName(name string) error {
	kind, ok := attr.Parse(name)
	if !ok {
		e.logger.Warn("set text type with unknown attribute %q", name)
		return fmt.Errorf("set text type %q: %w", name, ErrUnknownAttribute)
	}
	return e.SetTextType(kind)
}

// ClearTextType drops the pending line kind and clears the selected lines.
func (e *Editor) ClearTextType() error {
	if err := e.writable("clearTextType"); err != nil {
		return err
	}
	e.typing.ClearTextType()
	e.syncSelection(false)
	return nil
}

// SetTextStyle replaces the pending character kinds and applies them to
// the current selection. Line kinds in kinds are ignored.
func (e *Editor) SetTextStyle(kinds attr.Set) error {
	if err := e.writable("setTextStyle"); err != nil {
		return err
	}
	e.typing.SetTextStyle(kinds)
	e.logger.Debug("text style set to %s", e.typing.State().CharKinds)
	e.syncSelection(false)
	return nil
}

// SetTextStyleNames is SetTextStyle by wire names. Unknown names are
// logged and skipped; the known ones are still applied.
func (e *Editor) SetTextStyleNames(names []string) error {
	kinds, unknown := attr.ParseSet(names)
	for _, n := range unknown {
		e.logger.Warn("set text style with unknown attribute %q", n)
	}
	if err := e.SetTextStyle(kinds); err != nil {
		return err
	}
	if len(unknown) > 0 {
		return fmt.Errorf("set text style %v: %w", unknown, ErrUnknownAttribute)
	}
	return nil
}

// ToggleTextStyle flips one character kind in the pending style and
// applies the result to the current selection.
func (e *Editor) ToggleTextStyle(kind Kind) error {
	if !kind.IsChar() {
		return fmt.Errorf("toggle text style %s: %w", kind, ErrWrongLevel)
	}
	return e.SetTextStyle(e.typing.State().CharKinds.Toggle(kind))
}

// ClearTextStyle drops the pending character kinds and clears them from
// the current selection.
func (e *Editor) ClearTextStyle() error {
	if err := e.writable("clearTextStyle"); err != nil {
		return err
	}
	e.typing.ClearTextStyle()
	e.syncSelection(false)
	return nil
}

// FormatSelectionLines stamps the pending line kind onto the selected lines.
func (e *Editor) FormatSelectionLines() error {
	if err := e.writable("formatSelectionLines"); err != nil {
		return err
	}
	e.typing.FormatSelectionLines()
	e.syncSelection(false)
	return nil
}

// FormatText applies one attribute over [index, index+length), bypassing
// the typing state. A line attribute replaces the line kind of the lines
// touched. A character attribute replaces the bold/italic weight of the
// range, and underline or strike-through is kept only when it is the
// attribute applied. "normal" clears the line kind. Dividers are only made
// by InsertDivider.
func (e *Editor) FormatText(name string, index, length int) error {
	if err := e.writable("formatText"); err != nil {
		return err
	}
	kind, ok := attr.Parse(name)
	if !ok {
		e.logger.Warn("format text with missing attribute %q", name)
		return fmt.Errorf("format text %q: %w", name, ErrUnknownAttribute)
	}
	if kind == attr.Divider {
		e.logger.Warn("format text with divider attribute")
		return fmt.Errorf("format text %q: %w", name, ErrWrongLevel)
	}
	r := e.doc.ClampRange(index, index+length)
	e.formatKind(kind, r.Start, r.End)
	e.syncSelection(false)
	return nil
}

// Toggle turns kind on or off over [start, end) with the raw toggle
// algorithm. Line kinds are expanded to whole lines first.
func (e *Editor) Toggle(kind Kind, start, end int, on bool) (span.Outcome, error) {
	if err := e.writable("toggle"); err != nil {
		return span.OutcomeNone, err
	}
	if kind.IsLine() {
		r := e.lines.ResolveLines(start, end)
		start, end = r.Start, r.End
	}
	out := e.applier.Toggle(kind, start, end, on)
	e.syncSelection(false)
	return out, nil
}

func (e *Editor) formatKind(kind Kind, start, end int) {
	switch {
	case kind == attr.None || kind.IsLine():
		e.lines.SetTextType(kind, start, end)
	case kind.IsChar():
		for _, k := range []Kind{attr.Bold, attr.Italic, attr.BoldItalic} {
			if k != kind {
				e.applier.Clear(k, start, end)
			}
		}
		switch kind {
		case attr.Bold, attr.Italic, attr.BoldItalic:
			e.applier.Toggle(kind, start, end, true)
		}
		for _, k := range []Kind{attr.Underline, attr.Strikethrough} {
			if k == kind {
				e.applier.Toggle(k, start, end, true)
			} else {
				e.applier.Clear(k, start, end)
			}
		}
	}
}

// ============================================================================
// Text commands
// ============================================================================

// ReplaceText replaces length runes at index with data. The caret moves
// to the end of the inserted text.
func (e *Editor) ReplaceText(index, length int, data string) error {
	return e.replace("replaceText", index, index+length, data)
}

// Insert inserts data at index, replacing replaceLength runes. The caret
// moves to the end of the inserted text.
func (e *Editor) Insert(index int, data string, replaceLength int) error {
	return e.replace("insert", index, index+replaceLength, data)
}

// Delete removes [start, end). The caret moves to start.
func (e *Editor) Delete(start, end int) error {
	return e.replace("delete", start, end, "")
}

// TypeText inserts data at the caret, replacing any selected text.
func (e *Editor) TypeText(data string) error {
	return e.replace("type", e.selStart, e.selEnd, data)
}

func (e *Editor) replace(op string, start, end int, data string) error {
	if err := e.writable(op); err != nil {
		return err
	}
	c := e.edit(start, end, data, stampTyping|autoFormat)
	if !c.IsNoOp() {
		e.logger.Debug("%s %s", op, c)
	}
	e.syncSelection(false)
	return nil
}

// UpdateSelection moves the selection and reports its status. Observers
// are always notified.
func (e *Editor) UpdateSelection(start, end int) Status {
	r := e.doc.ClampRange(start, end)
	e.selStart, e.selEnd = r.Start, r.End
	return e.syncSelection(true)
}

// InsertDivider inserts a divider line at the caret.
func (e *Editor) InsertDivider() error {
	if err := e.writable("insertDivider"); err != nil {
		return err
	}
	e.insertDividerAt(e.selEnd)
	e.syncSelection(false)
	return nil
}

// SetContents replaces the document and its spans with a delta.
func (e *Editor) SetContents(d Delta) error {
	if err := e.writable("setContents"); err != nil {
		return err
	}
	e.loadDelta(d)
	e.syncSelection(false)
	return nil
}

func (e *Editor) loadDelta(d Delta) {
	text, spans, unknown := d.Document()
	for _, k := range unknown {
		e.logger.Warn("ignoring unknown delta attribute %q", k)
	}
	e.edit(0, e.doc.Len(), text, 0)
	e.store.Reset(e.doc.Len())
	for _, sp := range spans {
		e.store.Add(sp)
	}
	e.selStart, e.selEnd = 0, 0
}

// insertDividerAt places a divider on its own line at offset.
func (e *Editor) insertDividerAt(offset int) {
	offset = e.doc.Clamp(offset)
	text := ""
	if r, ok := e.doc.RuneAt(offset - 1); ok && r != '\n' {
		text = "\n"
	}
	lineStart := offset + utf8.RuneCountInString(text)
	text += DividerText + "\n"

	c := e.edit(offset, offset, text, 0)
	for _, k := range attr.CharKinds() {
		e.applier.Clear(k, c.NewRange.Start, c.NewRange.End)
	}
	e.lines.SetTextType(attr.Divider, lineStart, lineStart)
	e.selStart, e.selEnd = c.NewRange.End, c.NewRange.End
}

// edit replaces [start, end) with text and keeps spans, typing state and
// selection consistent. Observers see the change before auto formatting
// runs, and any auto formatting edits are reported separately.
func (e *Editor) edit(start, end int, text string, flags editFlags) document.Change {
	r := e.doc.ClampRange(start, end)
	if r.IsEmpty() && text == "" {
		return document.Change{Type: document.ChangeNone, Range: r, NewRange: r}
	}

	e.notifyWillChange(TextChange{
		Start:   r.Start,
		Before:  r.Len(),
		Count:   utf8.RuneCountInString(text),
		OldText: e.doc.Slice(r.Start, r.End),
		NewText: text,
		Style:   e.lastStatus.UniqueStyle,
	})

	c := e.doc.Replace(r.Start, r.End, text)
	if c.Before() > 0 {
		e.typing.OnTextDeleted(c.Range.Start, c.Range.End)
	}
	if c.Count() > 0 {
		e.store.Shift(c.NewRange.Start, c.Count())
		if flags&stampTyping != 0 {
			e.typing.OnTextInserted(c.NewRange.Start, c.NewRange.End)
		}
	}

	if flags&stampTyping != 0 {
		e.selStart, e.selEnd = c.NewRange.End, c.NewRange.End
	} else {
		e.selStart = shiftOffset(e.selStart, c)
		e.selEnd = shiftOffset(e.selEnd, c)
	}

	e.notifyChanged(TextChange{
		Start:   c.Range.Start,
		Before:  c.Before(),
		Count:   c.Count(),
		OldText: c.OldText,
		NewText: c.NewText,
		Style:   e.inspector.Status(e.selStart, e.selEnd).UniqueStyle,
	})

	if flags&autoFormat != 0 && c.Count() > 0 {
		if m, ok := e.markdown.OnInserted(c.NewRange.Start, c.NewRange.End); ok {
			e.logger.Debug("markdown %s applied %s over %s", m.Rule, m.Kind, m.Range)
		}
	}
	return c
}

// shiftOffset maps an offset of the old document into the new one.
func shiftOffset(p int, c document.Change) int {
	switch {
	case p >= c.Range.End:
		return p + c.Delta()
	case p > c.Range.Start:
		return c.Range.Start
	default:
		return p
	}
}

// syncSelection recomputes the selection status and notifies observers
// when it changed, or always when force is set.
func (e *Editor) syncSelection(force bool) Status {
	e.selStart = e.doc.Clamp(e.selStart)
	e.selEnd = e.doc.Clamp(e.selEnd)
	st := e.inspector.Status(e.selStart, e.selEnd)
	if force || !st.Equal(e.lastStatus) {
		e.lastStatus = st
		for _, entry := range e.observers {
			entry.OnSelectionChanged(st)
		}
	}
	return st
}

func (e *Editor) notifyWillChange(c TextChange) {
	for _, entry := range e.observers {
		entry.OnTextWillChange(c)
	}
}

func (e *Editor) notifyChanged(c TextChange) {
	for _, entry := range e.observers {
		entry.OnTextChanged(c)
	}
}

func (e *Editor) writable(op string) error {
	if e.readOnly {
		e.logger.Warn("%s rejected: editor is read-only", op)
		return ErrReadOnly
	}
	return nil
}

// markdownTarget routes auto formatter edits through the editor without
// re-triggering auto formatting.
type markdownTarget struct {
	e *Editor
}

func (t markdownTarget) Slice(start, end int) string { return t.e.doc.Slice(start, end) }

func (t markdownTarget) LineStart(offset int) int { return t.e.doc.LineStart(offset) }

func (t markdownTarget) Delete(start, end int) { t.e.edit(start, end, "", 0) }

func (t markdownTarget) SetTextType(kind attr.Kind, start, end int) {
	t.e.lines.SetTextType(kind, start, end)
}

func (t markdownTarget) FormatText(kind attr.Kind, start, end int) {
	t.e.formatKind(kind, start, end)
}

func (t markdownTarget) SetTypingLineKind(kind attr.Kind) {
	t.e.typing.SetState(t.e.typing.State().WithLineKind(kind))
}

func (t markdownTarget) InsertDivider(at int) { t.e.insertDividerAt(at) }

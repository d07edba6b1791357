package event

import (
	"context"

	"github.com/google/uuid"

	"github.com/dshills/richtext/internal/engine"
	"github.com/dshills/richtext/internal/engine/selection"
)

// Editor event topics.
const (
	// TopicTextWillChange is published before text is mutated.
	TopicTextWillChange Topic = "editor.text.willchange"

	// TopicTextChanged is published after text was mutated and spans updated.
	TopicTextChanged Topic = "editor.text.changed"

	// TopicSelectionChanged is published when the selection or the
	// attributes active over it change.
	TopicSelectionChanged Topic = "editor.selection.changed"
)

// TextChangePayload is the payload of the text topics.
type TextChangePayload struct {
	// Start is the offset of the change.
	Start int

	// Before is the number of runes removed.
	Before int

	// Count is the number of runes inserted.
	Count int

	OldText string
	NewText string

	// Style is the unique style of the selection when the event was sent.
	Style string
}

// SelectionPayload is the payload of TopicSelectionChanged.
type SelectionPayload struct {
	Status selection.Status

	// Fields is the flattened status, keyed by selection.FieldNames.
	Fields map[string]any
}

var _ engine.Observer = (*EditorObserver)(nil)

// EditorObserver publishes editor notifications on a bus. Events are
// published with Publish, so sync subscribers run before the editor
// command returns.
type EditorObserver struct {
	bus    Bus
	source string
	ctx    context.Context

	correlation string
	onError     func(error)
}

// NewEditorObserver creates an observer publishing on bus with the given
// source, usually the editor ID.
func NewEditorObserver(ctx context.Context, bus Bus, source string, onError func(error)) *EditorObserver {
	if onError == nil {
		onError = func(error) {}
	}
	return &EditorObserver{bus: bus, source: source, ctx: ctx, onError: onError}
}

// OnTextWillChange implements engine.Observer.
func (o *EditorObserver) OnTextWillChange(c engine.TextChange) {
	o.correlation = uuid.NewString()
	o.publish(NewEvent(TopicTextWillChange, textPayload(c), o.source).WithCorrelation(o.correlation))
}

// OnTextChanged implements engine.Observer.
func (o *EditorObserver) OnTextChanged(c engine.TextChange) {
	o.publish(NewEvent(TopicTextChanged, textPayload(c), o.source).WithCorrelation(o.correlation))
	o.correlation = ""
}

// OnSelectionChanged implements engine.Observer.
func (o *EditorObserver) OnSelectionChanged(s selection.Status) {
	o.publish(NewEvent(TopicSelectionChanged, SelectionPayload{Status: s, Fields: s.Fields()}, o.source))
}

func (o *EditorObserver) publish(ev any) {
	if err := o.bus.Publish(o.ctx, ev); err != nil {
		o.onError(err)
	}
}

func textPayload(c engine.TextChange) TextChangePayload {
	return TextChangePayload{
		Start:   c.Start,
		Before:  c.Before,
		Count:   c.Count,
		OldText: c.OldText,
		NewText: c.NewText,
		Style:   c.Style,
	}
}

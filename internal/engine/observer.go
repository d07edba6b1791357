package engine

import "github.com/dshills/richtext/internal/engine/selection"

// TextChange describes one text mutation. Start is the offset of the
// change, Before the number of runes removed and Count the number inserted.
// Style is the unique style of the selection when the notification is sent.
type TextChange struct {
	Start   int
	Before  int
	Count   int
	OldText string
	NewText string
	Style   string
}

// Observer receives editor notifications. Calls are synchronous and happen
// before the triggering command returns. Observers must not call back into
// the editor.
type Observer interface {
	OnTextWillChange(change TextChange)
	OnTextChanged(change TextChange)
	OnSelectionChanged(status selection.Status)
}

// observerEntry gives each registration an identity, since observers
// themselves need not be comparable.
type observerEntry struct {
	Observer
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	TextWillChange   func(TextChange)
	TextChanged      func(TextChange)
	SelectionChanged func(selection.Status)
}

// OnTextWillChange implements Observer.
func (o ObserverFuncs) OnTextWillChange(c TextChange) {
	if o.TextWillChange != nil {
		o.TextWillChange(c)
	}
}

// OnTextChanged implements Observer.
func (o ObserverFuncs) OnTextChanged(c TextChange) {
	if o.TextChanged != nil {
		o.TextChanged(c)
	}
}

// OnSelectionChanged implements Observer.
func (o ObserverFuncs) OnSelectionChanged(s selection.Status) {
	if o.SelectionChanged != nil {
		o.SelectionChanged(s)
	}
}

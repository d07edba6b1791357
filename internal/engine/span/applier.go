package span

import "github.com/dshills/richtext/internal/engine/attr"

// Outcome describes what a toggle did to the store.
type Outcome uint8

const (
	OutcomeNone    Outcome = iota // Nothing changed
	OutcomeCreated                // A new span was created
	OutcomeMerged                 // A new span absorbed touching spans
	OutcomeDeleted                // A span was deleted entirely
	OutcomeSplit                  // A span was split in two
	OutcomeTrimmed                // A span lost its head or tail
	OutcomeClosed                 // A span ending at the range was closed one rune early
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeCreated:
		return "created"
	case OutcomeMerged:
		return "merged"
	case OutcomeDeleted:
		return "deleted"
	case OutcomeSplit:
		return "split"
	case OutcomeTrimmed:
		return "trimmed"
	case OutcomeClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Applier toggles attributes over ranges of a Store.
type Applier struct {
	store *Store
}

// NewApplier creates an applier operating on store.
func NewApplier(store *Store) *Applier {
	return &Applier{store: store}
}

// Store returns the underlying store.
func (a *Applier) Store() *Store {
	return a.store
}

// Toggle turns kind on or off over [start, end).
//
// Turning a kind on is a no-op when one span already covers the range.
// Otherwise every span of that kind inside the range is replaced by a single
// span, widened to absorb spans touching either edge. For a line kind every
// other line kind is first cleared from the range.
//
// Turning a kind off removes it from the range, deleting, splitting or
// trimming the overlapping spans. When no span overlaps but a character span
// ends exactly at start, that span is closed one rune early.
//
// A zero-length range never creates a span; it only drops empty spans left
// at that point by a deletion.
func (a *Applier) Toggle(kind attr.Kind, start, end int, on bool) Outcome {
	if !kind.IsValid() || kind == attr.None {
		return OutcomeNone
	}
	start, end = a.store.clamp(start, end)
	if start == end {
		return a.sweep(kind, start)
	}
	if on {
		return a.turnOn(kind, start, end)
	}
	return a.turnOff(kind, start, end)
}

// Clear removes kind from [start, end) without closing spans that merely
// end at start. It is the primitive behind "clear conflicting attributes
// first" steps, as opposed to a user un-checking a style.
func (a *Applier) Clear(kind attr.Kind, start, end int) Outcome {
	start, end = a.store.clamp(start, end)
	if start == end {
		return OutcomeNone
	}
	if len(a.store.Overlapping(kind, start, end, false)) == 0 {
		return OutcomeNone
	}
	return a.turnOff(kind, start, end)
}

// ClearLineKinds removes every line kind from [start, end).
func (a *Applier) ClearLineKinds(start, end int) {
	for _, k := range attr.LineKinds() {
		a.Clear(k, start, end)
	}
}

func (a *Applier) turnOn(kind attr.Kind, start, end int) Outcome {
	if kind.IsLine() {
		for _, other := range attr.LineKinds() {
			if other != kind {
				a.store.Remove(other, start, end)
			}
		}
	}

	if _, ok := a.store.Covering(kind, start, end); ok {
		return OutcomeNone
	}

	newStart, newEnd := start, end
	outcome := OutcomeCreated
	for _, sp := range a.store.Overlapping(kind, start, start, true) {
		if sp.Start < newStart {
			newStart = sp.Start
			outcome = OutcomeMerged
		}
	}
	for _, sp := range a.store.Overlapping(kind, end, end, true) {
		if sp.End > newEnd {
			newEnd = sp.End
			outcome = OutcomeMerged
		}
	}
	if outcome == OutcomeCreated && len(a.store.Overlapping(kind, start, end, false)) > 0 {
		outcome = OutcomeMerged
	}

	a.store.Remove(kind, start, end)
	a.store.Add(Span{Kind: kind, Start: newStart, End: newEnd})
	return outcome
}

func (a *Applier) turnOff(kind attr.Kind, start, end int) Outcome {
	spans := a.store.Overlapping(kind, start, end, false)
	if len(spans) == 0 {
		if !kind.IsChar() || start == 0 {
			return OutcomeNone
		}
		for _, sp := range a.store.Overlapping(kind, start, start, true) {
			if sp.End == start {
				a.store.Remove(kind, start-1, start)
				return OutcomeClosed
			}
		}
		return OutcomeNone
	}

	first := spans[0]
	outcome := OutcomeTrimmed
	switch {
	case start <= first.Start && end >= first.End:
		outcome = OutcomeDeleted
	case first.Start < start && end < first.End:
		outcome = OutcomeSplit
	}
	a.store.Remove(kind, start, end)
	return outcome
}

// sweep removes spans of kind that collapsed onto offset. It reads the raw
// list because healing would report those spans as violations.
func (a *Applier) sweep(kind attr.Kind, offset int) Outcome {
	var empty []Span
	for _, sp := range a.store.spans[kind] {
		if sp.Start == offset && sp.End == offset {
			empty = append(empty, sp)
		}
	}
	outcome := OutcomeNone
	for _, sp := range empty {
		if a.store.Delete(sp) {
			outcome = OutcomeDeleted
		}
	}
	return outcome
}

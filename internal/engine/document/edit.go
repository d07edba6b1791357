package document

import "fmt"

// ChangeType categorizes the type of change made to the document.
type ChangeType uint8

const (
	ChangeInsert  ChangeType = iota // Text was inserted
	ChangeDelete                    // Text was deleted
	ChangeReplace                   // Text was replaced
	ChangeNone                      // Nothing changed
)

// String returns a string representation of the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeReplace:
		return "replace"
	case ChangeNone:
		return "none"
	default:
		return "unknown"
	}
}

// Change describes one applied mutation.
// Range is the replaced range in the old document, NewRange the range the
// inserted text occupies in the new document.
type Change struct {
	Type     ChangeType
	Range    Range
	NewRange Range
	OldText  string
	NewText  string
	Revision RevisionID
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	switch c.Type {
	case ChangeInsert:
		return fmt.Sprintf("Insert(%d, %q)", c.Range.Start, c.NewText)
	case ChangeDelete:
		return fmt.Sprintf("Delete%s", c.Range)
	case ChangeReplace:
		return fmt.Sprintf("Replace%s with %q", c.Range, c.NewText)
	default:
		return "NoChange"
	}
}

// Before returns the number of runes removed.
func (c Change) Before() int { return c.Range.Len() }

// Count returns the number of runes inserted.
func (c Change) Count() int { return c.NewRange.Len() }

// Delta returns the change in document length.
func (c Change) Delta() int { return c.Count() - c.Before() }

// IsNoOp reports whether the change left the document untouched.
func (c Change) IsNoOp() bool { return c.Type == ChangeNone }

// Invert returns the change that undoes this one.
func (c Change) Invert() Change {
	inv := Change{
		Range:    c.NewRange,
		NewRange: Range{Start: c.NewRange.Start, End: c.NewRange.Start + c.Range.Len()},
		OldText:  c.NewText,
		NewText:  c.OldText,
		Revision: c.Revision,
	}
	switch c.Type {
	case ChangeInsert:
		inv.Type = ChangeDelete
	case ChangeDelete:
		inv.Type = ChangeInsert
	default:
		inv.Type = c.Type
	}
	return inv
}

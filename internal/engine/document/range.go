package document

import "fmt"

// Range is the half-open rune span [Start, End).
type Range struct {
	Start, End int
}

// NewRange orders start and end. Selections arrive in either order.
func NewRange(start, end int) Range {
	return Range{Start: min(start, end), End: max(start, end)}
}

func (r Range) String() string { return fmt.Sprintf("[%d:%d)", r.Start, r.End) }

func (r Range) Len() int      { return r.End - r.Start }
func (r Range) IsEmpty() bool { return r.Start == r.End }

// Clamp orders r and pulls both ends into [0, length].
func (r Range) Clamp(length int) Range {
	r = NewRange(r.Start, r.End)
	return Range{Start: ClampOffset(r.Start, length), End: ClampOffset(r.End, length)}
}

// ClampOffset pulls offset into [0, length].
func ClampOffset(offset, length int) int {
	return max(0, min(offset, length))
}

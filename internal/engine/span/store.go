package span

import (
	"fmt"
	"sort"

	"github.com/dshills/richtext/internal/engine/attr"
)

// Logger receives reports of self-healed invariant violations.
type Logger interface {
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...any) {}

// Option configures a Store.
type Option func(*Store)

// WithLength sets the initial document length used for clamping.
func WithLength(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.length = n
		}
	}
}

// WithStrictInvariants makes the store panic when it discovers an invalid
// span instead of dropping it.
func WithStrictInvariants(strict bool) Option {
	return func(s *Store) {
		s.strict = strict
	}
}

// WithLogger sets the logger used to report dropped spans.
func WithLogger(l Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Store holds the spans of one document, grouped by kind.
// It is not safe for concurrent use.
type Store struct {
	spans  map[attr.Kind][]Span
	length int
	strict bool
	logger Logger
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		spans:  make(map[attr.Kind][]Span),
		logger: nopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Length returns the document length the store clamps against.
func (s *Store) Length() int {
	return s.length
}

// SetLength sets the document length, trimming spans that extend past it.
func (s *Store) SetLength(n int) {
	if n < 0 {
		n = 0
	}
	s.length = n
	for kind, list := range s.spans {
		out := list[:0]
		for _, sp := range list {
			if sp.End > n {
				sp.End = n
			}
			if sp.Start < sp.End {
				out = append(out, sp)
			}
		}
		s.set(kind, out)
	}
}

// Count returns the total number of spans.
func (s *Store) Count() int {
	n := 0
	for _, list := range s.spans {
		n += len(list)
	}
	return n
}

// Kind returns a copy of the spans of one kind, ordered by start.
func (s *Store) Kind(kind attr.Kind) []Span {
	s.heal(kind)
	return append([]Span(nil), s.spans[kind]...)
}

// All returns every span ordered by start, then kind.
func (s *Store) All() []Span {
	var out []Span
	for kind := range s.spans {
		s.heal(kind)
		out = append(out, s.spans[kind]...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// Overlapping returns the spans of kind intersecting [start, end), ordered by start.
//
// A zero-length query returns the spans containing that point. With touching
// set, spans that merely share a boundary with the query are included too:
// a span ending exactly at start, or beginning exactly at end.
func (s *Store) Overlapping(kind attr.Kind, start, end int, touching bool) []Span {
	start, end = s.clamp(start, end)
	s.heal(kind)

	var out []Span
	for _, sp := range s.spans[kind] {
		if sp.Start > end {
			break
		}
		if matches(sp, start, end, touching) {
			out = append(out, sp)
		}
	}
	return out
}

func matches(sp Span, start, end int, touching bool) bool {
	if touching {
		return sp.Start <= end && sp.End >= start
	}
	if start == end {
		return sp.Start <= start && start < sp.End
	}
	return sp.Start < end && sp.End > start
}

// Covering returns the span of kind that fully covers [start, end), if any.
func (s *Store) Covering(kind attr.Kind, start, end int) (Span, bool) {
	start, end = s.clamp(start, end)
	for _, sp := range s.Overlapping(kind, start, end, true) {
		if sp.Covers(start, end) {
			return sp, true
		}
	}
	return Span{}, false
}

// Add inserts a span and merges it with every same-kind span it overlaps or
// touches. Empty spans after clamping are ignored. Add returns the
// resulting merged span.
func (s *Store) Add(sp Span) (Span, bool) {
	if !sp.Kind.IsValid() || sp.Kind == attr.None {
		return Span{}, false
	}
	sp.Start, sp.End = s.clamp(sp.Start, sp.End)
	if sp.Start >= sp.End {
		return Span{}, false
	}

	list := s.spans[sp.Kind]
	out := make([]Span, 0, len(list)+1)
	merged := sp
	for _, existing := range list {
		if existing.Start <= merged.End && existing.End >= merged.Start {
			merged.Start = min(merged.Start, existing.Start)
			merged.End = max(merged.End, existing.End)
			continue
		}
		out = append(out, existing)
	}
	out = append(out, merged)
	s.set(sp.Kind, out)
	return merged, true
}

// Remove deletes the part of every span of kind that lies in [start, end).
// Spans inside the range disappear, spans partially overlapping it are
// trimmed and a span strictly containing it is split in two.
func (s *Store) Remove(kind attr.Kind, start, end int) {
	start, end = s.clamp(start, end)
	if start >= end {
		return
	}
	list := s.spans[kind]
	if len(list) == 0 {
		return
	}

	out := make([]Span, 0, len(list)+1)
	for _, sp := range list {
		if sp.End <= start || sp.Start >= end {
			out = append(out, sp)
			continue
		}
		if sp.Start < start {
			out = append(out, Span{Kind: kind, Start: sp.Start, End: start})
		}
		if end < sp.End {
			out = append(out, Span{Kind: kind, Start: end, End: sp.End})
		}
	}
	s.set(kind, out)
}

// Delete removes one exact span. It reports whether the span was present.
func (s *Store) Delete(sp Span) bool {
	list := s.spans[sp.Kind]
	for i, existing := range list {
		if existing == sp {
			s.set(sp.Kind, append(list[:i:i], list[i+1:]...))
			return true
		}
	}
	return false
}

// Clear removes every span of kind.
func (s *Store) Clear(kind attr.Kind) {
	delete(s.spans, kind)
}

// Reset removes every span and sets the document length.
func (s *Store) Reset(length int) {
	s.spans = make(map[attr.Kind][]Span)
	s.length = max(length, 0)
}

// Shift renumbers spans after a document edit at from.
//
// A positive delta is an insertion of delta runes at from: every boundary
// at or after from moves right. A negative delta is a deletion of
// [from, from-delta): boundaries inside the deleted range collapse onto
// from and boundaries after it move left. Spans left empty are removed and
// same-kind spans brought together are merged.
func (s *Store) Shift(from, delta int) {
	s.shift(from, delta, false)
}

// Collapse renumbers spans after [start, end) was deleted, like a negative
// Shift, except that a span lying wholly inside the deleted range is kept as
// an empty span at start. Empty spans are not valid store content: the
// caller drops them with a zero-length Toggle at start.
func (s *Store) Collapse(start, end int) {
	start, end = s.clamp(start, end)
	s.shift(start, start-end, true)
}

func (s *Store) shift(from, delta int, keepEmpty bool) {
	if delta == 0 {
		return
	}
	from = max(from, 0)

	shift := func(b int) int {
		if b < from {
			return b
		}
		if delta > 0 {
			return b + delta
		}
		return max(from, b+delta)
	}

	for kind, list := range s.spans {
		out := make([]Span, 0, len(list))
		for _, sp := range list {
			sp.Start = shift(sp.Start)
			sp.End = shift(sp.End)
			if sp.Start < sp.End || (keepEmpty && sp.Start == from) {
				out = append(out, sp)
			}
		}
		s.set(kind, normalize(out))
	}
	s.length = max(s.length+delta, 0)
}

// set stores a kind's spans sorted by start, dropping the entry when empty.
func (s *Store) set(kind attr.Kind, list []Span) {
	if len(list) == 0 {
		delete(s.spans, kind)
		return
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Start < list[j].Start })
	s.spans[kind] = list
}

// normalize merges overlapping or adjacent spans of a sorted-or-not slice of one kind.
func normalize(list []Span) []Span {
	if len(list) < 2 {
		return list
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Start < list[j].Start })
	out := list[:1]
	for _, sp := range list[1:] {
		last := &out[len(out)-1]
		if sp.Start <= last.End {
			last.End = max(last.End, sp.End)
			continue
		}
		out = append(out, sp)
	}
	return out
}

// heal drops spans that violate the store invariants, or panics in strict mode.
func (s *Store) heal(kind attr.Kind) {
	list := s.spans[kind]
	bad := false
	for i, sp := range list {
		if !sp.IsValid() || sp.End > s.length || (i > 0 && sp.Start <= list[i-1].End) {
			bad = true
			break
		}
	}
	if !bad {
		return
	}

	out := make([]Span, 0, len(list))
	for _, sp := range list {
		if !sp.IsValid() || sp.End > s.length {
			s.violation(sp)
			continue
		}
		out = append(out, sp)
	}
	merged := normalize(out)
	if len(merged) != len(out) {
		s.violation(Span{Kind: kind})
	}
	s.set(kind, merged)
}

func (s *Store) violation(sp Span) {
	if s.strict {
		panic(fmt.Sprintf("span: invariant violated by %s (document length %d)", sp, s.length))
	}
	s.logger.Warn("dropping inconsistent span %s (document length %d)", sp, s.length)
}

func (s *Store) clamp(start, end int) (int, int) {
	if start > end {
		start, end = end, start
	}
	start = min(max(start, 0), s.length)
	end = min(max(end, 0), s.length)
	return start, end
}

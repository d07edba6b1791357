// Package span maintains the attribute spans of a document and implements
// the toggle algorithm that keeps them consistent.
//
// A Span tags a half-open rune range [Start, End) with one attr.Kind. For
// every kind the Store keeps its spans sorted, pairwise disjoint and
// non-adjacent: adding a span merges it with every same-kind span it
// touches. Line-level spans additionally always cover whole lines; the
// Applier relies on its callers (see package lines) to resolve line
// boundaries before toggling a line kind.
//
// The Store does not own the text. After every document mutation the owner
// calls Shift so span offsets follow the text they annotate.
package span

// Package document provides the text model of a rich-text editor.
//
// A Document is an ordered, mutable sequence of runes addressed by zero-based
// rune offsets. Offsets are stable only between mutations: every insert or
// delete shifts the offsets that follow it, and callers holding offsets into
// the document (attribute spans, selections) must renumber them using the
// Change returned by each mutation.
//
// All positions passed to a Document are clamped to [0, Len()] rather than
// rejected, and reversed ranges are normalized. Edits originate from a
// best-effort UI layer and may race with other edits, so an out-of-range
// request degrades to the nearest valid one instead of failing.
//
// # Lines
//
// Lines are separated by '\n'. The range of a line includes its trailing
// newline when it has one, so the ranges of consecutive lines are adjacent
// and together cover the whole document. The last line has no newline and
// may be empty.
package document

// Package engine provides the rich-text editing core.
//
// The Editor facade combines a rune document with the attribute model that
// annotates it and keeps both consistent as text is typed, deleted,
// selected and formatted.
//
// # Architecture
//
// The editor is built on several sub-packages:
//
//   - attr: the closed set of formatting attributes and their data
//   - document: rune text, ranges, line lookup and change records
//   - span: the attribute span store and the toggle algorithm
//   - lines: expansion of selections to whole lines for line attributes
//   - selection: which attributes hold over a caret or a range
//   - typing: the pending typing attributes and their stamping
//   - markdown: Markdown shortcuts applied while typing
//   - delta: conversion to and from the {insert, attributes} delta format
//
// # Concurrency
//
// An Editor is owned by a single event loop. Every command runs to
// completion synchronously and observers are notified before the command
// returns, so the document and its spans are consistent between commands.
// Editors are not safe for concurrent use; callers sharing one across
// goroutines must serialize access.
//
// # Basic Usage
//
//	e := engine.New()
//	e.Insert(0, "hello world", 0)
//	e.SetTextStyle(attr.NewSet(attr.Bold))
//	e.Insert(11, " bold", 0)
//
//	st := e.StatusAt(13, 13)
//	st.IsActive(attr.Bold) // true
//
// # Invalid input
//
// Offsets are clamped to the document and reversed ranges are normalized;
// out-of-range commands degrade to the nearest valid command. Unknown
// attribute names are logged and ignored. Only read-only editors and
// unknown attributes produce errors.
package engine

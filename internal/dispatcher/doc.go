// Package dispatcher routes host commands to handlers that drive an
// editor.
//
// A host command is a method name plus a JSON object of arguments, the
// shape a host bridge delivers them in:
//
//	d := dispatcher.New(dispatcher.WithEditor(ed), dispatcher.WithMetrics())
//	dispatcher.RegisterEditorCommands(d)
//
//	res := d.Dispatch("formatText", []byte(`{"attribute":"bold","index":0,"len":5}`))
//	if res.IsError() { ... }
//
// # Handler Execution
//
// When a command is dispatched:
//
//  1. Its arguments are parsed (malformed JSON is an ErrInvalidArgs result)
//  2. Pre-dispatch hooks are called (can cancel the command)
//  3. The registry finds the highest priority handler
//  4. The handler runs; a panic becomes an ErrPanic result unless
//     WithoutRecovery was given
//  5. Post-dispatch hooks are called
//  6. Per-method counters are updated when WithMetrics was given
//
// Unknown commands produce an ErrNoHandler result. Commands rejected by a
// read-only editor produce a result wrapping engine.ErrReadOnly.
//
// # Thread Safety
//
// Registration is safe for concurrent use. Dispatch calls into the editor,
// which is not; callers serialize dispatches for one editor.
package dispatcher

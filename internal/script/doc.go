// Package script runs Lua scripts against an editor.
//
// Scripts execute in a sandboxed gopher-lua state with only the base,
// table, string and math libraries. A global editor table exposes the
// host commands:
//
//	editor.insert(index, text [, replace_len])
//	editor.replace(index, len, text)
//	editor.select(start [, end])        -> status table
//	editor.set_text_type(name)
//	editor.clear_text_type()
//	editor.set_text_style(name, ...)
//	editor.clear_text_style()
//	editor.format_text(attribute, index, len)
//	editor.format_lines()
//	editor.insert_divider()
//	editor.text()                       -> string
//	editor.status()                     -> status table
//	editor.delta()                      -> JSON string
//	editor.set_delta(json)
//	editor.command(name [, args])       -> result data table
//	editor.commands()                   -> array of command names
//
// A failed command raises a Lua error, which ends the script unless it is
// caught with pcall.
//
// Usage:
//
//	r := script.NewRunner(app, script.WithOutput(os.Stderr))
//	defer r.Close()
//	if err := r.Run(ctx, "inline", `editor.insert(0, "Hello")`); err != nil {
//		return err
//	}
package script

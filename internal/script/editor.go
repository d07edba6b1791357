package script

import (
	"github.com/tidwall/sjson"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/richtext/internal/dispatcher"
)

// registerEditor installs the global editor table.
func (r *Runner) registerEditor() {
	mod := r.L.SetFuncs(r.L.NewTable(), map[string]lua.LGFunction{
		"insert":           r.insert,
		"replace":          r.replace,
		"select":           r.selectRange,
		"set_text_type":    r.setTextType,
		"clear_text_type":  r.simple(dispatcher.CmdClearTextType),
		"set_text_style":   r.setTextStyle,
		"clear_text_style": r.simple(dispatcher.CmdClearTextStyle),
		"format_text":      r.formatText,
		"format_lines":     r.simple(dispatcher.CmdFormatSelectionLines),
		"insert_divider":   r.simple(dispatcher.CmdInsertDivider),
		"text":             r.text,
		"status":           r.status,
		"delta":            r.delta,
		"set_delta":        r.setDelta,
		"command":          r.command,
		"commands":         r.commands,
	})
	r.L.SetGlobal("editor", mod)
}

// call dispatches a command and raises a Lua error when it fails.
func (r *Runner) call(L *lua.LState, name string, args []byte) map[string]any {
	res := r.host.Dispatch(name, args)
	if res.IsError() {
		r.cmdErr = res.Error
		L.RaiseError("%s: %v", name, res.Error)
		return nil
	}
	return res.Data
}

// encode builds an argument object from alternating keys and values.
func encode(L *lua.LState, kv ...any) []byte {
	out := []byte(`{}`)
	var err error
	for i := 0; i+1 < len(kv); i += 2 {
		if out, err = sjson.SetBytes(out, kv[i].(string), kv[i+1]); err != nil {
			L.RaiseError("encode arguments: %v", err)
		}
	}
	return out
}

func (r *Runner) simple(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		r.call(L, name, nil)
		return 0
	}
}

// insert(index, text [, replace_len])
func (r *Runner) insert(L *lua.LState) int {
	index := L.CheckInt(1)
	text := L.CheckString(2)
	replace := L.OptInt(3, 0)
	r.call(L, dispatcher.CmdInsert, encode(L, "index", index, "data", text, "replaceLength", replace))
	return 0
}

// replace(index, len, text)
func (r *Runner) replace(L *lua.LState) int {
	index := L.CheckInt(1)
	length := L.CheckInt(2)
	text := L.CheckString(3)
	r.call(L, dispatcher.CmdReplaceText, encode(L, "index", index, "len", length, "data", text))
	return 0
}

// select(start [, end]) -> status
func (r *Runner) selectRange(L *lua.LState) int {
	start := L.CheckInt(1)
	end := L.OptInt(2, start)
	data := r.call(L, dispatcher.CmdUpdateSelection, encode(L, "selStart", start, "selEnd", end))
	L.Push(toLua(L, data))
	return 1
}

// set_text_type(name)
func (r *Runner) setTextType(L *lua.LState) int {
	name := L.CheckString(1)
	r.call(L, dispatcher.CmdSetTextType, encode(L, "type", name))
	return 0
}

// set_text_style(name, ...)
func (r *Runner) setTextStyle(L *lua.LState) int {
	names := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		names = append(names, L.CheckString(i))
	}
	r.call(L, dispatcher.CmdSetTextStyle, encode(L, "styles", names))
	return 0
}

// format_text(attribute, index, len)
func (r *Runner) formatText(L *lua.LState) int {
	name := L.CheckString(1)
	index := L.CheckInt(2)
	length := L.CheckInt(3)
	r.call(L, dispatcher.CmdFormatText, encode(L, "attribute", name, "index", index, "len", length))
	return 0
}

// text() -> string
func (r *Runner) text(L *lua.LState) int {
	data := r.call(L, dispatcher.CmdGetText, nil)
	L.Push(toLua(L, data[dispatcher.DataText]))
	return 1
}

// status() -> table
func (r *Runner) status(L *lua.LState) int {
	data := r.call(L, dispatcher.CmdGetSelection, nil)
	L.Push(toLua(L, data))
	return 1
}

// delta() -> string
func (r *Runner) delta(L *lua.LState) int {
	data := r.call(L, dispatcher.CmdGetContents, nil)
	L.Push(toLua(L, data[dispatcher.DataDelta]))
	return 1
}

// set_delta(json)
func (r *Runner) setDelta(L *lua.LState) int {
	raw := L.CheckString(1)
	args, err := sjson.SetRawBytes([]byte(`{}`), "delta", []byte(raw))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	r.call(L, dispatcher.CmdSetContents, args)
	return 0
}

// command(name [, args]) -> table
func (r *Runner) command(L *lua.LState) int {
	name := L.CheckString(1)
	args, err := tableArgs(L.OptTable(2, nil))
	if err != nil {
		L.ArgError(2, err.Error())
		return 0
	}
	data := r.call(L, name, args)
	if data == nil {
		data = map[string]any{}
	}
	L.Push(toLua(L, data))
	return 1
}

// commands() -> array
func (r *Runner) commands(L *lua.LState) int {
	L.Push(toLua(L, dispatcher.CommandNames()))
	return 1
}

package script

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/tidwall/sjson"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/richtext/internal/dispatcher/handler"
)

// toLua converts command result data to a Lua value.
func toLua(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case handler.RawJSON:
		return lua.LString(val)
	case []string:
		t := L.CreateTable(len(val), 0)
		for _, s := range val {
			t.Append(lua.LString(s))
		}
		return t
	case []any:
		t := L.CreateTable(len(val), 0)
		for _, item := range val {
			t.Append(toLua(L, item))
		}
		return t
	case map[string]any:
		t := L.CreateTable(0, len(val))
		for k, item := range val {
			t.RawSetString(k, toLua(L, item))
		}
		return t
	default:
		return lua.LString(fmt.Sprint(val))
	}
}

// fromLua converts a Lua value to a Go value that encodes as JSON. Tables
// with keys 1..n become slices; other tables become maps. Cycles and
// functions convert to nil.
func fromLua(lv lua.LValue) any {
	return fromLuaVisited(lv, make(map[*lua.LTable]bool))
}

func fromLuaVisited(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		defer delete(visited, v)
		return tableToGo(v, visited)
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	n := t.Len()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })

	if n > 0 && n == count {
		arr := make([]any, n)
		for i := 1; i <= n; i++ {
			arr[i-1] = fromLuaVisited(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		case lua.LNumber:
			key = strconv.FormatFloat(float64(kv), 'f', -1, 64)
		default:
			key = k.String()
		}
		m[key] = fromLuaVisited(v, visited)
	})
	return m
}

// tableArgs encodes a Lua table as a JSON command argument object. Keys
// are written in sorted order.
func tableArgs(t *lua.LTable) ([]byte, error) {
	out := []byte(`{}`)
	if t == nil {
		return out, nil
	}
	m, ok := tableToGo(t, map[*lua.LTable]bool{t: true}).(map[string]any)
	if !ok {
		return nil, errors.New("command arguments must be a table with string keys")
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var err error
	for _, k := range keys {
		if out, err = sjson.SetBytes(out, k, m[k]); err != nil {
			return nil, fmt.Errorf("encode %q: %w", k, err)
		}
	}
	return out, nil
}

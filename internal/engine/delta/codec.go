package delta

import (
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MarshalJSON encodes the delta as {"ops":[{"insert":..., "attributes":{...}}]}.
// Attribute keys are written in sorted order.
func (d Delta) MarshalJSON() ([]byte, error) {
	out := []byte(`{"ops":[]}`)
	for i, op := range d.Ops {
		raw, err := encodeOp(op)
		if err != nil {
			return nil, fmt.Errorf("encode op %d: %w", i, err)
		}
		out, err = sjson.SetRawBytes(out, "ops.-1", raw)
		if err != nil {
			return nil, fmt.Errorf("append op %d: %w", i, err)
		}
	}
	return out, nil
}

func encodeOp(op Op) ([]byte, error) {
	raw, err := sjson.SetBytes([]byte(`{}`), "insert", op.Insert)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(op.Attributes))
	for k := range op.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		raw, err = sjson.SetBytes(raw, "attributes."+escapePath(k), op.Attributes[k])
		if err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// escapePath escapes the characters sjson treats as path syntax.
func escapePath(key string) string {
	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '.', '*', '?', '|', '#', '@', '\\':
			out = append(out, '\\')
		}
		out = append(out, key[i])
	}
	return string(out)
}

// String returns the JSON encoding, or an empty delta on error.
func (d Delta) String() string {
	b, err := d.MarshalJSON()
	if err != nil {
		return `{"ops":[]}`
	}
	return string(b)
}

// UnmarshalJSON decodes a delta. See Parse.
func (d *Delta) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Parse decodes either {"ops":[...]} or a bare op array. Only insert
// operations are accepted; embedded objects such as images are skipped.
func Parse(data []byte) (Delta, error) {
	if !gjson.ValidBytes(data) {
		return Delta{}, fmt.Errorf("%w: malformed JSON", ErrInvalidDelta)
	}
	root := gjson.ParseBytes(data)
	ops := root
	if root.IsObject() {
		ops = root.Get("ops")
	}
	if !ops.IsArray() {
		return Delta{}, fmt.Errorf("%w: missing ops array", ErrInvalidDelta)
	}

	var d Delta
	var perr error
	idx := -1
	ops.ForEach(func(_, op gjson.Result) bool {
		idx++
		if !op.IsObject() {
			perr = fmt.Errorf("%w: op %d is not an object", ErrInvalidDelta, idx)
			return false
		}
		ins := op.Get("insert")
		switch {
		case !ins.Exists():
			perr = fmt.Errorf("%w: op %d is not an insert", ErrInvalidDelta, idx)
			return false
		case ins.Type != gjson.String:
			return true
		}

		var attrs map[string]any
		op.Get("attributes").ForEach(func(k, v gjson.Result) bool {
			if attrs == nil {
				attrs = make(map[string]any)
			}
			attrs[k.String()] = decodeValue(v)
			return true
		})
		d.Ops = append(d.Ops, Op{Insert: ins.Str, Attributes: attrs})
		return true
	})
	if perr != nil {
		return Delta{}, perr
	}
	return d, nil
}

func decodeValue(v gjson.Result) any {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		if v.Num == float64(int(v.Num)) {
			return int(v.Num)
		}
		return v.Num
	case gjson.String:
		return v.Str
	case gjson.Null:
		return nil
	default:
		return v.Value()
	}
}

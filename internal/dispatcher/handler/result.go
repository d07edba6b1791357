package handler

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/tidwall/sjson"
)

// ResultStatus is the outcome of a host method call.
type ResultStatus uint8

const (
	StatusOK ResultStatus = iota

	// StatusNoOp is a call that left the editor untouched on purpose.
	StatusNoOp

	StatusError

	// StatusCancelled is a call stopped by a pre-dispatch hook.
	StatusCancelled
)

var statusNames = [...]string{"ok", "no-op", "error", "cancelled"}

func (s ResultStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// RawJSON is result data that is already JSON, such as a delta. It is
// embedded as is when the result is encoded.
type RawJSON []byte

// Result is what a host method returns to the host.
type Result struct {
	Status  ResultStatus
	Error   error
	Message string

	// Data holds the return values, keyed as the host expects them
	// (e.g. "text", "delta", "selStart").
	Data map[string]any
}

func (r Result) IsOK() bool    { return r.Status == StatusOK }
func (r Result) IsError() bool { return r.Status == StatusError }

func Success() Result { return Result{Status: StatusOK} }

func SuccessWithData(key string, value any) Result {
	return Result{Status: StatusOK, Data: map[string]any{key: value}}
}

func Error(err error) Result { return Result{Status: StatusError, Error: err} }

func Errorf(format string, args ...any) Result { return Error(fmt.Errorf(format, args...)) }

func NoOpWithMessage(msg string) Result { return Result{Status: StatusNoOp, Message: msg} }

func CancelledWithMessage(msg string) Result { return Result{Status: StatusCancelled, Message: msg} }

func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithData returns a copy of r with key set. r itself is not modified.
func (r Result) WithData(key string, value any) Result {
	data := maps.Clone(r.Data)
	if data == nil {
		data = make(map[string]any, 1)
	}
	data[key] = value
	r.Data = data
	return r
}

func (r Result) GetData(key string) (any, bool) {
	v, ok := r.Data[key]
	return v, ok
}

func dataAs[T any](r Result, key string) T {
	v, _ := r.Data[key].(T)
	return v
}

func (r Result) GetDataString(key string) string { return dataAs[string](r, key) }
func (r Result) GetDataBool(key string) bool     { return dataAs[bool](r, key) }

// GetDataInt accepts int, int64 and float64 values, the types offsets take
// after passing through Go, Lua or JSON.
func (r Result) GetDataInt(key string) int {
	switch n := r.Data[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// JSON encodes r for a host bridge:
//
//	{"status":"ok","message":"...","error":"...","data":{...}}
//
// Empty message, error and data are omitted. Data keys are sorted.
func (r Result) JSON() ([]byte, error) {
	out, err := sjson.SetBytes([]byte(`{}`), "status", r.Status.String())
	if err != nil {
		return nil, err
	}
	if r.Message != "" {
		if out, err = sjson.SetBytes(out, "message", r.Message); err != nil {
			return nil, err
		}
	}
	if r.Error != nil {
		if out, err = sjson.SetBytes(out, "error", r.Error.Error()); err != nil {
			return nil, err
		}
	}
	for _, k := range slices.Sorted(maps.Keys(r.Data)) {
		path := "data." + pathEscaper.Replace(k)
		if raw, ok := r.Data[k].(RawJSON); ok {
			out, err = sjson.SetRawBytes(out, path, raw)
		} else {
			out, err = sjson.SetBytes(out, path, r.Data[k])
		}
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", k, err)
		}
	}
	return out, nil
}

// pathEscaper escapes the characters sjson treats as path syntax.
var pathEscaper = strings.NewReplacer(
	`\`, `\\`, ".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`,
)

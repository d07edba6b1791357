package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrFileNotFound      = errors.New("config file not found")
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrValidationFailed  = errors.New("validation failed")
	ErrWatcherClosed     = errors.New("config watcher closed")
)

// ParseError is a TOML or YAML file that could not be decoded into Config.
// Line and Column are 1-based and zero when the decoder did not report
// them.
type ParseError struct {
	File         string
	Line, Column int

	// UnknownKey is set when the file names a setting Config does not have.
	UnknownKey string

	Err error
}

// Error formats the error as file:line:column: reason.
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.File)
	for _, n := range []int{e.Line, e.Column} {
		if n <= 0 {
			break
		}
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(n))
	}
	b.WriteString(": ")
	if e.UnknownKey != "" {
		b.WriteString("unknown setting " + e.UnknownKey)
	} else {
		fmt.Fprint(&b, e.Err)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError is one setting with an unusable value. It matches
// ErrValidationFailed.
type ValidationError struct {
	// Key is the dotted setting name, e.g. "render.width".
	Key    string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s = %v: %s", e.Key, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

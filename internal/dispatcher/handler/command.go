package handler

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrInvalidArgs reports missing or mistyped command arguments.
var ErrInvalidArgs = errors.New("invalid arguments")

// Command is a host command: a method name and its JSON object arguments.
type Command struct {
	Name string
	Args gjson.Result
}

// NewCommand creates a command. Empty args mean no arguments; anything
// else must be a JSON object.
func NewCommand(name string, args []byte) (Command, error) {
	cmd := Command{Name: name}
	if len(args) == 0 {
		return cmd, nil
	}
	if !gjson.ValidBytes(args) {
		return cmd, fmt.Errorf("%s: malformed JSON: %w", name, ErrInvalidArgs)
	}
	cmd.Args = gjson.ParseBytes(args)
	if !cmd.Args.IsObject() {
		return cmd, fmt.Errorf("%s: arguments must be an object: %w", name, ErrInvalidArgs)
	}
	return cmd, nil
}

// Has reports whether the argument key is present.
func (c Command) Has(key string) bool {
	return c.Args.Get(key).Exists()
}

// Int returns a required integer argument.
func (c Command) Int(key string) (int, error) {
	v := c.Args.Get(key)
	if v.Type != gjson.Number {
		return 0, c.invalid(key, "a number")
	}
	return int(v.Int()), nil
}

// IntOr returns an optional integer argument.
func (c Command) IntOr(key string, def int) (int, error) {
	if !c.Has(key) {
		return def, nil
	}
	return c.Int(key)
}

// String returns a required string argument.
func (c Command) String(key string) (string, error) {
	v := c.Args.Get(key)
	if v.Type != gjson.String {
		return "", c.invalid(key, "a string")
	}
	return v.Str, nil
}

// Strings returns a required array of strings argument.
func (c Command) Strings(key string) ([]string, error) {
	v := c.Args.Get(key)
	if !v.IsArray() {
		return nil, c.invalid(key, "an array of strings")
	}
	var out []string
	for _, item := range v.Array() {
		if item.Type != gjson.String {
			return nil, c.invalid(key, "an array of strings")
		}
		out = append(out, item.Str)
	}
	return out, nil
}

// Raw returns the raw JSON of a required argument.
func (c Command) Raw(key string) ([]byte, error) {
	v := c.Args.Get(key)
	if !v.Exists() {
		return nil, c.invalid(key, "present")
	}
	return []byte(v.Raw), nil
}

func (c Command) invalid(key, want string) error {
	return fmt.Errorf("%s: argument %q must be %s: %w", c.Name, key, want, ErrInvalidArgs)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "RICHTEXT_"

// LookupFunc returns the value of an environment variable.
type LookupFunc func(key string) (string, bool)

// EnvOverlay applies environment variables on top of a loaded Config.
type EnvOverlay struct {
	prefix string // Environment variable prefix, including the trailing underscore
	lookup LookupFunc
}

// NewEnvOverlay creates an overlay reading the process environment.
// The prefix should include the trailing underscore (e.g., "RICHTEXT_").
func NewEnvOverlay(prefix string) *EnvOverlay {
	return &EnvOverlay{prefix: prefix, lookup: os.LookupEnv}
}

// NewEnvOverlayWithLookup creates an overlay reading from lookup.
func NewEnvOverlayWithLookup(prefix string, lookup LookupFunc) *EnvOverlay {
	return &EnvOverlay{prefix: prefix, lookup: lookup}
}

type setter func(c *Config, value string) error

var envSetters = map[string]setter{
	"editor.markdown_shortcuts": boolSetter(func(c *Config) *bool { return &c.Editor.MarkdownShortcuts }),
	"editor.placeholder":        stringSetter(func(c *Config) *string { return &c.Editor.Placeholder }),
	"editor.read_only":          boolSetter(func(c *Config) *bool { return &c.Editor.ReadOnly }),
	"editor.strict_invariants":  boolSetter(func(c *Config) *bool { return &c.Editor.StrictInvariants }),
	"log.level":                 stringSetter(func(c *Config) *string { return &c.Log.Level }),
	"render.width":              intSetter(func(c *Config) *int { return &c.Render.Width }),
	"render.headline_color":     stringSetter(func(c *Config) *string { return &c.Render.HeadlineColor }),
	"render.quote_color":        stringSetter(func(c *Config) *string { return &c.Render.QuoteColor }),
	"render.code_background":    stringSetter(func(c *Config) *string { return &c.Render.CodeBackground }),
	"render.divider_color":      stringSetter(func(c *Config) *string { return &c.Render.DividerColor }),
}

// Paths returns every setting path the overlay understands, sorted.
func Paths() []string {
	paths := make([]string, 0, len(envSetters))
	for p := range envSetters {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Apply sets every field whose variable is present. An empty value clears a
// string field and is an error for bool and int fields.
func (o *EnvOverlay) Apply(cfg *Config) error {
	for _, path := range Paths() {
		name := o.pathToEnv(path)
		val, ok := o.lookup(name)
		if !ok {
			continue
		}
		if err := envSetters[path](cfg, val); err != nil {
			return &ValidationError{Key: path, Value: val, Reason: fmt.Sprintf("from %s: %v", name, err)}
		}
	}
	return nil
}

// EnvName returns the variable name for a setting path.
func (o *EnvOverlay) EnvName(path string) string {
	return o.pathToEnv(path)
}

// pathToEnv converts editor.read_only to RICHTEXT_EDITOR_READ_ONLY.
func (o *EnvOverlay) pathToEnv(path string) string {
	return o.prefix + strings.ToUpper(strings.ReplaceAll(path, ".", "_"))
}

// envToPath converts RICHTEXT_EDITOR_READ_ONLY to editor.read_only.
// The first segment is the section; the rest form the snake_case key.
func (o *EnvOverlay) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, o.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok {
		return name
	}
	return section + "." + key
}

// Unknown returns prefixed variables in environ that name no setting.
func (o *EnvOverlay) Unknown(environ []string) []string {
	var unknown []string
	for _, kv := range environ {
		name, _, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, o.prefix) {
			continue
		}
		if _, known := envSetters[o.envToPath(name)]; !known {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func boolSetter(field func(*Config) *bool) setter {
	return func(c *Config, s string) error {
		b, err := parseBool(s)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

func intSetter(field func(*Config) *int) setter {
	return func(c *Config, s string) error {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return errors.New("not an integer")
		}
		*field(c) = i
		return nil
	}
}

func stringSetter(field func(*Config) *string) setter {
	return func(c *Config, s string) error {
		*field(c) = s
		return nil
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, errors.New("not a boolean")
}

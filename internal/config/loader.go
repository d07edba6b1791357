package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileSystem is an abstraction for reading configuration files.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// MapFS is an in-memory FileSystem keyed by path.
type MapFS map[string][]byte

// ReadFile returns the bytes stored for path.
func (m MapFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return data, nil
}

// Format identifies a configuration file syntax.
type Format int

const (
	// FormatUnknown is returned for unrecognized extensions.
	FormatUnknown Format = iota
	// FormatTOML is TOML.
	FormatTOML
	// FormatYAML is YAML.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatOf picks a format from the file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// Loader reads configuration files and applies the environment overlay.
type Loader struct {
	fs  FileSystem
	env *EnvOverlay
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem sets the file system files are read from.
func WithFileSystem(fsys FileSystem) LoaderOption {
	return func(l *Loader) {
		if fsys != nil {
			l.fs = fsys
		}
	}
}

// WithEnv sets the environment overlay.
func WithEnv(env *EnvOverlay) LoaderOption {
	return func(l *Loader) {
		if env != nil {
			l.env = env
		}
	}
}

// NewLoader creates a loader reading from the OS with the RICHTEXT_ overlay.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:  OSFS{},
		env: NewEnvOverlay(EnvPrefix),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DecodeFile reads path and decodes it over cfg. Keys absent from the file
// keep their current values.
func (l *Loader) DecodeFile(path string, cfg *Config) error {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch FormatOf(path) {
	case FormatTOML:
		return decodeTOML(path, data, cfg)
	case FormatYAML:
		return decodeYAML(path, data, cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Decode decodes data in the given format over cfg. source names the data
// in error messages.
func Decode(format Format, source string, data []byte, cfg *Config) error {
	switch format {
	case FormatTOML:
		return decodeTOML(source, data, cfg)
	case FormatYAML:
		return decodeYAML(source, data, cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func decodeTOML(source string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(cfg)
	if err == nil {
		return nil
	}

	perr := &ParseError{File: source, Err: err}

	var strict *toml.StrictMissingError
	var derr *toml.DecodeError
	switch {
	case errors.As(err, &strict) && len(strict.Errors) > 0:
		perr.Line, perr.Column = strict.Errors[0].Position()
		perr.UnknownKey = strings.Join(strict.Errors[0].Key(), ".")
	case errors.As(err, &derr):
		perr.Line, perr.Column = derr.Position()
	}
	return perr
}

func decodeYAML(source string, data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty document.
			return nil
		}
		return &ParseError{File: source, Err: err}
	}
	return nil
}

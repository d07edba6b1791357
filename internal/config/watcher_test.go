package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestWatcher(t *testing.T, path string) (*Watcher, chan *Config, chan error) {
	t.Helper()

	changes := make(chan *Config, 10)
	errs := make(chan error, 10)
	w, err := NewWatcher(path,
		func(cfg *Config) { changes <- cfg },
		WithDebounce(20*time.Millisecond),
		WithErrorHandler(func(err error) { errs <- err }),
		WithLoader(NewLoader(WithEnv(NewEnvOverlayWithLookup(EnvPrefix, noEnv)))),
	)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w, changes, errs
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "richtext.toml")
	writeFile(t, path, "[editor]\nplaceholder = \"one\"\n")

	_, changes, errs := newTestWatcher(t, path)

	writeFile(t, path, "[editor]\nplaceholder = \"two\"\n")

	select {
	case cfg := <-changes:
		if cfg.Editor.Placeholder != "two" {
			t.Errorf("expected placeholder %q, got %q", "two", cfg.Editor.Placeholder)
		}
	case err := <-errs:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_ReportsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "richtext.toml")
	writeFile(t, path, "[log]\nlevel = \"info\"\n")

	_, changes, errs := newTestWatcher(t, path)

	writeFile(t, path, "[log]\nlevel = \"loud\"\n")

	select {
	case err := <-errs:
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("expected ErrValidationFailed, got %v", err)
		}
	case cfg := <-changes:
		t.Fatalf("unexpected reload: %+v", cfg)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}

func TestWatcher_DetectsCreation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "richtext.yaml")

	w, changes, _ := newTestWatcher(t, path)
	if w.Path() != path {
		t.Errorf("expected path %q, got %q", path, w.Path())
	}

	writeFile(t, filepath.Join(dir, "other.yaml"), "ignored: true\n")
	writeFile(t, path, "editor:\n  read_only: true\n")

	select {
	case cfg := <-changes:
		if !cfg.Editor.ReadOnly {
			t.Error("expected read_only from created file")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_CloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "richtext.toml")
	writeFile(t, path, "")

	w, err := NewWatcher(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("expected ErrWatcherClosed, got %v", err)
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "richtext.toml"), nil)
	if err == nil {
		t.Fatal("expected error watching a missing directory")
	}
}

// Package config provides the configuration for the richtext editor.
//
// Configuration is resolved in three steps, each overriding the last:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← RICHTEXT_EDITOR_READ_ONLY=true
//	├─────────────────────────────┤
//	│  2. Config File             │  ← richtext.toml / richtext.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Default()
//	└─────────────────────────────┘
//
// Files are decoded by extension: .toml with go-toml, .yaml and .yml
// with yaml.v3. Unknown keys are rejected so typos surface as parse errors.
//
// # Basic Usage
//
//	cfg, err := config.Load("richtext.toml")
//	if err != nil {
//	    return err
//	}
//	ed := engine.New(
//	    engine.WithPlaceholder(cfg.Editor.Placeholder),
//	    engine.WithReadOnly(cfg.Editor.ReadOnly),
//	)
//
// # Live Reload
//
// A Watcher reloads the file whenever it is written or replaced and
// hands the freshly validated Config to a callback:
//
//	w, err := config.NewWatcher(path, func(cfg *config.Config) {
//	    app.ApplyConfig(cfg)
//	}, config.WithErrorHandler(logErr))
//	defer w.Close()
package config

// Package app wires the richtext components together: configuration,
// logging, the event bus, the editor and the command dispatcher.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/richtext/internal/config"
	"github.com/dshills/richtext/internal/dispatcher"
	"github.com/dshills/richtext/internal/dispatcher/handler"
	"github.com/dshills/richtext/internal/engine"
	"github.com/dshills/richtext/internal/engine/delta"
	"github.com/dshills/richtext/internal/event"
)

// Application owns one editor and everything that drives it.
//
// The editor is not safe for concurrent use; every access made through
// the Application is serialized so a config reload never races a command.
type Application struct {
	mu sync.Mutex

	cfg    *config.Config
	logger *Logger

	bus      event.Bus
	subs     []event.Subscription
	observer *event.EditorObserver

	editor     *engine.Editor
	dispatcher *dispatcher.Dispatcher
	watcher    *config.Watcher

	closed bool
	opts   Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to a TOML or YAML configuration file.
	ConfigPath string

	// Config is used as is when set; ConfigPath is then only watched.
	Config *config.Config

	// LogLevel overrides log.level from the configuration.
	LogLevel string

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// Watch reloads ConfigPath when it changes.
	Watch bool

	// Contents is an initial delta document in JSON.
	Contents []byte
}

// New creates an Application with every component started.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}

	if err := app.bootstrap(); err != nil {
		app.cleanup()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	if app.opts.Config != nil {
		app.cfg = app.opts.Config.Clone()
		if err := app.cfg.Validate(); err != nil {
			return &InitError{Component: "config", Err: err}
		}
	} else {
		cfg, err := config.Load(app.opts.ConfigPath)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
		app.cfg = cfg
	}

	// 2. Logger
	level := app.cfg.Log.Level
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}
	app.logger = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(level),
		Output: app.opts.LogOutput,
		Prefix: "richtext",
	})

	// 3. Event bus
	busLog := app.logger.WithComponent("event")
	app.bus = event.NewBus(
		event.WithPanicHandler(func(ev any, recovered any) {
			busLog.Error("handler panic on %s: %v", topicOf(ev), recovered)
		}),
		event.WithErrorHandler(func(ev any, err error) {
			busLog.Warn("handler error on %s: %v", topicOf(ev), err)
		}),
	)
	if err := app.bus.Start(); err != nil {
		return &InitError{Component: "event bus", Err: err}
	}
	sub, err := app.bus.SubscribeFunc("editor.**", func(_ context.Context, ev any) error {
		busLog.Debug("event %s", topicOf(ev))
		return nil
	}, event.WithPriority(event.PriorityLow))
	if err != nil {
		return &InitError{Component: "event bus", Err: err}
	}
	app.subs = append(app.subs, sub)

	// 4. Editor
	id := uuid.New()
	app.observer = event.NewEditorObserver(context.Background(), app.bus, id.String(), func(err error) {
		busLog.Warn("publish failed: %v", err)
	})
	edOpts := []engine.Option{
		engine.WithID(id),
		engine.WithLogger(app.logger.WithEditor(id.String()).WithComponent("engine")),
		engine.WithPlaceholder(app.cfg.Editor.Placeholder),
		engine.WithReadOnly(app.cfg.Editor.ReadOnly),
		engine.WithMarkdownShortcuts(app.cfg.Editor.MarkdownShortcuts),
		engine.WithStrictInvariants(app.cfg.Editor.StrictInvariants),
		engine.WithObserver(app.observer),
	}
	if len(app.opts.Contents) > 0 {
		d, err := delta.Parse(app.opts.Contents)
		if err != nil {
			return &InitError{Component: "editor", Err: err}
		}
		edOpts = append(edOpts, engine.WithDelta(d))
	}
	app.editor = engine.New(edOpts...)

	// 5. Dispatcher
	dispLog := app.logger.WithEditor(id.String()).WithComponent("dispatcher")
	app.dispatcher = dispatcher.New(
		dispatcher.WithEditor(app.editor),
		dispatcher.WithLogger(dispLog),
		dispatcher.WithMetrics(),
	)
	dispatcher.RegisterEditorCommands(app.dispatcher)
	hook := dispatcher.NewLoggingHook(dispLog.Debug)
	app.dispatcher.RegisterPreHook(hook)
	app.dispatcher.RegisterPostHook(hook)

	// 6. Config watcher
	if app.opts.Watch && app.opts.ConfigPath != "" {
		w, err := config.NewWatcher(app.opts.ConfigPath, func(cfg *config.Config) {
			if err := app.ApplyConfig(cfg); err != nil {
				app.logger.Warn("config reload: %v", err)
			}
		}, config.WithErrorHandler(func(err error) {
			app.logger.WithComponent("config").Warn("config reload: %v", err)
		}))
		if err != nil {
			return &InitError{Component: "config watcher", Err: err}
		}
		app.watcher = w
	}

	app.logger.Debug("editor %s ready", id)
	return nil
}

func topicOf(ev any) event.Topic {
	if tp, ok := ev.(event.TopicProvider); ok {
		return tp.EventTopic()
	}
	return "<unknown>"
}

// cleanup releases whatever bootstrap managed to start.
func (app *Application) cleanup() {
	if app.watcher != nil {
		_ = app.watcher.Close()
	}
	if app.bus != nil && app.bus.IsRunning() {
		_ = app.bus.Stop(context.Background())
	}
}

// Dispatch runs a host command by name with JSON arguments.
func (app *Application) Dispatch(name string, args []byte) handler.Result {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.closed {
		return handler.Error(ErrClosed)
	}
	return app.dispatcher.Dispatch(name, args)
}

// Exec runs a host command and converts an error result into an error.
func (app *Application) Exec(name string, args []byte) (handler.Result, error) {
	res := app.Dispatch(name, args)
	if res.IsError() {
		return res, &CommandError{Command: name, Err: res.Error}
	}
	return res, nil
}

// WithEditor runs fn with exclusive access to the editor.
func (app *Application) WithEditor(fn func(ed *engine.Editor) error) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.closed {
		return ErrClosed
	}
	return fn(app.editor)
}

// ApplyConfig validates cfg and applies the settings that can change at
// runtime: placeholder, read-only, markdown shortcuts and log level.
func (app *Application) ApplyConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	if app.closed {
		return ErrClosed
	}

	if cfg.Editor.StrictInvariants != app.cfg.Editor.StrictInvariants {
		app.logger.Warn("editor.strict_invariants changes apply on restart")
	}

	app.editor.SetPlaceholder(cfg.Editor.Placeholder)
	app.editor.SetReadOnly(cfg.Editor.ReadOnly)
	app.editor.SetMarkdownEnabled(cfg.Editor.MarkdownShortcuts)
	if app.opts.LogLevel == "" {
		app.logger.SetLevel(ParseLogLevel(cfg.Log.Level))
	}

	app.cfg = cfg.Clone()
	app.logger.Info("configuration applied")
	return nil
}

// Config returns a copy of the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.cfg.Clone()
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// EventBus returns the event bus editor notifications are published on.
func (app *Application) EventBus() event.Bus {
	return app.bus
}

// Dispatcher returns the command dispatcher. Calls made on it directly
// bypass the application lock.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Close stops the watcher and the event bus.
func (app *Application) Close(ctx context.Context) error {
	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return ErrClosed
	}
	app.closed = true
	app.mu.Unlock()

	var errs []error
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("config watcher: %w", err))
		}
	}
	for _, sub := range app.subs {
		_ = app.bus.Unsubscribe(sub)
	}
	if err := app.bus.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("event bus: %w", err))
	}
	return errors.Join(errs...)
}

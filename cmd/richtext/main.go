// Package main is the entry point for the richtext command line tool.
//
// richtext loads a delta document, optionally edits it with a Lua script
// and then writes the result as JSON or previews it in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/tidwall/pretty"
	"golang.org/x/term"

	"github.com/dshills/richtext/internal/app"
	"github.com/dshills/richtext/internal/dispatcher"
	"github.com/dshills/richtext/internal/dispatcher/handler"
	"github.com/dshills/richtext/internal/engine"
	"github.com/dshills/richtext/internal/renderer"
	"github.com/dshills/richtext/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	configPath string
	scriptPath string
	eval       string
	output     string
	logLevel   string
	view       bool
	compact    bool
	version    bool
	input      string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("richtext", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (TOML or YAML)")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.scriptPath, "script", "", "Lua script to run against the document")
	fs.StringVar(&opts.eval, "e", "", "Lua source to run after -script")
	fs.StringVar(&opts.output, "o", "", "Write the resulting document to a file instead of stdout")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.view, "view", false, "Preview the document in the terminal")
	fs.BoolVar(&opts.compact, "compact", false, "Write compact JSON")
	fs.BoolVar(&opts.version, "version", false, "Show version information")
	fs.BoolVar(&opts.version, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "richtext - rich text document tool\n\n")
		fmt.Fprintf(stderr, "Usage: richtext [options] [document.json]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  richtext doc.json                     Print the normalized document\n")
		fmt.Fprintf(stderr, "  richtext -script fmt.lua doc.json     Edit with a script\n")
		fmt.Fprintf(stderr, "  richtext -e 'editor.insert(0, \"Hi\")'   Build a document inline\n")
		fmt.Fprintf(stderr, "  richtext -view doc.json               Preview in the terminal\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch opts.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return opts, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.logLevel)
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.input = fs.Arg(0)
	default:
		return opts, errors.New("at most one document may be given")
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.version {
		fmt.Fprintf(stdout, "richtext %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	if err := execute(ctx, opts, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func execute(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	appOpts := app.Options{
		ConfigPath: opts.configPath,
		LogLevel:   opts.logLevel,
		LogOutput:  stderr,
	}
	if opts.input != "" {
		data, err := os.ReadFile(opts.input)
		if err != nil {
			return err
		}
		appOpts.Contents = data
	}

	application, err := app.New(appOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer application.Close(context.Background())

	if err := runScripts(ctx, application, opts, stderr); err != nil {
		return err
	}

	if opts.view {
		return view(application)
	}
	return writeDocument(application, opts, stdout)
}

func runScripts(ctx context.Context, application *app.Application, opts options, stderr io.Writer) error {
	if opts.scriptPath == "" && opts.eval == "" {
		return nil
	}

	r := script.NewRunner(application,
		script.WithOutput(stderr),
		script.WithLogger(application.Logger().WithComponent("script")),
	)
	defer r.Close()

	if opts.scriptPath != "" {
		if err := r.RunFile(ctx, opts.scriptPath); err != nil {
			return err
		}
	}
	if opts.eval != "" {
		if err := r.Run(ctx, "-e", opts.eval); err != nil {
			return err
		}
	}
	return nil
}

func writeDocument(application *app.Application, opts options, stdout io.Writer) error {
	res, err := application.Exec(dispatcher.CmdGetContents, nil)
	if err != nil {
		return err
	}
	raw, _ := res.GetData(dispatcher.DataDelta)
	data, ok := raw.(handler.RawJSON)
	if !ok {
		return fmt.Errorf("%s returned no document", dispatcher.CmdGetContents)
	}

	var out []byte
	if opts.compact {
		out = append(pretty.Ugly(data), '\n')
	} else {
		out = pretty.Pretty(data)
	}

	if opts.output != "" {
		return os.WriteFile(opts.output, out, 0o644)
	}
	if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		out = pretty.Color(out, nil)
	}
	_, err = stdout.Write(out)
	return err
}

func view(application *app.Application) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("-view needs a terminal")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	cfg := application.Config()
	theme, err := renderer.NewTheme(cfg.Render)
	if err != nil {
		return err
	}
	r := renderer.New(screen, theme, renderer.WithWidth(cfg.Render.Width))

	return application.WithEditor(func(ed *engine.Editor) error {
		r.Preview(ed)
		return nil
	})
}

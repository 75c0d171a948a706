// Package main is the entry point for the optionpane demo host.
//
// It opens a dual-view options editor over a catalog loaded from a TOML or
// relaxed-JSON file (or a built-in sample), and prints the committed values
// as JSON on exit.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tidwall/pretty"

	"github.com/dshills/optionpane/internal/catalog"
	"github.com/dshills/optionpane/internal/editor"
	"github.com/dshills/optionpane/internal/loader"
	"github.com/dshills/optionpane/internal/store"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
)

type options struct {
	catalogPath string
	jsonField   string
	logPath     string
	showVersion bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if opts.showVersion {
		fmt.Printf("optionpane %s\n", version)
		return 0
	}

	logger, closeLog, err := buildLogger(opts.logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	cat, values, field, err := loadCatalog(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ed := editor.New(cat, values,
		editor.WithJSONField(field),
		editor.WithLogger(logger),
	)

	ui, err := newUI(ed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize screen: %v\n", err)
		return 1
	}

	committed, err := ui.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	out, err := json.Marshal(committed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Println(string(pretty.Ugly(out)))
	return 0
}

func parseFlags() options {
	var opts options

	flag.StringVar(&opts.catalogPath, "catalog", "", "path to a catalog file (.toml or .json)")
	flag.StringVar(&opts.jsonField, "field", "", "top-level key for the text view (overrides the catalog file)")
	flag.StringVar(&opts.logPath, "log", "", "write diagnostic log to this file")
	flag.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	flag.Parse()

	return opts
}

func loadCatalog(opts options) (catalog.Catalog, store.Values, string, error) {
	field := "config"
	if opts.catalogPath == "" {
		cat, values := sampleCatalog()
		if opts.jsonField != "" {
			field = opts.jsonField
		}
		return cat, values, field, nil
	}

	doc, err := loader.NewCatalogLoader().LoadFrom(opts.catalogPath)
	if err != nil {
		return nil, nil, "", err
	}
	if doc == nil {
		return nil, nil, "", fmt.Errorf("catalog file not found: %s", opts.catalogPath)
	}
	if doc.Field != "" {
		field = doc.Field
	}
	if opts.jsonField != "" {
		field = opts.jsonField
	}
	return doc.Catalog, doc.Values, field, nil
}

// sampleCatalog is used when no catalog file is supplied.
func sampleCatalog() (catalog.Catalog, store.Values) {
	cat := catalog.Catalog{
		{
			Heading: "Editor",
			Fields: []catalog.Field{
				{Key: "wordWrap", Label: "Wrap long lines", Defaults: []any{"on", "bounded"}},
				{Key: "tabSize", Label: "Tab size", Defaults: []any{float64(4)}},
				{Key: "insertSpaces", Label: "Insert spaces for tabs"},
				{Key: "trimTrailingWhitespace"},
			},
		},
		{
			Heading: "UI",
			Fields: []catalog.Field{
				{Key: "lineNumbers", Label: "Line numbers", Defaults: []any{"relative", "absolute"}},
				{Key: "minimap"},
				{Key: "statusBar", Defaults: []any{true}},
			},
		},
	}
	values := store.Values{
		"wordWrap":    "on",
		"lineNumbers": "relative",
	}
	return cat, values
}

func buildLogger(path string) (editor.Logger, func(), error) {
	if path == "" {
		return editor.NopLogger{}, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return &fileLogger{l: log.New(f, "", log.LstdFlags)}, func() { f.Close() }, nil
}

// fileLogger adapts a standard library logger to the editor Logger.
type fileLogger struct {
	l *log.Logger
}

func (f *fileLogger) Debug(msg string, keysAndValues ...any) { f.print("DEBUG", msg, keysAndValues) }
func (f *fileLogger) Info(msg string, keysAndValues ...any)  { f.print("INFO", msg, keysAndValues) }
func (f *fileLogger) Error(msg string, keysAndValues ...any) { f.print("ERROR", msg, keysAndValues) }

func (f *fileLogger) print(level, msg string, kv []any) {
	line := level + " " + msg
	for i := 0; i+1 < len(kv); i += 2 {
		line += fmt.Sprintf(" %v=%v", kv[i], kv[i+1])
	}
	f.l.Println(line)
}

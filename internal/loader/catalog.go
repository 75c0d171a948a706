package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/optionpane/internal/catalog"
	"github.com/dshills/optionpane/internal/store"
)

// Document is a parsed catalog file: the option groups, optional initial
// values, and the optional top-level field key for the text view.
type Document struct {
	// Field is the top-level key the text view nests values under.
	// Empty means the editor default.
	Field string

	// Catalog is the ordered option catalog.
	Catalog catalog.Catalog

	// Values is the initial structured state. May be nil.
	Values store.Values
}

// ParseError represents an error while parsing a catalog file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// fileDocument mirrors the on-disk shape of a catalog file.
type fileDocument struct {
	Field  string         `toml:"field" json:"field"`
	Groups []fileGroup    `toml:"groups" json:"groups"`
	Values map[string]any `toml:"values" json:"values"`
}

type fileGroup struct {
	Heading string      `toml:"heading" json:"heading"`
	Fields  []fileField `toml:"fields" json:"fields"`
}

type fileField struct {
	Key      string `toml:"key" json:"key"`
	Label    string `toml:"label" json:"label"`
	Defaults []any  `toml:"defaults" json:"defaults"`
}

// CatalogLoader loads catalog documents from TOML or relaxed JSON files.
type CatalogLoader struct {
	fs FileSystem
}

// NewCatalogLoader creates a loader backed by the OS file system.
func NewCatalogLoader() *CatalogLoader {
	return &CatalogLoader{fs: DefaultFS()}
}

// NewCatalogLoaderWithFS creates a loader with a custom file system.
func NewCatalogLoaderWithFS(fsys FileSystem) *CatalogLoader {
	return &CatalogLoader{fs: fsys}
}

// LoadFrom reads a catalog document from path. The format is chosen by
// extension: .toml parses as TOML, anything else as relaxed JSON.
// Returns nil, nil if the file doesn't exist (not an error).
func (l *CatalogLoader) LoadFrom(path string) (*Document, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading catalog file %s: %w", path, err)
	}

	if strings.HasSuffix(path, ".toml") {
		return parseTOML(path, data)
	}
	return parseJSON(path, data)
}

func parseTOML(source string, data []byte) (*Document, error) {
	var doc fileDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: source, Err: err}
	}
	return buildDocument(source, doc)
}

func parseJSON(source string, data []byte) (*Document, error) {
	repaired, err := jsonrepair.JSONRepair(string(data))
	if err != nil {
		return nil, &ParseError{Path: source, Err: err}
	}
	var doc fileDocument
	if err := json.Unmarshal([]byte(repaired), &doc); err != nil {
		return nil, &ParseError{Path: source, Err: err}
	}
	return buildDocument(source, doc)
}

func buildDocument(source string, doc fileDocument) (*Document, error) {
	var cat catalog.Catalog
	seen := make(map[string]string, 16)

	for _, g := range doc.Groups {
		if g.Heading == "" {
			return nil, &ParseError{Path: source, Err: fmt.Errorf("group without heading")}
		}
		group := catalog.Group{Heading: g.Heading}
		for _, f := range g.Fields {
			if f.Key == "" {
				return nil, &ParseError{Path: source, Err: fmt.Errorf("group %q: field without key", g.Heading)}
			}
			if prev, ok := seen[f.Key]; ok && prev == g.Heading {
				return nil, &ParseError{Path: source, Err: fmt.Errorf("group %q: duplicate field key %q", g.Heading, f.Key)}
			}
			seen[f.Key] = g.Heading
			group.Fields = append(group.Fields, catalog.Field{
				Key:      f.Key,
				Label:    f.Label,
				Defaults: f.Defaults,
			})
		}
		cat = append(cat, group)
	}

	out := &Document{Field: doc.Field, Catalog: cat}
	if doc.Values != nil {
		out.Values = store.Values(doc.Values)
	}
	return out, nil
}

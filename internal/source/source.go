// Package source loads records from files.
//
// Supported formats are a JSON array of objects, JSON Lines, CSV and TSV.
// Delimited files use their first non-empty row as the header. JSON
// properties are collected in first-seen order across all objects.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/gridview/internal/record"
)

// Errors returned by loaders.
var (
	// ErrUnsupportedFormat indicates a file type with no loader.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrNoRecords indicates the input held no usable rows.
	ErrNoRecords = errors.New("no records")

	// ErrNotArray indicates JSON input that is not an array of objects.
	ErrNotArray = errors.New("json input is not an array of objects")
)

// Format identifies an input encoding.
type Format uint8

const (
	// FormatAuto picks the format from the file extension.
	FormatAuto Format = iota
	FormatJSON
	FormatJSONLines
	FormatCSV
	FormatTSV
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatJSON:
		return "json"
	case FormatJSONLines:
		return "jsonl"
	case FormatCSV:
		return "csv"
	case FormatTSV:
		return "tsv"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "jsonl", "ndjson":
		return FormatJSONLines, nil
	case "csv":
		return FormatCSV, nil
	case "tsv", "tab":
		return FormatTSV, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// DetectFormat maps a file name's extension to a Format.
func DetectFormat(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return FormatAuto, fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return FormatAuto, err
	}
	return f, nil
}

// Dataset is a loaded record set.
type Dataset struct {
	// Records in file order.
	Records []*record.Record
	// Properties in first-seen order.
	Properties []string
}

// Option configures loading.
type Option func(*options)

type options struct {
	format Format
	path   string
}

// WithFormat forces the input format.
func WithFormat(f Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithPath selects the array inside a JSON document with a gjson path,
// for example "data.items".
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// Load reads the file at path.
func Load(path string, opts ...Option) (*Dataset, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.format == FormatAuto {
		f, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		o.format = f
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	ds, err := decode(data, o)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return ds, nil
}

// Read decodes r in the given format, which must not be FormatAuto.
func Read(r io.Reader, f Format, opts ...Option) (*Dataset, error) {
	o := options{format: f}
	for _, opt := range opts {
		opt(&o)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decode(data, o)
}

func decode(data []byte, o options) (*Dataset, error) {
	data = bytes.TrimPrefix(data, []byte("\xEF\xBB\xBF"))

	var (
		ds  *Dataset
		err error
	)
	switch o.format {
	case FormatJSON:
		ds, err = decodeJSON(data, o.path)
	case FormatJSONLines:
		ds, err = decodeJSONLines(data)
	case FormatCSV:
		ds, err = decodeDelimited(data, ',')
	case FormatTSV:
		ds, err = decodeDelimited(data, '\t')
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, o.format)
	}
	if err != nil {
		return nil, err
	}
	if len(ds.Records) == 0 {
		return nil, ErrNoRecords
	}
	return ds, nil
}

// propertySet collects property names in first-seen order.
type propertySet struct {
	seen  map[string]bool
	order []string
}

func (p *propertySet) add(name string) {
	if p.seen == nil {
		p.seen = make(map[string]bool)
	}
	if !p.seen[name] {
		p.seen[name] = true
		p.order = append(p.order, name)
	}
}

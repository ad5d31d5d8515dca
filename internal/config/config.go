// Package config loads gridview settings.
//
// Settings come from three layers, later layers winning: built-in
// defaults, a TOML file, and GRIDVIEW_* environment variables. The merged
// map is decoded into Config and checked with Validate.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/gridview/internal/config/loader"
	"github.com/dshills/gridview/internal/filter"
	"github.com/dshills/gridview/internal/format"
	"github.com/dshills/gridview/internal/input/key"
	"github.com/dshills/gridview/internal/input/keymap"
	"github.com/dshills/gridview/internal/logging"
	"github.com/dshills/gridview/internal/schema"
	"github.com/dshills/gridview/internal/sorting"
)

// Config holds every gridview setting.
type Config struct {
	Table   TableConfig       `toml:"table"`
	Columns []ColumnConfig    `toml:"columns"`
	Formats map[string]string `toml:"formats"`
	Keys    map[string]string `toml:"keys"`
	Logging LoggingConfig     `toml:"logging"`
}

// TableConfig configures the table instance and default search behavior.
type TableConfig struct {
	WindowLength  int    `toml:"windowLength"`
	Algorithm     string `toml:"algorithm"`
	CaseSensitive bool   `toml:"caseSensitive"`
	MatchAll      bool   `toml:"matchAll"`
}

// ColumnConfig declares one displayed property.
type ColumnConfig struct {
	Name      string   `toml:"name"`
	Title     string   `toml:"title"`
	Width     int      `toml:"width"`
	SortOrder []string `toml:"sortOrder"`
	Format    string   `toml:"format"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Table: TableConfig{
			WindowLength: 20,
			Algorithm:    sorting.AlgorithmBucket.String(),
		},
		Formats: map[string]string{},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	fs      loader.FileSystem
	environ func() []string
}

// WithFS reads the config file from fsys.
func WithFS(fsys loader.FileSystem) LoadOption {
	return func(o *loadOptions) {
		o.fs = fsys
	}
}

// WithEnviron reads variables from environ instead of the process
// environment.
func WithEnviron(environ func() []string) LoadOption {
	return func(o *loadOptions) {
		o.environ = environ
	}
}

// Load builds a Config from defaults, the TOML file at path (if any) and
// the environment, then validates it. An empty path or a missing file
// skips the file layer.
func Load(path string, opts ...LoadOption) (*Config, error) {
	o := loadOptions{fs: loader.DefaultFS()}
	for _, opt := range opts {
		opt(&o)
	}

	fileData, err := loader.NewTOMLLoaderWithFS(o.fs, path).Load()
	if err != nil {
		return nil, err
	}

	env := loader.NewEnvLoader(loader.EnvPrefix)
	if o.environ != nil {
		env = loader.NewEnvLoaderFrom(loader.EnvPrefix, o.environ)
	}
	envData, err := env.Load()
	if err != nil {
		return nil, err
	}

	cfg, err := Decode(loader.DeepMerge(fileData, envData))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", displayPath(path), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode converts a merged settings map into a Config on top of Default.
func Decode(data map[string]any) (*Config, error) {
	cfg := Default()
	if len(data) == 0 {
		return cfg, nil
	}

	raw, err := toml.Marshal(data)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, &ValidationError{Path: "config", Message: err.Error(), Code: CodeType}
	}
	return cfg, nil
}

func displayPath(path string) string {
	if path == "" {
		return "environment"
	}
	return path
}

// Validate checks the configuration and returns every problem found,
// joined. Each is a *ValidationError.
func (c *Config) Validate() error {
	var errs []error
	add := func(path, msg string, value any, code ValidationErrorCode) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value, Code: code})
	}

	if c.Table.WindowLength <= 0 {
		add("table.windowLength", "must be greater than zero", c.Table.WindowLength, CodeRange)
	}
	if _, err := sorting.ParseAlgorithm(c.Table.Algorithm); err != nil {
		add("table.algorithm", "must be bucket or partition", c.Table.Algorithm, CodeEnum)
	}
	if !validLevel(c.Logging.Level) {
		add("logging.level", "must be debug, info, warn or error", c.Logging.Level, CodeEnum)
	}
	if f := strings.ToLower(c.Logging.Format); f != "" && f != "text" && f != "json" {
		add("logging.format", "must be text or json", c.Logging.Format, CodeEnum)
	}

	names := make(map[string]bool, len(c.Columns))
	titles := make(map[string]bool, len(c.Columns))
	for i, col := range c.Columns {
		path := fmt.Sprintf("columns[%d]", i)
		if col.Name == "" {
			add(path+".name", "is required", nil, CodeRequired)
			continue
		}
		if names[col.Name] {
			add(path+".name", "declared more than once", col.Name, CodeDuplicate)
		}
		names[col.Name] = true
		if col.Title != "" {
			if titles[col.Title] {
				add(path+".title", "declared more than once", col.Title, CodeDuplicate)
			}
			titles[col.Title] = true
		}
		if col.Width < 0 {
			add(path+".width", "must not be negative", col.Width, CodeRange)
		}
		if col.Format != "" {
			if !c.hasFormat(col.Format) {
				add(path+".format", "names an undeclared format", col.Format, CodeReference)
			}
		}
	}
	for i, col := range c.Columns {
		for _, tie := range col.SortOrder {
			if !names[tie] {
				add(fmt.Sprintf("columns[%d].sortOrder", i), "names an undeclared column", tie, CodeReference)
			}
		}
	}

	for spec, action := range c.Keys {
		path := "keys." + spec
		if _, err := key.Parse(spec); err != nil {
			add(path, "is not a key specification", spec, CodeType)
		}
		if !keymap.IsAction(action) {
			add(path, "names an unknown action", action, CodeReference)
		}
	}

	return errors.Join(errs...)
}

func (c *Config) hasFormat(name string) bool {
	if _, ok := c.Formats[name]; ok {
		return true
	}
	_, ok := format.Builtins[name]
	return ok
}

func validLevel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}

// Algorithm returns the configured sort algorithm.
func (c *Config) Algorithm() sorting.Algorithm {
	a, _ := sorting.ParseAlgorithm(c.Table.Algorithm)
	return a
}

// SearchDefaults returns the filter options applied to every search
// before the query's own settings.
func (c *Config) SearchDefaults() filter.Options {
	return filter.Options{
		CaseSensitive:     c.Table.CaseSensitive,
		WhitelistMatchAll: c.Table.MatchAll,
	}
}

// Keymap returns the [keys] overrides as a keymap, in key order.
func (c *Config) Keymap() *keymap.Keymap {
	km := keymap.NewKeymap("config").WithSource("config")
	specs := make([]string, 0, len(c.Keys))
	for spec := range c.Keys {
		specs = append(specs, spec)
	}
	slices.Sort(specs)
	for _, spec := range specs {
		km.Add(spec, c.Keys[spec])
	}
	return km
}

// LoggerConfig returns the logger configuration. The caller sets Output.
func (c *Config) LoggerConfig() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(c.Logging.Level)
	if c.Logging.Format != "" {
		lc.Format = strings.ToLower(c.Logging.Format)
	}
	return lc
}

// Schema builds the table schema.
//
// With no columns configured the schema is exactly inferred. Otherwise
// the configured columns, in order, are the schema; every column gets a
// title (its name when none is set) if any column declares one.
func (c *Config) Schema(inferred []string) (*schema.Schema, error) {
	if len(c.Columns) == 0 {
		return schema.New(inferred)
	}

	properties := make([]string, len(c.Columns))
	var opts []schema.Option
	var titled bool
	for i, col := range c.Columns {
		properties[i] = col.Name
		if col.Title != "" {
			titled = true
		}
		if len(col.SortOrder) > 0 {
			opts = append(opts, schema.WithSortOrder(col.Name, col.SortOrder...))
		}
		if col.Width > 0 {
			opts = append(opts, schema.WithWidth(col.Name, col.Width))
		}
		if col.Format != "" {
			opts = append(opts, schema.WithFormat(col.Name, col.Format))
		}
	}

	if titled {
		headers := make(map[string]string, len(c.Columns))
		for _, col := range c.Columns {
			title := col.Title
			if title == "" {
				title = col.Name
			}
			headers[col.Name] = title
		}
		opts = append(opts, schema.WithHeaders(headers))
	}

	return schema.New(properties, opts...)
}

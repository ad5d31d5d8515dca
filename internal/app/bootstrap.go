package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dshills/gridview/internal/config"
	"github.com/dshills/gridview/internal/config/watcher"
	"github.com/dshills/gridview/internal/format"
	"github.com/dshills/gridview/internal/input/keymap"
	"github.com/dshills/gridview/internal/logging"
	"github.com/dshills/gridview/internal/notify"
	"github.com/dshills/gridview/internal/source"
	"github.com/dshills/gridview/internal/table"
)

// closerFunc adapts a function to io.Closer.
type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// bootstrapper handles component initialization with cleanup on failure.
type bootstrapper struct {
	app  *Application
	opts Options
}

func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{app: app, opts: app.opts}
}

// bootstrap initializes the components in dependency order. On failure
// everything already opened is closed again.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,
		b.initLogger,
		b.initKeys,
		b.initFormats,
		b.initTable,
		b.initWatcher,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.app.Shutdown()
			return err
		}
	}
	return nil
}

func (b *bootstrapper) initConfig() error {
	cfg, err := loadConfig(b.opts)
	if err != nil {
		return NewOperationError("load config", b.opts.ConfigPath, err)
	}
	b.app.config = cfg
	return nil
}

// loadConfig reads the file and environment and applies the command line
// overrides.
func loadConfig(opts Options) (*config.Config, error) {
	var loadOpts []config.LoadOption
	if opts.Environ != nil {
		loadOpts = append(loadOpts, config.WithEnviron(opts.Environ))
	}
	cfg, err := config.Load(opts.ConfigPath, loadOpts...)
	if err != nil {
		return nil, err
	}

	if opts.WindowLength > 0 {
		cfg.Table.WindowLength = opts.WindowLength
	}
	if opts.Algorithm != "" {
		cfg.Table.Algorithm = opts.Algorithm
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (b *bootstrapper) initLogger() error {
	lc := b.app.config.LoggerConfig()
	switch {
	case b.opts.LogFile != "":
		f, err := os.OpenFile(b.opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return NewOperationError("open log", b.opts.LogFile, err)
		}
		b.app.closers = append(b.app.closers, f)
		lc.Output = f
	case b.opts.LogOutput != nil:
		lc.Output = b.opts.LogOutput
	default:
		// The screen belongs to the table.
		lc.Output = io.Discard
	}
	b.app.logger = logging.New(lc).WithComponent("app")
	return nil
}

func (b *bootstrapper) initKeys() error {
	keys, err := buildKeymap(b.app.config)
	if err != nil {
		return &ComponentError{Component: "keymap", Err: err}
	}
	b.app.keys = keys
	return nil
}

// buildKeymap layers the configured bindings over the defaults.
func buildKeymap(cfg *config.Config) (*keymap.ParsedKeymap, error) {
	return keymap.Default().Merge(cfg.Keymap()).Parse()
}

func (b *bootstrapper) initFormats() error {
	reg, err := format.New(b.app.config.Formats)
	if err != nil {
		return &ComponentError{Component: "formats", Err: err}
	}
	b.app.formats = reg
	b.app.closers = append(b.app.closers, closerFunc(func() error {
		b.app.formats.Close()
		return nil
	}))
	return nil
}

func (b *bootstrapper) initTable() error {
	if b.opts.DataPath == "" {
		return ErrNoData
	}

	var srcOpts []source.Option
	if b.opts.Format != "" {
		f, err := source.ParseFormat(b.opts.Format)
		if err != nil {
			return NewOperationError("load", b.opts.DataPath, err)
		}
		srcOpts = append(srcOpts, source.WithFormat(f))
	}
	if b.opts.JSONPath != "" {
		srcOpts = append(srcOpts, source.WithPath(b.opts.JSONPath))
	}

	ds, err := source.Load(b.opts.DataPath, srcOpts...)
	if err != nil {
		return NewOperationError("load", b.opts.DataPath, err)
	}

	cfg := b.app.config
	s, err := cfg.Schema(ds.Properties)
	if err != nil {
		return NewOperationError("load", b.opts.DataPath, err)
	}

	events := notify.New()
	events.SubscribeKind(b.app.logTableEvent,
		notify.KindSearch, notify.KindSort, notify.KindClearSearch, notify.KindClearSort)
	b.app.closers = append(b.app.closers, closerFunc(func() error {
		events.Close()
		return nil
	}))

	t, err := table.New(s, ds.Records,
		table.WithWindowLength(cfg.Table.WindowLength),
		table.WithAlgorithm(cfg.Algorithm()),
		table.WithNotifier(events),
		table.WithLogger(b.app.logger),
	)
	if err != nil {
		return NewOperationError("load", b.opts.DataPath, err)
	}
	b.app.table = t
	b.app.logger.Debug("loaded %d records, %d properties", len(ds.Records), s.Len())
	return nil
}

func (b *bootstrapper) initWatcher() error {
	if !b.opts.Watch || b.opts.ConfigPath == "" {
		return nil
	}
	w, err := watcher.New(b.opts.ConfigPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			b.app.logger.Warn("not watching %s: %v", b.opts.ConfigPath, err)
			return nil
		}
		return &ComponentError{Component: "watcher", Err: fmt.Errorf("watching %s: %w", b.opts.ConfigPath, err)}
	}
	b.app.watcher = w
	b.app.closers = append(b.app.closers, w)
	return nil
}

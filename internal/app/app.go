// Package app wires the gridview components into a terminal application:
// it loads the configuration and the records, owns the table, and runs
// the event loop that turns keys, mouse gestures, resizes and config
// changes into table operations.
package app

import (
	"context"
	"io"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/dshills/gridview/internal/config"
	"github.com/dshills/gridview/internal/config/watcher"
	"github.com/dshills/gridview/internal/format"
	"github.com/dshills/gridview/internal/input/keymap"
	"github.com/dshills/gridview/internal/input/mouse"
	"github.com/dshills/gridview/internal/logging"
	"github.com/dshills/gridview/internal/renderer"
	"github.com/dshills/gridview/internal/renderer/backend"
	"github.com/dshills/gridview/internal/table"
)

// Application owns one table and the terminal it is shown on.
type Application struct {
	mu sync.Mutex

	config  *config.Config
	logger  *logging.Logger
	closers []io.Closer

	table    *table.Table
	formats  *format.Registry
	watcher  *watcher.Watcher
	term     *backend.Terminal
	renderer *renderer.Renderer
	mouse    *mouse.Handler
	keys     *keymap.ParsedKeymap

	// Search prompt state. query is the last applied search.
	prompting bool
	prompt    []rune
	query     string

	// Transient status message replacing the summary until the next input.
	message string
	isError bool

	// Active scrollbar drag.
	drag dragTarget

	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// DataPath is the JSON, JSON Lines, CSV or TSV file to show.
	DataPath string

	// Format forces the data format ("json", "jsonl", "csv", "tsv").
	// Empty detects it from the extension.
	Format string

	// JSONPath selects the record array inside a JSON document.
	JSONPath string

	// ConfigPath is the TOML configuration file. Empty uses defaults and
	// the environment only.
	ConfigPath string

	// Watch reloads the configuration file when it changes.
	Watch bool

	// WindowLength overrides table.windowLength when greater than zero.
	WindowLength int

	// Algorithm overrides table.algorithm when set.
	Algorithm string

	// LogLevel overrides logging.level when set.
	LogLevel string

	// LogFile receives the log. Empty discards logging unless LogOutput
	// is set.
	LogFile string

	// LogOutput receives the log when LogFile is empty.
	LogOutput io.Writer

	// Terminal is the screen to run on. Nil opens the controlling terminal.
	Terminal *backend.Terminal

	// Environ supplies GRIDVIEW_* overrides. Nil reads the process
	// environment.
	Environ func() []string
}

// New loads the configuration and the data and builds the table.
// Nothing is drawn until Run.
func New(opts Options) (*Application, error) {
	app := &Application{
		logger: logging.NullLogger,
		mouse:  mouse.NewHandler(mouse.DefaultConfig()),
		done:   make(chan struct{}),
		opts:   opts,
	}
	if err := newBootstrapper(app).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Run opens the terminal and processes events until quit, Shutdown or
// ctx is done. A panic in the loop is returned as a *RecoveredPanicError
// after the terminal is restored.
func (app *Application) Run(ctx context.Context) (err error) {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	term := app.opts.Terminal
	if term == nil {
		if term, err = backend.NewTerminal(); err != nil {
			return &ComponentError{Component: "terminal", Err: err}
		}
	}
	if err := term.Init(); err != nil {
		return &ComponentError{Component: "terminal", Err: err}
	}
	defer term.Shutdown()

	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
			app.logger.Error("event loop panic: %v", r)
		}
	}()

	app.attach(term)
	app.logger.Info("showing %d records from %s", len(app.table.Records()), app.opts.DataPath)
	return app.eventLoop(ctx)
}

// attach binds the application to an initialized terminal.
func (app *Application) attach(term *backend.Terminal) {
	app.term = term
	app.renderer = renderer.New(term.Screen(), app.table.Schema(),
		renderer.WithFormatter(app.formats),
		renderer.WithLogger(app.logger),
	)
	app.renderer.Layout(app.table.Records())
	app.resize(term.Size())
}

// Shutdown stops the event loop and releases the data and watcher
// resources. It is safe to call more than once.
func (app *Application) Shutdown() {
	app.doneOnce.Do(func() {
		close(app.done)
		if app.term != nil {
			// Wake a blocked PollEvent.
			_ = app.term.PostInterrupt(nil)
		}
	})

	app.mu.Lock()
	defer app.mu.Unlock()
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i].Close(); err != nil {
			app.logger.Warn("close: %v", err)
		}
	}
	app.closers = nil
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Table returns the table being shown.
func (app *Application) Table() *table.Table {
	return app.table
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

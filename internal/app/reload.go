package app

import (
	"reflect"

	"github.com/dshills/gridview/internal/config/watcher"
	"github.com/dshills/gridview/internal/format"
	"github.com/dshills/gridview/internal/logging"
)

func (app *Application) watchEvents() <-chan watcher.Event {
	if app.watcher == nil {
		return nil
	}
	return app.watcher.Events()
}

func (app *Application) watchErrors() <-chan error {
	if app.watcher == nil {
		return nil
	}
	return app.watcher.Errors()
}

// reload re-reads the configuration and applies what can change while
// running: window length, sort algorithm, search defaults, formats, key
// bindings and log level. Column declarations apply on the next start.
// A configuration that fails to load or validate leaves the current one
// in place.
func (app *Application) reload() {
	path := app.opts.ConfigPath
	fail := func(err error) {
		err = NewOperationError("reload", path, err)
		app.logger.Warn("%v", err)
		app.setError(err)
	}

	cfg, err := loadConfig(app.opts)
	if err != nil {
		fail(err)
		return
	}
	keys, err := buildKeymap(cfg)
	if err != nil {
		fail(err)
		return
	}
	formats, err := format.New(cfg.Formats)
	if err != nil {
		fail(err)
		return
	}

	if !reflect.DeepEqual(app.config.Columns, cfg.Columns) {
		app.logger.Warn("column changes in %s apply after restart", path)
	}

	app.mu.Lock()
	old := app.formats
	app.formats = formats
	app.mu.Unlock()
	old.Close()

	app.config = cfg
	app.keys = keys
	app.logger.SetLevel(logging.ParseLevel(cfg.Logging.Level))
	app.table.SetAlgorithm(cfg.Algorithm())

	if app.renderer != nil {
		app.renderer.SetFormatter(formats)
		app.renderer.Layout(app.table.Records())
		reg := app.renderer.Regions()
		app.resize(reg.Width, reg.Height)
	} else if err := app.table.SetWindowLength(cfg.Table.WindowLength); err != nil {
		app.logger.Warn("window length: %v", err)
	}

	if app.query != "" {
		app.search(app.query)
	}

	app.logger.Info("reloaded %s", path)
	app.setMessage("reloaded %s", path)
}

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/gridview/internal/input/key"
	"github.com/dshills/gridview/internal/input/keymap"
	"github.com/dshills/gridview/internal/input/mouse"
	"github.com/dshills/gridview/internal/notify"
	"github.com/dshills/gridview/internal/renderer"
	"github.com/dshills/gridview/internal/renderer/backend"
	"github.com/dshills/gridview/internal/sorting"
)

// panStep is the horizontal pan per key press or wheel notch, as a
// fraction of the scrollable width.
const panStep = 0.1

type dragTarget uint8

const (
	dragNone dragTarget = iota
	dragVertical
	dragHorizontal
)

// eventLoop is the main application loop. Input, resizes and config
// changes are handled on this goroutine only.
func (app *Application) eventLoop(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	events := app.startInputPolling(stop)

	var (
		changes   = app.watchEvents()
		watchErrs = app.watchErrors()
	)

	app.draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-app.done:
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.handleEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}

		case change, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			app.logger.Debug("config %s: %s", change.Path, change.Op)
			app.reload()

		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			app.logger.Warn("watching config: %v", err)
		}
		app.draw()
	}
}

// startInputPolling forwards terminal events until the terminal closes or
// stop is closed. PollEvent blocks, so the goroutine exits only once the
// terminal is shut down.
func (app *Application) startInputPolling(stop <-chan struct{}) <-chan backend.Event {
	events := make(chan backend.Event, 64)
	term := app.term

	go func() {
		defer close(events)
		for {
			ev := term.PollEvent()
			if ev.Type == backend.EventClosed {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()
	return events
}

// handleEvent dispatches one terminal event.
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKey(ev.Key)
	case backend.EventMouse:
		app.handleMouse(ev.Mouse)
	case backend.EventResize:
		app.resize(ev.Width, ev.Height)
	case backend.EventClosed:
		return ErrQuit
	}
	return nil
}

// resize fits the table window and pan range to a new screen size.
// The configured window length is an upper bound on the visible rows.
func (app *Application) resize(width, height int) {
	reg := app.renderer.Resize(width, height)
	rows := max(1, min(app.config.Table.WindowLength, app.renderer.BodyRows()))
	if err := app.table.SetWindowLength(rows); err != nil {
		app.logger.Warn("window length %d: %v", rows, err)
	}
	app.table.SetColumnsWidth(float64(app.renderer.TotalWidth()), float64(reg.Body.W))
}

// draw paints the current state.
func (app *Application) draw() {
	if app.renderer == nil {
		return
	}
	f := renderer.NewFrame(app.table)
	if app.message != "" {
		f.Status = app.message
		f.Error = app.isError
	}
	if app.prompting {
		f.Prompting = true
		f.Prompt = string(app.prompt)
	}
	app.renderer.Draw(f)
}

func (app *Application) setMessage(format string, args ...any) {
	app.message = fmt.Sprintf(format, args...)
	app.isError = false
}

func (app *Application) setError(err error) {
	app.message = err.Error()
	app.isError = true
}

// handleKey routes a key press to the search prompt or the keymap.
func (app *Application) handleKey(ev key.Event) error {
	if app.prompting {
		app.handlePromptKey(ev)
		return nil
	}
	app.message = ""

	b, ok := app.keys.Lookup(ev)
	if !ok {
		return nil
	}
	return app.runAction(b)
}

// handlePromptKey edits the search prompt. Enter applies it and Esc
// cancels it.
func (app *Application) handlePromptKey(ev key.Event) {
	switch {
	case ev.Key == key.KeyEnter:
		app.prompting = false
		app.search(string(app.prompt))
	case ev.Key == key.KeyEscape:
		app.prompting = false
	case ev.Key == key.KeyBackspace || ev.Key == key.KeyDelete:
		if n := len(app.prompt); n > 0 {
			app.prompt = app.prompt[:n-1]
		}
	case ev.Key == key.KeyRune && ev.Rune == 'u' && ev.Modifiers.HasCtrl():
		app.prompt = app.prompt[:0]
	case ev.IsRune() && !ev.Modifiers.HasCtrl() && !ev.Modifiers.HasAlt():
		app.prompt = append(app.prompt, ev.Rune)
	}
}

// search applies a query with the configured search defaults. An empty
// query clears the search.
func (app *Application) search(query string) {
	app.query = query
	app.table.SearchQuery(query, app.config.SearchDefaults())
}

// runAction performs a bound action.
func (app *Application) runAction(b *keymap.Binding) error {
	t := app.table
	switch b.Action {
	case keymap.ActionQuit:
		return ErrQuit

	case keymap.ActionRedraw:
		if app.term != nil {
			app.term.Screen().Sync()
		}

	case keymap.ActionSearchPrompt:
		app.prompting = true
		app.prompt = []rune(app.query)

	case keymap.ActionSearchClear:
		app.query = ""
		t.ClearSearch()

	case keymap.ActionSortColumn:
		props := t.Schema().Properties()
		n := b.IntArg("column", 0)
		if n < 1 || n > len(props) {
			app.setMessage("no column %d", n)
			return nil
		}
		app.toggleSort(props[n-1])

	case keymap.ActionSortClear:
		t.ClearSort()

	case keymap.ActionSortAlgorithm:
		next := sorting.AlgorithmPartition
		if t.Algorithm() == sorting.AlgorithmPartition {
			next = sorting.AlgorithmBucket
		}
		t.SetAlgorithm(next)
		app.setMessage("sort algorithm: %s", next)

	case keymap.ActionScrollUp:
		t.Scroll(-1)
	case keymap.ActionScrollDown:
		t.Scroll(1)
	case keymap.ActionPageUp:
		t.PageUp()
	case keymap.ActionPageDown:
		t.PageDown()
	case keymap.ActionScrollTop:
		t.ScrollTo(0)
	case keymap.ActionScrollBottom:
		t.ScrollTo(t.Geometry().MaxOffset)

	case keymap.ActionPanLeft:
		t.ScrollHorizontal(-panStep)
	case keymap.ActionPanRight:
		t.ScrollHorizontal(panStep)

	case keymap.ActionSelectionClear:
		t.ClickOutside()
	}
	return nil
}

// toggleSort sorts by property, flipping the direction when it is already
// the sort property.
func (app *Application) toggleSort(property string) {
	if _, err := app.table.ToggleSort(property); err != nil {
		app.setError(NewOperationError("sort", property, err))
	}
}

// logTableEvent records searches and sorts in the log.
func (app *Application) logTableEvent(ev notify.Event) {
	switch e := ev.(type) {
	case notify.SearchEvent:
		app.logger.Debug("search: %d results, checked %v, unmatched %v",
			len(e.Results), e.PropertiesChecked, e.TermsNotMatched)
	case notify.SortEvent:
		app.logger.Debug("sort %s %s by %v: %s in %s",
			e.Property, e.Direction, e.Hierarchy, e.Algorithm, e.BenchmarkTime)
	default:
		app.logger.Debug("%s", ev.Kind())
	}
}

// handleMouse interprets a mouse report against the last drawn frame.
func (app *Application) handleMouse(ev mouse.Event) {
	g := app.mouse.Handle(ev)
	t := app.table

	switch g.Kind {
	case mouse.GestureWheel:
		if g.WheelY != 0 {
			t.Wheel(g.WheelY)
		}
		switch {
		case g.WheelX < 0:
			t.ScrollHorizontal(-panStep)
		case g.WheelX > 0:
			t.ScrollHorizontal(panStep)
		}

	case mouse.GesturePress:
		if g.Button != mouse.ButtonLeft {
			return
		}
		app.message = ""
		app.press(g)

	case mouse.GestureDrag:
		reg := app.renderer.Regions()
		switch app.drag {
		case dragVertical:
			t.DragTo(float64(g.Position.Y - reg.VTrack.Y))
		case dragHorizontal:
			t.HorizontalDragTo(float64(g.Position.X - reg.HTrack.X))
		}

	case mouse.GestureRelease:
		switch app.drag {
		case dragVertical:
			t.EndDrag()
		case dragHorizontal:
			t.EndHorizontalDrag()
		}
		app.drag = dragNone
	}
}

// press handles a left button press.
func (app *Application) press(g mouse.Gesture) {
	t := app.table
	hit := app.renderer.HitTest(g.Position.X, g.Position.Y)

	switch hit.Area {
	case renderer.AreaHeader:
		if hit.Property != "" {
			app.toggleSort(hit.Property)
		}

	case renderer.AreaRow:
		t.ClickRow(hit.Row, g.Modifiers)

	case renderer.AreaBlank:
		t.ClickOutside()

	case renderer.AreaVThumb:
		t.BeginDrag(float64(hit.TrackPos), float64(hit.TrackLen))
		app.drag = dragVertical

	case renderer.AreaVTrack:
		if hit.Before {
			t.PageUp()
		} else {
			t.PageDown()
		}

	case renderer.AreaHThumb:
		t.BeginHorizontalDrag(float64(hit.TrackPos), float64(hit.TrackLen))
		app.drag = dragHorizontal

	case renderer.AreaHTrack:
		page := horizontalPage(t.Geometry().HThumbSize)
		if hit.Before {
			page = -page
		}
		t.ScrollHorizontal(page)
	}
}

// horizontalPage converts a thumb size in percent into the pan fraction
// that moves the columns by one container width.
func horizontalPage(size float64) float64 {
	if size <= 0 || size >= 100 {
		return 1
	}
	return size / (100 - size)
}

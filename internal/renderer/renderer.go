package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/gridview/internal/logging"
	"github.com/dshills/gridview/internal/record"
	"github.com/dshills/gridview/internal/schema"
	"github.com/dshills/gridview/internal/sorting"
	"github.com/dshills/gridview/internal/table"
)

// Formatter applies a named display transform.
type Formatter interface {
	Apply(name string, value any, property string) (string, error)
}

// Frame is everything needed to paint one screen.
type Frame struct {
	// Visible is the table's visible window, top row first.
	Visible []*record.Record

	// Selected reports whether a record is highlighted. May be nil.
	Selected func(*record.Record) bool

	Geometry table.Geometry

	// SortProperty is marked in the header when Sorted is true.
	SortProperty string
	SortDir      sorting.Direction
	Sorted       bool

	// Status is shown on the last line unless Prompting.
	Status string
	// Error shows Status in the error style.
	Error bool

	// Prompt is the search input shown while Prompting.
	Prompt    string
	Prompting bool
}

// NewFrame captures t's current state with a summary status line.
func NewFrame(t *table.Table) Frame {
	f := Frame{
		Visible:  t.VisibleRecords(),
		Selected: t.IsSelected,
		Geometry: t.Geometry(),
	}
	f.SortProperty, f.SortDir, f.Sorted = t.Sorting()
	f.Status = Summary(t)
	return f
}

// Summary describes the table's position, search, sort and selection.
func Summary(t *table.Table) string {
	g := t.Geometry()
	var b strings.Builder

	if g.Length == 0 {
		b.WriteString("no rows")
	} else {
		last := min(g.Offset+g.WindowLength, g.Length)
		fmt.Fprintf(&b, "rows %d-%d of %d", g.Offset+1, last, g.Length)
	}
	if _, res, ok := t.Searching(); ok {
		fmt.Fprintf(&b, " | filtered from %d", len(t.Records()))
		if len(res.TermsNotMatched) > 0 {
			fmt.Fprintf(&b, " (no match: %s)", strings.Join(res.TermsNotMatched, " "))
		}
	}
	if property, dir, ok := t.Sorting(); ok {
		rep := t.LastSort()
		fmt.Fprintf(&b, " | sort %s %s (%s %s)", t.Schema().Title(property), dir,
			rep.AlgorithmUsed(), rep.Elapsed.Round(time.Microsecond))
	}
	if n := len(t.Selected()); n > 0 {
		fmt.Fprintf(&b, " | %d selected", n)
	}
	return b.String()
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme sets the theme.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithFormatter sets the display transform registry.
func WithFormatter(f Formatter) Option {
	return func(r *Renderer) {
		r.formats = f
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l.WithComponent("renderer")
		}
	}
}

// Renderer paints frames for one schema onto a screen.
type Renderer struct {
	screen  tcell.Screen
	schema  *schema.Schema
	theme   Theme
	formats Formatter
	logger  *logging.Logger

	columns []ColumnLayout
	total   int
	regions Regions

	// Last drawn state, used by HitTest.
	geometry table.Geometry
	rows     int
}

// New creates a renderer. Call Layout before the first Draw.
func New(screen tcell.Screen, s *schema.Schema, opts ...Option) *Renderer {
	r := &Renderer{
		screen: screen,
		schema: s,
		theme:  DefaultTheme(),
		logger: logging.NullLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	w, h := screen.Size()
	r.regions = ComputeRegions(w, h)
	return r
}

// SetFormatter replaces the display transform registry. Call Layout after.
func (r *Renderer) SetFormatter(f Formatter) {
	r.formats = f
}

// Layout sizes the columns from their titles, configured widths and a
// sample of records.
func (r *Renderer) Layout(records []*record.Record) {
	sample := records[:min(len(records), sampleSize)]

	r.columns = r.columns[:0]
	x := 0
	for _, col := range r.schema.Columns() {
		title := r.schema.Title(col.Name)
		width := col.Width
		if width <= 0 {
			width = runewidth.StringWidth(title) + runewidth.StringWidth(ascIndicator)
			for _, rec := range sample {
				width = max(width, runewidth.StringWidth(r.CellText(rec, col.Name, col.Format)))
			}
			width = min(max(width, MinColumnWidth), MaxColumnWidth)
		}

		align := AlignLeft
		if col.Format == "" && numericColumn(sample, col.Name) {
			align = AlignRight
		}
		r.columns = append(r.columns, ColumnLayout{
			Property: col.Name,
			Title:    title,
			Format:   col.Format,
			X:        x,
			Width:    width,
			Align:    align,
		})
		x += width + 1
	}
	r.total = max(0, x-1)
}

// Columns returns the current column layout.
func (r *Renderer) Columns() []ColumnLayout {
	return r.columns
}

// TotalWidth returns the width of all columns with separators.
func (r *Renderer) TotalWidth() int {
	return r.total
}

// Resize recomputes the regions for a new screen size.
func (r *Renderer) Resize(width, height int) Regions {
	r.regions = ComputeRegions(width, height)
	return r.regions
}

// Regions returns the current screen regions.
func (r *Renderer) Regions() Regions {
	return r.regions
}

// BodyRows returns how many rows fit on screen.
func (r *Renderer) BodyRows() int {
	return r.regions.Body.H
}

// CellText returns the display text of a record's property.
func (r *Renderer) CellText(rec *record.Record, property, format string) string {
	v, ok := rec.Get(property)
	if !ok || v == nil {
		return NoValue
	}
	if format != "" && r.formats != nil {
		s, err := r.formats.Apply(format, v, property)
		if err != nil {
			r.logger.Debug("format %s on %s: %v", format, property, err)
			return "#ERR"
		}
		return sanitize(s)
	}
	return sanitize(record.String(v))
}

// Draw paints f and shows the screen.
func (r *Renderer) Draw(f Frame) {
	r.geometry = f.Geometry
	r.rows = min(len(f.Visible), r.regions.Body.H)

	reg := r.regions
	r.screen.Fill(' ', r.theme.Row)
	pan := f.Geometry.PanCells

	if reg.Header.H > 0 {
		r.fill(reg.Header, r.theme.Header)
		for _, c := range r.columns {
			title := c.Title
			if f.Sorted && c.Property == f.SortProperty {
				if f.SortDir == sorting.Desc {
					title += descIndicator
				} else {
					title += ascIndicator
				}
			}
			r.drawText(c.X-pan, reg.Header.Y, fit(title, c.Width, AlignLeft), r.theme.Header, reg.Header)
		}
	}

	for i := 0; i < r.rows; i++ {
		rec := f.Visible[i]
		style := r.theme.Row
		if f.Selected != nil && f.Selected(rec) {
			style = r.theme.Selected
		}
		line := Rect{X: reg.Body.X, Y: reg.Body.Y + i, W: reg.Body.W, H: 1}
		r.fill(line, style)
		for _, c := range r.columns {
			text := fit(r.CellText(rec, c.Property, c.Format), c.Width, c.Align)
			r.drawText(c.X-pan, line.Y, text, style, line)
		}
	}

	r.drawVScroll(f.Geometry)
	r.drawHScroll(f.Geometry)
	r.drawStatus(f)
	r.screen.Show()
}

func (r *Renderer) drawVScroll(g table.Geometry) {
	track := r.regions.VTrack
	if track.W == 0 || track.H == 0 {
		return
	}
	pos, length := thumbSpan(track.H, g.ThumbSize, g.ThumbTop)
	for i := 0; i < track.H; i++ {
		if i >= pos && i < pos+length {
			r.screen.SetContent(track.X, track.Y+i, thumbRune, nil, r.theme.Thumb)
		} else {
			r.screen.SetContent(track.X, track.Y+i, vTrackRune, nil, r.theme.Track)
		}
	}
}

func (r *Renderer) drawHScroll(g table.Geometry) {
	track := r.regions.HTrack
	if track.W == 0 || track.H == 0 {
		return
	}
	pos, length := thumbSpan(track.W, g.HThumbSize, g.HThumbLeft)
	for i := 0; i < track.W; i++ {
		if i >= pos && i < pos+length {
			r.screen.SetContent(track.X+i, track.Y, thumbRune, nil, r.theme.Thumb)
		} else {
			r.screen.SetContent(track.X+i, track.Y, hTrackRune, nil, r.theme.Track)
		}
	}
}

func (r *Renderer) drawStatus(f Frame) {
	line := r.regions.Status
	if line.H == 0 {
		return
	}

	style, text := r.theme.Status, f.Status
	switch {
	case f.Prompting:
		style, text = r.theme.Prompt, "/"+f.Prompt
	case f.Error:
		style = r.theme.Error
	}
	r.fill(line, style)
	r.drawText(line.X, line.Y, runewidth.Truncate(sanitize(text), line.W, "…"), style, line)

	if f.Prompting {
		r.screen.ShowCursor(min(line.X+runewidth.StringWidth(text), line.W-1), line.Y)
	} else {
		r.screen.HideCursor()
	}
}

func (r *Renderer) fill(rect Rect, style tcell.Style) {
	for y := rect.Y; y < rect.Y+rect.H; y++ {
		for x := rect.X; x < rect.X+rect.W; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawText draws s starting at x, keeping only cells fully inside clip.
func (r *Renderer) drawText(x, y int, s string, style tcell.Style, clip Rect) {
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x >= clip.X && x+w <= clip.X+clip.W {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x += w
		if x >= clip.X+clip.W {
			return
		}
	}
}

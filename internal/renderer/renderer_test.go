package renderer

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/gridview/internal/filter"
	"github.com/dshills/gridview/internal/input/key"
	"github.com/dshills/gridview/internal/record"
	"github.com/dshills/gridview/internal/schema"
	"github.com/dshills/gridview/internal/sorting"
	"github.com/dshills/gridview/internal/table"
)

const (
	screenW = 40
	screenH = 8
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	sim.SetSize(screenW, screenH)
	t.Cleanup(sim.Fini)
	return sim
}

func line(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y) //nolint:staticcheck // GetContent is the simulation read API
		b.WriteRune(r)
	}
	return b.String()
}

func styleAt(s tcell.Screen, x, y int) tcell.Style {
	_, _, style, _ := s.GetContent(x, y) //nolint:staticcheck // GetContent is the simulation read API
	return style
}

func people(n int) []*record.Record {
	cities := []string{"Oslo", "Lima", "Kyoto"}
	recs := make([]*record.Record, n)
	for i := range recs {
		fields := map[string]any{
			"name": fmt.Sprintf("p%02d", i),
			"city": cities[i%len(cities)],
			"age":  20 + i,
		}
		if i == 1 {
			delete(fields, "city")
		}
		recs[i] = record.New(fields)
	}
	return recs
}

func newTable(t *testing.T, s *schema.Schema, recs []*record.Record) *table.Table {
	t.Helper()
	tbl, err := table.New(s, recs, table.WithWindowLength(screenH-3))
	if err != nil {
		t.Fatalf("table.New failed: %v", err)
	}
	return tbl
}

func peopleSchema(t *testing.T, opts ...schema.Option) *schema.Schema {
	t.Helper()
	opts = append([]schema.Option{
		schema.WithHeaders(map[string]string{"name": "Name", "city": "City", "age": "Age"}),
	}, opts...)
	s, err := schema.New([]string{"name", "city", "age"}, opts...)
	if err != nil {
		t.Fatalf("schema.New failed: %v", err)
	}
	return s
}

func setup(t *testing.T, n int, opts ...Option) (*Renderer, *table.Table, tcell.SimulationScreen) {
	t.Helper()
	sim := newScreen(t)
	s := peopleSchema(t)
	recs := people(n)
	tbl := newTable(t, s, recs)
	r := New(sim, s, opts...)
	r.Layout(recs)
	tbl.SetColumnsWidth(float64(r.TotalWidth()), float64(r.Regions().Body.W))
	return r, tbl, sim
}

func TestComputeRegions(t *testing.T) {
	reg := ComputeRegions(40, 8)

	if reg.Header != (Rect{0, 0, 39, 1}) {
		t.Errorf("unexpected header %+v", reg.Header)
	}
	if reg.Body != (Rect{0, 1, 39, 5}) {
		t.Errorf("unexpected body %+v", reg.Body)
	}
	if reg.VTrack != (Rect{39, 1, 1, 5}) {
		t.Errorf("unexpected vtrack %+v", reg.VTrack)
	}
	if reg.HTrack != (Rect{0, 6, 39, 1}) {
		t.Errorf("unexpected htrack %+v", reg.HTrack)
	}
	if reg.Status != (Rect{0, 7, 40, 1}) {
		t.Errorf("unexpected status %+v", reg.Status)
	}

	tiny := ComputeRegions(10, 2)
	if tiny.Body.H != 0 || tiny.Status.H != 1 {
		t.Errorf("expected only a status line, got %+v", tiny)
	}
}

func TestThumbSpan(t *testing.T) {
	tests := []struct {
		track       int
		size, start float64
		pos, length int
	}{
		{10, 100, 0, 0, 10},
		{10, 20, 0, 0, 2},
		{10, 20, 80, 8, 2},
		{10, 1, 50, 5, 1},
		{10, 50, 90, 5, 5},
		{0, 50, 0, 0, 0},
	}
	for _, tt := range tests {
		pos, length := thumbSpan(tt.track, tt.size, tt.start)
		if pos != tt.pos || length != tt.length {
			t.Errorf("thumbSpan(%d, %v, %v): expected (%d,%d), got (%d,%d)",
				tt.track, tt.size, tt.start, tt.pos, tt.length, pos, length)
		}
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		s     string
		width int
		align Align
		want  string
	}{
		{"abc", 5, AlignLeft, "abc  "},
		{"42", 5, AlignRight, "   42"},
		{"abcdef", 4, AlignLeft, "abc…"},
		{"日本語", 4, AlignLeft, "日…"},
		{"x", 0, AlignLeft, ""},
	}
	for _, tt := range tests {
		if got := fit(tt.s, tt.width, tt.align); got != tt.want {
			t.Errorf("fit(%q, %d): expected %q, got %q", tt.s, tt.width, tt.want, got)
		}
	}
}

func TestLayout(t *testing.T) {
	r, _, _ := setup(t, 5)

	cols := r.Columns()
	if len(cols) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(cols))
	}
	if cols[0].X != 0 || cols[1].X != cols[0].Width+1 {
		t.Errorf("unexpected positions %+v", cols)
	}
	// "Name" plus the sort indicator is wider than any "pNN" value.
	if cols[0].Width != 6 {
		t.Errorf("expected name width 6, got %d", cols[0].Width)
	}
	if cols[2].Align != AlignRight {
		t.Error("expected numeric column to be right aligned")
	}
	if cols[0].Align != AlignLeft {
		t.Error("expected text column to be left aligned")
	}
	want := cols[2].X + cols[2].Width
	if r.TotalWidth() != want {
		t.Errorf("expected total width %d, got %d", want, r.TotalWidth())
	}
}

func TestLayout_ConfiguredWidth(t *testing.T) {
	sim := newScreen(t)
	s := peopleSchema(t, schema.WithWidth("city", 12))
	r := New(sim, s)
	r.Layout(people(3))

	if w := r.Columns()[1].Width; w != 12 {
		t.Errorf("expected configured width 12, got %d", w)
	}
}

func TestDraw_HeaderAndRows(t *testing.T) {
	r, tbl, sim := setup(t, 10)
	r.Draw(NewFrame(tbl))

	if h := line(sim, 0); !strings.HasPrefix(h, "Name") || !strings.Contains(h, "City") {
		t.Errorf("unexpected header %q", h)
	}
	if row := line(sim, 1); !strings.HasPrefix(row, "p00") || !strings.Contains(row, "Oslo") {
		t.Errorf("unexpected first row %q", row)
	}
	if row := line(sim, 2); !strings.Contains(row, " "+NoValue+" ") {
		t.Errorf("expected missing city to render %q, got %q", NoValue, row)
	}
	if status := line(sim, screenH-1); !strings.HasPrefix(status, "rows 1-5 of 10") {
		t.Errorf("unexpected status %q", status)
	}
}

func TestDraw_SortIndicator(t *testing.T) {
	r, tbl, sim := setup(t, 4)

	if _, err := tbl.Sort("age", sorting.Desc); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	r.Draw(NewFrame(tbl))

	if h := line(sim, 0); !strings.Contains(h, "Age ▼") {
		t.Errorf("expected descending indicator, got %q", h)
	}
	if row := line(sim, 1); !strings.HasPrefix(row, "p03") {
		t.Errorf("expected oldest first, got %q", row)
	}
	if status := line(sim, screenH-1); !strings.Contains(status, "sort Age desc") {
		t.Errorf("expected sort in status, got %q", status)
	}
}

func TestDraw_Selection(t *testing.T) {
	r, tbl, sim := setup(t, 4)
	tbl.ClickRow(1, key.ModNone)
	r.Draw(NewFrame(tbl))

	theme := DefaultTheme()
	if got := styleAt(sim, 0, 2); got != theme.Selected {
		t.Error("expected selected row style on row 1")
	}
	if got := styleAt(sim, 0, 1); got != theme.Row {
		t.Error("expected plain style on row 0")
	}
	if status := line(sim, screenH-1); !strings.Contains(status, "1 selected") {
		t.Errorf("expected selection count in status, got %q", status)
	}
}

func TestDraw_Scrollbars(t *testing.T) {
	r, tbl, sim := setup(t, 50)
	r.Draw(NewFrame(tbl))

	top, _, _, _ := sim.GetContent(screenW-1, 1) //nolint:staticcheck // GetContent is the simulation read API
	if top != thumbRune {
		t.Errorf("expected thumb at top of track, got %q", top)
	}

	tbl.ScrollTo(tbl.Geometry().MaxOffset)
	r.Draw(NewFrame(tbl))
	bottom, _, _, _ := sim.GetContent(screenW-1, screenH-3) //nolint:staticcheck // GetContent is the simulation read API
	if bottom != thumbRune {
		t.Errorf("expected thumb at bottom of track, got %q", bottom)
	}
	top, _, _, _ = sim.GetContent(screenW-1, 1) //nolint:staticcheck // GetContent is the simulation read API
	if top != vTrackRune {
		t.Errorf("expected track at top after scrolling, got %q", top)
	}

	// Columns fit, so the horizontal thumb fills the track.
	if h := line(sim, screenH-2); strings.ContainsRune(h[:len(h)-1], hTrackRune) {
		t.Errorf("expected full horizontal thumb, got %q", h)
	}
}

func TestDraw_HorizontalPan(t *testing.T) {
	sim := newScreen(t)
	s := peopleSchema(t, schema.WithWidth("name", 20), schema.WithWidth("city", 20), schema.WithWidth("age", 20))
	recs := people(3)
	tbl := newTable(t, s, recs)
	r := New(sim, s)
	r.Layout(recs)
	tbl.SetColumnsWidth(float64(r.TotalWidth()), float64(r.Regions().Body.W))

	r.Draw(NewFrame(tbl))
	if h := line(sim, 0); !strings.HasPrefix(h, "Name") {
		t.Fatalf("unexpected header %q", h)
	}

	tbl.ScrollHorizontal(1)
	r.Draw(NewFrame(tbl))
	h := line(sim, 0)
	if strings.Contains(h, "Name") || !strings.Contains(h, "Age") {
		t.Errorf("expected header panned to the last column, got %q", h)
	}
	if hit := r.HitTest(screenW-2, 0); hit.Property != "age" {
		t.Errorf("expected hit on age after pan, got %q", hit.Property)
	}
}

func TestDraw_Prompt(t *testing.T) {
	r, tbl, sim := setup(t, 3)
	f := NewFrame(tbl)
	f.Prompting = true
	f.Prompt = "oslo"
	r.Draw(f)

	if status := line(sim, screenH-1); !strings.HasPrefix(status, "/oslo") {
		t.Errorf("expected prompt, got %q", status)
	}
	if got := styleAt(sim, 0, screenH-1); got != DefaultTheme().Prompt {
		t.Error("expected prompt style")
	}
}

func TestDraw_Error(t *testing.T) {
	r, tbl, sim := setup(t, 3)
	f := NewFrame(tbl)
	f.Status = "bad query"
	f.Error = true
	r.Draw(f)

	if got := styleAt(sim, 0, screenH-1); got != DefaultTheme().Error {
		t.Error("expected error style")
	}
}

type upperFormatter struct{}

func (upperFormatter) Apply(name string, value any, property string) (string, error) {
	if name == "broken" {
		return "", errors.New("boom")
	}
	return strings.ToUpper(record.String(value)), nil
}

func TestCellText(t *testing.T) {
	sim := newScreen(t)
	r := New(sim, peopleSchema(t), WithFormatter(upperFormatter{}))
	rec := record.New(map[string]any{"city": "oslo", "age": 3.5, "name": nil})

	tests := []struct {
		property, format, want string
	}{
		{"city", "", "oslo"},
		{"city", "upper", "OSLO"},
		{"city", "broken", "#ERR"},
		{"age", "", "3.5"},
		{"name", "upper", NoValue},
		{"missing", "", NoValue},
	}
	for _, tt := range tests {
		if got := r.CellText(rec, tt.property, tt.format); got != tt.want {
			t.Errorf("CellText(%s, %q): expected %q, got %q", tt.property, tt.format, tt.want, got)
		}
	}

	multi := record.New(map[string]any{"note": "a\nb\tc"})
	if got := r.CellText(multi, "note", ""); got != "a b c" {
		t.Errorf("expected control characters replaced, got %q", got)
	}
}

func TestHitTest(t *testing.T) {
	r, tbl, _ := setup(t, 3)
	r.Draw(NewFrame(tbl))
	cols := r.Columns()

	tests := []struct {
		name     string
		x, y     int
		area     Area
		row      int
		property string
	}{
		{"header", 0, 0, AreaHeader, 0, "name"},
		{"second column header", cols[1].X, 0, AreaHeader, 0, "city"},
		{"row", 1, 2, AreaRow, 1, "name"},
		{"below rows", 1, 5, AreaBlank, 0, ""},
		{"vthumb", screenW - 1, 1, AreaVThumb, 0, ""},
		{"hthumb", 0, screenH - 2, AreaHThumb, 0, ""},
		{"status", 3, screenH - 1, AreaStatus, 0, ""},
		{"past columns", screenW - 3, 1, AreaRow, 0, ""},
	}
	for _, tt := range tests {
		hit := r.HitTest(tt.x, tt.y)
		if hit.Area != tt.area || hit.Row != tt.row || hit.Property != tt.property {
			t.Errorf("%s: expected %s row %d %q, got %s row %d %q",
				tt.name, tt.area, tt.row, tt.property, hit.Area, hit.Row, hit.Property)
		}
	}
}

func TestHitTest_Track(t *testing.T) {
	r, tbl, _ := setup(t, 50)
	tbl.ScrollTo(tbl.Geometry().MaxOffset)
	r.Draw(NewFrame(tbl))

	hit := r.HitTest(screenW-1, 1)
	if hit.Area != AreaVTrack || !hit.Before {
		t.Errorf("expected track before thumb, got %+v", hit)
	}
	if hit.TrackLen != screenH-3 || hit.TrackPos != 0 {
		t.Errorf("expected track position 0 of %d, got %d of %d", screenH-3, hit.TrackPos, hit.TrackLen)
	}
}

func TestSummary_Search(t *testing.T) {
	_, tbl, _ := setup(t, 9)
	tbl.SearchQuery("oslo zurich", filter.Options{})

	got := Summary(tbl)
	want := "rows 1-3 of 3 | filtered from 9 (no match: zurich)"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSummary_Empty(t *testing.T) {
	_, tbl, _ := setup(t, 3)
	tbl.SearchQuery("nothing", filter.Options{})

	if got := Summary(tbl); !strings.HasPrefix(got, "no rows") {
		t.Errorf("expected no rows, got %q", got)
	}
}

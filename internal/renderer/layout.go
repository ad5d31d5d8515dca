package renderer

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/gridview/internal/record"
)

// NoValue is displayed for missing values.
const NoValue = "-"

// Column width bounds for automatic sizing.
const (
	MinColumnWidth = 3
	MaxColumnWidth = 40

	// sampleSize is how many records are measured for automatic widths.
	sampleSize = 200
)

// Align is a column's text alignment.
type Align uint8

const (
	AlignLeft Align = iota
	AlignRight
)

// ColumnLayout is a column's placement in content coordinates.
type ColumnLayout struct {
	Property string
	Title    string
	Format   string
	X        int
	Width    int
	Align    Align
}

// Rect is a screen rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Regions are the screen areas for a given screen size.
type Regions struct {
	Width, Height int

	Header Rect
	Body   Rect
	VTrack Rect
	HTrack Rect
	Status Rect
}

// ComputeRegions splits a width x height screen.
func ComputeRegions(width, height int) Regions {
	width, height = max(0, width), max(0, height)
	content := max(0, width-1)
	body := max(0, height-3)

	reg := Regions{Width: width, Height: height}
	if height == 0 {
		return reg
	}
	reg.Status = Rect{X: 0, Y: height - 1, W: width, H: 1}
	if height < 3 {
		return reg
	}
	reg.Header = Rect{X: 0, Y: 0, W: content, H: 1}
	reg.Body = Rect{X: 0, Y: 1, W: content, H: body}
	reg.VTrack = Rect{X: content, Y: 1, W: min(1, width), H: body}
	reg.HTrack = Rect{X: 0, Y: height - 2, W: content, H: 1}
	return reg
}

// thumbSpan converts a thumb size and start, in percent, into a cell
// position and length on a track of track cells.
func thumbSpan(track int, size, start float64) (pos, length int) {
	if track <= 0 {
		return 0, 0
	}
	length = int(math.Round(size / 100 * float64(track)))
	length = min(max(length, 1), track)
	pos = int(math.Round(start / 100 * float64(track)))
	pos = min(max(pos, 0), track-length)
	return pos, length
}

// sanitize replaces control characters so one value stays on one line.
func sanitize(s string) string {
	if !strings.ContainsAny(s, "\n\r\t") {
		return s
	}
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(s)
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int, align Align) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, "…")
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	if align == AlignRight {
		return strings.Repeat(" ", pad) + s
	}
	return s + strings.Repeat(" ", pad)
}

// numericColumn reports whether every present sample value is numeric.
func numericColumn(sample []*record.Record, property string) bool {
	seen := false
	for _, rec := range sample {
		v, ok := rec.Get(property)
		if !ok || v == nil {
			continue
		}
		if _, ok := record.Number(v); !ok {
			return false
		}
		seen = true
	}
	return seen
}

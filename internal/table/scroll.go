package table

import (
	"github.com/dshills/gridview/internal/notify"
	"github.com/dshills/gridview/internal/viewport"
)

// Geometry is the scroll state handed to the renderer.
type Geometry struct {
	Offset       int
	MaxOffset    int
	WindowLength int
	Length       int

	// ThumbSize and ThumbTop are the vertical thumb in percent of the track.
	ThumbSize float64
	ThumbTop  float64

	// HorizontalOffset is the fractional pan in [0, 1].
	HorizontalOffset float64
	// HThumbSize and HThumbLeft are the horizontal thumb in percent.
	HThumbSize float64
	HThumbLeft float64
	// Pan is the column shift in percent of the total columns width.
	Pan float64
	// PanCells is Pan converted to cells.
	PanCells int
}

// Geometry returns the current scroll geometry.
func (t *Table) Geometry() Geometry {
	return Geometry{
		Offset:           t.vertical.Offset(),
		MaxOffset:        t.vertical.MaxOffset(),
		WindowLength:     t.vertical.WindowLength(),
		Length:           t.vertical.Length(),
		ThumbSize:        t.vertical.ThumbSize(),
		ThumbTop:         t.vertical.ThumbTop(),
		HorizontalOffset: t.horizontal.Offset(),
		HThumbSize:       t.horizontal.ThumbSize(),
		HThumbLeft:       t.horizontal.ThumbLeft(),
		Pan:              t.horizontal.Pan(),
		PanCells:         t.horizontal.PanCells(),
	}
}

// Scroll moves the window by steps rows. It returns false, and publishes
// nothing, when the offset does not change.
func (t *Table) Scroll(steps int) bool {
	return t.publishScroll(t.vertical.PerformScroll(steps))
}

// Wheel scrolls by a wheel delta.
func (t *Table) Wheel(delta float64) bool {
	return t.Scroll(viewport.WheelSteps(delta))
}

// ScrollTo moves the window to an absolute offset.
func (t *Table) ScrollTo(offset int) bool {
	return t.publishScroll(t.vertical.ScrollTo(offset))
}

// PageDown scrolls forward by one window.
func (t *Table) PageDown() bool {
	return t.Scroll(t.vertical.WindowLength())
}

// PageUp scrolls back by one window.
func (t *Table) PageUp() bool {
	return t.Scroll(-t.vertical.WindowLength())
}

// BeginDrag starts a vertical thumb drag at pointer pixel on a track
// trackPixels long.
func (t *Table) BeginDrag(pixel, trackPixels float64) {
	t.vertical.BeginDrag(pixel, trackPixels)
}

// DragTo moves an active vertical drag.
func (t *Table) DragTo(pixel float64) bool {
	return t.publishScroll(t.vertical.DragTo(pixel))
}

// EndDrag finishes a vertical drag.
func (t *Table) EndDrag() {
	t.vertical.EndDrag()
}

// Dragging returns true while a vertical thumb drag is active.
func (t *Table) Dragging() bool {
	return t.vertical.Dragging()
}

// SetWindowLength changes the number of visible rows, keeping the offset
// when it is still valid.
func (t *Table) SetWindowLength(n int) error {
	if n < 1 {
		return ErrInvalidWindowLength
	}
	t.windowLength = n
	t.vertical.SetWindowLength(n)
	return nil
}

// WindowLength returns the number of visible rows.
func (t *Table) WindowLength() int {
	return t.windowLength
}

func (t *Table) publishScroll(res viewport.ScrollResult, changed bool) bool {
	if !changed {
		return false
	}
	view := t.ActiveView()
	end := min(res.End, len(view))
	start := min(res.Start, end)
	t.notifier.Notify(notify.ScrollEvent{
		Header:       notify.NewHeader(t.id),
		Offset:       res.Offset,
		WindowLength: res.WindowLength,
		Steps:        res.Steps,
		Visible:      view[start:end:end],
	})
	return true
}

// SetColumnsWidth records the total width of all columns and the width of
// the container showing them.
func (t *Table) SetColumnsWidth(total, container float64) {
	t.horizontal.SetWidths(total, container)
	if !t.horizontal.Overflows() {
		t.horizontal.Reset()
	}
}

// ScrollHorizontal pans by fraction of the scrollable width.
func (t *Table) ScrollHorizontal(fraction float64) bool {
	if !t.horizontal.Overflows() {
		return false
	}
	return t.horizontal.PerformScroll(fraction)
}

// BeginHorizontalDrag starts a horizontal thumb drag.
func (t *Table) BeginHorizontalDrag(pixel, trackPixels float64) {
	t.horizontal.BeginDrag(pixel, trackPixels)
}

// HorizontalDragTo moves an active horizontal drag.
func (t *Table) HorizontalDragTo(pixel float64) bool {
	return t.horizontal.DragTo(pixel)
}

// EndHorizontalDrag finishes a horizontal drag.
func (t *Table) EndHorizontalDrag() {
	t.horizontal.EndDrag()
}

// HorizontalDragging returns true while a horizontal thumb drag is active.
func (t *Table) HorizontalDragging() bool {
	return t.horizontal.Dragging()
}

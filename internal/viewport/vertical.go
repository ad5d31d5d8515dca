// Package viewport provides the scroll state and scrollbar geometry of a
// virtualized table.
//
// Vertical tracks an integer row offset into the active view and shows
// windowLength rows at a time. Horizontal tracks a fractional pan in [0,1]
// across columns wider than their container. Both convert pointer drags on
// their scrollbar track into scroll steps.
//
// Geometry is expressed in percent of the track length so the renderer can
// map it onto any track size.
package viewport

import "math"

// DefaultWindowLength is the number of rows shown when none is configured.
const DefaultWindowLength = 20

const (
	// MinThumbSize is the floor, in percent, for the vertical thumb size.
	MinThumbSize = 20.0

	// thumbDecay is applied to the shrink step after every row of excess.
	thumbDecay = 0.99

	// wheelDeltaPerStep is the wheel delta that maps to one row.
	wheelDeltaPerStep = 50.0
)

// ScrollResult describes a completed vertical scroll.
type ScrollResult struct {
	Offset       int
	WindowLength int
	Steps        int

	// Start and End delimit the visible window: activeView[Start:End].
	Start int
	End   int
}

// Vertical is the row viewport over the active view.
type Vertical struct {
	offset       int
	windowLength int
	length       int

	thumbSize float64
	thumbTop  float64

	drag *verticalDrag
}

type verticalDrag struct {
	trackPixels float64
	startPixel  float64
	startOffset int
}

// NewVertical creates a vertical viewport showing windowLength rows.
// Non-positive lengths fall back to DefaultWindowLength.
func NewVertical(windowLength int) *Vertical {
	if windowLength < 1 {
		windowLength = DefaultWindowLength
	}
	v := &Vertical{windowLength: windowLength}
	v.recompute()
	return v
}

// Offset returns the first visible row.
func (v *Vertical) Offset() int {
	return v.offset
}

// WindowLength returns the number of rows visible at once.
func (v *Vertical) WindowLength() int {
	return v.windowLength
}

// Length returns the length of the view being scrolled.
func (v *Vertical) Length() int {
	return v.length
}

// MaxOffset returns the largest valid offset.
func (v *Vertical) MaxOffset() int {
	return max(0, v.length-v.windowLength)
}

// Window returns the bounds of the visible rows.
func (v *Vertical) Window() (start, end int) {
	start = v.offset
	end = min(v.offset+v.windowLength, v.length)
	if end < start {
		end = start
	}
	return start, end
}

// Reset points the viewport at a new view of length n and returns to the top.
func (v *Vertical) Reset(n int) {
	v.length = max(0, n)
	v.offset = 0
	v.drag = nil
	v.recompute()
}

// SetLength updates the view length, keeping the offset when still valid.
func (v *Vertical) SetLength(n int) {
	v.length = max(0, n)
	v.offset = min(v.offset, v.MaxOffset())
	v.recompute()
}

// SetWindowLength changes the number of visible rows.
func (v *Vertical) SetWindowLength(n int) {
	if n < 1 {
		n = DefaultWindowLength
	}
	v.windowLength = n
	v.offset = min(v.offset, v.MaxOffset())
	v.recompute()
}

// PerformScroll moves the offset by steps, clamped to [0, MaxOffset].
// It returns false, and changes nothing, when the clamped offset equals the
// current one.
func (v *Vertical) PerformScroll(steps int) (ScrollResult, bool) {
	next := clampInt(v.offset+steps, 0, v.MaxOffset())
	if next == v.offset {
		return ScrollResult{}, false
	}
	v.offset = next
	v.thumbTop = thumbTop(v.offset, v.MaxOffset(), v.thumbSize)

	start, end := v.Window()
	return ScrollResult{
		Offset:       v.offset,
		WindowLength: v.windowLength,
		Steps:        steps,
		Start:        start,
		End:          end,
	}, true
}

// ScrollTo moves to an absolute offset.
func (v *Vertical) ScrollTo(offset int) (ScrollResult, bool) {
	return v.PerformScroll(offset - v.offset)
}

// ThumbSize returns the thumb length in percent of the track.
func (v *Vertical) ThumbSize() float64 {
	return v.thumbSize
}

// ThumbTop returns the thumb position in percent of the track.
func (v *Vertical) ThumbTop() float64 {
	return v.thumbTop
}

// BeginDrag starts a thumb drag at pointer position pixel on a track
// trackPixels long.
func (v *Vertical) BeginDrag(pixel, trackPixels float64) {
	v.drag = &verticalDrag{
		trackPixels: trackPixels,
		startPixel:  pixel,
		startOffset: v.offset,
	}
}

// Dragging returns true between BeginDrag and EndDrag.
func (v *Vertical) Dragging() bool {
	return v.drag != nil
}

// DragTo moves the pointer of an active drag to pixel.
// A pointer at or beyond either end of the track snaps to the first or last
// offset.
func (v *Vertical) DragTo(pixel float64) (ScrollResult, bool) {
	if v.drag == nil {
		return ScrollResult{}, false
	}
	// Pixels are cell positions; the last one is trackPixels-1.
	switch {
	case pixel <= 0:
		return v.ScrollTo(0)
	case pixel >= v.drag.trackPixels-1:
		return v.ScrollTo(v.MaxOffset())
	}
	steps := DragSteps(v.length, v.thumbSize, v.drag.trackPixels, pixel-v.drag.startPixel)
	return v.ScrollTo(v.drag.startOffset + steps)
}

// EndDrag finishes a drag.
func (v *Vertical) EndDrag() {
	v.drag = nil
}

func (v *Vertical) recompute() {
	v.thumbSize = ThumbSize(v.length, v.windowLength)
	v.thumbTop = thumbTop(v.offset, v.MaxOffset(), v.thumbSize)
}

// ThumbSize computes the vertical thumb size in percent for a view of
// length n showing windowLength rows.
//
// Starting at 100, each row of excess shrinks the size by a step that
// starts at 1 and decays by 0.99 after every subtraction. The size is
// clamped to exactly MinThumbSize the first time it would reach it, so the
// thumb stays usable for very large views.
func ThumbSize(n, windowLength int) float64 {
	excess := n - windowLength
	size := 100.0
	step := 1.0
	for i := 0; i < excess; i++ {
		if size-step <= MinThumbSize {
			return MinThumbSize
		}
		size -= step
		step *= thumbDecay
	}
	return size
}

func thumbTop(offset, maxOffset int, size float64) float64 {
	if maxOffset <= 0 {
		return 0
	}
	return float64(offset) / float64(maxOffset) * (100 - size)
}

// DragSteps converts a pointer movement of pixelDelta on a track of
// trackPixels into rows for a view of length n and a thumb of size percent.
func DragSteps(n int, size, trackPixels, pixelDelta float64) int {
	travel := (100 - size) / 100 * trackPixels
	if travel <= 0 {
		return 0
	}
	rowsPerPixel := float64(n) / travel
	return int(math.Round(rowsPerPixel * pixelDelta))
}

// WheelSteps converts a wheel delta into rows: sign(delta) * ceil(|delta|/50).
func WheelSteps(delta float64) int {
	if delta == 0 {
		return 0
	}
	steps := int(math.Ceil(math.Abs(delta) / wheelDeltaPerStep))
	if delta < 0 {
		return -steps
	}
	return steps
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

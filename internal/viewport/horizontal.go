package viewport

const (
	// snapLow and snapHigh pull near-edge horizontal offsets onto the edge.
	snapLow  = 0.01
	snapHigh = 0.99
)

// Horizontal is the column pan over columns wider than their container.
type Horizontal struct {
	offset    float64
	total     float64
	container float64

	drag *horizontalDrag
}

type horizontalDrag struct {
	trackPixels float64
	startPixel  float64
	startOffset float64
}

// NewHorizontal creates a horizontal viewport with no overflow.
func NewHorizontal() *Horizontal {
	return &Horizontal{}
}

// SetWidths records the total columns width and the container width.
// The offset is kept.
func (h *Horizontal) SetWidths(total, container float64) {
	h.total = max(0, total)
	h.container = max(0, container)
}

// Offset returns the fractional pan in [0, 1].
func (h *Horizontal) Offset() float64 {
	return h.offset
}

// Overflows returns true when the columns are wider than the container.
func (h *Horizontal) Overflows() bool {
	return h.ThumbSize() < 100
}

// ThumbSize returns min(100, container/total*100).
func (h *Horizontal) ThumbSize() float64 {
	if h.total <= 0 {
		return 100
	}
	return min(100, h.container/h.total*100)
}

// ThumbLeft returns the thumb position in percent of the track.
func (h *Horizontal) ThumbLeft() float64 {
	return h.offset * (100 - h.ThumbSize())
}

// Pan returns the column shift in percent of the total columns width.
// It is zero or negative.
func (h *Horizontal) Pan() float64 {
	if h.offset == 0 {
		return 0
	}
	return -(h.offset * (100 - h.ThumbSize()))
}

// PanCells converts Pan into a number of cells to skip on the left.
func (h *Horizontal) PanCells() int {
	return int(-h.Pan() / 100 * h.total)
}

// PerformScroll moves the pan by fraction, clamped to [0, 1] with snapping
// near either edge. It returns false when nothing changed.
func (h *Horizontal) PerformScroll(fraction float64) bool {
	next := h.offset + fraction
	switch {
	case next < snapLow:
		next = 0
	case next > snapHigh:
		next = 1
	}
	if next == h.offset {
		return false
	}
	h.offset = next
	return true
}

// Reset returns the pan to the left edge.
func (h *Horizontal) Reset() {
	h.offset = 0
	h.drag = nil
}

// BeginDrag starts a thumb drag at pointer position pixel on a track
// trackPixels wide.
func (h *Horizontal) BeginDrag(pixel, trackPixels float64) {
	h.drag = &horizontalDrag{
		trackPixels: trackPixels,
		startPixel:  pixel,
		startOffset: h.offset,
	}
}

// Dragging returns true between BeginDrag and EndDrag.
func (h *Horizontal) Dragging() bool {
	return h.drag != nil
}

// DragTo moves the pointer of an active drag to pixel.
func (h *Horizontal) DragTo(pixel float64) bool {
	if h.drag == nil {
		return false
	}
	switch {
	case pixel <= 0:
		return h.PerformScroll(-h.offset)
	case pixel >= h.drag.trackPixels-1:
		return h.PerformScroll(1 - h.offset)
	}
	target := h.drag.startOffset + DragFraction(h.ThumbSize(), h.drag.trackPixels, pixel-h.drag.startPixel)
	return h.PerformScroll(target - h.offset)
}

// EndDrag finishes a drag.
func (h *Horizontal) EndDrag() {
	h.drag = nil
}

// DragFraction converts a pointer movement on a horizontal track into a pan
// fraction for a thumb of size percent.
func DragFraction(size, trackPixels, pixelDelta float64) float64 {
	travel := (100 - size) / 100 * trackPixels
	if travel <= 0 {
		return 0
	}
	return pixelDelta / travel
}

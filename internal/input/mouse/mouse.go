package mouse

import (
	"time"

	"github.com/dshills/gridview/internal/input/key"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button.
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonScrollUp indicates scroll wheel up.
	ButtonScrollUp
	// ButtonScrollDown indicates scroll wheel down.
	ButtonScrollDown
	// ButtonScrollLeft indicates horizontal scroll left.
	ButtonScrollLeft
	// ButtonScrollRight indicates horizontal scroll right.
	ButtonScrollRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonScrollUp:
		return "scroll-up"
	case ButtonScrollDown:
		return "scroll-down"
	case ButtonScrollLeft:
		return "scroll-left"
	case ButtonScrollRight:
		return "scroll-right"
	default:
		return "none"
	}
}

// IsScroll returns true if this is a scroll button.
func (b Button) IsScroll() bool {
	return b == ButtonScrollUp || b == ButtonScrollDown ||
		b == ButtonScrollLeft || b == ButtonScrollRight
}

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// Distance returns the Manhattan distance between two positions.
func (p Position) Distance(other Position) int {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Event is a raw mouse report.
type Event struct {
	// Position is the screen coordinates.
	Position Position

	// Button is the button held, or ButtonNone when all are released.
	Button Button

	// Modifiers are any keyboard modifiers held during the event.
	Modifiers key.Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// GestureKind identifies a gesture.
type GestureKind uint8

const (
	// GestureNone means the report produced no gesture.
	GestureNone GestureKind = iota
	// GesturePress is a button going down.
	GesturePress
	// GestureDrag is movement with the button held.
	GestureDrag
	// GestureRelease is the button coming up.
	GestureRelease
	// GestureWheel is a wheel notch.
	GestureWheel
)

// String returns the gesture kind name.
func (k GestureKind) String() string {
	switch k {
	case GesturePress:
		return "press"
	case GestureDrag:
		return "drag"
	case GestureRelease:
		return "release"
	case GestureWheel:
		return "wheel"
	default:
		return "none"
	}
}

// Gesture is an interpreted mouse action.
type Gesture struct {
	Kind      GestureKind
	Button    Button
	Position  Position
	Modifiers key.Modifier

	// Start is where the current press began (press, drag, release).
	Start Position

	// Clicks is 1, 2 or 3 for presses within the double-click window.
	Clicks int

	// WheelX and WheelY are wheel deltas in wheel units; positive is
	// down or right.
	WheelX float64
	WheelY float64
}

// Config configures mouse handling.
type Config struct {
	// DoubleClickTime is the maximum time between clicks in a sequence.
	DoubleClickTime time.Duration

	// DoubleClickDistance is the maximum distance between clicks in a sequence.
	DoubleClickDistance int

	// WheelDelta is the delta reported per wheel notch.
	WheelDelta float64
}

// DefaultConfig returns the default configuration.
// One wheel notch scrolls one row.
func DefaultConfig() Config {
	return Config{
		DoubleClickTime:     400 * time.Millisecond,
		DoubleClickDistance: 2,
		WheelDelta:          50,
	}
}

// Handler interprets mouse reports. It is not safe for concurrent use.
type Handler struct {
	config Config
	click  *clickTracker
	drag   *dragTracker
}

// NewHandler creates a mouse handler.
func NewHandler(config Config) *Handler {
	if config.WheelDelta == 0 {
		config.WheelDelta = DefaultConfig().WheelDelta
	}
	return &Handler{
		config: config,
		click:  newClickTracker(config.DoubleClickTime, config.DoubleClickDistance),
		drag:   newDragTracker(),
	}
}

// Handle interprets one report.
func (h *Handler) Handle(ev Event) Gesture {
	g := Gesture{
		Button:    ev.Button,
		Position:  ev.Position,
		Modifiers: ev.Modifiers,
	}

	switch {
	case ev.Button.IsScroll():
		g.Kind = GestureWheel
		g.WheelX, g.WheelY = h.wheel(ev.Button)
		if ev.Modifiers.HasShift() && g.WheelX == 0 {
			g.WheelX, g.WheelY = g.WheelY, 0
		}

	case ev.Button == ButtonNone:
		if !h.drag.isActive() {
			return Gesture{}
		}
		g.Kind = GestureRelease
		g.Button = h.drag.button
		g.Start = h.drag.startPos
		h.drag.end()

	case h.drag.isActive() && h.drag.button == ev.Button:
		if ev.Position == h.drag.currentPos {
			return Gesture{}
		}
		h.drag.update(ev.Position)
		g.Kind = GestureDrag
		g.Start = h.drag.startPos

	default:
		h.drag.start(ev.Position, ev.Button)
		g.Kind = GesturePress
		g.Start = ev.Position
		g.Clicks = h.click.recordClick(ev.Position, ev.Timestamp)
	}
	return g
}

// Dragging returns true while a button is held.
func (h *Handler) Dragging() bool {
	return h.drag.isActive()
}

// Reset clears press and click state.
func (h *Handler) Reset() {
	h.drag.end()
	h.click.reset()
}

func (h *Handler) wheel(b Button) (x, y float64) {
	d := h.config.WheelDelta
	switch b {
	case ButtonScrollUp:
		return 0, -d
	case ButtonScrollDown:
		return 0, d
	case ButtonScrollLeft:
		return -d, 0
	case ButtonScrollRight:
		return d, 0
	}
	return 0, 0
}

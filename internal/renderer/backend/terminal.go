// Package backend adapts a tcell screen to gridview's input types.
package backend

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/gridview/internal/input/key"
	"github.com/dshills/gridview/internal/input/mouse"
)

// EventType identifies the type of terminal event.
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventInterrupt
	// EventClosed is returned once the screen has been shut down.
	EventClosed
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventMouse:
		return "mouse"
	case EventResize:
		return "resize"
	case EventInterrupt:
		return "interrupt"
	case EventClosed:
		return "closed"
	default:
		return "none"
	}
}

// Event is a terminal event converted to gridview types.
type Event struct {
	Type EventType

	Key   key.Event
	Mouse mouse.Event

	// Width and Height are set for EventResize.
	Width, Height int

	// Data is the payload of an EventInterrupt.
	Data any
}

// Terminal wraps a tcell screen.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// NewTerminal creates a terminal on the controlling tty.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, such as a simulation
// screen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Init initializes the screen with mouse reporting on and the cursor hidden.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.HideCursor()
	return nil
}

// Shutdown restores the terminal. A blocked PollEvent returns EventClosed.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

// Screen returns the underlying screen for drawing.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Size returns the screen dimensions.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

// Beep rings the terminal bell.
func (t *Terminal) Beep() {
	_ = t.screen.Beep()
}

// PollEvent blocks for the next event.
func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventClosed}
	}
	return convertEvent(ev)
}

// PostInterrupt wakes PollEvent with an EventInterrupt carrying data.
// It is safe to call from any goroutine.
func (t *Terminal) PostInterrupt(data any) error {
	return t.screen.PostEvent(tcell.NewEventInterrupt(data))
}

func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{Type: EventKey, Key: convertKeyEvent(e)}

	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type: EventMouse,
			Mouse: mouse.Event{
				Position:  mouse.Position{X: x, Y: y},
				Button:    convertMouseButton(e.Buttons()),
				Modifiers: convertMod(e.Modifiers()),
				Timestamp: when(e.When()),
			},
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt, Data: e.Data()}

	default:
		return Event{Type: EventNone}
	}
}

func when(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

// convertKeyEvent maps a tcell key event. Control letters arrive as
// KeyCtrlA..KeyCtrlZ and become runes with ModCtrl; Tab, Enter and
// Backspace share codes with Ctrl+I, Ctrl+M and Ctrl+H and win.
func convertKeyEvent(e *tcell.EventKey) key.Event {
	mods := convertMod(e.Modifiers())
	k := e.Key()

	if k == tcell.KeyRune {
		return key.NewRuneEvent(e.Rune(), mods)
	}
	if special := convertKey(k); special != key.KeyNone {
		return key.NewSpecialEvent(special, mods)
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.NewRuneEvent(rune('a'+int(k-tcell.KeyCtrlA)), mods.With(key.ModCtrl))
	}
	return key.Event{}
}

// convertKey converts a tcell key to a special key, or KeyNone.
func convertKey(k tcell.Key) key.Key {
	switch k {
	case tcell.KeyEscape:
		return key.KeyEscape
	case tcell.KeyEnter:
		return key.KeyEnter
	case tcell.KeyTab:
		return key.KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.KeyBackspace
	case tcell.KeyDelete:
		return key.KeyDelete
	case tcell.KeyHome:
		return key.KeyHome
	case tcell.KeyEnd:
		return key.KeyEnd
	case tcell.KeyPgUp:
		return key.KeyPageUp
	case tcell.KeyPgDn:
		return key.KeyPageDown
	case tcell.KeyUp:
		return key.KeyUp
	case tcell.KeyDown:
		return key.KeyDown
	case tcell.KeyLeft:
		return key.KeyLeft
	case tcell.KeyRight:
		return key.KeyRight
	default:
		return key.KeyNone
	}
}

// convertMod converts a tcell modifier mask.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}

// convertMouseButton converts a tcell button mask to the first button held.
func convertMouseButton(b tcell.ButtonMask) mouse.Button {
	switch {
	case b&tcell.Button1 != 0:
		return mouse.ButtonLeft
	case b&tcell.Button2 != 0:
		return mouse.ButtonRight
	case b&tcell.Button3 != 0:
		return mouse.ButtonMiddle
	case b&tcell.WheelUp != 0:
		return mouse.ButtonScrollUp
	case b&tcell.WheelDown != 0:
		return mouse.ButtonScrollDown
	case b&tcell.WheelLeft != 0:
		return mouse.ButtonScrollLeft
	case b&tcell.WheelRight != 0:
		return mouse.ButtonScrollRight
	default:
		return mouse.ButtonNone
	}
}

package mouse

// dragTracker tracks the button held between press and release.
type dragTracker struct {
	active     bool
	button     Button
	startPos   Position
	currentPos Position
}

func newDragTracker() *dragTracker {
	return &dragTracker{}
}

func (t *dragTracker) start(pos Position, button Button) {
	t.active = true
	t.button = button
	t.startPos = pos
	t.currentPos = pos
}

func (t *dragTracker) update(pos Position) {
	if t.active {
		t.currentPos = pos
	}
}

func (t *dragTracker) end() {
	*t = dragTracker{}
}

func (t *dragTracker) isActive() bool {
	return t.active
}

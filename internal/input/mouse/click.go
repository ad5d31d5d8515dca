package mouse

import "time"

// maxClicks is the longest click run reported; a fourth click starts over.
const maxClicks = 3

// clickTracker counts presses that land close together in time and space.
type clickTracker struct {
	window time.Duration
	radius int

	pos   Position
	at    time.Time
	count int
}

func newClickTracker(window time.Duration, radius int) *clickTracker {
	return &clickTracker{window: window, radius: radius}
}

// recordClick registers a press and returns its position in the current
// run, from 1 to maxClicks.
func (t *clickTracker) recordClick(pos Position, at time.Time) int {
	if at.IsZero() {
		at = time.Now()
	}
	if t.continues(pos, at) && t.count < maxClicks {
		t.count++
	} else {
		t.count = 1
	}
	t.pos, t.at = pos, at
	return t.count
}

// continues reports whether a press at pos and at extends the run. A
// timestamp earlier than the previous one never does.
func (t *clickTracker) continues(pos Position, at time.Time) bool {
	if t.count == 0 {
		return false
	}
	gap := at.Sub(t.at)
	return gap >= 0 && gap <= t.window && pos.Distance(t.pos) <= t.radius
}

func (t *clickTracker) reset() {
	t.pos, t.at, t.count = Position{}, time.Time{}, 0
}

// Package mouse turns raw terminal mouse reports into gestures.
//
// Terminals report mouse state, not transitions: each report carries the
// position and the buttons currently held. Handler tracks that state and
// emits press, drag, release and wheel gestures with click counts, which
// the application maps onto table regions (rows, scrollbar thumbs).
package mouse

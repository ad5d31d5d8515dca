package renderer

import "github.com/gdamore/tcell/v2"

// Theme holds the styles used for each screen element.
type Theme struct {
	Header   tcell.Style
	Row      tcell.Style
	Selected tcell.Style
	Track    tcell.Style
	Thumb    tcell.Style
	Status   tcell.Style
	Prompt   tcell.Style
	Error    tcell.Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	base := tcell.StyleDefault
	return Theme{
		Header:   base.Bold(true).Underline(true),
		Row:      base,
		Selected: base.Reverse(true),
		Track:    base.Foreground(tcell.ColorGray),
		Thumb:    base.Foreground(tcell.ColorWhite),
		Status:   base.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite),
		Prompt:   base.Background(tcell.ColorDarkGreen).Foreground(tcell.ColorWhite),
		Error:    base.Background(tcell.ColorMaroon).Foreground(tcell.ColorWhite),
	}
}

// Scrollbar glyphs.
const (
	vTrackRune = '│'
	hTrackRune = '─'
	thumbRune  = '█'
)

// Sort indicators appended to the sorted column's title.
const (
	ascIndicator  = " ▲"
	descIndicator = " ▼"
)

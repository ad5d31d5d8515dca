package keymap

// Action names understood by the application.
const (
	ActionQuit           = "app.quit"
	ActionSearchPrompt   = "search.prompt"
	ActionSearchClear    = "search.clear"
	ActionSortColumn     = "sort.column" // Args: "column", 1-based
	ActionSortClear      = "sort.clear"
	ActionSortAlgorithm  = "sort.nextAlgorithm"
	ActionScrollUp       = "scroll.up"
	ActionScrollDown     = "scroll.down"
	ActionPageUp         = "scroll.pageUp"
	ActionPageDown       = "scroll.pageDown"
	ActionScrollTop      = "scroll.top"
	ActionScrollBottom   = "scroll.bottom"
	ActionPanLeft        = "pan.left"
	ActionPanRight       = "pan.right"
	ActionSelectionClear = "selection.clear"
	ActionRedraw         = "app.redraw"
)

var actions = map[string]struct{}{
	ActionQuit:           {},
	ActionSearchPrompt:   {},
	ActionSearchClear:    {},
	ActionSortColumn:     {},
	ActionSortClear:      {},
	ActionSortAlgorithm:  {},
	ActionScrollUp:       {},
	ActionScrollDown:     {},
	ActionPageUp:         {},
	ActionPageDown:       {},
	ActionScrollTop:      {},
	ActionScrollBottom:   {},
	ActionPanLeft:        {},
	ActionPanRight:       {},
	ActionSelectionClear: {},
	ActionRedraw:         {},
}

// IsAction reports whether name is a known action.
func IsAction(name string) bool {
	_, ok := actions[name]
	return ok
}

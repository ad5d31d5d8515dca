package keymap

import "strconv"

// Default returns the built-in bindings.
func Default() *Keymap {
	km := &Keymap{
		Name:   "default",
		Source: "default",
		Bindings: []Binding{
			{Keys: "q", Action: ActionQuit, Description: "Quit", Category: "Application"},
			{Keys: "Ctrl+c", Action: ActionQuit, Description: "Quit", Category: "Application"},
			{Keys: "Ctrl+l", Action: ActionRedraw, Description: "Redraw", Category: "Application"},

			{Keys: "/", Action: ActionSearchPrompt, Description: "Search", Category: "Search"},
			{Keys: "Esc", Action: ActionSearchClear, Description: "Clear search", Category: "Search"},

			{Keys: "0", Action: ActionSortClear, Description: "Clear sort", Category: "Sort"},
			{Keys: "a", Action: ActionSortAlgorithm, Description: "Switch sort algorithm", Category: "Sort"},

			{Keys: "Up", Action: ActionScrollUp, Description: "Scroll up", Category: "Scroll"},
			{Keys: "k", Action: ActionScrollUp, Description: "Scroll up", Category: "Scroll"},
			{Keys: "Down", Action: ActionScrollDown, Description: "Scroll down", Category: "Scroll"},
			{Keys: "j", Action: ActionScrollDown, Description: "Scroll down", Category: "Scroll"},
			{Keys: "PgUp", Action: ActionPageUp, Description: "Page up", Category: "Scroll"},
			{Keys: "PgDn", Action: ActionPageDown, Description: "Page down", Category: "Scroll"},
			{Keys: "Space", Action: ActionPageDown, Description: "Page down", Category: "Scroll"},
			{Keys: "Home", Action: ActionScrollTop, Description: "First row", Category: "Scroll"},
			{Keys: "g", Action: ActionScrollTop, Description: "First row", Category: "Scroll"},
			{Keys: "End", Action: ActionScrollBottom, Description: "Last row", Category: "Scroll"},
			{Keys: "G", Action: ActionScrollBottom, Description: "Last row", Category: "Scroll"},

			{Keys: "Left", Action: ActionPanLeft, Description: "Pan left", Category: "Scroll"},
			{Keys: "h", Action: ActionPanLeft, Description: "Pan left", Category: "Scroll"},
			{Keys: "Right", Action: ActionPanRight, Description: "Pan right", Category: "Scroll"},
			{Keys: "l", Action: ActionPanRight, Description: "Pan right", Category: "Scroll"},

			{Keys: "c", Action: ActionSelectionClear, Description: "Clear selection", Category: "Selection"},
		},
	}

	for i := 1; i <= 9; i++ {
		km.AddBinding(NewBinding(strconv.Itoa(i), ActionSortColumn).
			WithArgs(map[string]any{"column": i}).
			WithDescription("Sort by column " + strconv.Itoa(i)).
			WithCategory("Sort"))
	}
	return km
}

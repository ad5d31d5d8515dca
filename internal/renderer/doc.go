// Package renderer draws a table onto a tcell screen.
//
// The screen is split into five regions:
//
//	+--------------------------------+-+
//	| header                         | |
//	| body (one line per row)        |v|
//	|                                | |
//	+--------------------------------+-+
//	| horizontal scrollbar           | |
//	| status line / search prompt      |
//	+----------------------------------+
//
// The renderer only paints. It is handed a Frame built from the table's
// visible window, selection and scroll geometry, and it answers hit tests
// so the caller can route mouse input back into the table. Display
// transforms named by the schema are applied here and nowhere else.
package renderer

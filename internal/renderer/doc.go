// Package renderer draws a formatted richtext document to a terminal.
//
// Rendering happens in two steps:
//
//	┌─────────────────────────────────────────┐
//	│  Layout: document + spans → Rows        │  grapheme clusters, wrapping,
//	│                                         │  line prefixes, caret cell
//	├─────────────────────────────────────────┤
//	│  Renderer: Rows → tcell.Screen          │  theme styles, cursor
//	└─────────────────────────────────────────┘
//
// Character attributes map onto terminal attributes (bold, italic,
// underline, strikethrough). Line attributes change the row: headlines are
// bold and colored, lists get a bullet or a running number, quotes get a
// bar, code blocks get a background and dividers become a horizontal rule.
//
// Usage:
//
//	screen, _ := tcell.NewScreen()
//	theme, _ := renderer.NewTheme(cfg.Render)
//	r := renderer.New(screen, theme)
//	r.Draw(editor)
package renderer

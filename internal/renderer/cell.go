package renderer

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Cell is one grapheme cluster placed on screen.
type Cell struct {
	// Str is the grapheme cluster.
	Str string

	// Width is the display width: 1 for most clusters, 2 for wide ones.
	Width int

	// Style is the terminal style of the cell.
	Style tcell.Style

	// Offset is the rune offset of the cluster in the document, or -1 for
	// decoration such as bullets and rules.
	Offset int
}

// IsDecoration reports whether the cell was generated by the renderer
// rather than taken from the document.
func (c Cell) IsDecoration() bool {
	return c.Offset < 0
}

// Row is one screen row of laid out cells.
type Row struct {
	Cells []Cell

	// Fill styles the columns right of the last cell when Filled is set.
	Fill   tcell.Style
	Filled bool
}

// Width returns the display width of the row.
func (r Row) Width() int {
	w := 0
	for _, c := range r.Cells {
		w += c.Width
	}
	return w
}

// String returns the row text, decoration included.
func (r Row) String() string {
	var b strings.Builder
	for _, c := range r.Cells {
		b.WriteString(c.Str)
	}
	return b.String()
}

package renderer

import (
	"github.com/gdamore/tcell/v2"
)

// Renderer draws documents to a tcell screen.
type Renderer struct {
	screen tcell.Screen
	theme  Theme

	// Maximum text width; 0 uses the full screen width.
	width int

	// First layout row shown.
	top int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth limits the text width. Rows wrap at min(width, screen width).
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
	}
}

// New creates a renderer drawing to an initialized screen.
func New(screen tcell.Screen, theme Theme, opts ...Option) *Renderer {
	r := &Renderer{screen: screen, theme: theme}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Theme returns the renderer's theme.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// SetTheme replaces the theme used by the next Draw.
func (r *Renderer) SetTheme(t Theme) {
	r.theme = t
}

// textWidth returns the wrap width for the current screen size.
func (r *Renderer) textWidth() int {
	w, _ := r.screen.Size()
	if r.width > 0 && r.width < w {
		return r.width
	}
	return w
}

// Draw lays doc out, draws it and shows the screen. The view scrolls
// vertically to keep the caret visible.
func (r *Renderer) Draw(doc Document) Layout {
	width := r.textWidth()
	_, height := r.screen.Size()
	l := LayoutDocument(doc, width, r.theme)

	r.scrollTo(l, height)

	r.screen.Clear()
	for y := 0; y < height && r.top+y < len(l.Rows); y++ {
		row := l.Rows[r.top+y]
		x := 0
		for _, c := range row.Cells {
			runes := []rune(c.Str)
			if len(runes) == 0 {
				continue
			}
			r.screen.SetContent(x, y, runes[0], runes[1:], c.Style)
			x += c.Width
		}
		if row.Filled {
			for ; x < width; x++ {
				r.screen.SetContent(x, y, ' ', nil, row.Fill)
			}
		}
	}

	if l.HasCursor && l.CursorY >= r.top && l.CursorY < r.top+height {
		r.screen.ShowCursor(l.CursorX, l.CursorY-r.top)
	} else {
		r.screen.HideCursor()
	}
	r.screen.Show()
	return l
}

func (r *Renderer) scrollTo(l Layout, height int) {
	if !l.HasCursor || height < 1 {
		return
	}
	if l.CursorY < r.top {
		r.top = l.CursorY
	}
	if l.CursorY >= r.top+height {
		r.top = l.CursorY - height + 1
	}
	if r.top > len(l.Rows)-1 {
		r.top = max(len(l.Rows)-1, 0)
	}
}

// Preview draws doc and redraws on resize until a key is pressed or the
// screen is finalized.
func (r *Renderer) Preview(doc Document) {
	r.Draw(doc)
	for {
		switch r.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			r.screen.Sync()
			r.Draw(doc)
		case *tcell.EventKey:
			return
		}
	}
}

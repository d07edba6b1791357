package renderer

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/richtext/internal/engine"
	"github.com/dshills/richtext/internal/engine/attr"
)

// Document is the read surface the renderer needs. *engine.Editor
// implements it.
type Document interface {
	Text() string
	Spans() []engine.Span
	LineKindAt(offset int) engine.Kind
	Placeholder() string
	Selection() (start, end int)
}

var _ Document = (*engine.Editor)(nil)

// Decoration glyphs.
const (
	bulletPrefix = "• "
	quotePrefix  = "│ "
	codePrefix   = "  "
	ruleGlyph    = "─"
)

// Layout is a document laid out into screen rows.
type Layout struct {
	Rows []Row

	// Cursor is the cell of the caret (the selection end).
	CursorX, CursorY int
	HasCursor        bool
}

// String returns the rows joined by newlines with trailing spaces removed.
func (l Layout) String() string {
	lines := make([]string, len(l.Rows))
	for i, row := range l.Rows {
		lines[i] = strings.TrimRight(row.String(), " ")
	}
	return strings.Join(lines, "\n")
}

// LayoutDocument lays doc out into rows at most width cells wide. A width
// below 1 disables wrapping.
func LayoutDocument(doc Document, width int, theme Theme) Layout {
	text := []rune(doc.Text())
	_, caret := doc.Selection()

	lb := &layoutBuilder{width: width, theme: theme, caret: caret}

	if len(text) == 0 {
		lb.placeholder(doc.Placeholder())
		return lb.out
	}

	chars := charSets(doc.Spans(), len(text))

	ordinal := 0
	start := 0
	for {
		end := start
		for end < len(text) && text[end] != '\n' {
			end++
		}

		kind := doc.LineKindAt(start)
		if kind == attr.ListOrdered {
			ordinal++
		} else {
			ordinal = 0
		}
		lb.line(text[start:end], start, kind, ordinal, chars)

		if end >= len(text) {
			break
		}
		start = end + 1
	}
	return lb.out
}

// charSets returns the character attributes active at every rune.
func charSets(spans []engine.Span, n int) []attr.Set {
	sets := make([]attr.Set, n)
	for _, sp := range spans {
		if !sp.Kind.IsChar() {
			continue
		}
		for p := max(sp.Start, 0); p < min(sp.End, n); p++ {
			sets[p] = sets[p].With(sp.Kind)
		}
	}
	return sets
}

type layoutBuilder struct {
	width int
	theme Theme
	caret int
	out   Layout

	// Current row state.
	row    Row
	col    int
	indent []Cell
}

func (lb *layoutBuilder) placeholder(text string) {
	lb.startRow(Row{})
	lb.setCursor()
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		lb.put(Cell{Str: g.Str(), Width: g.Width(), Style: lb.theme.Placeholder, Offset: -1})
	}
	lb.flush()
}

func (lb *layoutBuilder) line(text []rune, start int, kind attr.Kind, ordinal int, chars []attr.Set) {
	base := lb.theme.Text
	var prefix []Cell
	var proto Row

	switch kind {
	case attr.Divider:
		lb.rule(start, start+len(text))
		return
	case attr.Headline1:
		base = lb.theme.Headline.Underline(true)
	case attr.Headline2, attr.Headline3:
		base = lb.theme.Headline
	case attr.ListBullet:
		prefix = decoration(bulletPrefix, lb.theme.Bullet)
	case attr.ListOrdered:
		prefix = decoration(strconv.Itoa(ordinal)+". ", lb.theme.Bullet)
	case attr.Quote:
		base = lb.theme.Quote
		prefix = decoration(quotePrefix, lb.theme.QuoteBar)
	case attr.CodeBlock:
		base = lb.theme.Code
		prefix = decoration(codePrefix, lb.theme.Code)
		proto = Row{Fill: lb.theme.Code, Filled: true}
	}

	lb.startRow(proto)
	for _, c := range prefix {
		lb.put(c)
	}
	lb.indent = blanks(prefix)
	if kind == attr.Quote {
		lb.indent = prefix
	}

	offset := start
	g := uniseg.NewGraphemes(string(text))
	for g.Next() {
		n := len(g.Runes())
		w := g.Width()
		if w > 0 && lb.width > 0 && lb.col+w > lb.width && lb.col > len(lb.indent) {
			lb.flush()
			lb.startRow(proto)
			for _, c := range lb.indent {
				lb.put(c)
			}
		}
		if lb.caret >= offset && lb.caret < offset+n {
			lb.setCursor()
		}
		if w > 0 {
			lb.put(Cell{Str: g.Str(), Width: w, Style: charStyle(base, chars[offset]), Offset: offset})
		}
		offset += n
	}
	if lb.caret == offset {
		lb.setCursor()
	}
	lb.flush()
}

// rule draws a divider line spanning the row.
func (lb *layoutBuilder) rule(start, end int) {
	lb.startRow(Row{})
	if lb.caret >= start && lb.caret <= end {
		lb.setCursor()
	}
	n := lb.width
	if n < 1 {
		n = 3
	}
	for i := 0; i < n; i++ {
		lb.put(Cell{Str: ruleGlyph, Width: 1, Style: lb.theme.Divider, Offset: -1})
	}
	lb.flush()
}

func (lb *layoutBuilder) startRow(proto Row) {
	lb.row = Row{Fill: proto.Fill, Filled: proto.Filled}
	lb.col = 0
}

func (lb *layoutBuilder) put(c Cell) {
	lb.row.Cells = append(lb.row.Cells, c)
	lb.col += c.Width
}

func (lb *layoutBuilder) setCursor() {
	x := lb.col
	if lb.width > 0 && x >= lb.width {
		x = lb.width - 1
	}
	lb.out.CursorX = x
	lb.out.CursorY = len(lb.out.Rows)
	lb.out.HasCursor = true
}

func (lb *layoutBuilder) flush() {
	lb.out.Rows = append(lb.out.Rows, lb.row)
	lb.row = Row{}
	lb.col = 0
}

func decoration(s string, style tcell.Style) []Cell {
	var cells []Cell
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cells = append(cells, Cell{Str: g.Str(), Width: g.Width(), Style: style, Offset: -1})
	}
	return cells
}

// blanks returns a continuation indent as wide as prefix.
func blanks(prefix []Cell) []Cell {
	out := make([]Cell, 0, len(prefix))
	for _, c := range prefix {
		for i := 0; i < c.Width; i++ {
			out = append(out, Cell{Str: " ", Width: 1, Style: c.Style, Offset: -1})
		}
	}
	return out
}

// charStyle applies character attributes to a line style.
func charStyle(base tcell.Style, set attr.Set) tcell.Style {
	if set.Has(attr.Bold) || set.Has(attr.BoldItalic) {
		base = base.Bold(true)
	}
	if set.Has(attr.Italic) || set.Has(attr.BoldItalic) {
		base = base.Italic(true)
	}
	if set.Has(attr.Underline) {
		base = base.Underline(true)
	}
	if set.Has(attr.Strikethrough) {
		base = base.StrikeThrough(true)
	}
	return base
}

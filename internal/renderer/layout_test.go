package renderer

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/dshills/richtext/internal/engine"
	"github.com/dshills/richtext/internal/engine/attr"
)

type fakeDoc struct {
	text        string
	spans       []engine.Span
	lines       map[int]engine.Kind
	placeholder string
	selStart    int
	selEnd      int
}

func (d *fakeDoc) Text() string                     { return d.text }
func (d *fakeDoc) Spans() []engine.Span             { return d.spans }
func (d *fakeDoc) LineKindAt(offset int) engine.Kind { return d.lines[offset] }
func (d *fakeDoc) Placeholder() string              { return d.placeholder }
func (d *fakeDoc) Selection() (int, int)            { return d.selStart, d.selEnd }

func TestLayoutDocument_Text(t *testing.T) {
	tests := []struct {
		name  string
		doc   *fakeDoc
		width int
		want  string
	}{
		{
			name:  "plain",
			doc:   &fakeDoc{text: "one\ntwo"},
			width: 20,
			want:  "one\ntwo",
		},
		{
			name:  "wraps at width",
			doc:   &fakeDoc{text: "hello world"},
			width: 5,
			want:  "hello\n worl\nd",
		},
		{
			name:  "no wrap below 1",
			doc:   &fakeDoc{text: "hello world"},
			width: 0,
			want:  "hello world",
		},
		{
			name:  "trailing newline opens an empty line",
			doc:   &fakeDoc{text: "a\n"},
			width: 10,
			want:  "a\n",
		},
		{
			name: "lists",
			doc: &fakeDoc{
				text:  "a\nb\nc\nd",
				lines: map[int]engine.Kind{0: attr.ListBullet, 2: attr.ListOrdered, 4: attr.ListOrdered},
			},
			width: 10,
			want:  "• a\n1. b\n2. c\nd",
		},
		{
			name: "ordered numbering restarts",
			doc: &fakeDoc{
				text:  "a\nb\nc",
				lines: map[int]engine.Kind{0: attr.ListOrdered, 4: attr.ListOrdered},
			},
			width: 10,
			want:  "1. a\nb\n1. c",
		},
		{
			name: "quote keeps its bar when wrapping",
			doc: &fakeDoc{
				text:  "abcdef",
				lines: map[int]engine.Kind{0: attr.Quote},
			},
			width: 5,
			want:  "│ abc\n│ def",
		},
		{
			name: "bullet continuation is indented",
			doc: &fakeDoc{
				text:  "abcdef",
				lines: map[int]engine.Kind{0: attr.ListBullet},
			},
			width: 5,
			want:  "• abc\n  def",
		},
		{
			name: "divider",
			doc: &fakeDoc{
				text:  "x\n" + engine.DividerText + "\n",
				lines: map[int]engine.Kind{2: attr.Divider},
			},
			width: 4,
			want:  "x\n────\n",
		},
		{
			name:  "wide characters",
			doc:   &fakeDoc{text: "日本"},
			width: 3,
			want:  "日\n本",
		},
		{
			name:  "placeholder",
			doc:   &fakeDoc{placeholder: "Type here"},
			width: 20,
			want:  "Type here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LayoutDocument(tt.doc, tt.width, DefaultTheme()).String()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("layout mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLayoutDocument_Cursor(t *testing.T) {
	tests := []struct {
		name  string
		doc   *fakeDoc
		width int
		x, y  int
	}{
		{"start", &fakeDoc{text: "abc"}, 10, 0, 0},
		{"second line", &fakeDoc{text: "abc\ndef", selStart: 5, selEnd: 5}, 10, 1, 1},
		{"end of line", &fakeDoc{text: "abc\ndef", selStart: 3, selEnd: 3}, 10, 3, 0},
		{"range uses end", &fakeDoc{text: "abc\ndef", selStart: 0, selEnd: 7}, 10, 3, 1},
		{"after prefix", &fakeDoc{text: "ab", lines: map[int]engine.Kind{0: attr.ListBullet}, selStart: 1, selEnd: 1}, 10, 3, 0},
		{"wrapped", &fakeDoc{text: "abcdef", selStart: 4, selEnd: 4}, 3, 1, 1},
		{"empty trailing line", &fakeDoc{text: "a\n", selStart: 2, selEnd: 2}, 10, 0, 1},
		{"placeholder", &fakeDoc{placeholder: "p"}, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := LayoutDocument(tt.doc, tt.width, DefaultTheme())
			if !l.HasCursor {
				t.Fatal("expected a cursor")
			}
			if l.CursorX != tt.x || l.CursorY != tt.y {
				t.Errorf("expected cursor (%d,%d), got (%d,%d)", tt.x, tt.y, l.CursorX, l.CursorY)
			}
		})
	}
}

func TestLayoutDocument_CharStyles(t *testing.T) {
	doc := &fakeDoc{
		text: "abcd",
		spans: []engine.Span{
			{Kind: attr.Bold, Start: 0, End: 1},
			{Kind: attr.BoldItalic, Start: 1, End: 2},
			{Kind: attr.Strikethrough, Start: 2, End: 3},
		},
	}

	l := LayoutDocument(doc, 10, DefaultTheme())
	cells := l.Rows[0].Cells
	if len(cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(cells))
	}

	tests := []struct {
		idx  int
		want tcell.AttrMask
	}{
		{0, tcell.AttrBold},
		{1, tcell.AttrBold | tcell.AttrItalic},
		{2, tcell.AttrStrikeThrough},
		{3, 0},
	}
	for _, tt := range tests {
		_, _, attrs := cells[tt.idx].Style.Decompose()
		mask := attrs & (tcell.AttrBold | tcell.AttrItalic | tcell.AttrStrikeThrough)
		if mask != tt.want {
			t.Errorf("cell %d: expected attrs %v, got %v", tt.idx, tt.want, mask)
		}
		if cells[tt.idx].Offset != tt.idx {
			t.Errorf("cell %d: expected offset %d, got %d", tt.idx, tt.idx, cells[tt.idx].Offset)
		}
	}
}

func TestLayoutDocument_LineStyles(t *testing.T) {
	theme := DefaultTheme()
	doc := &fakeDoc{
		text:  "h\nq\nc",
		lines: map[int]engine.Kind{0: attr.Headline2, 2: attr.Quote, 4: attr.CodeBlock},
	}

	l := LayoutDocument(doc, 10, theme)
	if len(l.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(l.Rows))
	}

	if got := l.Rows[0].Cells[0].Style; got != theme.Headline {
		t.Errorf("headline: expected headline style, got %v", got)
	}

	quote := l.Rows[1]
	if !quote.Cells[0].IsDecoration() || quote.Cells[0].Style != theme.QuoteBar {
		t.Error("quote: expected a decorated bar cell")
	}
	if quote.Cells[2].Style != theme.Quote {
		t.Error("quote: expected quote style on text")
	}

	code := l.Rows[2]
	if !code.Filled || code.Fill != theme.Code {
		t.Error("code: expected row filled with the code style")
	}
	if code.Cells[2].Style != theme.Code {
		t.Error("code: expected code style on text")
	}
}

func TestLayoutDocument_PlaceholderStyle(t *testing.T) {
	theme := DefaultTheme()
	l := LayoutDocument(&fakeDoc{placeholder: "hi"}, 10, theme)
	for i, c := range l.Rows[0].Cells {
		if c.Style != theme.Placeholder {
			t.Errorf("cell %d: expected placeholder style", i)
		}
		if !c.IsDecoration() {
			t.Errorf("cell %d: placeholder cells are not document content", i)
		}
	}
}

func TestLayoutDocument_Editor(t *testing.T) {
	ed := engine.New(engine.WithContent("Title\nbody"))
	if err := ed.SetTextType(attr.Headline1); err != nil {
		t.Fatal(err)
	}
	ed.UpdateSelection(6, 10)
	if err := ed.ToggleTextStyle(attr.Bold); err != nil {
		t.Fatal(err)
	}

	l := LayoutDocument(ed, 20, DefaultTheme())
	if got := l.String(); got != "Title\nbody" {
		t.Fatalf("expected %q, got %q", "Title\nbody", got)
	}

	_, _, head := l.Rows[0].Cells[0].Style.Decompose()
	if head&tcell.AttrBold == 0 {
		t.Error("expected bold headline")
	}
	_, _, body := l.Rows[1].Cells[0].Style.Decompose()
	if body&tcell.AttrBold == 0 {
		t.Error("expected bold body text")
	}
	if l.CursorX != 4 || l.CursorY != 1 {
		t.Errorf("expected cursor (4,1), got (%d,%d)", l.CursorX, l.CursorY)
	}
}

func TestRowWidth(t *testing.T) {
	row := Row{Cells: []Cell{{Str: "a", Width: 1}, {Str: "日", Width: 2}}}
	if row.Width() != 3 {
		t.Errorf("expected width 3, got %d", row.Width())
	}
	if row.String() != "a日" {
		t.Errorf("expected %q, got %q", "a日", row.String())
	}
}

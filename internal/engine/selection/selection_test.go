package selection

import (
	"testing"

	"github.com/dshills/richtext/internal/engine/attr"
	"github.com/dshills/richtext/internal/engine/document"
	"github.com/dshills/richtext/internal/engine/span"
)

func newInspector(text string, spans ...span.Span) *Inspector {
	doc := document.NewFromString(text)
	store := span.NewStore(span.WithLength(doc.Len()))
	for _, sp := range spans {
		store.Add(sp)
	}
	return NewInspector(store, doc)
}

func TestStatusCaretVersusRange(t *testing.T) {
	in := newInspector("0123456789abcdef", span.New(attr.Bold, 5, 10))

	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"caret inside", 7, 7, true},
		{"caret just after start", 6, 6, true},
		{"caret at start boundary", 5, 5, false},
		{"caret at end boundary", 10, 10, false},
		{"caret past span", 12, 12, false},
		{"exact range", 5, 10, true},
		{"inner range", 6, 8, true},
		{"range one before", 4, 10, false},
		{"range one after", 5, 11, false},
		{"reversed exact range", 10, 5, true},
	}
	for _, tt := range tests {
		st := in.Status(tt.start, tt.end)
		if got := st.IsActive(attr.Bold); got != tt.want {
			t.Errorf("%s: status(%d,%d) bold = %v, expected %v", tt.name, tt.start, tt.end, got, tt.want)
		}
	}
}

func TestStatusCaretAtDocumentStart(t *testing.T) {
	in := newInspector("hello", span.New(attr.Bold, 0, 5), span.New(attr.Headline1, 0, 5))
	st := in.Status(0, 0)
	for kind, on := range st.Active {
		if on {
			t.Errorf("expected %s inactive at offset 0", kind)
		}
	}
	if st.UniqueStyle != "" {
		t.Errorf("expected empty style, got %q", st.UniqueStyle)
	}
}

func TestStatusLineKindsAtCaret(t *testing.T) {
	in := newInspector("Title\nbody\n", span.New(attr.Headline2, 0, 6))

	tests := []struct {
		offset int
		want   bool
	}{
		{3, true},
		{5, true},
		{6, false},
		{8, false},
		{11, false},
	}
	for _, tt := range tests {
		st := in.Status(tt.offset, tt.offset)
		if got := st.IsActive(attr.Headline2); got != tt.want {
			t.Errorf("caret %d: headline2 = %v, expected %v", tt.offset, got, tt.want)
		}
	}
}

func TestStatusBoldItalic(t *testing.T) {
	in := newInspector("hello world", span.New(attr.BoldItalic, 0, 11))
	st := in.Status(2, 4)
	if !st.IsActive(attr.Bold) || !st.IsActive(attr.Italic) {
		t.Error("expected boldItalic to report bold and italic")
	}
	if st.UniqueStyle != "bold" {
		t.Errorf("expected bold, got %q", st.UniqueStyle)
	}
}

func TestUniqueStylePrecedence(t *testing.T) {
	tests := []struct {
		name   string
		active []attr.Kind
		want   string
	}{
		{"none", nil, ""},
		{"headline wins", []attr.Kind{attr.Bold, attr.Headline3}, "header3"},
		{"headline2 keeps its name", []attr.Kind{attr.Headline2}, "header2"},
		{"list before quote", []attr.Kind{attr.Quote, attr.ListBullet}, "list-bullet"},
		{"ordered before code", []attr.Kind{attr.CodeBlock, attr.ListOrdered}, "list-ordered"},
		{"bold before italic", []attr.Kind{attr.Italic, attr.Bold}, "bold"},
		{"underline before strike", []attr.Kind{attr.Strikethrough, attr.Underline}, "underline"},
		{"divider ignored", []attr.Kind{attr.Divider}, ""},
	}
	for _, tt := range tests {
		active := make(map[attr.Kind]bool)
		for _, k := range tt.active {
			active[k] = true
		}
		if got := UniqueStyle(active); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestFields(t *testing.T) {
	in := newInspector("quoted line", span.New(attr.Quote, 0, 11), span.New(attr.Underline, 0, 6))
	f := in.Status(1, 4).Fields()

	if len(f) != len(FieldNames()) {
		t.Errorf("expected %d fields, got %d", len(FieldNames()), len(f))
	}
	if f[FieldSelStart] != 1 || f[FieldSelEnd] != 4 {
		t.Errorf("unexpected selection bounds %v %v", f[FieldSelStart], f[FieldSelEnd])
	}
	if f[FieldIsQuote] != true || f[FieldIsUnderline] != true || f[FieldIsBold] != false {
		t.Errorf("unexpected flags %v", f)
	}
	if f[FieldStyle] != "blockquote" {
		t.Errorf("expected blockquote, got %v", f[FieldStyle])
	}
}

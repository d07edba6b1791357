package document

import "testing"

func TestReplace(t *testing.T) {
	tests := []struct {
		name       string
		initial    string
		start, end int
		text       string
		want       string
		typ        ChangeType
		oldText    string
	}{
		{"insert", "hello", 5, 5, " world", "hello world", ChangeInsert, ""},
		{"insert front", "world", 0, 0, "hello ", "hello world", ChangeInsert, ""},
		{"delete", "hello world", 5, 11, "", "hello", ChangeDelete, " world"},
		{"replace", "hello world", 6, 11, "there", "hello there", ChangeReplace, "world"},
		{"reversed range", "hello", 5, 4, "", "hell", ChangeDelete, "o"},
		{"clamped end", "hello", 3, 99, "", "hel", ChangeDelete, "lo"},
		{"clamped start", "hello", -4, 1, "", "ello", ChangeDelete, "h"},
		{"noop", "hello", 2, 2, "", "hello", ChangeNone, ""},
		{"crlf normalized", "", 0, 0, "a\r\nb", "a\nb", ChangeInsert, ""},
		{"multibyte", "héllo", 1, 2, "e", "hello", ChangeReplace, "é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewFromString(tt.initial)
			rev := d.Revision()
			c := d.Replace(tt.start, tt.end, tt.text)
			if got := d.Text(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if c.Type != tt.typ {
				t.Errorf("expected change type %s, got %s", tt.typ, c.Type)
			}
			if c.OldText != tt.oldText {
				t.Errorf("expected old text %q, got %q", tt.oldText, c.OldText)
			}
			if tt.typ == ChangeNone && d.Revision() != rev {
				t.Error("noop should not bump the revision")
			}
			if tt.typ != ChangeNone && d.Revision() == rev {
				t.Error("expected a new revision")
			}
		})
	}
}

func TestChangeCounts(t *testing.T) {
	d := NewFromString("hello world")
	c := d.Replace(0, 5, "hi")
	if c.Before() != 5 || c.Count() != 2 || c.Delta() != -3 {
		t.Errorf("unexpected counts before=%d count=%d delta=%d", c.Before(), c.Count(), c.Delta())
	}
	if c.NewRange != (Range{0, 2}) {
		t.Errorf("expected [0:2), got %s", c.NewRange)
	}

	inv := c.Invert()
	d.Replace(inv.Range.Start, inv.Range.End, inv.NewText)
	if d.Text() != "hello world" {
		t.Errorf("expected inverted change to restore text, got %q", d.Text())
	}
}

func TestLines(t *testing.T) {
	d := NewFromString("one\ntwo\n\nfour")

	tests := []struct {
		offset     int
		start, end int
	}{
		{0, 0, 4},
		{3, 0, 4},
		{4, 4, 8},
		{8, 8, 9},
		{9, 9, 13},
		{13, 9, 13},
		{99, 9, 13},
	}
	for _, tt := range tests {
		got := d.LineRange(tt.offset)
		if got.Start != tt.start || got.End != tt.end {
			t.Errorf("LineRange(%d) = %s, expected [%d:%d)", tt.offset, got, tt.start, tt.end)
		}
	}

	if n := d.LineCount(); n != 4 {
		t.Errorf("expected 4 lines, got %d", n)
	}
	if got := d.LineContentEnd(5); got != 7 {
		t.Errorf("expected content end 7, got %d", got)
	}
	if got := len(d.Lines()); got != 4 {
		t.Errorf("expected 4 line ranges, got %d", got)
	}
}

func TestLinesRange(t *testing.T) {
	d := NewFromString("ab\ncd\nef")

	tests := []struct {
		name       string
		start, end int
		want       Range
	}{
		{"caret", 1, 1, Range{0, 3}},
		{"caret at line start", 3, 3, Range{3, 6}},
		{"within line", 3, 5, Range{3, 6}},
		{"ends after newline", 0, 3, Range{0, 3}},
		{"spans lines", 1, 4, Range{0, 6}},
		{"last line", 7, 8, Range{6, 8}},
		{"whole document", 0, 8, Range{0, 8}},
	}
	for _, tt := range tests {
		if got := d.LinesRange(tt.start, tt.end); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
	}

	empty := NewFromString("ab\n")
	if got := empty.LinesRange(3, 3); !got.IsEmpty() || got.Start != 3 {
		t.Errorf("expected empty trailing line at 3, got %s", got)
	}
}

func TestRange(t *testing.T) {
	r := NewRange(10, 5)
	if r.Start != 5 || r.End != 10 {
		t.Fatalf("expected normalized range, got %s", r)
	}
	if r.String() != "[5:10)" {
		t.Errorf("expected [5:10), got %s", r.String())
	}
	if r.Len() != 5 || r.IsEmpty() {
		t.Errorf("unexpected length %d", r.Len())
	}
	tests := []struct {
		in   Range
		want Range
	}{
		{Range{-3, 40}, Range{0, 20}},
		{Range{25, 4}, Range{4, 20}},
		{Range{30, 40}, Range{20, 20}},
	}
	for _, tt := range tests {
		if got := tt.in.Clamp(20); got != tt.want {
			t.Errorf("%s.Clamp(20) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

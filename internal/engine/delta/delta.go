// Package delta converts a document and its spans to and from the Quill
// delta representation: an ordered list of {insert, attributes} operations.
//
// Character attributes ride on text runs. Line attributes ride on the "\n"
// that ends the line, and the last line is always terminated by a "\n"
// operation even when the document does not end with a newline.
package delta

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/richtext/internal/engine/attr"
	"github.com/dshills/richtext/internal/engine/span"
)

// ErrInvalidDelta is returned for input that is not a delta.
var ErrInvalidDelta = errors.New("invalid delta")

// Attribute keys.
const (
	KeyBold       = "bold"
	KeyItalic     = "italic"
	KeyUnderline  = "underline"
	KeyStrike     = "strike"
	KeyHeader     = "header"
	KeyList       = "list"
	KeyBlockquote = "blockquote"
	KeyCodeBlock  = "code-block"
	KeyDivider    = "divider"
)

// Op is a single insert operation.
type Op struct {
	Insert     string
	Attributes map[string]any
}

// String returns a human-readable representation of the op.
func (o Op) String() string {
	if len(o.Attributes) == 0 {
		return fmt.Sprintf("insert(%q)", o.Insert)
	}
	return fmt.Sprintf("insert(%q, %s)", o.Insert, attrKey(o.Attributes))
}

// Delta is an ordered list of operations describing a whole document.
type Delta struct {
	Ops []Op
}

// Text returns the concatenated inserts.
func (d Delta) Text() string {
	var b strings.Builder
	for _, op := range d.Ops {
		b.WriteString(op.Insert)
	}
	return b.String()
}

// Len returns the length of the delta in runes.
func (d Delta) Len() int {
	n := 0
	for _, op := range d.Ops {
		n += len([]rune(op.Insert))
	}
	return n
}

// charAttributes maps character kinds to delta attributes.
func charAttributes(kind attr.Kind, out map[string]any) {
	switch kind {
	case attr.Bold:
		out[KeyBold] = true
	case attr.Italic:
		out[KeyItalic] = true
	case attr.BoldItalic:
		out[KeyBold] = true
		out[KeyItalic] = true
	case attr.Underline:
		out[KeyUnderline] = true
	case attr.Strikethrough:
		out[KeyStrike] = true
	}
}

// lineAttributes maps a line kind to delta attributes.
func lineAttributes(kind attr.Kind, out map[string]any) {
	switch kind {
	case attr.Headline1, attr.Headline2, attr.Headline3:
		out[KeyHeader] = kind.HeadlineLevel()
	case attr.ListBullet:
		out[KeyList] = "bullet"
	case attr.ListOrdered:
		out[KeyList] = "ordered"
	case attr.Quote:
		out[KeyBlockquote] = true
	case attr.CodeBlock:
		out[KeyCodeBlock] = true
	case attr.Divider:
		out[KeyDivider] = true
	}
}

// FromDocument builds the delta of text annotated by spans.
func FromDocument(text string, spans []span.Span) Delta {
	runes := []rune(text)

	bounds := map[int]struct{}{0: {}, len(runes): {}}
	for _, sp := range spans {
		bounds[sp.Start] = struct{}{}
		bounds[sp.End] = struct{}{}
	}
	for i, r := range runes {
		if r == '\n' {
			bounds[i] = struct{}{}
			bounds[i+1] = struct{}{}
		}
	}
	cuts := make([]int, 0, len(bounds))
	for b := range bounds {
		if b >= 0 && b <= len(runes) {
			cuts = append(cuts, b)
		}
	}
	sort.Ints(cuts)

	var d Delta
	lineStart := 0
	for i := 0; i+1 < len(cuts); i++ {
		a, b := cuts[i], cuts[i+1]
		if a == b {
			continue
		}
		attrs := make(map[string]any)
		if b == a+1 && runes[a] == '\n' {
			lineAttributes(lineKindAt(spans, lineStart), attrs)
			lineStart = b
		} else {
			for _, sp := range spans {
				if sp.Kind.IsChar() && sp.Start <= a && a < sp.End {
					charAttributes(sp.Kind, attrs)
				}
			}
		}
		d.push(Op{Insert: string(runes[a:b]), Attributes: attrs})
	}

	last := make(map[string]any)
	if lineStart < len(runes) {
		lineAttributes(lineKindAt(spans, lineStart), last)
	}
	d.push(Op{Insert: "\n", Attributes: last})
	return d
}

func lineKindAt(spans []span.Span, pos int) attr.Kind {
	for _, sp := range spans {
		if sp.Kind.IsLine() && sp.Start <= pos && pos < sp.End {
			return sp.Kind
		}
	}
	return attr.None
}

// push appends op, merging it into the previous op when their attributes match.
func (d *Delta) push(op Op) {
	if len(op.Attributes) == 0 {
		op.Attributes = nil
	}
	if n := len(d.Ops); n > 0 && attrKey(d.Ops[n-1].Attributes) == attrKey(op.Attributes) {
		d.Ops[n-1].Insert += op.Insert
		return
	}
	d.Ops = append(d.Ops, op)
}

// attrKey returns a canonical string for an attribute map.
func attrKey(attrs map[string]any) string {
	if len(attrs) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s=%v", k, attrs[k])
	}
	b.WriteByte('}')
	return b.String()
}

// Document rebuilds text and spans from the delta. The final newline that
// terminates the last line is not part of the text. Attribute keys the
// engine does not know are returned in unknown.
func (d Delta) Document() (text string, spans []span.Span, unknown []string) {
	var runes []rune
	seen := make(map[string]bool)
	lineStart := 0

	report := func(k string) {
		if !seen[k] {
			seen[k] = true
			unknown = append(unknown, k)
		}
	}

	for _, op := range d.Ops {
		chars, line := decodeAttributes(op.Attributes, report)
		for _, r := range op.Insert {
			pos := len(runes)
			runes = append(runes, r)
			if r == '\n' {
				if line != attr.None {
					spans = append(spans, span.New(line, lineStart, pos+1))
				}
				lineStart = pos + 1
				continue
			}
			for _, k := range chars {
				spans = append(spans, span.New(k, pos, pos+1))
			}
		}
	}

	if n := len(runes); n > 0 && runes[n-1] == '\n' {
		runes = runes[:n-1]
	}

	store := span.NewStore(span.WithLength(len(runes)))
	for _, sp := range spans {
		store.Add(sp)
	}
	return string(runes), store.All(), unknown
}

func decodeAttributes(attrs map[string]any, report func(string)) ([]attr.Kind, attr.Kind) {
	line := attr.None
	bold, italic := false, false
	var chars []attr.Kind

	for k, v := range attrs {
		switch k {
		case KeyBold:
			bold = truthy(v)
		case KeyItalic:
			italic = truthy(v)
		case KeyUnderline:
			if truthy(v) {
				chars = append(chars, attr.Underline)
			}
		case KeyStrike:
			if truthy(v) {
				chars = append(chars, attr.Strikethrough)
			}
		case KeyHeader:
			switch n := v.(type) {
			case int:
				line = attr.Headline(n)
			case float64:
				line = attr.Headline(int(n))
			default:
				report(k)
			}
		case KeyList:
			switch v {
			case "bullet":
				line = attr.ListBullet
			case "ordered":
				line = attr.ListOrdered
			default:
				report(k)
			}
		case KeyBlockquote:
			if truthy(v) {
				line = attr.Quote
			}
		case KeyCodeBlock:
			if truthy(v) {
				line = attr.CodeBlock
			}
		case KeyDivider:
			if truthy(v) {
				line = attr.Divider
			}
		default:
			report(k)
		}
	}

	switch {
	case bold && italic:
		chars = append(chars, attr.BoldItalic)
	case bold:
		chars = append(chars, attr.Bold)
	case italic:
		chars = append(chars, attr.Italic)
	}
	return chars, line
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != "" && t != "false"
	case int:
		return t != 0
	case float64:
		return t != 0
	default:
		return v != nil
	}
}

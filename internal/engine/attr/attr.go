// Package attr defines the closed set of formatting attributes a document
// can carry and the immutable data associated with each of them.
//
// Attributes come in two levels:
//
//   - Line-level kinds (headlines, lists, quote, code block, divider) apply to
//     whole lines and are mutually exclusive on a given line.
//   - Character-level kinds (bold, italic, boldItalic, underline,
//     strikethrough) apply to arbitrary ranges and may co-occur.
//
// Kind is data, not type identity: every span in the engine carries its Kind
// explicitly, and all per-kind behavior is looked up in the table below.
package attr

import "strings"

// Kind identifies one formatting attribute.
type Kind uint8

const (
	// None is the zero Kind. Its wire name is "normal".
	None Kind = iota

	Headline1
	Headline2
	Headline3
	ListBullet
	ListOrdered
	Quote
	CodeBlock
	Divider

	Bold
	Italic
	BoldItalic
	Underline
	Strikethrough

	kindCount
)

// Level is the granularity at which a Kind applies.
type Level uint8

const (
	LevelNone Level = iota
	LevelLine
	LevelChar
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelLine:
		return "line"
	case LevelChar:
		return "char"
	default:
		return "none"
	}
}

// Font sizes used by headline rendering. BodySize applies to every other line.
const (
	BodySize      = 18
	Headline1Size = 48
	Headline2Size = 40
	Headline3Size = 32
)

type info struct {
	name     string
	level    Level
	fontSize int
}

var table = [kindCount]info{
	None:          {"normal", LevelNone, BodySize},
	Headline1:     {"header1", LevelLine, Headline1Size},
	Headline2:     {"header2", LevelLine, Headline2Size},
	Headline3:     {"header3", LevelLine, Headline3Size},
	ListBullet:    {"list-bullet", LevelLine, BodySize},
	ListOrdered:   {"list-ordered", LevelLine, BodySize},
	Quote:         {"blockquote", LevelLine, BodySize},
	CodeBlock:     {"code-block", LevelLine, BodySize},
	Divider:       {"divider", LevelLine, BodySize},
	Bold:          {"bold", LevelChar, BodySize},
	Italic:        {"italic", LevelChar, BodySize},
	BoldItalic:    {"bold_italic", LevelChar, BodySize},
	Underline:     {"underline", LevelChar, BodySize},
	Strikethrough: {"strike", LevelChar, BodySize},
}

// precedence orders the kinds that may be reported as the unique style of a
// selection. Divider and BoldItalic never are.
var precedence = []Kind{
	Headline1, Headline2, Headline3,
	ListBullet, ListOrdered, Quote, CodeBlock,
	Bold, Italic, Underline, Strikethrough,
}

var lineKinds = []Kind{Headline1, Headline2, Headline3, ListBullet, ListOrdered, Quote, CodeBlock, Divider}

var charKinds = []Kind{Bold, Italic, BoldItalic, Underline, Strikethrough}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if !k.IsValid() {
		return "unknown"
	}
	return table[k].name
}

// IsValid reports whether k is a member of the enumeration.
func (k Kind) IsValid() bool {
	return k < kindCount
}

// Level returns the level at which the kind applies.
func (k Kind) Level() Level {
	if !k.IsValid() {
		return LevelNone
	}
	return table[k].level
}

// IsLine reports whether k is a line-level kind.
func (k Kind) IsLine() bool { return k.Level() == LevelLine }

// IsChar reports whether k is a character-level kind.
func (k Kind) IsChar() bool { return k.Level() == LevelChar }

// IsHeadline reports whether k is one of the headline levels.
func (k Kind) IsHeadline() bool {
	return k == Headline1 || k == Headline2 || k == Headline3
}

// FontSize returns the font size of text carrying this kind.
func (k Kind) FontSize() int {
	if !k.IsValid() {
		return BodySize
	}
	return table[k].fontSize
}

// Parse returns the Kind for a wire name. Matching is case-insensitive and
// ignores surrounding whitespace.
func Parse(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k := None; k < kindCount; k++ {
		if table[k].name == name {
			return k, true
		}
	}
	return None, false
}

// MustParse is like Parse but panics on unknown names.
func MustParse(name string) Kind {
	k, ok := Parse(name)
	if !ok {
		panic("attr: unknown attribute " + name)
	}
	return k
}

// Headline returns the headline kind for a level in 1..3. Levels above 3
// collapse to Headline3; levels below 1 return None.
func Headline(level int) Kind {
	switch {
	case level <= 0:
		return None
	case level == 1:
		return Headline1
	case level == 2:
		return Headline2
	default:
		return Headline3
	}
}

// HeadlineLevel returns 1..3 for headline kinds and 0 otherwise.
func (k Kind) HeadlineLevel() int {
	switch k {
	case Headline1:
		return 1
	case Headline2:
		return 2
	case Headline3:
		return 3
	default:
		return 0
	}
}

// LineKinds returns every line-level kind.
func LineKinds() []Kind {
	return append([]Kind(nil), lineKinds...)
}

// CharKinds returns every character-level kind.
func CharKinds() []Kind {
	return append([]Kind(nil), charKinds...)
}

// All returns every kind except None.
func All() []Kind {
	out := make([]Kind, 0, kindCount-1)
	out = append(out, lineKinds...)
	return append(out, charKinds...)
}

// Precedence returns the kinds eligible for the unique style label, highest first.
func Precedence() []Kind {
	return append([]Kind(nil), precedence...)
}

// Package markdown converts lightweight Markdown shortcuts into attributes
// as the user types.
//
// After text ending in a space or newline is inserted, the line holding the
// trigger is matched against a fixed list of rules, in priority order:
//
//	header        "# " .. "###### "   headline 1..3 (4+ hashes give headline 3)
//	bullet list   "- " "* " "+ "
//	ordered list  "1. "
//	quote         "> "
//	divider       "---" "***" "- - -" ...
//	code block    "```"
//	bold          **text** __text__
//	italic        *text* _text_
//	strike        ~~text~~
//
// Block rules match the whole line up to and including the trigger. The
// marker is deleted, along with a space trigger, and the caret's line takes
// the rule's line kind. The typing state keeps it so the following text
// continues the format. A divider brings its own line break, so it replaces
// a newline trigger too. Inline
// rules match the end of the line just before the trigger; their delimiters
// are deleted and the enclosed text is formatted. At most one rule fires per
// insertion.
package markdown

import (
	"regexp"
	"unicode/utf8"

	"github.com/dshills/richtext/internal/engine/attr"
	"github.com/dshills/richtext/internal/engine/document"
)

// Target is the editor surface the auto formatter edits through. Deletions
// made through it must keep spans consistent and must not re-enter the
// auto formatter.
type Target interface {
	Slice(start, end int) string
	LineStart(offset int) int
	Delete(start, end int)
	SetTextType(kind attr.Kind, start, end int)
	FormatText(kind attr.Kind, start, end int)
	SetTypingLineKind(kind attr.Kind)
	InsertDivider(at int)
}

// Match describes a rule that fired.
type Match struct {
	Rule string
	Kind attr.Kind
	// Range is the text that received Kind, after the markers were removed.
	Range document.Range
}

type blockRule struct {
	name string
	re   *regexp.Regexp
	kind func(m []string) attr.Kind
}

type inlineRule struct {
	name  string
	delim string
	kind  attr.Kind
	re    *regexp.Regexp
}

func fixed(k attr.Kind) func([]string) attr.Kind {
	return func([]string) attr.Kind { return k }
}

var blockRules = []blockRule{
	{"header", regexp.MustCompile(`^(#{1,6})\s$`), func(m []string) attr.Kind { return attr.Headline(len(m[1])) }},
	{"bullet", regexp.MustCompile(`^[-*+]\s$`), fixed(attr.ListBullet)},
	{"ordered", regexp.MustCompile(`^1\.\s$`), fixed(attr.ListOrdered)},
	{"quote", regexp.MustCompile(`^>\s$`), fixed(attr.Quote)},
	{"divider", regexp.MustCompile(`^(?:[-*][ \t]*){3,}\s$`), fixed(attr.Divider)},
	{"code", regexp.MustCompile("^```[^`\\s]*\\s$"), fixed(attr.CodeBlock)},
}

var inlineRules = []inlineRule{
	newInlineRule("bold", "**", attr.Bold),
	newInlineRule("bold", "__", attr.Bold),
	newInlineRule("italic", "*", attr.Italic),
	newInlineRule("italic", "_", attr.Italic),
	newInlineRule("strike", "~~", attr.Strikethrough),
}

// newInlineRule builds a rule matching delim-enclosed text at the end of the
// line. A single-rune opening delimiter must start the line or follow
// whitespace so identifiers like snake_case_ stay untouched. A double
// delimiter may follow any other rune. The enclosed text may not begin or
// end with whitespace.
func newInlineRule(name, delim string, kind attr.Kind) inlineRule {
	q := regexp.QuoteMeta(delim)
	c := regexp.QuoteMeta(delim[:1])
	body := `([^` + c + `\s](?:[^` + c + `]*[^` + c + `\s])?)`
	prefix := `(?:^|\s)`
	if len(delim) > 1 {
		prefix = `(?:^|[^` + c + `])`
	}
	return inlineRule{
		name:  name,
		delim: delim,
		kind:  kind,
		re:    regexp.MustCompile(prefix + q + body + q + `$`),
	}
}

// AutoFormatter applies Markdown shortcuts.
type AutoFormatter struct {
	target  Target
	enabled bool
}

// Option configures an AutoFormatter.
type Option func(*AutoFormatter)

// WithEnabled turns the formatter on or off.
func WithEnabled(enabled bool) Option {
	return func(f *AutoFormatter) {
		f.enabled = enabled
	}
}

// New creates an enabled auto formatter editing through target.
func New(target Target, opts ...Option) *AutoFormatter {
	f := &AutoFormatter{target: target, enabled: true}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Enabled reports whether shortcuts are applied.
func (f *AutoFormatter) Enabled() bool {
	return f.enabled
}

// SetEnabled turns shortcuts on or off.
func (f *AutoFormatter) SetEnabled(enabled bool) {
	f.enabled = enabled
}

// IsTrigger reports whether r triggers a scan.
func IsTrigger(r rune) bool {
	return r == ' ' || r == '\n'
}

// OnInserted scans the line of an insertion [start, end) and applies the
// first matching rule.
func (f *AutoFormatter) OnInserted(start, end int) (Match, bool) {
	if !f.enabled || end <= start {
		return Match{}, false
	}
	last := f.target.Slice(end-1, end)
	r, _ := utf8.DecodeRuneInString(last)
	if last == "" || !IsTrigger(r) {
		return Match{}, false
	}

	lineStart := f.target.LineStart(end - 1)
	line := f.target.Slice(lineStart, end)

	if m, ok := f.applyBlock(lineStart, end, line); ok {
		return m, true
	}
	return f.applyInline(lineStart, line[:len(line)-len(last)])
}

func (f *AutoFormatter) applyBlock(lineStart, end int, line string) (Match, bool) {
	for _, rule := range blockRules {
		m := rule.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		kind := rule.kind(m)
		if kind == attr.Divider {
			f.target.Delete(lineStart, end)
			f.target.InsertDivider(lineStart)
			f.target.SetTypingLineKind(attr.None)
			return Match{Rule: rule.name, Kind: kind, Range: document.Range{Start: lineStart, End: lineStart}}, true
		}
		// A newline trigger is kept and the kind goes to the line it opened.
		markerEnd, at := end, lineStart
		if line[len(line)-1] == '\n' {
			markerEnd = end - 1
			at = lineStart + 1
		}
		f.target.Delete(lineStart, markerEnd)
		f.target.SetTextType(kind, at, at)
		f.target.SetTypingLineKind(kind)
		return Match{Rule: rule.name, Kind: kind, Range: document.Range{Start: at, End: at}}, true
	}
	return Match{}, false
}

func (f *AutoFormatter) applyInline(lineStart int, text string) (Match, bool) {
	for _, rule := range inlineRules {
		loc := rule.re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		// loc[2:4] is the enclosed text, in bytes.
		innerStart := lineStart + utf8.RuneCountInString(text[:loc[2]])
		innerLen := utf8.RuneCountInString(text[loc[2]:loc[3]])
		d := utf8.RuneCountInString(rule.delim)

		open := innerStart - d
		closing := innerStart + innerLen
		f.target.Delete(closing, closing+d)
		f.target.Delete(open, innerStart)

		r := document.Range{Start: open, End: open + innerLen}
		f.target.FormatText(rule.kind, r.Start, r.End)
		return Match{Rule: rule.name, Kind: rule.kind, Range: r}, true
	}
	return Match{}, false
}

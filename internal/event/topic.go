package event

import "strings"

// Topic names an event with dot-separated segments, e.g.
// "editor.text.changed". In subscription patterns a "*" segment matches
// one segment and a "**" segment matches any number, including none.
type Topic string

func (t Topic) String() string { return string(t) }

// IsValid reports whether t is non-empty with no empty segments.
func (t Topic) IsValid() bool {
	if t == "" {
		return false
	}
	for seg := range strings.SplitSeq(string(t), ".") {
		if seg == "" {
			return false
		}
	}
	return true
}

// IsPattern reports whether t has a wildcard segment. Patterns can be
// subscribed to but not published.
func (t Topic) IsPattern() bool {
	return strings.Contains(string(t), "*")
}

// Matches reports whether the published topic t is selected by pattern.
func (t Topic) Matches(pattern Topic) bool {
	return match(string(pattern), string(t))
}

// match walks pattern and topic one segment at a time. An empty string
// means no segments are left.
func match(pattern, topic string) bool {
	for pattern != "" {
		head, rest, _ := strings.Cut(pattern, ".")
		if head == "**" {
			for {
				if match(rest, topic) {
					return true
				}
				if topic == "" {
					return false
				}
				_, topic, _ = strings.Cut(topic, ".")
			}
		}
		if topic == "" {
			return false
		}
		seg, next, _ := strings.Cut(topic, ".")
		if head != "*" && head != seg {
			return false
		}
		pattern, topic = rest, next
	}
	return topic == ""
}

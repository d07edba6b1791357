package event

import "testing"

func TestTopicMatches(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"editor.text.changed", "editor.text.changed", true},
		{"editor.text.changed", "editor.text.*", true},
		{"editor.text.changed", "editor.*", false},
		{"editor.text.changed", "editor.**", true},
		{"editor", "editor.**", true},
		{"editor.text.changed", "**", true},
		{"editor.text.changed", "**.changed", true},
		{"editor.text.changed", "editor.**.changed", true},
		{"editor.changed", "editor.**.changed", true},
		{"editor.selection.changed", "editor.text.*", false},
		{"editor.text", "editor.text.*", false},
		{"editor.text.changed", "*.*.*", true},
		{"editor.text.changed", "*.*", false},
		{"editor.text.changed.extra", "editor.text.changed", false},
		{"editor.textual", "editor.text", false},
	}
	for _, tt := range tests {
		if got := tt.topic.Matches(tt.pattern); got != tt.want {
			t.Errorf("%q.Matches(%q) = %v, want %v", tt.topic, tt.pattern, got, tt.want)
		}
	}
}

func TestTopicValidity(t *testing.T) {
	for _, bad := range []Topic{"", ".editor", "editor.", "editor..text"} {
		if bad.IsValid() {
			t.Errorf("%q should be invalid", bad)
		}
	}
	if !TopicTextChanged.IsValid() || TopicTextChanged.IsPattern() {
		t.Errorf("%q should be a valid concrete topic", TopicTextChanged)
	}
	if !Topic("editor.**").IsPattern() {
		t.Error("editor.** should be a pattern")
	}
}

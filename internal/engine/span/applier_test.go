package span

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/richtext/internal/engine/attr"
)

func newApplier(length int, spans ...Span) *Applier {
	s := NewStore(WithLength(length))
	for _, sp := range spans {
		s.Add(sp)
	}
	return NewApplier(s)
}

// ============================================================================
// Turning on
// ============================================================================

func TestToggleOn(t *testing.T) {
	tests := []struct {
		name       string
		existing   []Span
		start, end int
		want       []Span
		outcome    Outcome
	}{
		{
			name:    "new span",
			start:   2,
			end:     5,
			want:    []Span{New(attr.Bold, 2, 5)},
			outcome: OutcomeCreated,
		},
		{
			name:     "already covered",
			existing: []Span{New(attr.Bold, 0, 10)},
			start:    3,
			end:      6,
			want:     []Span{New(attr.Bold, 0, 10)},
			outcome:  OutcomeNone,
		},
		{
			name:     "touching left",
			existing: []Span{New(attr.Bold, 0, 3)},
			start:    3,
			end:      6,
			want:     []Span{New(attr.Bold, 0, 6)},
			outcome:  OutcomeMerged,
		},
		{
			name:     "touching right",
			existing: []Span{New(attr.Bold, 6, 9)},
			start:    3,
			end:      6,
			want:     []Span{New(attr.Bold, 3, 9)},
			outcome:  OutcomeMerged,
		},
		{
			name:     "absorbs inner spans",
			existing: []Span{New(attr.Bold, 4, 5), New(attr.Bold, 7, 8)},
			start:    3,
			end:      10,
			want:     []Span{New(attr.Bold, 3, 10)},
			outcome:  OutcomeMerged,
		},
		{
			name:     "overlapping both edges",
			existing: []Span{New(attr.Bold, 0, 4), New(attr.Bold, 8, 12)},
			start:    2,
			end:      10,
			want:     []Span{New(attr.Bold, 0, 12)},
			outcome:  OutcomeMerged,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newApplier(20, tt.existing...)
			got := a.Toggle(attr.Bold, tt.start, tt.end, true)
			if got != tt.outcome {
				t.Errorf("expected outcome %s, got %s", tt.outcome, got)
			}
			if diff := cmp.Diff(tt.want, a.Store().All()); diff != "" {
				t.Errorf("spans mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToggleOnIdempotent(t *testing.T) {
	once := newApplier(20)
	once.Toggle(attr.Italic, 2, 9, true)

	twice := newApplier(20)
	twice.Toggle(attr.Italic, 2, 9, true)
	twice.Toggle(attr.Italic, 2, 9, true)

	if diff := cmp.Diff(once.Store().All(), twice.Store().All()); diff != "" {
		t.Errorf("toggling twice differs from once (-once +twice):\n%s", diff)
	}
	if n := twice.Store().Count(); n != 1 {
		t.Errorf("expected exactly one span, got %d", n)
	}
}

func TestToggleSplitThenRemerge(t *testing.T) {
	a := newApplier(20)
	a.Toggle(attr.Bold, 0, 10, true)
	a.Toggle(attr.Bold, 3, 6, false)

	split := []Span{New(attr.Bold, 0, 3), New(attr.Bold, 6, 10)}
	if diff := cmp.Diff(split, a.Store().All()); diff != "" {
		t.Fatalf("after split (-want +got):\n%s", diff)
	}

	a.Toggle(attr.Bold, 3, 6, true)
	want := []Span{New(attr.Bold, 0, 10)}
	if diff := cmp.Diff(want, a.Store().All()); diff != "" {
		t.Errorf("after re-merge (-want +got):\n%s", diff)
	}
}

// ============================================================================
// Turning off
// ============================================================================

func TestToggleOff(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       []Span
		outcome    Outcome
	}{
		{"exact", 5, 10, nil, OutcomeDeleted},
		{"split", 6, 8, []Span{New(attr.Bold, 5, 6), New(attr.Bold, 8, 10)}, OutcomeSplit},
		{"trim head", 5, 8, []Span{New(attr.Bold, 8, 10)}, OutcomeTrimmed},
		{"trim tail", 7, 10, []Span{New(attr.Bold, 5, 7)}, OutcomeTrimmed},
		{"superset", 2, 14, nil, OutcomeDeleted},
		{"unrelated", 15, 18, []Span{New(attr.Bold, 5, 10)}, OutcomeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newApplier(20, New(attr.Bold, 5, 10))
			got := a.Toggle(attr.Bold, tt.start, tt.end, false)
			if got != tt.outcome {
				t.Errorf("expected outcome %s, got %s", tt.outcome, got)
			}
			if diff := cmp.Diff(tt.want, a.Store().All()); diff != "" {
				t.Errorf("spans mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToggleOffAfterSpanEndClosesEarly(t *testing.T) {
	a := newApplier(20, New(attr.Underline, 0, 5))

	got := a.Toggle(attr.Underline, 5, 8, false)
	if got != OutcomeClosed {
		t.Errorf("expected outcome %s, got %s", OutcomeClosed, got)
	}
	want := []Span{New(attr.Underline, 0, 4)}
	if diff := cmp.Diff(want, a.Store().All()); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleOffLineKindDoesNotCloseEarly(t *testing.T) {
	a := newApplier(20, New(attr.Headline1, 0, 6))

	if got := a.Toggle(attr.Headline1, 6, 10, false); got != OutcomeNone {
		t.Errorf("expected outcome %s, got %s", OutcomeNone, got)
	}
	want := []Span{New(attr.Headline1, 0, 6)}
	if diff := cmp.Diff(want, a.Store().All()); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
}

// ============================================================================
// Line kinds and degenerate ranges
// ============================================================================

func TestToggleLineKindExclusive(t *testing.T) {
	a := newApplier(12, New(attr.Headline1, 0, 6), New(attr.Quote, 6, 12))

	a.Toggle(attr.ListBullet, 0, 12, true)

	want := []Span{New(attr.ListBullet, 0, 12)}
	if diff := cmp.Diff(want, a.Store().All()); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleLineKindKeepsOtherLines(t *testing.T) {
	a := newApplier(12, New(attr.Headline1, 0, 12))

	a.Toggle(attr.CodeBlock, 6, 12, true)

	want := []Span{New(attr.Headline1, 0, 6), New(attr.CodeBlock, 6, 12)}
	if diff := cmp.Diff(want, a.Store().All()); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleDegenerate(t *testing.T) {
	a := newApplier(20, New(attr.Bold, 0, 5))

	for _, on := range []bool{true, false} {
		if got := a.Toggle(attr.Bold, 5, 5, on); got != OutcomeNone {
			t.Errorf("expected outcome %s, got %s", OutcomeNone, got)
		}
	}
	want := []Span{New(attr.Bold, 0, 5)}
	if diff := cmp.Diff(want, a.Store().All()); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleSweepsCollapsedSpans(t *testing.T) {
	log := &recordingLogger{}
	s := NewStore(WithLength(20), WithLogger(log))
	s.Add(New(attr.Bold, 0, 3))
	s.Add(New(attr.Italic, 5, 8))
	s.Add(New(attr.Underline, 4, 12))
	s.Collapse(4, 9)
	a := NewApplier(s)

	tests := []struct {
		kind attr.Kind
		want Outcome
	}{
		{attr.Italic, OutcomeDeleted},
		{attr.Italic, OutcomeNone},
		{attr.Bold, OutcomeNone},
		{attr.Underline, OutcomeNone},
	}
	for _, tt := range tests {
		if got := a.Toggle(tt.kind, 4, 4, true); got != tt.want {
			t.Errorf("Toggle(%s,4,4): expected %s, got %s", tt.kind, tt.want, got)
		}
	}

	want := []Span{New(attr.Bold, 0, 3), New(attr.Underline, 4, 7)}
	if diff := cmp.Diff(want, s.All()); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
	if len(log.messages) != 0 {
		t.Errorf("sweeping should not report violations, got %v", log.messages)
	}
}

func TestToggleClampsRange(t *testing.T) {
	a := newApplier(10)
	a.Toggle(attr.Strikethrough, -5, 50, true)

	want := []Span{New(attr.Strikethrough, 0, 10)}
	if diff := cmp.Diff(want, a.Store().All()); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}

	if got := a.Toggle(attr.None, 0, 10, true); got != OutcomeNone {
		t.Errorf("expected None to be ignored, got %s", got)
	}
}

func TestClearDoesNotCloseEarly(t *testing.T) {
	a := newApplier(20, New(attr.Bold, 0, 5), New(attr.Headline1, 0, 20))

	if got := a.Clear(attr.Bold, 5, 8); got != OutcomeNone {
		t.Errorf("expected outcome %s, got %s", OutcomeNone, got)
	}
	if got := a.Clear(attr.Bold, 2, 8); got != OutcomeTrimmed {
		t.Errorf("expected outcome %s, got %s", OutcomeTrimmed, got)
	}
	a.ClearLineKinds(0, 10)

	want := []Span{New(attr.Bold, 0, 2), New(attr.Headline1, 10, 20)}
	if diff := cmp.Diff(want, a.Store().All()); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
}

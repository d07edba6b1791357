package engine

import (
	"strings"
	"testing"

	"github.com/dshills/richtext/internal/engine/attr"
)

func BenchmarkTypeText(b *testing.B) {
	e := New()
	mustNilB(b, e.SetTextStyle(attr.NewSet(attr.Bold)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustNilB(b, e.TypeText("x"))
	}
}

func BenchmarkStatusLargeDocument(b *testing.B) {
	e := New(WithContent(strings.Repeat("lorem ipsum dolor sit amet\n", 2000)))
	for i := 0; i < e.Len(); i += 10 {
		mustNilB(b, e.FormatText("italic", i, 5))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.StatusAt(i%e.Len(), i%e.Len())
	}
}

func BenchmarkFormatLines(b *testing.B) {
	e := New(WithContent(strings.Repeat("line\n", 1000)))
	e.UpdateSelection(0, e.Len())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		kind := attr.Headline1
		if i%2 == 1 {
			kind = attr.Quote
		}
		mustNilB(b, e.SetTextType(kind))
	}
}

func mustNilB(b *testing.B, err error) {
	b.Helper()
	if err != nil {
		b.Fatal(err)
	}
}
